package main

import (
	"crypto/tls"
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"

	"github.com/norlig/bankid/example/server/config"
	"github.com/norlig/bankid/example/server/login"
	"github.com/norlig/bankid/example/server/simulator"
	"github.com/norlig/bankid/pkg/client"
	"github.com/norlig/bankid/pkg/flow"
	httphelper "github.com/norlig/bankid/pkg/http"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))

	cfg := config.FromEnvVars(&config.Config{
		Port: config.DefaultPort,
		// do not reuse these outside local development
		HashKey:    "test1234test1234test1234test1234",
		EncryptKey: "test1234test1234test1234test1234",
	})

	api, err := apiClient(cfg, logger)
	if err != nil {
		logger.Error("bankid client setup failed", "error", err)
		os.Exit(1)
	}

	protector := flow.NewProtector([]byte(cfg.HashKey), []byte(cfg.EncryptKey))
	f := flow.New(api, protector,
		flow.WithLogger(logger),
		flow.WithEventTrigger(flow.NewLogEventTrigger(logger)),
	)
	cookies := httphelper.NewCookieHandler(
		[]byte(cfg.HashKey), []byte(cfg.EncryptKey),
		httphelper.WithUnsecure(),
		httphelper.WithScriptAccess(),
	)

	router := chi.NewRouter()
	router.Mount("/api", flow.RegisterServer(f, cookies, flow.WithServerLogger(logger)))
	router.Mount("/", login.New(protector, flow.LoginOptions{
		AllowChangingIdentity: true,
		AutoLaunch:            false,
		UseQRCode:             true,
		AllowBiometric:        true,
	}))

	logger.Info("demo server listening", "addr", "http://localhost:"+cfg.Port+"/")
	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}
	if err := server.ListenAndServe(); err != nil {
		logger.Error("server failed", "error", err)
		os.Exit(1)
	}
}

// apiClient picks the in-memory simulator unless a real endpoint plus RP
// certificate is configured.
func apiClient(cfg *config.Config, logger *slog.Logger) (flow.APIClient, error) {
	if cfg.Endpoint == "" {
		logger.Info("no endpoint configured, using the order simulator")
		return simulator.New(), nil
	}
	cert, err := tls.LoadX509KeyPair(cfg.ClientCertFile, cfg.ClientKeyFile)
	if err != nil {
		return nil, err
	}
	httpClient := &http.Client{
		Timeout: httphelper.DefaultTimeout,
		Transport: &http.Transport{
			TLSClientConfig: &tls.Config{Certificates: []tls.Certificate{cert}},
		},
	}
	return client.New(cfg.Endpoint,
		client.WithHTTPClient(httpClient),
		client.WithLogger(logger),
	), nil
}
