package flow

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/cors"
	"github.com/zitadel/logging"

	httphelper "github.com/norlig/bankid/pkg/http"
	"github.com/norlig/bankid/pkg/http/mw"
)

var defaultCORSOptions = cors.Options{
	AllowCredentials: true,
	AllowedHeaders: []string{
		"Origin",
		"Accept",
		"Accept-Language",
		"Content-Type",
		"X-Requested-With",
		mw.DefaultCSRFHeaderName,
	},
	AllowedMethods: []string{
		http.MethodGet,
		http.MethodPost,
	},
}

// API is what the HTTP surface needs from the orchestrator. *Flow
// implements it.
type API interface {
	Initialize(ctx context.Context, request *InitializeRequest) (InitializeOutcome, error)
	Status(ctx context.Context, request *StatusRequest) (StatusOutcome, error)
	Cancel(ctx context.Context, request *CancelRequest) (*CancelAccepted, error)
}

// RegisterServer builds the login API handler: three JSON POST endpoints
// protected against cross site request forgery through a double submit
// token.
func RegisterServer(api API, cookies *httphelper.CookieHandler, options ...ServerOption) http.Handler {
	ws := &webServer{
		api:    api,
		csrf:   mw.NewCSRF(cookies),
		logger: slog.Default(),
	}
	for _, option := range options {
		option(ws)
	}
	ws.createRouter()
	return ws
}

type ServerOption func(s *webServer)

func WithHTTPMiddleware(m ...func(http.Handler) http.Handler) ServerOption {
	return func(s *webServer) {
		s.middleware = m
	}
}

func WithServerLogger(logger *slog.Logger) ServerOption {
	return func(s *webServer) {
		s.logger = logger
	}
}

type webServer struct {
	http.Handler
	api        API
	middleware []func(http.Handler) http.Handler
	csrf       *mw.CSRF
	logger     *slog.Logger
}

func (s *webServer) createRouter() {
	router := chi.NewRouter()
	router.Use(cors.New(defaultCORSOptions).Handler)
	router.Use(s.middleware...)
	router.Use(s.requestLogger)
	router.Use(s.csrf.Handler)
	router.Post("/initialize", s.initializeHandler)
	router.Post("/status", s.statusHandler)
	router.Post("/cancel", s.cancelHandler)
	s.Handler = router
}

// requestLogger stashes a request scoped logger into the context, so that
// the orchestrator's log lines carry the request attributes.
func (s *webServer) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := s.logger.With(
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
		)
		next.ServeHTTP(w, r.WithContext(logging.ToContext(r.Context(), logger)))
	})
}

type initializeAPIRequest struct {
	LoginOptions           string `json:"loginOptions"`
	ReturnURL              string `json:"returnUrl"`
	PersonalIdentityNumber string `json:"personalIdentityNumber,omitempty"`
}

type initializeAPIResponse struct {
	OrderRef                          string `json:"orderRef"`
	IsAutoLaunch                      bool   `json:"isAutoLaunch"`
	RedirectURI                       string `json:"redirectUri,omitempty"`
	CheckStatus                       bool   `json:"checkStatus"`
	DeviceMightRequireUserInteraction bool   `json:"deviceMightRequireUserInteraction"`
	QRCodeAsBase64                    string `json:"qrCodeAsBase64,omitempty"`
}

func (s *webServer) initializeHandler(w http.ResponseWriter, r *http.Request) {
	request := new(initializeAPIRequest)
	if err := decodeBody(r, request); err != nil {
		s.writeError(w, r, err)
		return
	}
	outcome, err := s.api.Initialize(r.Context(), &InitializeRequest{
		LoginOptionsToken: request.LoginOptions,
		ReturnURL:         request.ReturnURL,
		PersonalNumber:    request.PersonalIdentityNumber,
		EndUserIP:         EndUserIPFromRequest(r),
		Origin:            OriginFromRequest(r),
		UserAgent:         r.UserAgent(),
		AcceptLanguage:    r.Header.Get("Accept-Language"),
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	switch o := outcome.(type) {
	case *InitializeAutoLaunch:
		httphelper.MarshalJSON(w, &initializeAPIResponse{
			OrderRef:                          o.OrderRefToken,
			IsAutoLaunch:                      true,
			RedirectURI:                       o.LaunchURL,
			CheckStatus:                       o.CheckStatus,
			DeviceMightRequireUserInteraction: o.DeviceMightRequireUserInteraction,
		})
	case *InitializeManualLaunch:
		httphelper.MarshalJSON(w, &initializeAPIResponse{
			OrderRef:       o.OrderRefToken,
			CheckStatus:    true,
			QRCodeAsBase64: o.QRCode,
		})
	case *InitializeValidationFailure:
		httphelper.MarshalJSONWithStatus(w, map[string]string{o.Field: o.Message}, http.StatusBadRequest)
	case *InitializeAPIError:
		httphelper.MarshalJSONWithStatus(w, &errorResponse{Error: "api_error", ErrorMessage: o.Message}, http.StatusBadRequest)
	default:
		s.writeError(w, r, errors.New("unknown initialize outcome"))
	}
}

type statusAPIRequest struct {
	LoginOptions      string `json:"loginOptions"`
	OrderRef          string `json:"orderRef"`
	ReturnURL         string `json:"returnUrl"`
	AutoStartAttempts int    `json:"autoStartAttempts"`
}

type statusAPIResponse struct {
	Status        string `json:"status"`
	StatusMessage string `json:"statusMessage,omitempty"`
	RedirectURI   string `json:"redirectUri,omitempty"`
}

func (s *webServer) statusHandler(w http.ResponseWriter, r *http.Request) {
	request := new(statusAPIRequest)
	if err := decodeBody(r, request); err != nil {
		s.writeError(w, r, err)
		return
	}
	outcome, err := s.api.Status(r.Context(), &StatusRequest{
		LoginOptionsToken: request.LoginOptions,
		OrderRefToken:     request.OrderRef,
		ReturnURL:         request.ReturnURL,
		AutoStartAttempts: request.AutoStartAttempts,
		UserAgent:         r.UserAgent(),
		AcceptLanguage:    r.Header.Get("Accept-Language"),
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	switch o := outcome.(type) {
	case *StatusPending:
		httphelper.MarshalJSON(w, &statusAPIResponse{Status: "pending", StatusMessage: o.Message})
	case *StatusRetry:
		httphelper.MarshalJSON(w, &statusAPIResponse{Status: "retry", StatusMessage: o.Message})
	case *StatusFinished:
		httphelper.MarshalJSON(w, &statusAPIResponse{Status: "finished", RedirectURI: o.RedirectURL})
	case *StatusFailure:
		httphelper.MarshalJSON(w, &statusAPIResponse{Status: "failed", StatusMessage: o.Message})
	case *StatusAPIError:
		httphelper.MarshalJSONWithStatus(w, &errorResponse{Error: "api_error", ErrorMessage: o.Message}, http.StatusBadRequest)
	default:
		s.writeError(w, r, errors.New("unknown status outcome"))
	}
}

type cancelAPIRequest struct {
	OrderRef string `json:"orderRef"`
}

type cancelAPIResponse struct {
	Cancelled bool `json:"cancelled"`
}

func (s *webServer) cancelHandler(w http.ResponseWriter, r *http.Request) {
	request := new(cancelAPIRequest)
	if err := decodeBody(r, request); err != nil {
		s.writeError(w, r, err)
		return
	}
	_, err := s.api.Cancel(r.Context(), &CancelRequest{
		OrderRefToken: request.OrderRef,
		UserAgent:     r.UserAgent(),
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	httphelper.MarshalJSON(w, &cancelAPIResponse{Cancelled: true})
}

var errInvalidBody = errors.New("invalid request body")

func decodeBody(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return errInvalidBody
	}
	return nil
}

type errorResponse struct {
	Error        string `json:"error"`
	ErrorMessage string `json:"errorMessage,omitempty"`
}

func (s *webServer) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, errInvalidBody), errors.Is(err, ErrMissingInput), errors.Is(err, ErrInvalidToken):
		s.logger.WarnContext(r.Context(), "login request rejected", slog.Any("error", err))
		httphelper.MarshalJSONWithStatus(w, &errorResponse{Error: "invalid_request"}, http.StatusBadRequest)
	default:
		s.logger.ErrorContext(r.Context(), "login request failed", slog.Any("error", err))
		httphelper.MarshalJSONWithStatus(w, &errorResponse{Error: "server_error"}, http.StatusInternalServerError)
	}
}
