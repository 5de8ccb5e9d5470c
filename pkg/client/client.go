// Package client implements the HTTP client for the BankID Relying Party
// API (appapi2). All calls are JSON over POST and require the relying party
// client certificate, configured through WithHTTPClient.
package client

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/norlig/bankid/internal/otel"
	"github.com/norlig/bankid/pkg/bankid"
	httphelper "github.com/norlig/bankid/pkg/http"
)

const (
	// Endpoint of the production environment.
	ProductionEndpoint = "https://appapi2.bankid.com"
	// Endpoint of the test environment.
	TestEndpoint = "https://appapi2.test.bankid.com"

	authPath    = "/rp/v5/auth"
	collectPath = "/rp/v5/collect"
	cancelPath  = "/rp/v5/cancel"
)

var Tracer = otel.Tracer("github.com/norlig/bankid/pkg/client")

type Client struct {
	endpoint   string
	httpClient *http.Client
	logger     *slog.Logger
}

type Option func(*Client)

// WithHTTPClient replaces the default HTTP client. This is where the TLS
// client certificate issued to the relying party must be mounted.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// New returns a Client for the API at endpoint, typically
// ProductionEndpoint or TestEndpoint.
func New(endpoint string, options ...Option) *Client {
	c := &Client{
		endpoint:   endpoint,
		httpClient: httphelper.DefaultHTTPClient,
		logger:     slog.Default(),
	}
	for _, option := range options {
		option(c)
	}
	return c
}

// Auth creates an authentication order.
func (c *Client) Auth(ctx context.Context, request *bankid.AuthRequest) (*bankid.AuthResponse, error) {
	ctx, span := Tracer.Start(ctx, "Auth")
	defer span.End()

	response := new(bankid.AuthResponse)
	if err := c.post(ctx, authPath, request, response); err != nil {
		return nil, err
	}
	return response, nil
}

// Collect polls the current state of an order. Collecting does not mutate
// the order; concurrent collects for one order are safe.
func (c *Client) Collect(ctx context.Context, orderRef string) (*bankid.CollectResponse, error) {
	ctx, span := Tracer.Start(ctx, "Collect")
	defer span.End()

	response := new(bankid.CollectResponse)
	if err := c.post(ctx, collectPath, &bankid.CollectRequest{OrderRef: orderRef}, response); err != nil {
		return nil, err
	}
	return response, nil
}

// Cancel cancels an in-flight order.
func (c *Client) Cancel(ctx context.Context, orderRef string) error {
	ctx, span := Tracer.Start(ctx, "Cancel")
	defer span.End()

	return c.post(ctx, cancelPath, &bankid.CancelRequest{OrderRef: orderRef}, nil)
}

func (c *Client) post(ctx context.Context, path string, request, response any) error {
	req, err := httphelper.JSONRequest(ctx, c.endpoint+path, request)
	if err != nil {
		return err
	}
	err = httphelper.HttpRequest(c.httpClient, req, response)
	if err != nil {
		c.logger.ErrorContext(ctx, "bankid api call failed", "path", path, "error", err)
		return err
	}
	return nil
}
