package flow

import (
	"context"
	"errors"
	"log/slog"

	"github.com/norlig/bankid/internal/otel"
	"github.com/norlig/bankid/pkg/bankid"
	"github.com/norlig/bankid/pkg/device"
	"github.com/norlig/bankid/pkg/usermessage"
)

var Tracer = otel.Tracer("github.com/norlig/bankid/pkg/flow")

// Input errors. HTTP surfaces map these to a client error response; every
// other error from the flow is a server fault.
var (
	ErrMissingInput = errors.New("missing required input")

	// ErrNonLocalReturnURL guards against open redirects: the configured
	// return URL escaped the current host. This is a server side
	// misconfiguration, not a user error.
	ErrNonLocalReturnURL = errors.New("return url is not local to this host")

	// ErrMissingCompletionData means the RP API reported a completed order
	// without the user data that must accompany it.
	ErrMissingCompletionData = errors.New("completion data missing on completed order")
)

// DefaultMaxRetryAttempts bounds how many times a session re-initializes
// after the app failed to pick up the order.
const DefaultMaxRetryAttempts = 5

// APIClient is the subset of the RP API the flow drives. *client.Client
// implements it.
type APIClient interface {
	Auth(ctx context.Context, request *bankid.AuthRequest) (*bankid.AuthResponse, error)
	Collect(ctx context.Context, orderRef string) (*bankid.CollectResponse, error)
	Cancel(ctx context.Context, orderRef string) error
}

// Flow orchestrates login sessions against the RP API. It keeps no session
// state of its own; everything a request needs arrives in protected tokens
// held by the client.
type Flow struct {
	api       APIClient
	protector Protector
	launcher  Launcher
	qr        QRGenerator
	events    EventTrigger
	localizer *usermessage.Localizer
	logger    *slog.Logger
	detect    func(userAgent string) device.Device

	maxRetryAttempts int

	// loginPath is the path of the page driving the flow, used to build
	// the URL the app returns to.
	loginPath string
}

type Option func(*Flow)

func WithLauncher(launcher Launcher) Option {
	return func(f *Flow) {
		f.launcher = launcher
	}
}

func WithQRGenerator(qr QRGenerator) Option {
	return func(f *Flow) {
		f.qr = qr
	}
}

// WithEventTrigger registers the audit event sink. Defaults to the hashing
// log trigger.
func WithEventTrigger(events EventTrigger) Option {
	return func(f *Flow) {
		f.events = events
	}
}

func WithLocalizer(localizer *usermessage.Localizer) Option {
	return func(f *Flow) {
		f.localizer = localizer
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(f *Flow) {
		f.logger = logger
	}
}

// WithMaxRetryAttempts overrides DefaultMaxRetryAttempts.
func WithMaxRetryAttempts(attempts int) Option {
	return func(f *Flow) {
		f.maxRetryAttempts = attempts
	}
}

// WithLoginPath sets the path the app launch returns to. Defaults to
// "/bankid/login".
func WithLoginPath(path string) Option {
	return func(f *Flow) {
		f.loginPath = path
	}
}

// WithDeviceDetector overrides user agent detection.
func WithDeviceDetector(detect func(userAgent string) device.Device) Option {
	return func(f *Flow) {
		f.detect = detect
	}
}

func New(api APIClient, protector Protector, options ...Option) *Flow {
	f := &Flow{
		api:              api,
		protector:        protector,
		launcher:         NewLauncher(),
		qr:               NewQRGenerator(),
		localizer:        usermessage.NewLocalizer(),
		logger:           slog.Default(),
		detect:           device.Detect,
		maxRetryAttempts: DefaultMaxRetryAttempts,
		loginPath:        "/bankid/login",
	}
	for _, option := range options {
		option(f)
	}
	if f.events == nil {
		f.events = NewLogEventTrigger(f.logger)
	}
	return f
}

func (f *Flow) collectMessage(acceptLanguage string, response *bankid.CollectResponse, options *LoginOptions, dev device.Device) string {
	name := usermessage.ForCollectResponse(
		response.Status,
		response.HintCode,
		options.IdentityProvided(),
		dev.Mobile(),
		options.UseQRCode,
	)
	return f.localizer.Localize(acceptLanguage, name)
}

func (f *Flow) apiErrorMessage(acceptLanguage string, err error) string {
	apiErr := bankid.DefaultToInternalError(err, "")
	return f.localizer.Localize(acceptLanguage, usermessage.ForAPIError(apiErr.ErrorCode))
}
