package flow

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/muhlemmer/gu"

	"github.com/norlig/bankid/pkg/bankid"
	"github.com/norlig/bankid/pkg/device"
	"github.com/norlig/bankid/pkg/identity"
)

// InitializeRequest starts a new order within a login session.
type InitializeRequest struct {
	// LoginOptionsToken is the protected session configuration issued when
	// the login page was rendered.
	LoginOptionsToken string

	// ReturnURL is the local URL the user lands on after authentication.
	ReturnURL string

	// PersonalNumber is the raw user input. Only consulted when the
	// session allows the user to choose the identity.
	PersonalNumber string

	// EndUserIP is the address of the end user device.
	EndUserIP string

	// Origin is the public scheme and host of this deployment, for
	// building the absolute URL the app returns to.
	Origin string

	UserAgent      string
	AcceptLanguage string
}

const invalidPersonalNumberMessage = "Invalid personal identity number."

// Initialize starts one order at the RP API and wraps its reference into a
// protected token. Identity resolution never mixes sources: an
// identity-fixed session uses only the embedded identity, any other session
// parses only the raw input.
func (f *Flow) Initialize(ctx context.Context, request *InitializeRequest) (_ InitializeOutcome, err error) {
	ctx, span := Tracer.Start(ctx, "Initialize")
	defer span.End()

	if request.LoginOptionsToken == "" || request.ReturnURL == "" {
		return nil, fmt.Errorf("%w: loginOptions and returnUrl", ErrMissingInput)
	}
	if !IsLocalURL(request.ReturnURL) {
		return nil, ErrNonLocalReturnURL
	}
	options, err := f.protector.UnprotectLoginOptions(request.LoginOptionsToken)
	if err != nil {
		return nil, err
	}
	dev := f.detect(request.UserAgent)

	personalNumber := options.PersonalNumber
	if options.AllowChangingIdentity {
		pin, err := identity.Parse(request.PersonalNumber)
		if err != nil {
			return &InitializeValidationFailure{
				Field:   "personalIdentityNumber",
				Message: invalidPersonalNumberMessage,
			}, nil
		}
		personalNumber = pin.String12()
	}

	response, err := f.api.Auth(ctx, f.authRequest(request.EndUserIP, personalNumber, options))
	if err != nil {
		f.loggerFromCtx(ctx).ErrorContext(ctx, "auth order failed", slog.Any("error", err))
		event := newEvent(EventTypeAuthError)
		event.PersonalNumber = personalNumber
		event.Device = dev
		event.Err = err
		f.events.Trigger(ctx, event)
		return &InitializeAPIError{Message: f.apiErrorMessage(request.AcceptLanguage, err)}, nil
	}

	orderRefToken, err := f.protector.ProtectOrderRef(&OrderRef{
		OrderRef:       response.OrderRef,
		AutoStartToken: response.AutoStartToken,
	})
	if err != nil {
		return nil, err
	}

	event := newEvent(EventTypeAuthSuccess)
	event.OrderRef = response.OrderRef
	event.PersonalNumber = personalNumber
	event.Device = dev
	f.events.Trigger(ctx, event)

	if options.AutoLaunch {
		return f.autoLaunchOutcome(request, options, response, orderRefToken, dev), nil
	}
	if options.UseQRCode {
		qrCode, err := f.qr.QRCode(response.AutoStartToken)
		if err != nil {
			return nil, err
		}
		return &InitializeManualLaunch{OrderRefToken: orderRefToken, QRCode: qrCode}, nil
	}
	return &InitializeManualLaunch{OrderRefToken: orderRefToken}, nil
}

func (f *Flow) authRequest(endUserIP, personalNumber string, options *LoginOptions) *bankid.AuthRequest {
	requirement := &bankid.Requirement{
		CertificatePolicies: options.CertificatePolicies,
		AllowFingerprint:    gu.Ptr(options.AllowBiometric),
	}
	if personalNumber == "" {
		// without an identity the app must pick the order up through the
		// autostart token
		requirement.AutoStartTokenRequired = gu.Ptr(true)
	}
	return &bankid.AuthRequest{
		EndUserIP:      endUserIP,
		PersonalNumber: personalNumber,
		Requirement:    requirement,
	}
}

func (f *Flow) autoLaunchOutcome(
	request *InitializeRequest,
	options *LoginOptions,
	response *bankid.AuthResponse,
	orderRefToken string,
	dev device.Device,
) *InitializeAutoLaunch {
	launch := f.launcher.LaunchInfo(LaunchRequest{
		ReturnURL:      f.launchReturnURL(request.Origin, request.ReturnURL, request.LoginOptionsToken),
		AutoStartToken: response.AutoStartToken,
	}, dev)
	return &InitializeAutoLaunch{
		OrderRefToken:                     orderRefToken,
		LaunchURL:                         launch.LaunchURL,
		CheckStatus:                       !launch.DeviceWillReloadPageOnReturn,
		DeviceMightRequireUserInteraction: launch.DeviceMightRequireUserInteraction,
	}
}

// launchReturnURL builds the absolute URL that re-enters the login page
// after the app hands control back, carrying the session forward.
func (f *Flow) launchReturnURL(origin, returnURL, loginOptionsToken string) string {
	query := url.Values{
		"returnUrl":    {returnURL},
		"loginOptions": {loginOptionsToken},
	}
	return origin + f.loginPath + "?" + query.Encode()
}
