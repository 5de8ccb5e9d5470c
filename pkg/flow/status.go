package flow

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/norlig/bankid/pkg/bankid"
	"github.com/norlig/bankid/pkg/device"
)

// StatusRequest polls the order of a login session.
type StatusRequest struct {
	LoginOptionsToken string
	OrderRefToken     string
	ReturnURL         string

	// AutoStartAttempts counts how many orders this session has already
	// started, maintained by the client across retries.
	AutoStartAttempts int

	UserAgent      string
	AcceptLanguage string
}

// Status collects the order once and classifies the result. A failed pickup
// is turned into a retry while the session has attempts left, so that a
// slow app start does not burn the whole session.
func (f *Flow) Status(ctx context.Context, request *StatusRequest) (_ StatusOutcome, err error) {
	ctx, span := Tracer.Start(ctx, "Status")
	defer span.End()

	if request.LoginOptionsToken == "" || request.OrderRefToken == "" || request.ReturnURL == "" {
		return nil, fmt.Errorf("%w: loginOptions, orderRef and returnUrl", ErrMissingInput)
	}
	options, err := f.protector.UnprotectLoginOptions(request.LoginOptionsToken)
	if err != nil {
		return nil, err
	}
	orderRef, err := f.protector.UnprotectOrderRef(request.OrderRefToken)
	if err != nil {
		return nil, err
	}
	dev := f.detect(request.UserAgent)

	response, err := f.api.Collect(ctx, orderRef.OrderRef)
	if err != nil {
		f.loggerFromCtx(ctx).ErrorContext(ctx, "collect order failed", slog.Any("error", err))
		event := newEvent(EventTypeCollectError)
		event.OrderRef = orderRef.OrderRef
		event.Device = dev
		event.Err = err
		f.events.Trigger(ctx, event)
		return &StatusAPIError{Message: f.apiErrorMessage(request.AcceptLanguage, err)}, nil
	}

	switch {
	case response.Pending():
		event := newEvent(EventTypeCollectPending)
		event.OrderRef = orderRef.OrderRef
		event.HintCode = response.HintCode
		event.Device = dev
		f.events.Trigger(ctx, event)
		return &StatusPending{Message: f.collectMessage(request.AcceptLanguage, response, options, dev)}, nil
	case response.Complete():
		return f.finish(ctx, request, response, dev)
	}

	if response.HintCode == bankid.HintCodeStartFailed && request.AutoStartAttempts < f.maxRetryAttempts {
		return &StatusRetry{Message: f.collectMessage(request.AcceptLanguage, response, options, dev)}, nil
	}

	event := newEvent(EventTypeCollectError)
	event.OrderRef = orderRef.OrderRef
	event.HintCode = response.HintCode
	event.Device = dev
	f.events.Trigger(ctx, event)
	return &StatusFailure{Message: f.collectMessage(request.AcceptLanguage, response, options, dev)}, nil
}

func (f *Flow) finish(ctx context.Context, request *StatusRequest, response *bankid.CollectResponse, dev device.Device) (StatusOutcome, error) {
	if response.CompletionData == nil || response.CompletionData.User == nil {
		return nil, ErrMissingCompletionData
	}
	user := response.CompletionData.User

	event := newEvent(EventTypeCollectCompleted)
	event.OrderRef = response.OrderRef
	event.PersonalNumber = user.PersonalNumber
	event.CompletionData = response.CompletionData
	event.Device = dev
	f.events.Trigger(ctx, event)

	resultToken, err := f.protector.ProtectLoginResult(&LoginResult{
		PersonalNumber: user.PersonalNumber,
		Name:           user.Name,
		GivenName:      user.GivenName,
		Surname:        user.Surname,
	})
	if err != nil {
		return nil, err
	}
	redirectURL := AppendQueryParam(request.ReturnURL, "loginResult", resultToken)
	if !IsLocalURL(redirectURL) {
		return nil, ErrNonLocalReturnURL
	}
	return &StatusFinished{RedirectURL: redirectURL}, nil
}
