package flow

import (
	"context"
	"fmt"
	"log/slog"
)

// CancelRequest abandons the order of a login session.
type CancelRequest struct {
	OrderRefToken string
	UserAgent     string
}

// Cancel tells the RP API to abandon the order. The outcome is the same
// whether the remote cancel succeeded or not; an order that already reached
// a terminal state cannot be cancelled and that is not the user's problem.
// The two cases emit different audit events.
func (f *Flow) Cancel(ctx context.Context, request *CancelRequest) (_ *CancelAccepted, err error) {
	ctx, span := Tracer.Start(ctx, "Cancel")
	defer span.End()

	if request.OrderRefToken == "" {
		return nil, fmt.Errorf("%w: orderRef", ErrMissingInput)
	}
	orderRef, err := f.protector.UnprotectOrderRef(request.OrderRefToken)
	if err != nil {
		return nil, err
	}
	dev := f.detect(request.UserAgent)

	if err := f.api.Cancel(ctx, orderRef.OrderRef); err != nil {
		f.loggerFromCtx(ctx).WarnContext(ctx, "cancel order failed", slog.Any("error", err))
		event := newEvent(EventTypeCancelError)
		event.OrderRef = orderRef.OrderRef
		event.Device = dev
		event.Err = err
		f.events.Trigger(ctx, event)
		return &CancelAccepted{}, nil
	}

	event := newEvent(EventTypeCancelSuccess)
	event.OrderRef = orderRef.OrderRef
	event.Device = dev
	f.events.Trigger(ctx, event)
	return &CancelAccepted{}, nil
}
