package flow

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/norlig/bankid/pkg/bankid"
	"github.com/norlig/bankid/pkg/device"
)

type EventType string

const (
	EventTypeAuthSuccess      EventType = "auth_success"
	EventTypeAuthError        EventType = "auth_error"
	EventTypeCollectPending   EventType = "collect_pending"
	EventTypeCollectCompleted EventType = "collect_completed"
	EventTypeCollectError     EventType = "collect_error"
	EventTypeCancelSuccess    EventType = "cancel_success"
	EventTypeCancelError      EventType = "cancel_error"
)

// Event is one audit record of a state transition in a login session.
// Triggers run before the response for the transition is produced.
type Event struct {
	ID   string
	Time time.Time
	Type EventType

	// OrderRef is the remote order identifier, empty for transitions that
	// happen before an order exists.
	OrderRef string

	// PersonalNumber is the identity in 12 digit form when known.
	PersonalNumber string

	HintCode bankid.CollectHintCode
	Device   device.Device

	// CompletionData is set on collect_completed only.
	CompletionData *bankid.CompletionData

	// Err is set on the error event types.
	Err error
}

func newEvent(eventType EventType) *Event {
	return &Event{
		ID:   uuid.NewString(),
		Time: time.Now(),
		Type: eventType,
	}
}

// EventTrigger receives audit events. Implementations must not block for
// long and must not fail the login session; errors stay inside the trigger.
type EventTrigger interface {
	Trigger(ctx context.Context, event *Event)
}

// EventTriggers fans out to every trigger in order.
type EventTriggers []EventTrigger

func (t EventTriggers) Trigger(ctx context.Context, event *Event) {
	for _, trigger := range t {
		trigger.Trigger(ctx, event)
	}
}

type logEventTrigger struct {
	logger *slog.Logger
}

// NewLogEventTrigger returns a trigger that writes events to a structured
// logger. Order references and personal numbers are hashed, the log must not
// become a side channel for session state.
func NewLogEventTrigger(logger *slog.Logger) EventTrigger {
	if logger == nil {
		logger = slog.Default()
	}
	return &logEventTrigger{logger: logger}
}

func (t *logEventTrigger) Trigger(ctx context.Context, event *Event) {
	attrs := []any{
		slog.String("event_id", event.ID),
		slog.String("event_type", string(event.Type)),
	}
	if event.OrderRef != "" {
		attrs = append(attrs, slog.String("order_ref_hash", hashAttr(event.OrderRef)))
	}
	if event.PersonalNumber != "" {
		attrs = append(attrs, slog.String("personal_number_hash", hashAttr(event.PersonalNumber)))
	}
	if event.HintCode != "" {
		attrs = append(attrs, slog.String("hint_code", string(event.HintCode)))
	}
	if event.Device.Type != "" {
		attrs = append(attrs,
			slog.String("device_type", string(event.Device.Type)),
			slog.String("device_os", string(event.Device.OS)),
		)
	}
	if event.Err != nil {
		attrs = append(attrs, slog.Any("error", event.Err))
		t.logger.ErrorContext(ctx, "bankid event", attrs...)
		return
	}
	t.logger.InfoContext(ctx, "bankid event", attrs...)
}

func hashAttr(value string) string {
	sum := sha256.Sum256([]byte(value))
	return hex.EncodeToString(sum[:8])
}
