package mock

import (
	"testing"

	"github.com/golang/mock/gomock"

	"github.com/norlig/bankid/pkg/bankid"
	"github.com/norlig/bankid/pkg/flow"
)

func NewAPIClient(t *testing.T) *MockAPIClient {
	return NewMockAPIClient(gomock.NewController(t))
}

// NewAPIClientExpectAuth returns a client whose next auth call succeeds with
// the given order.
func NewAPIClientExpectAuth(t *testing.T, orderRef, autoStartToken string) *MockAPIClient {
	m := NewAPIClient(t)
	m.EXPECT().Auth(gomock.Any(), gomock.Any()).Return(&bankid.AuthResponse{
		OrderRef:       orderRef,
		AutoStartToken: autoStartToken,
	}, nil)
	return m
}

// NewAPIClientExpectCollect returns a client whose next collect call yields
// the given response.
func NewAPIClientExpectCollect(t *testing.T, response *bankid.CollectResponse) *MockAPIClient {
	m := NewAPIClient(t)
	m.EXPECT().Collect(gomock.Any(), gomock.Any()).Return(response, nil)
	return m
}

func NewEventTrigger(t *testing.T) *MockEventTrigger {
	return NewMockEventTrigger(gomock.NewController(t))
}

// NewEventTriggerExpect returns a trigger expecting exactly the given event
// types, in order.
func NewEventTriggerExpect(t *testing.T, eventTypes ...flow.EventType) *MockEventTrigger {
	m := NewEventTrigger(t)
	calls := make([]*gomock.Call, 0, len(eventTypes))
	for _, eventType := range eventTypes {
		calls = append(calls, m.EXPECT().Trigger(gomock.Any(), eventTypeMatcher{eventType}))
	}
	gomock.InOrder(calls...)
	return m
}

type eventTypeMatcher struct {
	eventType flow.EventType
}

func (m eventTypeMatcher) Matches(x interface{}) bool {
	event, ok := x.(*flow.Event)
	return ok && event.Type == m.eventType
}

func (m eventTypeMatcher) String() string {
	return "event of type " + string(m.eventType)
}
