// Package simulator fakes the BankID RP API for local development. Orders
// progress one hint per collect call and complete on their own, no app
// involved.
package simulator

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/norlig/bankid/pkg/bankid"
)

type order struct {
	personalNumber string
	collects       int
	cancelled      bool
}

type Simulator struct {
	mu     sync.Mutex
	orders map[string]*order

	// used for completion data when the order was started without an
	// identity
	defaultPersonalNumber string
}

func New() *Simulator {
	return &Simulator{
		orders:                make(map[string]*order),
		defaultPersonalNumber: "199001012391",
	}
}

func (s *Simulator) Auth(ctx context.Context, request *bankid.AuthRequest) (*bankid.AuthResponse, error) {
	if request.EndUserIP == "" {
		return nil, bankid.ErrInvalidParameters().WithDetails("endUserIp is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	orderRef := uuid.NewString()
	s.orders[orderRef] = &order{personalNumber: request.PersonalNumber}
	return &bankid.AuthResponse{
		OrderRef:       orderRef,
		AutoStartToken: uuid.NewString(),
	}, nil
}

// collect sequence before the order completes
var pendingHints = []bankid.CollectHintCode{
	bankid.HintCodeOutstandingTransaction,
	bankid.HintCodeOutstandingTransaction,
	bankid.HintCodeStarted,
	bankid.HintCodeUserSign,
}

func (s *Simulator) Collect(ctx context.Context, orderRef string) (*bankid.CollectResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.orders[orderRef]
	if !ok {
		return nil, bankid.ErrInvalidParameters().WithDetails("no such order")
	}
	if o.cancelled {
		return &bankid.CollectResponse{
			OrderRef: orderRef,
			Status:   bankid.CollectStatusFailed,
			HintCode: bankid.HintCodeCancelled,
		}, nil
	}
	if o.collects < len(pendingHints) {
		hint := pendingHints[o.collects]
		o.collects++
		return &bankid.CollectResponse{
			OrderRef: orderRef,
			Status:   bankid.CollectStatusPending,
			HintCode: hint,
		}, nil
	}

	personalNumber := o.personalNumber
	if personalNumber == "" {
		personalNumber = s.defaultPersonalNumber
	}
	delete(s.orders, orderRef)
	return &bankid.CollectResponse{
		OrderRef: orderRef,
		Status:   bankid.CollectStatusComplete,
		CompletionData: &bankid.CompletionData{
			User: &bankid.User{
				PersonalNumber: personalNumber,
				Name:           "Test Person",
				GivenName:      "Test",
				Surname:        "Person",
			},
			Device: &bankid.UserDevice{IPAddress: "127.0.0.1"},
		},
	}, nil
}

func (s *Simulator) Cancel(ctx context.Context, orderRef string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.orders[orderRef]
	if !ok {
		return bankid.ErrInvalidParameters().WithDetails("no such order")
	}
	o.cancelled = true
	return nil
}
