package bankid

// CancelRequest cancels an in-flight order. Cancelling an order that already
// reached a terminal state fails with ErrorCodeInvalidParameters.
type CancelRequest struct {
	OrderRef string `json:"orderRef"`
}

// CancelResponse is intentionally empty; a successful cancel returns an empty
// JSON object.
type CancelResponse struct{}
