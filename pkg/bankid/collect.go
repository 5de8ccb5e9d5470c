package bankid

// CollectStatus is the overall state of an order as reported by collect.
type CollectStatus string

const (
	CollectStatusPending  CollectStatus = "pending"
	CollectStatusComplete CollectStatus = "complete"
	CollectStatusFailed   CollectStatus = "failed"
)

// CollectHintCode qualifies a pending or failed collect status.
// The list follows the BankID Relying Party Guidelines; unknown codes must be
// tolerated as new ones may be introduced by the remote API at any time.
type CollectHintCode string

const (
	// pending order hints
	HintCodeOutstandingTransaction CollectHintCode = "outstandingTransaction"
	HintCodeNoClient               CollectHintCode = "noClient"
	HintCodeStarted                CollectHintCode = "started"
	HintCodeUserSign               CollectHintCode = "userSign"

	// failed order hints
	HintCodeExpiredTransaction CollectHintCode = "expiredTransaction"
	HintCodeCertificateErr     CollectHintCode = "certificateErr"
	HintCodeUserCancel         CollectHintCode = "userCancel"
	HintCodeCancelled          CollectHintCode = "cancelled"
	HintCodeStartFailed        CollectHintCode = "startFailed"
)

// CollectRequest asks for the current state of an order.
type CollectRequest struct {
	OrderRef string `json:"orderRef"`
}

// CollectResponse is the result of one poll against the collect endpoint.
// HintCode is only meaningful while Status is pending or failed,
// CompletionData only when Status is complete.
type CollectResponse struct {
	OrderRef       string          `json:"orderRef"`
	Status         CollectStatus   `json:"status"`
	HintCode       CollectHintCode `json:"hintCode,omitempty"`
	CompletionData *CompletionData `json:"completionData,omitempty"`
}

// Pending reports whether the order is still in flight.
func (c *CollectResponse) Pending() bool {
	return c.Status == CollectStatusPending
}

// Complete reports whether the order finished successfully.
func (c *CollectResponse) Complete() bool {
	return c.Status == CollectStatusComplete
}

// CompletionData carries the outcome of a completed order.
type CompletionData struct {
	User         *User       `json:"user,omitempty"`
	Device       *UserDevice `json:"device,omitempty"`
	Cert         *Cert       `json:"cert,omitempty"`
	Signature    string      `json:"signature,omitempty"`
	OCSPResponse string      `json:"ocspResponse,omitempty"`
}

// User holds the authenticated identity.
type User struct {
	PersonalNumber string `json:"personalNumber"`
	Name           string `json:"name"`
	GivenName      string `json:"givenName"`
	Surname        string `json:"surname"`
}

// UserDevice is the device the order was completed on.
type UserDevice struct {
	IPAddress string `json:"ipAddress"`
}

// Cert holds the validity bounds of the user certificate, as unix epoch
// milliseconds encoded as strings by the remote API.
type Cert struct {
	NotBefore string `json:"notBefore"`
	NotAfter  string `json:"notAfter"`
}
