package bankid

// AuthRequest implements the auth order request of the BankID Relying Party
// API, https://www.bankid.com/en/utvecklare/guider/teknisk-integrationsguide.
type AuthRequest struct {
	// EndUserIP is the IP address of the end user as seen by the relying
	// party, i.e. the browser that started the order, not the RP backend.
	EndUserIP string `json:"endUserIp"`

	// PersonalNumber restricts the order to one identity. When empty any
	// BankID on the receiving device may complete the order.
	PersonalNumber string `json:"personalNumber,omitempty"`

	Requirement *Requirement `json:"requirement,omitempty"`
}

// Requirement restricts how an order may be completed.
type Requirement struct {
	// CertificatePolicies holds the OIDs of the BankID types allowed to
	// complete the order, e.g. "1.2.752.78.1.5" for Mobile BankID.
	CertificatePolicies []string `json:"certificatePolicies,omitempty"`

	// AutoStartTokenRequired forces the app to be started with the
	// autostart token of the order. Required whenever no personal number
	// binds the order to an identity, as anyone could otherwise pick the
	// order up.
	AutoStartTokenRequired *bool `json:"autoStartTokenRequired,omitempty"`

	// AllowFingerprint permits fingerprint (biometric) confirmation
	// instead of the security code.
	AllowFingerprint *bool `json:"allowFingerprint,omitempty"`
}

// AuthResponse is returned when an auth order was created.
type AuthResponse struct {
	// OrderRef identifies the order in subsequent collect and cancel calls.
	OrderRef string `json:"orderRef"`

	// AutoStartToken binds an app started through a launch URL or QR code
	// to this particular order.
	AutoStartToken string `json:"autoStartToken"`
}
