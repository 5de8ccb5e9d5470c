package flow

// LoginOptions is the per-session configuration resolved when the login page
// was rendered. It travels with the client as a protected token and is never
// mutated after creation; every request decodes its own copy.
type LoginOptions struct {
	// AllowChangingIdentity lets the user type a personal number on the
	// login page. When false the session is identity-fixed: PersonalNumber
	// is used as is, or the order runs without one.
	AllowChangingIdentity bool `json:"allowChangingIdentity"`

	// PersonalNumber is the preset identity in 12 digit form, empty when
	// the authenticating app supplies the identity.
	PersonalNumber string `json:"personalNumber,omitempty"`

	// AutoLaunch instructs the client to open the BankID app through a
	// launch URL.
	AutoLaunch bool `json:"autoLaunch"`

	// UseQRCode presents the autostart token as a QR code for another
	// device instead.
	UseQRCode bool `json:"useQRCode"`

	AllowBiometric bool `json:"allowBiometric"`

	// CertificatePolicies restricts the BankID types allowed to complete
	// the order, in the order they were configured.
	CertificatePolicies []string `json:"certificatePolicies,omitempty"`
}

// IdentityProvided reports whether the user identity is known to the relying
// party before the order completes, either preset or typed by the user.
// It selects between the "start the app" and "scan / autostart" user
// messages.
func (o *LoginOptions) IdentityProvided() bool {
	return o.AllowChangingIdentity || o.PersonalNumber != ""
}
