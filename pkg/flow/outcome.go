package flow

// InitializeOutcome is the result of starting a login session. Exactly one
// of the implementations below is returned; callers switch on the type and
// must treat an unknown type as a programming error.
type InitializeOutcome interface {
	initializeOutcome()
}

// InitializeAutoLaunch tells the client to open the authenticating app.
type InitializeAutoLaunch struct {
	OrderRefToken string
	LaunchURL     string

	// CheckStatus is false when the device reloads the page on return from
	// the app, in which case polling must wait for the reload.
	CheckStatus bool

	// DeviceMightRequireUserInteraction is set when the client should
	// render a tappable link instead of navigating by script.
	DeviceMightRequireUserInteraction bool
}

// InitializeManualLaunch tells the client to poll while the user starts the
// app themselves, with a QR code when the session asked for one.
type InitializeManualLaunch struct {
	OrderRefToken string

	// QRCode is a base64 PNG, empty when the session does not use QR.
	QRCode string
}

// InitializeValidationFailure reports invalid user input. No order was
// started.
type InitializeValidationFailure struct {
	Field   string
	Message string
}

// InitializeAPIError reports that the RP API rejected or failed the auth
// call. Message is safe to show to the user.
type InitializeAPIError struct {
	Message string
}

func (*InitializeAutoLaunch) initializeOutcome()        {}
func (*InitializeManualLaunch) initializeOutcome()      {}
func (*InitializeValidationFailure) initializeOutcome() {}
func (*InitializeAPIError) initializeOutcome()          {}

// StatusOutcome is the result of one status poll.
type StatusOutcome interface {
	statusOutcome()
}

// StatusPending means the order is still in progress; poll again.
type StatusPending struct {
	Message string
}

// StatusRetry means the app failed to pick up the order and the client
// should initialize a fresh one with the same session options.
type StatusRetry struct {
	Message string
}

// StatusFinished means the order completed; the client navigates to
// RedirectURL, which carries the protected login result.
type StatusFinished struct {
	RedirectURL string
}

// StatusFailure means the order ended without a completed authentication.
type StatusFailure struct {
	Message string
}

// StatusAPIError reports that the RP API rejected or failed the collect
// call.
type StatusAPIError struct {
	Message string
}

func (*StatusPending) statusOutcome()  {}
func (*StatusRetry) statusOutcome()    {}
func (*StatusFinished) statusOutcome() {}
func (*StatusFailure) statusOutcome()  {}
func (*StatusAPIError) statusOutcome() {}

// CancelAccepted is the single outcome of a cancel request. Cancellation is
// best effort: an order that already reached a terminal state cancels to the
// same observable result.
type CancelAccepted struct{}
