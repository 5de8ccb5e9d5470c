package flow

import (
	"net/url"

	"github.com/zitadel/schema"

	"github.com/norlig/bankid/pkg/device"
	httphelper "github.com/norlig/bankid/pkg/http"
)

const (
	// SchemeURI launches the app through the bankid URI scheme. Works on
	// desktop and on every mobile platform except iOS.
	SchemeURI = "bankid:///"

	// UniversalLinkURI launches the app through its universal link. iOS
	// refuses custom scheme launches from Safari, so iOS devices always
	// get this one.
	UniversalLinkURI = "https://app.bankid.com/"

	// NullRedirect tells the app not to redirect anywhere when the order
	// completes. Used on desktop, where the app and the browser are
	// separate programs.
	NullRedirect = "null"
)

// LaunchRequest describes one launch of the authenticating app.
type LaunchRequest struct {
	// ReturnURL is the absolute URL the app should open after the user
	// completes or cancels the order. Ignored on desktop devices.
	ReturnURL      string
	AutoStartToken string
}

// LaunchInfo is the launch URL plus the client behavior hints the requesting
// device needs to drive the launch correctly.
type LaunchInfo struct {
	LaunchURL string

	// DeviceWillReloadPageOnReturn is set when returning from the app
	// reloads the page, so the client must not keep polling in the
	// background. iOS Safari behaves this way.
	DeviceWillReloadPageOnReturn bool

	// DeviceMightRequireUserInteraction is set when the browser may block
	// a scripted navigation to the launch URL, requiring the client to
	// render a link the user taps instead.
	DeviceMightRequireUserInteraction bool
}

// Launcher resolves the launch strategy for a device.
type Launcher interface {
	LaunchInfo(request LaunchRequest, dev device.Device) LaunchInfo
}

type launchQuery struct {
	AutoStartToken string `schema:"autostarttoken"`
	Redirect       string `schema:"redirect"`
}

type defaultLauncher struct {
	encoder httphelper.Encoder
}

// NewLauncher returns the standard launcher: universal link on iOS, URI
// scheme everywhere else, null redirect on desktop.
func NewLauncher() Launcher {
	return &defaultLauncher{encoder: schema.NewEncoder()}
}

func (l *defaultLauncher) LaunchInfo(request LaunchRequest, dev device.Device) LaunchInfo {
	query := launchQuery{
		AutoStartToken: request.AutoStartToken,
		Redirect:       request.ReturnURL,
	}
	if !dev.Mobile() {
		query.Redirect = NullRedirect
	}
	base := SchemeURI
	if dev.OS == device.OSIOS {
		base = UniversalLinkURI
	}
	values, err := httphelper.URLEncodeParams(query, l.encoder)
	if err != nil {
		// the encoder cannot fail on a struct of strings
		values = make(url.Values)
	}
	return LaunchInfo{
		LaunchURL:                         base + "?" + values.Encode(),
		DeviceWillReloadPageOnReturn:      dev.OS == device.OSIOS,
		DeviceMightRequireUserInteraction: dev.OS == device.OSIOS,
	}
}
