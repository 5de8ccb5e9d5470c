// Package device classifies the browser environment of an end user from the
// User-Agent header. The classification is deliberately coarse; it only
// carries the distinctions the app launch strategy and user messages need.
package device

import "strings"

type Type string

const (
	TypeUnknown Type = "unknown"
	TypeDesktop Type = "desktop"
	TypeMobile  Type = "mobile"
	TypeTablet  Type = "tablet"
)

type OS string

const (
	OSUnknown OS = "unknown"
	OSWindows OS = "windows"
	OSMacOS   OS = "macos"
	OSLinux   OS = "linux"
	OSIOS     OS = "ios"
	OSAndroid OS = "android"
)

type Browser string

const (
	BrowserUnknown Browser = "unknown"
	BrowserChrome  Browser = "chrome"
	BrowserSafari  Browser = "safari"
	BrowserFirefox Browser = "firefox"
	BrowserEdge    Browser = "edge"
	BrowserSamsung Browser = "samsung"
	BrowserOpera   Browser = "opera"
)

// Device is the detected browser environment.
type Device struct {
	Type    Type
	OS      OS
	Browser Browser
}

// Mobile reports whether the device is handheld, tablets included.
func (d Device) Mobile() bool {
	return d.Type == TypeMobile || d.Type == TypeTablet
}

// Detect classifies a User-Agent header value. It never fails; everything it
// cannot place ends up in the unknown classes.
func Detect(userAgent string) Device {
	ua := strings.ToLower(userAgent)
	os, typ := detectOS(ua)
	return Device{
		Type:    typ,
		OS:      os,
		Browser: detectBrowser(ua),
	}
}

func detectOS(ua string) (OS, Type) {
	switch {
	case strings.Contains(ua, "ipad"):
		return OSIOS, TypeTablet
	case strings.Contains(ua, "iphone"), strings.Contains(ua, "ipod"):
		return OSIOS, TypeMobile
	case strings.Contains(ua, "android"):
		// tablets identify as Android without the mobile token
		if strings.Contains(ua, "mobile") {
			return OSAndroid, TypeMobile
		}
		return OSAndroid, TypeTablet
	case strings.Contains(ua, "windows"):
		return OSWindows, TypeDesktop
	// must come after the ios check, iphone agents claim "like mac os x"
	case strings.Contains(ua, "mac os"), strings.Contains(ua, "macintosh"):
		return OSMacOS, TypeDesktop
	case strings.Contains(ua, "linux"), strings.Contains(ua, "x11"):
		return OSLinux, TypeDesktop
	default:
		return OSUnknown, TypeUnknown
	}
}

func detectBrowser(ua string) Browser {
	switch {
	case strings.Contains(ua, "edgios"), strings.Contains(ua, "edga"), strings.Contains(ua, "edg/"), strings.Contains(ua, "edge"):
		return BrowserEdge
	case strings.Contains(ua, "samsungbrowser"):
		return BrowserSamsung
	case strings.Contains(ua, "opr/"), strings.Contains(ua, "opt/"), strings.Contains(ua, "opera"):
		return BrowserOpera
	case strings.Contains(ua, "fxios"), strings.Contains(ua, "firefox"):
		return BrowserFirefox
	case strings.Contains(ua, "crios"), strings.Contains(ua, "chrome"):
		return BrowserChrome
	case strings.Contains(ua, "safari"):
		return BrowserSafari
	default:
		return BrowserUnknown
	}
}
