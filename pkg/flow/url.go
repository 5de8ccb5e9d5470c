package flow

import (
	"net/url"
	"strings"
)

// IsLocalURL reports whether rawURL stays within the current host: a
// rooted path without scheme, host or protocol-relative prefix. Redirects
// produced by the flow must satisfy this before they are handed to the
// client.
func IsLocalURL(rawURL string) bool {
	if rawURL == "" {
		return false
	}
	if !strings.HasPrefix(rawURL, "/") {
		return false
	}
	if strings.HasPrefix(rawURL, "//") || strings.HasPrefix(rawURL, "/\\") {
		return false
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return u.Scheme == "" && u.Host == ""
}

// AppendQueryParam adds one query parameter to rawURL, preserving any
// existing query and fragment.
func AppendQueryParam(rawURL, name, value string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	query := u.Query()
	query.Set(name, value)
	u.RawQuery = query.Encode()
	return u.String()
}
