package flow

import (
	"net"
	"net/http"
	"strings"

	"github.com/muhlemmer/httpforwarded"
)

// EndUserIPFromRequest resolves the address of the end user device, which the
// RP API requires on every auth call. Forwarded (RFC 7239) takes precedence,
// then X-Forwarded-For, then the peer address of the connection.
func EndUserIPFromRequest(r *http.Request) string {
	if fwd, err := httpforwarded.Parse(r.Header.Values("Forwarded")); err == nil && len(fwd["for"]) > 0 {
		if host := stripPort(fwd["for"][0]); host != "" {
			return host
		}
	}
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if host := stripPort(strings.TrimSpace(first)); host != "" {
			return host
		}
	}
	return stripPort(r.RemoteAddr)
}

// OriginFromRequest resolves the public scheme and host of this deployment,
// used to build absolute return URLs for app launches. Honors Forwarded
// proto and host set by reverse proxies.
func OriginFromRequest(r *http.Request) string {
	scheme := "https"
	if r.TLS == nil {
		scheme = "http"
	}
	host := r.Host
	if fwd, err := httpforwarded.Parse(r.Header.Values("Forwarded")); err == nil {
		if len(fwd["proto"]) > 0 {
			scheme = fwd["proto"][0]
		}
		if len(fwd["host"]) > 0 {
			host = fwd["host"][0]
		}
	}
	return scheme + "://" + host
}

func stripPort(addr string) string {
	addr = strings.Trim(addr, `"`)
	if host, _, err := net.SplitHostPort(addr); err == nil {
		return strings.Trim(host, "[]")
	}
	return strings.Trim(addr, "[]")
}
