package device

import (
	"crypto/md5"
	"encoding/hex"
	"net"
	"net/http"
	"strings"
)

// Metadata is the connection metadata a device identity is derived from.
type Metadata struct {
	UserAgent  string
	ClientAddr string
}

// FromRequest collects device metadata from an HTTP request, preferring
// proxy-forwarded addresses when present.
func FromRequest(r *http.Request) Metadata {
	return Metadata{
		UserAgent:  r.UserAgent(),
		ClientAddr: clientAddr(r),
	}
}

// ID returns the device identity for this metadata.
func (m Metadata) ID() string {
	return Derive(m.UserAgent, m.ClientAddr)
}

// Derive computes a stable fingerprint for a calling client. The value is
// advisory: it scopes session revocation to a device and raises the bar for
// replaying a stolen refresh token, but it is spoofable and is never an
// authorization input, so a non-cryptographic digest is enough.
// Missing inputs degrade to the empty string rather than an error.
func Derive(userAgent, clientAddr string) string {
	sum := md5.Sum([]byte(userAgent + clientAddr))
	return hex.EncodeToString(sum[:])
}

func clientAddr(r *http.Request) string {
	if v := r.Header.Get("X-Forwarded-For"); v != "" {
		// First hop is the original client.
		if i := strings.IndexByte(v, ','); i >= 0 {
			v = v[:i]
		}
		return strings.TrimSpace(v)
	}
	if v := r.Header.Get("X-Real-IP"); v != "" {
		return v
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
