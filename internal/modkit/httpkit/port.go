// Package httpkit provides tiny HTTP helpers and adapters
package httpkit

import (
	"net/http"
	"strings"

	perrs "mouthwash/internal/platform/errors"
)

// KeyFunc resolves a raw API key to the client id that owns it
// implementations typically close over a config map or a store lookup
type KeyFunc func(key string) (clientID string, err error)

// Port implements middleware.KeyPort by reading the request credentials and delegating to a KeyFunc
type Port struct {
	resolve KeyFunc
}

// NewPortFunc builds a Port from a simple resolver function
func NewPortFunc(fn KeyFunc) *Port {
	return &Port{resolve: fn}
}

// Verify extracts the API key from X-API-Key or an Authorization Bearer header
// returns unauthorized when the key is missing, malformed, or the resolver rejects it
func (p *Port) Verify(r *http.Request) (string, error) {
	raw := RawKey(r)
	if raw == "" {
		return "", perrs.Unauthorizedf("missing api key")
	}

	if p.resolve == nil {
		return "", perrs.Unauthorizedf("invalid api key")
	}

	cid, err := p.resolve(raw)
	if err != nil {
		return "", perrs.Unauthorizedf("invalid api key")
	}
	return cid, nil
}

// RawKey returns the credential presented on the request, or "" when absent.
// X-API-Key wins over an Authorization Bearer token
func RawKey(r *http.Request) string {
	if k := strings.TrimSpace(r.Header.Get("X-API-Key")); k != "" {
		return k
	}
	authz := strings.TrimSpace(r.Header.Get("Authorization"))
	if authz == "" {
		return ""
	}
	const prefix = "bearer"
	if !strings.HasPrefix(strings.ToLower(authz), prefix) {
		return ""
	}
	return strings.TrimSpace(authz[len(prefix):])
}
