package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	perr "mouthwash/internal/platform/errors"
	pnet "mouthwash/internal/platform/net"
)

// KeyPort resolves API credentials presented on a request to a client id
type KeyPort interface {
	// Verify returns the client id that owns the presented key or an error
	Verify(r *http.Request) (clientID string, err error)
}

// APIKey guards routes behind the key port. A nil port disables the check
// so local development can run without credentials
func APIKey(p KeyPort, write func(w http.ResponseWriter, status int, body any)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if p == nil {
				next.ServeHTTP(w, r)
				return
			}
			cid, err := p.Verify(r)
			if err != nil {
				status, body := pnet.Error(err, pnet.RequestID(r.Context()))
				write(w, status, body)
				return
			}
			ctx := pnet.WithClient(r.Context(), cid)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// StaticKeys is a KeyPort backed by a fixed key -> client id map,
// typically loaded from config at boot
type StaticKeys map[string]string

// ParseStaticKeys builds StaticKeys from "key:client" pairs, typically a CSV
// env value. A pair without a client id maps to "default"
func ParseStaticKeys(pairs []string) StaticKeys {
	sk := make(StaticKeys, len(pairs))
	for _, p := range pairs {
		k, cid, ok := strings.Cut(p, ":")
		k = strings.TrimSpace(k)
		if k == "" {
			continue
		}
		cid = strings.TrimSpace(cid)
		if !ok || cid == "" {
			cid = "default"
		}
		sk[k] = cid
	}
	return sk
}

// Verify checks X-API-Key then an Authorization bearer token against the map
func (s StaticKeys) Verify(r *http.Request) (string, error) {
	key := r.Header.Get("X-API-Key")
	if key == "" {
		if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
			key = strings.TrimPrefix(h, "Bearer ")
		}
	}
	if key == "" {
		return "", perr.Unauthorizedf("missing api key")
	}
	for k, cid := range s {
		if subtle.ConstantTimeCompare([]byte(k), []byte(key)) == 1 {
			return cid, nil
		}
	}
	return "", perr.Unauthorizedf("unknown api key")
}
