package httpkit

import (
	"net/http"

	perrs "mouthwash/internal/platform/errors"
	pnet "mouthwash/internal/platform/net"
)

// Client returns the authenticated API client id from the request context
func Client(r *http.Request) (string, error) {
	cid := pnet.ClientID(r.Context())
	if cid == "" {
		return "", perrs.Unauthorizedf("missing api key")
	}
	return cid, nil
}

// MustClient returns the authenticated client id or panics
// only use on routes protected by the key middleware
func MustClient(r *http.Request) string {
	cid, err := Client(r)
	if err != nil {
		panic(err)
	}
	return cid
}
