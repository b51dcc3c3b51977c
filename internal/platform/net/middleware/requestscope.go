package middleware

import (
	"net/http"

	"mouthwash/internal/platform/logger"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// RequestScope copies the id minted by RequestID into the logger context,
// so logger.C emits request_id from any layer below the router
func RequestScope(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if rid := chimw.GetReqID(r.Context()); rid != "" {
			r = r.WithContext(logger.WithRequest(r.Context(), rid, ""))
		}
		next.ServeHTTP(w, r)
	})
}
