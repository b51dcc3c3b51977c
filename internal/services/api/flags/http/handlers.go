// Package http provides http transport for flags queries
package http

import (
	stdhttp "net/http"

	"mouthwash/internal/modkit/httpkit"
	"mouthwash/internal/services/api/flags/domain"
	svc "mouthwash/internal/services/api/flags/service"
)

// Register mounts flags endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	// keyset page over stored flags
	httpkit.PostJSON[domain.ListInput](r, "/list", h.list)

	// counts by kind plus top entries
	httpkit.PostJSON[domain.SummaryInput](r, "/summary", h.summary)
}

type handlers struct{ svc svc.Service }

// swagger:route POST /flags/list Flags flagsList
// @Summary List stored flags
// @Tags Flags
// @Accept json
// @Produce json
// @Param payload body domain.ListInput true "Query"
// @Success 200 {object} domain.ListResponse "ok"
// @Router /flags/list [post]
func (h *handlers) list(r *stdhttp.Request, in domain.ListInput) (any, error) {
	return h.svc.List(r.Context(), in)
}

// swagger:route POST /flags/summary Flags flagsSummary
// @Summary Summarize flags by kind and top entries
// @Tags Flags
// @Accept json
// @Produce json
// @Param payload body domain.SummaryInput true "Query"
// @Success 200 {object} domain.SummaryResponse "ok"
// @Router /flags/summary [post]
func (h *handlers) summary(r *stdhttp.Request, in domain.SummaryInput) (any, error) {
	return h.svc.Summary(r.Context(), in)
}
