// Package http provides http transport for transcripts
package http

import (
	stdhttp "net/http"

	"mouthwash/internal/modkit/httpkit"
	"mouthwash/internal/services/api/transcripts/domain"
	svc "mouthwash/internal/services/api/transcripts/service"
)

// Register mounts transcripts endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	// batch segment ingest
	httpkit.PostJSON[domain.ImportInput](r, "/import", h.importBatch)

	// keyset page over stored segments
	httpkit.PostJSON[domain.ListInput](r, "/list", h.list)
}

type handlers struct{ svc svc.Service }

// swagger:route POST /transcripts/import Transcripts transcriptsImport
// @Summary Import transcript segments
// @Tags Transcripts
// @Accept json
// @Produce json
// @Param payload body domain.ImportInput true "Batch"
// @Success 200 {object} domain.ImportResponse "ok"
// @Router /transcripts/import [post]
func (h *handlers) importBatch(r *stdhttp.Request, in domain.ImportInput) (any, error) {
	return h.svc.Import(r.Context(), in)
}

// swagger:route POST /transcripts/list Transcripts transcriptsList
// @Summary List stored transcript segments
// @Tags Transcripts
// @Accept json
// @Produce json
// @Param payload body domain.ListInput true "Query"
// @Success 200 {object} domain.ListResponse "ok"
// @Router /transcripts/list [post]
func (h *handlers) list(r *stdhttp.Request, in domain.ListInput) (any, error) {
	return h.svc.List(r.Context(), in)
}
