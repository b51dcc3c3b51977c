// Package http provides http transport for analyze
package http

import (
	stdhttp "net/http"

	"mouthwash/internal/modkit/httpkit"
	"mouthwash/internal/services/api/analyze/domain"
	svc "mouthwash/internal/services/api/analyze/service"
)

// Register mounts analyze endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	// one-shot scan with highlight spans
	httpkit.PostJSON[domain.TextInput](r, "/text", h.text)

	// subject adherence over a segment batch
	httpkit.PostJSON[domain.TopicInput](r, "/topic", h.topic)

	// writing system breakdown
	httpkit.PostJSON[domain.ScriptInput](r, "/script", h.script)

	// full pipeline pass over one segment
	httpkit.PostJSON[domain.ModerateInput](r, "/moderate", h.moderate)
}

type handlers struct{ svc svc.Service }

// swagger:route POST /analyze/text Analyze analyzeText
// @Summary Scan text for lexicon matches with highlight spans
// @Tags Analyze
// @Accept json
// @Produce json
// @Param payload body domain.TextInput true "Text"
// @Success 200 {object} domain.TextResponse "ok"
// @Router /analyze/text [post]
func (h *handlers) text(r *stdhttp.Request, in domain.TextInput) (any, error) {
	return h.svc.Text(r.Context(), in)
}

// swagger:route POST /analyze/topic Analyze analyzeTopic
// @Summary Score segments for subject adherence
// @Tags Analyze
// @Accept json
// @Produce json
// @Param payload body domain.TopicInput true "Segments and optional lists"
// @Success 200 {object} topic.Report "ok"
// @Router /analyze/topic [post]
func (h *handlers) topic(r *stdhttp.Request, in domain.TopicInput) (any, error) {
	return h.svc.Topic(r.Context(), in)
}

// swagger:route POST /analyze/script Analyze analyzeScript
// @Summary Classify text by writing system
// @Tags Analyze
// @Accept json
// @Produce json
// @Param payload body domain.ScriptInput true "Text"
// @Success 200 {object} domain.ScriptResponse "ok"
// @Router /analyze/script [post]
func (h *handlers) script(r *stdhttp.Request, in domain.ScriptInput) (any, error) {
	return h.svc.Script(r.Context(), in)
}

// swagger:route POST /analyze/moderate Analyze analyzeModerate
// @Summary Run the full moderation pipeline over one segment
// @Tags Analyze
// @Accept json
// @Produce json
// @Param payload body domain.ModerateInput true "Segment and persist switch"
// @Success 200 {object} moddom.ReviewOutcome "ok"
// @Router /analyze/moderate [post]
func (h *handlers) moderate(r *stdhttp.Request, in domain.ModerateInput) (any, error) {
	return h.svc.Moderate(r.Context(), in)
}
