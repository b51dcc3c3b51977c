// Package http provides http and websocket transport for live sessions
package http

import (
	stdhttp "net/http"

	"github.com/gorilla/websocket"

	"mouthwash/internal/modkit/httpkit"
	"mouthwash/internal/platform/logger"
	"mouthwash/internal/services/api/live/domain"
	svc "mouthwash/internal/services/api/live/service"
)

// upgrader performs the websocket handshake; origin policy is enforced at the edge
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(*stdhttp.Request) bool { return true },
}

// Register mounts live session endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	// event feed for one session
	r.Get("/{session_id}/ws", h.ws)

	// feed one chunk through the session window
	httpkit.PostJSON[domain.IngestInput](r, "/{session_id}/ingest", h.ingest)

	// clear the window, keep subscribers
	httpkit.Post(r, "/{session_id}/reset", h.reset)

	// evict the session and disconnect subscribers
	httpkit.Delete(r, "/{session_id}", h.close)
}

type handlers struct{ svc svc.Service }

// swagger:route GET /live/{session_id}/ws Live liveSubscribe
// @Summary Subscribe to live window events
// @Tags Live
// @Param session_id path string true "Session ID"
// @Success 101 {string} string "switching protocols"
// @Router /live/{session_id}/ws [get]
func (h *handlers) ws(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	sessionID := httpkit.Param(r, "session_id")

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the handshake failure
		logger.C(r.Context()).Debug().Err(err).Str("session", sessionID).Msg("live: ws upgrade failed")
		return
	}
	if err := h.svc.Subscribe(r.Context(), sessionID, conn); err != nil {
		logger.C(r.Context()).Warn().Err(err).Str("session", sessionID).Msg("live: subscribe rejected")
		_ = conn.Close()
	}
}

// swagger:route POST /live/{session_id}/ingest Live liveIngest
// @Summary Ingest one transcript chunk
// @Tags Live
// @Accept json
// @Produce json
// @Param session_id path string true "Session ID"
// @Param payload body domain.IngestInput true "Chunk"
// @Success 200 {object} domain.IngestResponse "ok"
// @Router /live/{session_id}/ingest [post]
func (h *handlers) ingest(r *stdhttp.Request, in domain.IngestInput) (any, error) {
	return h.svc.Ingest(r.Context(), httpkit.Param(r, "session_id"), in)
}

// swagger:route POST /live/{session_id}/reset Live liveReset
// @Summary Reset a session window
// @Tags Live
// @Produce json
// @Param session_id path string true "Session ID"
// @Success 200 {object} domain.SessionAck "ok"
// @Router /live/{session_id}/reset [post]
func (h *handlers) reset(r *stdhttp.Request) (any, error) {
	return h.svc.Reset(r.Context(), httpkit.Param(r, "session_id"))
}

// swagger:route DELETE /live/{session_id} Live liveClose
// @Summary Close a session
// @Tags Live
// @Produce json
// @Param session_id path string true "Session ID"
// @Success 200 {object} domain.SessionAck "ok"
// @Router /live/{session_id} [delete]
func (h *handlers) close(r *stdhttp.Request) (any, error) {
	return h.svc.Close(r.Context(), httpkit.Param(r, "session_id"))
}
