package assistant

import (
	"encoding/json"
	"net/http"

	apperrors "github.com/fondationhn/dossier-management/internal"
	"github.com/fondationhn/dossier-management/internal/transport"
)

type Handler struct {
	*transport.BaseHandler
}

func NewHandler() *Handler {
	return &Handler{BaseHandler: transport.NewBaseHandler(nil)}
}

type messageRequest struct {
	Message string `json:"message"`
}

type messageResponse struct {
	Reply string `json:"reply"`
}

// Message answers a chat message. An empty or unmatched message gets
// the fallback reply rather than an error.
func (h *Handler) Message(w http.ResponseWriter, r *http.Request) {
	var req messageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.HandleServiceError(w, apperrors.NewValidationError("invalid request body", apperrors.ErrCodeValidationFailed))
		return
	}
	h.WriteJSON(w, http.StatusOK, messageResponse{Reply: Reply(req.Message)})
}
