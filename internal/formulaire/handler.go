package formulaire

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi"

	apperrors "github.com/fondationhn/dossier-management/internal"
	"github.com/fondationhn/dossier-management/internal/auth"
	"github.com/fondationhn/dossier-management/internal/transport"
)

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: transport.NewBaseHandler(nil),
		Service:     service,
	}
}

// ListTemplates returns every questionnaire definition.
func (h *Handler) ListTemplates(w http.ResponseWriter, r *http.Request) {
	h.WriteJSON(w, http.StatusOK, h.Service.ListTemplates())
}

// GetTemplate returns the questionnaire definition for one form type.
func (h *Handler) GetTemplate(w http.ResponseWriter, r *http.Request) {
	template, err := h.Service.GetTemplate(FormType(chi.URLParam(r, "type")))
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, template)
}

type submitRequest struct {
	DossierID *string         `json:"dossier_id"`
	Answers   json.RawMessage `json:"answers"`
}

// Submit records a completed questionnaire for the authenticated user.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.UserFromContext(r.Context())
	if !ok {
		h.HandleServiceError(w, apperrors.NewUnauthorizedError("authentication required", apperrors.ErrCodeInvalidToken))
		return
	}

	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.HandleServiceError(w, apperrors.NewValidationError("invalid request body", apperrors.ErrCodeValidationFailed))
		return
	}
	if len(req.Answers) == 0 {
		h.HandleServiceError(w, apperrors.NewValidationError("answers are required", apperrors.ErrCodeValidationFailed))
		return
	}

	submission, err := h.Service.Submit(r.Context(), actor, FormType(chi.URLParam(r, "type")), req.DossierID, req.Answers)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, submission)
}

// ListSubmissions returns submissions visible to the authenticated user.
func (h *Handler) ListSubmissions(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.UserFromContext(r.Context())
	if !ok {
		h.HandleServiceError(w, apperrors.NewUnauthorizedError("authentication required", apperrors.ErrCodeInvalidToken))
		return
	}

	submissions, err := h.Service.ListSubmissions(r.Context(), actor)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, submissions)
}
