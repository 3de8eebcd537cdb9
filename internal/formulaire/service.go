package formulaire

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/fondationhn/dossier-management/internal"
	"github.com/fondationhn/dossier-management/internal/auth"
	"github.com/fondationhn/dossier-management/internal/core/events"
)

type Repository interface {
	Create(ctx context.Context, s *Submission) error
	GetByUser(ctx context.Context, userID string) ([]*Submission, error)
	GetAll(ctx context.Context) ([]*Submission, error)
}

// DossierChecker verifies that a dossier referenced by a submission is
// visible to the actor.
type DossierChecker interface {
	DossierVisible(ctx context.Context, actor *auth.User, dossierID string) error
}

type ServiceAPI interface {
	GetTemplate(formType FormType) (Template, error)
	ListTemplates() []Template
	Submit(ctx context.Context, actor *auth.User, formType FormType, dossierID *string, payload json.RawMessage) (*Submission, error)
	ListSubmissions(ctx context.Context, actor *auth.User) ([]*Submission, error)
}

type Service struct {
	repo     Repository
	dossiers DossierChecker
	eventBus *events.EventBus
	logger   *slog.Logger
}

func NewService(repo Repository, dossiers DossierChecker, eventBus *events.EventBus, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		dossiers: dossiers,
		eventBus: eventBus,
		logger:   logger.With("component", "formulaire_service"),
	}
}

func (s *Service) GetTemplate(formType FormType) (Template, error) {
	t, ok := TemplateFor(formType)
	if !ok {
		return Template{}, apperrors.ErrFormNotFound
	}
	return t, nil
}

func (s *Service) ListTemplates() []Template {
	return Templates()
}

// Submit records a completed questionnaire. Answers must cover every
// required field of the template; extra keys are kept as submitted.
func (s *Service) Submit(ctx context.Context, actor *auth.User, formType FormType, dossierID *string, payload json.RawMessage) (*Submission, error) {
	template, ok := TemplateFor(formType)
	if !ok {
		return nil, apperrors.ErrFormNotFound
	}

	if err := validateAnswers(template, payload); err != nil {
		return nil, err
	}

	if dossierID != nil {
		if err := s.dossiers.DossierVisible(ctx, actor, *dossierID); err != nil {
			return nil, err
		}
	}

	submission := &Submission{
		ID:        uuid.NewString(),
		FormType:  formType,
		UserID:    actor.ID,
		DossierID: dossierID,
		Payload:   payload,
		CreatedAt: time.Now(),
	}

	if err := s.repo.Create(ctx, submission); err != nil {
		s.logger.Error("failed to store submission", "form_type", formType, "error", err)
		return nil, apperrors.NewInternalError("failed to store submission", err)
	}

	s.eventBus.Publish(ctx, events.NewFormulaireSubmittedEvent(submission.ID, actor.ID, string(formType)))
	s.logger.Info("formulaire submitted", "form_type", formType, "user_id", actor.ID)
	return submission, nil
}

// ListSubmissions returns every submission for staff with view-any, and
// only the actor's own otherwise.
func (s *Service) ListSubmissions(ctx context.Context, actor *auth.User) ([]*Submission, error) {
	if actor.Can(auth.CapDossierViewAny) {
		return s.repo.GetAll(ctx)
	}
	return s.repo.GetByUser(ctx, actor.ID)
}

func validateAnswers(template Template, payload json.RawMessage) *apperrors.AppError {
	var answers map[string]json.RawMessage
	if err := json.Unmarshal(payload, &answers); err != nil {
		return apperrors.NewValidationError("answers must be a JSON object", apperrors.ErrCodeValidationFailed)
	}

	var missing []string
	for _, field := range template.Fields {
		if !field.Required {
			continue
		}
		raw, present := answers[field.Name]
		if !present || isBlank(raw) {
			missing = append(missing, field.Name)
		}
	}
	if len(missing) > 0 {
		message := fmt.Sprintf("missing required answers: %s", strings.Join(missing, ", "))
		return apperrors.NewValidationError(message, apperrors.ErrCodeValidationFailed)
	}
	return nil
}

func isBlank(raw json.RawMessage) bool {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s) == ""
	}
	return string(raw) == "null"
}
