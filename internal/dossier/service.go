package dossier

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/fondationhn/dossier-management/internal"
	"github.com/fondationhn/dossier-management/internal/auth"
	"github.com/fondationhn/dossier-management/internal/core/events"
)

type Repository interface {
	Create(ctx context.Context, d *Dossier) error
	GetByID(ctx context.Context, id string) (*Dossier, error)
	GetByOwner(ctx context.Context, ownerID string) ([]*Dossier, error)
	GetAll(ctx context.Context) ([]*Dossier, error)
	Update(ctx context.Context, d *Dossier) error
	UpdateStatus(ctx context.Context, id string, status Status) error
	Delete(ctx context.Context, id string) error
}

type ServiceAPI interface {
	Create(ctx context.Context, actor *auth.User, dto *CreateDossierDTO) (*Dossier, error)
	GetByID(ctx context.Context, actor *auth.User, id string) (*Dossier, error)
	List(ctx context.Context, actor *auth.User) ([]*Dossier, error)
	Update(ctx context.Context, actor *auth.User, id string, dto *UpdateDossierDTO) (*Dossier, error)
	Transition(ctx context.Context, actor *auth.User, id string, to Status) (*Dossier, error)
	Delete(ctx context.Context, actor *auth.User, id string) error
}

type Service struct {
	repo     Repository
	eventBus *events.EventBus
	logger   *slog.Logger
}

func NewService(repo Repository, eventBus *events.EventBus, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		eventBus: eventBus,
		logger:   logger.With("component", "dossier_service"),
	}
}

// Create opens a new case file for the actor. The status is always New
// regardless of what the client submitted.
func (s *Service) Create(ctx context.Context, actor *auth.User, dto *CreateDossierDTO) (*Dossier, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	now := time.Now()
	d := &Dossier{
		ID:              uuid.NewString(),
		Nom:             dto.Nom,
		Prenom:          dto.Prenom,
		DateNaissance:   dto.DateNaissance,
		Sexe:            dto.Sexe,
		Commune:         dto.Commune,
		Quartier:        dto.Quartier,
		ParentNom:       dto.ParentNom,
		ParentTelephone: dto.ParentTelephone,
		ParentEmail:     dto.ParentEmail,
		Diagnostic:      dto.Diagnostic,
		Status:          StatusNew,
		UserID:          actor.ID,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.repo.Create(ctx, d); err != nil {
		s.logger.Error("failed to create dossier", "error", err)
		return nil, apperrors.NewInternalError("failed to create dossier", err)
	}

	s.eventBus.Publish(ctx, events.NewDossierCreatedEvent(d.ID, actor.ID))
	s.logger.Info("dossier created", "dossier_id", d.ID, "owner_id", actor.ID)
	return d, nil
}

// GetByID loads a dossier with ownership scoping. An actor without the
// view-any capability gets a not-found for dossiers they do not own, so
// the response does not reveal whether the id exists.
func (s *Service) GetByID(ctx context.Context, actor *auth.User, id string) (*Dossier, error) {
	d, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.Can(auth.CapDossierViewAny) && d.UserID != actor.ID {
		return nil, apperrors.ErrDossierNotFound
	}
	return d, nil
}

// DossierVisible reports whether the actor may reference the dossier,
// with the same scoping as GetByID.
func (s *Service) DossierVisible(ctx context.Context, actor *auth.User, id string) error {
	_, err := s.GetByID(ctx, actor, id)
	return err
}

// List returns every dossier for staff roles and only the actor's own
// dossiers otherwise.
func (s *Service) List(ctx context.Context, actor *auth.User) ([]*Dossier, error) {
	if actor.Can(auth.CapDossierViewAny) {
		return s.repo.GetAll(ctx)
	}
	return s.repo.GetByOwner(ctx, actor.ID)
}

// Update applies descriptive changes and, when the payload carries a
// status, a lifecycle transition in the same call.
func (s *Service) Update(ctx context.Context, actor *auth.User, id string, dto *UpdateDossierDTO) (*Dossier, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	d, err := s.GetByID(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if dto.HasFieldChanges() {
		if err := s.checkFieldEdit(actor, d, dto); err != nil {
			return nil, err
		}
		dto.Apply(d)
	}

	var statusFrom Status
	statusChanged := false
	if dto.Status != nil && Status(*dto.Status) != d.Status {
		to := Status(*dto.Status)
		if err := s.checkTransition(actor, d, to); err != nil {
			return nil, err
		}
		statusFrom = d.Status
		statusChanged = true
		d.Status = to
	}

	d.UpdatedAt = time.Now()
	if err := s.repo.Update(ctx, d); err != nil {
		s.logger.Error("failed to update dossier", "dossier_id", id, "error", err)
		return nil, apperrors.NewInternalError("failed to update dossier", err)
	}

	if statusChanged {
		s.publishStatusChange(ctx, d.ID, actor.ID, statusFrom, d.Status)
	}
	s.logger.Info("dossier updated", "dossier_id", id, "actor_id", actor.ID)
	return d, nil
}

// Transition moves a dossier to a new lifecycle status.
func (s *Service) Transition(ctx context.Context, actor *auth.User, id string, to Status) (*Dossier, error) {
	if !to.Valid() {
		return nil, apperrors.NewValidationError("status is not a recognized value", apperrors.ErrCodeValidationFailed)
	}

	d, err := s.GetByID(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if err := s.checkTransition(actor, d, to); err != nil {
		return nil, err
	}
	if to == d.Status {
		return d, nil
	}

	from := d.Status
	if err := s.repo.UpdateStatus(ctx, id, to); err != nil {
		s.logger.Error("failed to update dossier status", "dossier_id", id, "error", err)
		return nil, apperrors.NewInternalError("failed to update dossier status", err)
	}
	d.Status = to
	d.UpdatedAt = time.Now()

	s.publishStatusChange(ctx, d.ID, actor.ID, from, to)
	return d, nil
}

// Delete removes a dossier entirely. Only admins carry the capability.
func (s *Service) Delete(ctx context.Context, actor *auth.User, id string) error {
	if !actor.Can(auth.CapDossierDeleteAny) {
		return apperrors.ErrForbidden
	}

	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("failed to delete dossier", "dossier_id", id, "error", err)
		return apperrors.NewInternalError("failed to delete dossier", err)
	}

	// Audit subscribers for deletions run before the call returns.
	if err := s.eventBus.PublishSync(ctx, events.NewDossierDeletedEvent(id, actor.ID)); err != nil {
		s.logger.Error("dossier deleted event handler failed", "dossier_id", id, "error", err)
	}
	s.logger.Info("dossier deleted", "dossier_id", id, "actor_id", actor.ID)
	return nil
}

// checkFieldEdit decides whether the actor may touch the descriptive
// fields. Staff with update-any and owners may edit everything; an
// analyst may record a diagnostic on any dossier they can see.
func (s *Service) checkFieldEdit(actor *auth.User, d *Dossier, dto *UpdateDossierDTO) error {
	if actor.Can(auth.CapDossierUpdateAny) {
		return nil
	}
	if d.UserID == actor.ID && actor.Can(auth.CapDossierCreateOwn) {
		return nil
	}
	if onlyDiagnostic(dto) && actor.Can(auth.CapDossierValidate) {
		return nil
	}
	return apperrors.ErrForbidden
}

func onlyDiagnostic(dto *UpdateDossierDTO) bool {
	return dto.Diagnostic != nil &&
		dto.Nom == nil && dto.Prenom == nil && dto.DateNaissance == nil &&
		dto.Sexe == nil && dto.Commune == nil && dto.Quartier == nil &&
		dto.ParentNom == nil && dto.ParentTelephone == nil && dto.ParentEmail == nil
}

func (s *Service) checkTransition(actor *auth.User, d *Dossier, to Status) error {
	if !actor.Can(auth.CapDossierStatusUpdate) {
		return apperrors.ErrForbidden
	}
	if to == StatusClosed && !actor.Can(auth.CapDossierClose) {
		return apperrors.ErrForbidden
	}
	if d.Status.Terminal() {
		return apperrors.ErrDossierClosed
	}
	if to != d.Status && !CanTransition(d.Status, to) {
		return apperrors.ErrInvalidTransition
	}
	return nil
}

func (s *Service) publishStatusChange(ctx context.Context, dossierID, actorID string, from, to Status) {
	s.eventBus.Publish(ctx, events.NewDossierStatusChangedEvent(dossierID, actorID, string(from), string(to)))
	s.logger.Info("dossier status changed",
		"dossier_id", dossierID,
		"actor_id", actorID,
		"from_status", string(from),
		"to_status", string(to),
	)
}
