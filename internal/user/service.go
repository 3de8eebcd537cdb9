package user

import (
	"context"
	"log/slog"

	apperrors "github.com/fondationhn/dossier-management/internal"
)

type Repository interface {
	GetByID(ctx context.Context, id string) (*User, error)
	GetAll(ctx context.Context) ([]*User, error)
	Delete(ctx context.Context, id string) error
}

type ServiceAPI interface {
	GetByID(ctx context.Context, id string) (*User, error)
	List(ctx context.Context) ([]*User, error)
	Delete(ctx context.Context, id string) error
}

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger.With("component", "user_service"),
	}
}

func (s *Service) GetByID(ctx context.Context, id string) (*User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (s *Service) List(ctx context.Context) ([]*User, error) {
	return s.repo.GetAll(ctx)
}

// Delete removes a user account. Dossiers owned by the user are removed
// by the database cascade.
func (s *Service) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("failed to delete user", "user_id", id, "error", err)
		return apperrors.NewInternalError("failed to delete user", err)
	}
	s.logger.Info("user deleted", "user_id", id)
	return nil
}
