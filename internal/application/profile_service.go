package application

import (
	"context"

	"github.com/kickoff-hub/service-users/internal/domain/profile"
	"github.com/kickoff-hub/service-users/internal/repository"
	"github.com/kickoff-hub/service-users/pkg/domain"
	"go.uber.org/zap"
)

// ProfileService handles user profile use cases.
type ProfileService struct {
	repo   profile.ProfileRepository
	logger *zap.Logger
}

// NewProfileService creates a new ProfileService.
func NewProfileService(repo profile.ProfileRepository, logger *zap.Logger) *ProfileService {
	return &ProfileService{repo: repo, logger: logger}
}

// RegisterProfile creates a profile unless one with the same email exists.
// The email check is advisory; the store's unique index decides a race.
func (s *ProfileService) RegisterProfile(ctx context.Context, req RegisterProfileRequest) (*ProfileDTO, error) {
	existing, err := s.repo.FindByEmail(ctx, req.Email)
	switch {
	case err == nil && existing != nil:
		s.logger.Warn("profile registration rejected", zap.String("email", req.Email), zap.String("reason", repository.MsgUserExists))
		return nil, domain.NewConflictError(repository.MsgUserExists)
	case err != nil && !domain.IsNotFound(err):
		s.logger.Error("failed to look up profile by email", zap.String("email", req.Email), zap.Error(err))
		return nil, err
	}

	p := profile.NewUserProfile(req.Email, req.Name, req.Address)
	if err := s.repo.Save(ctx, p); err != nil {
		s.logger.Error("failed to save profile", zap.String("email", req.Email), zap.Error(err))
		return nil, err
	}

	s.logger.Info("profile registered",
		zap.String("user_id", p.ID().String()),
		zap.String("email", p.Email()),
	)
	return toProfileDTO(p), nil
}

// UserExists reports whether a profile with the given id exists.
func (s *ProfileService) UserExists(ctx context.Context, req UserRequest) (*ExistsDTO, error) {
	id, err := parseID("userId", req.UserID)
	if err != nil {
		return nil, err
	}

	ok, err := s.repo.ExistsByID(ctx, id)
	if err != nil {
		s.logger.Error("failed to check user existence", zap.String("user_id", req.UserID), zap.Error(err))
		return nil, err
	}
	return &ExistsDTO{Exists: ok}, nil
}

// ListProfiles returns every profile. There is no pagination.
func (s *ProfileService) ListProfiles(ctx context.Context) ([]*ProfileDTO, error) {
	profiles, err := s.repo.ListAll(ctx)
	if err != nil {
		s.logger.Error("failed to list profiles", zap.Error(err))
		return nil, err
	}

	dtos := make([]*ProfileDTO, len(profiles))
	for i, p := range profiles {
		dtos[i] = toProfileDTO(p)
	}
	return dtos, nil
}
