package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/kickoff-hub/service-users/internal/domain/profile"
	"github.com/kickoff-hub/service-users/internal/repository"
	"github.com/kickoff-hub/service-users/pkg/domain"
)

// ProfileRepository keeps profiles in process memory with the same
// uniqueness guarantees as the Postgres schema.
type ProfileRepository struct {
	mu      sync.RWMutex
	byID    map[uuid.UUID]*profile.UserProfile
	byEmail map[string]uuid.UUID
	order   []uuid.UUID
}

func NewProfileRepository() *ProfileRepository {
	return &ProfileRepository{
		byID:    make(map[uuid.UUID]*profile.UserProfile),
		byEmail: make(map[string]uuid.UUID),
	}
}

func (r *ProfileRepository) FindByID(_ context.Context, id uuid.UUID) (*profile.UserProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byID[id]
	if !ok {
		return nil, domain.NewNotFoundError("user")
	}
	return p, nil
}

func (r *ProfileRepository) FindByEmail(_ context.Context, email string) (*profile.UserProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email]
	if !ok {
		return nil, domain.NewNotFoundError("user")
	}
	return r.byID[id], nil
}

func (r *ProfileRepository) ExistsByID(_ context.Context, id uuid.UUID) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.byID[id]
	return ok, nil
}

func (r *ProfileRepository) Save(_ context.Context, p *profile.UserProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byEmail[p.Email()]; ok {
		return domain.NewConflictError(repository.MsgUserExists)
	}
	if _, ok := r.byID[p.ID()]; ok {
		return domain.NewConflictError(repository.MsgUserExists)
	}

	r.byID[p.ID()] = p
	r.byEmail[p.Email()] = p.ID()
	r.order = append(r.order, p.ID())
	return nil
}

func (r *ProfileRepository) ListAll(_ context.Context) ([]*profile.UserProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*profile.UserProfile, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id])
	}
	return out, nil
}
