package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/kickoff-hub/service-users/internal/domain/subscription"
	"github.com/kickoff-hub/service-users/internal/repository"
	"github.com/kickoff-hub/service-users/pkg/domain"
)

// SubscriptionRepository keeps subscriptions in insertion order. Save checks
// the triple under the write lock, so it is an atomic guard.
type SubscriptionRepository struct {
	mu    sync.RWMutex
	items []*subscription.Subscription
	byKey map[subscription.Key]*subscription.Subscription
}

func NewSubscriptionRepository() *SubscriptionRepository {
	return &SubscriptionRepository{
		byKey: make(map[subscription.Key]*subscription.Subscription),
	}
}

func (r *SubscriptionRepository) Save(_ context.Context, s *subscription.Subscription) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byKey[s.Key()]; ok {
		return domain.NewConflictError(repository.MsgAlreadySubscribed)
	}
	r.items = append(r.items, s)
	r.byKey[s.Key()] = s
	return nil
}

func (r *SubscriptionRepository) FindByKey(_ context.Context, key subscription.Key) (*subscription.Subscription, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.byKey[key]
	if !ok {
		return nil, domain.NewNotFoundError("subscription")
	}
	return s, nil
}

func (r *SubscriptionRepository) FindByTeamLeague(_ context.Context, teamID, leagueID uuid.UUID, activeOnly bool) ([]*subscription.Subscription, error) {
	return r.filter(func(s *subscription.Subscription) bool {
		return s.TeamID() == teamID && s.LeagueID() == leagueID && (!activeOnly || s.Active())
	}), nil
}

func (r *SubscriptionRepository) FindByUserID(_ context.Context, userID uuid.UUID) ([]*subscription.Subscription, error) {
	return r.filter(func(s *subscription.Subscription) bool {
		return s.UserID() == userID
	}), nil
}

// Len returns the number of stored subscriptions.
func (r *SubscriptionRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items)
}

func (r *SubscriptionRepository) filter(keep func(*subscription.Subscription) bool) []*subscription.Subscription {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*subscription.Subscription, 0)
	for _, s := range r.items {
		if keep(s) {
			out = append(out, s)
		}
	}
	return out
}
