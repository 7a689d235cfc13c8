package subscription

import (
	"context"

	"github.com/google/uuid"
)

// SubscriptionRepository defines persistence operations for subscriptions.
// Lookups of a single record return a NotFound domain error when absent;
// Save returns a Conflict domain error when the triple already exists.
type SubscriptionRepository interface {
	Save(ctx context.Context, s *Subscription) error
	FindByKey(ctx context.Context, key Key) (*Subscription, error)
	FindByTeamLeague(ctx context.Context, teamID, leagueID uuid.UUID, activeOnly bool) ([]*Subscription, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*Subscription, error)
}
