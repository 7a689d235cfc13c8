package subscription

import (
	"time"

	"github.com/google/uuid"
)

// Subscription links a user to one team within one league. Team and league
// ids are owned by the competitions service; only their existence is checked.
type Subscription struct {
	id        uuid.UUID
	userID    uuid.UUID
	teamID    uuid.UUID
	leagueID  uuid.UUID
	active    bool
	createdAt time.Time
	updatedAt time.Time
}

// NewSubscription creates an active subscription for the given triple.
func NewSubscription(userID, teamID, leagueID uuid.UUID) *Subscription {
	now := time.Now().UTC()
	return &Subscription{
		id:        uuid.New(),
		userID:    userID,
		teamID:    teamID,
		leagueID:  leagueID,
		active:    true,
		createdAt: now,
		updatedAt: now,
	}
}

// Reconstruct rebuilds a Subscription from persistence.
func Reconstruct(id, userID, teamID, leagueID uuid.UUID, active bool, createdAt, updatedAt time.Time) *Subscription {
	return &Subscription{
		id: id, userID: userID, teamID: teamID, leagueID: leagueID,
		active: active, createdAt: createdAt, updatedAt: updatedAt,
	}
}

// Key returns the (user, team, league) triple that must be unique.
func (s *Subscription) Key() Key {
	return Key{UserID: s.userID, TeamID: s.teamID, LeagueID: s.leagueID}
}

// Getters.
func (s *Subscription) ID() uuid.UUID        { return s.id }
func (s *Subscription) UserID() uuid.UUID    { return s.userID }
func (s *Subscription) TeamID() uuid.UUID    { return s.teamID }
func (s *Subscription) LeagueID() uuid.UUID  { return s.leagueID }
func (s *Subscription) Active() bool         { return s.active }
func (s *Subscription) CreatedAt() time.Time { return s.createdAt }
func (s *Subscription) UpdatedAt() time.Time { return s.updatedAt }

// Key identifies a subscription by its uniqueness triple.
type Key struct {
	UserID   uuid.UUID
	TeamID   uuid.UUID
	LeagueID uuid.UUID
}
