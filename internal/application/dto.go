package application

import (
	"time"

	"github.com/google/uuid"
	"github.com/kickoff-hub/service-users/internal/domain/competition"
	"github.com/kickoff-hub/service-users/internal/domain/profile"
	subDomain "github.com/kickoff-hub/service-users/internal/domain/subscription"
	"github.com/kickoff-hub/service-users/pkg/domain"
)

// ProfileDTO is the reply shape for a user profile.
type ProfileDTO struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Address   *string   `json:"address"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// SubscriptionDTO is the reply shape for a subscription.
type SubscriptionDTO struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"userId"`
	TeamID    uuid.UUID `json:"teamId"`
	LeagueID  uuid.UUID `json:"leagueId"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// EnrichedSubscriptionDTO is a subscription carrying the live team and league
// records instead of their ids.
type EnrichedSubscriptionDTO struct {
	UserID    uuid.UUID                  `json:"userId"`
	ID        uuid.UUID                  `json:"id"`
	Active    bool                       `json:"active"`
	CreatedAt time.Time                  `json:"createdAt"`
	Team      competition.TeamSnapshot   `json:"team"`
	League    competition.LeagueSnapshot `json:"league"`
}

// ExistsDTO answers an existence query.
type ExistsDTO struct {
	Exists bool `json:"exists"`
}

// RegisterProfileRequest holds data to create a user profile.
type RegisterProfileRequest struct {
	Email   string  `json:"email" validate:"required,email"`
	Name    string  `json:"name" validate:"required"`
	Address *string `json:"address,omitempty"`
}

// SubscribeRequest holds data to subscribe a user to a team within a league.
type SubscribeRequest struct {
	UserID   string `json:"userId" validate:"required,uuid"`
	TeamID   string `json:"teamId" validate:"required,uuid"`
	LeagueID string `json:"leagueId" validate:"required,uuid"`
}

// TeamLeagueRequest selects subscriptions by team and league.
type TeamLeagueRequest struct {
	TeamID   string `json:"teamId" validate:"required,uuid"`
	LeagueID string `json:"leagueId" validate:"required,uuid"`
}

// UserRequest identifies a single user.
type UserRequest struct {
	UserID string `json:"userId" validate:"required,uuid"`
}

func parseID(field, raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, domain.NewValidationError(field + " must be a valid UUID")
	}
	return id, nil
}

func toProfileDTO(p *profile.UserProfile) *ProfileDTO {
	return &ProfileDTO{
		ID: p.ID(), Email: p.Email(), Name: p.Name(), Address: p.Address(),
		CreatedAt: p.CreatedAt(), UpdatedAt: p.UpdatedAt(),
	}
}

func toSubscriptionDTO(s *subDomain.Subscription) *SubscriptionDTO {
	return &SubscriptionDTO{
		ID: s.ID(), UserID: s.UserID(), TeamID: s.TeamID(), LeagueID: s.LeagueID(),
		Active: s.Active(), CreatedAt: s.CreatedAt(), UpdatedAt: s.UpdatedAt(),
	}
}
