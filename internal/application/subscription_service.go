package application

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/kickoff-hub/service-users/internal/adapter"
	"github.com/kickoff-hub/service-users/internal/domain/profile"
	subDomain "github.com/kickoff-hub/service-users/internal/domain/subscription"
	"github.com/kickoff-hub/service-users/internal/repository"
	"github.com/kickoff-hub/service-users/pkg/domain"
	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"
)

// SubscriptionService validates and creates subscriptions. Team and league
// existence is checked against the competitions service, the user against
// the local store, and only then is the record written.
//
// The checks and the write are not atomic. Two concurrent requests for the
// same triple can both pass the duplicate check; the store's unique index on
// (user, team, league) rejects the loser with the same Conflict. A team or
// league removed between the check and the write is not detected.
type SubscriptionService struct {
	subs         subDomain.SubscriptionRepository
	profiles     profile.ProfileRepository
	competitions adapter.CompetitionsAdapter
	logger       *zap.Logger
}

// NewSubscriptionService creates a new SubscriptionService.
func NewSubscriptionService(
	subs subDomain.SubscriptionRepository,
	profiles profile.ProfileRepository,
	competitions adapter.CompetitionsAdapter,
	logger *zap.Logger,
) *SubscriptionService {
	return &SubscriptionService{subs: subs, profiles: profiles, competitions: competitions, logger: logger}
}

// Subscribe creates an active subscription for the (user, team, league) triple.
func (s *SubscriptionService) Subscribe(ctx context.Context, req SubscribeRequest) (*SubscriptionDTO, error) {
	key, err := parseKey(req)
	if err != nil {
		return nil, err
	}
	log := s.logger.With(
		zap.String("user_id", req.UserID),
		zap.String("team_id", req.TeamID),
		zap.String("league_id", req.LeagueID),
	)

	if err := s.checkCompetitions(ctx, key.TeamID, key.LeagueID); err != nil {
		log.Warn("subscription rejected: competitions check failed", zap.Error(err))
		return nil, err
	}

	if _, err := s.profiles.FindByID(ctx, key.UserID); err != nil {
		if domain.IsNotFound(err) {
			log.Warn("subscription rejected: user not found")
			return nil, domain.NewNotFoundError("user")
		}
		log.Error("failed to look up user", zap.Error(err))
		return nil, err
	}

	existing, err := s.subs.FindByKey(ctx, key)
	switch {
	case err == nil && existing != nil:
		log.Warn("subscription rejected: already subscribed", zap.String("subscription_id", existing.ID().String()))
		return nil, domain.NewConflictError(repository.MsgAlreadySubscribed)
	case err != nil && !domain.IsNotFound(err):
		log.Error("failed to look up existing subscription", zap.Error(err))
		return nil, err
	}

	sub := subDomain.NewSubscription(key.UserID, key.TeamID, key.LeagueID)
	if err := s.subs.Save(ctx, sub); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			log.Warn("subscription rejected by unique index", zap.Error(err))
		} else {
			log.Error("failed to save subscription", zap.Error(err))
		}
		return nil, err
	}

	log.Info("subscription created", zap.String("subscription_id", sub.ID().String()))
	return toSubscriptionDTO(sub), nil
}

// checkCompetitions asks for league and team existence concurrently. The
// first failure cancels the other call.
func (s *SubscriptionService) checkCompetitions(ctx context.Context, teamID, leagueID uuid.UUID) error {
	var leagueOK, teamOK bool

	p := pool.New().WithContext(ctx).WithCancelOnError().WithFirstError()
	p.Go(func(ctx context.Context) error {
		var err error
		leagueOK, err = s.competitions.LeagueExists(ctx, leagueID)
		return err
	})
	p.Go(func(ctx context.Context) error {
		var err error
		teamOK, err = s.competitions.TeamExists(ctx, teamID)
		return err
	})
	if err := p.Wait(); err != nil {
		return err
	}

	if !leagueOK || !teamOK {
		return domain.NewNotFoundError("league or team")
	}
	return nil
}

func parseKey(req SubscribeRequest) (subDomain.Key, error) {
	userID, err := parseID("userId", req.UserID)
	if err != nil {
		return subDomain.Key{}, err
	}
	teamID, err := parseID("teamId", req.TeamID)
	if err != nil {
		return subDomain.Key{}, err
	}
	leagueID, err := parseID("leagueId", req.LeagueID)
	if err != nil {
		return subDomain.Key{}, err
	}
	return subDomain.Key{UserID: userID, TeamID: teamID, LeagueID: leagueID}, nil
}
