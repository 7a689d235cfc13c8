package application

import (
	"context"

	"github.com/kickoff-hub/service-users/internal/adapter"
	"github.com/kickoff-hub/service-users/internal/domain/competition"
	"github.com/kickoff-hub/service-users/internal/domain/profile"
	subDomain "github.com/kickoff-hub/service-users/internal/domain/subscription"
	"github.com/kickoff-hub/service-users/pkg/domain"
	"github.com/sourcegraph/conc/iter"
	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"
)

// SubscriptionQueryService serves subscription listings.
type SubscriptionQueryService struct {
	subs         subDomain.SubscriptionRepository
	profiles     profile.ProfileRepository
	competitions adapter.CompetitionsAdapter
	logger       *zap.Logger
}

// NewSubscriptionQueryService creates a new SubscriptionQueryService.
func NewSubscriptionQueryService(
	subs subDomain.SubscriptionRepository,
	profiles profile.ProfileRepository,
	competitions adapter.CompetitionsAdapter,
	logger *zap.Logger,
) *SubscriptionQueryService {
	return &SubscriptionQueryService{subs: subs, profiles: profiles, competitions: competitions, logger: logger}
}

// ListByTeamLeague returns the active subscriptions for a team within a league.
func (s *SubscriptionQueryService) ListByTeamLeague(ctx context.Context, req TeamLeagueRequest) ([]*SubscriptionDTO, error) {
	teamID, err := parseID("teamId", req.TeamID)
	if err != nil {
		return nil, err
	}
	leagueID, err := parseID("leagueId", req.LeagueID)
	if err != nil {
		return nil, err
	}

	subs, err := s.subs.FindByTeamLeague(ctx, teamID, leagueID, true)
	if err != nil {
		s.logger.Error("failed to list subscriptions by team and league",
			zap.String("team_id", req.TeamID),
			zap.String("league_id", req.LeagueID),
			zap.Error(err),
		)
		return nil, err
	}

	dtos := make([]*SubscriptionDTO, len(subs))
	for i, sub := range subs {
		dtos[i] = toSubscriptionDTO(sub)
	}
	return dtos, nil
}

type enrichResult struct {
	dto *EnrichedSubscriptionDTO
	err error
}

// ListByUser returns the user's subscriptions, each enriched with the current
// team and league records. Output order follows the store listing regardless
// of which fetch completes first. Any fetch failure fails the whole listing.
func (s *SubscriptionQueryService) ListByUser(ctx context.Context, req UserRequest) ([]*EnrichedSubscriptionDTO, error) {
	userID, err := parseID("userId", req.UserID)
	if err != nil {
		return nil, err
	}
	log := s.logger.With(zap.String("user_id", req.UserID))

	exists, err := s.profiles.ExistsByID(ctx, userID)
	if err != nil {
		log.Error("failed to check user existence", zap.Error(err))
		return nil, err
	}
	if !exists {
		log.Warn("subscription listing rejected: user not found")
		return nil, domain.NewNotFoundError("user")
	}

	subs, err := s.subs.FindByUserID(ctx, userID)
	if err != nil {
		log.Error("failed to list subscriptions by user", zap.Error(err))
		return nil, err
	}

	results := iter.Map(subs, func(sub **subDomain.Subscription) enrichResult {
		dto, err := s.enrich(ctx, *sub)
		return enrichResult{dto: dto, err: err}
	})

	dtos := make([]*EnrichedSubscriptionDTO, len(results))
	for i, r := range results {
		if r.err != nil {
			log.Warn("failed to enrich subscription",
				zap.String("subscription_id", subs[i].ID().String()),
				zap.Error(r.err),
			)
			return nil, r.err
		}
		dtos[i] = r.dto
	}
	return dtos, nil
}

func (s *SubscriptionQueryService) enrich(ctx context.Context, sub *subDomain.Subscription) (*EnrichedSubscriptionDTO, error) {
	var (
		team   competition.TeamSnapshot
		league competition.LeagueSnapshot
	)

	p := pool.New().WithContext(ctx).WithCancelOnError().WithFirstError()
	p.Go(func(ctx context.Context) error {
		var err error
		team, err = s.competitions.FetchTeam(ctx, sub.TeamID())
		return err
	})
	p.Go(func(ctx context.Context) error {
		var err error
		league, err = s.competitions.FetchLeague(ctx, sub.LeagueID())
		return err
	})
	if err := p.Wait(); err != nil {
		return nil, err
	}

	return &EnrichedSubscriptionDTO{
		UserID:    sub.UserID(),
		ID:        sub.ID(),
		Active:    sub.Active(),
		CreatedAt: sub.CreatedAt(),
		Team:      team,
		League:    league,
	}, nil
}
