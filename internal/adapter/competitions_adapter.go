package adapter

import (
	"context"

	crerr "github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/kickoff-hub/service-users/internal/domain/competition"
	"github.com/kickoff-hub/service-users/internal/metrics"
	"github.com/kickoff-hub/service-users/pkg/domain"
	"github.com/kickoff-hub/service-users/pkg/kafka"
	"go.uber.org/zap"
)

// Message types understood by the competitions service.
const (
	TypeTeamExists   = "competitions.team.exists"
	TypeLeagueExists = "competitions.league.exists"
	TypeTeamByID     = "competitions.team.by_id"
	TypeLeagueByID   = "competitions.league.by_id"
)

const serviceName = "competitions service"

// CompetitionsAdapter is the anti-corruption layer in front of the
// competitions service, which owns team and league identities.
// No method retries; a missing reply is ErrUpstreamUnavailable and a
// remote failure is ErrUpstreamError.
type CompetitionsAdapter interface {
	TeamExists(ctx context.Context, teamID uuid.UUID) (bool, error)
	LeagueExists(ctx context.Context, leagueID uuid.UUID) (bool, error)
	FetchTeam(ctx context.Context, teamID uuid.UUID) (competition.TeamSnapshot, error)
	FetchLeague(ctx context.Context, leagueID uuid.UUID) (competition.LeagueSnapshot, error)
}

// Requester sends a request and waits for its reply. *kafka.Client implements it.
type Requester interface {
	Request(ctx context.Context, topic, eventType string, payload any) (kafka.Reply, error)
}

type teamRequest struct {
	TeamID uuid.UUID `json:"teamId"`
}

type leagueRequest struct {
	LeagueID uuid.UUID `json:"leagueId"`
}

type existsReply struct {
	Exists bool `json:"exists"`
}

// KafkaCompetitionsAdapter talks to the competitions service over Kafka request/reply.
type KafkaCompetitionsAdapter struct {
	requester Requester
	topic     string
	metrics   metrics.MetricsCollector
	logger    *zap.Logger
}

// NewKafkaCompetitionsAdapter creates an adapter sending requests to topic.
func NewKafkaCompetitionsAdapter(requester Requester, topic string, collector metrics.MetricsCollector, logger *zap.Logger) *KafkaCompetitionsAdapter {
	if collector == nil {
		collector = metrics.Nop{}
	}
	return &KafkaCompetitionsAdapter{requester: requester, topic: topic, metrics: collector, logger: logger}
}

// TeamExists asks whether the team exists.
func (a *KafkaCompetitionsAdapter) TeamExists(ctx context.Context, teamID uuid.UUID) (bool, error) {
	var out existsReply
	if err := a.call(ctx, "team_exists", TypeTeamExists, teamRequest{TeamID: teamID}, &out); err != nil {
		return false, err
	}
	return out.Exists, nil
}

// LeagueExists asks whether the league exists.
func (a *KafkaCompetitionsAdapter) LeagueExists(ctx context.Context, leagueID uuid.UUID) (bool, error) {
	var out existsReply
	if err := a.call(ctx, "league_exists", TypeLeagueExists, leagueRequest{LeagueID: leagueID}, &out); err != nil {
		return false, err
	}
	return out.Exists, nil
}

// FetchTeam returns the current team record.
func (a *KafkaCompetitionsAdapter) FetchTeam(ctx context.Context, teamID uuid.UUID) (competition.TeamSnapshot, error) {
	var out competition.TeamSnapshot
	if err := a.call(ctx, "team_by_id", TypeTeamByID, teamRequest{TeamID: teamID}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// FetchLeague returns the current league record.
func (a *KafkaCompetitionsAdapter) FetchLeague(ctx context.Context, leagueID uuid.UUID) (competition.LeagueSnapshot, error) {
	var out competition.LeagueSnapshot
	if err := a.call(ctx, "league_by_id", TypeLeagueByID, leagueRequest{LeagueID: leagueID}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (a *KafkaCompetitionsAdapter) call(ctx context.Context, call, eventType string, payload, out any) error {
	reply, err := a.requester.Request(ctx, a.topic, eventType, payload)
	if err != nil {
		a.metrics.RecordUpstreamCall(call, "unavailable")
		a.logger.Warn("competitions request failed",
			zap.String("type", eventType),
			zap.Error(err),
		)
		if crerr.Is(err, kafka.ErrNoReply) || crerr.Is(err, kafka.ErrPublishFailed) {
			return domain.NewUpstreamUnavailableError(serviceName, err)
		}
		return domain.NewUpstreamError(serviceName, err.Error())
	}

	if reply.Error != nil {
		a.metrics.RecordUpstreamCall(call, "error")
		a.logger.Warn("competitions service returned an error",
			zap.String("type", eventType),
			zap.Int("status", reply.Error.Status),
			zap.String("message", reply.Error.Message),
		)
		return domain.NewUpstreamError(serviceName, reply.Error.Message)
	}

	if err := reply.Decode(out); err != nil {
		a.metrics.RecordUpstreamCall(call, "error")
		return domain.NewUpstreamError(serviceName, crerr.Wrapf(err, "decode %s reply", eventType).Error())
	}

	a.metrics.RecordUpstreamCall(call, "ok")
	return nil
}
