package adapter

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/kickoff-hub/service-users/internal/domain/competition"
	"go.uber.org/zap"
)

// MockCompetitionsAdapter is a development implementation of CompetitionsAdapter.
// Every team and league exists; snapshots are synthetic.
type MockCompetitionsAdapter struct {
	logger *zap.Logger
}

// NewMockCompetitionsAdapter creates a new mock competitions adapter for development.
func NewMockCompetitionsAdapter(logger *zap.Logger) *MockCompetitionsAdapter {
	return &MockCompetitionsAdapter{logger: logger}
}

// TeamExists always reports true.
func (m *MockCompetitionsAdapter) TeamExists(_ context.Context, teamID uuid.UUID) (bool, error) {
	m.logger.Info("[MOCK COMPETITIONS] team exists", zap.String("team_id", teamID.String()))
	return true, nil
}

// LeagueExists always reports true.
func (m *MockCompetitionsAdapter) LeagueExists(_ context.Context, leagueID uuid.UUID) (bool, error) {
	m.logger.Info("[MOCK COMPETITIONS] league exists", zap.String("league_id", leagueID.String()))
	return true, nil
}

// FetchTeam returns a synthetic team record.
func (m *MockCompetitionsAdapter) FetchTeam(_ context.Context, teamID uuid.UUID) (competition.TeamSnapshot, error) {
	return competition.TeamSnapshot(fmt.Sprintf(`{"id":%q,"name":"Mock Team %s"}`, teamID, teamID.String()[:8])), nil
}

// FetchLeague returns a synthetic league record.
func (m *MockCompetitionsAdapter) FetchLeague(_ context.Context, leagueID uuid.UUID) (competition.LeagueSnapshot, error) {
	return competition.LeagueSnapshot(fmt.Sprintf(`{"id":%q,"name":"Mock League %s"}`, leagueID, leagueID.String()[:8])), nil
}
