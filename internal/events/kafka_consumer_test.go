package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/kickoff-hub/service-users/internal/application"
	"github.com/kickoff-hub/service-users/internal/domain/competition"
	adaptermock "github.com/kickoff-hub/service-users/internal/mocks/adapter"
	"github.com/kickoff-hub/service-users/internal/repository/memory"
	"github.com/kickoff-hub/service-users/pkg/domain"
	"github.com/kickoff-hub/service-users/pkg/kafka"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mapRouter map[string]kafka.HandlerFunc

func (r mapRouter) Handle(eventType string, h kafka.HandlerFunc) { r[eventType] = h }
func (r mapRouter) Start(context.Context) error                 { return nil }

type recordedRequest struct {
	eventType string
	code      string
}

type recordingCollector struct {
	requests []recordedRequest
}

func (c *recordingCollector) RecordRequest(eventType, code string, _ time.Duration) {
	c.requests = append(c.requests, recordedRequest{eventType: eventType, code: code})
}

func (c *recordingCollector) RecordUpstreamCall(string, string) {}

type fixture struct {
	router       mapRouter
	collector    *recordingCollector
	competitions *adaptermock.CompetitionsAdapter
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	profiles := memory.NewProfileRepository()
	subs := memory.NewSubscriptionRepository()
	competitions := adaptermock.NewCompetitionsAdapter(t)
	logger := zap.NewNop()

	f := &fixture{router: mapRouter{}, collector: &recordingCollector{}, competitions: competitions}
	NewRequestConsumer(f.router, Services{
		Profiles:      application.NewProfileService(profiles, logger),
		Subscriptions: application.NewSubscriptionService(subs, profiles, competitions, logger),
		Queries:       application.NewSubscriptionQueryService(subs, profiles, competitions, logger),
	}, f.collector, logger)
	return f
}

func (f *fixture) call(t *testing.T, eventType string, payload any) (any, error) {
	t.Helper()
	h, ok := f.router[eventType]
	require.True(t, ok, "no handler for %s", eventType)

	ce, err := kafka.NewRequest("test", eventType, "test.replies", payload)
	require.NoError(t, err)
	return h(context.Background(), ce)
}

func TestRequestConsumer_RegistersEveryRequestType(t *testing.T) {
	f := newFixture(t)
	for _, typ := range []string{
		TypeRegisterProfile,
		TypeSubscribeTeam,
		TypeSubscriptionsByTeamLeague,
		TypeSubscriptionsByUser,
		TypeUserExists,
		TypeUserList,
	} {
		assert.Contains(t, f.router, typ)
	}
}

func TestRequestConsumer_ScenarioRegisterSubscribeList(t *testing.T) {
	f := newFixture(t)
	teamID, leagueID := uuid.New(), uuid.New()
	f.competitions.On("TeamExists", mock.Anything, teamID).Return(true, nil)
	f.competitions.On("LeagueExists", mock.Anything, leagueID).Return(true, nil)

	out, err := f.call(t, TypeRegisterProfile, map[string]string{"email": "a@x.com", "name": "A"})
	require.NoError(t, err)
	user := out.(*application.ProfileDTO)

	sub := map[string]string{"userId": user.ID.String(), "teamId": teamID.String(), "leagueId": leagueID.String()}
	out, err = f.call(t, TypeSubscribeTeam, sub)
	require.NoError(t, err)
	created := out.(*application.SubscriptionDTO)
	assert.Equal(t, user.ID, created.UserID)
	assert.True(t, created.Active)

	_, err = f.call(t, TypeSubscribeTeam, sub)
	assert.ErrorIs(t, err, domain.ErrConflict)

	out, err = f.call(t, TypeSubscriptionsByTeamLeague, map[string]string{"teamId": teamID.String(), "leagueId": leagueID.String()})
	require.NoError(t, err)
	listed := out.([]*application.SubscriptionDTO)
	require.Len(t, listed, 1)
	assert.Equal(t, created.ID, listed[0].ID)

	out, err = f.call(t, TypeUserExists, map[string]string{"userId": user.ID.String()})
	require.NoError(t, err)
	assert.True(t, out.(*application.ExistsDTO).Exists)

	out, err = f.call(t, TypeUserList, map[string]any{})
	require.NoError(t, err)
	assert.Len(t, out.([]*application.ProfileDTO), 1)

	assert.Equal(t, []recordedRequest{
		{eventType: TypeRegisterProfile, code: "OK"},
		{eventType: TypeSubscribeTeam, code: "OK"},
		{eventType: TypeSubscribeTeam, code: "CONFLICT"},
		{eventType: TypeSubscriptionsByTeamLeague, code: "OK"},
		{eventType: TypeUserExists, code: "OK"},
		{eventType: TypeUserList, code: "OK"},
	}, f.collector.requests)
}

func TestRequestConsumer_SubscriptionsByUserEnriched(t *testing.T) {
	f := newFixture(t)
	teamID, leagueID := uuid.New(), uuid.New()
	f.competitions.On("TeamExists", mock.Anything, teamID).Return(true, nil)
	f.competitions.On("LeagueExists", mock.Anything, leagueID).Return(true, nil)
	f.competitions.On("FetchTeam", mock.Anything, teamID).Return(competition.TeamSnapshot(`{"name":"Persija"}`), nil)
	f.competitions.On("FetchLeague", mock.Anything, leagueID).Return(competition.LeagueSnapshot(`{"name":"Liga 1"}`), nil)

	out, err := f.call(t, TypeRegisterProfile, map[string]string{"email": "a@x.com", "name": "A"})
	require.NoError(t, err)
	userID := out.(*application.ProfileDTO).ID.String()

	_, err = f.call(t, TypeSubscribeTeam, map[string]string{"userId": userID, "teamId": teamID.String(), "leagueId": leagueID.String()})
	require.NoError(t, err)

	out, err = f.call(t, TypeSubscriptionsByUser, map[string]string{"userId": userID})
	require.NoError(t, err)

	body, err := json.Marshal(out)
	require.NoError(t, err)
	var decoded []map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(body, &decoded))
	require.Len(t, decoded, 1)
	assert.JSONEq(t, `{"name":"Persija"}`, string(decoded[0]["team"]))
	assert.JSONEq(t, `{"name":"Liga 1"}`, string(decoded[0]["league"]))
	assert.Contains(t, decoded[0], "userId")
	assert.Contains(t, decoded[0], "createdAt")
}

func TestRequestConsumer_ValidationRejectsMalformedPayloads(t *testing.T) {
	tests := []struct {
		name      string
		eventType string
		payload   any
	}{
		{name: "missing payload", eventType: TypeUserExists, payload: nil},
		{name: "bad email", eventType: TypeRegisterProfile, payload: map[string]string{"email": "nope", "name": "A"}},
		{name: "missing name", eventType: TypeRegisterProfile, payload: map[string]string{"email": "a@x.com"}},
		{name: "non-uuid team", eventType: TypeSubscribeTeam, payload: map[string]string{"userId": uuid.NewString(), "teamId": "T1", "leagueId": uuid.NewString()}},
		{name: "missing league", eventType: TypeSubscriptionsByTeamLeague, payload: map[string]string{"teamId": uuid.NewString()}},
		{name: "wrong json type", eventType: TypeSubscriptionsByUser, payload: map[string]int{"userId": 7}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			_, err := f.call(t, tt.eventType, tt.payload)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrValidation)

			re := EncodeError(err)
			assert.Equal(t, 400, re.Status)
			assert.Equal(t, "VALIDATION", re.Code)
		})
	}
}

func TestEncodeError(t *testing.T) {
	tests := []struct {
		err     error
		status  int
		code    string
		message string
	}{
		{domain.NewNotFoundError("league or team"), 404, "NOT_FOUND", "league or team not found"},
		{domain.NewConflictError("user already exists"), 409, "CONFLICT", "user already exists"},
		{domain.NewUpstreamUnavailableError("competitions service", errors.New("timeout")), 503, "UPSTREAM_UNAVAILABLE", "competitions service unavailable"},
		{domain.NewStoreUnavailableError(errors.New("dial tcp")), 503, "STORE_UNAVAILABLE", "store unavailable"},
		{errors.New("nil pointer somewhere"), 500, "INTERNAL", "internal error"},
	}

	for _, tt := range tests {
		re := EncodeError(tt.err)
		assert.Equal(t, tt.status, re.Status)
		assert.Equal(t, tt.code, re.Code)
		assert.Equal(t, tt.message, re.Message)
	}
}
