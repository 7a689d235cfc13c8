//go:build integration

package main_test

import (
	"context"
	"fmt"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/kickoff-hub/service-users/internal/adapter"
	"github.com/kickoff-hub/service-users/internal/application"
	userEvents "github.com/kickoff-hub/service-users/internal/events"
	"github.com/kickoff-hub/service-users/internal/repository"
	"github.com/kickoff-hub/service-users/pkg/database"
	"github.com/kickoff-hub/service-users/pkg/domain"
	"github.com/kickoff-hub/service-users/pkg/kafka"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	kafkamodule "github.com/testcontainers/testcontainers-go/modules/kafka"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	topicUserRequests         = "users.requests"
	topicUserReplies          = "users.replies"
	topicCompetitionsRequests = "competitions.requests"
	topicCallerReplies        = "caller.replies"
)

// testInfra holds shared test infrastructure.
type testInfra struct {
	DB           *gorm.DB
	KafkaBrokers []string
	Cleanup      func()
}

// setupContainers starts PostgreSQL and Kafka testcontainers, applies the SQL
// migrations, and returns a connected GORM DB.
func setupContainers(t *testing.T) *testInfra {
	t.Helper()
	ctx := context.Background()
	logger := zap.NewNop()

	pgReq := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "test",
			"POSTGRES_PASSWORD": "test",
			"POSTGRES_DB":       "test_users",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}
	pgContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: pgReq,
		Started:          true,
	})
	require.NoError(t, err, "failed to start PostgreSQL container")

	pgHost, err := pgContainer.Host(ctx)
	require.NoError(t, err)
	pgPort, err := pgContainer.MappedPort(ctx, "5432")
	require.NoError(t, err)

	pgConfig := database.PostgresConfig{
		Host:     pgHost,
		Port:     pgPort.Port(),
		User:     "test",
		Password: "test",
		DBName:   "test_users",
		SSLMode:  "disable",
	}

	var db *gorm.DB
	require.Eventually(t, func() bool {
		var err error
		db, err = database.Connect(pgConfig, logger)
		return err == nil
	}, 30*time.Second, 1*time.Second, "PostgreSQL not ready for connections")

	require.NoError(t, database.RunMigrations(pgConfig.DatabaseURL(), "migrations", logger))

	// confluent-local supports KRaft natively.
	kafkaContainer, err := kafkamodule.Run(ctx, "confluentinc/confluent-local:7.5.0")
	require.NoError(t, err, "failed to start Kafka container")

	kafkaBrokers, err := kafkaContainer.Brokers(ctx)
	require.NoError(t, err, "failed to get Kafka brokers")

	createTopics(t, kafkaBrokers, topicUserRequests, topicUserReplies, topicCompetitionsRequests, topicCallerReplies)

	cleanup := func() {
		if err := kafkaContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate Kafka container: %v", err)
		}
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate PostgreSQL container: %v", err)
		}
	}

	return &testInfra{
		DB:           db,
		KafkaBrokers: kafkaBrokers,
		Cleanup:      cleanup,
	}
}

// startUsersStack wires the users service the way cmd/server does and runs
// its request server and reply consumer until the test ends.
func startUsersStack(t *testing.T, db *gorm.DB, brokers []string, requestTimeout time.Duration) {
	t.Helper()
	logger, _ := zap.NewDevelopment()
	ctx, cancel := context.WithCancel(context.Background())

	producer := kafka.NewProducer(brokers, logger)
	replies := kafka.NewLatestConsumer(brokers, "test-users-replies-"+uuid.NewString()[:8], topicUserReplies, logger)
	client := kafka.NewClient(producer, replies, kafka.ClientConfig{
		Source:     "service-users",
		ReplyTopic: topicUserReplies,
		Timeout:    requestTimeout,
	}, logger)

	profiles := repository.NewGormProfileRepository(db)
	subs := repository.NewGormSubscriptionRepository(db)
	competitions := adapter.NewKafkaCompetitionsAdapter(client, topicCompetitionsRequests, nil, logger)

	requests := kafka.NewConsumer(brokers, "test-users-"+uuid.NewString()[:8], topicUserRequests, logger)
	server, err := kafka.NewServer(requests, producer, kafka.ServerConfig{Source: "service-users", Workers: 8}, userEvents.EncodeError, logger)
	require.NoError(t, err)
	consumer := userEvents.NewRequestConsumer(server, userEvents.Services{
		Profiles:      application.NewProfileService(profiles, logger),
		Subscriptions: application.NewSubscriptionService(subs, profiles, competitions, logger),
		Queries:       application.NewSubscriptionQueryService(subs, profiles, competitions, logger),
	}, nil, logger)

	go func() { _ = client.Start(ctx) }()
	go func() { _ = consumer.Start(ctx) }()

	t.Cleanup(func() {
		cancel()
		_ = server.Close(5 * time.Second)
		_ = requests.Close()
		_ = client.Close()
		_ = producer.Close()
	})
}

// fakeCompetitions answers competitions requests for a fixed set of teams and leagues.
type fakeCompetitions struct {
	mu      sync.Mutex
	teams   map[string]string
	leagues map[string]string
}

func (f *fakeCompetitions) addTeam(id uuid.UUID, name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.teams[id.String()] = name
}

func (f *fakeCompetitions) addLeague(id uuid.UUID, name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.leagues[id.String()] = name
}

func (f *fakeCompetitions) lookup(set map[string]string, id string) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	name, ok := set[id]
	return name, ok
}

// startFakeCompetitions serves the competitions request topic until the test ends.
func startFakeCompetitions(t *testing.T, brokers []string) *fakeCompetitions {
	t.Helper()
	logger := zap.NewNop()
	ctx, cancel := context.WithCancel(context.Background())
	fake := &fakeCompetitions{teams: map[string]string{}, leagues: map[string]string{}}

	producer := kafka.NewProducer(brokers, logger)
	requests := kafka.NewConsumer(brokers, "test-competitions-"+uuid.NewString()[:8], topicCompetitionsRequests, logger)
	encode := func(err error) *kafka.ReplyError {
		return &kafka.ReplyError{Status: domain.StatusCode(err), Code: domain.Code(err), Message: domain.Message(err)}
	}
	server, err := kafka.NewServer(requests, producer, kafka.ServerConfig{Source: "service-competitions", Workers: 4}, encode, logger)
	require.NoError(t, err)

	type teamReq struct {
		TeamID string `json:"teamId"`
	}
	type leagueReq struct {
		LeagueID string `json:"leagueId"`
	}

	server.Handle(adapter.TypeTeamExists, func(_ context.Context, ce kafka.CloudEvent) (any, error) {
		var req teamReq
		if err := ce.ParseData(&req); err != nil {
			return nil, err
		}
		_, ok := fake.lookup(fake.teams, req.TeamID)
		return map[string]bool{"exists": ok}, nil
	})
	server.Handle(adapter.TypeLeagueExists, func(_ context.Context, ce kafka.CloudEvent) (any, error) {
		var req leagueReq
		if err := ce.ParseData(&req); err != nil {
			return nil, err
		}
		_, ok := fake.lookup(fake.leagues, req.LeagueID)
		return map[string]bool{"exists": ok}, nil
	})
	server.Handle(adapter.TypeTeamByID, func(_ context.Context, ce kafka.CloudEvent) (any, error) {
		var req teamReq
		if err := ce.ParseData(&req); err != nil {
			return nil, err
		}
		name, ok := fake.lookup(fake.teams, req.TeamID)
		if !ok {
			return nil, domain.NewNotFoundError("team")
		}
		return map[string]string{"id": req.TeamID, "name": name}, nil
	})
	server.Handle(adapter.TypeLeagueByID, func(_ context.Context, ce kafka.CloudEvent) (any, error) {
		var req leagueReq
		if err := ce.ParseData(&req); err != nil {
			return nil, err
		}
		name, ok := fake.lookup(fake.leagues, req.LeagueID)
		if !ok {
			return nil, domain.NewNotFoundError("league")
		}
		return map[string]string{"id": req.LeagueID, "name": name}, nil
	})

	go func() { _ = server.Start(ctx) }()

	t.Cleanup(func() {
		cancel()
		_ = server.Close(5 * time.Second)
		_ = requests.Close()
		_ = producer.Close()
	})
	return fake
}

// newCaller returns a request/reply client playing the role of another service
// calling the users service.
func newCaller(t *testing.T, brokers []string) *kafka.Client {
	t.Helper()
	logger := zap.NewNop()
	ctx, cancel := context.WithCancel(context.Background())

	producer := kafka.NewProducer(brokers, logger)
	replies := kafka.NewLatestConsumer(brokers, "test-caller-"+uuid.NewString()[:8], topicCallerReplies, logger)
	client := kafka.NewClient(producer, replies, kafka.ClientConfig{
		Source:     "service-gateway",
		ReplyTopic: topicCallerReplies,
		Timeout:    20 * time.Second,
	}, logger)
	go func() { _ = client.Start(ctx) }()

	t.Cleanup(func() {
		cancel()
		_ = client.Close()
		_ = producer.Close()
	})
	return client
}

// callUsers sends a request to the users service and returns its reply.
func callUsers(t *testing.T, caller *kafka.Client, eventType string, payload any) kafka.Reply {
	t.Helper()
	reply, err := caller.Request(context.Background(), topicUserRequests, eventType, payload)
	require.NoError(t, err, "no reply for %s", eventType)
	return reply
}

// createTopics pre-creates Kafka topics so producers don't fail with "Unknown Topic".
func createTopics(t *testing.T, brokers []string, topics ...string) {
	t.Helper()
	conn, err := kafkago.Dial("tcp", brokers[0])
	require.NoError(t, err, "failed to dial Kafka for topic creation")
	defer conn.Close()

	controller, err := conn.Controller()
	require.NoError(t, err, "failed to get Kafka controller")

	controllerConn, err := kafkago.Dial("tcp", net.JoinHostPort(controller.Host, fmt.Sprintf("%d", controller.Port)))
	require.NoError(t, err, "failed to connect to Kafka controller")
	defer controllerConn.Close()

	topicConfigs := make([]kafkago.TopicConfig, len(topics))
	for i, topic := range topics {
		topicConfigs[i] = kafkago.TopicConfig{
			Topic:             topic,
			NumPartitions:     1,
			ReplicationFactor: 1,
		}
	}
	require.NoError(t, controllerConn.CreateTopics(topicConfigs...), "failed to create Kafka topics")

	// Give Kafka a moment to propagate topic metadata.
	time.Sleep(1 * time.Second)
}
