package events

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kickoff-hub/service-users/internal/application"
	"github.com/kickoff-hub/service-users/internal/metrics"
	"github.com/kickoff-hub/service-users/pkg/domain"
	"github.com/kickoff-hub/service-users/pkg/kafka"
	"go.uber.org/zap"
)

// Request types served on the users request topic.
const (
	TypeRegisterProfile           = "user.register.profile"
	TypeSubscribeTeam             = "user.subscribe.team"
	TypeSubscriptionsByTeamLeague = "user.subscriptions.by_team_league"
	TypeSubscriptionsByUser       = "user.subscriptions.by_user"
	TypeUserExists                = "user.exists"
	TypeUserList                  = "user.list"
)

// Services groups the application services behind the request consumer.
type Services struct {
	Profiles      *application.ProfileService
	Subscriptions *application.SubscriptionService
	Queries       *application.SubscriptionQueryService
}

// Router registers request handlers and serves them. *kafka.Server implements it.
type Router interface {
	Handle(eventType string, h kafka.HandlerFunc)
	Start(ctx context.Context) error
}

// RequestConsumer routes user requests to the application services and
// replies on the topic each request names.
type RequestConsumer struct {
	router    Router
	services  Services
	validator *validator.Validate
	metrics   metrics.MetricsCollector
	logger    *zap.Logger
}

// NewRequestConsumer registers every request type on router.
func NewRequestConsumer(router Router, services Services, collector metrics.MetricsCollector, logger *zap.Logger) *RequestConsumer {
	if collector == nil {
		collector = metrics.Nop{}
	}
	c := &RequestConsumer{
		router:    router,
		services:  services,
		validator: validator.New(),
		metrics:   collector,
		logger:    logger,
	}

	c.handle(TypeRegisterProfile, c.handleRegisterProfile)
	c.handle(TypeSubscribeTeam, c.handleSubscribeTeam)
	c.handle(TypeSubscriptionsByTeamLeague, c.handleSubscriptionsByTeamLeague)
	c.handle(TypeSubscriptionsByUser, c.handleSubscriptionsByUser)
	c.handle(TypeUserExists, c.handleUserExists)
	c.handle(TypeUserList, c.handleUserList)
	return c
}

// Start begins consuming requests. It blocks until the context is cancelled.
func (c *RequestConsumer) Start(ctx context.Context) error {
	return c.router.Start(ctx)
}

// handle wraps h with request logging and metrics.
func (c *RequestConsumer) handle(eventType string, h kafka.HandlerFunc) {
	c.router.Handle(eventType, func(ctx context.Context, ce kafka.CloudEvent) (any, error) {
		start := time.Now()
		c.logger.Info("received request",
			zap.String("type", ce.Type),
			zap.String("id", ce.ID),
			zap.String("source", ce.Source),
		)

		result, err := h(ctx, ce)

		code := "OK"
		if err != nil {
			code = domain.Code(err)
			c.logger.Warn("request failed",
				zap.String("type", ce.Type),
				zap.String("id", ce.ID),
				zap.String("code", code),
				zap.Error(err),
			)
		}
		c.metrics.RecordRequest(eventType, code, time.Since(start))
		return result, err
	})
}

func (c *RequestConsumer) handleRegisterProfile(ctx context.Context, ce kafka.CloudEvent) (any, error) {
	var req application.RegisterProfileRequest
	if err := c.decode(ctx, ce, &req); err != nil {
		return nil, err
	}
	return c.services.Profiles.RegisterProfile(ctx, req)
}

func (c *RequestConsumer) handleSubscribeTeam(ctx context.Context, ce kafka.CloudEvent) (any, error) {
	var req application.SubscribeRequest
	if err := c.decode(ctx, ce, &req); err != nil {
		return nil, err
	}
	return c.services.Subscriptions.Subscribe(ctx, req)
}

func (c *RequestConsumer) handleSubscriptionsByTeamLeague(ctx context.Context, ce kafka.CloudEvent) (any, error) {
	var req application.TeamLeagueRequest
	if err := c.decode(ctx, ce, &req); err != nil {
		return nil, err
	}
	return c.services.Queries.ListByTeamLeague(ctx, req)
}

func (c *RequestConsumer) handleSubscriptionsByUser(ctx context.Context, ce kafka.CloudEvent) (any, error) {
	var req application.UserRequest
	if err := c.decode(ctx, ce, &req); err != nil {
		return nil, err
	}
	return c.services.Queries.ListByUser(ctx, req)
}

func (c *RequestConsumer) handleUserExists(ctx context.Context, ce kafka.CloudEvent) (any, error) {
	var req application.UserRequest
	if err := c.decode(ctx, ce, &req); err != nil {
		return nil, err
	}
	return c.services.Profiles.UserExists(ctx, req)
}

func (c *RequestConsumer) handleUserList(ctx context.Context, _ kafka.CloudEvent) (any, error) {
	return c.services.Profiles.ListProfiles(ctx)
}

// decode parses the request payload into dst and validates its shape.
func (c *RequestConsumer) decode(ctx context.Context, ce kafka.CloudEvent, dst any) error {
	if len(ce.Data) == 0 {
		return domain.NewValidationError("request payload is required")
	}
	if err := ce.ParseData(dst); err != nil {
		return domain.NewValidationError("malformed request payload")
	}
	if err := c.validator.StructCtx(ctx, dst); err != nil {
		return domain.NewValidationError(fmt.Sprintf("validation failed: %v", err))
	}
	return nil
}

// EncodeError turns a classified failure into the error carried by a reply.
// Unclassified failures are reported as INTERNAL without their detail.
func EncodeError(err error) *kafka.ReplyError {
	return &kafka.ReplyError{
		Status:  domain.StatusCode(err),
		Code:    domain.Code(err),
		Message: domain.Message(err),
	}
}
