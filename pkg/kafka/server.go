package kafka

import (
	"context"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/panjf2000/ants/v2"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// HandlerFunc serves one request and returns the reply data or a failure.
type HandlerFunc func(ctx context.Context, ce CloudEvent) (any, error)

// ErrorEncoder turns a handler failure into the error carried by the reply.
type ErrorEncoder func(err error) *ReplyError

// ServerConfig configures a request/reply Server.
type ServerConfig struct {
	Source  string
	Workers int
}

// Server consumes a request topic and dispatches each request to the handler
// registered for its type on a bounded worker pool. Replies go to the topic
// named in the request's replyto attribute.
type Server struct {
	requests    *Consumer
	publisher   Publisher
	pool        *ants.Pool
	source      string
	handlers    map[string]HandlerFunc
	encodeError ErrorEncoder
	logger      *zap.Logger
}

// NewServer creates a server. Handlers must be registered before Start.
func NewServer(requests *Consumer, publisher Publisher, cfg ServerConfig, encodeError ErrorEncoder, logger *zap.Logger) (*Server, error) {
	if cfg.Workers <= 0 {
		cfg.Workers = 64
	}
	pool, err := ants.NewPool(cfg.Workers, ants.WithPanicHandler(func(p any) {
		logger.Error("request worker panicked", zap.Any("panic", p))
	}))
	if err != nil {
		return nil, fmt.Errorf("create worker pool: %w", err)
	}

	return &Server{
		requests:    requests,
		publisher:   publisher,
		pool:        pool,
		source:      cfg.Source,
		handlers:    make(map[string]HandlerFunc),
		encodeError: encodeError,
		logger:      logger,
	}, nil
}

// Handle registers h for requests of eventType.
func (s *Server) Handle(eventType string, h HandlerFunc) {
	s.handlers[eventType] = h
}

// Start consumes requests until ctx is cancelled.
func (s *Server) Start(ctx context.Context) error {
	return s.requests.Consume(ctx, s.dispatch)
}

// dispatch hands the request to the pool. Submit blocks while every worker is
// busy, which throttles consumption.
func (s *Server) dispatch(ctx context.Context, msg kafkago.Message) error {
	ce, err := ParseCloudEvent(msg.Value)
	if err != nil {
		s.logger.Error("failed to parse request",
			zap.Error(err),
			zap.String("raw", string(msg.Value)),
		)
		return err
	}

	h, ok := s.handlers[ce.Type]
	if !ok {
		s.logger.Debug("ignoring unhandled request type", zap.String("type", ce.Type))
		return nil
	}

	// In-flight requests finish and reply even if consumption is stopping.
	reqCtx := context.WithoutCancel(ctx)
	return s.pool.Submit(func() {
		s.serve(reqCtx, ce, h)
	})
}

func internalError() *ReplyError {
	return &ReplyError{Status: 500, Code: "INTERNAL", Message: "internal error"}
}

// invoke runs h and turns a panic into an internal error reply.
func (s *Server) invoke(ctx context.Context, ce CloudEvent, h HandlerFunc) (reply Reply) {
	defer func() {
		if p := recover(); p != nil {
			s.logger.Error("request handler panicked",
				zap.String("type", ce.Type),
				zap.String("request_id", ce.ID),
				zap.Any("panic", p),
				zap.Stack("stack"),
			)
			reply = Reply{Error: internalError()}
		}
	}()

	result, err := h(ctx, ce)
	if err != nil {
		return Reply{Error: s.encodeError(err)}
	}
	data, err := sonic.Marshal(result)
	if err != nil {
		s.logger.Error("failed to encode reply data", zap.String("type", ce.Type), zap.Error(err))
		return Reply{Error: internalError()}
	}
	return Reply{Data: data}
}

func (s *Server) serve(ctx context.Context, ce CloudEvent, h HandlerFunc) {
	reply := s.invoke(ctx, ce, h)

	if ce.ReplyTo == "" {
		return
	}

	out, err := NewReply(s.source, ce, reply)
	if err != nil {
		s.logger.Error("failed to build reply", zap.String("type", ce.Type), zap.Error(err))
		return
	}
	if err := s.publisher.PublishEvent(ctx, ce.ReplyTo, out); err != nil {
		s.logger.Error("failed to publish reply",
			zap.String("type", ce.Type),
			zap.String("request_id", ce.ID),
			zap.Error(err),
		)
	}
}

// Close waits up to timeout for in-flight requests, then releases the pool.
func (s *Server) Close(timeout time.Duration) error {
	return s.pool.ReleaseTimeout(timeout)
}
