package kafka

import (
	"context"
	"sync"
	"time"

	crerr "github.com/cockroachdb/errors"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

var (
	// ErrNoReply means no correlated reply arrived before the request timeout.
	ErrNoReply = crerr.New("no reply received")
	// ErrPublishFailed means the request never reached the broker.
	ErrPublishFailed = crerr.New("request publish failed")
)

// ClientConfig configures a request/reply Client.
type ClientConfig struct {
	Source     string
	ReplyTopic string
	Timeout    time.Duration
}

// Client sends requests over Kafka and waits for correlated replies on a
// dedicated reply topic. It does not retry. Safe for concurrent use.
type Client struct {
	publisher Publisher
	replies   *Consumer
	cfg       ClientConfig
	logger    *zap.Logger

	mu      sync.Mutex
	pending map[string]chan CloudEvent
}

// NewClient creates a client. replies may be nil when Start is never called
// (tests drive handleReply directly).
func NewClient(publisher Publisher, replies *Consumer, cfg ClientConfig, logger *zap.Logger) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}
	return &Client{
		publisher: publisher,
		replies:   replies,
		cfg:       cfg,
		logger:    logger,
		pending:   make(map[string]chan CloudEvent),
	}
}

// Start consumes the reply topic until ctx is cancelled.
func (c *Client) Start(ctx context.Context) error {
	return c.replies.Consume(ctx, c.handleReply)
}

// Request publishes a request of eventType to topic and blocks until the
// correlated reply arrives or the timeout elapses.
func (c *Client) Request(ctx context.Context, topic, eventType string, payload any) (Reply, error) {
	req, err := NewRequest(c.cfg.Source, eventType, c.cfg.ReplyTopic, payload)
	if err != nil {
		return Reply{}, err
	}

	ch := make(chan CloudEvent, 1)
	c.mu.Lock()
	c.pending[req.ID] = ch
	c.mu.Unlock()
	defer c.forget(req.ID)

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	if err := c.publisher.PublishEvent(ctx, topic, req); err != nil {
		return Reply{}, crerr.Mark(crerr.Wrapf(err, "request %s", eventType), ErrPublishFailed)
	}

	select {
	case ce := <-ch:
		var reply Reply
		if err := ce.ParseData(&reply); err != nil {
			return Reply{}, crerr.Wrapf(err, "decode %s reply", eventType)
		}
		return reply, nil
	case <-ctx.Done():
		return Reply{}, crerr.Mark(crerr.Wrapf(ctx.Err(), "request %s after %s", eventType, c.cfg.Timeout), ErrNoReply)
	}
}

func (c *Client) handleReply(_ context.Context, msg kafkago.Message) error {
	ce, err := ParseCloudEvent(msg.Value)
	if err != nil {
		return err
	}
	if ce.CorrelationID == "" {
		return nil
	}

	c.mu.Lock()
	ch, ok := c.pending[ce.CorrelationID]
	delete(c.pending, ce.CorrelationID)
	c.mu.Unlock()

	if !ok {
		// Reply for another instance sharing the topic, or one that already timed out.
		return nil
	}
	ch <- ce
	return nil
}

func (c *Client) forget(id string) {
	c.mu.Lock()
	delete(c.pending, id)
	c.mu.Unlock()
}

// Close closes the reply consumer.
func (c *Client) Close() error {
	if c.replies == nil {
		return nil
	}
	return c.replies.Close()
}
