package kafka

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/bytedance/sonic"
)

// ReplySuffix is appended to the request type to form the reply type.
const ReplySuffix = ".reply"

// Publisher is the write side shared by the request/reply client and server.
type Publisher interface {
	PublishEvent(ctx context.Context, topic string, ce CloudEvent) error
}

// ReplyError is the classified failure returned to a requester.
type ReplyError struct {
	Status  int    `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *ReplyError) Error() string {
	return fmt.Sprintf("%d %s: %s", e.Status, e.Code, e.Message)
}

// Reply is the payload of every reply event: exactly one of Data or Error is set.
type Reply struct {
	Data  json.RawMessage `json:"data,omitempty"`
	Error *ReplyError     `json:"error,omitempty"`
}

// Decode unmarshals the reply data into v.
func (r Reply) Decode(v any) error {
	if len(r.Data) == 0 {
		return fmt.Errorf("reply has no data")
	}
	return sonic.Unmarshal(r.Data, v)
}

// NewRequest builds a request event asking for the reply on replyTo.
func NewRequest(source, eventType, replyTo string, data any) (CloudEvent, error) {
	ce, err := NewCloudEvent(source, eventType, data)
	if err != nil {
		return CloudEvent{}, err
	}
	ce.ReplyTo = replyTo
	return ce, nil
}

// NewReply builds the reply event for request, correlated by the request id.
func NewReply(source string, request CloudEvent, reply Reply) (CloudEvent, error) {
	ce, err := NewCloudEvent(source, request.Type+ReplySuffix, reply)
	if err != nil {
		return CloudEvent{}, err
	}
	ce.CorrelationID = request.ID
	return ce, nil
}
