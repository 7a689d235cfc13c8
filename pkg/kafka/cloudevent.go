package kafka

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
)

const specVersion = "1.0"

// CloudEvent is the structured-mode CloudEvents 1.0 envelope carried on every
// topic. CorrelationID and ReplyTo are extension attributes used by the
// request/reply layer.
type CloudEvent struct {
	SpecVersion     string          `json:"specversion"`
	ID              string          `json:"id"`
	Source          string          `json:"source"`
	Type            string          `json:"type"`
	Time            time.Time       `json:"time"`
	DataContentType string          `json:"datacontenttype"`
	CorrelationID   string          `json:"correlationid,omitempty"`
	ReplyTo         string          `json:"replyto,omitempty"`
	Data            json.RawMessage `json:"data,omitempty"`
}

// NewCloudEvent builds an event with a fresh id and the given payload encoded as JSON.
func NewCloudEvent(source, eventType string, data any) (CloudEvent, error) {
	raw, err := sonic.Marshal(data)
	if err != nil {
		return CloudEvent{}, fmt.Errorf("marshal %s data: %w", eventType, err)
	}
	return CloudEvent{
		SpecVersion:     specVersion,
		ID:              uuid.NewString(),
		Source:          source,
		Type:            eventType,
		Time:            time.Now().UTC(),
		DataContentType: "application/json",
		Data:            raw,
	}, nil
}

// ParseCloudEvent decodes a raw message value.
func ParseCloudEvent(value []byte) (CloudEvent, error) {
	var ce CloudEvent
	if err := sonic.Unmarshal(value, &ce); err != nil {
		return CloudEvent{}, fmt.Errorf("decode cloud event: %w", err)
	}
	if ce.Type == "" || ce.ID == "" {
		return CloudEvent{}, fmt.Errorf("decode cloud event: missing id or type")
	}
	return ce, nil
}

// ParseData decodes the event payload into v.
func (ce CloudEvent) ParseData(v any) error {
	if len(ce.Data) == 0 {
		return fmt.Errorf("cloud event %s has no data", ce.ID)
	}
	if err := sonic.Unmarshal(ce.Data, v); err != nil {
		return fmt.Errorf("decode %s data: %w", ce.Type, err)
	}
	return nil
}

// Marshal encodes the envelope for the wire.
func (ce CloudEvent) Marshal() ([]byte, error) {
	return sonic.Marshal(ce)
}
