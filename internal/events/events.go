// Package events publishes content-change notifications for downstream
// consumers (site cache invalidation, community bots). Publishing is
// best-effort from the gateway's perspective; the broker backend is selected
// by configuration.
package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Event kinds emitted by the gateway.
const (
	KindGameSaved        = "game.saved"
	KindGameDeleted      = "game.deleted"
	KindChangelogSaved   = "changelog.saved"
	KindChangelogDeleted = "changelog.deleted"
	KindProfileDeleted   = "profile.deleted"
	KindContentReset     = "content.reset"
)

// Event is one content-change notification.
type Event struct {
	ID       string    `json:"id"`
	Kind     string    `json:"kind"`
	EntityID string    `json:"entity_id,omitempty"`
	At       time.Time `json:"at"`
}

// Message represents a broker-agnostic payload delivered to subscribers.
type Message struct {
	ID         string
	Data       []byte
	Attributes map[string]string
}

// Handler processes a message. Return an error to signal a retry/nack.
type Handler func(ctx context.Context, msg Message) error

// Backend defines the broker-agnostic operations used by the app.
type Backend interface {
	Publish(ctx context.Context, channel string, data []byte, attrs map[string]string) (string, error)
	Subscribe(ctx context.Context, channel string, handler Handler) error
	Close() error
}

// Publisher emits content-change events on a fixed channel.
type Publisher struct {
	backend Backend
	channel string
}

// NewPublisher constructs a Publisher over the provided backend.
func NewPublisher(backend Backend, channel string) *Publisher {
	return &Publisher{backend: backend, channel: channel}
}

// ContentChanged publishes one event of the given kind.
func (p *Publisher) ContentChanged(ctx context.Context, kind, entityID string) error {
	event := Event{
		ID:       uuid.NewString(),
		Kind:     kind,
		EntityID: entityID,
		At:       time.Now().UTC(),
	}
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	_, err = p.backend.Publish(ctx, p.channel, data, map[string]string{"kind": kind})
	return err
}

// Subscribe consumes content-change events from the publisher's channel.
func (p *Publisher) Subscribe(ctx context.Context, handler Handler) error {
	return p.backend.Subscribe(ctx, p.channel, handler)
}

// Close closes the underlying backend.
func (p *Publisher) Close() error {
	return p.backend.Close()
}
