// Package events publishes domain events ("task.created", "category.deleted",
// ...) after successful writes. Delivery is best effort: a failed publish is
// logged and never fails the request that caused it.
package events

import (
	"context"
	"time"

	"github.com/dmitrijs2005/taskboard/internal/logging"
)

// SubjectPrefix is prepended to every event type to form the NATS subject.
const SubjectPrefix = "taskboard"

const (
	UserRegistered   = "user.registered"
	CategoryCreated  = "category.created"
	CategoryUpdated  = "category.updated"
	CategoryDeleted  = "category.deleted"
	TaskCreated      = "task.created"
	TaskUpdated      = "task.updated"
	TaskDeleted      = "task.deleted"
	DataImported     = "data.imported"
	SnapshotUploaded = "snapshot.uploaded"
)

type Event struct {
	Type     string    `json:"type"`
	UserID   int64     `json:"userId"`
	EntityID int64     `json:"entityId,omitempty"`
	At       time.Time `json:"at"`
	Payload  any       `json:"payload,omitempty"`
}

// Subject returns the subject the event is published on.
func (e Event) Subject() string {
	return SubjectPrefix + "." + e.Type
}

type Publisher interface {
	Publish(ctx context.Context, ev Event) error
	Close() error
}

// Nop discards every event.
type Nop struct{}

func (Nop) Publish(context.Context, Event) error { return nil }
func (Nop) Close() error                         { return nil }

// Emit stamps ev and publishes it, logging instead of returning failures.
func Emit(ctx context.Context, p Publisher, log logging.Logger, ev Event) {
	if p == nil {
		return
	}
	if ev.At.IsZero() {
		ev.At = time.Now().UTC()
	}
	if err := p.Publish(ctx, ev); err != nil {
		log.Warn(ctx, "event publish failed", "subject", ev.Subject(), "error", err)
	}
}
