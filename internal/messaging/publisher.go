package messaging

import (
	"context"

	"github.com/feral-file/ff-lifecycle-bridge/internal/domain"
)

// Publisher defines the interface for publishing lifecycle notifications to the message broker
//
//go:generate mockgen -source=publisher.go -destination=../mocks/publisher.go -package=mocks -mock_names=Publisher=MockPublisher
type Publisher interface {
	// PublishLifecycleEvent publishes a completed lifecycle operation
	PublishLifecycleEvent(ctx context.Context, event *domain.LifecycleEvent) error
	// PublishOrphan publishes a ledger entity left without index row
	PublishOrphan(ctx context.Context, event *domain.OrphanEvent) error
	// Close closes the connection
	Close()
}

// NopPublisher discards every event; used when no broker is configured
type NopPublisher struct{}

func (NopPublisher) PublishLifecycleEvent(context.Context, *domain.LifecycleEvent) error { return nil }

func (NopPublisher) PublishOrphan(context.Context, *domain.OrphanEvent) error { return nil }

func (NopPublisher) Close() {}
