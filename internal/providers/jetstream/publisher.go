package jetstream

import (
	"context"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"

	"github.com/feral-file/ff-lifecycle-bridge/internal/adapter"
	"github.com/feral-file/ff-lifecycle-bridge/internal/domain"
	"github.com/feral-file/ff-lifecycle-bridge/internal/logger"
	"github.com/feral-file/ff-lifecycle-bridge/internal/messaging"
)

// SubjectOrphan is the subject failed compensations are published on
const SubjectOrphan = "lifecycle.orphan"

// Config holds the configuration for NATS JetStream connection
type Config struct {
	URL            string
	StreamName     string
	MaxReconnects  int
	ReconnectWait  time.Duration
	ConnectionName string
}

type publisher struct {
	nc         adapter.NatsConn
	js         adapter.JetStream
	streamName string
	json       adapter.JSON
}

// NewPublisher creates a new NATS JetStream publisher
func NewPublisher(cfg Config, natsJS adapter.NatsJetStream, jsonAdapter adapter.JSON) (messaging.Publisher, error) {
	opts := []nats.Option{
		nats.Name(cfg.ConnectionName),
		nats.MaxReconnects(cfg.MaxReconnects),
		nats.ReconnectWait(cfg.ReconnectWait),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			if err != nil {
				logger.Error(err, zap.String("message", "Disconnected from NATS"))
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("Reconnected to NATS", zap.String("url", nc.ConnectedUrl()))
		}),
		nats.ClosedHandler(func(nc *nats.Conn) {
			logger.Info("NATS connection closed")
		}),
	}

	nc, js, err := natsJS.Connect(cfg.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS and create JetStream: %w", err)
	}

	return newPublisher(nc, js, cfg.StreamName, jsonAdapter), nil
}

func newPublisher(nc adapter.NatsConn, js adapter.JetStream, streamName string, jsonAdapter adapter.JSON) *publisher {
	return &publisher{
		nc:         nc,
		js:         js,
		streamName: streamName,
		json:       jsonAdapter,
	}
}

// PublishLifecycleEvent publishes a lifecycle event on lifecycle.<stage>.<action>
func (p *publisher) PublishLifecycleEvent(ctx context.Context, event *domain.LifecycleEvent) error {
	logger.DebugCtx(ctx, "Publishing lifecycle event", zap.Any("event", event))
	return p.publish(ctx, LifecycleSubject(event.Stage, event.Action), event)
}

// PublishOrphan publishes a failed compensation on lifecycle.orphan
func (p *publisher) PublishOrphan(ctx context.Context, event *domain.OrphanEvent) error {
	logger.DebugCtx(ctx, "Publishing orphan event", zap.Any("event", event))
	return p.publish(ctx, SubjectOrphan, event)
}

func (p *publisher) publish(ctx context.Context, subject string, event interface{}) error {
	data, err := p.json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if _, err := p.js.Publish(ctx, subject, data); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	return nil
}

// LifecycleSubject constructs the NATS subject of a lifecycle event
// Format: lifecycle.{stage}.{action}, e.g. lifecycle.raw.create
func LifecycleSubject(stage domain.Stage, action domain.Action) string {
	return fmt.Sprintf("lifecycle.%s.%s", stage, action)
}

// Close closes the NATS connection
func (p *publisher) Close() {
	if p.nc == nil {
		return
	}

	p.nc.Close()
}
