// Package messaging publishes user lifecycle events to NATS so other
// services can react to account changes. Without a configured URL the
// publisher is disabled and publishes are dropped.
package messaging

import (
	"encoding/json"
	"time"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"

	"github.com/ekgus419/go-api-boilerplate/internal/config"
)

const (
	SubjectUserCreated = "user.created"
	SubjectUserDeleted = "user.deleted"
)

// UserEvent is the payload published on user lifecycle subjects.
type UserEvent struct {
	UserId     string    `json:"user_id"`
	Username   string    `json:"username"`
	Email      string    `json:"email"`
	OccurredAt time.Time `json:"occurred_at"`
}

type Publisher struct {
	nc  *nats.Conn
	log *zap.Logger
}

func NewPublisher(cfg config.NatsConfig, log *zap.Logger) (*Publisher, error) {
	if cfg.URL == "" {
		log.Info("nats not configured, events disabled")
		return &Publisher{log: log}, nil
	}

	nc, err := nats.Connect(cfg.URL)
	if err != nil {
		return nil, err
	}

	log.Info("connected to nats", zap.String("url", cfg.URL))
	return &Publisher{nc: nc, log: log}, nil
}

func (p *Publisher) Enabled() bool {
	return p.nc != nil && p.nc.IsConnected()
}

func (p *Publisher) PublishUserCreated(event UserEvent) error {
	return p.publish(SubjectUserCreated, event)
}

func (p *Publisher) PublishUserDeleted(event UserEvent) error {
	return p.publish(SubjectUserDeleted, event)
}

func (p *Publisher) publish(subject string, event UserEvent) error {
	if !p.Enabled() {
		return nil
	}

	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	if err := p.nc.Publish(subject, data); err != nil {
		p.log.Warn("event publish failed", zap.String("subject", subject), zap.Error(err))
		return err
	}
	return nil
}

func (p *Publisher) Close() {
	if p.nc != nil && p.nc.IsConnected() {
		p.nc.Close()
	}
}
