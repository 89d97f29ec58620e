// Package notify delivers scheduler emails. Messages are published to the
// notifications exchange where the mailer service consumes them; when no
// broker is configured deliveries degrade to log lines so the scheduler
// keeps running in development setups.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/applytrack/timing-be/shared/rabbitmq"
)

// Message is the payload handed to the mailer. ID is assigned at publish
// time so the mailer can deduplicate redeliveries.
type Message struct {
	ID      string `json:"id,omitempty"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// Sender delivers a notification message. Implementations must be safe for
// concurrent use.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// AMQPSender publishes messages to RabbitMQ.
type AMQPSender struct {
	client *rabbitmq.Client
	logger *slog.Logger
}

// NewAMQPSender creates a broker-backed sender.
func NewAMQPSender(client *rabbitmq.Client, logger *slog.Logger) *AMQPSender {
	return &AMQPSender{
		client: client,
		logger: logger,
	}
}

// Send publishes the message as JSON, retrying transient broker failures.
func (s *AMQPSender) Send(ctx context.Context, msg Message) error {
	if msg.ID == "" {
		msg.ID = uuid.New().String()
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	if err := s.client.PublishWithRetry(ctx, body, "application/json"); err != nil {
		return fmt.Errorf("failed to publish notification: %w", err)
	}

	s.logger.Debug("Notification published",
		slog.String("to", msg.To),
		slog.String("subject", msg.Subject),
	)
	return nil
}

// LogSender writes notifications to the log instead of a broker.
type LogSender struct {
	logger *slog.Logger
}

// NewLogSender creates a log-only sender.
func NewLogSender(logger *slog.Logger) *LogSender {
	return &LogSender{logger: logger}
}

// Send logs the message. It never fails.
func (s *LogSender) Send(_ context.Context, msg Message) error {
	s.logger.Info("Notification (no broker configured)",
		slog.String("to", msg.To),
		slog.String("subject", msg.Subject),
		slog.String("body", msg.Body),
	)
	return nil
}
