package event

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"renewal-service/internal/models"

	amqp "github.com/rabbitmq/amqp091-go"
)

// RenewalEventPublisher publishes renewal lifecycle events to RabbitMQ. It
// satisfies the engine's notifier interface; publish failures are the
// caller's to downgrade since renewal creation must not hinge on the broker.
type RenewalEventPublisher struct {
	conn              *RabbitMQConnection
	messagesPublished int64
	messagesFailed    int64
	lastPublishTime   time.Time
}

// NewRenewalEventPublisher creates a new renewal event publisher
func NewRenewalEventPublisher(conn *RabbitMQConnection) *RenewalEventPublisher {
	return &RenewalEventPublisher{
		conn:            conn,
		lastPublishTime: time.Now(),
	}
}

// NotifyRenewalCreated publishes a renewal.created event for a freshly
// opened renewal.
func (p *RenewalEventPublisher) NotifyRenewalCreated(ctx context.Context, renewal *models.Renewal, policy *models.Policy) error {
	event := RenewalEventModel{
		EventType:    EventRenewalCreated,
		RenewalID:    renewal.ID,
		PolicyID:     policy.ID,
		ClientID:     policy.ClientID,
		PolicyNumber: policy.PolicyNumber,
		PolicyType:   string(policy.PolicyType),
		Carrier:      policy.Carrier,
		RiskLevel:    string(renewal.RiskLevel),
		DueDate:      renewal.DueDate,
		OccurredAt:   time.Now(),
	}
	if err := p.publish(ctx, event); err != nil {
		return err
	}
	slog.Info("Renewal event published",
		"queue", RenewalEventsQueue,
		"event_type", event.EventType,
		"renewal_id", event.RenewalID,
		"policy_number", event.PolicyNumber,
	)
	return nil
}

// NotifyEscalations publishes one batch message carrying every renewal the
// escalation detector flagged this pass. Empty batches are not published.
func (p *RenewalEventPublisher) NotifyEscalations(ctx context.Context, escalations []EscalationEventModel) error {
	if len(escalations) == 0 {
		return nil
	}
	if err := p.publish(ctx, EscalationBatchModel{
		EventType:   EventRenewalEscalated,
		Escalations: escalations,
		OccurredAt:  time.Now(),
	}); err != nil {
		return err
	}
	slog.Info("Renewal event published",
		"queue", RenewalEventsQueue,
		"event_type", EventRenewalEscalated,
		"escalations", len(escalations),
	)
	return nil
}

func (p *RenewalEventPublisher) publish(ctx context.Context, event any) error {
	body, err := json.Marshal(event)
	if err != nil {
		p.messagesFailed++
		return fmt.Errorf("failed to marshal renewal event: %w", err)
	}

	err = p.conn.Channel.PublishWithContext(
		ctx,
		"",                 // exchange
		RenewalEventsQueue, // routing key (queue name)
		false,              // mandatory
		false,              // immediate
		amqp.Publishing{
			DeliveryMode: amqp.Persistent,
			ContentType:  "application/json",
			Body:         body,
			Timestamp:    time.Now(),
		},
	)
	if err != nil {
		p.messagesFailed++
		return fmt.Errorf("failed to publish renewal event: %w", err)
	}

	p.messagesPublished++
	p.lastPublishTime = time.Now()
	return nil
}
