package services

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/sndservices/snd-crm-backend/internal/config"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"
)

const securityEventsQueue = "security_events"

// EventService publishes security events to RabbitMQ for downstream
// consumers (alerting, audit trail). It satisfies token.AuditSink.
type EventService struct {
	conn    *amqp.Connection
	channel *amqp.Channel
}

func NewEventService() (*EventService, error) {
	host := config.GetEnv("RABBITMQ_HOST", "localhost")
	port := config.GetEnv("RABBITMQ_PORT", "5672")
	user := config.GetEnv("RABBITMQ_USER", "guest")
	pass := config.GetEnv("RABBITMQ_PASS", "guest")

	url := fmt.Sprintf("amqp://%s:%s@%s:%s/", user, pass, host, port)

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	_, err = channel.QueueDeclare(
		securityEventsQueue,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare queue: %w", err)
	}

	logrus.Info("RabbitMQ event service initialized")
	return &EventService{conn: conn, channel: channel}, nil
}

// TokenReuseDetected publishes a reuse event. Publish failures are logged,
// never propagated: the family is already revoked by the time this fires.
func (s *EventService) TokenReuseDetected(userID, familyID, ip string) {
	err := s.publish(map[string]interface{}{
		"event":     "token_reuse_detected",
		"user_id":   userID,
		"family_id": familyID,
		"ip":        ip,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		logrus.Errorf("Failed to publish token reuse event: %v", err)
	}
}

// SessionsRevoked publishes a logout-all event for the given user
func (s *EventService) SessionsRevoked(userID, reason string) {
	err := s.publish(map[string]interface{}{
		"event":     "sessions_revoked",
		"user_id":   userID,
		"reason":    reason,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		logrus.Errorf("Failed to publish sessions revoked event: %v", err)
	}
}

func (s *EventService) publish(message map[string]interface{}) error {
	body, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	err = s.channel.Publish(
		"",                  // exchange
		securityEventsQueue, // routing key
		false,               // mandatory
		false,               // immediate
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
			Timestamp:   time.Now(),
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish message: %w", err)
	}
	return nil
}

// Close closes the RabbitMQ connection
func (s *EventService) Close() error {
	if s.channel != nil {
		if err := s.channel.Close(); err != nil {
			logrus.Errorf("Error closing channel: %v", err)
		}
	}
	if s.conn != nil {
		if err := s.conn.Close(); err != nil {
			logrus.Errorf("Error closing connection: %v", err)
		}
	}
	return nil
}
