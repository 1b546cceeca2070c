package events

import (
	"encoding/json"
	"log"

	"lms/config"

	"github.com/streadway/amqp"
)

// Event types published by this service
const (
	QuizSubmitted   = "quiz.submitted"
	LessonCompleted = "lesson.completed"
	CourseCompleted = "course.completed"
)

// EventPublisher publishes domain events to a RabbitMQ topic exchange.
// The event type doubles as the routing key.
type EventPublisher struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
}

// Publisher is the global event publisher. It stays nil when the broker is
// unreachable; Emit degrades to a no-op in that case.
var Publisher *EventPublisher

// Connect dials the broker and declares the exchange. A missing broker is
// logged, not fatal: grading must keep working without eventing.
func Connect() {
	p, err := NewEventPublisher(config.AppConfig.AmqpURL, config.AppConfig.EventExchange)
	if err != nil {
		log.Printf("Warning: event publisher disabled: %v", err)
		return
	}
	Publisher = p
	log.Printf("Event publisher connected, exchange %s", config.AppConfig.EventExchange)
}

func NewEventPublisher(amqpURL, exchange string) (*EventPublisher, error) {
	conn, err := amqp.Dial(amqpURL)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}
	err = ch.ExchangeDeclare(
		exchange,
		"topic",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}
	return &EventPublisher{conn: conn, channel: ch, exchange: exchange}, nil
}

func (p *EventPublisher) Publish(eventType string, payload interface{}) error {
	event := map[string]interface{}{
		"type":    eventType,
		"payload": payload,
	}
	body, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return p.channel.Publish(
		p.exchange,
		eventType, // routing key
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
}

func (p *EventPublisher) Close() {
	if p.channel != nil {
		_ = p.channel.Close()
	}
	if p.conn != nil {
		_ = p.conn.Close()
	}
}

// Emit publishes best-effort through the global publisher. Failures are
// logged and swallowed; events never fail a request.
func Emit(eventType string, payload interface{}) {
	if Publisher == nil {
		return
	}
	if err := Publisher.Publish(eventType, payload); err != nil {
		log.Printf("Error publishing %s event: %v", eventType, err)
	}
}
