// Package broker fans stored analytics events out to a RabbitMQ exchange.
package broker

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"brewpair/entity"

	"github.com/op/go-logging"
	amqp "github.com/rabbitmq/amqp091-go"
)

var log = logging.MustGetLogger("broker")

const publishTimeout = 5 * time.Second

// Publisher sends every event to a fanout exchange, routed by event kind.
type Publisher struct {
	exchange string
	conn     *amqp.Connection

	mu      sync.Mutex
	channel *amqp.Channel
}

func NewPublisher(url, exchange string) (*Publisher, error) {
	conn, err := amqp.Dial(url)
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
		"fanout", // type
		true,     // durable
		false,    // auto-deleted
		false,    // internal
		false,    // no-wait
		nil,      // arguments
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}

	return &Publisher{exchange: exchange, conn: conn, channel: ch}, nil
}

// Publish logs failures; events are not retried.
func (p *Publisher) Publish(ev *entity.AnalyticsEvent) {
	msg, err := Encode(ev)
	if err != nil {
		log.Errorf("encode event %s: %v", ev.ID, err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.channel == nil || p.channel.IsClosed() {
		log.Warningf("amqp channel closed, event %s not published", ev.ID)
		return
	}
	if err := p.channel.PublishWithContext(ctx, p.exchange, string(ev.EventType), false, false, msg); err != nil {
		log.Errorf("publish event %s: %v", ev.ID, err)
	}
}

func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.channel != nil {
		_ = p.channel.Close()
		p.channel = nil
	}
	return p.conn.Close()
}

// Encode builds the message published for ev.
func Encode(ev *entity.AnalyticsEvent) (amqp.Publishing, error) {
	body, err := json.Marshal(ev)
	if err != nil {
		return amqp.Publishing{}, err
	}
	return amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    ev.ID,
		Type:         string(ev.EventType),
		Timestamp:    ev.CreatedAt,
		Body:         body,
	}, nil
}
