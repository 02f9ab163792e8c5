package events

import (
	"context"
	"encoding/json"
	"fmt"
	"go-marketplace/cart"
	"go-marketplace/models"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"
)

const (
	EventCartChanged = "cart.changed"

	defaultBuffer = 64
)

// Channel is the part of *amqp.Channel the publisher needs.
type Channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// AMQPPublisher forwards committed cart snapshots to a queue. Snapshots are
// buffered and sent from a single goroutine, so a slow broker never holds up
// a cart mutation. When the buffer is full the oldest pending snapshot is
// dropped.
type AMQPPublisher struct {
	ch      Channel
	queue   string
	buffer  int
	timeout time.Duration
	now     func() time.Time
	log     *logrus.Entry
}

func NewAMQPPublisher(ch Channel, queue string) *AMQPPublisher {
	return &AMQPPublisher{
		ch:      ch,
		queue:   queue,
		buffer:  defaultBuffer,
		timeout: 5 * time.Second,
		now:     time.Now,
		log:     logrus.WithFields(logrus.Fields{"component": "events", "queue": queue}),
	}
}

// Attach subscribes the publisher to store and starts the sending goroutine.
// The returned stop func unsubscribes, sends whatever is still pending and
// waits for the goroutine to exit.
func (p *AMQPPublisher) Attach(store *cart.Store) (stop func()) {
	pending := make(chan []models.CartItem, max(p.buffer, 1))
	quit := make(chan struct{})
	done := make(chan struct{})

	go p.run(pending, quit, done)
	unsubscribe := store.Subscribe(func(items []models.CartItem) {
		p.enqueue(pending, items)
	})

	var once sync.Once
	return func() {
		once.Do(func() {
			unsubscribe()
			close(quit)
			<-done
		})
	}
}

// enqueue never blocks. Subscribers are called one at a time, so after one
// pending snapshot is dropped the send succeeds.
func (p *AMQPPublisher) enqueue(pending chan []models.CartItem, items []models.CartItem) {
	for {
		select {
		case pending <- items:
			return
		default:
		}

		select {
		case <-pending:
			p.log.Warn("cart event buffer full, dropping oldest snapshot")
		default:
		}
	}
}

func (p *AMQPPublisher) run(pending <-chan []models.CartItem, quit <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	for {
		select {
		case items := <-pending:
			p.send(items)
		case <-quit:
			for {
				select {
				case items := <-pending:
					p.send(items)
				default:
					return
				}
			}
		}
	}
}

func (p *AMQPPublisher) send(items []models.CartItem) {
	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()
	if err := p.Publish(ctx, items); err != nil {
		p.log.WithError(err).Warn("failed to publish cart event")
	}
}

func (p *AMQPPublisher) Publish(ctx context.Context, items []models.CartItem) error {
	count := 0
	for _, it := range items {
		count += it.Quantity
	}

	body, err := json.Marshal(models.CartChanged{
		Event:      EventCartChanged,
		Products:   items,
		ItemCount:  count,
		OccurredAt: p.now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return fmt.Errorf("marshal cart event: %w", err)
	}

	err = p.ch.PublishWithContext(ctx, "", p.queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    p.now(),
		Type:         EventCartChanged,
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("publish to %s: %w", p.queue, err)
	}
	return nil
}

// Dial connects to RabbitMQ and declares the durable event queue.
func Dial(uri, queue string) (*amqp.Connection, *amqp.Channel, error) {
	conn, err := amqp.Dial(uri)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, nil, fmt.Errorf("failed to open RabbitMQ channel: %w", err)
	}

	if _, err := ch.QueueDeclare(
		queue,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,
	); err != nil {
		ch.Close()
		conn.Close()
		return nil, nil, fmt.Errorf("failed to declare %s queue: %w", queue, err)
	}

	return conn, ch, nil
}
