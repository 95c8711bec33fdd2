package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	amqp "github.com/streadway/amqp"
)

// OrderEventsQueue is the durable queue order events are published to.
const OrderEventsQueue = "order_events"

// Order event types.
const (
	EventOrderCreated       = "order.created"
	EventOrderStatusUpdated = "order.status_updated"
)

// OrderEvent is the JSON body of every message on OrderEventsQueue.
type OrderEvent struct {
	Type    string  `json:"type"`
	OrderID string  `json:"orderId"`
	UserID  string  `json:"userId"`
	Status  string  `json:"status"`
	Amount  float64 `json:"amount"`
}

// Client holds the RabbitMQ connection and channel.
type Client struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	// amqp channels are not safe for concurrent publishing
	mu sync.Mutex
}

// Config holds RabbitMQ connection details.
type Config struct {
	URL string
}

// NewClient connects to RabbitMQ, opens a channel and declares the order
// events queue.
func NewClient(cfg Config) (*Client, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	if err := declareQueue(ch); err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}

	logrus.WithField("queue", OrderEventsQueue).Info("rabbitmq client connected")

	return &Client{
		conn:    conn,
		channel: ch,
	}, nil
}

func declareQueue(ch *amqp.Channel) error {
	_, err := ch.QueueDeclare(
		OrderEventsQueue, // name
		true,             // durable
		false,            // delete when unused
		false,            // exclusive
		false,            // no-wait
		nil,              // arguments
	)
	if err != nil {
		return fmt.Errorf("failed to declare %s: %w", OrderEventsQueue, err)
	}
	return nil
}

// Close closes the RabbitMQ channel and connection.
func (c *Client) Close() error {
	var errs []error
	if c.channel != nil {
		if err := c.channel.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close channel: %w", err))
		}
	}
	if c.conn != nil {
		if err := c.conn.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close connection: %w", err))
		}
	}
	return errors.Join(errs...)
}

// PublishOrderEvent publishes event as a persistent JSON message.
func (c *Client) PublishOrderEvent(ctx context.Context, event OrderEvent) error {
	if c.channel == nil {
		return errors.New("RabbitMQ channel is not available")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal order event: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	err = c.channel.Publish(
		"",               // default exchange
		OrderEventsQueue, // routing key: the queue name
		false,            // mandatory
		false,            // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Type:         event.Type,
			Body:         body,
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
		})
	if err != nil {
		return fmt.Errorf("failed to publish %s: %w", event.Type, err)
	}
	return nil
}

// ConsumeOrderEvents registers a consumer on the order events queue and hands
// every decoded event to handler in a background goroutine. Messages are
// acked when handler returns nil and requeued otherwise; bodies that are not
// valid events are dropped.
func (c *Client) ConsumeOrderEvents(handler func(OrderEvent) error) error {
	if c.channel == nil {
		return errors.New("RabbitMQ channel is not available for consumption")
	}

	msgs, err := c.channel.Consume(
		OrderEventsQueue, // queue
		"",               // consumer tag
		false,            // auto-ack
		false,            // exclusive
		false,            // no-local
		false,            // no-wait
		nil,              // args
	)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	go func() {
		for msg := range msgs {
			handleDelivery(msg, handler)
		}
		logrus.WithField("queue", OrderEventsQueue).Info("order event consumer stopped")
	}()
	return nil
}

// Acknowledger is the subset of amqp.Delivery used to settle a message.
type Acknowledger interface {
	Ack(multiple bool) error
	Nack(multiple, requeue bool) error
}

func handleDelivery(msg amqp.Delivery, handler func(OrderEvent) error) {
	settle(&msg, msg.DeliveryTag, msg.Body, handler)
}

func settle(ack Acknowledger, tag uint64, body []byte, handler func(OrderEvent) error) {
	log := logrus.WithField("delivery_tag", tag)

	var event OrderEvent
	if err := json.Unmarshal(body, &event); err != nil {
		log.WithError(err).Warn("dropping malformed order event")
		if err := ack.Nack(false, false); err != nil {
			log.WithError(err).Error("failed to nack message")
		}
		return
	}

	if err := handler(event); err != nil {
		log.WithError(err).Error("failed to process order event")
		if err := ack.Nack(false, true); err != nil {
			log.WithError(err).Error("failed to nack message")
		}
		return
	}
	if err := ack.Ack(false); err != nil {
		log.WithError(err).Error("failed to ack message")
	}
}

// LogOrderEvent is the default consumer handler: it records the event.
func LogOrderEvent(event OrderEvent) error {
	logrus.WithFields(logrus.Fields{
		"type":     event.Type,
		"order_id": event.OrderID,
		"user_id":  event.UserID,
		"status":   event.Status,
		"amount":   event.Amount,
	}).Info("order event received")
	return nil
}
