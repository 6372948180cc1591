package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/GoArmGo/Playlister/internal/config"
	"github.com/GoArmGo/Playlister/internal/core/ports"
	"github.com/GoArmGo/Playlister/internal/messaging/payloads"
)

const publishTimeout = 5 * time.Second

var (
	_ ports.PlaylistEventPublisher = (*Client)(nil)
	_ ports.PlaylistEventConsumer  = (*Client)(nil)
)

// Client представляет собой клиент RabbitMQ
type Client struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	queue   amqp.Queue
	logger  *slog.Logger
}

// NewClient создает и инициализирует новый клиент RabbitMQ
func NewClient(cfg *config.Config, logger *slog.Logger) (*Client, error) {
	client := &Client{logger: logger}

	conn, err := amqp.Dial(cfg.RabbitMQ.RabbitMQURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}
	client.conn = conn

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to open a channel: %w", err)
	}
	client.channel = ch

	// Объявление очереди идемпотентно
	q, err := ch.QueueDeclare(
		cfg.RabbitMQ.RabbitMQQueueName, // name
		true,                           // durable
		false,                          // delete when unused
		false,                          // exclusive
		false,                          // no-wait
		nil,                            // arguments
	)
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to declare a queue: %w", err)
	}
	client.queue = q

	logger.Info("RabbitMQ connected",
		"queue", q.Name,
		"messages", q.Messages,
	)
	return client, nil
}

// Close закрывает соединение и канал RabbitMQ
func (c *Client) Close() error {
	if c.channel != nil {
		if err := c.channel.Close(); err != nil {
			c.logger.Warn("error closing RabbitMQ channel", "error", err)
		}
	}
	if c.conn != nil {
		if err := c.conn.Close(); err != nil {
			return fmt.Errorf("ошибка закрытия соединения RabbitMQ: %w", err)
		}
	}
	c.logger.Info("RabbitMQ connection closed")
	return nil
}

// PublishPlaylistEvent публикует событие плейлиста в очередь.
func (c *Client) PublishPlaylistEvent(ctx context.Context, event payloads.PlaylistEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event to JSON: %w", err)
	}

	publishCtx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	err = c.channel.PublishWithContext(
		publishCtx,
		"",           // exchange
		c.queue.Name, // routing key
		false,        // mandatory
		false,        // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    event.OccurredAt,
			Type:         string(event.Type),
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish a message: %w", err)
	}

	c.logger.Debug("playlist event published",
		"queue", c.queue.Name,
		"type", event.Type,
		"playlist_id", event.PlaylistID,
	)
	return nil
}

// StartConsumingPlaylistEvents начинает потребление сообщений из очереди.
// Сообщения подтверждаются вручную после обработки.
func (c *Client) StartConsumingPlaylistEvents(ctx context.Context, handler func(context.Context, payloads.PlaylistEvent) error) error {
	msgs, err := c.channel.Consume(
		c.queue.Name, // queue
		"",           // consumer
		false,        // auto-ack
		false,        // exclusive
		false,        // no-local
		false,        // no-wait
		nil,          // args
	)
	if err != nil {
		return fmt.Errorf("failed to register a consumer: %w", err)
	}

	c.logger.Info("consumer registered", "queue", c.queue.Name)

	go func() {
		for {
			select {
			case msg, ok := <-msgs:
				if !ok {
					c.logger.Info("RabbitMQ channel closed, stopping consumer")
					return
				}
				c.settle(msg, process(ctx, msg.Body, handler, c.logger))

			case <-ctx.Done():
				c.logger.Info("context cancelled, stopping RabbitMQ consumer")
				return
			}
		}
	}()

	return nil
}

// outcome — решение по доставленному сообщению
type outcome int

const (
	ack outcome = iota
	// reject — сообщение не разбирается, повторная доставка бессмысленна
	reject
	// requeue — обработка не удалась, сообщение вернется в очередь
	requeue
)

// process разбирает сообщение и вызывает обработчик
func process(ctx context.Context, body []byte, handler func(context.Context, payloads.PlaylistEvent) error, logger *slog.Logger) outcome {
	var event payloads.PlaylistEvent
	if err := json.Unmarshal(body, &event); err != nil {
		logger.Error("error unmarshalling message", "error", err, "body", string(body))
		return reject
	}
	if event.PlaylistID == "" {
		logger.Error("message without playlist id", "body", string(body))
		return reject
	}

	if err := handler(ctx, event); err != nil {
		logger.Error("error processing message",
			"type", event.Type,
			"playlist_id", event.PlaylistID,
			"error", err,
		)
		return requeue
	}
	return ack
}

func (c *Client) settle(msg amqp.Delivery, o outcome) {
	var err error
	switch o {
	case ack:
		err = msg.Ack(false)
	case reject:
		err = msg.Nack(false, false)
	case requeue:
		err = msg.Nack(false, true)
	}
	if err != nil {
		c.logger.Error("error settling message", "outcome", o, "error", err)
	}
}
