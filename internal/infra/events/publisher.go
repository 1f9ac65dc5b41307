package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Publisher публикует события распределения в topic exchange RabbitMQ
//
// Публикация выполняется после коммита транзакции. Ошибки брокера только логируются:
// состояние в БД уже зафиксировано, и ответ клиенту от них не зависит.
type Publisher struct {
	mu       sync.Mutex
	conn     *amqp.Connection
	ch       Channel
	exchange string
	log      Logger
	timeout  time.Duration
}

// Dial подключается к брокеру и объявляет exchange
func Dial(url, exchange string, log Logger) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("%w: dial: %v", ErrConnect, err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("%w: open channel: %v", ErrConnect, err)
	}

	p, err := NewPublisher(ch, exchange, log)
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	p.conn = conn

	return p, nil
}

// NewPublisher создает паблишер поверх уже открытого канала
func NewPublisher(ch Channel, exchange string, log Logger) (*Publisher, error) {
	if err := ch.ExchangeDeclare(
		exchange,
		amqp.ExchangeTopic,
		true,  // durable
		false, // autoDelete
		false, // internal
		false, // noWait
		nil,
	); err != nil {
		return nil, fmt.Errorf("%w: declare exchange %s: %v", ErrConnect, exchange, err)
	}

	return &Publisher{
		ch:       ch,
		exchange: exchange,
		log:      log,
		timeout:  5 * time.Second,
	}, nil
}

// Publish отправляет событие; ошибки логируются и не возвращаются
func (p *Publisher) Publish(ctx context.Context, event AllocationEvent) {
	if err := p.publish(ctx, event); err != nil {
		p.log.Warn("Publisher.Publish: %v (type=%s, subBookingId=%d)", err, event.Type, event.SubBookingID)
	}
}

func (p *Publisher) publish(ctx context.Context, event AllocationEvent) error {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: marshal: %v", ErrPublish, err)
	}

	// Контекст запроса может быть уже отменен после ответа клиенту
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), p.timeout)
	defer cancel()

	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.ch.PublishWithContext(pubCtx,
		p.exchange,
		string(event.Type),
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    event.OccurredAt,
			Body:         body,
		},
	); err != nil {
		return fmt.Errorf("%w: %v", ErrPublish, err)
	}

	return nil
}

// Close закрывает канал и соединение
func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.ch.Close(); err != nil {
		p.log.Warn("Publisher.Close: close channel: %v", err)
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}

// NopPublisher используется, когда RabbitMQ выключен в конфиге
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, AllocationEvent) {}

func (NopPublisher) Close() error { return nil }
