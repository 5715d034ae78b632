package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"ledgerboard/aggregator"
	"ledgerboard/config"
	"ledgerboard/logger"
	"ledgerboard/store"

	amqp "github.com/rabbitmq/amqp091-go"
)

// ChangeEvent 发布到消息队列的账本变更
type ChangeEvent struct {
	Entity string    `json:"entity"`
	Action string    `json:"action"`
	ID     string    `json:"id"`
	At     time.Time `json:"at"`
}

// Notifier 变更通知
type Notifier interface {
	Publish(ctx context.Context, ev ChangeEvent) error
	Close() error
}

// NopNotifier 未启用消息队列时使用
type NopNotifier struct{}

func (NopNotifier) Publish(context.Context, ChangeEvent) error { return nil }
func (NopNotifier) Close() error                               { return nil }

// publisher 为 *amqp.Channel 的发布子集
type publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// AMQPNotifier 通过 direct exchange 发布持久化 JSON 消息
type AMQPNotifier struct {
	conn     *amqp.Connection
	channel  publisher
	exchange string
	queue    string
}

// NewAMQPNotifier 连接 RabbitMQ 并声明 exchange 和 queue
func NewAMQPNotifier(cfg *config.AMQPConfig) (*AMQPNotifier, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("连接消息队列失败: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("打开通道失败: %w", err)
	}

	if err := declare(ch, cfg.Exchange, cfg.Queue); err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}

	return &AMQPNotifier{conn: conn, channel: ch, exchange: cfg.Exchange, queue: cfg.Queue}, nil
}

func declare(ch *amqp.Channel, exchange, queue string) error {
	if err := ch.ExchangeDeclare(exchange, "direct", true, false, false, false, nil); err != nil {
		return fmt.Errorf("声明 exchange 失败: %w", err)
	}
	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("声明 queue 失败: %w", err)
	}
	// direct exchange，routing key 与队列同名
	if err := ch.QueueBind(queue, queue, exchange, false, nil); err != nil {
		return fmt.Errorf("绑定 queue 失败: %w", err)
	}
	return nil
}

// Publish 发布一条变更事件，超时 5 秒
func (n *AMQPNotifier) Publish(ctx context.Context, ev ChangeEvent) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("序列化事件失败: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err = n.channel.PublishWithContext(ctx, n.exchange, n.queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    ev.At,
		MessageId:    ev.ID,
		Type:         ev.Entity + "." + ev.Action,
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("发布事件失败: %w", err)
	}
	return nil
}

func (n *AMQPNotifier) Close() error {
	if c, ok := n.channel.(*amqp.Channel); ok && c != nil {
		c.Close()
	}
	if n.conn != nil {
		return n.conn.Close()
	}
	return nil
}

// ChangeListener 把账本变更转发给 Notifier，发布失败只记录日志
func ChangeListener(n Notifier) store.Listener {
	return func(ctx context.Context, ev store.Event, _ *aggregator.Snapshot) {
		ce := ChangeEvent{Entity: ev.Entity, Action: ev.Action, ID: ev.ID, At: ev.At}
		if err := n.Publish(ctx, ce); err != nil {
			logger.L().Warnw("发布账本变更失败", "entity", ev.Entity, "action", ev.Action, "id", ev.ID, "error", err)
		}
	}
}
