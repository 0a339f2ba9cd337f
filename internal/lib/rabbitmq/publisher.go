package rabbitmq

import (
	"encoding/json"
	"fmt"

	"github.com/streadway/amqp"
)

// ChannelPublisher адаптирует *amqp.Channel под интерфейсы сервисов,
// публикующих сообщения.
type ChannelPublisher struct {
	ch *amqp.Channel
}

// NewChannelPublisher создает ChannelPublisher поверх открытого канала.
func NewChannelPublisher(ch *amqp.Channel) *ChannelPublisher {
	return &ChannelPublisher{ch: ch}
}

// Publish публикует сообщение через обёрнутый канал.
func (p *ChannelPublisher) Publish(exchange, routingKey string, message any) error {
	return PublishMessage(p.ch, exchange, routingKey, message)
}

// PublishMessage публикует сообщение в exchange с указанным ключом маршрутизации.
func PublishMessage(ch *amqp.Channel, exchange string, routingkey string, message any) error {
	const op = "rabbitmq.PublishMessage"
	body, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	err = ch.Publish(
		exchange,
		routingkey,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
