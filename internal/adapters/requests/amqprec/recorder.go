package amqprec

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"refugio-adopciones/internal/domain/adoption"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	DefaultExchange   = "email_exchange"
	DefaultRoutingKey = "adoption.info"
)

type publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// AdoptionMessage es el mensaje que consume el worker de emails.
type AdoptionMessage struct {
	Type           string `json:"type"`
	Recipient      string `json:"recipient"`
	RecipientName  string `json:"recipientName,omitempty"`
	ShelterAddress string `json:"shelterAddress"`
	ReceivedAt     string `json:"receivedAt"`
}

// Recorder publica el pedido en un exchange para que otro servicio mande el email.
type Recorder struct {
	channel    publisher
	exchange   string
	routingKey string
}

func New(channel publisher, exchange, routingKey string) *Recorder {
	if strings.TrimSpace(exchange) == "" {
		exchange = DefaultExchange
	}
	if strings.TrimSpace(routingKey) == "" {
		routingKey = DefaultRoutingKey
	}
	return &Recorder{channel: channel, exchange: exchange, routingKey: routingKey}
}

// Dial abre conexión + canal y declara el exchange (topic, durable).
// El caller cierra la conexión.
func Dial(url, exchange string) (*amqp.Connection, *amqp.Channel, error) {
	if strings.TrimSpace(exchange) == "" {
		exchange = DefaultExchange
	}
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, nil, fmt.Errorf("failed to open channel: %w", err)
	}
	err = ch.ExchangeDeclare(
		exchange, // name
		"topic",  // type
		true,     // durable
		false,    // auto-deleted
		false,    // internal
		false,    // no-wait
		nil,      // arguments
	)
	if err != nil {
		_ = conn.Close()
		return nil, nil, fmt.Errorf("failed to declare exchange: %w", err)
	}
	return conn, ch, nil
}

func (r *Recorder) Record(ctx context.Context, rec adoption.Record) error {
	body, err := json.Marshal(AdoptionMessage{
		Type:           "adoption_info",
		Recipient:      rec.Email,
		RecipientName:  rec.Name,
		ShelterAddress: rec.ShelterAddress,
		ReceivedAt:     rec.ReceivedAt.UTC().Format(time.RFC3339),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal adoption message: %w", err)
	}

	err = r.channel.PublishWithContext(
		ctx,
		r.exchange,   // exchange
		r.routingKey, // routing key
		false,        // mandatory
		false,        // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish adoption message: %w", err)
	}
	return nil
}
