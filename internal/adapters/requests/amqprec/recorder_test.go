package amqprec

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"refugio-adopciones/internal/domain/adoption"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type published struct {
	exchange, key string
	msg           amqp.Publishing
}

type fakeChannel struct {
	got []published
	err error
}

func (f *fakeChannel) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	if f.err != nil {
		return f.err
	}
	f.got = append(f.got, published{exchange: exchange, key: key, msg: msg})
	return nil
}

func TestRecorder_Publishes(t *testing.T) {
	ch := &fakeChannel{}
	rec := New(ch, "", "")

	err := rec.Record(context.Background(), adoption.Record{
		Name:           "Camila",
		Email:          "camila@example.cl",
		ShelterAddress: "Carmen 1290",
		ReceivedAt:     time.Date(2026, 2, 14, 15, 4, 5, 0, time.UTC),
	})
	require.NoError(t, err)
	require.Len(t, ch.got, 1)

	p := ch.got[0]
	assert.Equal(t, DefaultExchange, p.exchange)
	assert.Equal(t, DefaultRoutingKey, p.key)
	assert.Equal(t, "application/json", p.msg.ContentType)
	assert.Equal(t, amqp.Persistent, p.msg.DeliveryMode)

	var m AdoptionMessage
	require.NoError(t, json.Unmarshal(p.msg.Body, &m))
	assert.Equal(t, "adoption_info", m.Type)
	assert.Equal(t, "camila@example.cl", m.Recipient)
	assert.Equal(t, "2026-02-14T15:04:05Z", m.ReceivedAt)
}

func TestRecorder_PublishError(t *testing.T) {
	rec := New(&fakeChannel{err: errors.New("channel closed")}, "x", "y")
	err := rec.Record(context.Background(), adoption.Record{Email: "a@b.cl"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "channel closed")
}
