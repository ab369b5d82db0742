package redisrec

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"refugio-adopciones/internal/domain/adoption"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeList struct {
	key    string
	values []interface{}
	err    error
}

func (f *fakeList) RPush(ctx context.Context, key string, values ...interface{}) *redis.IntCmd {
	if f.err != nil {
		return redis.NewIntResult(0, f.err)
	}
	f.key = key
	f.values = append(f.values, values...)
	return redis.NewIntResult(int64(len(f.values)), nil)
}

func TestRecorder_PushesJSON(t *testing.T) {
	fl := &fakeList{}
	rec := New(fl, "")

	at := time.Date(2026, 2, 14, 15, 4, 5, 0, time.UTC)
	err := rec.Record(context.Background(), adoption.Record{
		Name: "Camila", Email: "camila@example.cl", ShelterAddress: "Carmen 1290", ReceivedAt: at,
	})
	require.NoError(t, err)
	assert.Equal(t, DefaultKey, fl.key)
	require.Len(t, fl.values, 1)

	var got adoption.Record
	require.NoError(t, json.Unmarshal(fl.values[0].([]byte), &got))
	assert.Equal(t, "camila@example.cl", got.Email)
	assert.True(t, at.Equal(got.ReceivedAt))
}

func TestRecorder_Error(t *testing.T) {
	rec := New(&fakeList{err: errors.New("connection refused")}, "custom")

	err := rec.Record(context.Background(), adoption.Record{Email: "a@b.cl"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
}
