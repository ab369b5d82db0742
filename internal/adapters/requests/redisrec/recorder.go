package redisrec

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"refugio-adopciones/internal/domain/adoption"

	"github.com/redis/go-redis/v9"
)

const DefaultKey = "adoption_requests"

// listPusher es lo único que usamos de *redis.Client.
type listPusher interface {
	RPush(ctx context.Context, key string, values ...interface{}) *redis.IntCmd
}

// Recorder deja cada pedido como JSON al final de una lista de Redis;
// el equipo del refugio la revisa a mano.
type Recorder struct {
	client listPusher
	key    string
}

func New(client listPusher, key string) *Recorder {
	if strings.TrimSpace(key) == "" {
		key = DefaultKey
	}
	return &Recorder{client: client, key: key}
}

// NewClient arma el *redis.Client y hace ping, como en el resto de la infra.
func NewClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}
	return client, nil
}

func (r *Recorder) Record(ctx context.Context, rec adoption.Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal adoption request: %w", err)
	}
	if err := r.client.RPush(ctx, r.key, data).Err(); err != nil {
		return fmt.Errorf("failed to record adoption request: %w", err)
	}
	return nil
}
