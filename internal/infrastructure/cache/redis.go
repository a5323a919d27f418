package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/foodzo-api/pkg/config"
	"github.com/jhoicas/foodzo-api/pkg/logger"
)

const publishTimeout = 2 * time.Second

// Broadcast envuelve la caché local y difunde cada Flush por pub/sub de Redis, de modo que
// una escritura de admin en una instancia invalida el catálogo en todas.
type Broadcast struct {
	local   *Memory
	client  *redis.Client
	channel string
	origin  string
	log     *logger.Logger
}

// NewRedisBroadcast conecta con Redis (REDIS_URL) y verifica la conexión con un ping.
func NewRedisBroadcast(ctx context.Context, cfg config.RedisConfig, local *Memory, log *logger.Logger) (*Broadcast, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("cache: REDIS_URL inválida: %w", err)
	}
	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("cache: redis ping: %w", err)
	}
	return newBroadcast(local, client, cfg.Channel, log), nil
}

func newBroadcast(local *Memory, client *redis.Client, channel string, log *logger.Logger) *Broadcast {
	if log == nil {
		log = logger.Nop()
	}
	return &Broadcast{local: local, client: client, channel: channel, origin: uuid.NewString(), log: log}
}

func (b *Broadcast) Get(key string) (any, bool) { return b.local.Get(key) }

func (b *Broadcast) Set(key string, v any) { b.local.Set(key, v) }

// Flush vacía la caché local y avisa al resto. Un fallo al publicar solo se registra:
// las demás instancias se recuperan al expirar su TTL.
func (b *Broadcast) Flush() {
	b.local.Flush()
	if b.client == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()
	if err := b.client.Publish(ctx, b.channel, b.origin).Err(); err != nil {
		b.log.Warn().Err(err).Str("channel", b.channel).Msg("no se pudo difundir la invalidación del catálogo")
	}
}

// Run escucha el canal hasta que ctx termine.
func (b *Broadcast) Run(ctx context.Context) {
	sub := b.client.Subscribe(ctx, b.channel)
	defer sub.Close()
	msgs := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-msgs:
			if !ok {
				return
			}
			b.handle(msg.Payload)
		}
	}
}

// handle ignora los avisos publicados por esta misma instancia (ya vació su caché).
func (b *Broadcast) handle(origin string) {
	if origin == b.origin {
		return
	}
	b.local.Flush()
	b.log.Debug().Str("from", origin).Msg("caché del catálogo invalidada por otra instancia")
}

// Close cierra el cliente Redis.
func (b *Broadcast) Close() error {
	if b.client == nil {
		return nil
	}
	return b.client.Close()
}
