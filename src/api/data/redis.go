package data

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	noncePrefix  = "nonce:"
	streamEvents = "treasurygov.events"
)

func MustRedis(url string) *redis.Client {
	opt, err := redis.ParseURL(url)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}
	return redis.NewClient(opt)
}

func SetNonce(ctx context.Context, rdb *redis.Client, addr, nonce string) error {
	return rdb.Set(ctx, noncePrefix+addr, nonce, 5*time.Minute).Err()
}

func GetAndDelNonce(ctx context.Context, rdb *redis.Client, addr string) (string, error) {
	return rdb.GetDel(ctx, noncePrefix+addr).Result()
}

// EventStream publishes governance lifecycle events onto a Redis stream for
// downstream consumers (the Discord announcer, external tooling).
type EventStream struct {
	rdb *redis.Client
}

func NewEventStream(rdb *redis.Client) *EventStream { return &EventStream{rdb: rdb} }

func (e *EventStream) Publish(ctx context.Context, event string, fields map[string]interface{}) error {
	values := map[string]interface{}{"event": event}
	for k, v := range fields {
		values[k] = v
	}
	_, err := e.rdb.XAdd(ctx, &redis.XAddArgs{
		Stream: streamEvents,
		Values: values,
	}).Result()
	return err
}

// ReadEvents blocks up to the given duration waiting for new stream entries
// after lastID and returns them.
func ReadEvents(ctx context.Context, rdb *redis.Client, lastID string, block time.Duration) ([]redis.XStream, error) {
	return rdb.XRead(ctx, &redis.XReadArgs{
		Streams: []string{streamEvents, lastID},
		Block:   block,
	}).Result()
}
