package redis

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync/atomic"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/hangman-backend/internal/entity"
)

const DefaultQueueSize = 256

func ChannelName(sessionID string) string {
	return "hangman:session:" + sessionID
}

type message struct {
	channel string
	payload []byte
}

// Publisher mirrors game snapshots to Redis pub/sub so other processes can watch a session.
// Publish never blocks: snapshots that do not fit in the queue are dropped.
type Publisher struct {
	logger *slog.Logger
	client *redis.Client
	queue  chan message

	dropped atomic.Int64
}

func NewPublisher(logger *slog.Logger, client *redis.Client, queueSize int) *Publisher {
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}

	return &Publisher{
		logger: logger.With("component", "redis-publisher"),
		client: client,
		queue:  make(chan message, queueSize),
	}
}

// Run - sends queued snapshots until ctx is done.
func (that *Publisher) Run(ctx context.Context) {
	log := that.logger.With("method", "Run")

	for {
		select {
		case <-ctx.Done():
			return
		case msg := <-that.queue:
			if err := that.client.Publish(ctx, msg.channel, msg.payload).Err(); err != nil {
				log.Error("failed to publish snapshot", "channel", msg.channel, "error", err)
			}
		}
	}
}

func (that *Publisher) Publish(snapshot entity.Snapshot) {
	log := that.logger.With("method", "Publish")

	payload, err := json.Marshal(snapshot)
	if err != nil {
		log.Error("failed to marshal snapshot", "error", err)
		return
	}

	select {
	case that.queue <- message{channel: ChannelName(snapshot.SessionID), payload: payload}:
	default:
		that.dropped.Add(1)
		log.Warn("publish queue is full, snapshot dropped", "session", snapshot.SessionID)
	}
}

// Dropped - number of snapshots that did not fit in the queue.
func (that *Publisher) Dropped() int64 {
	return that.dropped.Load()
}
