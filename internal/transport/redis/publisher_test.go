package redis

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/hangman-backend/internal/entity"
	"github.com/rocketscienceinc/hangman-backend/testing/suite"
)

func TestPublisher_Publish(t *testing.T) {
	ctx, st := suite.New(t)

	// Given: a subscriber on the channel of session "s1"
	sub := st.Storage.Subscribe(ctx, ChannelName("s1"))
	t.Cleanup(func() { _ = sub.Close() })

	_, err := sub.Receive(ctx)
	require.NoError(t, err)

	publisher := NewPublisher(st.Logger, st.Storage, 8)
	runCtx, cancel := context.WithCancel(ctx)
	t.Cleanup(cancel)
	go publisher.Run(runCtx)

	// When: a snapshot of that session is published
	session := entity.NewSession("s1")
	session.Questions = []entity.Question{{Word: "kedi", Hint: "evcil hayvan"}}
	session.Round = entity.NewRound(session.Questions[0], 20)
	session.Status = entity.StatusActive
	session.Score = 10
	publisher.Publish(session.Snapshot())

	// Then: the subscriber receives it as JSON
	select {
	case msg := <-sub.Channel():
		var received entity.Snapshot
		require.NoError(t, json.Unmarshal([]byte(msg.Payload), &received))
		assert.Equal(t, "s1", received.SessionID)
		assert.Equal(t, 10, received.Score)
		assert.Equal(t, "evcil hayvan", received.Hint)
		assert.Empty(t, received.Word)
	case <-time.After(5 * time.Second):
		t.Fatal("snapshot was not published")
	}
}

func TestPublisher_DropsWhenFull(t *testing.T) {
	// Given: a publisher with a queue of one that is not running
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	client := redis.NewClient(&redis.Options{Addr: "localhost:0"})
	t.Cleanup(func() { _ = client.Close() })
	publisher := NewPublisher(logger, client, 1)

	// When: two snapshots are published
	publisher.Publish(entity.NewSession("s1").Snapshot())
	publisher.Publish(entity.NewSession("s1").Snapshot())

	// Then: the second one is dropped without blocking
	assert.Equal(t, int64(1), publisher.Dropped())
}
