package websocket

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/hangman-backend/internal/audio"
)

const (
	writeWait         = 10 * time.Second
	outboundQueueSize = 64
)

var errQueueFull = errors.New("outbound queue is full")

// connection owns the writes to one client and doubles as its audio sink.
// Messages are queued and written by writeLoop, so senders never wait on the socket.
type connection struct {
	logger *slog.Logger
	ws     *websocket.Conn
	queue  chan Message
	done   chan struct{}
	once   sync.Once

	dropped atomic.Int64
}

func newConnection(logger *slog.Logger, ws *websocket.Conn, queueSize int) *connection {
	if queueSize <= 0 {
		queueSize = outboundQueueSize
	}

	return &connection{
		logger: logger,
		ws:     ws,
		queue:  make(chan Message, queueSize),
		done:   make(chan struct{}),
	}
}

// writeLoop - writes queued messages in order until the connection is closed.
func (that *connection) writeLoop() {
	for {
		select {
		case <-that.done:
			return
		case msg := <-that.queue:
			if err := that.write(msg); err != nil {
				that.logger.Error("failed to write message", "action", msg.Action, "error", err)
			}
		}
	}
}

func (that *connection) write(msg Message) error {
	if err := that.ws.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return fmt.Errorf("failed to set write deadline: %w", err)
	}

	if err := that.ws.WriteJSON(msg); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return nil
}

// send - queues a message for the client; it is dropped when the queue is full.
func (that *connection) send(action string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	select {
	case <-that.done:
		return nil
	default:
	}

	select {
	case that.queue <- Message{Action: action, Payload: data}:
		return nil
	default:
		that.dropped.Add(1)
		return fmt.Errorf("%w: %s dropped", errQueueFull, action)
	}
}

func (that *connection) sendError(action string, err error) error {
	return that.send(ActionError, ErrorPayload{Action: action, Error: err.Error()})
}

func (that *connection) Play(cue audio.Cue) {
	if err := that.send(ActionAudioPlay, cue); err != nil {
		that.logger.Error("failed to send audio cue", "clip", cue.Clip, "error", err)
	}
}

func (that *connection) Stop(clip audio.Clip) {
	if err := that.send(ActionAudioStop, StopPayload{Clip: clip}); err != nil {
		that.logger.Error("failed to send audio stop", "clip", clip, "error", err)
	}
}

// Dropped - number of messages that did not fit in the queue.
func (that *connection) Dropped() int64 {
	return that.dropped.Load()
}

func (that *connection) close() error {
	that.once.Do(func() {
		close(that.done)
	})

	return that.ws.Close()
}
