package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/hangman-backend/internal/audio"
	"github.com/rocketscienceinc/hangman-backend/internal/entity"
	"github.com/rocketscienceinc/hangman-backend/internal/usecase"
)

const sessionCookie = "user_session"

type games interface {
	Open(sessionID string, sink audio.Sink) usecase.GameUseCase
}

type snapshotPublisher interface {
	Publish(snapshot entity.Snapshot)
}

type handler func(ctx context.Context, game usecase.GameUseCase, conn *connection, msg *Message) error

type Server struct {
	logger    *slog.Logger
	games     games
	publisher snapshotPublisher
	upgrader  websocket.Upgrader

	handlers map[string]handler
}

// New - publisher may be nil when snapshots are not mirrored anywhere.
func New(logger *slog.Logger, games games, publisher snapshotPublisher) *Server {
	server := &Server{
		logger:    logger.With("component", "websocket"),
		games:     games,
		publisher: publisher,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(_ *http.Request) bool {
				return true
			},
		},
		handlers: make(map[string]handler),
	}

	server.handlers[ActionLetterGuess] = server.handleGuess
	server.handlers[ActionAudioMute] = server.handleMute
	server.handlers[ActionAudioToggle] = server.handleToggleMute
	server.handlers[ActionGameRestart] = server.handleRestart
	server.handlers[ActionGameState] = server.handleState

	return server
}

func (that *Server) Handler(ctx context.Context) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		that.serveWebSocket(ctx, w, r)
	})

	return mux
}

// Start - starts WebSocket server and stops it when ctx is done.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           that.Handler(ctx),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			that.logger.Error("failed to shut down websocket server", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// serveWebSocket - upgrades the connection and runs one game for it until the client leaves.
func (that *Server) serveWebSocket(ctx context.Context, writer http.ResponseWriter, req *http.Request) {
	userID, header := that.userID(req)
	// each connection is its own game, even when two tabs share the cookie
	gameID := uuid.NewString()
	log := that.logger.With("method", "serveWebSocket", "user", userID, "session", gameID)

	ws, err := that.upgrader.Upgrade(writer, req, header)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	conn := newConnection(log, ws, outboundQueueSize)
	go conn.writeLoop()
	defer func() {
		if err = conn.close(); err != nil {
			log.Debug("failed to close connection", "error", err)
		}
	}()

	connCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	game := that.games.Open(gameID, conn)
	defer game.Close()

	game.Subscribe(that.observer(conn, log))
	game.StartSession(connCtx)

	log.Info("WebSocket connection established")

	that.handleMessages(connCtx, game, conn)

	log.Info("WebSocket connection closed")
}

// observer - pushes every snapshot to the client and announces the end of the game once.
func (that *Server) observer(conn *connection, log *slog.Logger) usecase.Observer {
	lastStatus := ""

	return func(snapshot entity.Snapshot) {
		if err := conn.send(ActionGameState, snapshot); err != nil {
			log.Error("failed to send game state", "error", err)
		}

		if snapshot.Status == entity.StatusOver && lastStatus != entity.StatusOver {
			if err := conn.send(ActionGameOver, GameOverPayload{Score: snapshot.Score, Word: snapshot.Word}); err != nil {
				log.Error("failed to send game over", "error", err)
			}
		}
		lastStatus = snapshot.Status

		if that.publisher != nil {
			that.publisher.Publish(snapshot)
		}
	}
}

// handleMessages - processes messages from the client.
func (that *Server) handleMessages(ctx context.Context, game usecase.GameUseCase, conn *connection) {
	log := that.logger.With("method", "handleMessages")

	for {
		_, data, err := conn.ws.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Error("error reading message", "error", err)
			}
			return
		}

		var message Message
		if err = json.Unmarshal(data, &message); err != nil {
			log.Error("failed to unmarshal message", "error", err)
			continue
		}

		handle, ok := that.handlers[message.Action]
		if !ok {
			log.Warn("unknown action", "action", message.Action)
			if err = conn.sendError(message.Action, fmt.Errorf("unknown action %q", message.Action)); err != nil {
				log.Error("failed to send error", "error", err)
			}
			continue
		}

		if err = handle(ctx, game, conn, &message); err != nil {
			log.Error("error processing message", "action", message.Action, "error", err)
		}
	}
}

// userID - reuses the session cookie or creates a new one to send with the upgrade response.
func (that *Server) userID(req *http.Request) (string, http.Header) {
	if cookie, err := req.Cookie(sessionCookie); err == nil && cookie.Value != "" {
		return cookie.Value, nil
	}

	cookie := &http.Cookie{
		Name:     sessionCookie,
		Value:    uuid.NewString(),
		Expires:  time.Now().Add(24 * time.Hour),
		Path:     "/ws",
		HttpOnly: true,
	}

	header := http.Header{}
	header.Add("Set-Cookie", cookie.String())

	return cookie.Value, header
}
