package websocket

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rocketscienceinc/hangman-backend/internal/apperror"
	"github.com/rocketscienceinc/hangman-backend/internal/entity"
	"github.com/rocketscienceinc/hangman-backend/internal/usecase"
)

func (that *Server) handleGuess(ctx context.Context, game usecase.GameUseCase, conn *connection, msg *Message) error {
	log := that.logger.With("method", "handleGuess")

	var payload GuessPayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	if !entity.IsKeyboardLetter(payload.Letter) {
		return conn.sendError(msg.Action, fmt.Errorf("%w: %q", apperror.ErrUnknownLetter, payload.Letter))
	}

	if _, err := game.GuessLetter(ctx, payload.Letter); err != nil {
		log.Debug("guess rejected", "letter", payload.Letter, "error", err)
		return conn.sendError(msg.Action, err)
	}

	return nil
}

func (that *Server) handleMute(_ context.Context, game usecase.GameUseCase, _ *connection, msg *Message) error {
	var payload MutePayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	game.SetMuted(payload.Muted)

	return nil
}

func (that *Server) handleToggleMute(_ context.Context, game usecase.GameUseCase, _ *connection, _ *Message) error {
	game.ToggleMute()

	return nil
}

func (that *Server) handleRestart(ctx context.Context, game usecase.GameUseCase, _ *connection, _ *Message) error {
	game.ResetSession(ctx)

	return nil
}

func (that *Server) handleState(_ context.Context, game usecase.GameUseCase, conn *connection, _ *Message) error {
	return conn.send(ActionGameState, game.Snapshot())
}
