package usecase

import (
	"context"
	"log/slog"
	"math/rand"
	"time"

	"github.com/rocketscienceinc/hangman-backend/internal/audio"
	"github.com/rocketscienceinc/hangman-backend/internal/countdown"
	"github.com/rocketscienceinc/hangman-backend/internal/entity"
)

type GameUseCase interface {
	StartSession(ctx context.Context) entity.Snapshot
	ResetSession(ctx context.Context) entity.Snapshot

	GuessLetter(ctx context.Context, letter string) (entity.Snapshot, error)
	AdvanceRound(ctx context.Context) (entity.Snapshot, error)

	SetMuted(muted bool) entity.Snapshot
	ToggleMute() entity.Snapshot

	Snapshot() entity.Snapshot
	Subscribe(observer Observer) func()
	Close()
}

// Games opens one independent game per player session.
type Games struct {
	logger          *slog.Logger
	rules           entity.Rules
	questionService questionService
	library         *audio.Library
	clock           countdown.Clock
	seed            int64
}

// NewGames - a zero seed makes every game random; any other seed makes every game replay the same draws.
func NewGames(
	logger *slog.Logger,
	rules entity.Rules,
	questionService questionService,
	library *audio.Library,
	clock countdown.Clock,
	seed int64,
) *Games {
	return &Games{
		logger:          logger,
		rules:           rules,
		questionService: questionService,
		library:         library,
		clock:           clock,
		seed:            seed,
	}
}

// Open - creates the game of a session; cues are played through sink.
func (that *Games) Open(sessionID string, sink audio.Sink) GameUseCase {
	seed := that.seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return NewGameManager(
		that.logger,
		sessionID,
		that.rules,
		that.questionService,
		audio.NewPlayer(that.library, sink),
		that.clock,
		rand.New(rand.NewSource(seed)), //nolint: gosec // it's ok
	)
}
