package usecase

import (
	"context"
	"log/slog"
	"sync"

	"github.com/rocketscienceinc/hangman-backend/internal/apperror"
	"github.com/rocketscienceinc/hangman-backend/internal/countdown"
	"github.com/rocketscienceinc/hangman-backend/internal/entity"
)

type questionService interface {
	Load(ctx context.Context) []entity.Question
	Shuffle(questions []entity.Question) []entity.Question
}

type audioCues interface {
	PlayWin()
	PlayWarning()
	PlayBackground()
	StopAll()
	SetMuted(muted bool)
}

type picker interface {
	Intn(n int) int
}

// Observer receives a snapshot after every state change, in mutation order.
// It runs while the game is locked and must not call back into the game.
type Observer func(snapshot entity.Snapshot)

type subscription struct {
	id       uint64
	observer Observer
}

// GameManager is the state machine of one game session. Letter guesses and
// countdown ticks are serialized by its mutex.
type GameManager struct {
	logger          *slog.Logger
	rules           entity.Rules
	questionService questionService
	audio           audioCues
	random          picker
	timer           *countdown.Timer

	mu            sync.Mutex
	session       *entity.Session
	generation    uint64
	subscriptions []subscription
	nextID        uint64
}

func NewGameManager(
	logger *slog.Logger,
	sessionID string,
	rules entity.Rules,
	questionService questionService,
	audio audioCues,
	clock countdown.Clock,
	random picker,
) *GameManager {
	manager := &GameManager{
		logger:          logger.With("component", "game", "session", sessionID),
		rules:           rules,
		questionService: questionService,
		audio:           audio,
		random:          random,
		session:         entity.NewSession(sessionID),
	}

	manager.timer = countdown.New(clock, rules.WarningThreshold, manager.handleTick)

	return manager
}

// StartSession - loads and shuffles the questions, resets the score and starts the first round.
func (that *GameManager) StartSession(ctx context.Context) entity.Snapshot {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.startSessionLocked(ctx)

	if that.session.IsActive() && !that.session.Muted {
		that.audio.PlayBackground()
	}

	return that.publishLocked()
}

// ResetSession - starts over after the game-over notice was acknowledged.
func (that *GameManager) ResetSession(ctx context.Context) entity.Snapshot {
	return that.StartSession(ctx)
}

func (that *GameManager) GuessLetter(ctx context.Context, letter string) (entity.Snapshot, error) {
	log := that.logger.With("method", "GuessLetter")

	that.mu.Lock()
	defer that.mu.Unlock()

	if err := that.confirmActiveLocked(); err != nil {
		return that.session.Snapshot(), err
	}

	round := that.session.Round

	switch round.Guess(letter) {
	case entity.GuessRepeated:
		return that.session.Snapshot(), nil
	case entity.GuessMiss:
		that.session.Score -= that.rules.MissPenalty
	case entity.GuessHit:
		that.session.Score += that.rules.HitPoints

		if round.IsSolved() {
			log.Info("round won", "word", round.Word, "score", that.session.Score)
			that.audio.PlayWin()
			that.advanceLocked(ctx)
		}
	}

	return that.publishLocked(), nil
}

// AdvanceRound - moves to the next question, or starts over with a reshuffled list once all were played.
func (that *GameManager) AdvanceRound(ctx context.Context) (entity.Snapshot, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if err := that.confirmActiveLocked(); err != nil {
		return that.session.Snapshot(), err
	}

	that.advanceLocked(ctx)

	return that.publishLocked(), nil
}

func (that *GameManager) SetMuted(muted bool) entity.Snapshot {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.setMutedLocked(muted)

	return that.publishLocked()
}

func (that *GameManager) ToggleMute() entity.Snapshot {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.setMutedLocked(!that.session.Muted)

	return that.publishLocked()
}

func (that *GameManager) Snapshot() entity.Snapshot {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.session.Snapshot()
}

// Subscribe - registers an observer; the returned func removes it.
func (that *GameManager) Subscribe(observer Observer) func() {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.nextID++
	id := that.nextID
	that.subscriptions = append(that.subscriptions, subscription{id: id, observer: observer})

	return func() {
		that.mu.Lock()
		defer that.mu.Unlock()

		for i, sub := range that.subscriptions {
			if sub.id == id {
				that.subscriptions = append(that.subscriptions[:i], that.subscriptions[i+1:]...)
				return
			}
		}
	}
}

// Close - stops the countdown and drops every observer.
func (that *GameManager) Close() {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.timer.Cancel()
	that.generation = 0
	that.subscriptions = nil
}

func (that *GameManager) handleTick(event countdown.Event) {
	that.mu.Lock()
	defer that.mu.Unlock()

	// ticks of a superseded countdown
	if event.Generation != that.generation || !that.session.IsActive() {
		return
	}

	round := that.session.Round

	if event.Expired {
		round.TimeLeft = 0
		that.endGameLocked()
		that.publishLocked()
		return
	}

	round.TimeLeft = event.Remaining
	if event.Warning {
		that.audio.PlayWarning()
	}

	that.publishLocked()
}

func (that *GameManager) startSessionLocked(ctx context.Context) {
	log := that.logger.With("method", "startSession")

	that.timer.Cancel()
	that.generation = 0

	questions := that.questionService.Shuffle(that.questionService.Load(ctx))

	that.session.Questions = questions
	that.session.CurrentIndex = 0
	that.session.Score = 0

	if len(questions) == 0 {
		log.Warn("no questions available, nothing to play")
		that.session.Round = nil
		that.session.Status = entity.StatusIdle
		return
	}

	that.beginRoundLocked()
	log.Info("session started", "questions", len(questions))
}

func (that *GameManager) advanceLocked(ctx context.Context) {
	that.timer.Cancel()

	if !that.session.HasNextQuestion() {
		that.logger.Info("all questions played, starting over", "method", "advanceRound")
		that.startSessionLocked(ctx)
		return
	}

	that.session.CurrentIndex++
	that.beginRoundLocked()
}

func (that *GameManager) beginRoundLocked() {
	question := that.session.Questions[that.session.CurrentIndex]

	that.session.Round = entity.NewRound(question, that.rules.RoundDuration(question.Word))
	that.session.Theme = entity.NewTheme(entity.Backgrounds[that.random.Intn(len(entity.Backgrounds))])
	that.session.Status = entity.StatusActive
	that.generation = that.timer.Start(that.session.Round.TimeLeft)
}

func (that *GameManager) endGameLocked() {
	that.timer.Cancel()
	that.generation = 0
	that.audio.StopAll()
	that.session.Status = entity.StatusOver

	that.logger.Info("time is up, game over", "method", "endGame", "score", that.session.Score)
}

func (that *GameManager) setMutedLocked(muted bool) {
	that.session.Muted = muted
	that.audio.SetMuted(muted)

	if !muted && that.session.IsActive() {
		that.audio.PlayBackground()
	}
}

func (that *GameManager) confirmActiveLocked() error {
	switch {
	case that.session.IsOver():
		return apperror.ErrGameOver
	case !that.session.IsActive():
		return apperror.ErrNoActiveRound
	default:
		return nil
	}
}

func (that *GameManager) publishLocked() entity.Snapshot {
	snapshot := that.session.Snapshot()

	for _, sub := range that.subscriptions {
		sub.observer(snapshot)
	}

	return snapshot
}
