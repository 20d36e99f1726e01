package service

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/rocketscienceinc/hangman-backend/internal/entity"
)

type QuestionService interface {
	Load(ctx context.Context) []entity.Question
	Shuffle(questions []entity.Question) []entity.Question
	LastLoaded() int
}

type questionRepo interface {
	GetAll(ctx context.Context) ([]entity.Question, error)
}

type shuffler interface {
	Shuffle(n int, swap func(i, j int))
}

type questionService struct {
	logger       *slog.Logger
	questionRepo questionRepo

	mu     sync.Mutex
	random shuffler

	lastLoaded atomic.Int64
}

// NewQuestionService - random is the source used for shuffling; it is guarded internally
// so one service can be shared by every session.
func NewQuestionService(logger *slog.Logger, questionRepo questionRepo, random shuffler) QuestionService {
	return &questionService{
		logger:       logger.With("component", "questions"),
		questionRepo: questionRepo,
		random:       random,
	}
}

// Load - never fails: a broken resource is logged and yields no questions.
func (that *questionService) Load(ctx context.Context) []entity.Question {
	log := that.logger.With("method", "Load")

	questions, err := that.questionRepo.GetAll(ctx)
	if err != nil {
		log.Error("failed to load questions", "error", err)
		that.lastLoaded.Store(0)
		return []entity.Question{}
	}

	valid := make([]entity.Question, 0, len(questions))
	for i, question := range questions {
		if err = question.Validate(); err != nil {
			log.Warn("skipping question", "index", i, "error", err)
			continue
		}
		valid = append(valid, question)
	}

	that.lastLoaded.Store(int64(len(valid)))
	log.Debug("questions loaded", "count", len(valid))

	return valid
}

func (that *questionService) Shuffle(questions []entity.Question) []entity.Question {
	shuffled := slices.Clone(questions)

	that.mu.Lock()
	defer that.mu.Unlock()

	that.random.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	return shuffled
}

// LastLoaded - number of valid questions returned by the most recent Load.
func (that *questionService) LastLoaded() int {
	return int(that.lastLoaded.Load())
}
