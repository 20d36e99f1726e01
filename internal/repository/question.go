package repository

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/rocketscienceinc/hangman-backend/internal/apperror"
	"github.com/rocketscienceinc/hangman-backend/internal/entity"
)

//go:embed data/questions.json
var bundledQuestions []byte

type QuestionRepository interface {
	GetAll(ctx context.Context) ([]entity.Question, error)
}

type fileQuestions struct {
	path string
}

// NewQuestionRepository - reads questions from the JSON file at path,
// or from the questions bundled into the binary when path is empty.
func NewQuestionRepository(path string) QuestionRepository {
	return &fileQuestions{
		path: path,
	}
}

func (that *fileQuestions) GetAll(ctx context.Context) ([]entity.Question, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", apperror.ErrQuestionsLoad, err)
	}

	data, err := that.read()
	if err != nil {
		return nil, err
	}

	var questions []entity.Question
	if err = json.Unmarshal(data, &questions); err != nil {
		return nil, fmt.Errorf("%w: failed to unmarshal questions: %w", apperror.ErrQuestionsLoad, err)
	}

	return questions, nil
}

func (that *fileQuestions) read() ([]byte, error) {
	if that.path == "" {
		return bundledQuestions, nil
	}

	data, err := os.ReadFile(that.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", apperror.ErrQuestionsNotFound, that.path)
	}

	if err != nil {
		return nil, fmt.Errorf("%w: failed to read %s: %w", apperror.ErrQuestionsLoad, that.path, err)
	}

	return data, nil
}
