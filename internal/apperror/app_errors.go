package apperror

import "errors"

var (
	ErrQuestionsLoad     = errors.New("could not load questions")
	ErrQuestionsNotFound = errors.New("questions resource not found")
	ErrInvalidQuestion   = errors.New("invalid question")
	ErrNoActiveRound     = errors.New("no active round")
	ErrGameOver          = errors.New("game is over")
	ErrUnknownLetter     = errors.New("letter is not on the keyboard")
	ErrInvalidConfig     = errors.New("invalid configuration")
)
