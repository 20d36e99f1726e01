package entity

import (
	"fmt"
	"strings"

	"github.com/rocketscienceinc/hangman-backend/internal/apperror"
)

// Question is one word to guess together with its hint.
type Question struct {
	Word string `json:"kelime"`
	Hint string `json:"ipucu"`
}

func (that Question) Validate() error {
	if strings.TrimSpace(that.Word) == "" {
		return fmt.Errorf("%w: empty word", apperror.ErrInvalidQuestion)
	}

	if strings.Contains(that.Word, Placeholder) {
		return fmt.Errorf("%w: word %q contains the placeholder", apperror.ErrInvalidQuestion, that.Word)
	}

	return nil
}
