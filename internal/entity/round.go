package entity

import "slices"

const (
	Placeholder = "_"
	Space       = " "
)

type GuessResult int

const (
	GuessRepeated GuessResult = iota
	GuessHit
	GuessMiss
)

// Round is the state of a single word being guessed.
type Round struct {
	Word          string
	Hint          string
	Mask          []string
	Guessed       []string
	WrongAttempts int
	TimeLeft      int
}

func NewRound(question Question, duration int) *Round {
	runes := []rune(question.Word)
	mask := make([]string, len(runes))

	for i, r := range runes {
		if string(r) == Space {
			mask[i] = Space
			continue
		}
		mask[i] = Placeholder
	}

	return &Round{
		Word:     question.Word,
		Hint:     question.Hint,
		Mask:     mask,
		Guessed:  []string{},
		TimeLeft: duration,
	}
}

// Guess - records the letter and reveals every position it occupies.
// Matching is an exact comparison of the letter against each rune of the word.
func (that *Round) Guess(letter string) GuessResult {
	if that.HasGuessed(letter) {
		return GuessRepeated
	}

	that.Guessed = append(that.Guessed, letter)

	found := false
	for i, r := range []rune(that.Word) {
		if string(r) == letter {
			that.Mask[i] = letter
			found = true
		}
	}

	if !found {
		that.WrongAttempts++
		return GuessMiss
	}

	return GuessHit
}

func (that *Round) HasGuessed(letter string) bool {
	return slices.Contains(that.Guessed, letter)
}

func (that *Round) IsSolved() bool {
	return !slices.Contains(that.Mask, Placeholder)
}
