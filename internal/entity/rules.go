package entity

import "unicode/utf8"

const (
	DefaultSecondsPerLetter = 5
	DefaultWarningThreshold = 10
	DefaultHitPoints        = 10
	DefaultMissPenalty      = 10
)

// Rules holds the tunable numbers of the game.
type Rules struct {
	SecondsPerLetter int
	WarningThreshold int
	HitPoints        int
	MissPenalty      int
}

func DefaultRules() Rules {
	return Rules{
		SecondsPerLetter: DefaultSecondsPerLetter,
		WarningThreshold: DefaultWarningThreshold,
		HitPoints:        DefaultHitPoints,
		MissPenalty:      DefaultMissPenalty,
	}
}

// RoundDuration - seconds granted for a word, proportional to its length in runes.
func (that Rules) RoundDuration(word string) int {
	return utf8.RuneCountInString(word) * that.SecondsPerLetter
}
