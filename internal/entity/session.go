package entity

import "slices"

const (
	StatusIdle   = "idle"
	StatusActive = "active"
	StatusOver   = "over"
)

// Session is one player's run of rounds, from start until game over is acknowledged.
type Session struct {
	ID           string
	Questions    []Question
	CurrentIndex int
	Score        int
	Round        *Round
	Status       string
	Theme        Theme
	Muted        bool
}

func NewSession(id string) *Session {
	return &Session{
		ID:     id,
		Status: StatusIdle,
		Theme:  DefaultTheme(),
	}
}

func (that *Session) IsActive() bool {
	return that.Status == StatusActive
}

func (that *Session) IsOver() bool {
	return that.Status == StatusOver
}

func (that *Session) IsIdle() bool {
	return that.Status == StatusIdle
}

// HasNextQuestion reports whether a question follows the current one.
func (that *Session) HasNextQuestion() bool {
	return that.CurrentIndex+1 < len(that.Questions)
}

// Snapshot is a read-only copy of everything needed to render the game.
type Snapshot struct {
	SessionID      string   `json:"session_id"`
	Status         string   `json:"status"`
	Mask           []string `json:"mask"`
	Hint           string   `json:"hint"`
	Word           string   `json:"word,omitempty"`
	TimeLeft       int      `json:"time_left"`
	Score          int      `json:"score"`
	WrongAttempts  int      `json:"wrong_attempts"`
	Guessed        []string `json:"guessed"`
	Keyboard       [][]Key  `json:"keyboard"`
	Theme          Theme    `json:"theme"`
	Muted          bool     `json:"muted"`
	Round          int      `json:"round"`
	TotalQuestions int      `json:"total_questions"`
}

func (that *Session) Snapshot() Snapshot {
	snapshot := Snapshot{
		SessionID:      that.ID,
		Status:         that.Status,
		Mask:           []string{},
		Guessed:        []string{},
		Score:          that.Score,
		Keyboard:       Keyboard(that.Round),
		Theme:          that.Theme,
		Muted:          that.Muted,
		TotalQuestions: len(that.Questions),
	}

	if that.Round == nil {
		return snapshot
	}

	snapshot.Mask = slices.Clone(that.Round.Mask)
	snapshot.Guessed = slices.Clone(that.Round.Guessed)
	snapshot.Hint = that.Round.Hint
	snapshot.TimeLeft = that.Round.TimeLeft
	snapshot.WrongAttempts = that.Round.WrongAttempts
	snapshot.Round = that.CurrentIndex + 1

	// the word is only revealed once the session is over
	if that.IsOver() {
		snapshot.Word = that.Round.Word
	}

	return snapshot
}
