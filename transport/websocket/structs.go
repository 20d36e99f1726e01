package websocket

import (
	"encoding/json"

	"github.com/rocketscienceinc/hangman-backend/internal/audio"
)

const (
	ActionGameState   = "game:state"
	ActionGameOver    = "game:over"
	ActionGameRestart = "game:restart"
	ActionLetterGuess = "letter:guess"
	ActionAudioMute   = "audio:mute"
	ActionAudioToggle = "audio:toggle"
	ActionAudioPlay   = "audio:play"
	ActionAudioStop   = "audio:stop"
	ActionError       = "error"
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type GuessPayload struct {
	Letter string `json:"letter"`
}

type MutePayload struct {
	Muted bool `json:"muted"`
}

type GameOverPayload struct {
	Score int    `json:"score"`
	Word  string `json:"word"`
}

type StopPayload struct {
	Clip audio.Clip `json:"clip"`
}

type ErrorPayload struct {
	Action string `json:"action"`
	Error  string `json:"error"`
}
