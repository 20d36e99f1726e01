package websocket

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/hangman-backend/internal/audio"
	"github.com/rocketscienceinc/hangman-backend/internal/countdown"
	"github.com/rocketscienceinc/hangman-backend/internal/entity"
	"github.com/rocketscienceinc/hangman-backend/internal/usecase"
)

const readWait = 2 * time.Second

type stubQuestions struct {
	questions []entity.Question
}

func (that *stubQuestions) Load(_ context.Context) []entity.Question {
	return append([]entity.Question{}, that.questions...)
}

func (that *stubQuestions) Shuffle(questions []entity.Question) []entity.Question {
	return questions
}

type recordingPublisher struct {
	mu        sync.Mutex
	snapshots []entity.Snapshot
}

func (that *recordingPublisher) Publish(snapshot entity.Snapshot) {
	that.mu.Lock()
	defer that.mu.Unlock()
	that.snapshots = append(that.snapshots, snapshot)
}

func (that *recordingPublisher) count() int {
	that.mu.Lock()
	defer that.mu.Unlock()
	return len(that.snapshots)
}

type client struct {
	t    *testing.T
	ws   *websocket.Conn
	resp *http.Response
}

type testServer struct {
	clock     *countdown.ManualClock
	publisher *recordingPublisher
	url       string
}

func newTestServer(t *testing.T, clipsDir string, questions ...entity.Question) *testServer {
	t.Helper()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	clock := countdown.NewManualClock()
	library := audio.LoadLibrary(logger, clipsDir, "/assets/", audio.Files{
		Win:        "applause.mp3",
		Background: "background_music.mp3",
		Warning:    "warning.mp3",
	})

	games := usecase.NewGames(logger, entity.DefaultRules(), &stubQuestions{questions: questions}, library, clock, 1)
	publisher := &recordingPublisher{}

	ctx, cancel := context.WithCancel(context.Background())
	httpServer := httptest.NewServer(New(logger, games, publisher).Handler(ctx))
	t.Cleanup(func() {
		cancel()
		httpServer.Close()
	})

	return &testServer{
		clock:     clock,
		publisher: publisher,
		url:       "ws" + strings.TrimPrefix(httpServer.URL, "http") + "/ws",
	}
}

func (that *testServer) dial(t *testing.T) *client {
	t.Helper()

	return that.dialWithHeader(t, nil)
}

func (that *testServer) dialWithHeader(t *testing.T, header http.Header) *client {
	t.Helper()

	ws, resp, err := websocket.DefaultDialer.Dial(that.url, header)
	require.NoError(t, err)
	t.Cleanup(func() { _ = ws.Close() })

	return &client{t: t, ws: ws, resp: resp}
}

func (that *client) send(action string, payload any) {
	that.t.Helper()

	data, err := json.Marshal(payload)
	require.NoError(that.t, err)
	require.NoError(that.t, that.ws.WriteJSON(Message{Action: action, Payload: data}))
}

func (that *client) read() Message {
	that.t.Helper()

	require.NoError(that.t, that.ws.SetReadDeadline(time.Now().Add(readWait)))

	var msg Message
	require.NoError(that.t, that.ws.ReadJSON(&msg))

	return msg
}

// until reads messages until one with the action arrives and decodes its payload into v.
func (that *client) until(action string, v any) {
	that.t.Helper()

	for {
		msg := that.read()
		if msg.Action == action {
			require.NoError(that.t, json.Unmarshal(msg.Payload, v))
			return
		}
	}
}

func clipsDir(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	for _, name := range []string{"applause.mp3", "background_music.mp3", "warning.mp3"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("ID3"), 0o600))
	}

	return dir
}

func TestServer_Connect(t *testing.T) {
	// Given: a server with clips and one question
	server := newTestServer(t, clipsDir(t), entity.Question{Word: "KEDİ", Hint: "evcil hayvan"})

	// When: a client connects
	c := server.dial(t)

	// Then: a session cookie is set
	cookies := c.resp.Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, sessionCookie, cookies[0].Name)
	assert.NotEmpty(t, cookies[0].Value)

	// And: background music starts before the first state
	msg := c.read()
	require.Equal(t, ActionAudioPlay, msg.Action)
	var cue audio.Cue
	require.NoError(t, json.Unmarshal(msg.Payload, &cue))
	assert.Equal(t, audio.Cue{Clip: audio.ClipBackground, URL: "/assets/background_music.mp3", Loop: true}, cue)

	var snapshot entity.Snapshot
	c.until(ActionGameState, &snapshot)
	assert.Equal(t, entity.StatusActive, snapshot.Status)
	assert.Equal(t, []string{"_", "_", "_", "_"}, snapshot.Mask)
	assert.Equal(t, "evcil hayvan", snapshot.Hint)
	assert.Equal(t, 20, snapshot.TimeLeft)
	assert.NotEmpty(t, snapshot.SessionID)
	assert.NotEqual(t, cookies[0].Value, snapshot.SessionID)
	assert.Eventually(t, func() bool { return server.publisher.count() == 1 }, readWait, 10*time.Millisecond)
}

func TestServer_Guess(t *testing.T) {
	// Given: a connected client on "KEDİ"
	server := newTestServer(t, t.TempDir(), entity.Question{Word: "KEDİ", Hint: "evcil hayvan"}, entity.Question{Word: "ELMA", Hint: "meyve"})
	c := server.dial(t)

	var snapshot entity.Snapshot
	c.until(ActionGameState, &snapshot)

	// When: the client guesses K
	c.send(ActionLetterGuess, GuessPayload{Letter: "K"})

	// Then: the letter is revealed and scored
	c.until(ActionGameState, &snapshot)
	assert.Equal(t, []string{"K", "_", "_", "_"}, snapshot.Mask)
	assert.Equal(t, 10, snapshot.Score)
	assert.True(t, snapshot.Keyboard[1][4].Guessed)

	// When: the client guesses Z
	c.send(ActionLetterGuess, GuessPayload{Letter: "Z"})

	// Then: it costs ten points
	c.until(ActionGameState, &snapshot)
	assert.Equal(t, 0, snapshot.Score)
	assert.Equal(t, 1, snapshot.WrongAttempts)

	// When: the client sends a letter that has no key
	c.send(ActionLetterGuess, GuessPayload{Letter: "Q"})

	// Then: it is rejected
	var rejected ErrorPayload
	c.until(ActionError, &rejected)
	assert.Equal(t, ActionLetterGuess, rejected.Action)
	assert.Contains(t, rejected.Error, "not on the keyboard")

	// When: the client sends an unknown action
	c.send("game:dance", struct{}{})

	// Then: it is rejected too
	var unknown ErrorPayload
	c.until(ActionError, &unknown)
	assert.Equal(t, "game:dance", unknown.Action)

	// When: the client toggles the sound off and back on
	c.send(ActionAudioToggle, struct{}{})
	c.until(ActionGameState, &snapshot)
	assert.True(t, snapshot.Muted)

	c.send(ActionAudioMute, MutePayload{Muted: false})
	c.until(ActionGameState, &snapshot)
	assert.False(t, snapshot.Muted)

	// When: the client asks for the state
	c.send(ActionGameState, struct{}{})

	// Then: it gets the board as it is
	c.until(ActionGameState, &snapshot)
	assert.Equal(t, []string{"K", "_", "_", "_"}, snapshot.Mask)
	assert.Equal(t, 1, snapshot.WrongAttempts)
}

func TestServer_GameOver(t *testing.T) {
	// Given: a connected client on a one-letter word (5 seconds)
	server := newTestServer(t, clipsDir(t), entity.Question{Word: "A", Hint: "ilk harf"}, entity.Question{Word: "B", Hint: "ikinci harf"})
	c := server.dial(t)

	var snapshot entity.Snapshot
	c.until(ActionGameState, &snapshot)

	// When: the countdown runs out
	for remaining := 4; remaining >= 1; remaining-- {
		require.True(t, server.clock.Tick())

		var cue audio.Cue
		c.until(ActionAudioPlay, &cue)
		assert.Equal(t, audio.ClipWarning, cue.Clip)

		c.until(ActionGameState, &snapshot)
		assert.Equal(t, remaining, snapshot.TimeLeft)
	}
	require.True(t, server.clock.Tick())

	// Then: the client learns that the game is over, with the word revealed
	var over GameOverPayload
	c.until(ActionGameOver, &over)
	assert.Equal(t, GameOverPayload{Score: 0, Word: "A"}, over)

	// When: the client acknowledges and restarts
	c.send(ActionGameRestart, struct{}{})

	// Then: a new session is running
	c.until(ActionGameState, &snapshot)
	assert.Equal(t, entity.StatusActive, snapshot.Status)
	assert.Equal(t, 5, snapshot.TimeLeft)

	// And: solving the word moves on to the next one
	c.send(ActionLetterGuess, GuessPayload{Letter: "A"})

	var cue audio.Cue
	c.until(ActionAudioPlay, &cue)
	assert.Equal(t, audio.ClipWin, cue.Clip)

	c.until(ActionGameState, &snapshot)
	assert.Equal(t, 10, snapshot.Score)
	assert.Equal(t, 2, snapshot.Round)
	assert.Equal(t, "ikinci harf", snapshot.Hint)
}

func TestServer_SharedCookie(t *testing.T) {
	// Given: two tabs that send the same session cookie
	server := newTestServer(t, t.TempDir(), entity.Question{Word: "KEDİ", Hint: "evcil hayvan"})
	header := http.Header{}
	header.Add("Cookie", sessionCookie+"=same-browser")

	first := server.dialWithHeader(t, header)
	second := server.dialWithHeader(t, header)

	// When: both receive their first state
	var firstState, secondState entity.Snapshot
	first.until(ActionGameState, &firstState)
	second.until(ActionGameState, &secondState)

	// Then: the cookie is reused but every connection plays its own game
	assert.Empty(t, first.resp.Cookies())
	assert.NotEmpty(t, firstState.SessionID)
	assert.NotEqual(t, firstState.SessionID, secondState.SessionID)
	assert.NotEqual(t, "same-browser", firstState.SessionID)

	// And: a guess in one tab does not touch the other
	first.send(ActionLetterGuess, GuessPayload{Letter: "K"})
	first.until(ActionGameState, &firstState)
	assert.Equal(t, []string{"K", "_", "_", "_"}, firstState.Mask)

	second.send(ActionGameState, struct{}{})
	second.until(ActionGameState, &secondState)
	assert.Equal(t, []string{"_", "_", "_", "_"}, secondState.Mask)
}
