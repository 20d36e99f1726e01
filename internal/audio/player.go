package audio

import "sync"

// Sink performs playback on behalf of a player, e.g. by telling a client to play a clip.
type Sink interface {
	Play(cue Cue)
	Stop(clip Clip)
}

// Player plays the fixed game cues for one session. Every call is a no-op while muted.
type Player struct {
	library *Library
	sink    Sink

	mu    sync.Mutex
	muted bool
}

func NewPlayer(library *Library, sink Sink) *Player {
	return &Player{
		library: library,
		sink:    sink,
	}
}

func (that *Player) PlayWin() {
	that.play(ClipWin)
}

func (that *Player) PlayWarning() {
	that.play(ClipWarning)
}

func (that *Player) PlayBackground() {
	that.play(ClipBackground)
}

func (that *Player) StopAll() {
	for _, clip := range that.library.Clips() {
		that.sink.Stop(clip)
	}
}

func (that *Player) SetMuted(muted bool) {
	that.mu.Lock()
	that.muted = muted
	that.mu.Unlock()

	if muted {
		that.StopAll()
	}
}

func (that *Player) Muted() bool {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.muted
}

func (that *Player) play(clip Clip) {
	if that.Muted() {
		return
	}

	cue, ok := that.library.Cue(clip)
	if !ok {
		return
	}

	that.sink.Play(cue)
}
