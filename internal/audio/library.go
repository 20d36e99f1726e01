package audio

import (
	"log/slog"
	"os"
	"path"
	"path/filepath"
)

type Clip string

const (
	ClipWin        Clip = "win"
	ClipBackground Clip = "background"
	ClipWarning    Clip = "warning"
)

// Cue tells a sink which clip to play and where the client can fetch it.
type Cue struct {
	Clip Clip   `json:"clip"`
	URL  string `json:"url"`
	Loop bool   `json:"loop"`
}

// Files maps every clip to its file name inside the assets directory.
type Files struct {
	Win        string
	Background string
	Warning    string
}

// Library is the set of clips found on disk. A clip missing from it is silent.
type Library struct {
	cues map[Clip]Cue
}

// LoadLibrary - looks up each clip in dir; clips that cannot be found are logged and left out.
func LoadLibrary(logger *slog.Logger, dir, baseURL string, files Files) *Library {
	log := logger.With("component", "audio", "method", "LoadLibrary")

	library := &Library{cues: make(map[Clip]Cue)}

	for clip, name := range map[Clip]string{
		ClipWin:        files.Win,
		ClipBackground: files.Background,
		ClipWarning:    files.Warning,
	} {
		if name == "" {
			log.Warn("audio clip is not configured", "clip", clip)
			continue
		}

		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			log.Error("audio clip not found", "clip", clip, "file", name, "error", err)
			continue
		}

		library.cues[clip] = Cue{
			Clip: clip,
			URL:  path.Join(baseURL, name),
			Loop: clip == ClipBackground,
		}
	}

	return library
}

func (that *Library) Cue(clip Clip) (Cue, bool) {
	cue, ok := that.cues[clip]
	return cue, ok
}

func (that *Library) Clips() []Clip {
	clips := make([]Clip, 0, len(that.cues))
	for _, clip := range []Clip{ClipWin, ClipBackground, ClipWarning} {
		if _, ok := that.cues[clip]; ok {
			clips = append(clips, clip)
		}
	}

	return clips
}
