// Package sound decodes and plays the game's sound effects.
package sound

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path"
	"strings"
	"sync"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
	"github.com/hajimehoshi/ebiten/v2/audio/vorbis"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"

	"github.com/younwookim/salmonrun/internal/infrastructure/log"
)

// SampleRate of the shared audio context
const SampleRate = 44100

// Cue names a sound effect
type Cue int

const (
	CueMove Cue = iota
	CueFail
)

func (c Cue) String() string {
	switch c {
	case CueMove:
		return "move"
	case CueFail:
		return "fail"
	default:
		return "unknown"
	}
}

// Player plays cues. The gameplay scene only depends on this.
type Player interface {
	Play(c Cue)
	StopAll()
}

// ErrUnsupported is returned for audio files with an unknown extension
var ErrUnsupported = errors.New("unsupported audio format")

var (
	contextOnce  sync.Once
	audioContext *audio.Context
)

// Context returns the process-wide audio context
func Context() *audio.Context {
	contextOnce.Do(func() {
		audioContext = audio.CurrentContext()
		if audioContext == nil {
			audioContext = audio.NewContext(SampleRate)
		}
	})
	return audioContext
}

// Mixer holds decoded cues and the players started from them
type Mixer struct {
	ctx     *audio.Context
	pcm     map[Cue][]byte
	playing []*audio.Player
}

// NewMixer decodes each cue from the first of its candidate files that
// loads. A cue with no loadable file stays silent.
func NewMixer(ctx *audio.Context, fsys fs.FS, sources map[Cue][]string) *Mixer {
	m := &Mixer{ctx: ctx, pcm: make(map[Cue][]byte, len(sources))}
	for cue, names := range sources {
		name, pcm, err := LoadFirst(fsys, names, ctx.SampleRate())
		if err != nil {
			log.Warn("sound %s: %v (muted)", cue, err)
			continue
		}
		log.Debug("sound %s: %s (%d bytes)", cue, name, len(pcm))
		m.pcm[cue] = pcm
	}
	return m
}

// Play starts a new instance of a cue
func (m *Mixer) Play(c Cue) {
	pcm, ok := m.pcm[c]
	if !ok {
		return
	}
	m.prune()
	p := m.ctx.NewPlayerFromBytes(pcm)
	p.Play()
	m.playing = append(m.playing, p)
}

// StopAll halts every sound started by the mixer
func (m *Mixer) StopAll() {
	for _, p := range m.playing {
		p.Pause()
		_ = p.Close()
	}
	m.playing = m.playing[:0]
}

// prune drops players that have finished
func (m *Mixer) prune() {
	kept := m.playing[:0]
	for _, p := range m.playing {
		if p.IsPlaying() {
			kept = append(kept, p)
			continue
		}
		_ = p.Close()
	}
	m.playing = kept
}

// LoadFirst decodes the first candidate that exists and decodes cleanly,
// returning its name and 16-bit stereo PCM.
func LoadFirst(fsys fs.FS, names []string, sampleRate int) (string, []byte, error) {
	var errs []error
	for _, name := range names {
		b, err := fs.ReadFile(fsys, name)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		pcm, err := Decode(name, b, sampleRate)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		return name, pcm, nil
	}
	if len(errs) == 0 {
		return "", nil, fmt.Errorf("no audio files given: %w", fs.ErrNotExist)
	}
	return "", nil, errors.Join(errs...)
}

// Decode converts an encoded file to PCM at sampleRate, choosing the
// decoder by extension.
func Decode(name string, b []byte, sampleRate int) ([]byte, error) {
	r := bytes.NewReader(b)

	var stream io.Reader
	var err error
	switch strings.ToLower(path.Ext(name)) {
	case ".ogg":
		stream, err = vorbis.DecodeWithSampleRate(sampleRate, r)
	case ".mp3":
		stream, err = mp3.DecodeWithSampleRate(sampleRate, r)
	case ".wav":
		stream, err = wav.DecodeWithSampleRate(sampleRate, r)
	default:
		return nil, fmt.Errorf("%s: %w", name, ErrUnsupported)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}

	pcm, err := io.ReadAll(stream)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return pcm, nil
}

// Silent is a Player that plays nothing
type Silent struct{}

func (Silent) Play(Cue) {}
func (Silent) StopAll() {}
