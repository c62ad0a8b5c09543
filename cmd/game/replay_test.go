package main

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/salmonrun/internal/application/replay"
	"github.com/younwookim/salmonrun/internal/application/session"
	"github.com/younwookim/salmonrun/internal/application/system"
	"github.com/younwookim/salmonrun/internal/infrastructure/config"
)

// scripted returns a deterministic input pattern for frame i
func scripted(i int) system.InputState {
	phase := (i / 40) % 6
	in := system.InputState{
		Up:    phase == 0 || phase == 3,
		Down:  phase == 1 || phase == 4,
		Right: phase == 2,
		Left:  phase == 5,
	}
	in.UpPressed = in.Up && i%40 == 0
	in.DownPressed = in.Down && i%40 == 0
	return in
}

// record plays a live session for frames ticks while recording it
func record(cfg *config.GameConfig, seed int64, frames int) (*replay.Recorder, *session.Session) {
	rec := replay.NewRecorder(seed, cfg.Display.Framerate)
	s := session.New(cfg, seed)
	ticker := session.NewTicker(cfg.Display.Framerate)
	for i := 0; i < frames; i++ {
		in := scripted(i)
		rec.RecordFrame(in)
		s.Step(ticker.Next(), in)
	}
	rec.Finish(s.Phase().String())
	return rec, s
}

func TestRunReplay_ReproducesLiveSession(t *testing.T) {
	cfg := config.Default()

	for _, seed := range []int64{1, 2, 3, 42} {
		rec, live := record(cfg, seed, 60*35)
		data := rec.Data()

		result := RunReplay(cfg, &data)

		assert.True(t, result.Matches, "seed %d", seed)
		assert.Equal(t, live.Phase().String(), result.Outcome, "seed %d", seed)
		assert.Equal(t, 60*35, result.Frames)
		assert.Equal(t, live.Elapsed(), result.Elapsed)
	}
}

func TestRunReplay_DetectsDivergence(t *testing.T) {
	cfg := config.Default()
	rec, live := record(cfg, 5, 60*5)
	data := rec.Data()
	if live.Phase() == session.PhaseRunning {
		data.Outcome = session.PhaseWon.String()
	} else {
		data.Outcome = session.PhaseRunning.String()
	}

	result := RunReplay(cfg, &data)
	assert.False(t, result.Matches)
}

func TestRunReplay_IdleRecording(t *testing.T) {
	cfg := config.Default()
	data := replay.CreateTestReplayData(60)

	result := RunReplay(cfg, &data)

	assert.True(t, result.Matches)
	assert.Equal(t, session.PhaseRunning.String(), result.Outcome)
	assert.Equal(t, 60, result.Frames)
	assert.Equal(t, time.Second, result.Elapsed)
}

func TestRunReplay_FromFile(t *testing.T) {
	cfg := config.Default()
	rec, live := record(cfg, 9, 60*10)

	path := filepath.Join(t.TempDir(), "run.json.zst")
	require.NoError(t, rec.Save(path))
	data, err := replay.LoadReplay(path)
	require.NoError(t, err)

	result := RunReplay(cfg, data)
	assert.True(t, result.Matches)
	assert.Equal(t, live.Phase().String(), result.Outcome)
}

func TestConfigLoader_Embedded(t *testing.T) {
	loader, err := configLoader("")
	require.NoError(t, err)

	cfg, err := loader.LoadGame()
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}
