package main

import (
	"time"

	"github.com/younwookim/salmonrun/internal/application/replay"
	"github.com/younwookim/salmonrun/internal/application/session"
	"github.com/younwookim/salmonrun/internal/infrastructure/config"
)

// ReplayResult is the outcome of a headless replay
type ReplayResult struct {
	Outcome string
	Frames  int
	Elapsed time.Duration
	// Matches is false when the recording names a different outcome
	Matches bool
}

// RunReplay feeds every recorded frame into a fresh session seeded like
// the recording. The config must match the one the recording was made with.
func RunReplay(cfg *config.GameConfig, data *replay.ReplayData) ReplayResult {
	r := replay.NewReplayer(*data)
	s := session.New(cfg, r.Seed())
	ticker := session.NewTicker(r.TickRate())

	for {
		in, ok := r.GetInput()
		if !ok {
			break
		}
		s.Step(ticker.Next(), in)
	}

	outcome := s.Phase().String()
	return ReplayResult{
		Outcome: outcome,
		Frames:  r.CurrentFrame(),
		Elapsed: s.Elapsed(),
		Matches: r.Outcome() == "" || r.Outcome() == outcome,
	}
}
