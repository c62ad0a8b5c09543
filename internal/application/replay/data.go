package replay

import "github.com/younwookim/salmonrun/internal/application/system"

// FormatVersion is written into every replay file
const FormatVersion = "2.0"

// FrameInput records input state for a single frame
type FrameInput struct {
	F  int  `json:"f"`            // Frame number
	L  bool `json:"l,omitempty"`  // Left
	R  bool `json:"r,omitempty"`  // Right
	U  bool `json:"u,omitempty"`  // Up
	D  bool `json:"d,omitempty"`  // Down
	UP bool `json:"up,omitempty"` // UpPressed
	DP bool `json:"dp,omitempty"` // DownPressed
}

// ReplayData contains all data needed to replay a game session
type ReplayData struct {
	Version   string       `json:"version"`
	ID        string       `json:"id"`
	Seed      int64        `json:"seed"`
	TickRate  int          `json:"tickRate"`
	StartTime string       `json:"startTime"`
	Outcome   string       `json:"outcome,omitempty"`
	Frames    []FrameInput `json:"frames"`
}

func toFrame(f int, in system.InputState) FrameInput {
	return FrameInput{
		F:  f,
		L:  in.Left,
		R:  in.Right,
		U:  in.Up,
		D:  in.Down,
		UP: in.UpPressed,
		DP: in.DownPressed,
	}
}

func (fi FrameInput) input() system.InputState {
	return system.InputState{
		Left:        fi.L,
		Right:       fi.R,
		Up:          fi.U,
		Down:        fi.D,
		UpPressed:   fi.UP,
		DownPressed: fi.DP,
	}
}
