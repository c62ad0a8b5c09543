package replay

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/younwookim/salmonrun/internal/application/system"
)

var (
	// ErrNoFrames is returned when saving an empty recording
	ErrNoFrames = errors.New("no frames to save")
	// ErrInvalid is returned for replay files that cannot be played back
	ErrInvalid = errors.New("invalid replay")
)

// Recorder handles input recording for replay
type Recorder struct {
	data      ReplayData
	recording bool
	frame     int
}

// NewRecorder creates a new recorder with seed for deterministic replay
func NewRecorder(seed int64, tickRate int) *Recorder {
	return &Recorder{
		data: ReplayData{
			Version:   FormatVersion,
			ID:        uuid.NewString(),
			Seed:      seed,
			TickRate:  tickRate,
			StartTime: time.Now().Format(time.RFC3339),
			Frames:    make([]FrameInput, 0, 3600), // Pre-allocate for ~1 minute at 60fps
		},
		recording: true,
	}
}

// RecordFrame records a single frame's input
func (r *Recorder) RecordFrame(in system.InputState) {
	if !r.recording {
		return
	}
	r.data.Frames = append(r.data.Frames, toFrame(r.frame, in))
	r.frame++
}

// Finish stops recording and stores how the session ended
func (r *Recorder) Finish(outcome string) {
	r.data.Outcome = outcome
	r.recording = false
}

// Save writes the replay data to a file
func (r *Recorder) Save(filename string) error {
	if len(r.data.Frames) == 0 {
		return ErrNoFrames
	}
	return Write(filename, &r.data)
}

// IsRecording returns whether recording is active
func (r *Recorder) IsRecording() bool {
	return r.recording
}

// FrameCount returns the number of recorded frames
func (r *Recorder) FrameCount() int {
	return len(r.data.Frames)
}

// Data returns the replay data
func (r *Recorder) Data() ReplayData {
	return r.data
}

// AutoFilename as a record path asks for a generated name per session
const AutoFilename = "auto"

// GenerateFilename creates a filename based on current time
func GenerateFilename() string {
	return fmt.Sprintf("replay_%s.json", time.Now().Format("20060102_150405"))
}
