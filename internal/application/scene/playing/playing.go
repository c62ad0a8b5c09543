// Package playing provides the main gameplay scene.
//
// The scene is a thin driver around session.Session: it reads one input
// snapshot per tick, steps the session, carries out the returned events
// (sound cues, scene transitions) and draws the world.
package playing

import (
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"

	"github.com/younwookim/salmonrun/internal/application/replay"
	"github.com/younwookim/salmonrun/internal/application/session"
	"github.com/younwookim/salmonrun/internal/application/state"
	"github.com/younwookim/salmonrun/internal/application/system"
	"github.com/younwookim/salmonrun/internal/ecs"
	"github.com/younwookim/salmonrun/internal/infrastructure/assets"
	"github.com/younwookim/salmonrun/internal/infrastructure/config"
	"github.com/younwookim/salmonrun/internal/infrastructure/log"
	"github.com/younwookim/salmonrun/internal/infrastructure/sound"
)

// readoutScale enlarges the 12px bitmap font for the countdown
const readoutScale = 2.5

// Colors for the hitbox overlay
var (
	colorHitbox       = colornames.Yellow
	colorPlayerHitbox = colornames.Lime
)

// InputSource yields one input snapshot per tick
type InputSource interface {
	GetInput() system.InputState
}

// Options wires the scene's collaborators
type Options struct {
	Store  *config.Store  // read at the start of every session
	Images *assets.Images // nil draws nothing but the readout
	Face   text.Face
	Cues   sound.Player
	Input  InputSource
	// Seed fixes the obstacle RNG. Zero picks a new seed per session.
	Seed int64
	// RecordPath saves every session's input to this file when set.
	// replay.AutoFilename names each session's file after its start time.
	RecordPath string
}

// Playing is the main gameplay scene
type Playing struct {
	opts     Options
	config   *config.GameConfig
	session  *session.Session
	recorder *replay.Recorder
	// recordPath is where the current session's recording goes
	recordPath string
}

// New creates a new Playing scene. The session starts in OnEnter.
func New(opts Options) *Playing {
	if opts.Cues == nil {
		opts.Cues = sound.Silent{}
	}
	if opts.Input == nil {
		opts.Input = system.NewInputSystem()
	}
	return &Playing{opts: opts}
}

// ID implements scene.Scene
func (p *Playing) ID() state.GameState {
	return state.StatePlaying
}

// OnEnter starts a fresh session: player at the start, full countdown,
// no obstacles, no goal.
func (p *Playing) OnEnter() {
	p.config = p.opts.Store.Current()

	seed := p.opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	p.session = session.New(p.config, seed)

	p.recordPath = p.opts.RecordPath
	if p.recordPath == replay.AutoFilename {
		p.recordPath = replay.GenerateFilename()
	}
	if p.recordPath != "" {
		p.recorder = replay.NewRecorder(seed, p.config.Display.Framerate)
		log.Info("recording enabled: %s (seed: %d)", p.recordPath, seed)
	}
	log.Debug("session started (seed: %d)", seed)
}

// OnExit implements scene.Scene
func (p *Playing) OnExit() {}

// Update proceeds the game state (implements scene.Scene)
func (p *Playing) Update(dt time.Duration) (state.Trigger, error) {
	in := p.opts.Input.GetInput()
	if p.recorder != nil {
		p.recorder.RecordFrame(in)
	}

	trigger := state.TriggerNone
	for _, e := range p.session.Step(dt, in) {
		switch e.Kind {
		case session.EventMoveCue:
			p.opts.Cues.Play(sound.CueMove)
		case session.EventFailCue:
			p.opts.Cues.Play(sound.CueFail)
		case session.EventStopAudio:
			p.opts.Cues.StopAll()
		case session.EventTransition:
			trigger = e.Trigger
		}
	}

	if trigger != state.TriggerNone {
		log.Info("session %s after %s (seed: %d)", p.session.Phase(), p.session.Elapsed(), p.session.Seed())
		p.saveRecording()
	}
	return trigger, nil
}

// saveRecording saves the current recording to file
func (p *Playing) saveRecording() {
	if p.recorder == nil {
		return
	}
	p.recorder.Finish(p.session.Phase().String())

	if err := p.recorder.Save(p.recordPath); err != nil {
		log.Error("failed to save recording: %v", err)
	} else {
		log.Info("recording saved: %s (%d frames)", p.recordPath, p.recorder.FrameCount())
	}
	p.recorder = nil
}

// Session exposes the running session
func (p *Playing) Session() *session.Session {
	return p.session
}

// Draw renders the game screen
func (p *Playing) Draw(screen *ebiten.Image) {
	screen.Fill(colornames.Black)

	if img := p.opts.Images; img != nil {
		p.drawBackground(screen, img.Background)

		w := p.session.World()
		if w.GoalID != 0 {
			p.drawEntity(screen, w, w.GoalID, img.Goal)
		}
		for _, id := range w.Obstacles() {
			p.drawEntity(screen, w, id, img.Obstacle)
		}
		if len(img.PlayerFrames) > 0 {
			frame := w.Sprite[w.PlayerID].Frame % len(img.PlayerFrames)
			p.drawEntity(screen, w, w.PlayerID, img.PlayerFrames[frame])
		}
	}

	p.drawReadout(screen)

	// Hitbox debug
	if ebiten.IsKeyPressed(ebiten.KeyTab) {
		p.drawDebug(screen)
	}
}

func (p *Playing) drawDebug(screen *ebiten.Image) {
	w := p.session.World()
	for id := range w.Hitbox {
		r, ok := w.Bounds(id)
		if !ok {
			continue
		}
		c := colorHitbox
		if id == w.PlayerID {
			c = colorPlayerHitbox
		}
		vector.StrokeRect(screen,
			float32(ecs.ToPixels(r.MinX)), float32(ecs.ToPixels(r.MinY)),
			float32(ecs.ToPixels(r.MaxX-r.MinX)), float32(ecs.ToPixels(r.MaxY-r.MinY)),
			1, c, false)
	}

	info := fmt.Sprintf("seed %d | %s | t %.1fs | obstacles %d | spawn %s",
		p.session.Seed(), p.session.Phase(), p.session.Elapsed().Seconds(),
		len(w.Obstacles()), p.session.SpawnInterval())
	ebitenutil.DebugPrintAt(screen, info, 10, p.config.Display.ScreenHeight-20)
}

func (p *Playing) drawBackground(screen, bg *ebiten.Image) {
	if bg == nil {
		return
	}
	b := bg.Bounds()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(screen.Bounds().Dx())/float64(b.Dx()), float64(screen.Bounds().Dy())/float64(b.Dy()))
	screen.DrawImage(bg, op)
}

func (p *Playing) drawEntity(screen *ebiten.Image, w *ecs.World, id ecs.EntityID, img *ebiten.Image) {
	if img == nil {
		return
	}
	screen.DrawImage(img, spriteOptions(w.Position[id], w.Sprite[id], img.Bounds().Dx(), img.Bounds().Dy()))
}

// spriteOptions scales an image of w x h and centers it on pos
func spriteOptions(pos ecs.Position, sprite ecs.Sprite, w, h int) *ebiten.DrawImageOptions {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-float64(w)/2, -float64(h)/2)
	op.GeoM.Scale(sprite.Scale, sprite.Scale)
	op.GeoM.Translate(ecs.ToPixels(pos.X), ecs.ToPixels(pos.Y))
	if sprite.Tinted {
		op.ColorScale.ScaleWithColor(sprite.Tint)
	}
	return op
}

func (p *Playing) drawReadout(screen *ebiten.Image) {
	if p.opts.Face == nil {
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Scale(readoutScale, readoutScale)
	op.GeoM.Translate(p.config.UI.ReadoutX, p.config.UI.ReadoutY)
	op.ColorScale.ScaleWithColor(colornames.White)
	text.Draw(screen, p.session.Readout(), p.opts.Face, op)
}
