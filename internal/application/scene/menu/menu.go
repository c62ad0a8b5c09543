// Package menu provides the static one-button scenes: title, game over and
// clear.
package menu

import (
	"image/color"
	"time"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/colornames"

	"github.com/younwookim/salmonrun/internal/application/state"
	"github.com/younwookim/salmonrun/internal/infrastructure/config"
	"github.com/younwookim/salmonrun/internal/infrastructure/log"
)

// Page describes one menu scene
type Page struct {
	ID      state.GameState
	Trigger state.Trigger // sent when the button is clicked
	Label   string
	Image   *ebiten.Image
	// Centered draws Image at its own size around the screen center;
	// otherwise it is stretched over the whole screen.
	Centered bool
}

// Scene is a background image with one button
type Scene struct {
	page    Page
	screenW int
	screenH int
	ui      *ebitenui.UI
	pending state.Trigger
}

// New creates a menu scene with its button laid out from cfg.UI
func New(cfg *config.GameConfig, page Page, face text.Face) *Scene {
	s := newScene(cfg, page)
	s.ui = s.buildUI(cfg.UI, face)
	return s
}

// NewTitle creates the title scene
func NewTitle(cfg *config.GameConfig, img *ebiten.Image, face text.Face) *Scene {
	return New(cfg, Page{
		ID:       state.StateTitle,
		Trigger:  state.TriggerStart,
		Label:    cfg.UI.Labels.Start,
		Image:    img,
		Centered: true,
	}, face)
}

// NewGameOver creates the game over scene
func NewGameOver(cfg *config.GameConfig, img *ebiten.Image, face text.Face) *Scene {
	return New(cfg, Page{
		ID:      state.StateGameOver,
		Trigger: state.TriggerRetry,
		Label:   cfg.UI.Labels.Retry,
		Image:   img,
	}, face)
}

// NewClear creates the clear scene
func NewClear(cfg *config.GameConfig, img *ebiten.Image, face text.Face) *Scene {
	return New(cfg, Page{
		ID:      state.StateClear,
		Trigger: state.TriggerContinue,
		Label:   cfg.UI.Labels.Continue,
		Image:   img,
	}, face)
}

func newScene(cfg *config.GameConfig, page Page) *Scene {
	return &Scene{
		page:    page,
		screenW: cfg.Display.ScreenWidth,
		screenH: cfg.Display.ScreenHeight,
	}
}

func (s *Scene) buildUI(ui config.UIConfig, face text.Face) *ebitenui.UI {
	idle, err := config.ParseHexColor(ui.ButtonColor)
	if err != nil {
		log.Warn("button color: %v", err)
		idle = colornames.Skyblue
	}
	hover := shade(idle, 0.9)
	pressed := shade(idle, 0.75)

	button := widget.NewButton(
		widget.ButtonOpts.Image(&widget.ButtonImage{
			Idle:    imageui.NewNineSliceColor(idle),
			Hover:   imageui.NewNineSliceColor(hover),
			Pressed: imageui.NewNineSliceColor(pressed),
		}),
		widget.ButtonOpts.Text(s.page.Label, &face, &widget.ButtonTextColor{Idle: colornames.Black}),
		widget.ButtonOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(ui.ButtonWidth, ui.ButtonHeight),
			widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionStart}),
		),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			s.press()
		}),
	)

	// The row's padding puts the button's top-left corner so that its
	// center lands on (ButtonX, ButtonY).
	root := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Padding(&widget.Insets{
				Left: int(ui.ButtonX) - ui.ButtonWidth/2,
				Top:  int(ui.ButtonY) - ui.ButtonHeight/2,
			}),
		)),
	)
	root.AddChild(button)

	return &ebitenui.UI{Container: root}
}

func shade(c color.RGBA, f float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) * f),
		G: uint8(float64(c.G) * f),
		B: uint8(float64(c.B) * f),
		A: c.A,
	}
}

// press queues the page's trigger for the next Update
func (s *Scene) press() {
	s.pending = s.page.Trigger
}

// ID implements scene.Scene
func (s *Scene) ID() state.GameState {
	return s.page.ID
}

// Update implements scene.Scene
func (s *Scene) Update(_ time.Duration) (state.Trigger, error) {
	if s.ui != nil {
		s.ui.Update()
	}
	t := s.pending
	s.pending = state.TriggerNone
	return t, nil
}

// Draw implements scene.Scene
func (s *Scene) Draw(screen *ebiten.Image) {
	screen.Fill(colornames.Black)
	if img := s.page.Image; img != nil {
		screen.DrawImage(img, s.imageOptions(img.Bounds().Dx(), img.Bounds().Dy()))
	}
	if s.ui != nil {
		s.ui.Draw(screen)
	}
}

func (s *Scene) imageOptions(w, h int) *ebiten.DrawImageOptions {
	op := &ebiten.DrawImageOptions{}
	if w == 0 || h == 0 {
		return op
	}
	if s.page.Centered {
		op.GeoM.Translate(float64(s.screenW-w)/2, float64(s.screenH-h)/2)
		return op
	}
	op.GeoM.Scale(float64(s.screenW)/float64(w), float64(s.screenH)/float64(h))
	return op
}

// OnEnter implements scene.Scene
func (s *Scene) OnEnter() {
	s.pending = state.TriggerNone
}

// OnExit implements scene.Scene
func (s *Scene) OnExit() {}
