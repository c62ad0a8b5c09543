// Package assets loads images and fonts for the scenes.
//
// Files are read from an fs.FS so the game can run from a directory on disk
// or from an embedded tree. A missing or broken image never stops the game:
// it is logged and replaced by a solid placeholder of the configured size.
package assets

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/hajimehoshi/bitmapfont/v4"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/colornames"

	"github.com/younwookim/salmonrun/internal/infrastructure/config"
	"github.com/younwookim/salmonrun/internal/infrastructure/log"
)

// Placeholder colors for images that failed to load
var (
	ColorTitle    = colornames.Steelblue
	ColorBG       = colornames.Midnightblue
	ColorPlayer   = colornames.Salmon
	ColorObstacle = colornames.Slategray
	ColorGoal     = colornames.Gold
	ColorGameOver = colornames.Darkred
	ColorClear    = colornames.Seagreen
)

// Loader reads asset files from a file system
type Loader struct {
	fsys fs.FS
}

// NewLoader creates a loader reading from a directory on disk
func NewLoader(dir string) *Loader {
	return &Loader{fsys: os.DirFS(dir)}
}

// NewFSLoader creates a loader over any file system (e.g. embed.FS)
func NewFSLoader(fsys fs.FS) *Loader {
	return &Loader{fsys: fsys}
}

// LoadFile reads an asset by its assets-relative name
func (l *Loader) LoadFile(name string) ([]byte, error) {
	return fs.ReadFile(l.fsys, cleanAssetPath(name))
}

// FS returns the underlying file system
func (l *Loader) FS() fs.FS {
	return l.fsys
}

// LoadImage decodes an image asset
func (l *Loader) LoadImage(name string) (*ebiten.Image, error) {
	b, err := l.LoadFile(name)
	if err != nil {
		return nil, err
	}
	img, _, err := image.Decode(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("decode %q: %w", name, err)
	}
	return ebiten.NewImageFromImage(img), nil
}

// ImageOr decodes an image asset, falling back to a w x h placeholder
func (l *Loader) ImageOr(name string, w, h int, fallback color.Color) *ebiten.Image {
	img, err := l.LoadImage(name)
	if err == nil {
		return img
	}
	log.Warn("asset %s: %v (using placeholder)", name, err)
	return Placeholder(w, h, fallback)
}

// Placeholder returns a solid w x h image
func Placeholder(w, h int, c color.Color) *ebiten.Image {
	img := ebiten.NewImage(max(w, 1), max(h, 1))
	img.Fill(c)
	return img
}

// Images holds every picture the scenes draw
type Images struct {
	Title        *ebiten.Image
	Background   *ebiten.Image
	PlayerFrames []*ebiten.Image
	Obstacle     *ebiten.Image
	Goal         *ebiten.Image
	GameOver     *ebiten.Image
	Clear        *ebiten.Image
}

// LoadImages loads every image named in cfg
func (l *Loader) LoadImages(cfg *config.GameConfig) *Images {
	d := cfg.Display
	a := cfg.Assets
	sprite := cfg.Player.Sprite

	sheet := l.ImageOr(a.PlayerSheet, sprite.FrameWidth*sprite.Frames, sprite.FrameHeight, ColorPlayer)

	return &Images{
		Title:        l.ImageOr(a.TitleImage, d.ScreenWidth/2, d.ScreenHeight/2, ColorTitle),
		Background:   l.ImageOr(a.Background, d.ScreenWidth, d.ScreenHeight, ColorBG),
		PlayerFrames: Frames(sheet, sprite.FrameWidth, sprite.FrameHeight, sprite.Frames),
		Obstacle:     l.ImageOr(a.Obstacle, cfg.Obstacle.Width, cfg.Obstacle.Height, ColorObstacle),
		Goal:         l.ImageOr(a.Goal, cfg.Goal.Width, cfg.Goal.Height, ColorGoal),
		GameOver:     l.ImageOr(a.GameOverImage, d.ScreenWidth, d.ScreenHeight, ColorGameOver),
		Clear:        l.ImageOr(a.ClearImage, d.ScreenWidth, d.ScreenHeight, ColorClear),
	}
}

// Frames slices a horizontal strip into n frames of fw x fh
func Frames(sheet *ebiten.Image, fw, fh, n int) []*ebiten.Image {
	rects := FrameRects(sheet.Bounds().Dx(), sheet.Bounds().Dy(), fw, fh, n)
	frames := make([]*ebiten.Image, len(rects))
	for i, r := range rects {
		frames[i] = sheet.SubImage(r).(*ebiten.Image)
	}
	return frames
}

// FrameRects returns the source rects of a horizontal strip, wrapping to
// the next row when a row is full. Frames that fall outside the sheet are
// dropped.
func FrameRects(sheetW, sheetH, fw, fh, n int) []image.Rectangle {
	if fw <= 0 || fh <= 0 {
		return nil
	}
	cols := sheetW / fw
	if cols == 0 {
		return nil
	}
	rects := make([]image.Rectangle, 0, n)
	for i := 0; i < n; i++ {
		x := (i % cols) * fw
		y := (i / cols) * fh
		if y+fh > sheetH {
			break
		}
		rects = append(rects, image.Rect(x, y, x+fw, y+fh))
	}
	return rects
}

// Face returns the UI font. The bitmap face covers Hangul.
func Face() text.Face {
	return text.NewGoXFace(bitmapfont.Face)
}

func cleanAssetPath(name string) string {
	s := filepath.ToSlash(name)
	s = strings.TrimPrefix(s, "assets/")
	return path.Clean(strings.TrimPrefix(s, "/"))
}
