package assets

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"io/fs"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.White)
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestFrameRects(t *testing.T) {
	tests := []struct {
		name           string
		sheetW, sheetH int
		fw, fh, n      int
		expected       []image.Rectangle
	}{
		{
			name:   "strip",
			sheetW: 30, sheetH: 5, fw: 10, fh: 5, n: 3,
			expected: []image.Rectangle{
				image.Rect(0, 0, 10, 5),
				image.Rect(10, 0, 20, 5),
				image.Rect(20, 0, 30, 5),
			},
		},
		{
			name:   "wraps to next row",
			sheetW: 20, sheetH: 10, fw: 10, fh: 5, n: 3,
			expected: []image.Rectangle{
				image.Rect(0, 0, 10, 5),
				image.Rect(10, 0, 20, 5),
				image.Rect(0, 5, 10, 10),
			},
		},
		{
			name:   "drops frames past the sheet",
			sheetW: 20, sheetH: 5, fw: 10, fh: 5, n: 4,
			expected: []image.Rectangle{
				image.Rect(0, 0, 10, 5),
				image.Rect(10, 0, 20, 5),
			},
		},
		{
			name:   "frame wider than sheet",
			sheetW: 5, sheetH: 5, fw: 10, fh: 5, n: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FrameRects(tt.sheetW, tt.sheetH, tt.fw, tt.fh, tt.n)
			if tt.expected == nil {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestFrameRects_PlayerSheet(t *testing.T) {
	rects := FrameRects(267*12, 78, 267, 78, 12)
	require.Len(t, rects, 12)
	assert.Equal(t, image.Rect(267*11, 0, 267*12, 78), rects[11])
}

func TestCleanAssetPath(t *testing.T) {
	assert.Equal(t, "goal.png", cleanAssetPath("goal.png"))
	assert.Equal(t, "goal.png", cleanAssetPath("assets/goal.png"))
	assert.Equal(t, "img/goal.png", cleanAssetPath("/img/./goal.png"))
}

func TestLoader_LoadFile(t *testing.T) {
	fsys := fstest.MapFS{
		"move.ogg": {Data: []byte("ogg")},
	}
	l := NewFSLoader(fsys)

	b, err := l.LoadFile("assets/move.ogg")
	require.NoError(t, err)
	assert.Equal(t, []byte("ogg"), b)

	_, err = l.LoadFile("dead.ogg")
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestLoader_LoadImageErrors(t *testing.T) {
	fsys := fstest.MapFS{
		"broken.png": {Data: []byte("not a png")},
	}
	l := NewFSLoader(fsys)

	_, err := l.LoadImage("missing.png")
	assert.ErrorIs(t, err, fs.ErrNotExist)

	_, err = l.LoadImage("broken.png")
	assert.Error(t, err)
}

func TestLoader_LoadImage(t *testing.T) {
	l := NewFSLoader(fstest.MapFS{
		"goal.png": {Data: pngBytes(t, 4, 3)},
	})

	img, err := l.LoadImage("goal.png")
	require.NoError(t, err)
	assert.Equal(t, 4, img.Bounds().Dx())
	assert.Equal(t, 3, img.Bounds().Dy())
}

func TestFace(t *testing.T) {
	assert.NotNil(t, Face())
}
