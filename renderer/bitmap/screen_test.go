package bitmap

import (
	"image"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ByLCY/monoglyph/elements"
	"github.com/ByLCY/monoglyph/layout"
	"github.com/ByLCY/monoglyph/markup"
)

func newScreen(t *testing.T) *Screen {
	t.Helper()
	s, err := New(DefaultWidth, DefaultHeight, DefaultFontOptions())
	require.NoError(t, err)
	return s
}

func litIn(s *Screen, r image.Rectangle) int {
	n := 0
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if s.Pixel(x, y) {
				n++
			}
		}
	}
	return n
}

func TestNewRejectsInvalidSize(t *testing.T) {
	_, err := New(0, 64, DefaultFontOptions())
	assert.Error(t, err)
}

func TestMetrics(t *testing.T) {
	s := newScreen(t)
	for _, f := range []markup.Font{markup.FontPrimary, markup.FontBold, markup.FontMono} {
		assert.Positive(t, s.GlyphWidth(f, 'a'), f.String())
		assert.Positive(t, s.FontHeight(f), f.String())
	}
	assert.Equal(t, s.GlyphWidth(markup.FontMono, 'i'), s.GlyphWidth(markup.FontMono, 'W'))
	assert.Less(t, s.GlyphWidth(markup.FontPrimary, 'i'), s.GlyphWidth(markup.FontPrimary, 'W'))
}

func TestDrawRunLightsPixels(t *testing.T) {
	s := newScreen(t)
	s.DrawRun(10, 10, markup.Default, "Hi")

	w := layout.TextWidth(s, markup.FontPrimary, "Hi")
	h := s.FontHeight(markup.FontPrimary)
	inside := litIn(s, image.Rect(9, 10, 11+w, 10+h))
	assert.Positive(t, inside)
	assert.Equal(t, inside, litIn(s, image.Rect(0, 0, DefaultWidth, DefaultHeight)))
}

func TestDrawRunInverse(t *testing.T) {
	s := newScreen(t)
	s.DrawRun(0, 0, markup.Inverse, "Hi")

	w := layout.TextWidth(s, markup.FontPrimary, "Hi")
	h := s.FontHeight(markup.FontPrimary)
	box := image.Rect(0, 0, w, h)
	lit := litIn(s, box)
	assert.Greater(t, lit, box.Dx()*box.Dy()/2)
	assert.Less(t, lit, box.Dx()*box.Dy(), "glyphs must be cleared out of the box")
}

func TestClipLimitsDrawing(t *testing.T) {
	s := newScreen(t)
	clip := layout.Rect{X: 5, Y: 0, Width: 10, Height: 20}
	s.SetClip(clip)
	s.DrawRun(0, 2, markup.Default, "WWWWWWWW")
	s.ResetClip()

	all := litIn(s, image.Rect(0, 0, DefaultWidth, DefaultHeight))
	assert.Positive(t, all)
	assert.Equal(t, all, litIn(s, image.Rect(5, 0, 15, 20)))

	s.Set(0, 0, true)
	assert.True(t, s.Pixel(0, 0))
}

func TestDrawFrame(t *testing.T) {
	s := newScreen(t)
	s.DrawFrame(layout.Rect{X: 2, Y: 3, Width: 6, Height: 4})

	assert.False(t, s.Pixel(2, 3), "corner")
	assert.True(t, s.Pixel(3, 3))
	assert.True(t, s.Pixel(2, 4))
	assert.True(t, s.Pixel(7, 5))
	assert.True(t, s.Pixel(4, 6))
	assert.False(t, s.Pixel(4, 4), "interior")
	assert.Equal(t, 2*4+2*2, litIn(s, image.Rect(0, 0, 20, 20)))
}

func TestImageAndString(t *testing.T) {
	s, err := New(3, 2, DefaultFontOptions())
	require.NoError(t, err)
	s.Set(1, 0, true)

	img := s.Image()
	assert.Equal(t, uint8(0), img.GrayAt(1, 0).Y)
	assert.Equal(t, uint8(0xFF), img.GrayAt(0, 0).Y)
	assert.Equal(t, ".#.\n...\n", s.String())

	s.Clear()
	assert.False(t, s.Pixel(1, 0))
}

func TestElementsOnScreen(t *testing.T) {
	s := newScreen(t)
	p := elements.New(s)
	block := p.TextBox(0, 0, 60, 2*s.FontHeight(markup.FontPrimary), layout.AlignLeft, layout.AlignTop,
		strings.Repeat("word ", 20), true)

	require.Len(t, block.Lines, 2)
	assert.True(t, strings.HasSuffix(block.Lines[1].Text(), "..."))
	for _, ln := range block.Lines {
		assert.LessOrEqual(t, ln.Width, 60)
	}
	assert.Positive(t, litIn(s, image.Rect(0, 0, 64, DefaultHeight)))
}
