package scene

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ByLCY/monoglyph/binding"
	"github.com/ByLCY/monoglyph/dsl"
	"github.com/ByLCY/monoglyph/elements"
	"github.com/ByLCY/monoglyph/layout"
	"github.com/ByLCY/monoglyph/markup"
	"github.com/ByLCY/monoglyph/renderer/bitmap"
)

const script = `
screen player 128x64 {
  pause: 3
  text_box 0 0 128 20 center top dots "\e#${track.title}\e#"
  scroll 0 24 40 "${track.artist} - ${track.album}"
  fit 0 40 30 "abcdefghij"
  aligned 127 63 right bottom "${tick}"
}

screen about 64x32 {
  framed 0 0 "v1"
}
`

func build(t *testing.T, src string) []*Scene {
	t.Helper()
	parsed, err := dsl.ParseString(src)
	require.NoError(t, err)
	scenes, err := Build(parsed, elements.DefaultOptions())
	require.NoError(t, err)
	return scenes
}

func TestBuildElements(t *testing.T) {
	scenes := build(t, script)
	require.Len(t, scenes, 2)

	player := scenes[0]
	assert.Equal(t, "player", player.Name)
	assert.Equal(t, 128, player.Width)
	assert.Equal(t, 3, player.Options.PauseTicks)
	assert.Equal(t, 7, player.Options.MaxLines)
	require.Len(t, player.Elements, 4)

	box := player.Elements[0]
	assert.Equal(t, KindTextBox, box.Kind)
	assert.Equal(t, layout.AlignCenter, box.Horizontal)
	assert.Equal(t, layout.AlignTop, box.Vertical)
	assert.True(t, box.Dots)
	assert.Equal(t, "\x1B#${track.title}\x1B#", box.Text)

	sc := player.Elements[1]
	assert.Equal(t, Element{Kind: KindScroll, Pos: sc.Pos, Y: 24, Width: 40, Text: "${track.artist} - ${track.album}"}, sc)
	assert.True(t, player.Animated())
	assert.False(t, scenes[1].Animated())

	about, err := Find(scenes, "about")
	require.NoError(t, err)
	assert.Equal(t, KindFramed, about.Elements[0].Kind)
	first, err := Find(scenes, "")
	require.NoError(t, err)
	assert.Same(t, player, first)
	_, err = Find(scenes, "missing")
	assert.Error(t, err)
}

func TestBuildErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want error
	}{
		{"unknown element", `screen s 10x10 { progress 0 0 "x" }`, ErrUnknownElement},
		{"unknown setting", `screen s 10x10 { speed: 3 }`, ErrUnknownElement},
		{"missing text", `screen s 10x10 { multiline 0 0 }`, ErrInvalidArgs},
		{"too few numbers", `screen s 10x10 { fit 0 0 "x" }`, ErrInvalidArgs},
		{"bad align", `screen s 10x10 { aligned 0 0 diagonal top "x" }`, ErrInvalidArgs},
		{"extra args", `screen s 10x10 { framed 0 0 "x" "y" }`, ErrInvalidArgs},
		{"unknown flag", `screen s 10x10 { scroll 0 0 10 bounce "x" }`, ErrInvalidArgs},
		{"negative setting", `screen s 10x10 { pause: -1 }`, ErrInvalidArgs},
		{"string setting", `screen s 10x10 { ellipsis: 3 }`, ErrInvalidArgs},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			parsed, err := dsl.ParseString(tc.src)
			require.NoError(t, err)
			_, err = Build(parsed, elements.DefaultOptions())
			require.Error(t, err)
			assert.True(t, errors.Is(err, tc.want), "got %v", err)
			assert.Contains(t, err.Error(), "1:", "error must carry the source position")
		})
	}

	dup, err := dsl.ParseString("screen a 1x1 {}\nscreen a 1x1 {}")
	require.NoError(t, err)
	_, err = Build(dup, elements.DefaultOptions())
	assert.Error(t, err)
	_, err = Build(&dsl.Script{}, elements.DefaultOptions())
	assert.Error(t, err)
}

// stubCanvas 使用确定的度量：每个字符 5px，高 8px。
type stubCanvas struct {
	runs []string
}

func (c *stubCanvas) GlyphWidth(markup.Font, rune) int { return 5 }
func (c *stubCanvas) FontHeight(markup.Font) int { return 8 }
func (c *stubCanvas) Size() (int, int) { return 128, 64 }
func (c *stubCanvas) DrawRun(_, _ int, _ markup.Style, text string) {
	c.runs = append(c.runs, text)
}
func (c *stubCanvas) DrawFrame(layout.Rect) {}
func (c *stubCanvas) SetClip(layout.Rect) {}
func (c *stubCanvas) ResetClip() {}

func TestDrawBindsDataAndTick(t *testing.T) {
	player := build(t, script)[0]
	data := map[string]any{"track": map[string]any{
		"title":  "Song",
		"artist": "Someone",
		"album":  "Record",
	}}
	c := &stubCanvas{}
	p := &elements.Painter{Canvas: c, Options: player.Options}

	blocks := player.Draw(p, binding.Scope{Data: data, Tick: 42})
	require.Len(t, blocks, 4)
	assert.Equal(t, "Song", blocks[0].Lines[0].Text())
	assert.Equal(t, "Someone - Record", blocks[1].Lines[0].Text())
	assert.Equal(t, "abc...", blocks[2].Lines[0].Text())
	assert.Equal(t, "42", blocks[3].Lines[0].Text())
	assert.Equal(t, 127-10, blocks[3].Lines[0].X)
	assert.Equal(t, 63-8, blocks[3].Lines[0].Y)
	assert.Contains(t, c.runs, "Song")
}

func TestTicksAndRender(t *testing.T) {
	scenes := build(t, script)
	player, about := scenes[0], scenes[1]

	assert.Equal(t, []int{0}, about.Ticks(20))
	assert.Equal(t, []int{0}, player.Ticks(1))
	assert.Equal(t, []int{0, 1, 2, 3}, player.Ticks(4))

	screen, err := player.NewScreen(bitmap.DefaultFontOptions())
	require.NoError(t, err)
	frames, debug := player.Render(screen, nil, player.Ticks(3))
	require.Len(t, frames, 3)
	require.Len(t, debug, 3)
	for i, f := range frames {
		assert.Equal(t, i, f.Tick)
		assert.Equal(t, 128, f.Image.Bounds().Dx())
		assert.Equal(t, i, debug[i].Tick)
		assert.Len(t, debug[i].Blocks, 4)
	}
	assert.True(t, strings.Contains(screen.String(), "#"), "last frame must light pixels")
}
