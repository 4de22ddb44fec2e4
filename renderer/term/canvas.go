// Package term 在终端字符网格上实现画布：每个单元格视为一个像素宽、一个像素高，
// 字形宽度取自 go-runewidth，样式映射为 tcell 属性。
package term

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/ByLCY/monoglyph/layout"
	"github.com/ByLCY/monoglyph/markup"
)

// 边框所用的方框字符。
const (
	cornerTopLeft     = '╭'
	cornerTopRight    = '╮'
	cornerBottomLeft  = '╰'
	cornerBottomRight = '╯'
	lineHorizontal    = '─'
	lineVertical      = '│'
)

// Canvas 把绘制调用写入 tcell.Screen。调用方负责 Init/Fini 与 Show。
type Canvas struct {
	screen  tcell.Screen
	base    tcell.Style
	clip    layout.Rect
	clipped bool
}

// New 基于已初始化的屏幕创建画布。
func New(screen tcell.Screen) *Canvas {
	return &Canvas{screen: screen, base: tcell.StyleDefault}
}

// GlyphWidth 返回字符占用的单元格数；组合字符为 0。
func (c *Canvas) GlyphWidth(_ markup.Font, r rune) int {
	return runewidth.RuneWidth(r)
}

// FontHeight 固定为一行。
func (c *Canvas) FontHeight(markup.Font) int { return 1 }

// Size 返回终端单元格尺寸。
func (c *Canvas) Size() (int, int) { return c.screen.Size() }

// Clear 清空屏幕内容。
func (c *Canvas) Clear() { c.screen.Clear() }

// Style 把文本样式映射为 tcell 样式：粗体加粗、等宽变暗、反色反显。
func (c *Canvas) Style(style markup.Style) tcell.Style {
	st := c.base
	switch style.Font() {
	case markup.FontBold:
		st = st.Bold(true)
	case markup.FontMono:
		st = st.Dim(true)
	}
	if style.Inverted() {
		st = st.Reverse(true)
	}
	return st
}

// DrawRun 从 (x, y) 单元格开始写入文本。
func (c *Canvas) DrawRun(x, y int, style markup.Style, text string) {
	st := c.Style(style)
	for _, r := range text {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		c.set(x, y, r, st)
		x += w
	}
}

// DrawFrame 用圆角方框字符画出矩形边缘。
func (c *Canvas) DrawFrame(r layout.Rect) {
	if r.Empty() {
		return
	}
	right, bottom := r.X+r.Width-1, r.Y+r.Height-1
	for x := r.X + 1; x < right; x++ {
		c.set(x, r.Y, lineHorizontal, c.base)
		c.set(x, bottom, lineHorizontal, c.base)
	}
	for y := r.Y + 1; y < bottom; y++ {
		c.set(r.X, y, lineVertical, c.base)
		c.set(right, y, lineVertical, c.base)
	}
	c.set(r.X, r.Y, cornerTopLeft, c.base)
	c.set(right, r.Y, cornerTopRight, c.base)
	c.set(r.X, bottom, cornerBottomLeft, c.base)
	c.set(right, bottom, cornerBottomRight, c.base)
}

// SetClip 限制后续写入的单元格范围。
func (c *Canvas) SetClip(r layout.Rect) {
	c.clip = r
	c.clipped = true
}

// ResetClip 取消裁剪。
func (c *Canvas) ResetClip() { c.clipped = false }

func (c *Canvas) set(x, y int, r rune, st tcell.Style) {
	w, h := c.screen.Size()
	if x < 0 || y < 0 || x >= w || y >= h {
		return
	}
	if c.clipped && (x < c.clip.X || y < c.clip.Y || x >= c.clip.X+c.clip.Width || y >= c.clip.Y+c.clip.Height) {
		return
	}
	c.screen.SetContent(x, y, r, nil, st)
}
