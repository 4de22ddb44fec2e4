package scene

import (
	"github.com/ByLCY/monoglyph/binding"
	"github.com/ByLCY/monoglyph/elements"
	"github.com/ByLCY/monoglyph/layout"
	"github.com/ByLCY/monoglyph/renderer"
	"github.com/ByLCY/monoglyph/renderer/bitmap"
)

// NewScreen 创建与场景同尺寸的帧缓冲。
func (s *Scene) NewScreen(fonts bitmap.FontOptions) (*bitmap.Screen, error) {
	return bitmap.New(s.Width, s.Height, fonts)
}

// Ticks 返回需要渲染的 tick 序列：静态场景只渲染 tick 0，动画场景渲染 0..n-1。
func (s *Scene) Ticks(n int) []int {
	if n <= 1 || !s.Animated() {
		return []int{0}
	}
	ticks := make([]int, n)
	for i := range ticks {
		ticks[i] = i
	}
	return ticks
}

// Render 在 screen 上逐个 tick 绘制场景，返回每帧图像及对应的排版记录。
func (s *Scene) Render(screen *bitmap.Screen, data any, ticks []int) ([]renderer.Frame, []layout.DebugFrame) {
	p := &elements.Painter{Canvas: screen, Options: s.Options}
	frames := make([]renderer.Frame, 0, len(ticks))
	debug := make([]layout.DebugFrame, 0, len(ticks))
	for _, tick := range ticks {
		screen.Clear()
		blocks := s.Draw(p, binding.Scope{Data: data, Tick: tick})
		frames = append(frames, renderer.Frame{Tick: tick, Image: screen.Image()})
		debug = append(debug, layout.DebugFrame{Tick: tick, Blocks: blocks})
	}
	return frames, debug
}
