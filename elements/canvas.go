package elements

import (
	"github.com/ByLCY/monoglyph/layout"
	"github.com/ByLCY/monoglyph/markup"
	"github.com/ByLCY/monoglyph/scroll"
)

// Canvas 是排版引擎唯一依赖的绘制/度量协作者。引擎只读取度量并按顺序写入绘制，
// 不管理其生命周期。
type Canvas interface {
	layout.Metrics

	// Size 返回画布像素尺寸。
	Size() (width, height int)
	// DrawRun 以 (x, y) 为左上角绘制一段同样式文本；反色由后端负责（填充底色、清除字形）。
	DrawRun(x, y int, style markup.Style, text string)
	// DrawFrame 沿矩形边缘画 1px 边框。
	DrawFrame(r layout.Rect)
	// SetClip 限制后续绘制只落在矩形内，ResetClip 取消限制。
	SetClip(r layout.Rect)
	ResetClip()
}

// Options 是绘制调用共用的可调参数，零值字段回退到默认值。
type Options struct {
	MaxLines    int
	PauseTicks  int
	FrameMargin int
	Ellipsis    string
}

// DefaultOptions 返回默认参数。
func DefaultOptions() Options {
	return Options{
		MaxLines:    layout.MaxLines,
		PauseTicks:  scroll.DefaultPauseTicks,
		FrameMargin: layout.FrameMargin,
		Ellipsis:    layout.DefaultEllipsis,
	}
}

func (o Options) normalized() Options {
	def := DefaultOptions()
	if o.MaxLines <= 0 {
		o.MaxLines = def.MaxLines
	}
	if o.PauseTicks <= 0 {
		o.PauseTicks = def.PauseTicks
	}
	if o.FrameMargin <= 0 {
		o.FrameMargin = def.FrameMargin
	}
	if o.Ellipsis == "" {
		o.Ellipsis = def.Ellipsis
	}
	return o
}
