// Package elements 提供面向单色屏幕的文本绘制操作：多行文本、对齐/带框多行、
// 文本框、字符串宽度适配以及可滚动单行。每个操作在一帧内同步完成，
// 结果直接写入 Canvas，并返回本次的排版结果供调试。
package elements

import (
	"github.com/ByLCY/monoglyph/layout"
	"github.com/ByLCY/monoglyph/logger"
	"github.com/ByLCY/monoglyph/markup"
	"github.com/ByLCY/monoglyph/scroll"
)

var log = logger.Named("elements")

// Painter 把排版结果绘制到 Canvas。零值 Options 使用默认参数。
type Painter struct {
	Canvas  Canvas
	Options Options
}

// New 创建使用默认参数的 Painter。
func New(c Canvas) *Painter {
	return &Painter{Canvas: c, Options: DefaultOptions()}
}

// Multiline 从左上角 (x, y) 开始绘制多行文本，只在 '\n' 处换行，超出画布底部的行被丢弃。
func (p *Painter) Multiline(x, y int, text string) *layout.Block {
	opts := p.Options.normalized()
	cw, ch := p.Canvas.Size()
	rect := layout.Rect{X: x, Y: y, Width: cw - x, Height: ch - y}
	if rect.Empty() {
		log.WithField("x", x).WithField("y", y).Debug("multiline outside canvas, skipped")
		return &layout.Block{}
	}
	lines, truncated := layout.Break(text, markup.Scan(text), p.Canvas, layout.BreakOptions{
		MaxLines: opts.MaxLines,
	})
	block := layout.Place(text, lines, truncated, p.Canvas, layout.PlaceOptions{Rect: rect})
	p.drawBlock(block)
	return block
}

// MultilineAligned 绘制多行文本，(x, y) 是锚点：水平方向 Left/Center/Right 分别对应
// 文本块的左边缘/中线/右边缘，垂直方向同理。各行在块宽度内独立对齐。
func (p *Painter) MultilineAligned(x, y int, horizontal, vertical layout.Align, text string) *layout.Block {
	opts := p.Options.normalized()
	lines, truncated := layout.Break(text, markup.Scan(text), p.Canvas, layout.BreakOptions{
		MaxLines: opts.MaxLines,
	})
	w, h := blockSize(p.Canvas, lines)
	if w == 0 {
		return &layout.Block{}
	}
	rect := layout.Rect{X: anchor(x, w, horizontal), Y: anchor(y, h, vertical), Width: w, Height: h}
	block := layout.Place(text, lines, truncated, p.Canvas, layout.PlaceOptions{
		Rect:       rect,
		Horizontal: horizontal,
	})
	p.drawBlock(block)
	return block
}

// MultilineFramed 绘制带边框的多行文本，边框左上角位于 (x, y)，尺寸由文本大小加边距决定。
func (p *Painter) MultilineFramed(x, y int, text string) *layout.Block {
	opts := p.Options.normalized()
	lines, _ := layout.Break(text, markup.Scan(text), p.Canvas, layout.BreakOptions{
		MaxLines: opts.MaxLines,
	})
	w, h := blockSize(p.Canvas, lines)
	if w == 0 {
		return &layout.Block{}
	}
	block := layout.LayoutBox(text, p.Canvas, layout.BoxOptions{
		Rect:        layout.Rect{X: x, Y: y, Width: w + 2*opts.FrameMargin, Height: h + 2*opts.FrameMargin},
		Framed:      true,
		FrameMargin: opts.FrameMargin,
		MaxLines:    opts.MaxLines,
	})
	p.drawBlock(block)
	return block
}

// TextBox 在矩形内自动换行并按对齐方式放置文本。stripToDots 为 true 时，
// 放不下的内容以省略号结尾而不是被直接截掉。
func (p *Painter) TextBox(x, y, width, height int, horizontal, vertical layout.Align, text string, stripToDots bool) *layout.Block {
	opts := p.Options.normalized()
	rect := layout.Rect{X: x, Y: y, Width: width, Height: height}
	if rect.Empty() {
		log.WithField("rect", rect).Debug("text box without area, skipped")
		return &layout.Block{}
	}
	block := layout.LayoutBox(text, p.Canvas, layout.BoxOptions{
		Rect:        rect,
		Horizontal:  horizontal,
		Vertical:    vertical,
		StripToDots: stripToDots,
		MaxLines:    opts.MaxLines,
		Wrap:        true,
		Ellipsis:    opts.Ellipsis,
	})
	p.drawBlock(block)
	return block
}

// FitWidth 用主字体度量，把 s 截断到 width 像素以内并追加省略号。
func (p *Painter) FitWidth(s string, width int) string {
	return p.FitWidthFont(markup.FontPrimary, s, width)
}

// FitWidthFont 与 FitWidth 相同，但使用指定字体度量。
func (p *Painter) FitWidthFont(font markup.Font, s string, width int) string {
	return layout.FitString(p.Canvas, font, s, width, p.Options.normalized().Ellipsis)
}

// ScrollableTextLine 在 (x, y) 起、宽 width 的视口内绘制单行文本。
// tick>0 时内容超宽则按 tick 水平滚动；tick<=0 时静态绘制，ellipsis 为 true 则以省略号截断。
func (p *Painter) ScrollableTextLine(x, y, width int, text string, tick int, ellipsis bool) *layout.Block {
	return p.ScrollableTextLineCentered(x, y, width, text, tick, ellipsis, false)
}

// ScrollableTextLineCentered 与 ScrollableTextLine 相同；centered 为 true 时放得下的文本在视口内居中。
func (p *Painter) ScrollableTextLineCentered(x, y, width int, text string, tick int, ellipsis, centered bool) *layout.Block {
	if width <= 0 {
		log.WithField("width", width).Debug("scrollable line without width, skipped")
		return &layout.Block{}
	}
	opts := p.Options.normalized()
	lines, _ := layout.Break(text, markup.Scan(text), p.Canvas, layout.BreakOptions{MaxLines: 1})
	line := lines[0]
	height := layout.LineHeight(p.Canvas, line)
	viewport := layout.Rect{X: x, Y: y, Width: width, Height: height}
	block := &layout.Block{Content: viewport}

	frame := scroll.Controller{PauseTicks: opts.PauseTicks}.Compute(line.Width, width, tick, ellipsis)
	switch {
	case line.Width <= width:
		lx := x
		if centered {
			lx += (width - line.Width + 1) / 2
		}
		block.Lines = append(block.Lines, layout.PlaceLine(p.Canvas, text, line, lx, y, height))
		p.drawBlock(block)
	case frame.Ellipsis:
		fitted := layout.FitLine(p.Canvas, text, line, width, opts.Ellipsis, false)
		block.Truncated = true
		block.Lines = append(block.Lines, layout.PlaceLine(p.Canvas, text, fitted, x, y, height))
		p.drawBlock(block)
	default:
		block.Lines = append(block.Lines, layout.PlaceLine(p.Canvas, text, line, x-frame.Offset, y, height))
		p.Canvas.SetClip(viewport)
		p.drawBlock(block)
		p.Canvas.ResetClip()
	}
	return block
}

func (p *Painter) drawBlock(block *layout.Block) {
	if block.Frame != nil {
		p.Canvas.DrawFrame(*block.Frame)
	}
	for _, ln := range block.Lines {
		for _, run := range ln.Runs {
			if run.Text == "" {
				continue
			}
			p.Canvas.DrawRun(run.X, run.Y, run.Style, run.Text)
		}
	}
}

// blockSize 返回最宽行的宽度与各行高度之和。
func blockSize(m layout.Metrics, lines []layout.Line) (width, height int) {
	for _, ln := range lines {
		if ln.Width > width {
			width = ln.Width
		}
		height += layout.LineHeight(m, ln)
	}
	return width, height
}

func anchor(pos, size int, a layout.Align) int {
	switch a {
	case layout.AlignCenter:
		return pos - size/2
	case layout.AlignEnd:
		return pos - size
	default:
		return pos
	}
}
