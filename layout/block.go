package layout

import "github.com/ByLCY/monoglyph/markup"

// PlaceOptions 描述如何把已换行的文本放入矩形。
type PlaceOptions struct {
	Rect        Rect
	Horizontal  Align
	Vertical    Align
	StripToDots bool
	Ellipsis    string
}

// LayoutBox 完成一次文本框排版：可选边框、扫描标记、换行、定位。
// 尺寸非法或加边框后内容区不足 MinContentSize 时返回空 block，不报错。
func LayoutBox(text string, m Metrics, opts BoxOptions) *Block {
	block := &Block{}
	r := opts.Rect
	if r.Empty() {
		return block
	}
	if opts.Framed {
		margin := opts.FrameMargin
		if margin <= 0 {
			margin = FrameMargin
		}
		inner := r.Inset(margin)
		if inner.Width < MinContentSize || inner.Height < MinContentSize {
			return block
		}
		frame := r
		block.Frame = &frame
		r = inner
	}

	lines, truncated := Break(text, markup.Scan(text), m, BreakOptions{
		Width:    r.Width,
		MaxLines: opts.MaxLines,
		Wrap:     opts.Wrap,
	})
	placed := Place(text, lines, truncated, m, PlaceOptions{
		Rect:        r,
		Horizontal:  opts.Horizontal,
		Vertical:    opts.Vertical,
		StripToDots: opts.StripToDots,
		Ellipsis:    opts.Ellipsis,
	})
	placed.Frame = block.Frame
	return placed
}

// Place 在矩形内定位各行：放不下的行被丢弃（首行始终保留），
// StripToDots 时对超宽行以及被截断 block 的最后一行做省略号处理，
// 然后按垂直对齐放置整体、按水平对齐逐行放置。
func Place(src string, lines []Line, truncated bool, m Metrics, opts PlaceOptions) *Block {
	r := opts.Rect
	block := &Block{Content: r, Truncated: truncated}
	if len(lines) == 0 {
		return block
	}

	heights := make([]int, 0, len(lines))
	total := 0
	for i, ln := range lines {
		h := LineHeight(m, ln)
		if i > 0 && total+h > r.Height {
			block.Truncated = true
			break
		}
		heights = append(heights, h)
		total += h
	}
	kept := make([]Line, len(heights))
	copy(kept, lines[:len(heights)])

	if opts.StripToDots {
		for i := range kept {
			last := i == len(kept)-1
			if last && block.Truncated {
				kept[i] = FitLine(m, src, kept[i], r.Width, opts.Ellipsis, true)
			} else if kept[i].Width > r.Width {
				kept[i] = FitLine(m, src, kept[i], r.Width, opts.Ellipsis, false)
			}
		}
	}

	y := r.Y + opts.Vertical.offset(r.Height, total)
	block.Lines = make([]PlacedLine, 0, len(kept))
	for i, ln := range kept {
		x := r.X + opts.Horizontal.offset(r.Width, ln.Width)
		pl := PlaceLine(m, src, ln, x, y, heights[i])
		block.Lines = append(block.Lines, pl)
		y += heights[i]
	}
	return block
}

// PlaceLine 把一行转换为可绘制的 run 序列，(x, y) 为行的左上角。
// 同一行内不同字体的 run 底部对齐；height<=0 时按该行字体计算。
func PlaceLine(m Metrics, src string, line Line, x, y, height int) PlacedLine {
	if height <= 0 {
		height = LineHeight(m, line)
	}
	pl := PlacedLine{X: x, Y: y, Width: line.Width, Height: height}
	cx := x
	emit := func(style markup.Style, text string) {
		font := style.Font()
		w := TextWidth(m, font, text)
		pl.Runs = append(pl.Runs, PlacedRun{
			X:     cx,
			Y:     y + height - m.FontHeight(font),
			Width: w,
			Style: style,
			Text:  text,
		})
		cx += w
	}
	for _, r := range line.Runs {
		emit(r.Style, r.Text(src))
	}
	if line.Ellipsis != "" {
		emit(line.EllipsisStyle, line.Ellipsis)
	}
	return pl
}
