package layout

import "github.com/ByLCY/monoglyph/markup"

// Metrics 是画布/字体协作者提供的只读度量能力，排版只通过它测量像素宽高。
type Metrics interface {
	GlyphWidth(font markup.Font, r rune) int
	FontHeight(font markup.Font) int
}

// 默认参数。
const (
	// MaxLines 是多行绘制允许的最大行数。
	MaxLines = 7
	// FrameMargin 是带边框排版时文本相对边框的内缩（含边框本身 1px）。
	FrameMargin = 2
	// MinContentSize 是加边框后内容区的最小宽高，不足时整个排版跳过。
	MinContentSize = 1
	// DefaultEllipsis 是截断时追加的省略号。
	DefaultEllipsis = "..."
)

// BreakOptions 控制换行器。
type BreakOptions struct {
	Width    int  // 像素宽度预算
	MaxLines int  // <=0 表示不限制
	Wrap     bool // false 时只在显式换行处断行
}

// BoxOptions 描述一次文本框排版。
type BoxOptions struct {
	Rect        Rect
	Horizontal  Align
	Vertical    Align
	Framed      bool
	FrameMargin int // <=0 时使用 FrameMargin
	StripToDots bool
	MaxLines    int
	Wrap        bool
	Ellipsis    string // 为空时使用 DefaultEllipsis
}

// TextWidth 按字体逐字符累加像素宽度。
func TextWidth(m Metrics, font markup.Font, s string) int {
	w := 0
	for _, r := range s {
		w += m.GlyphWidth(font, r)
	}
	return w
}

// LineHeight 取该行所用字体中最高者；空行使用主字体高度。
func LineHeight(m Metrics, line Line) int {
	h := 0
	for _, r := range line.Runs {
		if fh := m.FontHeight(r.Style.Font()); fh > h {
			h = fh
		}
	}
	if line.Ellipsis != "" {
		if fh := m.FontHeight(line.EllipsisStyle.Font()); fh > h {
			h = fh
		}
	}
	if h == 0 {
		h = m.FontHeight(markup.FontPrimary)
	}
	return h
}

func ellipsisOrDefault(s string) string {
	if s == "" {
		return DefaultEllipsis
	}
	return s
}
