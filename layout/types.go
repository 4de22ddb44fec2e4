package layout

// 该文件定义排版结果类型，供排版计算、绘制与调试 JSON 共用。

import (
	"strings"

	"github.com/ByLCY/monoglyph/markup"
)

// Align 描述一个方向上的对齐方式；水平与垂直共用同一组取值。
type Align int

const (
	AlignStart Align = iota
	AlignCenter
	AlignEnd
)

// 水平/垂直方向的别名，便于调用处表达意图。
const (
	AlignLeft   = AlignStart
	AlignTop    = AlignStart
	AlignRight  = AlignEnd
	AlignBottom = AlignEnd
)

func (a Align) String() string {
	switch a {
	case AlignCenter:
		return "center"
	case AlignEnd:
		return "end"
	default:
		return "start"
	}
}

// MarshalText 让调试 JSON 输出可读的对齐名称。
func (a Align) MarshalText() ([]byte, error) { return []byte(a.String()), nil }

// ParseAlign 解析 left/right/top/bottom/center 等写法，未知值返回 false。
func ParseAlign(v string) (Align, bool) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "left", "top", "start":
		return AlignStart, true
	case "center", "middle":
		return AlignCenter, true
	case "right", "bottom", "end":
		return AlignEnd, true
	default:
		return AlignStart, false
	}
}

// offset 返回长度为 size 的内容在 container 中的起始偏移；居中时奇数像素分给前侧（上/左）。
func (a Align) offset(container, size int) int {
	free := container - size
	if free < 0 {
		free = 0
	}
	switch a {
	case AlignCenter:
		return (free + 1) / 2
	case AlignEnd:
		return free
	default:
		return 0
	}
}

// Rect 是像素坐标下的矩形，原点在左上角。
type Rect struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Empty 报告矩形是否没有可绘制面积。
func (r Rect) Empty() bool { return r.Width <= 0 || r.Height <= 0 }

// Inset 向内收缩 d 像素。
func (r Rect) Inset(d int) Rect {
	return Rect{X: r.X + d, Y: r.Y + d, Width: r.Width - 2*d, Height: r.Height - 2*d}
}

// Line 是换行器产出的一行：若干样式 run（源字符串中的字节区间）及其像素宽度。
// Ellipsis 非空时表示该行被截断，并在末尾以 EllipsisStyle 追加省略号。
type Line struct {
	Runs          []markup.Run `json:"runs"`
	Width         int          `json:"width"`
	Ellipsis      string       `json:"ellipsis,omitempty"`
	EllipsisStyle markup.Style `json:"ellipsisStyle,omitempty"`
}

// Empty 报告该行是否没有任何可见内容。
func (l Line) Empty() bool { return len(l.Runs) == 0 && l.Ellipsis == "" }

// Text 拼接该行的纯文本（含省略号）。
func (l Line) Text(src string) string {
	var b strings.Builder
	for _, r := range l.Runs {
		b.WriteString(r.Text(src))
	}
	b.WriteString(l.Ellipsis)
	return b.String()
}

// Block 是一次多行绘制调用的完整排版结果，每次绘制重新生成，不做缓存。
type Block struct {
	Frame     *Rect        `json:"frame,omitempty"`
	Content   Rect         `json:"content"`
	Lines     []PlacedLine `json:"lines"`
	Truncated bool         `json:"truncated"`
}

// Empty 报告该 block 是否不产生任何绘制。
func (b *Block) Empty() bool { return b == nil || (b.Frame == nil && len(b.Lines) == 0) }

// PlacedLine 是已经确定坐标的一行，Y 为行顶部。
type PlacedLine struct {
	X      int         `json:"x"`
	Y      int         `json:"y"`
	Width  int         `json:"width"`
	Height int         `json:"height"`
	Runs   []PlacedRun `json:"runs"`
}

// Text 拼接该行所有 run 的文本。
func (l PlacedLine) Text() string {
	var b strings.Builder
	for _, r := range l.Runs {
		b.WriteString(r.Text)
	}
	return b.String()
}

// PlacedRun 是可直接交给画布绘制的一段文本，(X, Y) 为左上角。
type PlacedRun struct {
	X     int          `json:"x"`
	Y     int          `json:"y"`
	Width int          `json:"width"`
	Style markup.Style `json:"style"`
	Text  string       `json:"text"`
}
