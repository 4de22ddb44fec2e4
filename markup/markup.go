package markup

import "strings"

// 内联样式标记：控制字节 0x1B 后跟一个标记字节，成对出现（第一次打开，第二次关闭）。
const (
	Escape        byte = 0x1B
	BoldMarker    byte = '#'
	MonoMarker    byte = '*'
	InverseMarker byte = '!'
)

// Style 是当前生效的标记集合。
type Style uint8

const (
	Bold Style = 1 << iota
	Mono
	Inverse

	// Default 表示没有任何标记生效。
	Default Style = 0
)

// Font 是渲染时实际使用的字体；Bold 与 Mono 互斥，Inverse 只是叠加效果。
type Font uint8

const (
	FontPrimary Font = iota
	FontBold
	FontMono
)

func (f Font) String() string {
	switch f {
	case FontBold:
		return "bold"
	case FontMono:
		return "mono"
	default:
		return "primary"
	}
}

// Font 将样式集合折叠为字体。Bold 与 Mono 同时出现时，只有扫描器能判断先后，
// 扫描器会保证产出的 Style 中二者至多保留一个。
func (s Style) Font() Font {
	switch {
	case s&Bold != 0:
		return FontBold
	case s&Mono != 0:
		return FontMono
	default:
		return FontPrimary
	}
}

// Inverted 报告是否需要反色绘制。
func (s Style) Inverted() bool { return s&Inverse != 0 }

func (s Style) String() string {
	if s == Default {
		return "default"
	}
	var parts []string
	if s&Bold != 0 {
		parts = append(parts, "bold")
	}
	if s&Mono != 0 {
		parts = append(parts, "mono")
	}
	if s&Inverse != 0 {
		parts = append(parts, "inverse")
	}
	return strings.Join(parts, "+")
}

// MarshalText 让调试 JSON 输出可读的样式名。
func (s Style) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// Run 是源字符串中一段共享样式的字节区间 [Start, End)。
type Run struct {
	Style Style `json:"style"`
	Start int   `json:"start"`
	End   int   `json:"end"`
}

// Text 返回 run 覆盖的源文本。
func (r Run) Text(src string) string { return src[r.Start:r.End] }

// Len 返回字节长度。
func (r Run) Len() int { return r.End - r.Start }

func markerStyle(b byte) (Style, bool) {
	switch b {
	case BoldMarker:
		return Bold, true
	case MonoMarker:
		return Mono, true
	case InverseMarker:
		return Inverse, true
	}
	return 0, false
}
