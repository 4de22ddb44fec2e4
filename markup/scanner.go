package markup

import "strings"

// scanner 记录当前打开的标记。fonts 按打开顺序保存 Bold/Mono，最后打开的字体生效。
type scanner struct {
	open  Style
	fonts []Style
}

func (sc *scanner) toggle(m Style) {
	if sc.open&m != 0 {
		sc.open &^= m
		for i, f := range sc.fonts {
			if f == m {
				sc.fonts = append(sc.fonts[:i], sc.fonts[i+1:]...)
				break
			}
		}
		return
	}
	sc.open |= m
	if m != Inverse {
		sc.fonts = append(sc.fonts, m)
	}
}

func (sc *scanner) style() Style {
	s := sc.open & Inverse
	if n := len(sc.fonts); n > 0 {
		s |= sc.fonts[n-1]
	}
	return s
}

// Scan 将带内联标记的文本切分为样式 run，标记字节本身不属于任何 run。
//
// 文本在第一个 NUL 处结束；未闭合的标记在结尾隐式关闭；
// 转义字节后跟未知字节（或位于末尾）时按普通文本处理。
func Scan(text string) []Run {
	if i := strings.IndexByte(text, 0); i >= 0 {
		text = text[:i]
	}
	var (
		runs  []Run
		sc    scanner
		start int
	)
	flush := func(end int) {
		if end > start {
			runs = append(runs, Run{Style: sc.style(), Start: start, End: end})
		}
	}
	for i := 0; i < len(text); i++ {
		if text[i] != Escape || i+1 >= len(text) {
			continue
		}
		m, ok := markerStyle(text[i+1])
		if !ok {
			continue
		}
		flush(i)
		sc.toggle(m)
		i++
		start = i + 1
	}
	flush(len(text))
	return runs
}

// Strip 返回去掉所有标记后的文本。
func Strip(text string) string {
	runs := Scan(text)
	if len(runs) == 1 && runs[0].Start == 0 && runs[0].End == len(text) {
		return text
	}
	var b strings.Builder
	for _, r := range runs {
		b.WriteString(r.Text(text))
	}
	return b.String()
}
