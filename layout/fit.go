package layout

import (
	"sort"

	"github.com/rivo/uniseg"

	"github.com/ByLCY/monoglyph/markup"
)

// cluster 是一个字素簇（用户感知的一个字符）的结束位置及截至该簇的累计宽度。
type cluster struct {
	run   int // 所属 run 下标（仅 FitLine 使用）
	end   int // 源字符串中的结束字节偏移
	total int // 从行首到该簇末尾的累计像素宽度
}

func appendClusters(out []cluster, m Metrics, font markup.Font, s string, base, run, total int) ([]cluster, int) {
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		_, to := g.Positions()
		for _, r := range g.Runes() {
			total += m.GlyphWidth(font, r)
		}
		out = append(out, cluster{run: run, end: base + to, total: total})
	}
	return out, total
}

// FitString 将字符串截断到 width 像素以内：能放下则原样返回，
// 否则在字素簇边界上丢弃尾部字符并追加省略号。
// 连省略号都放不下时，返回空字符串。
func FitString(m Metrics, font markup.Font, s string, width int, ellipsis string) string {
	if TextWidth(m, font, s) <= width {
		return s
	}
	ellipsis = ellipsisOrDefault(ellipsis)
	budget := width - TextWidth(m, font, ellipsis)
	if budget < 0 {
		return ""
	}
	clusters, _ := appendClusters(nil, m, font, s, 0, 0, 0)
	n := sort.Search(len(clusters), func(i int) bool { return clusters[i].total > budget })
	if n == 0 {
		return ellipsis
	}
	return s[:clusters[n-1].end] + ellipsis
}

// FitLine 对样式行做与 FitString 相同的截断。force 为 true 时即便整行放得下也追加省略号
// （用于表示后面还有被丢弃的行）。省略号沿用截断处 run 的样式；
// 没有字符能保留时使用首个 run 的样式，放不下再退回默认字体。
func FitLine(m Metrics, src string, line Line, width int, ellipsis string, force bool) Line {
	if !force && line.Width <= width {
		return line
	}
	ellipsis = ellipsisOrDefault(ellipsis)

	var (
		clusters []cluster
		total    int
	)
	for i, r := range line.Runs {
		clusters, total = appendClusters(clusters, m, r.Style.Font(), r.Text(src), r.Start, i, total)
	}

	// 从行尾向前寻找第一个能与省略号一起放下的位置。
	for i := len(clusters) - 1; i >= 0; i-- {
		c := clusters[i]
		style := line.Runs[c.run].Style
		ew := TextWidth(m, style.Font(), ellipsis)
		if c.total+ew > width {
			continue
		}
		runs := make([]markup.Run, c.run+1)
		copy(runs, line.Runs[:c.run+1])
		runs[c.run].End = c.end
		return Line{Runs: runs, Width: c.total + ew, Ellipsis: ellipsis, EllipsisStyle: style}
	}

	// 一个字符都放不下：只剩省略号，首个 run 的样式放不下时退回默认字体。
	styles := []markup.Style{markup.Default}
	if len(line.Runs) > 0 && line.Runs[0].Style != markup.Default {
		styles = []markup.Style{line.Runs[0].Style, markup.Default}
	}
	for _, style := range styles {
		if ew := TextWidth(m, style.Font(), ellipsis); ew <= width {
			return Line{Width: ew, Ellipsis: ellipsis, EllipsisStyle: style}
		}
	}
	return Line{}
}
