package layout

import (
	"math"
	"unicode"
	"unicode/utf8"

	"github.com/ByLCY/monoglyph/markup"
)

type tokenKind uint8

const (
	tokenWord tokenKind = iota
	tokenSpace
	tokenNewline
)

// token 是一个词、一段空白或一个换行符。词可以跨越多个样式 run，
// 因此由若干 piece 组成，每个 piece 是源字符串中的一段同样式字节区间。
type token struct {
	kind   tokenKind
	pieces []markup.Run
	width  int
}

func tokenize(src string, runs []markup.Run, m Metrics) []token {
	var tokens []token
	for _, run := range runs {
		font := run.Style.Font()
		for pos := run.Start; pos < run.End; {
			r, size := utf8.DecodeRuneInString(src[pos:run.End])
			at := pos
			pos += size
			if r == '\r' {
				continue
			}
			kind := tokenWord
			switch {
			case r == '\n':
				kind = tokenNewline
			case unicode.IsSpace(r):
				kind = tokenSpace
			}
			w := 0
			if kind != tokenNewline {
				w = m.GlyphWidth(font, r)
			}
			n := len(tokens)
			if n == 0 || kind == tokenNewline || tokens[n-1].kind != kind {
				tokens = append(tokens, token{kind: kind})
				n++
			}
			tok := &tokens[n-1]
			tok.width += w
			if p := len(tok.pieces); p > 0 && tok.pieces[p-1].Style == run.Style && tok.pieces[p-1].End == at {
				tok.pieces[p-1].End = pos
				continue
			}
			tok.pieces = append(tok.pieces, markup.Run{Style: run.Style, Start: at, End: pos})
		}
	}
	return tokens
}

type lineBuilder struct {
	line Line
}

func (b *lineBuilder) empty() bool { return len(b.line.Runs) == 0 }

func (b *lineBuilder) add(pieces []markup.Run, width int) {
	for _, p := range pieces {
		if n := len(b.line.Runs); n > 0 && b.line.Runs[n-1].Style == p.Style && b.line.Runs[n-1].End == p.Start {
			b.line.Runs[n-1].End = p.End
			continue
		}
		b.line.Runs = append(b.line.Runs, p)
	}
	b.line.Width += width
}

func (b *lineBuilder) finish() Line {
	l := b.line
	b.line = Line{}
	return l
}

// Break 使用贪心、以词为原子的算法把样式 run 排成行。
//
// 放不下的词整体移到下一行；比整行还宽的词独占一行且不再拆分。
// 显式换行总是断行；软换行处的空白被丢弃。达到 MaxLines 后停止，
// 若仍有剩余内容则返回 truncated=true。
func Break(src string, runs []markup.Run, m Metrics, opts BreakOptions) (lines []Line, truncated bool) {
	limit := opts.Width
	if !opts.Wrap || limit <= 0 {
		limit = math.MaxInt32
	}
	full := func() bool { return opts.MaxLines > 0 && len(lines) >= opts.MaxLines }

	var (
		cur          lineBuilder
		pending      []markup.Run
		pendingWidth int
		soft         bool // 当前行由软换行开启
	)
	dropPending := func() {
		pending = pending[:0]
		pendingWidth = 0
	}
	commitPending := func() {
		if pendingWidth > 0 && cur.line.Width+pendingWidth <= limit {
			cur.add(pending, pendingWidth)
		}
		dropPending()
	}

	tokens := tokenize(src, runs, m)
	for i, tok := range tokens {
		switch tok.kind {
		case tokenNewline:
			commitPending()
			lines = append(lines, cur.finish())
			soft = false
			if full() {
				return lines, i+1 < len(tokens)
			}
		case tokenSpace:
			if soft && cur.empty() {
				continue
			}
			pending = append(pending, tok.pieces...)
			pendingWidth += tok.width
		case tokenWord:
			if !cur.empty() && cur.line.Width+pendingWidth+tok.width > limit {
				dropPending()
				lines = append(lines, cur.finish())
				soft = true
				if full() {
					return lines, true
				}
			}
			if cur.empty() && pendingWidth > 0 && (soft || pendingWidth+tok.width > limit) {
				dropPending()
			}
			if pendingWidth > 0 {
				cur.add(pending, pendingWidth)
				dropPending()
			}
			cur.add(tok.pieces, tok.width)
		}
	}
	commitPending()
	lines = append(lines, cur.finish())
	return lines, false
}
