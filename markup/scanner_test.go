package markup

import (
	"reflect"
	"strings"
	"testing"
)

type textRun struct {
	text  string
	style Style
}

func collect(src string) []textRun {
	var out []textRun
	for _, r := range Scan(src) {
		out = append(out, textRun{text: r.Text(src), style: r.Style})
	}
	return out
}

func TestScanSplitsStyledRuns(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []textRun
	}{
		{
			name: "plain",
			in:   "Hello World",
			want: []textRun{{"Hello World", Default}},
		},
		{
			name: "bold in middle",
			in:   "Hello \x1B#World\x1B#!",
			want: []textRun{{"Hello ", Default}, {"World", Bold}, {"!", Default}},
		},
		{
			name: "bold and inverse compose",
			in:   "\x1B#a\x1B!b\x1B#c\x1B!",
			want: []textRun{{"a", Bold}, {"b", Bold | Inverse}, {"c", Inverse}},
		},
		{
			name: "mono opened inside bold wins",
			in:   "\x1B#a\x1B*b\x1B*c\x1B#",
			want: []textRun{{"a", Bold}, {"b", Mono}, {"c", Bold}},
		},
		{
			name: "closing bold keeps mono",
			in:   "\x1B#a\x1B*b\x1B#c\x1B*d",
			want: []textRun{{"a", Bold}, {"b", Mono}, {"c", Mono}, {"d", Default}},
		},
		{
			name: "unterminated marker",
			in:   "x\x1B*mono to the end",
			want: []textRun{{"x", Default}, {"mono to the end", Mono}},
		},
		{
			name: "unknown marker is literal",
			in:   "a\x1B?b",
			want: []textRun{{"a\x1B?b", Default}},
		},
		{
			name: "trailing escape is literal",
			in:   "ab\x1B",
			want: []textRun{{"ab\x1B", Default}},
		},
		{
			name: "nul terminates",
			in:   "abc\x00\x1B#def",
			want: []textRun{{"abc", Default}},
		},
		{
			name: "empty pair yields nothing",
			in:   "\x1B#\x1B#",
			want: nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := collect(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("Scan(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

// 无标记字符串恰好产生一个覆盖全文的默认 run。
func TestScanWithoutMarkersIsSingleRun(t *testing.T) {
	for _, s := range []string{"a", "hello world", "многобайтовый текст", "line\nbreak"} {
		runs := Scan(s)
		if len(runs) != 1 {
			t.Fatalf("Scan(%q) produced %d runs", s, len(runs))
		}
		if runs[0].Style != Default || runs[0].Start != 0 || runs[0].End != len(s) {
			t.Fatalf("Scan(%q) = %+v", s, runs[0])
		}
	}
	if runs := Scan(""); len(runs) != 0 {
		t.Fatalf("empty input produced runs: %+v", runs)
	}
}

// 成对标记剥离后的字符数等于输入长度减去标记字节数。
func TestStripRemovesOnlyMarkerBytes(t *testing.T) {
	in := "\x1B#Bold\x1B# and \x1B*mono\x1B* and \x1B!inv\x1B!"
	markers := strings.Count(in, "\x1B") * 2
	got := Strip(in)
	if len(got) != len(in)-markers {
		t.Fatalf("Strip length = %d, want %d", len(got), len(in)-markers)
	}
	if got != "Bold and mono and inv" {
		t.Fatalf("Strip = %q", got)
	}
}

func TestStyleFont(t *testing.T) {
	cases := map[Style]Font{
		Default:        FontPrimary,
		Inverse:        FontPrimary,
		Bold:           FontBold,
		Bold | Inverse: FontBold,
		Mono:           FontMono,
		Mono | Inverse: FontMono,
	}
	for s, want := range cases {
		if got := s.Font(); got != want {
			t.Fatalf("%v.Font() = %v, want %v", s, got, want)
		}
	}
	if got := (Bold | Inverse).String(); got != "bold+inverse" {
		t.Fatalf("String() = %q", got)
	}
}
