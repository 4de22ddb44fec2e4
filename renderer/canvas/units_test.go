package canvasrenderer

import (
	"math"
	"testing"
)

// TestPtMmRoundTrip 验证 pt↔mm 换算的往返精度（允许极小的浮点误差）。
func TestPtMmRoundTrip(t *testing.T) {
	samples := []float64{0, 0.001, 1, 12, 14.4, 72, 96, 144, 1000}
	for _, pt := range samples {
		back := Length{Value: pt, Unit: UnitPT}.ToMM() * MmToPt
		if diff := math.Abs(back - pt); diff > 1e-9 {
			t.Fatalf("pt→mm→pt 往返误差过大: in=%gpt back=%g diff=%g", pt, back, diff)
		}
	}
}

// TestParseLength 覆盖常见单位及错误输入。
func TestParseLength(t *testing.T) {
	cases := []struct {
		in     string
		wantMM float64
	}{
		{"0.6mm", 0.6},
		{"0.6", 0.6},
		{" 1IN ", 25.4},
		{"2.54cm", 25.4},
		{"12pt", 12 * PtToMm},
	}
	for _, tc := range cases {
		l, err := ParseLength(tc.in)
		if err != nil {
			t.Fatalf("ParseLength(%q) error: %v", tc.in, err)
		}
		if got := l.ToMM(); math.Abs(got-tc.wantMM) > 1e-9 {
			t.Fatalf("ParseLength(%q) 转 mm 期望 %g，实际 %g", tc.in, tc.wantMM, got)
		}
	}
	for _, bad := range []string{"", "abc", "-1mm", "1px"} {
		if _, err := ParseLength(bad); err == nil {
			t.Fatalf("ParseLength(%q) 应返回错误", bad)
		}
	}
	if got := Mm(0.5).String(); got != "0.5mm" {
		t.Fatalf("unexpected String(): %q", got)
	}
}
