package binding

import (
	"os"
	"path/filepath"
	"testing"
)

func testData() any {
	return map[string]any{
		"track": map[string]any{
			"title":  "Blue Monday",
			"length": float64(449),
			"rating": 4.5,
		},
		"queue": []any{
			map[string]any{"title": "Ceremony"},
			map[string]any{"title": "Temptation"},
		},
		"flags": []any{true, nil},
	}
}

func TestInterpolate(t *testing.T) {
	scope := Scope{Data: testData(), Tick: 12}
	cases := []struct {
		in   string
		want string
	}{
		{"${track.title}", "Blue Monday"},
		{"\x1B#${ track.title }\x1B#", "\x1B#Blue Monday\x1B#"},
		{"${track.length}s", "449s"},
		{"${track.rating}", "4.5"},
		{"next: ${queue[1].title}", "next: Temptation"},
		{"${flags[0]}/${flags[1]}", "true/"},
		{"frame ${tick}", "frame 12"},
		{"${missing.path}", "${missing.path}"},
		{"${queue[9].title}", "${queue[9].title}"},
		{"${queue[x]}", "${queue[x]}"},
		{"${}", "${}"},
		{"no placeholders", "no placeholders"},
	}
	for _, tc := range cases {
		if got := Interpolate(tc.in, scope); got != tc.want {
			t.Fatalf("Interpolate(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestInterpolateWithoutData(t *testing.T) {
	if got := Interpolate("${a} ${tick}", Scope{Tick: 3}); got != "${a} 3" {
		t.Fatalf("unexpected result %q", got)
	}
}

func TestDependsOnTick(t *testing.T) {
	if !DependsOnTick("t=${ tick }") {
		t.Fatalf("expected tick dependency")
	}
	if DependsOnTick("${ticker} ${track.title}") {
		t.Fatalf("unexpected tick dependency")
	}
}

func TestLoadJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.json")
	if err := os.WriteFile(path, []byte(`{"user":{"name":"Ada"}}`), 0o644); err != nil {
		t.Fatal(err)
	}
	data, err := LoadJSON(path)
	if err != nil {
		t.Fatalf("LoadJSON error: %v", err)
	}
	if got := Interpolate("hi ${user.name}", Scope{Data: data}); got != "hi Ada" {
		t.Fatalf("unexpected result %q", got)
	}

	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte(`{`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadJSON(bad); err == nil {
		t.Fatalf("expected error for invalid json")
	}
	if _, err := LoadJSON(filepath.Join(dir, "none.json")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
