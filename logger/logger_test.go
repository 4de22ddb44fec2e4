package logger

import (
	"bytes"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
)

func TestPlainFormatter(t *testing.T) {
	entry := &logrus.Entry{
		Logger:  logrus.New(),
		Time:    time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
		Level:   logrus.WarnLevel,
		Message: "font fallback",
		Data: logrus.Fields{
			"component": "bitmap",
			"font":      "bold",
			"err":       "boom",
		},
	}
	out, err := (PlainFormatter{}).Format(entry)
	if err != nil {
		t.Fatalf("Format() error: %v", err)
	}
	want := "[2025-01-02T03:04:05Z] [WARNING] [bitmap] font fallback err=boom font=bold\n"
	if got := string(out); got != want {
		t.Fatalf("unexpected format:\nwant: %q\ngot:  %q", want, got)
	}
}

func TestConfigureLevelAndNamed(t *testing.T) {
	var buf bytes.Buffer
	defer Configure("info", os.Stderr)
	early := Named("bitmap")
	if err := Configure("debug", &buf); err != nil {
		t.Fatalf("Configure error: %v", err)
	}
	Named("elements").Debug("skip empty box")
	if got := buf.String(); !strings.Contains(got, "[DEBUG] [elements] skip empty box") {
		t.Fatalf("debug line missing: %q", got)
	}
	early.Debug("created before Configure")
	if got := buf.String(); !strings.Contains(got, "[DEBUG] [bitmap] created before Configure") {
		t.Fatalf("entry created before Configure must follow it: %q", got)
	}

	if err := Configure("loud", nil); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}
