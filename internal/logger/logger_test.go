package logger

import (
	"bytes"
	"strings"
	"testing"
)

func TestLevels(t *testing.T) {
	var buf bytes.Buffer
	log := New(LevelNormal, &buf)

	log.Debug("hidden %d", 1)
	log.Info("shown %d", 2)
	log.Warn("careful")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("debug line leaked at normal level: %q", out)
	}
	if !strings.Contains(out, "[INF] ") || !strings.Contains(out, "shown 2") || !strings.Contains(out, "[WRN] ") {
		t.Fatalf("missing info/warn output: %q", out)
	}

	buf.Reset()
	log.SetLevel(LevelVerbose)
	log.Debug("now visible")
	if !strings.Contains(buf.String(), "[DBG] ") {
		t.Fatalf("expected debug output, got %q", buf.String())
	}

	buf.Reset()
	log.SetLevel(LevelOff)
	log.Error("nothing")
	if buf.Len() != 0 {
		t.Fatalf("expected no output when off, got %q", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{"off": LevelOff, "VERBOSE": LevelVerbose, "": LevelNormal, "info": LevelNormal}
	for in, want := range cases {
		got, ok := ParseLevel(in)
		if !ok || got != want {
			t.Fatalf("ParseLevel(%q) = %v, %v; want %v", in, got, ok, want)
		}
	}
	if _, ok := ParseLevel("loud"); ok {
		t.Fatalf("expected unknown level to report false")
	}
}
