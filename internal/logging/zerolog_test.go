package logging

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestZerologLogger_EmitsJSONWithFields(t *testing.T) {
	var buf bytes.Buffer
	log := NewZerologLogger(&buf, "debug", false)

	log.Info(context.Background(), "started", "addr", ":8080")

	out := buf.String()
	if !strings.Contains(out, `"message":"started"`) {
		t.Fatalf("expected message in output:\n%s", out)
	}
	if !strings.Contains(out, `"addr":":8080"`) {
		t.Fatalf("expected addr field in output:\n%s", out)
	}
}

func TestZerologLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := NewZerologLogger(&buf, "warn", false)

	log.Info(context.Background(), "nope")
	log.Warn(context.Background(), "yep")

	out := buf.String()
	if strings.Contains(out, "nope") {
		t.Fatalf("info line must be filtered at warn level:\n%s", out)
	}
	if !strings.Contains(out, "yep") {
		t.Fatalf("warn line must pass:\n%s", out)
	}
}

func TestZerologLogger_WithAddsField(t *testing.T) {
	var buf bytes.Buffer
	log := NewZerologLogger(&buf, "info", false)

	log.With("component", "httpapi").Error(context.Background(), "boom")

	if !strings.Contains(buf.String(), `"component":"httpapi"`) {
		t.Fatalf("expected component field:\n%s", buf.String())
	}
}

func TestZerologLogger_UnknownLevelDefaultsToInfo(t *testing.T) {
	var buf bytes.Buffer
	log := NewZerologLogger(&buf, "bogus", false)

	log.Debug(context.Background(), "hidden")
	log.Info(context.Background(), "visible")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("debug must be filtered at default info level:\n%s", out)
	}
	if !strings.Contains(out, "visible") {
		t.Fatalf("info must pass:\n%s", out)
	}
}
