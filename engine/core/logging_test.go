package core

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func TestLogLevelFiltersOutput(t *testing.T) {
	var buf bytes.Buffer
	SetLogOutput(&buf)
	t.Cleanup(func() {
		SetLogOutput(os.Stderr)
		SetLogLevel(InfoLevel)
	})

	level, err := ParseLogLevel("warn")
	if err != nil {
		t.Fatalf("ParseLogLevel: %v", err)
	}
	SetLogLevel(level)
	LogInfo("hidden %d", 1)
	LogWarn("shown %d", 2)

	out := buf.String()
	if strings.Contains(out, "hidden 1") {
		t.Errorf("info line leaked through a warn level logger: %q", out)
	}
	if !strings.Contains(out, "shown 2") {
		t.Errorf("expected the warning in the output, got %q", out)
	}
	if _, err := ParseLogLevel("loud"); err == nil {
		t.Error("unknown level names are rejected")
	}
}
