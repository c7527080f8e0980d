package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestSetLevel(t *testing.T) {
	t.Cleanup(func() { _ = SetLevel("info") })

	tests := []struct {
		name     string
		expected log.Level
	}{
		{"debug", log.DebugLevel},
		{"INFO", log.InfoLevel},
		{" warn ", log.WarnLevel},
		{"error", log.ErrorLevel},
	}

	for _, tc := range tests {
		if err := SetLevel(tc.name); err != nil {
			t.Fatalf("SetLevel(%q) error = %v", tc.name, err)
		}
		if Level() != tc.expected {
			t.Errorf("SetLevel(%q) -> %v, expected %v", tc.name, Level(), tc.expected)
		}
	}

	if err := SetLevel("chatty"); err == nil {
		t.Error("unknown level should fail")
	}
	if Level() != log.ErrorLevel {
		t.Error("failed SetLevel should keep the previous level")
	}
}

func TestNewWithWriterHonoursLevel(t *testing.T) {
	t.Cleanup(func() { _ = SetLevel("info") })
	if err := SetLevel("info"); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	logger := NewWithWriter(&buf, "dotpop-test")
	logger.Debug("hidden")
	logger.Info("shown", "preset", "classic")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("debug line should be filtered at info level")
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "preset=classic") {
		t.Errorf("info line missing: %q", out)
	}
	if !strings.Contains(out, "dotpop-test") {
		t.Errorf("prefix missing: %q", out)
	}
}
