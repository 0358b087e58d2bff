package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestNew_Verbose(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, true)
	logger.Debug("probing package manager", "command", "yarnpkg")

	out := buf.String()
	if !strings.Contains(out, "probing package manager") {
		t.Errorf("expected debug message in output, got %q", out)
	}
	if !strings.Contains(out, "yarnpkg") {
		t.Errorf("expected key/value in output, got %q", out)
	}
}

func TestNew_Quiet(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, false)
	logger.Debug("hidden")
	logger.Info("also hidden")
	logger.Warn("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug/info should be suppressed, got %q", out)
	}
	if !strings.Contains(out, "shown") {
		t.Errorf("warning should be shown, got %q", out)
	}
}

func TestNewForTest(t *testing.T) {
	logger := NewForTest()
	logger.Error("discarded")
}
