package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestSetupJSON(t *testing.T) {
	var buf bytes.Buffer
	cleanup, err := Setup(Config{Level: "info", Format: "json", Writer: &buf})
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	defer cleanup()

	L().Debug("hidden")
	L().Info("derive.done", "steps", 3)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("want 1 record, got %d: %q", len(lines), buf.String())
	}
	var rec map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &rec); err != nil {
		t.Fatalf("record is not JSON: %v", err)
	}
	if rec["msg"] != "derive.done" || rec["steps"] != float64(3) {
		t.Errorf("unexpected record %v", rec)
	}
	ts, _ := rec["time"].(string)
	if _, err := time.Parse(time.RFC3339Nano, ts); err != nil || !strings.HasSuffix(ts, "Z") {
		t.Errorf("time %q is not UTC RFC3339Nano", ts)
	}
}

func TestSetupText(t *testing.T) {
	var buf bytes.Buffer
	cleanup, err := Setup(Config{Level: "debug", Writer: &buf})
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	L().Debug("derive.step", "name", "laplacian")
	if !strings.Contains(buf.String(), "name=laplacian") {
		t.Errorf("text record missing attribute: %q", buf.String())
	}

	if err := cleanup(); err != nil {
		t.Fatal(err)
	}
	buf.Reset()
	L().Error("dropped")
	if buf.Len() != 0 {
		t.Errorf("cleanup should restore discard logger, got %q", buf.String())
	}
}

func TestSetupErrors(t *testing.T) {
	if _, err := Setup(Config{Level: "loud"}); err == nil {
		t.Error("expected level error")
	}
	if _, err := Setup(Config{Format: "xml"}); err == nil {
		t.Error("expected format error")
	}
}
