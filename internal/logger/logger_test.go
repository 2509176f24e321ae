package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func TestNew_JSONOutput(t *testing.T) {
	var buf bytes.Buffer
	log := New(&Config{Level: "info", Format: "json", Output: &buf, ServiceName: "movierec-test"})

	log.WithField(FieldTitle, "Avatar").Info("catalog ready")

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, buf.String())
	}
	if entry["message"] != "catalog ready" {
		t.Errorf("message = %v, want %q", entry["message"], "catalog ready")
	}
	if entry["service"] != "movierec-test" {
		t.Errorf("service = %v, want %q", entry["service"], "movierec-test")
	}
	if entry[FieldTitle] != "Avatar" {
		t.Errorf("%s = %v, want %q", FieldTitle, entry[FieldTitle], "Avatar")
	}
	if _, ok := entry["timestamp"]; !ok {
		t.Error("expected timestamp field")
	}
}

func TestNew_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := New(&Config{Level: "warn", Format: "text", Output: &buf})

	log.Info("hidden")
	log.Warn("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info line should be filtered at warn level:\n%s", out)
	}
	if !strings.Contains(out, "shown") {
		t.Errorf("warn line missing:\n%s", out)
	}
}

func TestContextFields(t *testing.T) {
	var buf bytes.Buffer
	base := New(&Config{Level: "debug", Output: &buf})

	ctx := base.WithContext(context.Background())
	ctx = SetRequestID(ctx, "req-123")
	ctx = SetComponent(ctx, "api")

	if got := GetRequestID(ctx); got != "req-123" {
		t.Errorf("GetRequestID() = %q, want %q", got, "req-123")
	}
	if got := GetFieldString(ctx, FieldComponent); got != "api" {
		t.Errorf("component = %q, want %q", got, "api")
	}

	With(Fields{FieldCount: 3}).WithDuration(42).Info(ctx, "done")
	out := buf.String()
	for _, want := range []string{`"request_id":"req-123"`, `"duration_ms":42`, `"count":3`} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %s:\n%s", want, out)
		}
	}
}

func TestFromContext_FallsBackToDefault(t *testing.T) {
	if FromContext(context.Background()) != GetDefault() {
		t.Error("expected default logger for a bare context")
	}
	//nolint:staticcheck // nil context is accepted deliberately
	if FromContext(nil) != GetDefault() {
		t.Error("expected default logger for a nil context")
	}
}
