package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"regsweep/pkg/errors"
)

func TestToLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
	}

	for _, tt := range tests {
		if got := ToLogLevel(tt.in); got != tt.want {
			t.Errorf("ToLogLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestToLogLevel_InvalidPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Expected panic for invalid log level")
		}
	}()
	ToLogLevel("verbose")
}

func TestErrAttr(t *testing.T) {
	err := errors.New("test error")
	attr := ErrAttr(err)

	if attr.Key != ErrAttrKey {
		t.Errorf("Key = %v, want %v", attr.Key, ErrAttrKey)
	}
	if attr.Value.Any() != err {
		t.Error("Expected the attribute value to carry the error")
	}
}

// The wrapped handler should surface the cockroachdb stack trace of a logged
// error as its own attribute.
func TestErrFmtHandlerAddsStacktrace(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(WrapByErrFmtHandler(slog.NewJSONHandler(&buf, nil)))

	err := errors.NewConfigurationError("cores", "must be positive", 0)
	logger.Error("sweep rejected", ErrAttr(err))

	var record map[string]any
	if jerr := json.Unmarshal(buf.Bytes(), &record); jerr != nil {
		t.Fatalf("Failed to parse log output: %v", jerr)
	}

	stack, ok := record[StacktraceAttrKey].(string)
	if !ok || stack == "" {
		t.Fatal("Expected a stacktrace attribute on the record")
	}
	if !strings.Contains(stack, "logger_test.go") {
		t.Errorf("Expected stacktrace to reference the call site, got: %s", stack)
	}
}

// Records without an error attribute must pass through untouched.
func TestErrFmtHandlerWithoutError(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(WrapByErrFmtHandler(slog.NewJSONHandler(&buf, nil)))

	logger.Info("sweep starting", slog.Int(VariablesKey, 100))

	out := buf.String()
	if strings.Contains(out, StacktraceAttrKey) {
		t.Error("Expected no stacktrace attribute without an error")
	}
	if !strings.Contains(out, VariablesKey) {
		t.Error("Expected the original attributes to survive wrapping")
	}
}
