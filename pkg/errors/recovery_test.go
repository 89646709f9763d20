package errors

import (
	"errors"
	"strings"
	"testing"
)

// TestRecover_WithPanic tests the Recover function when a panic occurs
func TestRecover_WithPanic(t *testing.T) {
	testFunc := func() (err error) {
		defer Recover(&err, "fit x1")
		panic("index out of range")
	}

	err := testFunc()

	if err == nil {
		t.Fatal("Expected error from recovered panic, got nil")
	}

	var panicErr *PanicError
	if !errors.As(err, &panicErr) {
		t.Fatalf("Expected PanicError, got %T", err)
	}

	if panicErr.Operation != "fit x1" {
		t.Errorf("Expected operation 'fit x1', got '%s'", panicErr.Operation)
	}

	if panicErr.PanicValue != "index out of range" {
		t.Errorf("Expected panic value 'index out of range', got '%v'", panicErr.PanicValue)
	}

	if panicErr.StackTrace == "" {
		t.Error("Expected non-empty stack trace")
	}

	expectedMsg := "panic in fit x1: index out of range"
	if panicErr.Error() != expectedMsg {
		t.Errorf("Expected error message '%s', got '%s'", expectedMsg, panicErr.Error())
	}
}

// TestRecover_WithoutPanic tests the Recover function when no panic occurs
func TestRecover_WithoutPanic(t *testing.T) {
	testFunc := func() (err error) {
		defer Recover(&err, "fit x1")
		return nil
	}

	if err := testFunc(); err != nil {
		t.Fatalf("Expected no error when no panic occurs, got: %v", err)
	}
}

// TestRecover_PanicAfterError tests that a panic wraps an already-set error
func TestRecover_PanicAfterError(t *testing.T) {
	testFunc := func() (err error) {
		defer Recover(&err, "fit x1")
		err = ErrSingularMatrix
		panic("follow-up panic")
	}

	err := testFunc()
	if err == nil {
		t.Fatal("Expected error, got nil")
	}
	if !errors.Is(err, ErrSingularMatrix) {
		t.Error("Expected the original error to stay reachable through the chain")
	}
	if !strings.Contains(err.Error(), "follow-up panic") {
		t.Errorf("Expected panic information in message, got: %v", err)
	}
}

func TestSafeExecute(t *testing.T) {
	tests := []struct {
		name      string
		fn        func() error
		wantErr   bool
		wantPanic bool
	}{
		{
			name:    "normal return",
			fn:      func() error { return nil },
			wantErr: false,
		},
		{
			name:    "error return",
			fn:      func() error { return ErrNoConverge },
			wantErr: true,
		},
		{
			name:      "panic",
			fn:        func() error { panic("boom") },
			wantErr:   true,
			wantPanic: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := SafeExecute("fit x1", tt.fn)

			if tt.wantErr && err == nil {
				t.Fatal("Expected error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("Expected no error, got: %v", err)
			}

			var panicErr *PanicError
			gotPanic := errors.As(err, &panicErr)
			if gotPanic != tt.wantPanic {
				t.Errorf("PanicError presence = %v, want %v", gotPanic, tt.wantPanic)
			}
		})
	}
}
