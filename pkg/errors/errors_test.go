package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/matzehuels/stablegraph/pkg/codec"
	"github.com/matzehuels/stablegraph/pkg/graph"
	"github.com/matzehuels/stablegraph/pkg/snapshot"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidInput, "test message: %s", "value")

	if err.Code != ErrCodeInvalidInput {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidInput)
	}
	if err.Message != "test message: value" {
		t.Errorf("Message = %v, want %v", err.Message, "test message: value")
	}
	expected := "INVALID_INPUT: test message: value"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeStorage, cause, "failed to save")

	if err.Code != ErrCodeStorage {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeStorage)
	}
	if errors.Unwrap(err) != cause {
		t.Errorf("Unwrap() = %v, want %v", errors.Unwrap(err), cause)
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
	if err.Error() != "STORAGE_ERROR: failed to save: underlying error" {
		t.Errorf("Error() = %v", err.Error())
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     Code
		expected bool
	}{
		{"matching code", New(ErrCodeInvalidInput, "test"), ErrCodeInvalidInput, true},
		{"non-matching code", New(ErrCodeInvalidInput, "test"), ErrCodeStorage, false},
		{"wrapped error", Wrap(ErrCodeStorage, New(ErrCodeInvalidInput, "inner"), "outer"), ErrCodeStorage, true},
		{"non-Error type", errors.New("plain error"), ErrCodeInvalidInput, false},
		{"nil error", nil, ErrCodeInvalidInput, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.expected {
				t.Errorf("Is() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetCodeAndUserMessage(t *testing.T) {
	if got := GetCode(New(ErrCodeInvalidKey, "bad")); got != ErrCodeInvalidKey {
		t.Errorf("GetCode() = %v, want %v", got, ErrCodeInvalidKey)
	}
	if got := GetCode(errors.New("plain")); got != "" {
		t.Errorf("GetCode() = %v, want empty", got)
	}
	if got := UserMessage(New(ErrCodeInvalidInput, "friendly message")); got != "friendly message" {
		t.Errorf("UserMessage() = %v", got)
	}
	if got := UserMessage(errors.New("plain error")); got != "plain error" {
		t.Errorf("UserMessage() = %v", got)
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code Code
	}{
		{"graph not found", fmt.Errorf("node 3: %w", graph.ErrNotFound), ErrCodeNotFound},
		{"no edge", graph.ErrNoEdgeBetweenNodes, ErrCodeNoEdge},
		{"endpoint", graph.ErrInvalidEndpoint, ErrCodeInvalidEndpoint},
		{"state", fmt.Errorf("decode: %w", graph.ErrInvalidState), ErrCodeInvalidState},
		{"format", codec.ErrUnknownFormat, ErrCodeInvalidFormat},
		{"version", codec.ErrUnsupportedVersion, ErrCodeUnsupported},
		{"snapshot missing", snapshot.ErrNotFound, ErrCodeNotFound},
		{"snapshot key", snapshot.ErrInvalidKey, ErrCodeInvalidKey},
		{"already coded", New(ErrCodeStorage, "down"), ErrCodeStorage},
		{"unknown", errors.New("boom"), ErrCodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.err)
			if GetCode(got) != tt.code {
				t.Errorf("Classify() code = %v, want %v", GetCode(got), tt.code)
			}
			if !errors.Is(got, tt.err) {
				t.Error("Classify() should keep the original error in the chain")
			}
		})
	}

	if Classify(nil) != nil {
		t.Error("Classify(nil) should be nil")
	}
}
