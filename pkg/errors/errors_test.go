package errors

import (
	"errors"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidContent, "test message: %s", "value")

	if err.Code != ErrCodeInvalidContent {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidContent)
	}

	if err.Message != "test message: value" {
		t.Errorf("Message = %v, want %v", err.Message, "test message: value")
	}

	expected := "INVALID_CONTENT: test message: value"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestNewNode(t *testing.T) {
	err := NewNode(ErrCodeNoTemplate, "sec-1", "no template for kind %s", "image")

	if err.NodeID != "sec-1" {
		t.Errorf("NodeID = %v, want sec-1", err.NodeID)
	}

	expected := "NO_TEMPLATE: node sec-1: no template for kind image"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}

	if got := NodeID(err); got != "sec-1" {
		t.Errorf("NodeID(err) = %v, want sec-1", got)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeInvalidCatalog, cause, "failed to load")

	if err.Code != ErrCodeInvalidCatalog {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidCatalog)
	}

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}

	// Test Unwrap
	unwrapped := errors.Unwrap(err)
	if unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}

	// Test errors.Is with wrapped error
	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     Code
		expected bool
	}{
		{
			name:     "matching code",
			err:      New(ErrCodeInvalidContent, "test"),
			code:     ErrCodeInvalidContent,
			expected: true,
		},
		{
			name:     "non-matching code",
			err:      New(ErrCodeInvalidContent, "test"),
			code:     ErrCodeNoTemplate,
			expected: false,
		},
		{
			name:     "wrapped error",
			err:      Wrap(ErrCodeInternal, New(ErrCodeInvalidContent, "inner"), "outer"),
			code:     ErrCodeInternal,
			expected: true,
		},
		{
			name:     "non-Error type",
			err:      errors.New("plain error"),
			code:     ErrCodeInvalidContent,
			expected: false,
		},
		{
			name:     "nil error",
			err:      nil,
			code:     ErrCodeInvalidContent,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.expected {
				t.Errorf("Is() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	if code := GetCode(New(ErrCodeEmptyCanvas, "bad canvas")); code != ErrCodeEmptyCanvas {
		t.Errorf("GetCode = %v, want %v", code, ErrCodeEmptyCanvas)
	}

	if code := GetCode(errors.New("plain")); code != "" {
		t.Errorf("GetCode(plain) = %v, want empty", code)
	}
}

func TestUserMessage(t *testing.T) {
	err := New(ErrCodeElementTooLarge, "image does not fit")
	if msg := UserMessage(err); msg != "image does not fit" {
		t.Errorf("UserMessage = %v, want %v", msg, "image does not fit")
	}

	plain := errors.New("plain error")
	if msg := UserMessage(plain); msg != "plain error" {
		t.Errorf("UserMessage(plain) = %v, want %v", msg, "plain error")
	}
}
