package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidInstance, "ragged row %d", 3)

	if err.Code != ErrCodeInvalidInstance {
		t.Errorf("Code = %q, want %q", err.Code, ErrCodeInvalidInstance)
	}
	if err.Message != "ragged row 3" {
		t.Errorf("Message = %q", err.Message)
	}
	if got := err.Error(); got != "INVALID_INSTANCE: ragged row 3" {
		t.Errorf("Error() = %q", got)
	}
}

func TestWrap(t *testing.T) {
	cause := stderrors.New("disk full")
	err := Wrap(ErrCodeStore, cause, "saving run %s", "abc")

	if !stderrors.Is(err, cause) {
		t.Error("wrapped cause lost from the error chain")
	}
	if got := err.Error(); got != "STORE_ERROR: saving run abc: disk full" {
		t.Errorf("Error() = %q", got)
	}
}

func TestIs(t *testing.T) {
	err := New(ErrCodeNotFound, "run missing")

	if !Is(err, ErrCodeNotFound) {
		t.Error("Is() missed a direct code match")
	}
	if Is(err, ErrCodeInternal) {
		t.Error("Is() matched the wrong code")
	}
	if Is(stderrors.New("plain"), ErrCodeNotFound) {
		t.Error("Is() matched a plain error")
	}

	wrapped := fmt.Errorf("outer: %w", err)
	if !Is(wrapped, ErrCodeNotFound) {
		t.Error("Is() failed to unwrap to the coded error")
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(ErrCodeCache, "miss")); got != ErrCodeCache {
		t.Errorf("GetCode() = %q, want %q", got, ErrCodeCache)
	}
	if got := GetCode(stderrors.New("plain")); got != "" {
		t.Errorf("GetCode() on a plain error = %q, want empty", got)
	}
}

func TestUserMessage(t *testing.T) {
	err := Wrap(ErrCodeInternal, stderrors.New("oops"), "search failed")
	if got := UserMessage(err); got != "search failed" {
		t.Errorf("UserMessage() = %q, want %q", got, "search failed")
	}
	if got := UserMessage(stderrors.New("plain")); got != "plain" {
		t.Errorf("UserMessage() on a plain error = %q", got)
	}
}
