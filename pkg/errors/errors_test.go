package errors

import (
	"errors"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidConfig, "bad value: %d", 7)

	if err.Code != ErrCodeInvalidConfig {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidConfig)
	}
	if err.Message != "bad value: 7" {
		t.Errorf("Message = %v, want %v", err.Message, "bad value: 7")
	}

	expected := "INVALID_CONFIG: bad value: 7"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeStore, cause, "failed to save")

	if err.Code != ErrCodeStore {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeStore)
	}
	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}

	if unwrapped := errors.Unwrap(err); unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
}

func TestIs(t *testing.T) {
	err := New(ErrCodePlanNotFound, "no such plan")

	if !Is(err, ErrCodePlanNotFound) {
		t.Error("Is(err, ErrCodePlanNotFound) = false, want true")
	}
	if Is(err, ErrCodeInternal) {
		t.Error("Is(err, ErrCodeInternal) = true, want false")
	}
	if Is(errors.New("plain"), ErrCodePlanNotFound) {
		t.Error("Is(plain error, code) = true, want false")
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(ErrCodeCache, "oops")); got != ErrCodeCache {
		t.Errorf("GetCode = %v, want %v", got, ErrCodeCache)
	}
	if got := GetCode(errors.New("plain")); got != "" {
		t.Errorf("GetCode(plain) = %q, want empty", got)
	}
}

func TestUserMessage(t *testing.T) {
	if got := UserMessage(New(ErrCodeInvalidSeed, "seed must be an integer")); got != "seed must be an integer" {
		t.Errorf("UserMessage = %q", got)
	}
	if got := UserMessage(errors.New("plain")); got != "plain" {
		t.Errorf("UserMessage(plain) = %q", got)
	}
}
