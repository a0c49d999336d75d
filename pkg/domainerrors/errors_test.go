package domainerrors

import (
	"errors"
	"fmt"
	"testing"
)

func TestHasCode(t *testing.T) {
	err := New(CodeNotFound, "profile not found")
	if !HasCode(err, CodeNotFound) {
		t.Fatalf("expected HasCode to match CodeNotFound")
	}
	if HasCode(err, CodeConflict) {
		t.Fatalf("did not expect HasCode to match CodeConflict")
	}
	if HasCode(errors.New("plain"), CodeNotFound) {
		t.Fatalf("plain errors must not match any code")
	}
}

func TestHasCodeThroughWrapping(t *testing.T) {
	inner := New(CodeValidation, "name is required")
	outer := fmt.Errorf("create profile: %w", inner)
	if !HasCode(outer, CodeValidation) {
		t.Fatalf("expected code to survive fmt.Errorf wrapping")
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(cause, CodeInternal, "failed to store profile")
	if !errors.Is(err, cause) {
		t.Fatalf("expected wrapped cause to be reachable via errors.Is")
	}
	if got := err.Error(); got != "failed to store profile: connection refused" {
		t.Fatalf("unexpected error string: %q", got)
	}
}

func TestCodeOfDefaultsToInternal(t *testing.T) {
	if got := CodeOf(errors.New("unknown")); got != CodeInternal {
		t.Fatalf("expected CodeInternal for unclassified errors, got %q", got)
	}
	if got := CodeOf(New(CodeBadRequest, "bad")); got != CodeBadRequest {
		t.Fatalf("expected CodeBadRequest, got %q", got)
	}
}
