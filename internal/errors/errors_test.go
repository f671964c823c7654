package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		kind Kind
		msg  string
	}{
		{"NotFound", NotFound("team not found"), ErrNotFound, "team not found"},
		{"NotFoundf", NotFoundf("team %d not found", 7), ErrNotFound, "team 7 not found"},
		{"Validation", Validation("invalid email format"), ErrValidation, "invalid email format"},
		{"Validationf", Validationf("password must be at least %d characters", 6), ErrValidation, "password must be at least 6 characters"},
		{"Conflict", Conflict("already exists"), ErrConflict, "already exists"},
		{"Conflictf", Conflictf("a team named %q already exists", "ws-7"), ErrConflict, `a team named "ws-7" already exists`},
		{"InvalidInput", InvalidInput("bad payload"), ErrInvalidInput, "bad payload"},
		{"InvalidInputf", InvalidInputf("invalid value %q", "x"), ErrInvalidInput, `invalid value "x"`},
		{"Unauthorized", Unauthorized("invalid credentials"), ErrUnauthorized, "invalid credentials"},
		{"Forbidden", Forbidden("not your team"), ErrForbidden, "not your team"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Kind != tt.kind {
				t.Errorf("expected kind %d, got %d", tt.kind, tt.err.Kind)
			}
			if tt.err.Message != tt.msg {
				t.Errorf("expected message %q, got %q", tt.msg, tt.err.Message)
			}
			if tt.err.Err != nil {
				t.Errorf("expected no underlying error, got %v", tt.err.Err)
			}
		})
	}
}

func TestInternal(t *testing.T) {
	underlying := fmt.Errorf("db gone")
	err := Internal(underlying)

	if err.Kind != ErrInternal {
		t.Errorf("expected ErrInternal, got %d", err.Kind)
	}
	if !errors.Is(err, underlying) {
		t.Error("expected Internal to wrap the underlying error")
	}
}

func TestWrap(t *testing.T) {
	underlying := fmt.Errorf("row scan failed")
	err := Wrap(underlying, ErrNotFound, "loading team")

	if err.Kind != ErrNotFound {
		t.Errorf("expected ErrNotFound, got %d", err.Kind)
	}
	if err.Error() != "loading team: row scan failed" {
		t.Errorf("unexpected Error(): %s", err.Error())
	}
	if errors.Unwrap(err) != underlying {
		t.Error("expected Unwrap to return the underlying error")
	}
}

func TestErrorsAs(t *testing.T) {
	var appErr *Error
	wrapped := fmt.Errorf("handler: %w", Validation("bad input"))

	if !errors.As(wrapped, &appErr) {
		t.Fatal("expected errors.As to find *Error")
	}
	if appErr.Kind != ErrValidation {
		t.Errorf("expected ErrValidation, got %d", appErr.Kind)
	}
}
