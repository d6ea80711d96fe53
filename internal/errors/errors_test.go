package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		want string
	}{
		{
			name: "error without cause",
			err: &AppError{
				Code:    ErrCodeNotFound,
				Message: "business not found",
			},
			want: "business not found",
		},
		{
			name: "error with cause",
			err: &AppError{
				Code:    ErrCodeUnavailable,
				Message: "permission api unreachable",
				Cause:   errors.New("connection refused"),
			},
			want: "permission api unreachable: connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("AppError.Error() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := Wrap(cause, ErrCodeInternal, "wrapped error")

	if !errors.Is(err, cause) {
		t.Errorf("errors.Is(err, cause) = false, want true")
	}
}

func TestWrap_NilError(t *testing.T) {
	if err := Wrap(nil, ErrCodeInternal, "ignored"); err != nil {
		t.Errorf("Wrap(nil) = %v, want nil", err)
	}
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name  string
		err   *AppError
		code  ErrorCode
		check func(error) bool
	}{
		{"not found", NotFound("x"), ErrCodeNotFound, IsNotFound},
		{"not foundf", NotFoundf("business %s", "b1"), ErrCodeNotFound, IsNotFound},
		{"conflict", Conflict("x"), ErrCodeConflict, IsConflict},
		{"conflictf", Conflictf("permission %q", "kiosk"), ErrCodeConflict, IsConflict},
		{"validation", Validation("x"), ErrCodeValidation, IsValidation},
		{"unauthorized", Unauthorized("x"), ErrCodeUnauthorized, IsUnauthorized},
		{"forbidden", Forbidden("x"), ErrCodeForbidden, IsForbidden},
		{"upstream", Upstream("x"), ErrCodeUpstream, IsUpstream},
		{"internal", Internal("x"), ErrCodeInternal, IsInternal},
		{"internalf", Internalf("%d", 1), ErrCodeInternal, IsInternal},
		{"unavailable", Wrap(errors.New("dial"), ErrCodeUnavailable, "x"), ErrCodeUnavailable, IsUnavailable},
		{"timeout", Wrap(errors.New("slow"), ErrCodeTimeout, "x"), ErrCodeTimeout, IsTimeout},
		{"canceled", Wrapf(errors.New("stop"), ErrCodeCanceled, "%s", "x"), ErrCodeCanceled, IsCanceled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.code {
				t.Errorf("Code = %v, want %v", tt.err.Code, tt.code)
			}
			wrapped := fmt.Errorf("context: %w", tt.err)
			if !tt.check(wrapped) {
				t.Errorf("predicate did not match wrapped %v", tt.code)
			}
		})
	}
}

func TestValidationField(t *testing.T) {
	err := ValidationField("email", "Please enter a valid email address")
	if GetField(err) != "email" {
		t.Errorf("GetField() = %q, want email", GetField(err))
	}
	if GetCode(err) != ErrCodeValidation {
		t.Errorf("GetCode() = %v, want validation", GetCode(err))
	}
}

func TestGetHelpers_NonAppError(t *testing.T) {
	err := errors.New("plain")
	if GetCode(err) != "" {
		t.Errorf("GetCode() = %v, want empty", GetCode(err))
	}
	if GetField(err) != "" {
		t.Errorf("GetField() = %v, want empty", GetField(err))
	}
	if GetMessage(err) != "plain" {
		t.Errorf("GetMessage() = %v, want plain", GetMessage(err))
	}
	if GetMessage(nil) != "" {
		t.Errorf("GetMessage(nil) should be empty")
	}
}

func TestGetMessage_AppError(t *testing.T) {
	err := fmt.Errorf("login: %w", Wrap(errors.New("eof"), ErrCodeUnavailable, "Login failed, please try again later"))
	if got := GetMessage(err); got != "Login failed, please try again later" {
		t.Errorf("GetMessage() = %q", got)
	}
}
