package testutil

import (
	"errors"
	"testing"

	"gorm.io/gorm"

	apperrors "timeclock/internal/errors"
)

// AssertAppError fails unless err is an *AppError carrying code.
func AssertAppError(t *testing.T, err error, code string) {
	t.Helper()

	if err == nil {
		t.Fatalf("expected %s, got nil", code)
	}
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *AppError %s, got %T: %v", code, err, err)
	}
	if appErr.Code != code {
		t.Errorf("expected %s, got %s (%s)", code, appErr.Code, appErr.Message)
	}
}

// AssertNoError stops the test on any error.
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertLogRows checks the size of the append-only log table, which is how
// tests prove a rejected request wrote nothing.
func AssertLogRows(t *testing.T, db *gorm.DB, want int64) {
	t.Helper()
	if got := CountLogRows(t, db); got != want {
		t.Errorf("expected %d log rows, got %d", want, got)
	}
}
