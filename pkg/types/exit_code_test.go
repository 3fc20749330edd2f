// SPDX-License-Identifier: MPL-2.0

package types

import (
	"errors"
	"testing"
)

func TestExitCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		code    ExitCode
		valid   bool
		success bool
	}{
		{ExitSuccess, true, true},
		{ExitFailure, true, false},
		{ExitUsage, true, false},
		{255, true, false},
		{-1, false, false},
		{256, false, false},
	}

	for _, tt := range tests {
		err := tt.code.Validate()
		if (err == nil) != tt.valid {
			t.Errorf("ExitCode(%d).Validate() = %v, want valid=%v", tt.code, err, tt.valid)
		}
		if err != nil && !errors.Is(err, ErrInvalidExitCode) {
			t.Errorf("ExitCode(%d): error should wrap ErrInvalidExitCode", tt.code)
		}
		if got := tt.code.IsSuccess(); got != tt.success {
			t.Errorf("ExitCode(%d).IsSuccess() = %v, want %v", tt.code, got, tt.success)
		}
	}

	if ExitFailure == ExitUsage {
		t.Error("ExitFailure and ExitUsage must differ")
	}
	if got := ExitUsage.String(); got != "2" {
		t.Errorf("ExitUsage.String() = %q, want \"2\"", got)
	}
}
