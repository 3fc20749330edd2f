// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"errors"
	"strings"
	"testing"
)

func TestFormatError_NonCUE(t *testing.T) {
	t.Parallel()

	if FormatError(nil, "config.json") != nil {
		t.Error("FormatError(nil) should be nil")
	}

	orig := errors.New("read failed")
	err := FormatError(orig, "config.json")
	if !errors.Is(err, orig) {
		t.Errorf("non-CUE error should stay wrapped, got %v", err)
	}
	if !strings.HasPrefix(err.Error(), "config.json: ") {
		t.Errorf("error should be prefixed with the file, got %q", err)
	}
}

func TestFormatError_Validation(t *testing.T) {
	t.Parallel()

	_, err := DecodeMap(testSchema, []byte(`{"count": 0}`), "#Doc", WithFilename("doc.json"))
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("DecodeMap() error = %v (%T), want *ValidationError", err, err)
	}
	if !errors.Is(err, ErrValidation) {
		t.Error("ValidationError should wrap ErrValidation")
	}
	if verr.File != "doc.json" {
		t.Errorf("File = %q, want doc.json", verr.File)
	}

	found := false
	for _, p := range verr.Problems {
		if p.Path == "count" {
			found = true
		}
		if strings.HasPrefix(p.Message, p.Path+":") && p.Path != "" {
			t.Errorf("message repeats its path: %q", p.Message)
		}
	}
	if !found {
		t.Errorf("no problem located at count: %+v", verr.Problems)
	}
}

func TestValidationError_Error(t *testing.T) {
	t.Parallel()

	single := &ValidationError{File: "c.json", Problems: []Problem{{Path: "packFormat", Message: "out of bound"}}}
	if got, want := single.Error(), "c.json: packFormat: out of bound"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	multi := &ValidationError{File: "c.json", Problems: []Problem{
		{Path: "excludedDirs[0]", Message: "conflicting values"},
		{Message: "unexpected end of input"},
	}}
	want := "c.json: validation failed:\n  excludedDirs[0]: conflicting values\n  unexpected end of input"
	if got := multi.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestFormatPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path []string
		want string
	}{
		{nil, ""},
		{[]string{"packFormat"}, "packFormat"},
		{[]string{"pack", "description"}, "pack.description"},
		{[]string{"excludedDirs", "2"}, "excludedDirs[2]"},
		{[]string{"compatibilityGroups", "0", "1"}, "compatibilityGroups[0][1]"},
		{[]string{"items", "0", "values", "1"}, "items[0].values[1]"},
		{[]string{"0"}, "0"},
	}

	for _, tt := range tests {
		if got := formatPath(tt.path); got != tt.want {
			t.Errorf("formatPath(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestCheckFileSize(t *testing.T) {
	t.Parallel()

	for _, n := range []int{0, 99, 100} {
		if err := CheckFileSize(make([]byte, n), 100, "config.json"); err != nil {
			t.Errorf("CheckFileSize(%d bytes) = %v, want nil", n, err)
		}
	}

	err := CheckFileSize(make([]byte, 101), 100, "config.json")
	var tooLarge *FileTooLargeError
	if !errors.As(err, &tooLarge) {
		t.Fatalf("CheckFileSize(101 bytes) = %v, want *FileTooLargeError", err)
	}
	if tooLarge.Size != 101 || tooLarge.Max != 100 || tooLarge.File != "config.json" {
		t.Errorf("FileTooLargeError = %+v", tooLarge)
	}
	if !errors.Is(err, ErrFileTooLarge) {
		t.Error("FileTooLargeError should wrap ErrFileTooLarge")
	}
	if want := "config.json: file size 101 bytes exceeds maximum 100 bytes"; err.Error() != want {
		t.Errorf("Error() = %q, want %q", err, want)
	}
}
