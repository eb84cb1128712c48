package errors

import (
	"errors"
	"testing"
)

func TestWrap(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		msg      string
		expected string
	}{
		{
			name:     "wrap nil error",
			err:      nil,
			msg:      "additional context",
			expected: "",
		},
		{
			name:     "wrap standard error",
			err:      errors.New("original error"),
			msg:      "additional context",
			expected: "additional context: original error",
		},
		{
			name:     "wrap with empty message",
			err:      errors.New("original error"),
			msg:      "",
			expected: ": original error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Wrap(tt.err, tt.msg)
			if tt.err == nil {
				if result != nil {
					t.Errorf("Expected nil, got %v", result)
				}
				return
			}
			if result.Error() != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, result.Error())
			}
			// Test that the original error is wrapped
			if !errors.Is(result, tt.err) {
				t.Errorf("Expected wrapped error to contain original error")
			}
		})
	}
}

func TestWrapf(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		format   string
		args     []interface{}
		expected string
	}{
		{
			name:     "wrapf nil error",
			err:      nil,
			format:   "formatted: %s",
			args:     []interface{}{"test"},
			expected: "",
		},
		{
			name:     "wrapf standard error",
			err:      errors.New("original error"),
			format:   "failed to process %s",
			args:     []interface{}{"file.txt"},
			expected: "failed to process file.txt: original error",
		},
		{
			name:     "wrapf with multiple args",
			err:      errors.New("original error"),
			format:   "failed to process %s in %d attempts",
			args:     []interface{}{"file.txt", 3},
			expected: "failed to process file.txt in 3 attempts: original error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Wrapf(tt.err, tt.format, tt.args...)
			if tt.err == nil {
				if result != nil {
					t.Errorf("Expected nil, got %v", result)
				}
				return
			}
			if result.Error() != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, result.Error())
			}
			// Test that the original error is wrapped
			if !errors.Is(result, tt.err) {
				t.Errorf("Expected wrapped error to contain original error")
			}
		})
	}
}

func TestLoadError(t *testing.T) {
	tests := []struct {
		name     string
		kind     error
		file     string
		message  string
		expected string
	}{
		{
			name:     "not found",
			kind:     ErrNotFound,
			file:     "a.txt",
			message:  "file not in repository catalogue",
			expected: "a.txt [file not in repository catalogue]",
		},
		{
			name:     "integrity",
			kind:     ErrIntegrity,
			file:     "bundle.tar.gz",
			message:  "checksum test failed",
			expected: "bundle.tar.gz [checksum test failed]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewLoadError(tt.kind, tt.file, tt.message)
			if err.Error() != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, err.Error())
			}
			if !Is(err, tt.kind) {
				t.Errorf("Expected error to match its kind")
			}
			var le *LoadError
			if !As(Wrap(err, "outer"), &le) {
				t.Fatalf("Expected LoadError in wrapped chain")
			}
			if le.Name != tt.file {
				t.Errorf("Expected name %q, got %q", tt.file, le.Name)
			}
		})
	}
}

func TestLoadErrorKindsAreDistinct(t *testing.T) {
	err := NewLoadError(ErrNotFound, "x", "no match in repository")
	if Is(err, ErrIntegrity) || Is(err, ErrSchema) || Is(err, ErrDownloadExhausted) {
		t.Errorf("Expected not-found error to match only ErrNotFound")
	}
}
