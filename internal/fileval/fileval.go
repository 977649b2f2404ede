// Package fileval provides checks run on a Dockerfile before its contents are
// validated: oversized files and files with the executable bit are rejected.
package fileval

import (
	"fmt"
	"os"
)

// FileTooLargeError is returned when a file exceeds the configured maximum size.
type FileTooLargeError struct {
	Path    string
	Size    int64
	MaxSize int64
}

func (e *FileTooLargeError) Error() string {
	return fmt.Sprintf(
		"file too large (%d > %d bytes); increase [file-validation] max-file-size in .docklint.toml to override",
		e.Size, e.MaxSize,
	)
}

// ExecutableFileError is returned when a Dockerfile has the executable bit set.
type ExecutableFileError struct {
	Path string
}

func (e *ExecutableFileError) Error() string {
	return "unexpected executable Dockerfile"
}

// ValidateFile runs the pre-read checks on a file:
//  1. Maximum size check (when maxSize > 0)
//  2. Executable-bit check (Unix only)
func ValidateFile(path string, maxSize int64) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}

	if maxSize > 0 && info.Size() > maxSize {
		return &FileTooLargeError{Path: path, Size: info.Size(), MaxSize: maxSize}
	}

	return checkExecutable(info, path)
}

// ReadFile validates path and returns its contents.
func ReadFile(path string, maxSize int64) ([]byte, error) {
	if err := ValidateFile(path, maxSize); err != nil {
		return nil, err
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return content, nil
}
