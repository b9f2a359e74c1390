// Copyright © 2025 Nicholas Fedor
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package validation provides input validation for the relative paths carried
// on an incoming extraction request, guarding against traversal and other
// shapes that should never reach the filesystem layer.
package validation

import (
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// ValidateFilePath validates a relative file path for security and correctness.
// It rejects empty paths, absolute paths, parent-directory references, null
// bytes, backslashes, and invalid UTF-8 — the shape a request's dicomFilePath
// or outputPath must have before it is ever joined onto a filesystem root.
func ValidateFilePath(path string) error {
	if path == "" {
		return ErrPathEmpty
	}

	if len(path) > MaxPathLength {
		return fmt.Errorf("file path too long (%d characters): %w", len(path), ErrPathTooLong)
	}

	if filepath.IsAbs(path) {
		return fmt.Errorf("absolute path not allowed: %s: %w", sanitizePath(path), ErrPathAbsolute)
	}

	if strings.Contains(path, "..") {
		return fmt.Errorf("path contains parent directory references: %s: %w", sanitizePath(path), ErrPathContainsInvalid)
	}

	if strings.Contains(path, "\x00") {
		return fmt.Errorf("path contains null bytes: %s: %w", sanitizePath(path), ErrPathContainsInvalid)
	}

	if strings.Contains(path, "\\") {
		return fmt.Errorf("path contains backslashes: %s: %w", sanitizePath(path), ErrPathContainsInvalid)
	}

	if !utf8.ValidString(path) {
		return fmt.Errorf("path contains invalid UTF-8: %s: %w", sanitizePath(path), ErrPathContainsInvalid)
	}

	return nil
}

// ValidateDirectoryPath validates a relative directory path.
// It performs file path validation plus directory-specific checks.
func ValidateDirectoryPath(dirPath string) error {
	err := ValidateFilePath(dirPath)
	if err != nil {
		return fmt.Errorf("directory path validation failed: %w", err)
	}

	if strings.Contains(dirPath, "*") || strings.Contains(dirPath, "?") {
		return fmt.Errorf("directory path contains wildcards: %s: %w", dirPath, ErrDirectoryInvalid)
	}

	return nil
}

// ValidateExtractRequestPaths validates the relative paths carried on an
// extraction request: the source DICOM path, the destination output path,
// and the extraction directory the job is scoped to. Each is validated
// independently with ValidateFilePath/ValidateDirectoryPath so a caller gets
// back the specific field that failed.
func ValidateExtractRequestPaths(dicomFilePath, outputPath, extractionDirectory string) error {
	if err := ValidateFilePath(dicomFilePath); err != nil {
		return fmt.Errorf("dicomFilePath: %w", err)
	}

	if err := ValidateFilePath(outputPath); err != nil {
		return fmt.Errorf("outputPath: %w", err)
	}

	if err := ValidateDirectoryPath(extractionDirectory); err != nil {
		return fmt.Errorf("extractionDirectory: %w", err)
	}

	return nil
}

// sanitizePath returns a sanitized representation of the path for error messages.
// It returns the basename to provide context without exposing full filesystem paths.
func sanitizePath(path string) string {
	return filepath.Base(path)
}
