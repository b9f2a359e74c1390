// Copyright © 2025 Nicholas Fedor
// SPDX-License-Identifier: AGPL-3.0-or-later

package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateFilePath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		path        string
		expectError bool
		errorType   error
	}{
		{name: "valid relative path", path: "studies/1/series/2/image.dcm", expectError: false},
		{name: "valid single component", path: "image.dcm", expectError: false},
		{name: "empty path", path: "", expectError: true, errorType: ErrPathEmpty},
		{name: "absolute path", path: "/etc/passwd", expectError: true, errorType: ErrPathAbsolute},
		{name: "parent directory reference", path: "../../etc/passwd", expectError: true, errorType: ErrPathContainsInvalid},
		{name: "embedded parent reference", path: "studies/../../../etc/passwd", expectError: true, errorType: ErrPathContainsInvalid},
		{name: "null byte", path: "studies/image.dcm\x00.png", expectError: true, errorType: ErrPathContainsInvalid},
		{name: "backslash", path: "studies\\image.dcm", expectError: true, errorType: ErrPathContainsInvalid},
		{name: "invalid UTF-8", path: "studies/\xFFimage.dcm", expectError: true, errorType: ErrPathContainsInvalid},
		{
			name:        "too long",
			path:        strings.Repeat("a", MaxPathLength+1),
			expectError: true,
			errorType:   ErrPathTooLong,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			err := ValidateFilePath(testCase.path)

			if testCase.expectError {
				require.Error(t, err)

				if testCase.errorType != nil {
					require.ErrorIs(t, err, testCase.errorType)
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateDirectoryPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		path        string
		expectError bool
	}{
		{name: "valid directory", path: "studies/1/series/2", expectError: false},
		{name: "wildcard asterisk", path: "studies/*", expectError: true},
		{name: "wildcard question mark", path: "studies/img?.dcm", expectError: true},
		{name: "absolute directory", path: "/var/data", expectError: true},
		{name: "traversal", path: "../escape", expectError: true},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			err := ValidateDirectoryPath(testCase.path)

			if testCase.expectError {
				require.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateExtractRequestPaths(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name                 string
		dicomFilePath        string
		outputPath           string
		extractionDirectory  string
		expectError          bool
		errorContainsField   string
	}{
		{
			name:                "all valid",
			dicomFilePath:       "studies/1/image.dcm",
			outputPath:          "out/image.dcm",
			extractionDirectory: "studies/1",
			expectError:         false,
		},
		{
			name:               "bad dicom path",
			dicomFilePath:      "/abs/path.dcm",
			outputPath:         "out/image.dcm",
			extractionDirectory: "studies/1",
			expectError:        true,
			errorContainsField: "dicomFilePath",
		},
		{
			name:                "bad output path",
			dicomFilePath:       "studies/1/image.dcm",
			outputPath:          "../out/image.dcm",
			extractionDirectory: "studies/1",
			expectError:         true,
			errorContainsField:  "outputPath",
		},
		{
			name:                "bad extraction directory",
			dicomFilePath:       "studies/1/image.dcm",
			outputPath:          "out/image.dcm",
			extractionDirectory: "studies/*",
			expectError:         true,
			errorContainsField:  "extractionDirectory",
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			err := ValidateExtractRequestPaths(testCase.dicomFilePath, testCase.outputPath, testCase.extractionDirectory)

			if testCase.expectError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), testCase.errorContainsField)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
