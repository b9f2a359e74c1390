// Copyright © 2025 Nicholas Fedor
// SPDX-License-Identifier: AGPL-3.0-or-later

package filesystem

import (
	"errors"
	"fmt"
	"os"
)

// ErrStatFile indicates failure to stat a file.
var ErrStatFile = errors.New("failed to stat file")

// ErrOpenFile indicates failure to open a file.
var ErrOpenFile = errors.New("failed to open file")

// ErrCreateFile indicates failure to create a file.
var ErrCreateFile = errors.New("failed to create file")

// ErrRemoveAll indicates failure to remove all.
var ErrRemoveAll = errors.New("failed to remove all")

// ErrCreateDir indicates failure to create a directory.
var ErrCreateDir = errors.New("failed to create directory")

// ErrCreateTempDir indicates failure to create temporary directory.
var ErrCreateTempDir = errors.New("failed to create temporary directory")

// ErrCreateSymlink indicates failure to create a symlink.
var ErrCreateSymlink = errors.New("failed to create symlink")

// ErrRename indicates failure to rename (move) a file.
var ErrRename = errors.New("failed to rename file")

// sentinelFor maps an operation name to the sentinel errors.Is callers should
// match against, so FileOperationError stays checkable without exposing its
// internal Operation string as part of the package's API.
func sentinelFor(operation string) error {
	switch operation {
	case "stat":
		return ErrStatFile
	case "open":
		return ErrOpenFile
	case "create":
		return ErrCreateFile
	case "removeAll":
		return ErrRemoveAll
	case "mkdirAll":
		return ErrCreateDir
	case "mkdirTemp":
		return ErrCreateTempDir
	case "symlink":
		return ErrCreateSymlink
	case "rename":
		return ErrRename
	default:
		return nil
	}
}

// FileOperationError represents file operation failures with contextual information.
type FileOperationError struct {
	Path        string
	Operation   string
	Permissions os.FileMode
	Extra       string
	Err         error
}

// Error implements the error interface for FileOperationError.
func (e *FileOperationError) Error() string {
	switch e.Operation {
	case "stat":
		return fmt.Sprintf("failed to stat file %q: %v", e.Path, e.Err)
	case "open":
		return fmt.Sprintf("failed to open file %q: %v", e.Path, e.Err)
	case "create":
		return fmt.Sprintf("failed to create file %q: %v", e.Path, e.Err)
	case "removeAll":
		return fmt.Sprintf("failed to remove all at path %q: %v", e.Path, e.Err)
	case "mkdirAll":
		return fmt.Sprintf("failed to create directory %q: %v", e.Path, e.Err)
	case "mkdirTemp":
		return fmt.Sprintf("failed to create temporary directory in %q: %v", e.Path, e.Err)
	case "symlink":
		return fmt.Sprintf("failed to create symlink from %q to %q: %v", e.Path, e.Extra, e.Err)
	case "rename":
		return fmt.Sprintf("failed to rename %q to %q: %v", e.Path, e.Extra, e.Err)
	default:
		return fmt.Sprintf("file operation failed: %v", e.Err)
	}
}

// Unwrap exposes both the operation's sentinel and the underlying cause, so
// callers can match either errors.Is(err, filesystem.ErrStatFile) or a more
// specific wrapped error (e.g. os.ErrNotExist) from the same value.
func (e *FileOperationError) Unwrap() []error {
	sentinel := sentinelFor(e.Operation)
	if sentinel == nil {
		return []error{e.Err}
	}

	return []error{sentinel, e.Err}
}
