// Copyright © 2025 Nicholas Fedor
// SPDX-License-Identifier: AGPL-3.0-or-later

package filesystem

import (
	"errors"
	"io"
	"os"
)

// Stat returns a FileInfo describing the named file.
func (fs *OSFileSystem) Stat(name string) (os.FileInfo, error) {
	info, err := os.Stat(name)
	if err != nil {
		return nil, &FileOperationError{Path: name, Operation: "stat", Permissions: 0, Extra: "", Err: err}
	}

	return info, nil
}

// Open opens the named file for reading.
func (fs *OSFileSystem) Open(name string) (io.ReadWriteCloser, error) {
	// #nosec G304 -- name is validated by caller
	file, err := os.Open(name)
	if err != nil {
		return nil, &FileOperationError{Path: name, Operation: "open", Permissions: 0, Extra: "", Err: err}
	}

	return file, nil
}

// Create creates the named file with mode 0666 (before umask), truncating it if it already exists.
func (fs *OSFileSystem) Create(name string) (io.ReadWriteCloser, error) {
	// #nosec G304 -- name is validated by caller
	file, err := os.Create(name)
	if err != nil {
		return nil, &FileOperationError{Path: name, Operation: "create", Permissions: 0, Extra: "", Err: err}
	}

	return file, nil
}

// RemoveAll removes path and any children it contains.
func (fs *OSFileSystem) RemoveAll(path string) error {
	err := os.RemoveAll(path)
	if err != nil {
		return &FileOperationError{Path: path, Operation: "removeAll", Permissions: 0, Extra: "", Err: err}
	}

	return nil
}

// MkdirAll creates a directory named path, along with any necessary parents, and returns nil, or else returns an error.
func (fs *OSFileSystem) MkdirAll(path string, perm os.FileMode) error {
	err := os.MkdirAll(path, perm)
	if err != nil {
		return &FileOperationError{Path: path, Operation: "mkdirAll", Permissions: perm, Extra: "", Err: err}
	}

	return nil
}

// MkdirTemp creates a new temporary directory in the directory dir and returns the pathname of the new directory.
func (fs *OSFileSystem) MkdirTemp(dir, pattern string) (string, error) {
	tempDir, err := os.MkdirTemp(dir, pattern)
	if err != nil {
		return "", &FileOperationError{Path: dir, Operation: "mkdirTemp", Permissions: 0, Extra: "", Err: err}
	}

	return tempDir, nil
}

// Symlink creates newname as a symbolic link to oldname.
func (fs *OSFileSystem) Symlink(oldname, newname string) error {
	err := os.Symlink(oldname, newname)
	if err != nil {
		return &FileOperationError{Path: oldname, Operation: "symlink", Permissions: 0, Extra: newname, Err: err}
	}

	return nil
}

// Rename renames (moves) oldpath to newpath, following os.Rename's
// atomic-on-same-filesystem semantics.
func (fs *OSFileSystem) Rename(oldpath, newpath string) error {
	err := os.Rename(oldpath, newpath)
	if err != nil {
		return &FileOperationError{Path: oldpath, Operation: "rename", Permissions: 0, Extra: newpath, Err: err}
	}

	return nil
}

// IsNotExist reports whether the given error is an os.IsNotExist error.
// It uses errors.Is to properly unwrap wrapped errors.
func (fs *OSFileSystem) IsNotExist(err error) bool {
	return errors.Is(err, os.ErrNotExist)
}

// IsExist reports whether the given error is an os.ErrExist error.
// Used to detect the benign loser side of a concurrent pool-publish race.
func (fs *OSFileSystem) IsExist(err error) bool {
	return errors.Is(err, os.ErrExist)
}
