// Copyright © 2025 Nicholas Fedor
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package filesystem provides filesystem interface for dependency injection.
package filesystem

import (
	"io"
	"os"
)

// FileSystem abstracts the filesystem operations the extraction worker, the
// content-addressed pool, and the anonymisation backends actually perform.
type FileSystem interface {
	Stat(name string) (os.FileInfo, error)
	Open(name string) (io.ReadWriteCloser, error)
	Create(name string) (io.ReadWriteCloser, error)
	RemoveAll(path string) error
	MkdirAll(path string, perm os.FileMode) error
	MkdirTemp(dir, pattern string) (string, error)
	Symlink(oldname, newname string) error
	Rename(oldpath, newpath string) error
	IsNotExist(err error) bool
	IsExist(err error) bool
}

// OSFileSystem implements FileSystem using the standard os package.
type OSFileSystem struct{}
