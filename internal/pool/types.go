// Copyright © 2025 Nicholas Fedor
// SPDX-License-Identifier: AGPL-3.0-or-later

package pool

import (
	"golang.org/x/sync/singleflight"

	"github.com/nicholas-fedor/dicom-extract-worker/internal/filesystem"
)

// Hasher computes a content digest for a file. Satisfied by *hasher.Hasher.
type Hasher interface {
	HashFile(path string) (string, error)
}

// Manager deduplicates extracted files into a content-addressed pool keyed
// by SHA-256 digest, then symlinks the caller's requested destination path
// to the pooled blob.
type Manager struct {
	fs       filesystem.FileSystem
	hasher   Hasher
	poolRoot string
	group    singleflight.Group
}

// New creates a Manager rooted at poolRoot.
func New(fs filesystem.FileSystem, hasher Hasher, poolRoot string) *Manager {
	return &Manager{
		fs:       fs,
		hasher:   hasher,
		poolRoot: poolRoot,
		group:    singleflight.Group{},
	}
}
