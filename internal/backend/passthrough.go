// Copyright © 2025 Nicholas Fedor
// SPDX-License-Identifier: AGPL-3.0-or-later

package backend

import (
	"fmt"
	"io"

	"github.com/nicholas-fedor/dicom-extract-worker/internal/filesystem"
	"github.com/nicholas-fedor/dicom-extract-worker/internal/model"
)

// PassthroughBackend is a stand-in primary backend: it writes dst as a
// verbatim copy of src and always reports Anonymised. The real pixel- and
// tag-level anonymisation logic is a pluggable black box outside this
// repository's scope; this implementation lets the worker, router and CLI
// replay tool run end to end without one.
type PassthroughBackend struct {
	fs filesystem.FileSystem
}

// NewPassthroughBackend constructs a PassthroughBackend over fs.
func NewPassthroughBackend(fs filesystem.FileSystem) *PassthroughBackend {
	return &PassthroughBackend{fs: fs}
}

// Anonymise implements Backend. modality is accepted for interface
// compliance but unused: this backend does not branch on it.
func (b *PassthroughBackend) Anonymise(src, dst, _ string) (model.Status, string) {
	source, err := b.fs.Open(src)
	if err != nil {
		return model.StatusErrorWontRetry, fmt.Sprintf("passthrough backend failed to open source: %v", err)
	}
	defer func() { _ = source.Close() }()

	destination, err := b.fs.Create(dst)
	if err != nil {
		return model.StatusErrorWontRetry, fmt.Sprintf("passthrough backend failed to create destination: %v", err)
	}

	_, err = io.Copy(destination, source)
	closeErr := destination.Close()

	if err != nil {
		return model.StatusErrorWontRetry, fmt.Sprintf("passthrough backend failed to copy: %v", err)
	}

	if closeErr != nil {
		return model.StatusErrorWontRetry, fmt.Sprintf("passthrough backend failed to finalize destination: %v", closeErr)
	}

	return model.StatusAnonymised, ""
}
