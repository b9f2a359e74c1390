// Copyright © 2025 Nicholas Fedor
// SPDX-License-Identifier: AGPL-3.0-or-later

package hasher

import (
	"crypto/sha256"
	"encoding/hex"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nicholas-fedor/dicom-extract-worker/internal/filesystem"
)

func TestHasher_HashFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "image.dcm")
	content := []byte("fake dicom bytes")

	fs := &filesystem.OSFileSystem{}
	w, err := fs.Create(path)
	require.NoError(t, err)
	_, err = w.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	h := New(fs)
	digest, err := h.HashFile(path)
	require.NoError(t, err)

	sum := sha256.Sum256(content)
	assert.Equal(t, hex.EncodeToString(sum[:]), digest)
}

func TestHasher_HashFile_Missing(t *testing.T) {
	t.Parallel()

	fs := &filesystem.OSFileSystem{}
	h := New(fs)

	_, err := h.HashFile(filepath.Join(t.TempDir(), "missing.dcm"))
	require.Error(t, err)
}

func TestHasher_HashFile_Deterministic(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "a.dcm")

	fs := &filesystem.OSFileSystem{}
	w, err := fs.Create(path)
	require.NoError(t, err)
	_, err = w.Write([]byte("same bytes"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	h := New(fs)

	first, err := h.HashFile(path)
	require.NoError(t, err)

	second, err := h.HashFile(path)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
