// Copyright © 2025 Nicholas Fedor
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package backend provides the anonymisation backends an AnonymiseWorker
// delegates to: the primary (pixel/tag-level) backend, injected as a black
// box, and an external-tool backend for modalities that require spawning a
// separate executable, selected by a modality router.
package backend

import (
	"time"

	"github.com/nicholas-fedor/dicom-extract-worker/internal/exec"
	"github.com/nicholas-fedor/dicom-extract-worker/internal/filesystem"
	"github.com/nicholas-fedor/dicom-extract-worker/internal/model"
)

// Backend transforms a source DICOM file into an anonymised destination.
// It never returns a Go error: any failure, including spawn/IO exceptions,
// is reported as a non-Anonymised status with a diagnostic message, since
// that is what the worker forwards to the caller.
type Backend interface {
	Anonymise(src, dst, modality string) (model.Status, string)
}

// BackendFunc adapts a plain function to the Backend interface, letting a
// caller plug in the concrete pixel/tag-anonymisation implementation
// without this package depending on it.
type BackendFunc func(src, dst, modality string) (model.Status, string)

// Anonymise calls f.
func (f BackendFunc) Anonymise(src, dst, modality string) (model.Status, string) {
	return f(src, dst, modality)
}

// ExternalToolRunner spawns a configured executable to anonymise a single
// file, enforcing a wall-clock timeout and classifying the outcome from
// the exit code and destination existence.
type ExternalToolRunner struct {
	fs       filesystem.FileSystem
	executor exec.CommandExecutor
	toolPath string
	timeout  time.Duration
}

// Router dispatches by modality to either the external-tool backend (for
// "XA", when configured) or the primary backend.
type Router struct {
	primary  Backend
	external Backend
}

// NewRouter creates a Router. external may be nil when no external tool is
// configured, in which case every modality falls through to primary.
func NewRouter(primary, external Backend) *Router {
	return &Router{primary: primary, external: external}
}
