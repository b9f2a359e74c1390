// Copyright © 2025 Nicholas Fedor
// SPDX-License-Identifier: AGPL-3.0-or-later

package pool

import (
	"errors"
	"fmt"
)

// ErrHashCandidate indicates failure to hash the candidate file.
var ErrHashCandidate = errors.New("failed to hash candidate file")

// ErrPublishBlob indicates failure to publish a blob into the pool.
var ErrPublishBlob = errors.New("failed to publish blob into pool")

// ErrLinkDestination indicates failure to symlink the destination to the pooled blob.
var ErrLinkDestination = errors.New("failed to link destination to pooled blob")

// Error represents a pool operation failure with contextual information,
// mirroring the phase-tagged error style used across the worker's other
// multi-step components.
type Error struct {
	Phase     string // "hash", "publish", "link"
	Path      string
	Operation string
	Err       error
}

// Error implements the error interface for Error.
func (e *Error) Error() string {
	return fmt.Sprintf("pool operation failed at %s phase: operation=%s path=%s: %v",
		e.Phase, e.Operation, e.Path, e.Err)
}

// Unwrap returns the underlying error for compatibility with errors.Is and errors.As.
func (e *Error) Unwrap() error {
	return e.Err
}
