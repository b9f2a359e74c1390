// Copyright © 2025 Nicholas Fedor
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package worker implements the per-message extraction state machine
// shared by the copier and anonymiser variants: validate the request,
// resolve and guard the source file, materialise the output directly or
// through the content-addressed pool, then publish a status and
// acknowledge the delivery.
package worker

import (
	"github.com/nicholas-fedor/dicom-extract-worker/internal/backend"
	"github.com/nicholas-fedor/dicom-extract-worker/internal/filesystem"
	"github.com/nicholas-fedor/dicom-extract-worker/internal/model"
)

// Kind is the closed set of worker variants.
type Kind int

const (
	// KindCopy performs verbatim byte copies.
	KindCopy Kind = iota
	// KindAnonymise delegates materialisation to a Backend.
	KindAnonymise
)

// StatusPublisher sends a status message on a routing key. External to the
// worker: transport, serialization and broker binding are out of scope here.
type StatusPublisher interface {
	Publish(status model.ExtractStatus, routingKey string) error
}

// MessageAcknowledger finalises a delivery. External to the worker for the
// same reason as StatusPublisher.
type MessageAcknowledger interface {
	Ack(tag model.DeliveryTag) error
}

// PoolLinker is the subset of pool.Manager the worker depends on, defined
// here so the worker is testable without a concrete pool implementation.
type PoolLinker interface {
	LinkInto(candidatePath, dstPath string, preserveCandidate bool) (string, error)
}

const directoryPermissions = 0o755

// ExtractionWorker is the per-message state machine. Construct one with
// NewCopyWorker or NewAnonymiseWorker; the Kind is fixed at construction.
type ExtractionWorker struct {
	kind      Kind
	fs        filesystem.FileSystem
	cfg       model.WorkerConfig
	backend   backend.Backend
	pool      PoolLinker
	publisher StatusPublisher
	ack       MessageAcknowledger
}
