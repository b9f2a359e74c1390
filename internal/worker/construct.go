// Copyright © 2025 Nicholas Fedor
// SPDX-License-Identifier: AGPL-3.0-or-later

package worker

import (
	"github.com/nicholas-fedor/dicom-extract-worker/internal/backend"
	"github.com/nicholas-fedor/dicom-extract-worker/internal/filesystem"
	"github.com/nicholas-fedor/dicom-extract-worker/internal/model"
)

// NewCopyWorker builds a worker that materialises requests as bit-identical
// copies of the source. pool may be nil; pooled requests then fail with
// ErrPoolingNotConfigured rather than being silently written direct.
func NewCopyWorker(
	fs filesystem.FileSystem,
	cfg model.WorkerConfig,
	pool PoolLinker,
	publisher StatusPublisher,
	ack MessageAcknowledger,
) *ExtractionWorker {
	return &ExtractionWorker{
		kind:      KindCopy,
		fs:        fs,
		cfg:       cfg,
		pool:      pool,
		publisher: publisher,
		ack:       ack,
	}
}

// NewAnonymiseWorker builds a worker that delegates materialisation to be.
// pool may be nil, with the same behaviour as NewCopyWorker.
func NewAnonymiseWorker(
	fs filesystem.FileSystem,
	cfg model.WorkerConfig,
	be backend.Backend,
	pool PoolLinker,
	publisher StatusPublisher,
	ack MessageAcknowledger,
) *ExtractionWorker {
	return &ExtractionWorker{
		kind:      KindAnonymise,
		fs:        fs,
		cfg:       cfg,
		backend:   be,
		pool:      pool,
		publisher: publisher,
		ack:       ack,
	}
}
