// Copyright © 2025 Nicholas Fedor
// SPDX-License-Identifier: AGPL-3.0-or-later

package replay

import (
	"sync"

	"github.com/nicholas-fedor/dicom-extract-worker/internal/logger"
	"github.com/nicholas-fedor/dicom-extract-worker/internal/model"
	"github.com/nicholas-fedor/dicom-extract-worker/internal/worker"
)

// LoggingPublisher implements worker.StatusPublisher by logging each status
// instead of sending it to a broker.
type LoggingPublisher struct{}

// Publish logs status at info level and always succeeds.
func (LoggingPublisher) Publish(status model.ExtractStatus, routingKey string) error {
	logger.Infof("status job=%s project=%s status=%s key=%s output=%q message=%q",
		status.JobID, status.Project, status.Status, routingKey, status.OutputFilePath, status.StatusMessage)

	return nil
}

// LoggingAcknowledger implements worker.MessageAcknowledger by logging the
// delivery tag instead of acking a broker channel.
type LoggingAcknowledger struct{}

// Ack logs the delivery tag at debug level and always succeeds.
func (LoggingAcknowledger) Ack(tag model.DeliveryTag) error {
	logger.Debugf("ack delivery %d", tag)

	return nil
}

// CountingPublisher wraps a worker.StatusPublisher and tallies how many
// statuses of each kind passed through it, so a replay run can report a
// summary without the worker itself knowing about batch-level bookkeeping.
type CountingPublisher struct {
	inner  worker.StatusPublisher
	mutex  sync.Mutex
	counts map[model.Status]int
}

// NewCountingPublisher wraps inner, which receives every Publish call
// unmodified before the count is recorded.
func NewCountingPublisher(inner worker.StatusPublisher) *CountingPublisher {
	return &CountingPublisher{inner: inner, counts: map[model.Status]int{}}
}

// Publish implements worker.StatusPublisher.
func (c *CountingPublisher) Publish(status model.ExtractStatus, routingKey string) error {
	err := c.inner.Publish(status, routingKey)

	c.mutex.Lock()
	c.counts[status.Status]++
	c.mutex.Unlock()

	return err
}

// Counts returns a snapshot of the per-status tallies seen so far.
func (c *CountingPublisher) Counts() map[model.Status]int {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	out := make(map[model.Status]int, len(c.counts))
	for status, count := range c.counts {
		out[status] = count
	}

	return out
}
