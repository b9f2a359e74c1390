// Copyright © 2025 Nicholas Fedor
// SPDX-License-Identifier: AGPL-3.0-or-later

package replay_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nicholas-fedor/dicom-extract-worker/internal/model"
	"github.com/nicholas-fedor/dicom-extract-worker/internal/replay"
)

func TestFormatSummary(t *testing.T) {
	t.Parallel()

	out := replay.FormatSummary(replay.Summary{Processed: 3, Fatals: 1}, map[model.Status]int{
		model.StatusCopied:     2,
		model.StatusFileMissing: 1,
	})

	assert.Contains(t, out, "Replay summary")
	assert.Contains(t, out, "Processed: 3")
	assert.Contains(t, out, "Fatal: 1")
	assert.Contains(t, out, "Copied: 2")
	assert.Contains(t, out, "FileMissing: 1")
}
