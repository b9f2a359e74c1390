// Copyright © 2025 Nicholas Fedor
// SPDX-License-Identifier: AGPL-3.0-or-later

package replay

import (
	"fmt"
	"sort"

	"github.com/nicholas-fedor/dicom-extract-worker/internal/cli"
	"github.com/nicholas-fedor/dicom-extract-worker/internal/model"
)

// FormatSummary renders a replay Summary plus per-status publish counts as a
// tree for terminal display.
func FormatSummary(summary Summary, counts map[model.Status]int) string {
	items := []string{
		fmt.Sprintf("Processed: %d", summary.Processed),
		fmt.Sprintf("Fatal: %d", summary.Fatals),
	}

	statuses := make([]model.Status, 0, len(counts))
	for status := range counts {
		statuses = append(statuses, status)
	}

	sort.Slice(statuses, func(i, j int) bool { return statuses[i] < statuses[j] })

	for _, status := range statuses {
		items = append(items, fmt.Sprintf("%s: %d", status, counts[status]))
	}

	return cli.TreeFormat("Replay summary", items)
}
