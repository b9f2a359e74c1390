// Copyright © 2025 Nicholas Fedor
// SPDX-License-Identifier: AGPL-3.0-or-later

package backend

import "github.com/nicholas-fedor/dicom-extract-worker/internal/model"

const externalModality = "XA"

// Anonymise delegates to the external-tool backend when modality is "XA"
// and one is configured; otherwise it delegates to the primary backend.
// Modality matching is case-sensitive, matching the upper-case DICOM codes
// on the wire.
func (r *Router) Anonymise(src, dst, modality string) (model.Status, string) {
	if modality == externalModality && r.external != nil {
		return r.external.Anonymise(src, dst, modality)
	}

	return r.primary.Anonymise(src, dst, modality)
}
