// Copyright © 2025 Nicholas Fedor
// SPDX-License-Identifier: AGPL-3.0-or-later

package backend

import "errors"

// ErrToolPathMissing indicates the configured external tool does not exist
// at construction time. Construction fails fast rather than waiting for the
// first request to discover a misconfigured deployment.
var ErrToolPathMissing = errors.New("external anonymiser tool path does not exist")
