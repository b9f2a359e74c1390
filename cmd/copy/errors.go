// Copyright © 2025 Nicholas Fedor
// SPDX-License-Identifier: AGPL-3.0-or-later

package copy

import "errors"

var errNotADirectory = errors.New("path is not a directory")
