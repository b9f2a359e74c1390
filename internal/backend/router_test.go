// Copyright © 2025 Nicholas Fedor
// SPDX-License-Identifier: AGPL-3.0-or-later

package backend

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nicholas-fedor/dicom-extract-worker/internal/model"
)

func TestRouter_RoutesXAToExternal(t *testing.T) {
	t.Parallel()

	var primaryCalled, externalCalled bool

	primary := BackendFunc(func(_, _, _ string) (model.Status, string) {
		primaryCalled = true

		return model.StatusAnonymised, ""
	})
	external := BackendFunc(func(_, _, _ string) (model.Status, string) {
		externalCalled = true

		return model.StatusAnonymised, ""
	})

	router := NewRouter(primary, external)

	status, _ := router.Anonymise("src", "dst", "XA")

	assert.Equal(t, model.StatusAnonymised, status)
	assert.True(t, externalCalled)
	assert.False(t, primaryCalled)
}

func TestRouter_FallsBackToPrimaryWithoutExternal(t *testing.T) {
	t.Parallel()

	var primaryCalled bool

	primary := BackendFunc(func(_, _, _ string) (model.Status, string) {
		primaryCalled = true

		return model.StatusAnonymised, ""
	})

	router := NewRouter(primary, nil)

	_, _ = router.Anonymise("src", "dst", "XA")

	assert.True(t, primaryCalled)
}

func TestRouter_NonXAGoesToPrimary(t *testing.T) {
	t.Parallel()

	var primaryCalled, externalCalled bool

	primary := BackendFunc(func(_, _, _ string) (model.Status, string) {
		primaryCalled = true

		return model.StatusAnonymised, ""
	})
	external := BackendFunc(func(_, _, _ string) (model.Status, string) {
		externalCalled = true

		return model.StatusAnonymised, ""
	})

	router := NewRouter(primary, external)

	_, _ = router.Anonymise("src", "dst", "CT")

	assert.True(t, primaryCalled)
	assert.False(t, externalCalled)
}

func TestRouter_CaseSensitiveModalityMatch(t *testing.T) {
	t.Parallel()

	var externalCalled bool

	primary := BackendFunc(func(_, _, _ string) (model.Status, string) {
		return model.StatusAnonymised, ""
	})
	external := BackendFunc(func(_, _, _ string) (model.Status, string) {
		externalCalled = true

		return model.StatusAnonymised, ""
	})

	router := NewRouter(primary, external)

	_, _ = router.Anonymise("src", "dst", "xa")

	assert.False(t, externalCalled)
}
