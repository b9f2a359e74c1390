// Copyright © 2025 Nicholas Fedor
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package security performs the worker's startup self-audit: it never
// elevates or drops privileges, but it logs loudly if it finds itself
// running as root, since a compromised anonymisation backend would then
// have unrestricted access to the host.
package security

import "github.com/nicholas-fedor/dicom-extract-worker/internal/logger"

// AuditLogger records the outcome of the startup privilege audit.
type AuditLogger interface {
	LogRunningAsRoot(euid, uid int)
	LogRunningUnprivileged(euid int)
}

// DefaultAuditLogger implements AuditLogger using the package logger.
type DefaultAuditLogger struct{}

// LogRunningAsRoot warns that the process has root privileges.
func (DefaultAuditLogger) LogRunningAsRoot(euid, uid int) {
	logger.Warnf("worker started with root privileges (euid=%d uid=%d); "+
		"this is not required and widens the blast radius of a compromised backend", euid, uid)
}

// LogRunningUnprivileged records that the process started as a non-root user.
func (DefaultAuditLogger) LogRunningUnprivileged(euid int) {
	logger.Debugf("worker started unprivileged (euid=%d)", euid)
}

// StartupSecurityCheck audits the process's effective UID at startup and
// logs a warning when running as root. It never refuses to start: the
// decision to run as root, if made, belongs to the deployment, not the
// worker.
func StartupSecurityCheck(inspector PrivilegeInspector, audit AuditLogger) {
	euid := inspector.Geteuid()
	if euid == 0 {
		audit.LogRunningAsRoot(euid, inspector.Getuid())

		return
	}

	audit.LogRunningUnprivileged(euid)
}
