// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package version holds build identification for the application.
package version

// Version is the application version, overridable at build time via
// -ldflags "-X github.com/azure-estates/estates-go/internal/version.Version=...".
var Version = "1.0.0"
