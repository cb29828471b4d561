// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package auth

import (
	"fmt"
	"math/rand/v2"
)

// GenerateCode returns a six digit recovery code in [100000, 999999].
// The code is shown to the advisor directly; no mail is sent in this
// demonstration flow.
func GenerateCode() string {
	return fmt.Sprintf("%d", 100000+rand.IntN(900000))
}
