// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package gate decides whether a visitor may see the full detail view of a
// project. Every project starts locked; submitting an inquiry for it unlocks
// it permanently. There is no relock transition.
package gate

import (
	"context"

	"github.com/azure-estates/estates-go/internal/store"
)

// State is the visibility state of one project for the current visitor.
type State int

const (
	// StateLocked hides pricing, configuration sizes and gallery extras
	// behind the inquiry form.
	StateLocked State = iota

	// StateUnlocked grants full detail access.
	StateUnlocked
)

func (s State) String() string {
	if s == StateUnlocked {
		return "unlocked"
	}
	return "locked"
}

// Unlocked reports whether the full detail view is visible.
func (s State) Unlocked() bool { return s == StateUnlocked }

// Gate evaluates project visibility from the persisted enquired set.
type Gate struct {
	store *store.Store
}

func New(s *store.Store) *Gate {
	return &Gate{store: s}
}

// For returns the visibility state of the project with the given id.
// Unknown ids evaluate to locked, the same as any project the visitor has
// not enquired about.
func (g *Gate) For(ctx context.Context, projectID string) State {
	if g.store.HasEnquired(ctx, projectID) {
		return StateUnlocked
	}
	return StateLocked
}

// Unlock transitions the project to unlocked. Calling it again for an
// already unlocked project keeps the state unchanged.
func (g *Gate) Unlock(ctx context.Context, projectID string) error {
	return g.store.MarkEnquired(ctx, projectID)
}
