// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: keyframes/batch.go
// Summary: Installer contract and the per-cycle batch accumulator.
// Usage: Particle owners collect rule text into a Batch and install it in one call.

package keyframes

import "strings"

// Installer makes rule text visible to the renderer. Installing under a key
// that already exists replaces the previous text.
type Installer interface {
	InstallOrReplace(key, ruleText string)
}

// Batch accumulates rule texts generated during one cycle.
type Batch struct {
	rules []string
}

// NewBatch returns a batch sized for n rules.
func NewBatch(n int) *Batch {
	return &Batch{rules: make([]string, 0, n)}
}

// Add appends one rule text.
func (b *Batch) Add(ruleText string) {
	b.rules = append(b.rules, ruleText)
}

// Len reports the number of accumulated rules.
func (b *Batch) Len() int {
	return len(b.rules)
}

// Rules returns the accumulated rule texts.
func (b *Batch) Rules() []string {
	return b.rules
}

// Install writes every accumulated rule under groupKey with a single
// installer call.
func (b *Batch) Install(inst Installer, groupKey string) {
	InstallBatch(inst, groupKey, b.rules)
}

// InstallBatch concatenates ruleTexts into one block and installs it under
// groupKey. Exactly one installer call is made regardless of len(ruleTexts).
func InstallBatch(inst Installer, groupKey string, ruleTexts []string) {
	inst.InstallOrReplace(groupKey, strings.Join(ruleTexts, "\n"))
}
