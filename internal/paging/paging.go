// VoyageCare - Maritime Crew Health Management
// Copyright 2026 VoyageCare Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/voyagecare/voyagecare

// Package paging holds the page/limit plumbing shared by every list endpoint.
package paging

// Params is the page/limit pair parsed from a list request.
type Params struct {
	Page  int
	Limit int
}

// Clamp normalizes the params against the configured defaults: page starts at
// 1, limit falls back to defaultLimit and is capped at maxLimit.
func (p Params) Clamp(defaultLimit, maxLimit int) Params {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = defaultLimit
	}
	if maxLimit > 0 && p.Limit > maxLimit {
		p.Limit = maxLimit
	}
	return p
}

// Pages returns the number of pages a total of items spans at the given limit.
func Pages(total, limit int) int {
	if limit < 1 || total < 1 {
		return 0
	}
	return (total + limit - 1) / limit
}

// Slice returns the window of items for the page described by p, which must
// already be clamped.
func Slice[T any](items []T, p Params) []T {
	start := (p.Page - 1) * p.Limit
	if start >= len(items) {
		return []T{}
	}
	end := start + p.Limit
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
