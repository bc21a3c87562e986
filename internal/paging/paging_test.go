// VoyageCare - Maritime Crew Health Management
// Copyright 2026 VoyageCare Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/voyagecare/voyagecare

package paging

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClamp(t *testing.T) {
	tests := []struct {
		name string
		in   Params
		want Params
	}{
		{"zero values get defaults", Params{}, Params{Page: 1, Limit: 20}},
		{"negative page resets", Params{Page: -3, Limit: 10}, Params{Page: 1, Limit: 10}},
		{"limit capped at max", Params{Page: 2, Limit: 500}, Params{Page: 2, Limit: 100}},
		{"valid params untouched", Params{Page: 4, Limit: 50}, Params{Page: 4, Limit: 50}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.Clamp(20, 100))
		})
	}
}

func TestPages(t *testing.T) {
	assert.Equal(t, 0, Pages(0, 20))
	assert.Equal(t, 1, Pages(1, 20))
	assert.Equal(t, 1, Pages(20, 20))
	assert.Equal(t, 2, Pages(21, 20))
	assert.Equal(t, 0, Pages(10, 0))
}

func TestSlice(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	assert.Equal(t, []int{1, 2}, Slice(items, Params{Page: 1, Limit: 2}))
	assert.Equal(t, []int{3, 4}, Slice(items, Params{Page: 2, Limit: 2}))
	assert.Equal(t, []int{5}, Slice(items, Params{Page: 3, Limit: 2}))
	assert.Empty(t, Slice(items, Params{Page: 4, Limit: 2}))
	assert.Equal(t, items, Slice(items, Params{Page: 1, Limit: 50}))
}
