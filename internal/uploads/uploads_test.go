// VoyageCare - Maritime Crew Health Management
// Copyright 2026 VoyageCare Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/voyagecare/voyagecare

package uploads

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveAndResolve(t *testing.T) {
	m, err := NewManager(t.TempDir(), 1024)
	require.NoError(t, err)

	att, err := m.Save("medical", "scan.PDF", "application/pdf", strings.NewReader("pdf-bytes"))
	require.NoError(t, err)

	assert.Equal(t, "scan.PDF", att.Filename)
	assert.True(t, strings.HasPrefix(att.StoredPath, "medical/"))
	assert.True(t, strings.HasSuffix(att.StoredPath, ".pdf"))
	assert.Equal(t, int64(9), att.SizeBytes)

	name := strings.TrimPrefix(att.StoredPath, "medical/")
	path, err := m.Resolve("medical", name)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "pdf-bytes", string(data))
}

func TestSaveRejectsOversized(t *testing.T) {
	m, err := NewManager(t.TempDir(), 4)
	require.NoError(t, err)

	_, err = m.Save("medical", "big.bin", "", strings.NewReader("too large"))
	assert.ErrorIs(t, err, ErrTooLarge)
}

func TestSaveAtCapSucceeds(t *testing.T) {
	m, err := NewManager(t.TempDir(), 4)
	require.NoError(t, err)

	att, err := m.Save("medical", "ok.bin", "", strings.NewReader("1234"))
	require.NoError(t, err)
	assert.Equal(t, int64(4), att.SizeBytes)
}

func TestSaveUnknownFeature(t *testing.T) {
	m, err := NewManager(t.TempDir(), 1024)
	require.NoError(t, err)

	_, err = m.Save("secrets", "x.txt", "", strings.NewReader("x"))
	assert.ErrorIs(t, err, ErrUnknownFeature)
}

func TestResolveRejectsTraversal(t *testing.T) {
	m, err := NewManager(t.TempDir(), 1024)
	require.NoError(t, err)

	_, err = m.Resolve("medical", "../announcements/x.txt")
	assert.Error(t, err)
	_, err = m.Resolve("medical", ".hidden")
	assert.Error(t, err)
}
