// VoyageCare - Maritime Crew Health Management
// Copyright 2026 VoyageCare Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/voyagecare/voyagecare

// Package uploads stores uploaded files on local disk, one subdirectory per
// feature (medical, announcements, education). Stored names are regenerated
// from a UUID plus the original extension, so caller-supplied names never
// touch the filesystem.
package uploads

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/voyagecare/voyagecare/internal/models"
)

// ErrTooLarge is returned when an upload exceeds the configured size cap.
var ErrTooLarge = errors.New("upload exceeds maximum size")

// ErrUnknownFeature is returned for a feature outside the allow-list.
var ErrUnknownFeature = errors.New("unknown upload feature")

// Features is the allow-list of upload subdirectories.
var Features = []string{"medical", "announcements", "education"}

// Manager stores uploads under a base directory with a per-file size cap.
type Manager struct {
	baseDir  string
	maxBytes int64
}

// NewManager creates a manager rooted at baseDir, creating the feature
// subdirectories as needed.
func NewManager(baseDir string, maxBytes int64) (*Manager, error) {
	for _, feature := range Features {
		if err := os.MkdirAll(filepath.Join(baseDir, feature), 0o750); err != nil {
			return nil, fmt.Errorf("create upload dir %s: %w", feature, err)
		}
	}
	return &Manager{baseDir: baseDir, maxBytes: maxBytes}, nil
}

// ValidFeature reports whether feature is on the allow-list.
func ValidFeature(feature string) bool {
	for _, f := range Features {
		if f == feature {
			return true
		}
	}
	return false
}

// Save streams the upload to disk under the feature subdirectory and returns
// the attachment metadata. The reader is capped at the configured size;
// exceeding it aborts the write and removes the partial file.
func (m *Manager) Save(feature, filename, mimeType string, r io.Reader) (*models.Attachment, error) {
	if !ValidFeature(feature) {
		return nil, fmt.Errorf("%q: %w", feature, ErrUnknownFeature)
	}

	stored := uuid.New().String() + sanitizeExt(filename)
	path := filepath.Join(m.baseDir, feature, stored)

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o640)
	if err != nil {
		return nil, fmt.Errorf("create upload file: %w", err)
	}

	// Read one byte past the cap so an exactly-at-cap upload still succeeds.
	n, err := io.Copy(f, io.LimitReader(r, m.maxBytes+1))
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(path)
		return nil, fmt.Errorf("write upload: %w", err)
	}
	if n > m.maxBytes {
		_ = os.Remove(path)
		return nil, fmt.Errorf("%d bytes: %w", n, ErrTooLarge)
	}

	return &models.Attachment{
		Filename:   filepath.Base(filename),
		StoredPath: feature + "/" + stored,
		MimeType:   mimeType,
		SizeBytes:  n,
		UploadedAt: time.Now(),
	}, nil
}

// Resolve maps a feature/name pair to the on-disk path, rejecting anything
// that escapes the feature subdirectory.
func (m *Manager) Resolve(feature, name string) (string, error) {
	if !ValidFeature(feature) {
		return "", fmt.Errorf("%q: %w", feature, ErrUnknownFeature)
	}
	if name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		return "", os.ErrNotExist
	}

	path := filepath.Join(m.baseDir, feature, name)
	if _, err := os.Stat(path); err != nil {
		return "", err
	}
	return path, nil
}

// sanitizeExt extracts a safe lowercase extension from the original filename.
func sanitizeExt(filename string) string {
	ext := strings.ToLower(filepath.Ext(filepath.Base(filename)))
	if len(ext) > 10 || strings.ContainsAny(ext, "/\\") {
		return ""
	}
	return ext
}
