// VoyageCare - Maritime Crew Health Management
// Copyright 2026 VoyageCare Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/voyagecare/voyagecare

package auth

import (
	"sync"
	"time"
)

// Lockout tracks failed login attempts per username and blocks further
// attempts once the threshold is reached within the window. Entries reset on
// successful login or when the window passes.
type Lockout struct {
	mu          sync.Mutex
	failures    map[string]*failureEntry
	maxFailures int
	window      time.Duration
}

type failureEntry struct {
	count     int
	firstSeen time.Time
}

// NewLockout creates a lockout tracker. maxFailures <= 0 disables locking.
func NewLockout(maxFailures int, window time.Duration) *Lockout {
	if window <= 0 {
		window = 5 * time.Minute
	}
	return &Lockout{
		failures:    make(map[string]*failureEntry),
		maxFailures: maxFailures,
		window:      window,
	}
}

// IsLocked reports whether the username is currently locked out.
func (l *Lockout) IsLocked(username string) bool {
	if l.maxFailures <= 0 {
		return false
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	entry, ok := l.failures[username]
	if !ok {
		return false
	}
	if time.Since(entry.firstSeen) > l.window {
		delete(l.failures, username)
		return false
	}
	return entry.count >= l.maxFailures
}

// RecordFailure records a failed login attempt for the username.
func (l *Lockout) RecordFailure(username string) {
	if l.maxFailures <= 0 {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	entry, ok := l.failures[username]
	if !ok || time.Since(entry.firstSeen) > l.window {
		l.failures[username] = &failureEntry{count: 1, firstSeen: time.Now()}
		return
	}
	entry.count++
}

// Reset clears the failure record for the username, typically on successful
// login.
func (l *Lockout) Reset(username string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.failures, username)
}
