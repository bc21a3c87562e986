// VoyageCare - Maritime Crew Health Management
// Copyright 2026 VoyageCare Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/voyagecare/voyagecare

package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voyagecare/voyagecare/internal/config"
)

func testSecurityConfig(timeout time.Duration) *config.SecurityConfig {
	return &config.SecurityConfig{
		JWTSecret:      "unit-test-secret-0123456789abcdef",
		SessionTimeout: timeout,
	}
}

func TestJWTManagerRequiresSecret(t *testing.T) {
	_, err := NewJWTManager(&config.SecurityConfig{SessionTimeout: time.Hour})
	assert.Error(t, err)
}

func TestTokenRoundtrip(t *testing.T) {
	m, err := NewJWTManager(testSecurityConfig(time.Hour))
	require.NoError(t, err)

	token, err := m.GenerateToken("u1", "doc", "Dr. Chen", "health", "crew-7")
	require.NoError(t, err)

	claims, err := m.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "doc", claims.Username)
	assert.Equal(t, "health", claims.Role)
	assert.Equal(t, "crew-7", claims.CrewID)
}

func TestTokenRejectedAfterExpiry(t *testing.T) {
	m, err := NewJWTManager(testSecurityConfig(-time.Minute))
	require.NoError(t, err)

	token, err := m.GenerateToken("u1", "doc", "", "health", "")
	require.NoError(t, err)

	_, err = m.ValidateToken(token)
	assert.Error(t, err)
}

func TestTokenRejectedWithWrongSecret(t *testing.T) {
	m1, err := NewJWTManager(testSecurityConfig(time.Hour))
	require.NoError(t, err)
	m2, err := NewJWTManager(&config.SecurityConfig{
		JWTSecret:      "a-completely-different-secret-key",
		SessionTimeout: time.Hour,
	})
	require.NoError(t, err)

	token, err := m1.GenerateToken("u1", "doc", "", "health", "")
	require.NoError(t, err)

	_, err = m2.ValidateToken(token)
	assert.Error(t, err)
}

func TestTokenRejectedWhenTampered(t *testing.T) {
	m, err := NewJWTManager(testSecurityConfig(time.Hour))
	require.NoError(t, err)

	token, err := m.GenerateToken("u1", "doc", "", "crew", "")
	require.NoError(t, err)

	_, err = m.ValidateToken(token + "x")
	assert.Error(t, err)
}

func TestPasswordHashRoundtrip(t *testing.T) {
	hash, err := HashPassword("correct horse battery")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse battery", hash)

	assert.True(t, CheckPassword(hash, "correct horse battery"))
	assert.False(t, CheckPassword(hash, "correct horse batteries"))
	assert.False(t, CheckPassword("not-a-hash", "correct horse battery"))
}

func TestLockoutThreshold(t *testing.T) {
	l := NewLockout(3, time.Minute)

	assert.False(t, l.IsLocked("doc"))
	l.RecordFailure("doc")
	l.RecordFailure("doc")
	assert.False(t, l.IsLocked("doc"))
	l.RecordFailure("doc")
	assert.True(t, l.IsLocked("doc"))

	// Other usernames are unaffected.
	assert.False(t, l.IsLocked("rating"))
}

func TestLockoutResetOnSuccess(t *testing.T) {
	l := NewLockout(2, time.Minute)

	l.RecordFailure("doc")
	l.RecordFailure("doc")
	require.True(t, l.IsLocked("doc"))

	l.Reset("doc")
	assert.False(t, l.IsLocked("doc"))
}

func TestLockoutWindowExpires(t *testing.T) {
	l := NewLockout(2, 20*time.Millisecond)

	l.RecordFailure("doc")
	l.RecordFailure("doc")
	require.True(t, l.IsLocked("doc"))

	time.Sleep(30 * time.Millisecond)
	assert.False(t, l.IsLocked("doc"))
}

func TestLockoutDisabledWhenThresholdZero(t *testing.T) {
	l := NewLockout(0, time.Minute)

	for i := 0; i < 10; i++ {
		l.RecordFailure("doc")
	}
	assert.False(t, l.IsLocked("doc"))
}
