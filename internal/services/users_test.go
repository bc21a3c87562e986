// VoyageCare - Maritime Crew Health Management
// Copyright 2026 VoyageCare Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/voyagecare/voyagecare

package services

import (
	"context"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voyagecare/voyagecare/internal/auth"
	"github.com/voyagecare/voyagecare/internal/models"
	"github.com/voyagecare/voyagecare/internal/paging"
)

func newUserService(t *testing.T) *UserService {
	db, recorder, _ := newTestStore(t)
	return NewUserService(db, recorder)
}

func TestUserCreateHashesPasswordAndNormalizes(t *testing.T) {
	svc := newUserService(t)
	ctx := context.Background()

	user, err := svc.Create(ctx, CreateUserInput{
		Username: "  Jansen ",
		Email:    "Jansen@Vessel.example",
		Name:     "K. Jansen",
		Password: "seaworthy-pass",
		Role:     "quartermaster", // unknown role degrades to crew
	}, testActor)
	require.NoError(t, err)

	assert.Equal(t, "jansen", user.Username)
	assert.Equal(t, "jansen@vessel.example", user.Email)
	assert.Equal(t, models.RoleCrew, user.Role)
	assert.True(t, user.Active)
	assert.NotEqual(t, "seaworthy-pass", user.PasswordHash)
	assert.NotEmpty(t, user.PasswordHash)
}

func TestUserCreateDuplicateUsernameConflicts(t *testing.T) {
	svc := newUserService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateUserInput{Username: "jansen", Password: "x", Role: "crew"}, testActor)
	require.NoError(t, err)

	_, err = svc.Create(ctx, CreateUserInput{Username: "JANSEN", Password: "y", Role: "crew"}, testActor)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestPasswordHashPersistsAcrossReload(t *testing.T) {
	svc := newUserService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateUserInput{
		Username: "jansen", Password: "seaworthy-pass", Role: "crew",
	}, testActor)
	require.NoError(t, err)

	// Reload from the store rather than trusting the value Create returned.
	stored, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.PasswordHash, stored.PasswordHash)
	assert.True(t, auth.CheckPassword(stored.PasswordHash, "seaworthy-pass"))

	// The client projection never carries the hash.
	raw, err := json.Marshal(stored.Public())
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "passwordHash")
	assert.NotContains(t, string(raw), stored.PasswordHash)
}

func TestVerifyCredentials(t *testing.T) {
	svc := newUserService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateUserInput{
		Username: "jansen", Password: "seaworthy-pass", Role: "health",
	}, testActor)
	require.NoError(t, err)

	user, err := svc.VerifyCredentials(ctx, "jansen", "seaworthy-pass")
	require.NoError(t, err)
	assert.Equal(t, created.ID, user.ID)

	_, err = svc.VerifyCredentials(ctx, "jansen", "wrong")
	assert.ErrorIs(t, err, ErrBadCredentials)

	_, err = svc.VerifyCredentials(ctx, "nobody", "seaworthy-pass")
	assert.ErrorIs(t, err, ErrBadCredentials)
}

func TestVerifyCredentialsInactiveAccount(t *testing.T) {
	svc := newUserService(t)
	ctx := context.Background()

	user, err := svc.Create(ctx, CreateUserInput{Username: "jansen", Password: "pass", Role: "crew"}, testActor)
	require.NoError(t, err)

	inactive := false
	_, err = svc.Update(ctx, user.ID, UpdateUserInput{Active: &inactive}, testActor)
	require.NoError(t, err)

	_, err = svc.VerifyCredentials(ctx, "jansen", "pass")
	assert.ErrorIs(t, err, ErrBadCredentials)
}

func TestSetPasswordReplacesHash(t *testing.T) {
	svc := newUserService(t)
	ctx := context.Background()

	user, err := svc.Create(ctx, CreateUserInput{Username: "jansen", Password: "old", Role: "crew"}, testActor)
	require.NoError(t, err)

	require.NoError(t, svc.SetPassword(ctx, user.ID, "new", testActor))

	_, err = svc.VerifyCredentials(ctx, "jansen", "old")
	assert.ErrorIs(t, err, ErrBadCredentials)
	_, err = svc.VerifyCredentials(ctx, "jansen", "new")
	assert.NoError(t, err)
}

func TestUserProfileVersionStamped(t *testing.T) {
	svc := newUserService(t)
	ctx := context.Background()

	user, err := svc.Create(ctx, CreateUserInput{
		Username: "jansen", Password: "pass", Role: "crew", CrewID: "crew-1",
		Profile: &models.CrewProfile{Rank: "Bosun", BloodType: "O+"},
	}, testActor)
	require.NoError(t, err)

	require.NotNil(t, user.Profile)
	assert.Equal(t, models.CrewProfileVersion, user.Profile.Version)
	assert.Equal(t, "Bosun", user.Profile.Rank)
}

func TestUserListFiltersAndProjects(t *testing.T) {
	svc := newUserService(t)
	ctx := context.Background()

	for _, u := range []struct{ name, role string }{
		{"alpha", "health"}, {"bravo", "crew"}, {"charlie", "crew"},
	} {
		_, err := svc.Create(ctx, CreateUserInput{Username: u.name, Password: "x", Role: u.role}, testActor)
		require.NoError(t, err)
	}

	res, err := svc.List(ctx, UserFilter{Role: "crew", Page: paging.Params{Page: 1, Limit: 10}})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Total)
	assert.Equal(t, 2, res.ByRole["crew"])
	require.Len(t, res.Items, 2)
	// Ordered by username; PublicUser never carries the hash.
	assert.Equal(t, "bravo", res.Items[0].Username)
}

func TestEnsureAdminSeedsOnlyEmptyCollection(t *testing.T) {
	svc := newUserService(t)
	ctx := context.Background()

	require.NoError(t, svc.EnsureAdmin(ctx, "admin", "bootstrap-pass", "admin@vessel.example"))

	admin, err := svc.GetByUsername(ctx, "admin")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, admin.Role)

	// Second call is a no-op.
	require.NoError(t, svc.EnsureAdmin(ctx, "admin2", "other", ""))
	_, err = svc.GetByUsername(ctx, "admin2")
	assert.Error(t, err)
}
