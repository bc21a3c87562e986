// VoyageCare - Maritime Crew Health Management
// Copyright 2026 VoyageCare Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/voyagecare/voyagecare

package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/voyagecare/voyagecare/internal/audit"
	"github.com/voyagecare/voyagecare/internal/auth"
	"github.com/voyagecare/voyagecare/internal/logging"
	"github.com/voyagecare/voyagecare/internal/models"
	"github.com/voyagecare/voyagecare/internal/paging"
	"github.com/voyagecare/voyagecare/internal/store"
)

// UsersCollection is the document store collection for user accounts.
const UsersCollection = "users"

// ErrBadCredentials is returned when a username/password pair does not verify.
var ErrBadCredentials = errors.New("invalid username or password")

// UserService manages user accounts and crew profiles.
type UserService struct {
	db       *store.Store
	recorder *audit.Recorder
	now      func() time.Time
}

// NewUserService creates a user service.
func NewUserService(db *store.Store, recorder *audit.Recorder) *UserService {
	return &UserService{db: db, recorder: recorder, now: time.Now}
}

// CreateUserInput carries the fields accepted on account creation.
type CreateUserInput struct {
	Username string
	Email    string
	Name     string
	Password string
	Role     string
	CrewID   string
	Profile  *models.CrewProfile
}

// Create registers a new account. Username and email must be unique; the role
// is normalized against the known roles. The password is stored bcrypt-hashed.
func (s *UserService) Create(ctx context.Context, in CreateUserInput, actor Actor) (*models.User, error) {
	username := strings.ToLower(strings.TrimSpace(in.Username))
	email := strings.ToLower(strings.TrimSpace(in.Email))

	existing, err := store.All[models.User](ctx, s.db, UsersCollection)
	if err != nil {
		return nil, err
	}
	for i := range existing {
		if existing[i].Username == username || (email != "" && existing[i].Email == email) {
			return nil, fmt.Errorf("user %q: %w", username, ErrConflict)
		}
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		ID:           uuid.New().String(),
		Username:     username,
		Email:        email,
		Name:         in.Name,
		Role:         models.NormalizeRole(in.Role),
		Active:       true,
		PasswordHash: hash,
		CrewID:       in.CrewID,
		Profile:      in.Profile,
	}
	if user.Profile != nil {
		user.Profile.Version = models.CrewProfileVersion
	}
	user.StampCreate(actor.ID, actor.Name, s.now())

	if err := s.db.Put(ctx, UsersCollection, user.ID, user); err != nil {
		return nil, err
	}

	s.recorder.Success(ctx, UsersCollection, "create", user.ID, actor.audit(),
		"created "+string(user.Role)+" account "+username)
	return user, nil
}

// Get loads a user by id.
func (s *UserService) Get(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := s.db.Get(ctx, UsersCollection, id, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByUsername finds a user by username (case-insensitive).
// Returns store.ErrNotFound when no account matches.
func (s *UserService) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	username = strings.ToLower(strings.TrimSpace(username))

	all, err := store.All[models.User](ctx, s.db, UsersCollection)
	if err != nil {
		return nil, err
	}
	for i := range all {
		if all[i].Username == username {
			return &all[i], nil
		}
	}
	return nil, store.ErrNotFound
}

// VerifyCredentials checks a username/password pair against the stored hash.
// Inactive accounts fail the same way bad passwords do.
func (s *UserService) VerifyCredentials(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrBadCredentials
		}
		return nil, err
	}

	if !user.Active || !auth.CheckPassword(user.PasswordHash, password) {
		return nil, ErrBadCredentials
	}
	return user, nil
}

// UserFilter selects users for List.
type UserFilter struct {
	Role   string
	Active *bool
	Query  string
	Page   paging.Params
}

// UserListResult is one page of users with a role histogram.
type UserListResult struct {
	Items  []models.PublicUser `json:"items"`
	Total  int                 `json:"total"`
	Page   int                 `json:"page"`
	Pages  int                 `json:"pages"`
	ByRole map[string]int      `json:"byRole"`
}

// List returns one page of users matching the filter, as client-safe
// projections, ordered by username.
func (s *UserService) List(ctx context.Context, f UserFilter) (*UserListResult, error) {
	all, err := store.All[models.User](ctx, s.db, UsersCollection)
	if err != nil {
		return nil, err
	}

	var matched []models.User
	for i := range all {
		u := &all[i]
		if f.Role != "" && string(u.Role) != f.Role {
			continue
		}
		if f.Active != nil && u.Active != *f.Active {
			continue
		}
		if !matchText(f.Query, u.Username, u.Name, u.Email) {
			continue
		}
		matched = append(matched, all[i])
	}

	byRole := make(map[string]int)
	for i := range matched {
		byRole[string(matched[i].Role)]++
	}

	sort.Slice(matched, func(i, j int) bool { return matched[i].Username < matched[j].Username })

	page := paging.Slice(matched, f.Page)
	items := make([]models.PublicUser, 0, len(page))
	for i := range page {
		items = append(items, page[i].Public())
	}

	return &UserListResult{
		Items:  items,
		Total:  len(matched),
		Page:   f.Page.Page,
		Pages:  paging.Pages(len(matched), f.Page.Limit),
		ByRole: byRole,
	}, nil
}

// UpdateUserInput carries the fields accepted on a partial account update.
type UpdateUserInput struct {
	Email   *string
	Name    *string
	Role    *string
	Active  *bool
	CrewID  *string
	Profile *models.CrewProfile
}

// Update merges the supplied fields into the stored account.
func (s *UserService) Update(ctx context.Context, id string, in UpdateUserInput, actor Actor) (*models.User, error) {
	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Email != nil {
		user.Email = strings.ToLower(strings.TrimSpace(*in.Email))
	}
	if in.Name != nil {
		user.Name = *in.Name
	}
	if in.Role != nil {
		user.Role = models.NormalizeRole(*in.Role)
	}
	if in.Active != nil {
		user.Active = *in.Active
	}
	if in.CrewID != nil {
		user.CrewID = *in.CrewID
	}
	if in.Profile != nil {
		in.Profile.Version = models.CrewProfileVersion
		user.Profile = in.Profile
	}
	user.StampUpdate(actor.ID, actor.Name, s.now())

	if err := s.db.Put(ctx, UsersCollection, user.ID, user); err != nil {
		return nil, err
	}

	s.recorder.Success(ctx, UsersCollection, "update", user.ID, actor.audit(), "updated account")
	return user, nil
}

// SetPassword replaces the stored hash with a hash of the new password.
// Used both by self-service password change and admin reset.
func (s *UserService) SetPassword(ctx context.Context, id, password string, actor Actor) error {
	user, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	user.PasswordHash = hash
	user.StampUpdate(actor.ID, actor.Name, s.now())

	if err := s.db.Put(ctx, UsersCollection, user.ID, user); err != nil {
		return err
	}

	s.recorder.Success(ctx, UsersCollection, "reset_password", user.ID, actor.audit(),
		"password reset for "+user.Username)
	return nil
}

// Delete removes an account permanently.
func (s *UserService) Delete(ctx context.Context, id string, actor Actor) error {
	if err := s.db.Delete(ctx, UsersCollection, id); err != nil {
		return err
	}

	s.recorder.Success(ctx, UsersCollection, "delete", id, actor.audit(), "deleted account")
	return nil
}

// EnsureAdmin seeds the configured admin account when the user collection is
// empty. Called once at startup; a non-empty collection is left untouched.
func (s *UserService) EnsureAdmin(ctx context.Context, username, password, email string) error {
	count, err := s.db.Count(ctx, UsersCollection)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	if username == "" || password == "" {
		logging.Warn().Msg("user collection empty and no admin bootstrap configured")
		return nil
	}

	_, err = s.Create(ctx, CreateUserInput{
		Username: username,
		Email:    email,
		Name:     "Administrator",
		Password: password,
		Role:     string(models.RoleAdmin),
	}, Actor{ID: "system", Name: "system", Role: string(models.RoleAdmin)})
	if err != nil {
		return fmt.Errorf("bootstrap admin account: %w", err)
	}

	logging.Info().Str("username", username).Msg("bootstrapped admin account")
	return nil
}
