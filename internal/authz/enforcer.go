// VoyageCare - Maritime Crew Health Management
// Copyright 2026 VoyageCare Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/voyagecare/voyagecare

// Package authz provides role-based authorization using Casbin.
//
// Authorization is resource-group based: each route group names the resource
// it guards (e.g. "inventory", "medical") and the enforcer decides from the
// caller's role. Admin inherits every role through the grouping policy, so it
// is admitted everywhere without per-resource rules.
package authz

import (
	"fmt"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"

	"github.com/voyagecare/voyagecare/internal/auth"
)

// rbacModel is the embedded Casbin RBAC model. The matcher resolves role
// inheritance via g() and admits wildcard actions.
const rbacModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && r.obj == p.obj && (r.act == p.act || p.act == "*")
`

// policy is one allow rule: the role may perform act on the resource group.
type policy struct {
	role     string
	resource string
	act      string
}

// defaultPolicies encodes the role allow-lists of the application's route
// groups. The admin role is not listed per resource; it inherits every role
// via defaultGroupings. Crew gets read-only access to the health surface; the
// handlers pin crew callers to their own crew id.
var defaultPolicies = []policy{
	{"inventory", "inventory", "*"},
	{"health", "medical", "*"},
	{"health", "vaccinations", "*"},
	{"health", "reminders", "*"},
	{"health", "education", "*"},
	{"emergency", "emergency", "*"},
	{"crew", "reminders", "read"},
	{"crew", "medical", "read"},
	{"crew", "vaccinations", "read"},
	{"crew", "self", "*"},
	{"health", "self", "*"},
	{"emergency", "self", "*"},
	{"inventory", "self", "*"},
	{"admin", "users", "*"},
	{"admin", "announcements", "*"},
	{"admin", "audit", "*"},
	{"admin", "reports", "*"},
	{"emergency", "reports", "*"},
	{"health", "reports", "*"},
}

// defaultGroupings make admin a member of every other role.
var defaultGroupings = [][2]string{
	{"admin", "health"},
	{"admin", "emergency"},
	{"admin", "inventory"},
	{"admin", "crew"},
}

// Enforcer wraps the Casbin enforcer.
type Enforcer struct {
	enforcer *casbin.SyncedEnforcer

	// OnError writes authorization failures; nil falls back to http.Error.
	OnError auth.ErrorWriter
}

// NewEnforcer creates an enforcer loaded with the application's role
// allow-lists.
func NewEnforcer() (*Enforcer, error) {
	m, err := model.NewModelFromString(rbacModel)
	if err != nil {
		return nil, fmt.Errorf("failed to load casbin model: %w", err)
	}

	enforcer, err := casbin.NewSyncedEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("failed to create casbin enforcer: %w", err)
	}

	for _, p := range defaultPolicies {
		if _, err := enforcer.AddPolicy(p.role, p.resource, p.act); err != nil {
			return nil, fmt.Errorf("failed to add policy %v: %w", p, err)
		}
	}
	for _, g := range defaultGroupings {
		if _, err := enforcer.AddGroupingPolicy(g[0], g[1]); err != nil {
			return nil, fmt.Errorf("failed to add grouping %v: %w", g, err)
		}
	}

	return &Enforcer{enforcer: enforcer}, nil
}

// Allowed reports whether the role may perform act on the resource group.
// Errors from the underlying enforcer deny access.
func (e *Enforcer) Allowed(role, resource, act string) bool {
	ok, err := e.enforcer.Enforce(role, resource, act)
	if err != nil {
		return false
	}
	return ok
}
