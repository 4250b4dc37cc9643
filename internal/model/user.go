// Copyright (c) 2025-2026 BrightPath HR
// SPDX-License-Identifier: GPL-3.0-or-later

// Package model defines domain types and closed enumerations used
// throughout the application.
package model

// Role is a closed enumeration of back-office user roles.
type Role string

// Back-office user roles.
const (
	RoleAdmin  Role = "admin"
	RoleEditor Role = "editor"
	RoleAuthor Role = "author"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleEditor, RoleAuthor:
		return true
	}
	return false
}

// CanManageUsers reports whether the role may create, edit, or delete
// back-office accounts and change site settings.
func (r Role) CanManageUsers() bool {
	return r == RoleAdmin
}

// CanEditContent reports whether the role may mutate content entities
// (services, case studies, testimonials, content blocks, media).
func (r Role) CanEditContent() bool {
	switch r {
	case RoleAdmin, RoleEditor:
		return true
	case RoleAuthor:
		return false
	}
	return false
}

// CanWriteBlog reports whether the role may create and edit blog posts.
func (r Role) CanWriteBlog() bool {
	switch r {
	case RoleAdmin, RoleEditor, RoleAuthor:
		return true
	}
	return false
}
