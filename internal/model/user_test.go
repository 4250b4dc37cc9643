// Copyright (c) 2025-2026 BrightPath HR
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "testing"

func TestRoleValid(t *testing.T) {
	for _, r := range []Role{RoleAdmin, RoleEditor, RoleAuthor} {
		if !r.Valid() {
			t.Errorf("Role(%q).Valid() = false, want true", r)
		}
	}
	for _, r := range []Role{"", "superadmin", "Admin", "viewer"} {
		if r.Valid() {
			t.Errorf("Role(%q).Valid() = true, want false", r)
		}
	}
}

func TestRoleCapabilities(t *testing.T) {
	tests := []struct {
		role        Role
		manageUsers bool
		editContent bool
		writeBlog   bool
	}{
		{RoleAdmin, true, true, true},
		{RoleEditor, false, true, true},
		{RoleAuthor, false, false, true},
		{Role("unknown"), false, false, false},
	}

	for _, tt := range tests {
		if got := tt.role.CanManageUsers(); got != tt.manageUsers {
			t.Errorf("%s.CanManageUsers() = %v, want %v", tt.role, got, tt.manageUsers)
		}
		if got := tt.role.CanEditContent(); got != tt.editContent {
			t.Errorf("%s.CanEditContent() = %v, want %v", tt.role, got, tt.editContent)
		}
		if got := tt.role.CanWriteBlog(); got != tt.writeBlog {
			t.Errorf("%s.CanWriteBlog() = %v, want %v", tt.role, got, tt.writeBlog)
		}
	}
}
