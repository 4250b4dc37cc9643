// Copyright (c) 2025-2026 BrightPath HR
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/brightpathhr/brightpath/internal/model"
)

// ErrLastAdmin is returned when deleting the only remaining admin-role
// account is attempted.
var ErrLastAdmin = errors.New("cannot delete the last admin user")

// AdminUser is a back-office account row.
type AdminUser struct {
	ID           int64
	Email        string
	PasswordHash string
	Name         string
	Role         model.Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
	LastLoginAt  sql.NullTime
}

const adminUserColumns = "id, email, password_hash, name, role, created_at, updated_at, last_login_at"

func scanAdminUser(row *sql.Row) (AdminUser, error) {
	var u AdminUser
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.Role, &u.CreatedAt, &u.UpdatedAt, &u.LastLoginAt)
	return u, err
}

// ListAdminUsers returns all back-office accounts ordered by name.
func (q *Queries) ListAdminUsers(ctx context.Context) ([]AdminUser, error) {
	rows, err := q.db.QueryContext(ctx,
		"SELECT "+adminUserColumns+" FROM admin_users ORDER BY name, id")
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var users []AdminUser
	for rows.Next() {
		var u AdminUser
		if err := rows.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.Role, &u.CreatedAt, &u.UpdatedAt, &u.LastLoginAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// GetAdminUserByID returns the back-office account with the given id.
func (q *Queries) GetAdminUserByID(ctx context.Context, id int64) (AdminUser, error) {
	return scanAdminUser(q.db.QueryRowContext(ctx,
		"SELECT "+adminUserColumns+" FROM admin_users WHERE id = ?", id))
}

// GetAdminUserByEmail returns the back-office account with the given email.
func (q *Queries) GetAdminUserByEmail(ctx context.Context, email string) (AdminUser, error) {
	return scanAdminUser(q.db.QueryRowContext(ctx,
		"SELECT "+adminUserColumns+" FROM admin_users WHERE email = ?", email))
}

// CountAdminUsers returns the total number of back-office accounts.
func (q *Queries) CountAdminUsers(ctx context.Context) (int64, error) {
	return q.count(ctx, "SELECT COUNT(*) FROM admin_users")
}

// CountAdminRoleUsers returns the number of accounts holding the admin role.
func (q *Queries) CountAdminRoleUsers(ctx context.Context) (int64, error) {
	return q.count(ctx, "SELECT COUNT(*) FROM admin_users WHERE role = ?", string(model.RoleAdmin))
}

// CreateAdminUserParams holds the fields for creating a back-office account.
type CreateAdminUserParams struct {
	Email        string
	PasswordHash string
	Name         string
	Role         model.Role
}

// CreateAdminUser inserts a back-office account and re-fetches the row.
func (q *Queries) CreateAdminUser(ctx context.Context, p CreateAdminUserParams) (AdminUser, error) {
	now := time.Now().UTC()
	res, err := q.db.ExecContext(ctx,
		"INSERT INTO admin_users (email, password_hash, name, role, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)",
		p.Email, p.PasswordHash, p.Name, string(p.Role), now, now)
	if err != nil {
		return AdminUser{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return AdminUser{}, err
	}
	return q.GetAdminUserByID(ctx, id)
}

// UpdateAdminUserParams is a patch of back-office account fields; nil
// members are left unchanged.
type UpdateAdminUserParams struct {
	Email        *string
	PasswordHash *string
	Name         *string
	Role         *model.Role
}

// UpdateAdminUser applies a partial update and returns the current row.
// A patch with no set fields still re-fetches and returns the row.
func (q *Queries) UpdateAdminUser(ctx context.Context, id int64, p UpdateAdminUserParams) (AdminUser, error) {
	var (
		sets []string
		args []any
	)
	if p.Email != nil {
		sets = append(sets, "email = ?")
		args = append(args, *p.Email)
	}
	if p.PasswordHash != nil {
		sets = append(sets, "password_hash = ?")
		args = append(args, *p.PasswordHash)
	}
	if p.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, *p.Name)
	}
	if p.Role != nil {
		sets = append(sets, "role = ?")
		args = append(args, string(*p.Role))
	}
	if len(sets) > 0 {
		sets = append(sets, "updated_at = ?")
		args = append(args, time.Now().UTC(), id)
		query := "UPDATE admin_users SET " + strings.Join(sets, ", ") + " WHERE id = ?"
		if _, err := q.db.ExecContext(ctx, query, args...); err != nil {
			return AdminUser{}, err
		}
	}
	return q.GetAdminUserByID(ctx, id)
}

// DeleteAdminUser removes a back-office account. Deleting the last account
// holding the admin role is rejected with ErrLastAdmin.
func (q *Queries) DeleteAdminUser(ctx context.Context, id int64) (bool, error) {
	user, err := q.GetAdminUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, err
	}

	if user.Role == model.RoleAdmin {
		admins, err := q.CountAdminRoleUsers(ctx)
		if err != nil {
			return false, err
		}
		if admins <= 1 {
			return false, ErrLastAdmin
		}
	}

	res, err := q.db.ExecContext(ctx, "DELETE FROM admin_users WHERE id = ?", id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// TouchAdminLastLogin records a successful back-office login.
func (q *Queries) TouchAdminLastLogin(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx,
		"UPDATE admin_users SET last_login_at = ? WHERE id = ?", time.Now().UTC(), id)
	return err
}
