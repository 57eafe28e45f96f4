package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/erazemk/stockroom/internal/model"
)

// CreateAdminUser stores a new admin account with a bcrypt hash of password.
func CreateAdminUser(ctx context.Context, db *sql.DB, username, password string) (*model.AdminUser, error) {
	if username == "" || password == "" {
		return nil, fmt.Errorf("%w: username and password required", ErrValidation)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	result, err := db.ExecContext(ctx,
		`INSERT INTO admin_user (username, password_hash) VALUES (?, ?)`,
		username, string(hash),
	)
	if err != nil {
		return nil, fmt.Errorf("creating admin user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting admin user id: %w", err)
	}

	return getAdminUser(ctx, db, `id = ?`, id)
}

// GetAdminUserByUsername returns an admin account, or nil if none exists.
func GetAdminUserByUsername(ctx context.Context, db *sql.DB, username string) (*model.AdminUser, error) {
	return getAdminUser(ctx, db, `username = ?`, username)
}

func getAdminUser(ctx context.Context, q querier, where string, arg any) (*model.AdminUser, error) {
	u := &model.AdminUser{}
	err := q.QueryRowContext(ctx,
		`SELECT id, username, password_hash, created_at FROM admin_user WHERE `+where, arg,
	).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting admin user: %w", err)
	}
	return u, nil
}

// SyncAdminUser makes sure an admin account exists for username with the
// given password, creating it or replacing its hash as needed. It reports
// whether anything was written.
func SyncAdminUser(ctx context.Context, db *sql.DB, username, password string) (bool, error) {
	existing, err := GetAdminUserByUsername(ctx, db, username)
	if err != nil {
		return false, err
	}
	if existing == nil {
		if _, err := CreateAdminUser(ctx, db, username, password); err != nil {
			return false, err
		}
		return true, nil
	}
	if CheckAdminPassword(existing, password) {
		return false, nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return false, fmt.Errorf("hashing password: %w", err)
	}
	if _, err := db.ExecContext(ctx,
		`UPDATE admin_user SET password_hash = ? WHERE id = ?`,
		string(hash), existing.ID,
	); err != nil {
		return false, fmt.Errorf("updating admin password: %w", err)
	}
	return true, nil
}

// CheckAdminPassword reports whether password matches the stored hash.
func CheckAdminPassword(u *model.AdminUser, password string) bool {
	if u == nil {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}
