package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"travelreview/internal/model"
)

// UserRepository gives access to user accounts.
type UserRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new account and returns its generated ID.
func (r *UserRepository) Create(ctx context.Context, u *model.UserAccount) (int64, error) {
	query := r.db.Rebind(`
		INSERT INTO users (username, email, password_hash, full_name, is_verified, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		RETURNING id`)
	var id int64
	err := r.db.QueryRowxContext(ctx, query,
		u.Username, u.Email, u.PasswordHash, u.FullName, u.IsVerified, u.CreatedAt,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("UserRepository.Create: %w", err)
	}
	u.ID = id
	return id, nil
}

// GetByID returns the account with the given ID. sql.ErrNoRows when missing.
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*model.UserAccount, error) {
	var u model.UserAccount
	err := r.db.GetContext(ctx, &u, r.db.Rebind(`SELECT * FROM users WHERE id = ?`), id)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByUsername returns the account owning the username. sql.ErrNoRows when missing.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*model.UserAccount, error) {
	var u model.UserAccount
	err := r.db.GetContext(ctx, &u, r.db.Rebind(`SELECT * FROM users WHERE username = ?`), username)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// UsernameOrEmailTaken reports whether another account already holds the
// username or the email.
func (r *UserRepository) UsernameOrEmailTaken(ctx context.Context, username, email string) (bool, error) {
	var count int
	query := r.db.Rebind(`SELECT COUNT(1) FROM users WHERE username = ? OR email = ?`)
	if err := r.db.GetContext(ctx, &count, query, username, email); err != nil {
		return false, fmt.Errorf("UserRepository.UsernameOrEmailTaken: %w", err)
	}
	return count > 0, nil
}

// Exists reports whether a user with the given ID exists. Runs on q so it can
// join a caller's transaction.
func (r *UserRepository) Exists(ctx context.Context, q sqlx.ExtContext, id int64) (bool, error) {
	var count int
	query := q.Rebind(`SELECT COUNT(1) FROM users WHERE id = ?`)
	if err := sqlx.GetContext(ctx, q, &count, query, id); err != nil {
		return false, fmt.Errorf("UserRepository.Exists: %w", err)
	}
	return count > 0, nil
}

// UpdateProfile changes the mutable profile fields. Username stays fixed.
func (r *UserRepository) UpdateProfile(ctx context.Context, id int64, email, fullName string) error {
	query := r.db.Rebind(`UPDATE users SET email = ?, full_name = ? WHERE id = ?`)
	res, err := r.db.ExecContext(ctx, query, email, fullName, id)
	if err != nil {
		return fmt.Errorf("UserRepository.UpdateProfile: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("UserRepository.UpdateProfile: user %d: %w", id, sql.ErrNoRows)
	}
	return nil
}

// Verify flips the verification flag on.
func (r *UserRepository) Verify(ctx context.Context, id int64) error {
	query := r.db.Rebind(`UPDATE users SET is_verified = ? WHERE id = ?`)
	_, err := r.db.ExecContext(ctx, query, true, id)
	if err != nil {
		return fmt.Errorf("UserRepository.Verify: %w", err)
	}
	return nil
}
