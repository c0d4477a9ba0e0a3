package storage

import (
	"context"
	"database/sql"
	"errors"

	"restaurant-api/restaurant-svc/internal/domain"
)

// EnsureUser mirrors an identity provider user so foreign keys resolve.
func (r *PostgresRepository) EnsureUser(ctx context.Context, user domain.User) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO users (id, username, is_admin)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET username = EXCLUDED.username, is_admin = EXCLUDED.is_admin
	`, user.ID, user.Username, user.IsAdmin)
	return err
}

func (r *PostgresRepository) UserExists(ctx context.Context, userID int) (bool, error) {
	var exists bool
	err := r.DB.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)`, userID).Scan(&exists)
	return exists, err
}

// GetProfile returns the stored profile, or the default customer profile
// when none was written yet.
func (r *PostgresRepository) GetProfile(ctx context.Context, userID int) (*domain.UserProfile, error) {
	var p domain.UserProfile
	var role string
	err := r.DB.QueryRowContext(ctx,
		`SELECT user_id, role, address FROM user_profiles WHERE user_id = $1`, userID,
	).Scan(&p.UserID, &role, &p.Address)
	if errors.Is(err, sql.ErrNoRows) {
		return &domain.UserProfile{UserID: userID, Role: domain.RoleCustomer}, nil
	}
	if err != nil {
		return nil, err
	}
	p.Role = domain.ParseRole(role)
	return &p, nil
}

func (r *PostgresRepository) SetRole(ctx context.Context, userID int, role domain.Role) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO user_profiles (user_id, role)
		VALUES ($1, $2)
		ON CONFLICT (user_id) DO UPDATE SET role = EXCLUDED.role
	`, userID, string(role))
	return err
}

func (r *PostgresRepository) UpdateAddress(ctx context.Context, userID int, address string) (*domain.UserProfile, error) {
	var p domain.UserProfile
	var role string
	err := r.DB.QueryRowContext(ctx, `
		INSERT INTO user_profiles (user_id, address)
		VALUES ($1, $2)
		ON CONFLICT (user_id) DO UPDATE SET address = EXCLUDED.address
		RETURNING user_id, role, address
	`, userID, address).Scan(&p.UserID, &role, &p.Address)
	if err != nil {
		return nil, err
	}
	p.Role = domain.ParseRole(role)
	return &p, nil
}
