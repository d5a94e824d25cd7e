package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/youridegraef/qash-backend-sub000/internal/models"
	"github.com/youridegraef/qash-backend-sub000/internal/storage"
)

const userColumns = "id, name, email, password_hash, date_of_birth"

func scanUser(row pgx.Row) (*models.User, error) {
	u := &models.User{}
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.DateOfBirth); err != nil {
		return nil, err
	}
	return u, nil
}

func dateOfBirth(u *models.User) any {
	if u.DateOfBirth == nil {
		return nil
	}
	return models.Day(*u.DateOfBirth)
}

func (s *PostgresStore) GetUserByID(ctx context.Context, id int) (*models.User, error) {
	u, err := scanUser(s.pool.QueryRow(ctx, "SELECT "+userColumns+" FROM users WHERE id = $1", id))
	if err != nil {
		return nil, notFoundOr(err, "user", id, "get user by ID")
	}
	return u, nil
}

func (s *PostgresStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	u, err := scanUser(s.pool.QueryRow(ctx, "SELECT "+userColumns+" FROM users WHERE lower(email) = lower($1)", email))
	if err != nil {
		return nil, notFoundOr(err, "user", email, "get user by email")
	}
	return u, nil
}

func (s *PostgresStore) CreateUser(ctx context.Context, user *models.User) error {
	if user == nil {
		return fmt.Errorf("%w: nil user", storage.ErrInvalidArgument)
	}
	err := s.pool.QueryRow(ctx, `
		INSERT INTO users (name, email, password_hash, date_of_birth)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, user.Name, user.Email, user.PasswordHash, dateOfBirth(user)).Scan(&user.ID)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", mapError(err))
	}
	return nil
}

func (s *PostgresStore) UpdateUser(ctx context.Context, user *models.User) error {
	if user == nil {
		return fmt.Errorf("%w: nil user", storage.ErrInvalidArgument)
	}
	tag, err := s.pool.Exec(ctx,
		"UPDATE users SET name = $1, email = $2, password_hash = $3, date_of_birth = $4 WHERE id = $5",
		user.Name, user.Email, user.PasswordHash, dateOfBirth(user), user.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", mapError(err))
	}
	return requireAffected(tag, "user", user.ID)
}

func (s *PostgresStore) DeleteUser(ctx context.Context, id int) error {
	tag, err := s.pool.Exec(ctx, "DELETE FROM users WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", mapError(err))
	}
	return requireAffected(tag, "user", id)
}
