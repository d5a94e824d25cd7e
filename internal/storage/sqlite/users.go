package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/youridegraef/qash-backend-sub000/internal/models"
	"github.com/youridegraef/qash-backend-sub000/internal/storage"
)

const userColumns = "id, name, email, password_hash, date_of_birth"

func scanUser(row scanner) (*models.User, error) {
	user := &models.User{}
	var dob sql.NullString
	if err := row.Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &dob); err != nil {
		return nil, err
	}
	if dob.Valid {
		t, err := parseDate(dob.String)
		if err != nil {
			return nil, err
		}
		user.DateOfBirth = &t
	}
	return user, nil
}

func dateOfBirth(u *models.User) sql.NullString {
	if u.DateOfBirth == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: formatDate(*u.DateOfBirth), Valid: true}
}

// CreateUser inserts a new user into the database.
func (s *SQLiteStore) CreateUser(ctx context.Context, user *models.User) error {
	if user == nil {
		return fmt.Errorf("%w: nil user", storage.ErrInvalidArgument)
	}

	res, err := s.db.ExecContext(ctx,
		"INSERT INTO users (name, email, password_hash, date_of_birth) VALUES (?, ?, ?, ?)",
		user.Name, user.Email, user.PasswordHash, dateOfBirth(user),
	)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", mapError(err))
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read user id: %w", err)
	}
	user.ID = int(id)

	return nil
}

// GetUserByEmail retrieves a user by their email address.
// Emails compare case-insensitively.
func (s *SQLiteStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	user, err := scanUser(s.db.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE email = ?", email,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("user %s: %w", email, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return user, nil
}

// GetUserByID retrieves a user by their ID.
func (s *SQLiteStore) GetUserByID(ctx context.Context, id int) (*models.User, error) {
	user, err := scanUser(s.db.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id = ?", id,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("user %d: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by ID: %w", err)
	}
	return user, nil
}

// UpdateUser overwrites a user's mutable fields.
func (s *SQLiteStore) UpdateUser(ctx context.Context, user *models.User) error {
	if user == nil {
		return fmt.Errorf("%w: nil user", storage.ErrInvalidArgument)
	}

	res, err := s.db.ExecContext(ctx,
		"UPDATE users SET name = ?, email = ?, password_hash = ?, date_of_birth = ? WHERE id = ?",
		user.Name, user.Email, user.PasswordHash, dateOfBirth(user), user.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", mapError(err))
	}
	return requireAffected(res, "user", user.ID)
}

// DeleteUser removes a user. Owned rows go with it through ON DELETE CASCADE.
func (s *SQLiteStore) DeleteUser(ctx context.Context, id int) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM users WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", mapError(err))
	}
	return requireAffected(res, "user", id)
}
