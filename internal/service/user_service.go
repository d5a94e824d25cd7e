package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/youridegraef/qash-backend-sub000/internal/auth"
	"github.com/youridegraef/qash-backend-sub000/internal/metrics"
	"github.com/youridegraef/qash-backend-sub000/internal/models"
	"github.com/youridegraef/qash-backend-sub000/internal/storage"
)

// UserService handles registration, authentication and account upkeep.
type UserService struct {
	users    storage.UserRepository
	hasher   auth.PasswordHasher
	tokenTTL time.Duration
	logger   *slog.Logger
}

// NewUserService creates a new user service. Tokens issued by Authenticate
// expire after tokenTTL.
func NewUserService(users storage.UserRepository, hasher auth.PasswordHasher, tokenTTL time.Duration, logger *slog.Logger) *UserService {
	return &UserService{
		users:    users,
		hasher:   hasher,
		tokenTTL: tokenTTL,
		logger:   logger,
	}
}

// Register creates an account. dateOfBirth may be nil.
func (s *UserService) Register(ctx context.Context, name, email, password string, dateOfBirth *time.Time) (*models.User, error) {
	s.logger.Info("Register request", "email", email)

	if err := requireText("name", name); err != nil {
		return nil, err
	}
	if err := requireText("email", email); err != nil {
		return nil, err
	}
	if err := requireText("password", password); err != nil {
		return nil, err
	}
	email = strings.TrimSpace(email)
	if err := requireEmail(email); err != nil {
		return nil, err
	}

	if err := s.ensureEmailFree(ctx, email, 0); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(password)
	if errors.Is(err, auth.ErrPasswordTooLong) {
		return nil, &ValidationError{Field: "password", Value: "<redacted>", Message: err.Error(), Err: err}
	}
	if err != nil {
		return nil, &StorageError{Summary: "could not register user", Err: err}
	}

	user := &models.User{
		Name:         strings.TrimSpace(name),
		Email:        email,
		PasswordHash: hash,
	}
	if dateOfBirth != nil {
		dob := models.Day(*dateOfBirth)
		user.DateOfBirth = &dob
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		s.logger.Error("Registration failed", "email", email, "error", err)
		return nil, translate(err, EntityUser, email, "could not register user")
	}

	s.logger.Info("User registered successfully", "user_id", user.ID, "email", user.Email)
	return user, nil
}

// Authenticate checks the credentials and issues a token signed with jwtKey
// for jwtIssuer. An unknown email is a NotFound error; a wrong password is
// ErrAuthenticationFailed.
func (s *UserService) Authenticate(ctx context.Context, email, password, jwtKey, jwtIssuer string) (*AuthResult, error) {
	for _, f := range []struct{ field, value string }{
		{"email", email},
		{"password", password},
		{"jwt key", jwtKey},
		{"jwt issuer", jwtIssuer},
	} {
		if err := requireText(f.field, f.value); err != nil {
			metrics.AuthAttempts.WithLabelValues("invalid").Inc()
			return nil, err
		}
	}
	email = strings.TrimSpace(email)

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			metrics.AuthAttempts.WithLabelValues("unknown_user").Inc()
		}
		return nil, translate(err, EntityUser, email, "could not authenticate user")
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		metrics.AuthAttempts.WithLabelValues("bad_password").Inc()
		s.logger.Warn("Login failed", "email", email)
		return nil, ErrAuthenticationFailed
	}

	token, expiresAt, err := auth.NewJWTManager(jwtKey, jwtIssuer, s.tokenTTL).Generate(user)
	if err != nil {
		s.logger.Error("Failed to generate token", "user_id", user.ID, "error", err)
		return nil, &StorageError{Summary: "could not issue token", Err: err}
	}

	metrics.AuthAttempts.WithLabelValues("success").Inc()
	s.logger.Info("User logged in successfully", "user_id", user.ID)
	return &AuthResult{Token: token, ExpiresAt: expiresAt, User: NewUserDTO(user)}, nil
}

// GetByID returns the user with the given ID.
func (s *UserService) GetByID(ctx context.Context, id int) (*models.User, error) {
	if err := requireID("user id", id); err != nil {
		return nil, err
	}
	user, err := s.users.GetUserByID(ctx, id)
	if err != nil {
		return nil, translate(err, EntityUser, id, "failed to load user")
	}
	return user, nil
}

// GetByEmail returns the user registered with email.
func (s *UserService) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if err := requireText("email", email); err != nil {
		return nil, err
	}
	email = strings.TrimSpace(email)
	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, translate(err, EntityUser, email, "failed to load user")
	}
	return user, nil
}

// Update overwrites the user's profile. An empty PasswordHash keeps the
// stored one.
func (s *UserService) Update(ctx context.Context, user *models.User) error {
	if user == nil {
		return invalid("user", nil, "user cannot be nil")
	}
	if err := requireID("user id", user.ID); err != nil {
		return err
	}
	if err := requireText("name", user.Name); err != nil {
		return err
	}
	if err := requireText("email", user.Email); err != nil {
		return err
	}

	updated := *user
	updated.Name = strings.TrimSpace(user.Name)
	updated.Email = strings.TrimSpace(user.Email)
	if err := requireEmail(updated.Email); err != nil {
		return err
	}
	if err := s.ensureEmailFree(ctx, updated.Email, updated.ID); err != nil {
		return err
	}
	if updated.PasswordHash == "" {
		current, err := s.GetByID(ctx, updated.ID)
		if err != nil {
			return err
		}
		updated.PasswordHash = current.PasswordHash
	}
	if updated.DateOfBirth != nil {
		dob := models.Day(*updated.DateOfBirth)
		updated.DateOfBirth = &dob
	}

	if err := s.users.UpdateUser(ctx, &updated); err != nil {
		return translate(err, EntityUser, updated.ID, "could not update user")
	}
	s.logger.Info("User updated", "user_id", updated.ID)
	return nil
}

// Delete removes the user and everything the user owns.
func (s *UserService) Delete(ctx context.Context, id int) error {
	if err := requireID("user id", id); err != nil {
		return err
	}
	if err := s.users.DeleteUser(ctx, id); err != nil {
		return translate(err, EntityUser, id, "could not delete user")
	}
	s.logger.Info("User deleted", "user_id", id)
	return nil
}

// ensureEmailFree fails with AlreadyExists if email belongs to a user other
// than ownerID.
func (s *UserService) ensureEmailFree(ctx context.Context, email string, ownerID int) error {
	existing, err := s.users.GetUserByEmail(ctx, email)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return nil
	case err != nil:
		return &StorageError{Summary: "could not check email", Err: err}
	case existing.ID != ownerID:
		return &AlreadyExistsError{Entity: EntityUser, Key: email}
	}
	return nil
}
