package main

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/youridegraef/qash-backend-sub000/internal/storage/sqlite"
)

func runAdduser(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	stdout := new(bytes.Buffer)
	stderr := new(bytes.Buffer)
	err := run(append(args, "-cost", "4"), bytes.NewBufferString(stdin), stdout, stderr)
	return stdout.String(), err
}

func TestRun_Success(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "qash.db")

	out, err := runAdduser(t, "", "-name", "Ann", "-email", "ann@example.com", "-password", "s3cret", "-dob", "1990-05-01", "-db", dbPath)
	require.NoError(t, err)
	assert.Contains(t, out, "User Ann <ann@example.com> created successfully")

	store, err := sqlite.New(dbPath)
	require.NoError(t, err)
	defer store.Close()

	user, err := store.GetUserByEmail(context.Background(), "ann@example.com")
	require.NoError(t, err)
	require.NotNil(t, user.DateOfBirth)
	assert.Equal(t, 1990, user.DateOfBirth.Year())
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("s3cret")))
}

func TestRun_DuplicateEmail(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "qash.db")
	args := []string{"-name", "Ann", "-email", "ann@example.com", "-password", "s3cret", "-db", dbPath}

	_, err := runAdduser(t, "", args...)
	require.NoError(t, err)

	_, err = runAdduser(t, "", args...)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestRun_MissingFlags(t *testing.T) {
	out, err := runAdduser(t, "", "-password", "s3cret")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing required flags: name, email")
	assert.Contains(t, out, "Usage:")
}

func TestRun_InvalidInput(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "qash.db")

	_, err := runAdduser(t, "", "-name", "Ann", "-email", "ann@example.com", "-password", "x", "-dob", "01/05/1990", "-db", dbPath)
	assert.ErrorContains(t, err, "invalid -dob")

	_, err = runAdduser(t, "", "-name", "Ann", "-email", "not-an-email", "-password", "x", "-db", dbPath)
	assert.ErrorContains(t, err, "failed to create user")
}

func TestRun_InteractivePassword(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "qash.db")

	out, err := runAdduser(t, "interactive_secret\n", "-name", "Bob", "-email", "bob@example.com", "-db", dbPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Password: ")
	assert.Contains(t, out, "created successfully")

	_, err = runAdduser(t, "\n", "-name", "Eve", "-email", "eve@example.com", "-db", dbPath)
	assert.ErrorContains(t, err, "password cannot be empty")
}

func TestRun_Verbose(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "qash.db")
	args := []string{"-name", "Ann", "-email", "ann@example.com", "-password", "s3cret", "-db", dbPath, "-cost", "4"}

	stderr := new(bytes.Buffer)
	require.NoError(t, run(append(args, "-v"), new(bytes.Buffer), new(bytes.Buffer), stderr))
	assert.Contains(t, stderr.String(), "User registered successfully")

	quiet := new(bytes.Buffer)
	err := run(args, new(bytes.Buffer), new(bytes.Buffer), quiet)
	require.Error(t, err)
	assert.NotContains(t, quiet.String(), "Register request")
}
