package auth

// PasswordHasher hashes passwords and verifies them against stored hashes.
type PasswordHasher interface {
	// Hash returns an encoded hash of password, salt included.
	Hash(password string) (string, error)

	// Verify reports whether password matches hash. It never errors: any
	// malformed hash simply fails to verify.
	Verify(password, hash string) bool
}
