package contract

// IHasher is the one-way credential codec.
type IHasher interface {
	HashPassword(password string) (string, error)
	// ComparePasswordHash returns a non-nil error when the password does not
	// match the stored hash.
	ComparePasswordHash(password, hashedPassword string) error
}
