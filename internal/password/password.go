// Package password wraps bcrypt hashing for stored credentials.
package password

import "golang.org/x/crypto/bcrypt"

// Cost is the bcrypt work factor used for all stored hashes.
const Cost = 12

// Hash returns a salted bcrypt hash of the plaintext. Each call salts
// independently, so hashing the same input twice yields different strings;
// hashes must only ever be compared with Verify.
func Hash(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), Cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Verify reports whether plaintext matches the stored hash. A malformed hash
// is a normal verification failure, not an error.
func Verify(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
