package utils

import "golang.org/x/crypto/bcrypt"

// bcryptCost trades login latency for brute-force resistance; raising it
// only affects hashes written after the change, existing ones keep the cost
// they were minted with.
const bcryptCost = 14

// HashPassword derives the one-way salted hash stored for a gamer credential.
func HashPassword(plaintext string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcryptCost)
	return string(hashed), err
}

// CheckPassword reports whether plaintext matches a stored hash.
func CheckPassword(hashed, plaintext string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plaintext)) == nil
}
