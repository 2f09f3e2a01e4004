package utils

import "golang.org/x/crypto/bcrypt" // Password hashing

// PasswordCost is the bcrypt work factor used for new hashes
const PasswordCost = 12

// MaxPasswordBytes is the longest input bcrypt accepts, counted in bytes
const MaxPasswordBytes = 72

// HashPassword returns the salted bcrypt hash of plain
func HashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), PasswordCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether plain matches the stored hash
func CheckPassword(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
