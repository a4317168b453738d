package utils

import (
	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 10

// hashSlots bounds how many bcrypt computations run at once so CPU-bound
// hashing cannot starve request I/O under load.
var hashSlots = make(chan struct{}, 4)

func HashPassword(password string) (string, error) {
	hashSlots <- struct{}{}
	defer func() { <-hashSlots }()

	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// CheckPasswordHash compares a plaintext password against a stored bcrypt
// hash. Comparison is constant-time inside bcrypt.
func CheckPasswordHash(password, hash string) bool {
	hashSlots <- struct{}{}
	defer func() { <-hashSlots }()

	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
