package utils

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

const minPasswordLen = 8

func HashPassword(pw string) (string, error) {
	if len(pw) < minPasswordLen {
		return "", errors.New("password must be at least 8 characters")
	}
	b, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	return string(b), err
}

func CheckPassword(hash, pw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pw)) == nil
}
