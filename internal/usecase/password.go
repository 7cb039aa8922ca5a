package usecase

import (
	"crypto/sha256"
	"encoding/hex"
	"regexp"
	"strings"

	"blogicum/internal/entity"

	"golang.org/x/crypto/bcrypt"
)

const (
	minPasswordLength = 8
	// bcrypt ignores nothing past this many bytes and refuses longer input.
	maxPasswordBytes = 72
)

var usernamePattern = regexp.MustCompile(`^[\p{L}\p{N}_.@+-]{1,150}$`)

func validateUsername(username string) error {
	if !usernamePattern.MatchString(username) {
		return ErrInvalidUsername
	}
	return nil
}

// validatePassword applies the length, numeric and similarity rules.
func validatePassword(password, username string) error {
	if len([]rune(password)) < minPasswordLength {
		return ErrPasswordTooShort
	}
	if len(password) > maxPasswordBytes {
		return ErrPasswordTooLong
	}
	if strings.Trim(password, "0123456789") == "" {
		return ErrPasswordNumeric
	}
	if username != "" && strings.EqualFold(password, username) {
		return ErrPasswordSimilar
	}
	return nil
}

func hashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func checkPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// sessionHash changes whenever the password hash changes, which invalidates
// every token issued before.
func sessionHash(user *entity.User) string {
	sum := sha256.Sum256([]byte(user.Password))
	return hex.EncodeToString(sum[:16])
}
