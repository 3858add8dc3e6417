package users

import (
	"fmt"
	"time"

	"unicode"

	"golang.org/x/crypto/bcrypt"
)

type User struct {
	ID             string    `json:"id,omitempty"`          // Unique identifier for the user
	Email          string    `json:"email,omitempty"`       // User's email address
	HashedPassword string    `json:"-"`                     // Hashed version of the user's password - never serialize
	FirstName      string    `json:"first_name,omitempty"`  // First name of the user
	LastName       string    `json:"last_name,omitempty"`   // Last name of the user
	DateJoined     time.Time `json:"date_joined,omitempty"` // Date and time when the user registered
	LastLogin      time.Time `json:"last_login,omitempty"`  // Last time the user logged in

	IsActive    bool `json:"is_active"`              // IsActive, whether the user may log in
	IsVerified  bool `json:"is_verified,omitempty"`  // IsVerified, has the user verified who they are
	IsSuperUser bool `json:"is_superuser,omitempty"` // IsSuperUser, administrative access
}

// ValidatePasswordStrength checks if password meets security requirements:
// - At least 8 characters long
// - Contains uppercase and lowercase letters
// - Contains at least one number
func ValidatePasswordStrength(password string) error {
	if len(password) < 8 {
		return fmt.Errorf("password must be at least 8 characters long")
	}

	var (
		hasUpper  bool
		hasLower  bool
		hasNumber bool
	)

	for _, char := range password {
		if unicode.IsUpper(char) {
			hasUpper = true
		} else if unicode.IsLower(char) {
			hasLower = true
		} else if unicode.IsDigit(char) {
			hasNumber = true
		}
	}

	if !hasUpper {
		return fmt.Errorf("password must contain at least one uppercase letter")
	}
	if !hasLower {
		return fmt.Errorf("password must contain at least one lowercase letter")
	}
	if !hasNumber {
		return fmt.Errorf("password must contain at least one number")
	}

	return nil
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// CheckPasswordHash is a method that checks a password against the user's hash
func (u *User) CheckPasswordHash(password string) bool {
	return CheckPasswordHash(password, u.HashedPassword)
}
