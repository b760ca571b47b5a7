package domain

import (
	"net/mail"
	"strings"
	"time"
)

// User represents an authenticated identity in the platform.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Identity is the trusted caller identity extracted from a verified bearer token.
type Identity struct {
	UserID    string
	Email     string
	SessionID string
}

// Registration is the payload accepted when creating an account.
type Registration struct {
	Name     string
	Email    string
	Password string
}

func (r Registration) Validate() error {
	var v Validator
	v.Length("name", r.Name, 2, MaxTextLength)
	validateEmail(&v, r.Email)
	validatePassword(&v, r.Password)
	return v.Err()
}

// Credentials identify a user at login.
type Credentials struct {
	Email    string
	Password string
}

func (c Credentials) Validate() error {
	var v Validator
	validateEmail(&v, c.Email)
	validatePassword(&v, c.Password)
	return v.Err()
}

// AuthResult is returned by register, login and refresh.
type AuthResult struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

func validateEmail(v *Validator, email string) {
	if len(email) > MaxTextLength || strings.TrimSpace(email) != email {
		v.Add("email", "invalid email")
		return
	}
	addr, err := mail.ParseAddress(email)
	v.Check(err == nil && addr.Address == email, "email", "invalid email")
}

// bcrypt rejects inputs longer than 72 bytes.
func validatePassword(v *Validator, password string) {
	v.Length("password", password, 6, MaxTextLength)
	v.Check(len(password) <= 72, "password", "too long")
}
