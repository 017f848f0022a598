// Package account defines the user account owned by the credential store.
package account

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrInvalidCredentials is returned when a stored password hash does
	// not match the supplied password.
	ErrInvalidCredentials = errors.New("account: invalid email or password")

	// ErrInvalid wraps field validation failures.
	ErrInvalid = errors.New("account: invalid")

	validate = validator.New()
)

// Account is a registered user. Email is the unique identifier.
type Account struct {
	Username       string `json:"username" validate:"required"`
	Email          string `json:"email" validate:"required,email"`
	ProfilePicture string `json:"profilePicture,omitempty" validate:"omitempty,base64"`

	// PasswordHash only lives in the credential table, never in a session.
	PasswordHash []byte `json:"passwordHash,omitempty"`
}

// New builds a validated account. An empty password leaves the account
// without a hash, matching accounts created before passwords were kept.
func New(username, email, password, profilePicture string) (*Account, error) {
	a := &Account{
		Username:       strings.TrimSpace(username),
		Email:          NormalizeEmail(email),
		ProfilePicture: profilePicture,
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}
	if password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("account: hash password: %w", err)
		}
		a.PasswordHash = hash
	}
	return a, nil
}

// NormalizeEmail trims and lower-cases an email so it can be used as a key.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Validate checks the account fields.
func (a *Account) Validate() error {
	if err := validate.Struct(a); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return fmt.Errorf("%w %s", ErrInvalid, strings.ToLower(verrs[0].Field()))
		}
		return fmt.Errorf("account: %w", err)
	}
	return nil
}

// CheckPassword verifies password against the stored hash. Accounts without
// a hash accept any password.
func (a *Account) CheckPassword(password string) error {
	if len(a.PasswordHash) == 0 {
		return nil
	}
	if err := bcrypt.CompareHashAndPassword(a.PasswordHash, []byte(password)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}

// Public returns a copy without the password hash, suitable for a session.
func (a *Account) Public() *Account {
	if a == nil {
		return nil
	}
	return &Account{
		Username:       a.Username,
		Email:          a.Email,
		ProfilePicture: a.ProfilePicture,
	}
}

// HasProfilePicture reports whether a picture was uploaded at signup.
func (a *Account) HasProfilePicture() bool {
	return a.ProfilePicture != ""
}
