package user

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/go-playground/validator/v10"
)

const (
	MaxUsernameLen = 64
	MaxPasswordLen = 128
)

// Usernames name the user's ledger document, so they are restricted to
// characters that are safe in a file name.
var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_.-]*$`)

var (
	usernameRules = fmt.Sprintf("required,max=%d,username", MaxUsernameLen)
	passwordRules = fmt.Sprintf("required,max=%d", MaxPasswordLen)
)

// Validator checks credentials before they reach the repository
type Validator interface {
	ValidateUsername(username string) error
	ValidatePassword(password string) error
}

var _ Validator = (*CredentialsValidator)(nil)

type CredentialsValidator struct {
	validate *validator.Validate
}

func NewCredentialsValidator() *CredentialsValidator {
	v := validator.New()
	// the pattern is a constant, registration cannot fail
	_ = v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return usernamePattern.MatchString(fl.Field().String())
	})

	return &CredentialsValidator{validate: v}
}

func (v *CredentialsValidator) ValidateUsername(username string) error {
	return describe("username", v.validate.Var(username, usernameRules))
}

func (v *CredentialsValidator) ValidatePassword(password string) error {
	return describe("password", v.validate.Var(password, passwordRules))
}

func describe(field string, err error) error {
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		switch fe.Tag() {
		case "required":
			return fmt.Errorf("%s is required", field)
		case "max":
			return fmt.Errorf("%s must be at most %s characters", field, fe.Param())
		case "username":
			return fmt.Errorf("%s can only contain letters, digits, '_', '-', '.' and must start with a letter or digit", field)
		}
	}

	return fmt.Errorf("%s is invalid: %w", field, err)
}
