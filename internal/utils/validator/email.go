package validator

import (
	"regexp"

	customErrors "github.com/abisalde/inventory-service/internal/errors"
)

var emailRegex = regexp.MustCompile(`^[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,}$`)

// ValidateEmail expects an already normalized address.
func ValidateEmail(email string) error {
	if !emailRegex.MatchString(email) {
		return customErrors.InvalidEmail
	}
	return nil
}
