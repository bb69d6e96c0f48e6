package validator

import (
	"regexp"

	customErrors "github.com/abisalde/inventory-service/internal/errors"
)

const MinPasswordLength = 8

var (
	upperRegex   = regexp.MustCompile(`[A-Z]`)
	lowerRegex   = regexp.MustCompile(`[a-z]`)
	digitRegex   = regexp.MustCompile(`[0-9]`)
	symbolRegex  = regexp.MustCompile(`[!@#~$%^&*()_+\-=\[\]{};':"\\|,.<>\/?]`)
	passwordRule = []*regexp.Regexp{upperRegex, lowerRegex, digitRegex, symbolRegex}
)

func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return customErrors.WeakPassword
	}
	for _, rule := range passwordRule {
		if !rule.MatchString(password) {
			return customErrors.WeakPassword
		}
	}
	return nil
}
