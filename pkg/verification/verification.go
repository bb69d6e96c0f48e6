package verification

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"

	"github.com/google/uuid"
)

const DefaultCodeLength = 6

// GenerateVerificationCode returns a zero-padded numeric code of the given length.
func GenerateVerificationCode(length int) (string, error) {
	if length <= 0 {
		length = DefaultCodeLength
	}
	max := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(length)), nil)
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", fmt.Errorf("failed to generate verification code: %w", err)
	}
	return fmt.Sprintf("%0*d", length, n), nil
}

// PlaceholderCredentials returns a throwaway username and password that satisfy
// the store's not-null and unique constraints for an unfinished profile.
func PlaceholderCredentials() (username, password string) {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "pending_" + id, uuid.NewString()
}
