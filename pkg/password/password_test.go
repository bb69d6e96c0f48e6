package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndCheck(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)

	hash, err := h.HashPassword("Password1!")
	require.NoError(t, err)
	assert.NotEqual(t, "Password1!", hash)

	assert.NoError(t, h.CheckPasswordHash("Password1!", hash))
	assert.ErrorIs(t, h.CheckPasswordHash("Password2!", hash), bcrypt.ErrMismatchedHashAndPassword)
}

func TestNewHasher_OutOfRangeCostFallsBack(t *testing.T) {
	assert.Equal(t, DefaultCost, NewHasher(0).cost)
	assert.Equal(t, DefaultCost, NewHasher(bcrypt.MaxCost+1).cost)
	assert.Equal(t, bcrypt.MinCost, NewHasher(bcrypt.MinCost).cost)
}
