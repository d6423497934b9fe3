package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHash_AnyLength(t *testing.T) {
	s := &userService{bcryptCost: bcrypt.MinCost}

	for _, password := range []string{
		"",
		"secret",
		strings.Repeat("a", 100),
		strings.Repeat("é", 60),
	} {
		hash, err := s.hash(password)
		require.NoError(t, err)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), prehash(password)))
	}
}

func TestPrehash_DistinguishesLongPasswords(t *testing.T) {
	// bcrypt alone ignores everything after byte 72
	a := strings.Repeat("a", 72) + "1"
	b := strings.Repeat("a", 72) + "2"

	assert.Len(t, prehash(a), 44)
	assert.NotEqual(t, prehash(a), prehash(b))
}
