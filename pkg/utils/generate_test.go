package utils

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateTicketNumber(t *testing.T) {
	hexUpper := regexp.MustCompile(`^[0-9A-F]{12}$`)

	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		ticket := GenerateTicketNumber()
		require.Len(t, ticket, TicketNumberLength)
		assert.Regexp(t, hexUpper, ticket)
		seen[ticket] = true
	}

	// Collisions across 1000 draws of 48 random bits would be a bug in
	// the generator, not bad luck.
	assert.Len(t, seen, 1000)
}

func TestGenerateSessionToken(t *testing.T) {
	a := GenerateSessionToken()
	b := GenerateSessionToken()

	assert.NotEqual(t, a, b)
	assert.NotEmpty(t, a.String())
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", hash)

	assert.True(t, CheckPassword(hash, "s3cret-pass"))
	assert.False(t, CheckPassword(hash, "wrong-pass"))
}

func TestCalculateTotalPages(t *testing.T) {
	assert.Equal(t, 3, CalculateTotalPages(25, 10))
	assert.Equal(t, 1, CalculateTotalPages(10, 10))
	assert.Equal(t, 0, CalculateTotalPages(0, 10))
	assert.Equal(t, 0, CalculateTotalPages(10, 0))
}

func TestCalculateOffset(t *testing.T) {
	assert.Equal(t, 0, CalculateOffset(1, 10))
	assert.Equal(t, 20, CalculateOffset(3, 10))
	assert.Equal(t, 0, CalculateOffset(0, 10))
}
