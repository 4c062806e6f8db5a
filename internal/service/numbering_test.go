package service

import (
	"errors"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateNumber_Format(t *testing.T) {
	pattern := regexp.MustCompile(`^ORD\d{4}$`)
	neverTaken := func(string) (bool, error) { return false, nil }

	for i := 0; i < 100; i++ {
		number, err := generateNumber(orderNumberPrefix, neverTaken)
		require.NoError(t, err)
		assert.Regexp(t, pattern, number)
		assert.NotEqual(t, "ORD0000", number)
	}
}

func TestGenerateNumber_RetriesOnCollision(t *testing.T) {
	calls := 0
	exists := func(string) (bool, error) {
		calls++
		return calls < 3, nil // first two draws collide
	}

	number, err := generateNumber(saleNumberPrefix, exists)
	require.NoError(t, err)
	assert.Regexp(t, `^SAL\d{4}$`, number)
	assert.Equal(t, 3, calls)
}

func TestGenerateNumber_Exhaustion(t *testing.T) {
	calls := 0
	alwaysTaken := func(string) (bool, error) {
		calls++
		return true, nil
	}

	_, err := generateNumber(orderNumberPrefix, alwaysTaken)
	var pe *PersistenceError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, maxNumberAttempts, calls)
}

func TestGenerateNumber_ExistsCheckError(t *testing.T) {
	boom := errors.New("connection reset")
	_, err := generateNumber(orderNumberPrefix, func(string) (bool, error) {
		return false, boom
	})
	assert.ErrorIs(t, err, boom)
}
