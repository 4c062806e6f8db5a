package service

import (
	"fmt"
	"math/rand"
)

const (
	orderNumberPrefix = "ORD"
	saleNumberPrefix  = "SAL"

	// How many fresh draws to attempt before giving up. A single blind
	// retry cannot guarantee uniqueness under contention; the unique index
	// on the number column is the final backstop.
	maxNumberAttempts = 5
)

// generateNumber draws PREFIX + zero-padded random number in [1, 9999] until
// exists reports it free, bounded by maxNumberAttempts. Exhaustion is
// reported as a PersistenceError because by then the caller's atomic unit
// cannot proceed.
func generateNumber(prefix string, exists func(string) (bool, error)) (string, error) {
	for attempt := 0; attempt < maxNumberAttempts; attempt++ {
		candidate := fmt.Sprintf("%s%04d", prefix, rand.Intn(9999)+1)
		taken, err := exists(candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
	}
	return "", &PersistenceError{
		Op:  "generate " + prefix + " number",
		Err: fmt.Errorf("no free number after %d attempts", maxNumberAttempts),
	}
}
