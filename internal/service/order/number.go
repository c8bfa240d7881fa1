package order

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

const (
	numberPrefix = "ON"
	numberDigits = 5

	// maxNumberAttempts bounds the collision retry loop so a corrupted store
	// with a dense run of colliding numbers cannot spin forever.
	maxNumberAttempts = 1000
)

// formatOrderNumber renders a sequence as ON + zero-padded 5 digits
// (ON00001). Sequences beyond 99999 simply grow wider.
func formatOrderNumber(seq int) string {
	return fmt.Sprintf("%s%0*d", numberPrefix, numberDigits, seq)
}

// nextSequence derives the candidate sequence from the most recent order
// number. A missing or non-conforming last number restarts the sequence at 1
// rather than failing the whole operation.
func nextSequence(last string) int {
	if !strings.HasPrefix(last, numberPrefix) {
		return 1
	}
	n, err := strconv.Atoi(last[len(numberPrefix):])
	if err != nil || n < 0 {
		return 1
	}
	return n + 1
}

// allocateOrderNumber produces the next free order number. It seeds the
// candidate from the latest stored number, then re-checks the store before
// claiming it; a concurrent allocator that won the race just bumps the
// candidate. Best effort, not transactional: the unique index on
// orders.number is the final safety net.
func (s *Service) allocateOrderNumber(ctx context.Context) (string, error) {
	last, err := s.orders.LastOrderNumber(ctx)
	if err != nil {
		return "", &StorageError{Op: "read last order number", Err: err}
	}

	seq := nextSequence(last)
	for attempt := 0; attempt < maxNumberAttempts; attempt++ {
		number := formatOrderNumber(seq)
		existing, err := s.orders.FindByNumber(ctx, number)
		if err != nil {
			return "", &StorageError{Op: "check order number", Err: err}
		}
		if existing == nil {
			return number, nil
		}
		seq++
	}

	return "", ErrAllocationExhausted
}
