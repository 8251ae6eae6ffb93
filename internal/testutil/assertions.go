package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// RequireBefore fails unless first appears strictly before second in order.
func RequireBefore(t *testing.T, order []string, first, second string) {
	t.Helper()
	i, j := indexOf(order, first), indexOf(order, second)
	require.NotEqual(t, -1, i, "%q missing from order %v", first, order)
	require.NotEqual(t, -1, j, "%q missing from order %v", second, order)
	require.Less(t, i, j, "%q must precede %q in %v", first, second, order)
}

// RequireUnique fails if any name appears twice in order.
func RequireUnique(t *testing.T, order []string) {
	t.Helper()
	seen := make(map[string]int, len(order))
	for i, n := range order {
		prev, dup := seen[n]
		require.False(t, dup, "%q appears at %d and %d in %v", n, prev, i, order)
		seen[n] = i
	}
}

func indexOf(order []string, name string) int {
	for i, n := range order {
		if n == name {
			return i
		}
	}
	return -1
}
