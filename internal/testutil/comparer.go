package testutil

import (
	"time"

	"github.com/google/go-cmp/cmp"
)

// TimeWithinTolerance treats two times as equal when they differ by at most
// toleranceMs milliseconds, regardless of location.
func TimeWithinTolerance(toleranceMs int) cmp.Option {
	tolerance := time.Duration(toleranceMs) * time.Millisecond

	return cmp.Comparer(func(x, y time.Time) bool {
		diff := x.Sub(y)
		if diff < 0 {
			diff = -diff
		}
		return diff <= tolerance
	})
}
