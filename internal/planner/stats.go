package planner

import "math"

// CompletionRate returns completed/total as a percentage rounded to two
// decimals, or 0 when total is 0.
func CompletionRate(completed, total int64) float64 {
	if total <= 0 {
		return 0
	}
	rate := float64(completed) * 100 / float64(total)
	return math.Round(rate*100) / 100
}
