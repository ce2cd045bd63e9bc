package planner

import "github.com/yukikurage/daily-planner-api/internal/constants"

// QueueTail is the highest order among a user's open adhoc tasks. Exists is
// false when the user has none.
type QueueTail struct {
	Order  int
	Exists bool
}

// NextOrder returns the order that appends a task after tail.
func NextOrder(tail QueueTail) int {
	if !tail.Exists {
		return constants.OrderGap
	}
	return tail.Order + constants.OrderGap
}

// MaterializedOrder maps a template task position to the order of the daily
// task created from it, leaving gaps for later manual inserts.
func MaterializedOrder(templateOrder int) int {
	return templateOrder * constants.OrderGap
}
