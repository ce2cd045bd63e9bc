package planner

import (
	"time"

	"github.com/yukikurage/daily-planner-api/internal/models"
)

// TaskState is the part of a daily task that completion transitions touch.
type TaskState struct {
	Completed   bool
	CompletedAt *time.Time
	Order       int
	IsAdhoc     bool
}

// StateOf extracts the transition state of a daily task.
func StateOf(task models.DailyTask) TaskState {
	return TaskState{
		Completed:   task.Completed,
		CompletedAt: task.CompletedAt,
		Order:       task.Order,
		IsAdhoc:     task.IsAdhoc,
	}
}

// ApplyTo writes the state back onto task.
func (s TaskState) ApplyTo(task *models.DailyTask) {
	task.Completed = s.Completed
	task.CompletedAt = s.CompletedAt
	task.Order = s.Order
}

// Complete marks the task done at now. Adhoc tasks leave the open queue and
// get order 0. Completing a completed task changes nothing.
func Complete(s TaskState, now time.Time) TaskState {
	if s.Completed {
		return s
	}

	next := s
	next.Completed = true
	completedAt := now
	next.CompletedAt = &completedAt
	if s.IsAdhoc {
		next.Order = 0
	}
	return next
}

// Reopen marks the task open again. Adhoc tasks go to the back of the open
// queue described by tail; they never return to their previous slot.
// Reopening an open task changes nothing.
func Reopen(s TaskState, tail QueueTail) TaskState {
	if !s.Completed {
		return s
	}

	next := s
	next.Completed = false
	next.CompletedAt = nil
	if s.IsAdhoc {
		next.Order = NextOrder(tail)
	}
	return next
}
