package planner

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComplete_Adhoc(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	next := Complete(TaskState{Order: 30, IsAdhoc: true}, now)

	assert.True(t, next.Completed)
	require.NotNil(t, next.CompletedAt)
	assert.Equal(t, now, *next.CompletedAt)
	assert.Equal(t, 0, next.Order)
}

func TestComplete_TemplatedKeepsOrder(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	next := Complete(TaskState{Order: 20}, now)

	assert.True(t, next.Completed)
	assert.Equal(t, 20, next.Order)

	reopened := Reopen(next, QueueTail{Order: 90, Exists: true})
	assert.False(t, reopened.Completed)
	assert.Nil(t, reopened.CompletedAt)
	assert.Equal(t, 20, reopened.Order)
}

func TestComplete_AlreadyCompleted(t *testing.T) {
	first := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	state := Complete(TaskState{Order: 10, IsAdhoc: true}, first)

	again := Complete(state, first.Add(time.Hour))

	assert.Equal(t, first, *again.CompletedAt)
}

func TestReopen_AdhocGoesToBackOfQueue(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	completed := Complete(TaskState{Order: 10, IsAdhoc: true}, now)

	reopened := Reopen(completed, QueueTail{Order: 40, Exists: true})

	assert.False(t, reopened.Completed)
	assert.Nil(t, reopened.CompletedAt)
	assert.Equal(t, 50, reopened.Order, "reopened tasks never return to their old slot")
}

func TestReopen_AdhocEmptyQueue(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	completed := Complete(TaskState{Order: 70, IsAdhoc: true}, now)

	assert.Equal(t, 10, Reopen(completed, QueueTail{}).Order)
}

func TestReopen_OpenTaskUnchanged(t *testing.T) {
	state := TaskState{Order: 30, IsAdhoc: true}

	assert.Equal(t, state, Reopen(state, QueueTail{Order: 90, Exists: true}))
}

func TestNextOrder(t *testing.T) {
	assert.Equal(t, 10, NextOrder(QueueTail{}))
	assert.Equal(t, 10, NextOrder(QueueTail{Order: 0, Exists: true}))
	assert.Equal(t, 40, NextOrder(QueueTail{Order: 30, Exists: true}))
	assert.Equal(t, 30, MaterializedOrder(3))
}
