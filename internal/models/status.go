package models

// Task lifecycle states, in board order.
const (
	StatusBacklog    = "backlog"
	StatusTodo       = "todo"
	StatusInProgress = "in_progress"
	StatusInReview   = "in_review"
	StatusDone       = "done"
)

// DefaultTaskStatus is applied to tasks created without a status.
const DefaultTaskStatus = StatusTodo

// DefaultStoryStatus is applied to stories created without a status column.
const DefaultStoryStatus = StatusBacklog

// TaskStatuses lists every state in board order.
var TaskStatuses = []string{StatusBacklog, StatusTodo, StatusInProgress, StatusInReview, StatusDone}

// IsValidStatus reports whether s is one of the five task states.
func IsValidStatus(s string) bool { return contains(TaskStatuses, s) }

// CanTransition reports whether a task may move from one state to another.
// Moves between open states are unrestricted. Done is terminal except for
// a reopen back to in_progress.
func CanTransition(from, to string) bool {
	if !IsValidStatus(to) {
		return false
	}
	if from == to {
		return true
	}
	if from == StatusDone {
		return to == StatusInProgress
	}
	return true
}
