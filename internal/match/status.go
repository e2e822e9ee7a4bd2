package match

import (
	"strings"

	"github.com/mauv0809/crease/internal/apperr"
)

// Status is the lifecycle state of a match.
type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusLive      Status = "live"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

var validStatuses = []Status{StatusLive, StatusCompleted, StatusCancelled, StatusScheduled}

// transitions lists the allowed moves out of each state. Terminal states have none.
var transitions = map[Status][]Status{
	StatusScheduled: {StatusLive, StatusCompleted, StatusCancelled},
	StatusLive:      {StatusCompleted, StatusCancelled},
}

// ParseStatus validates a status name.
func ParseStatus(raw string) (Status, error) {
	for _, s := range validStatuses {
		if string(s) == raw {
			return s, nil
		}
	}
	names := make([]string, len(validStatuses))
	for i, s := range validStatuses {
		names[i] = string(s)
	}
	return "", apperr.Validation("status must be one of: %s", strings.Join(names, ", "))
}

// Terminal reports whether no further transitions are possible.
func (s Status) Terminal() bool {
	return len(transitions[s]) == 0
}

// CanTransitionTo reports whether a match in s may move to next.
// Re-applying the current status is allowed and changes nothing.
func (s Status) CanTransitionTo(next Status) bool {
	if s == next {
		return true
	}
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}
