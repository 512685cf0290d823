package appointment

import "fmt"

type Status string

// The six-state lifecycle. waiting is initial; completed and cancelled
// are terminal; cancelled is reachable from any non-terminal state.
const (
	StatusWaiting    Status = "waiting"
	StatusConfirmed  Status = "confirmed"
	StatusCheckedIn  Status = "checked_in"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

// AllStatuses in lifecycle order; the views offer every one as a target
// regardless of the current state.
var AllStatuses = []Status{
	StatusWaiting, StatusConfirmed, StatusCheckedIn,
	StatusInProgress, StatusCompleted, StatusCancelled,
}

var KnownStatuses = map[Status]struct{}{
	StatusWaiting: {}, StatusConfirmed: {}, StatusCheckedIn: {},
	StatusInProgress: {}, StatusCompleted: {}, StatusCancelled: {},
}

func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if _, ok := KnownStatuses[st]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownStatus, s)
	}
	return st, nil
}

func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// Plausible reports whether the documented lifecycle would accept a
// from→to change. Advisory only: the views use it to annotate choices,
// never to guard a request. The server is the sole authority and its
// rejections are handled identically whether or not this agrees.
func Plausible(from, to Status) bool {
	if from == to {
		return true
	}
	if to == StatusCancelled {
		return !from.Terminal()
	}
	switch from {
	case StatusWaiting:
		return to == StatusConfirmed
	case StatusConfirmed:
		return to == StatusCheckedIn
	case StatusCheckedIn:
		return to == StatusInProgress
	case StatusInProgress:
		return to == StatusCompleted
	default:
		return false
	}
}
