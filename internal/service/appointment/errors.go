package appointment

import "errors"

var (
	ErrUnknownStatus = errors.New("unknown appointment status")

	// ErrInvalidTransition is a server rejection of a status change.
	// The displayed status stays unchanged.
	ErrInvalidTransition = errors.New("status change not allowed from the current state")

	// ErrScheduleConflict is the losing side of a reschedule race: the
	// staff member already has a booking overlapping the requested
	// window. Recoverable; the operator picks another time.
	ErrScheduleConflict = errors.New("slot already taken, choose another time")
)
