package scheduling

import "errors"

// Booking and lifecycle rejections. Handlers map each to a distinct
// user-facing message; ErrSchedulingConflict and ErrOutsideWorkingHours in
// particular must stay distinguishable.
var (
	ErrSchedulingConflict      = errors.New("time slot conflicts with an existing appointment or block")
	ErrOutsideWorkingHours     = errors.New("time slot is outside working hours or during a break")
	ErrInvalidServiceSelection = errors.New("invalid service selection")
	ErrClientBlocked           = errors.New("client is blocked from booking")
	ErrTooShortNotice          = errors.New("not enough advance notice")
	ErrSlotMisaligned          = errors.New("start time is not aligned to the booking granularity")
)
