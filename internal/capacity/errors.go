package capacity

import "errors"

var (
	// ErrInvalidRange indicates startDate is after endDate.
	ErrInvalidRange = errors.New("invalid date range")

	// ErrInvalidProfile indicates profile hours or work days are out of bounds.
	ErrInvalidProfile = errors.New("invalid profile")
)
