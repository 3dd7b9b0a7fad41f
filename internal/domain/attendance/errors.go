package attendance

import "errors"

var (
	ErrAttendanceNotFound = errors.New("attendance record not found")
	ErrAlreadyCheckedIn   = errors.New("attendance already marked for this day")
	ErrAlreadyCheckedOut  = errors.New("attendance already checked out")
	ErrCheckOutBeforeIn   = errors.New("check-out time is before check-in time")
)
