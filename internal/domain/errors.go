package domain

import (
	"errors"
	"fmt"
)

type ValidationError struct {
	Field string
	Msg   string
	Err   error
}

func (e ValidationError) Error() string {
	if e.Msg != "" && e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Msg)
	}
	if e.Msg != "" {
		return e.Msg
	}
	if e.Field != "" {
		return fmt.Sprintf("invalid %s", e.Field)
	}
	return "validation error"
}

func (e ValidationError) Unwrap() error { return e.Err }

type NotFoundError struct {
	Resource string
	Err      error
}

func (e NotFoundError) Error() string {
	if e.Resource == "" {
		return "not found"
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

func (e NotFoundError) Unwrap() error { return e.Err }

// SoldOutError covers schedules with no remaining seats and schedules
// that are no longer open for sale (cancelled or completed).
type SoldOutError struct {
	ScheduleID int64
}

func (e SoldOutError) Error() string {
	return fmt.Sprintf("schedule %d has no available seats", e.ScheduleID)
}

type SeatTakenError struct {
	ScheduleID int64
	SeatNumber int
}

func (e SeatTakenError) Error() string {
	return fmt.Sprintf("seat %d on schedule %d is already taken", e.SeatNumber, e.ScheduleID)
}

// UnavailableError marks storage failures where nothing was committed,
// so the caller may safely retry the whole request.
type UnavailableError struct {
	Msg string
	Err error
}

func (e UnavailableError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return "storage unavailable"
}

func (e UnavailableError) Unwrap() error { return e.Err }

type InternalError struct {
	Msg string
	Err error
}

func (e InternalError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return "internal error"
}

func (e InternalError) Unwrap() error { return e.Err }

func IsValidation(err error) bool {
	var target ValidationError
	return errors.As(err, &target)
}

func IsNotFound(err error) bool {
	var target NotFoundError
	return errors.As(err, &target)
}

func IsSoldOut(err error) bool {
	var target SoldOutError
	return errors.As(err, &target)
}

func IsSeatTaken(err error) bool {
	var target SeatTakenError
	return errors.As(err, &target)
}

func IsUnavailable(err error) bool {
	var target UnavailableError
	return errors.As(err, &target)
}

func IsInternal(err error) bool {
	var target InternalError
	return errors.As(err, &target)
}
