package pricing

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownRoom     = errors.New("unknown room category")
	ErrInvalidSchedule = errors.New("invalid pricing schedule")
)

type ScheduleError struct {
	problems []string
}

func newScheduleError() *ScheduleError {
	return &ScheduleError{}
}

func (e *ScheduleError) add(format string, v ...any) {
	e.problems = append(e.problems, fmt.Sprintf(format, v...))
}

func (e *ScheduleError) count() int {
	return len(e.problems)
}

func (e *ScheduleError) Error() string {
	return fmt.Sprintf("%v: %+v", ErrInvalidSchedule, e.problems)
}

func (e *ScheduleError) Unwrap() error {
	return ErrInvalidSchedule
}

func (e *ScheduleError) Problems() []string {
	return e.problems
}
