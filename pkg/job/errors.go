package job

import "errors"

// Job errors.
var (
	// ErrUnknownTask is returned by RunNow for a name that was never registered.
	ErrUnknownTask = errors.New("job: unknown task")

	// ErrDuplicateTask is returned when two tasks share a name.
	ErrDuplicateTask = errors.New("job: duplicate task name")

	// ErrInvalidSchedule is returned for an unparsable cron expression.
	ErrInvalidSchedule = errors.New("job: invalid schedule")

	// ErrAlreadyStarted is returned when attempting to start a manager
	// that is already running.
	ErrAlreadyStarted = errors.New("job: already started")

	// ErrNotStarted is returned when attempting to stop a manager
	// that is not running.
	ErrNotStarted = errors.New("job: not started")

	// ErrTaskPanicked is returned by RunNow when the task panicked.
	ErrTaskPanicked = errors.New("job: task panicked")
)
