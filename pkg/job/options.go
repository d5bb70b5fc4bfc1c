package job

import (
	"context"
	"log/slog"
	"time"
)

// config holds job manager configuration.
type config struct {
	logger    *slog.Logger
	location  *time.Location
	schedules []scheduleConfig
	timeout   time.Duration
}

func newConfig() *config {
	return &config{location: time.Local}
}

// scheduleConfig holds scheduled task configuration.
type scheduleConfig struct {
	handler  scheduledHandler
	name     string
	schedule string
}

// scheduledHandler is a function type for scheduled task handlers.
type scheduledHandler func(context.Context) error

// Option configures the job manager.
type Option func(*config)

// WithScheduledTask registers a periodic task using structural typing.
// The task must implement Name(), Schedule(), and Handle(ctx) methods.
// Schedule() returns a standard 5-field cron expression or a descriptor
// such as "@hourly" or "@every 24h". An empty schedule skips the task.
//
// Example:
//
//	func (l *DomainList) Name() string     { return "disposable_domains" }
//	func (l *DomainList) Schedule() string { return "@every 24h" }
//	func (l *DomainList) Handle(ctx context.Context) error {
//	    return l.Refresh(ctx)
//	}
//
//	job.WithScheduledTask(list)
func WithScheduledTask[T interface {
	Name() string
	Schedule() string
	Handle(context.Context) error
}](task T) Option {
	return WithScheduledFunc(task.Name(), task.Schedule(), task.Handle)
}

// WithScheduledFunc registers fn under name. An empty schedule skips it.
func WithScheduledFunc(name, schedule string, fn func(context.Context) error) Option {
	return func(c *config) {
		if schedule == "" || fn == nil {
			return
		}
		c.schedules = append(c.schedules, scheduleConfig{
			name:     name,
			schedule: schedule,
			handler:  fn,
		})
	}
}

// WithLogger sets the logger for job processing.
// If not set, a noop logger is used.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithTaskTimeout bounds every task run. Zero means no timeout.
func WithTaskTimeout(d time.Duration) Option {
	return func(c *config) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithLocation sets the time zone schedules are evaluated in. Default: time.Local.
func WithLocation(loc *time.Location) Option {
	return func(c *config) {
		if loc != nil {
			c.location = loc
		}
	}
}
