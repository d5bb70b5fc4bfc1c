package job

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"runtime/debug"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// Manager runs scheduled tasks in process on a cron scheduler.
// Each instance of the site runs its own schedule; tasks must be safe to
// run on every instance.
type Manager struct {
	cron    *cron.Cron
	tasks   map[string]scheduledHandler
	logger  *slog.Logger
	ctx     context.Context
	cancel  context.CancelFunc
	timeout time.Duration

	mu      sync.Mutex
	started bool
}

// NewManager creates a manager and parses every schedule. Call Start to
// begin running them.
func NewManager(opts ...Option) (*Manager, error) {
	cfg := newConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.logger == nil {
		cfg.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	m := &Manager{
		cron:    cron.New(cron.WithLocation(cfg.location)),
		tasks:   make(map[string]scheduledHandler, len(cfg.schedules)),
		logger:  cfg.logger,
		timeout: cfg.timeout,
	}
	for _, sched := range cfg.schedules {
		if _, ok := m.tasks[sched.name]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateTask, sched.name)
		}

		schedule, err := parseCronSchedule(sched.schedule)
		if err != nil {
			return nil, fmt.Errorf("%w %q: %w", ErrInvalidSchedule, sched.schedule, err)
		}

		m.tasks[sched.name] = sched.handler
		name := sched.name
		m.cron.Schedule(schedule, cron.FuncJob(func() {
			_ = m.run(m.ctx, name)
		}))
	}

	return m, nil
}

func parseCronSchedule(expr string) (cron.Schedule, error) {
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
	return parser.Parse(expr)
}

// Start begins running the schedules.
func (m *Manager) Start(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.started {
		return ErrAlreadyStarted
	}

	m.ctx, m.cancel = context.WithCancel(context.Background())
	m.cron.Start()
	m.started = true
	m.logger.Info("job manager started", slog.Int("tasks", len(m.tasks)))
	return nil
}

// Stop halts the scheduler and waits for running tasks until ctx is done.
// Running tasks see their context cancelled when ctx expires.
func (m *Manager) Stop(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.started {
		return ErrNotStarted
	}
	m.started = false

	done := m.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
		m.cancel()
		<-done.Done()
		m.logger.Warn("job manager stopped before tasks completed")
		return ctx.Err()
	}

	m.cancel()
	m.logger.Info("job manager stopped")
	return nil
}

// RunNow runs the named task synchronously, outside its schedule.
func (m *Manager) RunNow(ctx context.Context, name string) error {
	if _, ok := m.tasks[name]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownTask, name)
	}
	return m.run(ctx, name)
}

// Tasks returns the registered task names.
func (m *Manager) Tasks() []string {
	names := make([]string, 0, len(m.tasks))
	for name := range m.tasks {
		names = append(names, name)
	}
	return names
}

func (m *Manager) run(ctx context.Context, name string) (err error) {
	handler := m.tasks[name]
	if m.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.timeout)
		defer cancel()
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %s: %v", ErrTaskPanicked, name, r)
			m.logger.ErrorContext(ctx, "task panicked",
				slog.String("task", name),
				slog.Any("panic", r),
				slog.String("stack", string(debug.Stack())),
			)
		}
	}()

	start := time.Now()
	m.logger.DebugContext(ctx, "executing task", slog.String("task", name))

	if err := handler(ctx); err != nil {
		m.logger.ErrorContext(ctx, "task failed",
			slog.String("task", name),
			slog.Duration("duration", time.Since(start)),
			slog.Any("error", err),
		)
		return err
	}

	m.logger.DebugContext(ctx, "task completed",
		slog.String("task", name),
		slog.Duration("duration", time.Since(start)),
	)
	return nil
}

// Shutdown returns a shutdown function for the job manager.
func (m *Manager) Shutdown() func(context.Context) error {
	return func(ctx context.Context) error {
		return m.Stop(ctx)
	}
}

// StartFunc returns a startup function for the job manager.
func (m *Manager) StartFunc() func(context.Context) error {
	return func(ctx context.Context) error {
		return m.Start(ctx)
	}
}
