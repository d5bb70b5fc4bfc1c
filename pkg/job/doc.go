// Package job runs periodic maintenance tasks in process on a cron
// scheduler (robfig/cron).
//
// Tasks are structs with Name(), Schedule() and Handle(ctx) methods, or
// plain functions registered with WithScheduledFunc:
//
//	manager, err := job.NewManager(
//	    job.WithScheduledTask(disposableDomains),
//	    job.WithTaskTimeout(time.Minute),
//	    job.WithLogger(logger),
//	)
//
// Schedules accept 5-field cron expressions and descriptors ("@hourly",
// "@every 24h"). Task panics are recovered and logged.
//
// The manager plugs into the app lifecycle:
//
//	app.Run(addr,
//	    essencek.StartupHook(manager.StartFunc()),
//	    essencek.ShutdownHook(manager.Shutdown()),
//	)
package job
