// Package shutdown decides when and how the server stops.
//
// A Coordinator listens to OS signals and to an internal Trigger:
//
//	SIGTERM, SIGHUP  -> graceful stop on first receipt
//	Trigger()        -> graceful stop
//	SIGINT           -> forced stop; with confirm-exit only a second SIGINT
//	                    within DebounceWindow forces it, a later one counts as
//	                    a new first press
//
// Once decided, Run calls the StopFunc and waits for it. Another SIGINT while
// it drains cancels the StopFunc's context and Run returns ErrForcedExit so
// the process can exit without waiting for a hung drain.
//
// Usage:
//
//	coord := shutdown.New(cfg.ConfirmExit, log)
//	defer coord.Close()
//	err := coord.Run(ctx, func(ctx context.Context, graceful bool) error {
//	    return srv.Stop(ctx, graceful)
//	})
package shutdown
