//go:build windows

package shutdown

import (
	"os"
	"syscall"
)

// Console close, logoff and system shutdown events arrive as SIGTERM.
var notifySignals = []os.Signal{os.Interrupt, syscall.SIGTERM}
