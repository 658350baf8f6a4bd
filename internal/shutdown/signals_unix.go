//go:build !windows

package shutdown

import (
	"os"
	"syscall"
)

var notifySignals = []os.Signal{os.Interrupt, syscall.SIGTERM, syscall.SIGHUP}
