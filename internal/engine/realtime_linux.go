//go:build linux

package engine

import (
	"github.com/charmbracelet/log"
	"golang.org/x/sys/unix"
)

// tryElevatePriority best-effort requests SCHED_FIFO for the calling
// OS thread. It is advisory only: correctness never depends on this
// succeeding, and a normal unprivileged process will simply fail and
// carry on at the default scheduling policy.
func tryElevatePriority(logger *log.Logger) {
	param := &unix.SchedParam{Priority: 1}
	if err := unix.SchedSetscheduler(0, unix.SCHED_FIFO, param); err != nil {
		logger.Debug("could not elevate worker thread scheduling priority", "err", err)
	}
}
