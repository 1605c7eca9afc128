//go:build !linux

package engine

import "github.com/charmbracelet/log"

// tryElevatePriority is a no-op on platforms without SCHED_FIFO.
func tryElevatePriority(_ *log.Logger) {}
