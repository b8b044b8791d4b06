// Package daemon schedules daily cleanup runs and guards against concurrent
// daemon instances with a file lock.
package daemon
