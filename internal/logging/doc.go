// Package logging provides the logging interface used by the limbkern
// command and its calibration harness. The kernels themselves never log.
package logging
