// Package platform selects the tunnel and interface implementations for the build target.
package platform

// Caps describes what the current platform supports.
type Caps interface {
	// MultiQueueSupported reports whether extra tunnel queues can be requested.
	MultiQueueSupported() bool
}
