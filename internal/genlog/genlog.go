// Package genlog is the pipeline's sparse diagnostic logger: cache
// eviction and partial-failure paths log through here rather than
// returning every skipped reference as an error, matching the teacher's
// stdlib-only logging (no structured logger, no log levels beyond the
// default).
package genlog

import "log"

// Debugf logs a formatted diagnostic line, prefixed so pipeline noise is
// easy to grep out of general application logs.
func Debugf(format string, args ...interface{}) {
	log.Printf("meshgen: "+format, args...)
}

// Warnf logs a recoverable problem the pipeline continued past (a missing
// node/edge/part reference, a part that failed to build and was skipped).
func Warnf(format string, args ...interface{}) {
	log.Printf("meshgen: warning: "+format, args...)
}
