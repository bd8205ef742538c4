// File: api/callbacks.go
// Author: momentics <momentics@gmail.com>
//
// Callback signatures injected into the engine. Context pointers from the
// classic C-style registration are modeled as closure captures.

package api

// Verbosity grades log messages from most to least severe.
type Verbosity int

const (
	VerboseFatal Verbosity = iota
	VerboseError
	VerboseInfo
	VerboseDebug
)

func (v Verbosity) String() string {
	switch v {
	case VerboseFatal:
		return "FATAL"
	case VerboseError:
		return "ERROR"
	case VerboseInfo:
		return "INFO"
	case VerboseDebug:
		return "DEBUG"
	default:
		return "UNKNOWN"
	}
}

// LogFn receives log lines at or above the registered verbosity threshold.
type LogFn func(level Verbosity, msg string)

// EventWatchFn is invoked whenever a connection's desired-event mask
// changes, so an external reactor can mirror the engine's interest set.
type EventWatchFn func(conn Conn, events EventMask)

// AllocFn allocates a workload payload buffer of at least size bytes.
// Returning nil signals allocation failure.
type AllocFn func(size int) []byte

// FreeFn releases a buffer previously handed out by the paired AllocFn.
type FreeFn func(buf []byte)
