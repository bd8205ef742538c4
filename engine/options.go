// File: engine/options.go
// Author: momentics <momentics@gmail.com>
//
// Option flags, blocking-mode bookkeeping, and the I/O timeout.

package engine

import "github.com/momentics/jobmux/api"

// Option names one independently toggleable engine flag.
type Option int

const (
	// OptionNonBlocking switches the engine's I/O into non-blocking mode.
	OptionNonBlocking Option = iota
	// OptionDontTrackPackets stops linking packets into the engine's
	// packet list; the caller then owns every packet's lifetime.
	OptionDontTrackPackets
)

// SetOption toggles one flag. Unknown options record an error and return
// api.ErrUnknownOption.
func (e *Engine) SetOption(opt Option, value bool) error {
	switch opt {
	case OptionNonBlocking:
		e.nonBlocking = value
	case OptionDontTrackPackets:
		e.trackPackets = !value
	default:
		e.SetError("SetOption", "unknown option %d", int(opt))
		return api.ErrUnknownOption
	}
	return nil
}

// AddOptions sets every named option.
func (e *Engine) AddOptions(opts ...Option) {
	for _, opt := range opts {
		_ = e.SetOption(opt, true)
	}
}

// RemoveOptions clears every named option.
func (e *Engine) RemoveOptions(opts ...Option) {
	for _, opt := range opts {
		_ = e.SetOption(opt, false)
	}
}

// IsNonBlocking reports the current blocking mode.
func (e *Engine) IsNonBlocking() bool { return e.nonBlocking }

// IsStoredNonBlocking reports the mode held in the push/pop save slot.
func (e *Engine) IsStoredNonBlocking() bool { return e.storedNonBlocking }

// PushNonBlocking saves the current blocking mode and forces non-blocking
// I/O. The save slot is single level: a second push overwrites the first
// save, so pushes must not nest.
func (e *Engine) PushNonBlocking() {
	e.storedNonBlocking = e.nonBlocking
	e.nonBlocking = true
}

// PopNonBlocking restores the mode saved by the most recent push.
func (e *Engine) PopNonBlocking() {
	e.nonBlocking = e.storedNonBlocking
}

// Timeout returns the I/O activity timeout in milliseconds. Negative
// blocks indefinitely; zero polls without blocking.
func (e *Engine) Timeout() int { return e.timeoutMs }

// SetTimeout sets the I/O activity timeout for subsequent Wait calls.
func (e *Engine) SetTimeout(ms int) { e.timeoutMs = ms }
