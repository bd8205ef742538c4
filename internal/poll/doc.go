// File: internal/poll/doc.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Package poll wraps the platform readiness primitive behind
// api.ReadinessPoller. Unix builds use poll(2) via golang.org/x/sys;
// other platforms get a stub that reports api.ErrNotSupported.
//
// The wrapper performs exactly one poll call per invocation. An EINTR
// wake-up is surfaced as api.ErrInterrupted instead of being retried
// here; retry policy belongs to the caller.
package poll
