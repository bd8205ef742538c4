// File: api/doc.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Package api defines the contract surface of the jobmux engine: the
// connection and packet collaborator interfaces, event masks, I/O step
// results, callback signatures, and the readiness-poll primitive seam.
//
// The engine itself lives in package engine; concrete transports and
// packet codecs implement these interfaces without the engine knowing
// their internals.
package api
