// Package pool
// Author: momentics <momentics@gmail.com>
//
// Workload payload buffer pooling for jobmux. The engine routes every
// workload allocation through an api.AllocFn/api.FreeFn pair; when the
// caller registers none, the shared pool in this package is the default.
// Pooling applies only to workload payloads, never to engine, connection,
// or packet structural state.
package pool
