// File: api/doc.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

// Package api defines the public contracts of the coopsched engine:
// task lifecycle states, wait reasons, the readiness reactor abstraction,
// and the graceful shutdown interface.
//
// The packages under this module depend on api and never on each other's
// internals, so hosts can swap the readiness backend or the clock without
// touching the scheduler.
package api
