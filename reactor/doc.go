// File: reactor/doc.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

// Package reactor provides the OS readiness backends implementing
// api.Reactor. The unix backend multiplexes descriptor readiness with
// poll(2) and carries a self-pipe so a blocked poll can be interrupted
// from another goroutine (shutdown delivery).
package reactor
