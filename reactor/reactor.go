// File: reactor/reactor.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package reactor

import "github.com/momentics/coopsched/api"

// New returns the readiness backend for the current platform, or
// api.ErrUnsupportedPlatform when none exists.
func New() (api.Reactor, error) {
	return newPlatformReactor()
}
