//go:build !linux && !darwin

// File: reactor/reactor_stub.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package reactor

import "github.com/momentics/coopsched/api"

func newPlatformReactor() (api.Reactor, error) {
	return nil, api.ErrUnsupportedPlatform
}
