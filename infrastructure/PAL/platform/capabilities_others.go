//go:build !linux && !darwin

package platform

import (
	"fmt"
	"runtime"

	"rawtun/application/logging"
	"rawtun/application/network/tunnel"
	domain "rawtun/domain/network/tunnel"
)

type otherCaps struct{}

func (otherCaps) MultiQueueSupported() bool { return false }

// Capabilities returns the platform capabilities for unsupported targets.
func Capabilities() Caps { return otherCaps{} }

func unsupported() error {
	return fmt.Errorf("%w: %s", domain.ErrUnsupportedPlatform, runtime.GOOS)
}

func NewTunnelOpener(string, logging.Logger) (tunnel.Opener, error) {
	return nil, unsupported()
}

func NewConfigurer(logging.Logger) (tunnel.Configurer, error) {
	return nil, unsupported()
}

func NewRawSocketOpener() (tunnel.RawSocketOpener, error) {
	return nil, unsupported()
}

func NewMTUController() (tunnel.MTUController, error) {
	return nil, unsupported()
}

func NewDescriptorCloser() (tunnel.DescriptorCloser, error) {
	return nil, unsupported()
}
