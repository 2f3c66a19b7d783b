package platform

import (
	"rawtun/application/logging"
	"rawtun/application/network/tunnel"
	"rawtun/infrastructure/PAL/darwin/utun"
	"rawtun/infrastructure/PAL/exec_commander"
	"rawtun/infrastructure/PAL/network/darwin/ifconfig"
	"rawtun/infrastructure/PAL/sys"
)

type darwinCaps struct{}

func (darwinCaps) MultiQueueSupported() bool { return false }

// Capabilities returns the platform capabilities for darwin.
func Capabilities() Caps { return darwinCaps{} }

// NewTunnelOpener returns the utun opener. devicePath has no meaning on darwin.
func NewTunnelOpener(_ string, logger logging.Logger) (tunnel.Opener, error) {
	return utun.NewOpener(sys.Default(), logger), nil
}

func NewConfigurer(logger logging.Logger) (tunnel.Configurer, error) {
	return ifconfig.NewConfigurer(exec_commander.NewExecCommander(logger)), nil
}
