package platform

import (
	"rawtun/application/logging"
	"rawtun/application/network/tunnel"
	"rawtun/infrastructure/PAL/linux/tun"
	"rawtun/infrastructure/PAL/network/linux/netlink"
	"rawtun/infrastructure/PAL/sys"
)

type linuxCaps struct{}

func (linuxCaps) MultiQueueSupported() bool { return true }

// Capabilities returns the platform capabilities for linux.
func Capabilities() Caps { return linuxCaps{} }

// NewTunnelOpener returns the /dev/net/tun opener. An empty devicePath means tun.DevicePath.
func NewTunnelOpener(devicePath string, logger logging.Logger) (tunnel.Opener, error) {
	return tun.NewOpener(sys.Default(), devicePath, logger), nil
}

func NewConfigurer(_ logging.Logger) (tunnel.Configurer, error) {
	return netlink.NewConfigurer(), nil
}
