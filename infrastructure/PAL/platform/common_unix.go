//go:build linux || darwin

package platform

import (
	"rawtun/application/network/tunnel"
	"rawtun/infrastructure/PAL/ifctl"
	"rawtun/infrastructure/PAL/rawsocket"
	"rawtun/infrastructure/PAL/sys"
)

func NewRawSocketOpener() (tunnel.RawSocketOpener, error) {
	return rawsocket.NewOpener(sys.Default()), nil
}

func NewMTUController() (tunnel.MTUController, error) {
	return ifctl.NewController(sys.Default()), nil
}

func NewDescriptorCloser() (tunnel.DescriptorCloser, error) {
	return sys.Default(), nil
}
