//go:build linux || darwin

// Package ifctl reads and writes interface properties through ioctls on a throwaway
// datagram socket. Nothing is cached: each call is a fresh round trip keyed by name.
package ifctl

import (
	"fmt"

	"rawtun/domain/network/tunnel"
	"rawtun/infrastructure/PAL/sys"

	"golang.org/x/sys/unix"
)

type Controller struct {
	sys sys.Syscalls
}

func NewController(syscalls sys.Syscalls) *Controller {
	return &Controller{sys: syscalls}
}

// MTU returns the current MTU of the named interface.
func (c *Controller) MTU(name string) (int, error) {
	if err := tunnel.ValidateName(name); err != nil {
		return 0, err
	}

	var mtu int
	err := c.withControlSocket(func(fd int) error {
		var ioctlErr error
		mtu, ioctlErr = c.sys.InterfaceMTU(fd, name)
		if ioctlErr != nil {
			return fmt.Errorf("ioctl SIOCGIFMTU %s: %w", name, ioctlErr)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return mtu, nil
}

// SetMTU sets the MTU of the named interface.
func (c *Controller) SetMTU(name string, mtu int) error {
	if err := tunnel.ValidateName(name); err != nil {
		return err
	}

	return c.withControlSocket(func(fd int) error {
		if err := c.sys.SetInterfaceMTU(fd, name, mtu); err != nil {
			return fmt.Errorf("ioctl SIOCSIFMTU %s=%d: %w", name, mtu, err)
		}
		return nil
	})
}

// withControlSocket runs fn against a datagram socket that exists only for the ioctl.
func (c *Controller) withControlSocket(fn func(fd int) error) error {
	fd, err := c.sys.Socket(unix.AF_INET, unix.SOCK_DGRAM, 0)
	if err != nil {
		return fmt.Errorf("open control socket: %w", err)
	}
	defer func() {
		_ = c.sys.Close(fd)
	}()

	return fn(fd)
}
