//go:build linux || darwin

// Package utun provisions Darwin utun interfaces through the utun kernel control.
//
// Units are claimed by connecting a control socket to them; the kernel accepts a
// connect only for a unit nobody holds, so it alone arbitrates between concurrent
// callers, including callers in other processes.
package utun

import (
	"fmt"

	"rawtun/application/logging"
	"rawtun/domain/network/tunnel"
	"rawtun/infrastructure/PAL/sys"

	"golang.org/x/sys/unix"
)

const (
	ControlName = "com.apple.net.utun_control"

	pfSystem        = 32 // PF_SYSTEM
	sysprotoControl = 2  // SYSPROTO_CONTROL

	firstUnit = 1
	lastUnit  = 255
)

type Opener struct {
	sys    sys.Syscalls
	logger logging.Logger
}

func NewOpener(syscalls sys.Syscalls, logger logging.Logger) *Opener {
	return &Opener{sys: syscalls, logger: logger}
}

// OpenTunnel claims the lowest free utun unit. utun has a single queue per
// interface, so the requested extra queue count is ignored.
func (o *Opener) OpenTunnel(_ int) (tunnel.Interface, error) {
	id, err := o.controlID()
	if err != nil {
		return tunnel.Interface{}, err
	}

	fd, err := o.sys.Socket(pfSystem, unix.SOCK_DGRAM, sysprotoControl)
	if err != nil {
		return tunnel.Interface{}, fmt.Errorf("open utun control socket: %w", err)
	}

	var lastErr error
	for unit := uint32(firstUnit); unit <= lastUnit; unit++ {
		if lastErr = o.sys.ConnectControl(fd, id, unit); lastErr != nil {
			continue
		}

		name := InterfaceName(unit)
		o.logger.Debugf("claimed utun control unit %d as %s", unit, name)
		return tunnel.Interface{Name: name, Queues: []int{fd}}, nil
	}

	_ = o.sys.Close(fd)
	return tunnel.Interface{}, fmt.Errorf("%w: units %d-%d all refused, last error: %v",
		tunnel.ErrUnitsExhausted, firstUnit, lastUnit, lastErr)
}

// controlID resolves the utun control id with a socket used only for the lookup.
func (o *Opener) controlID() (uint32, error) {
	fd, err := o.sys.Socket(pfSystem, unix.SOCK_DGRAM, sysprotoControl)
	if err != nil {
		return 0, fmt.Errorf("open control lookup socket: %w", err)
	}
	defer func() {
		_ = o.sys.Close(fd)
	}()

	id, err := o.sys.ControlID(fd, ControlName)
	if err != nil {
		return 0, fmt.Errorf("ioctl CTLIOCGINFO %s: %w", ControlName, err)
	}
	return id, nil
}

// InterfaceName is the interface the kernel creates for a control unit: unit n is utun(n-1).
func InterfaceName(unit uint32) string {
	return fmt.Sprintf("utun%d", unit-1)
}
