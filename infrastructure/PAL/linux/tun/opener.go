//go:build linux || darwin

// Package tun provisions Linux TUN interfaces through /dev/net/tun and TUNSETIFF.
package tun

import (
	"fmt"

	"rawtun/application/logging"
	"rawtun/domain/network/tunnel"
	"rawtun/infrastructure/PAL/sys"

	"golang.org/x/sys/unix"
)

const (
	DevicePath = "/dev/net/tun"

	iffTun        = 0x0001 // TUN device, no Ethernet framing
	iffMultiQueue = 0x0100 // allow more than one queue per interface
	iffNoPi       = 0x1000 // no packet information prefix

	queueFlags = iffTun | iffNoPi | iffMultiQueue
)

type Opener struct {
	sys        sys.Syscalls
	devicePath string
	logger     logging.Logger
}

func NewOpener(syscalls sys.Syscalls, devicePath string, logger logging.Logger) *Opener {
	if devicePath == "" {
		devicePath = DevicePath
	}
	return &Opener{
		sys:        syscalls,
		devicePath: devicePath,
		logger:     logger,
	}
}

// OpenTunnel creates a TUN interface with a kernel-assigned name and attaches
// extraQueues further queues to it.
//
// Extra queues are all-or-nothing: if any of them cannot be attached, every extra
// queue opened so far is closed and the interface is returned with its primary queue
// only. The primary is never torn down because of an extra queue.
func (o *Opener) OpenTunnel(extraQueues int) (tunnel.Interface, error) {
	primary, name, err := o.attach("")
	if err != nil {
		return tunnel.Interface{}, err
	}

	queues := []int{primary}
	if extraQueues > 0 {
		extra, attachErr := o.attachQueues(name, extraQueues)
		if attachErr != nil {
			o.logger.Printf("%s: multi-queue unavailable, continuing with a single queue: %s", name, attachErr)
		} else {
			queues = append(queues, extra...)
		}
	}

	return tunnel.Interface{Name: name, Queues: queues}, nil
}

// attachQueues opens n descriptors bound to the existing interface name.
func (o *Opener) attachQueues(name string, n int) ([]int, error) {
	queues := make([]int, 0, n)
	shouldClose := true
	defer func() {
		if shouldClose {
			for _, fd := range queues {
				_ = o.sys.Close(fd)
			}
		}
	}()

	for i := 0; i < n; i++ {
		fd, _, err := o.attach(name)
		if err != nil {
			return nil, fmt.Errorf("queue %d of %d: %w", i+1, n, err)
		}
		queues = append(queues, fd)
	}

	shouldClose = false
	return queues, nil
}

// attach opens the device node and binds the descriptor to name, or to a new
// kernel-named interface when name is empty. It returns the bound name.
func (o *Opener) attach(name string) (int, string, error) {
	fd, err := o.sys.Open(o.devicePath, unix.O_RDWR|unix.O_CLOEXEC)
	if err != nil {
		return -1, "", fmt.Errorf("failed to open %s: %w", o.devicePath, err)
	}

	shouldClose := true
	defer func() {
		if shouldClose {
			_ = o.sys.Close(fd)
		}
	}()

	assigned, err := o.sys.SetInterfaceFlags(fd, name, queueFlags)
	if err != nil {
		return -1, "", fmt.Errorf("ioctl TUNSETIFF failed for %q: %w", name, err)
	}
	if assigned == "" || len(assigned) > tunnel.MaxNameLen {
		return -1, "", fmt.Errorf("ioctl TUNSETIFF returned unusable name %q", assigned)
	}

	shouldClose = false
	return fd, assigned, nil
}
