//go:build linux || darwin

// Package tun_device turns provisioned tunnel queues into packet devices.
package tun_device

import (
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/sys/unix"
	wgtun "golang.zx2c4.com/wireguard/tun"

	"rawtun/domain/network/tunnel"
)

var ErrNoQueues = errors.New("tunnel has no queues")

// New wraps the primary queue of iface in a wireguard tun.Device. The primary descriptor
// is consumed whether or not New succeeds; extra queues stay with the caller.
func New(iface tunnel.Interface, mtu int) (wgtun.Device, error) {
	fd := iface.Primary()
	if fd < 0 {
		return nil, ErrNoQueues
	}
	if err := unix.SetNonblock(fd, true); err != nil {
		_ = unix.Close(fd)
		return nil, os.NewSyscallError("setnonblock", err)
	}
	return fromFile(os.NewFile(uintptr(fd), iface.Name), iface.Name, mtu)
}

// OpenQueues takes ownership of every queue of iface, on success and on failure alike.
// The primary queue is served by a packet device, extra queues by pollable files, so
// Close unblocks a pending Read on any of them.
func OpenQueues(iface tunnel.Interface, mtu int) ([]io.ReadWriteCloser, error) {
	if len(iface.Queues) == 0 {
		return nil, ErrNoQueues
	}
	for _, fd := range iface.Queues {
		if err := unix.SetNonblock(fd, true); err != nil {
			for _, q := range iface.Queues {
				_ = unix.Close(q)
			}
			return nil, os.NewSyscallError("setnonblock", err)
		}
	}

	files := iface.Files()
	dev, err := fromFile(files[0], iface.Name, mtu)
	if err != nil {
		for _, f := range files[1:] {
			_ = f.Close()
		}
		return nil, err
	}

	queues := []io.ReadWriteCloser{NewAdapter(dev)}
	for _, f := range files[1:] {
		queues = append(queues, f)
	}
	return queues, nil
}

// fromFile closes f if the device cannot be created.
func fromFile(f *os.File, name string, mtu int) (wgtun.Device, error) {
	dev, err := wgtun.CreateTUNFromFile(f, mtu)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("failed to create packet device on %s: %w", name, err)
	}
	return dev, nil
}
