//go:build linux || darwin

package sys

import "golang.org/x/sys/unix"

type unixSyscalls struct {
}

// Default returns the Syscalls backed by the running kernel.
func Default() Syscalls {
	return unixSyscalls{}
}

func (unixSyscalls) Open(path string, mode int) (int, error) {
	return unix.Open(path, mode, 0)
}

func (unixSyscalls) Socket(domain, typ, proto int) (int, error) {
	return unix.Socket(domain, typ, proto)
}

func (unixSyscalls) Close(fd int) error {
	return unix.Close(fd)
}

func (unixSyscalls) SetsockoptInt(fd, level, opt, value int) error {
	return unix.SetsockoptInt(fd, level, opt, value)
}
