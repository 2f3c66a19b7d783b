package sys

import "golang.org/x/sys/unix"

// Kernel controls are a Darwin facility.

func (unixSyscalls) ControlID(int, string) (uint32, error) {
	return 0, unix.EAFNOSUPPORT
}

func (unixSyscalls) ConnectControl(int, uint32, uint32) error {
	return unix.EAFNOSUPPORT
}
