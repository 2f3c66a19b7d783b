package sys

import "golang.org/x/sys/unix"

// Darwin has no TUNSETIFF; utun interfaces come from kernel control sockets.
func (unixSyscalls) SetInterfaceFlags(int, string, uint16) (string, error) {
	return "", unix.ENOTSUP
}

func (unixSyscalls) InterfaceMTU(fd int, name string) (int, error) {
	ifr, err := unix.IoctlGetIfreqMTU(fd, name)
	if err != nil {
		return 0, err
	}
	return int(ifr.MTU), nil
}

func (unixSyscalls) SetInterfaceMTU(fd int, name string, mtu int) error {
	ifr := &unix.IfreqMTU{MTU: int32(mtu)}
	copy(ifr.Name[:], name)
	return unix.IoctlSetIfreqMTU(fd, ifr)
}
