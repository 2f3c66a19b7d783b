//go:build linux || darwin

package rawsocket

import (
	"os"

	"rawtun/infrastructure/PAL/sys"

	"golang.org/x/sys/unix"
)

// Opener opens IPv4 raw sockets with IP_HDRINCL set, so every write must carry
// a complete IP header.
type Opener struct {
	sys sys.Syscalls
}

func NewOpener(syscalls sys.Syscalls) *Opener {
	return &Opener{sys: syscalls}
}

// Open returns the descriptor of a new raw socket. On error no descriptor is left open.
func (o *Opener) Open() (int, error) {
	fd, err := o.sys.Socket(unix.AF_INET, unix.SOCK_RAW, unix.IPPROTO_RAW)
	if err != nil {
		return -1, os.NewSyscallError("socket", err)
	}

	shouldClose := true
	defer func() {
		if shouldClose {
			_ = o.sys.Close(fd)
		}
	}()

	if err = o.sys.SetsockoptInt(fd, unix.IPPROTO_IP, unix.IP_HDRINCL, 1); err != nil {
		return -1, os.NewSyscallError("setsockopt IP_HDRINCL", err)
	}

	shouldClose = false
	return fd, nil
}
