// Package sys is the narrow set of kernel entry points used to provision raw sockets
// and tunnel interfaces. Openers depend on Syscalls rather than on golang.org/x/sys/unix
// directly so descriptor accounting can be checked against a fake kernel.
package sys

// Syscalls abstracts the system calls issued while provisioning devices.
//
// Every method is a single blocking kernel round trip. Implementations never retain
// descriptors: whatever Open or Socket returns is owned by the caller.
type Syscalls interface {
	Open(path string, mode int) (int, error)
	Socket(domain, typ, proto int) (int, error)
	Close(fd int) error
	SetsockoptInt(fd, level, opt, value int) error

	// SetInterfaceFlags issues TUNSETIFF on fd. An empty name lets the kernel pick one.
	// The returned name is the one the kernel bound fd to.
	SetInterfaceFlags(fd int, name string, flags uint16) (string, error)
	// InterfaceMTU issues SIOCGIFMTU for name using fd as the ioctl handle.
	InterfaceMTU(fd int, name string) (int, error)
	// SetInterfaceMTU issues SIOCSIFMTU for name using fd as the ioctl handle.
	SetInterfaceMTU(fd int, name string, mtu int) error

	// ControlID resolves a kernel control name to its numeric id (CTLIOCGINFO).
	ControlID(fd int, name string) (uint32, error)
	// ConnectControl connects fd to the kernel control id at the given unit.
	ConnectControl(fd int, id, unit uint32) error
}
