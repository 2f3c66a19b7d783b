package tunnel

import (
	"net/netip"

	"rawtun/domain/network/tunnel"
)

// Opener provisions a tunnel interface. extraQueues asks for that many queues beyond
// the primary; platforms without multi-queue support ignore it.
type Opener interface {
	OpenTunnel(extraQueues int) (tunnel.Interface, error)
}

// RawSocketOpener opens an IPv4 raw socket whose writes carry the full IP header.
type RawSocketOpener interface {
	Open() (int, error)
}

// MTUController reads and writes the MTU of an interface by name.
type MTUController interface {
	MTU(name string) (int, error)
	SetMTU(name string, mtu int) error
}

// Configurer changes link state and addresses of an interface.
type Configurer interface {
	Up(name string) error
	AddSubnet(name string, subnet netip.Prefix) error
	RemoveSubnet(name string, subnet netip.Prefix) error
	Subnets(name string) ([]netip.Prefix, error)
}

// DescriptorCloser closes descriptors the provisioner owns.
type DescriptorCloser interface {
	Close(fd int) error
}
