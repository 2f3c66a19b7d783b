// Package subnet holds the address helpers used when assigning subnets to tunnel interfaces.
package subnet

import (
	"errors"
	"fmt"
	"net"
	"net/netip"
)

var ErrInvalidMask = errors.New("invalid netmask")

// Of returns the single-host subnet of addr: /32 for IPv4, /128 for IPv6.
func Of(addr netip.Addr) netip.Prefix {
	addr = addr.Unmap()
	return netip.PrefixFrom(addr, addr.BitLen())
}

// FromMask builds the subnet of addr with the prefix length encoded by mask.
func FromMask(addr netip.Addr, mask []byte) (netip.Prefix, error) {
	bits, err := PrefixFromMask(mask)
	if err != nil {
		return netip.Prefix{}, err
	}
	addr = addr.Unmap()
	if len(mask)*8 != addr.BitLen() {
		return netip.Prefix{}, fmt.Errorf("%w: %d-bit mask for %s", ErrInvalidMask, len(mask)*8, addr)
	}
	return netip.PrefixFrom(addr, bits), nil
}

// PrefixFromMask converts a netmask to a prefix length, rejecting non-contiguous masks.
func PrefixFromMask(mask []byte) (int, error) {
	ones, bits := net.IPMask(mask).Size()
	if bits == 0 {
		return 0, fmt.Errorf("%w: % x", ErrInvalidMask, mask)
	}
	return ones, nil
}

// Parse accepts either a CIDR prefix or a bare address, the latter as a host subnet.
// The address part is kept as written; it is not masked to the network address.
func Parse(s string) (netip.Prefix, error) {
	if p, err := netip.ParsePrefix(s); err == nil {
		return p, nil
	}
	addr, err := netip.ParseAddr(s)
	if err != nil {
		return netip.Prefix{}, fmt.Errorf("invalid subnet %q", s)
	}
	return Of(addr), nil
}
