//go:build linux

// Package netlink configures link state and addresses of Linux interfaces over rtnetlink.
package netlink

import (
	"fmt"
	"net"
	"net/netip"

	vnl "github.com/vishvananda/netlink"
)

// handle is the subset of rtnetlink requests the configurer issues.
type handle interface {
	LinkByName(name string) (vnl.Link, error)
	LinkSetUp(link vnl.Link) error
	AddrAdd(link vnl.Link, addr *vnl.Addr) error
	AddrDel(link vnl.Link, addr *vnl.Addr) error
	AddrList(link vnl.Link, family int) ([]vnl.Addr, error)
}

type Configurer struct {
	h handle
}

func NewConfigurer() *Configurer {
	return &Configurer{h: packageHandle{}}
}

func (c *Configurer) Up(name string) error {
	link, err := c.h.LinkByName(name)
	if err != nil {
		return fmt.Errorf("failed to find link %s: %w", name, err)
	}
	if err = c.h.LinkSetUp(link); err != nil {
		return fmt.Errorf("failed to set %s up: %w", name, err)
	}
	return nil
}

func (c *Configurer) AddSubnet(name string, subnet netip.Prefix) error {
	link, err := c.h.LinkByName(name)
	if err != nil {
		return fmt.Errorf("failed to find link %s: %w", name, err)
	}
	if err = c.h.AddrAdd(link, toAddr(subnet)); err != nil {
		return fmt.Errorf("failed to add %s to %s: %w", subnet, name, err)
	}
	return nil
}

func (c *Configurer) RemoveSubnet(name string, subnet netip.Prefix) error {
	link, err := c.h.LinkByName(name)
	if err != nil {
		return fmt.Errorf("failed to find link %s: %w", name, err)
	}
	if err = c.h.AddrDel(link, toAddr(subnet)); err != nil {
		return fmt.Errorf("failed to remove %s from %s: %w", subnet, name, err)
	}
	return nil
}

// Subnets lists every IPv4 and IPv6 address assigned to the interface.
func (c *Configurer) Subnets(name string) ([]netip.Prefix, error) {
	link, err := c.h.LinkByName(name)
	if err != nil {
		return nil, fmt.Errorf("failed to find link %s: %w", name, err)
	}
	addrs, err := c.h.AddrList(link, vnl.FAMILY_ALL)
	if err != nil {
		return nil, fmt.Errorf("failed to list addresses of %s: %w", name, err)
	}

	subnets := make([]netip.Prefix, 0, len(addrs))
	for _, a := range addrs {
		p, ok := fromAddr(a)
		if !ok {
			continue
		}
		subnets = append(subnets, p)
	}
	return subnets, nil
}

func toAddr(p netip.Prefix) *vnl.Addr {
	addr := p.Addr().Unmap()
	return &vnl.Addr{IPNet: &net.IPNet{
		IP:   addr.AsSlice(),
		Mask: net.CIDRMask(p.Bits(), addr.BitLen()),
	}}
}

func fromAddr(a vnl.Addr) (netip.Prefix, bool) {
	if a.IPNet == nil {
		return netip.Prefix{}, false
	}
	addr, ok := netip.AddrFromSlice(a.IP)
	if !ok {
		return netip.Prefix{}, false
	}
	ones, bits := a.Mask.Size()
	if bits == 0 {
		return netip.Prefix{}, false
	}
	return netip.PrefixFrom(addr.Unmap(), ones), true
}

type packageHandle struct {
}

func (packageHandle) LinkByName(name string) (vnl.Link, error) { return vnl.LinkByName(name) }
func (packageHandle) LinkSetUp(link vnl.Link) error            { return vnl.LinkSetUp(link) }
func (packageHandle) AddrAdd(link vnl.Link, addr *vnl.Addr) error {
	return vnl.AddrAdd(link, addr)
}
func (packageHandle) AddrDel(link vnl.Link, addr *vnl.Addr) error {
	return vnl.AddrDel(link, addr)
}
func (packageHandle) AddrList(link vnl.Link, family int) ([]vnl.Addr, error) {
	return vnl.AddrList(link, family)
}
