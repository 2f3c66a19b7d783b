// Package ifconfig configures interfaces by driving ifconfig(8), the way macOS expects utun
// interfaces to be set up.
package ifconfig

import (
	"encoding/hex"
	"fmt"
	"net/netip"
	"strconv"
	"strings"

	"rawtun/domain/network/subnet"
	"rawtun/infrastructure/PAL/exec_commander"
)

type Configurer struct {
	commander exec_commander.Commander
}

func NewConfigurer(commander exec_commander.Commander) *Configurer {
	return &Configurer{commander: commander}
}

func (c *Configurer) Up(ifName string) error {
	return c.run(ifName, "up")
}

// AddSubnet aliases subnet onto ifName. utun is point-to-point, so IPv4 addresses are
// given their own address as the destination.
func (c *Configurer) AddSubnet(ifName string, s netip.Prefix) error {
	if s.Addr().Unmap().Is4() {
		return c.run(ifName, "inet", cidr(s), s.Addr().Unmap().String(), "alias")
	}
	return c.run(ifName, "inet6", "add", cidr(s))
}

func (c *Configurer) RemoveSubnet(ifName string, s netip.Prefix) error {
	if s.Addr().Unmap().Is4() {
		return c.run(ifName, "inet", cidr(s), s.Addr().Unmap().String(), "-alias")
	}
	return c.run(ifName, "inet6", "delete", s.Addr().String())
}

// Subnets parses the inet and inet6 lines ifconfig prints for ifName.
func (c *Configurer) Subnets(ifName string) ([]netip.Prefix, error) {
	out, err := c.commander.Output("ifconfig", ifName)
	if err != nil {
		return nil, fmt.Errorf("ifconfig %s failed: %w", ifName, err)
	}

	var subnets []netip.Prefix
	for _, line := range strings.Split(string(out), "\n") {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		var (
			p        netip.Prefix
			parseErr error
		)
		switch fields[0] {
		case "inet":
			p, parseErr = parseInet(fields)
		case "inet6":
			p, parseErr = parseInet6(fields)
		default:
			continue
		}
		if parseErr != nil {
			return nil, fmt.Errorf("could not parse ifconfig output %q: %w", strings.TrimSpace(line), parseErr)
		}
		subnets = append(subnets, p)
	}
	return subnets, nil
}

func (c *Configurer) run(ifName string, args ...string) error {
	full := append([]string{ifName}, args...)
	if out, err := c.commander.CombinedOutput("ifconfig", full...); err != nil {
		return fmt.Errorf("ifconfig %s failed: %w (%s)", strings.Join(full, " "), err, strings.TrimSpace(string(out)))
	}
	return nil
}

func cidr(s netip.Prefix) string {
	return netip.PrefixFrom(s.Addr().Unmap(), s.Bits()).String()
}

// parseInet handles both
//
//	inet 10.0.0.1 netmask 0xffffff00 broadcast 10.0.0.255
//	inet 10.0.0.1 --> 10.0.0.1 netmask 0xffffff00
func parseInet(fields []string) (netip.Prefix, error) {
	if len(fields) < 2 {
		return netip.Prefix{}, fmt.Errorf("missing address")
	}
	addr, err := netip.ParseAddr(fields[1])
	if err != nil {
		return netip.Prefix{}, err
	}
	mask := ""
	for i := 2; i+1 < len(fields); i++ {
		if fields[i] == "netmask" {
			mask = fields[i+1]
			break
		}
	}
	if mask == "" {
		return netip.Prefix{}, fmt.Errorf("missing netmask")
	}
	raw, err := hex.DecodeString(strings.TrimPrefix(mask, "0x"))
	if err != nil {
		return netip.Prefix{}, fmt.Errorf("%w: %s", subnet.ErrInvalidMask, mask)
	}
	return subnet.FromMask(addr, raw)
}

// parseInet6 handles
//
//	inet6 fe80::1%utun3 prefixlen 64 scopeid 0xf
func parseInet6(fields []string) (netip.Prefix, error) {
	if len(fields) < 4 || fields[2] != "prefixlen" {
		return netip.Prefix{}, fmt.Errorf("missing prefixlen")
	}
	addr, err := netip.ParseAddr(fields[1])
	if err != nil {
		return netip.Prefix{}, err
	}
	bits, err := strconv.Atoi(fields[3])
	if err != nil {
		return netip.Prefix{}, err
	}
	p := netip.PrefixFrom(addr.WithZone(""), bits)
	if !p.IsValid() {
		return netip.Prefix{}, fmt.Errorf("invalid prefix length %d", bits)
	}
	return p, nil
}
