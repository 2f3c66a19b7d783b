//go:build linux || darwin

package rawsocket

import (
	"fmt"
	"net"
	"os"

	"golang.org/x/net/ipv4"
)

// Conn sends and receives whole IPv4 packets over a raw socket.
type Conn struct {
	raw *ipv4.RawConn
}

// NewConn takes ownership of fd, a raw socket as returned by Opener.Open.
// fd is closed whether or not NewConn succeeds.
func NewConn(fd int) (*Conn, error) {
	f := os.NewFile(uintptr(fd), "rawsocket")
	pc, err := net.FilePacketConn(f)
	_ = f.Close()
	if err != nil {
		return nil, fmt.Errorf("wrap raw socket: %w", err)
	}

	raw, err := ipv4.NewRawConn(pc)
	if err != nil {
		_ = pc.Close()
		return nil, fmt.Errorf("wrap raw socket: %w", err)
	}

	return &Conn{raw: raw}, nil
}

// WritePacket sends b, which starts with the caller's IPv4 header, to the header's destination.
func (c *Conn) WritePacket(b []byte) error {
	h, err := ipv4.ParseHeader(b)
	if err != nil {
		return err
	}
	return c.raw.WriteTo(h, b[h.Len:], nil)
}

// ReadPacket reads one packet and returns its header and payload, the payload
// sharing storage with b.
func (c *Conn) ReadPacket(b []byte) (*ipv4.Header, []byte, error) {
	h, p, _, err := c.raw.ReadFrom(b)
	return h, p, err
}

func (c *Conn) Close() error {
	return c.raw.Close()
}
