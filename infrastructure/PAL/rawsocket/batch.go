//go:build linux || darwin

package rawsocket

import (
	"errors"
	"fmt"
	"io"
	"net"
	"net/netip"

	"golang.org/x/net/ipv4"
)

// MaxBatch is the most datagrams handed to the kernel in one sendmmsg or recvmmsg.
const MaxBatch = 1024

// Packet is one UDP datagram of a batch. Buffers are gathered on send and scattered
// on receive. Addr is the destination when sending and the source after receiving;
// N is the received length.
type Packet struct {
	Addr    netip.AddrPort
	Buffers [][]byte
	N       int
}

// BatchConn sends and receives IPv4 UDP datagrams in batches. Sends go out of an
// unbound socket; receives come from the socket bound by ListenBatch. On Linux a batch
// is a single sendmmsg or recvmmsg; elsewhere it degrades to one call per datagram.
type BatchConn struct {
	send *ipv4.PacketConn
	recv *ipv4.PacketConn
}

// ListenBatch binds the receive socket to laddr. A zero port picks an ephemeral one.
func ListenBatch(laddr netip.AddrPort) (*BatchConn, error) {
	rc, err := net.ListenUDP("udp4", net.UDPAddrFromAddrPort(laddr))
	if err != nil {
		return nil, fmt.Errorf("bind receive socket: %w", err)
	}
	sc, err := net.ListenUDP("udp4", nil)
	if err != nil {
		_ = rc.Close()
		return nil, fmt.Errorf("open send socket: %w", err)
	}
	return &BatchConn{send: ipv4.NewPacketConn(sc), recv: ipv4.NewPacketConn(rc)}, nil
}

// LocalAddr is the address the receive socket is bound to.
func (c *BatchConn) LocalAddr() netip.AddrPort {
	return udpAddrPort(c.recv.LocalAddr())
}

// Send writes every packet, MaxBatch at a time, and returns how many were sent.
func (c *BatchConn) Send(pkts []Packet) (int, error) {
	msgs := make([]ipv4.Message, 0, min(len(pkts), MaxBatch))
	sent := 0
	for sent < len(pkts) {
		msgs = msgs[:0]
		for _, p := range pkts[sent:min(len(pkts), sent+MaxBatch)] {
			msgs = append(msgs, ipv4.Message{Buffers: p.Buffers, Addr: net.UDPAddrFromAddrPort(p.Addr)})
		}
		n, err := c.send.WriteBatch(msgs, 0)
		sent += n
		if err != nil {
			return sent, fmt.Errorf("sendmmsg: %w", err)
		}
		if n == 0 {
			return sent, io.ErrShortWrite
		}
	}
	return sent, nil
}

// Receive blocks until at least one datagram arrives, then fills up to
// min(len(pkts), MaxBatch) packets and returns how many were filled.
func (c *BatchConn) Receive(pkts []Packet) (int, error) {
	msgs := make([]ipv4.Message, min(len(pkts), MaxBatch))
	for i := range msgs {
		msgs[i].Buffers = pkts[i].Buffers
	}
	n, err := c.recv.ReadBatch(msgs, 0)
	for i := 0; i < n; i++ {
		pkts[i].N = msgs[i].N
		pkts[i].Addr = udpAddrPort(msgs[i].Addr)
	}
	if err != nil {
		return n, fmt.Errorf("recvmmsg: %w", err)
	}
	return n, nil
}

func (c *BatchConn) Close() error {
	return errors.Join(c.send.Close(), c.recv.Close())
}

func udpAddrPort(a net.Addr) netip.AddrPort {
	ua, ok := a.(*net.UDPAddr)
	if !ok {
		return netip.AddrPort{}
	}
	ap := ua.AddrPort()
	return netip.AddrPortFrom(ap.Addr().Unmap(), ap.Port())
}
