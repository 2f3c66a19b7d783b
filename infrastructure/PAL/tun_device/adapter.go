package tun_device

import (
	"errors"
	"io"

	wgtun "golang.zx2c4.com/wireguard/tun"
)

// headroom is reserved in front of every packet; utun needs 4 bytes for its
// address-family header and the Linux device accepts any offset.
const headroom = 4

// MaxPacketSize bounds a single IP packet read from or written to the device.
const MaxPacketSize = 65535

var (
	ErrShortBuffer  = errors.New("destination slice too small")
	ErrEmptyPacket  = errors.New("empty packet")
	ErrPacketTooBig = errors.New("packet exceeds max size")
)

// Adapter exposes a wireguard tun.Device as an io.ReadWriteCloser of bare IP packets,
// one packet per call, reusing preallocated buffers.
type Adapter struct {
	device      wgtun.Device
	readBuffer  []byte
	writeBuffer []byte
	sizes       []int
}

func NewAdapter(dev wgtun.Device) io.ReadWriteCloser {
	return &Adapter{
		device:      dev,
		readBuffer:  make([]byte, headroom+MaxPacketSize),
		writeBuffer: make([]byte, headroom+MaxPacketSize),
		sizes:       make([]int, 1),
	}
}

func (a *Adapter) Read(p []byte) (int, error) {
	if _, err := a.device.Read([][]byte{a.readBuffer}, a.sizes, headroom); err != nil {
		return 0, err
	}
	n := a.sizes[0]
	if n > len(p) {
		return 0, ErrShortBuffer
	}
	copy(p, a.readBuffer[headroom:headroom+n])
	return n, nil
}

func (a *Adapter) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, ErrEmptyPacket
	}
	if len(p) > MaxPacketSize {
		return 0, ErrPacketTooBig
	}
	copy(a.writeBuffer[headroom:], p)
	if _, err := a.device.Write([][]byte{a.writeBuffer[:headroom+len(p)]}, headroom); err != nil {
		return 0, err
	}
	return len(p), nil
}

func (a *Adapter) Close() error { return a.device.Close() }
