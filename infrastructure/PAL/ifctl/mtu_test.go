//go:build linux || darwin

package ifctl

import (
	"errors"
	"strings"
	"testing"

	"rawtun/domain/network/tunnel"
	"rawtun/infrastructure/PAL/sys/systest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

func TestMTU_RoundTrip(t *testing.T) {
	k := systest.NewKernel()
	k.AddInterface("tun0", 1500)
	c := NewController(k)

	for _, mtu := range []int{68, 1400, 9000, 65535} {
		require.NoError(t, c.SetMTU("tun0", mtu))
		got, err := c.MTU("tun0")
		require.NoError(t, err)
		assert.Equal(t, mtu, got)
	}
	assert.Empty(t, k.OpenDescriptors())
}

func TestMTU_NameTooLongIssuesNoSyscalls(t *testing.T) {
	k := systest.NewKernel()
	c := NewController(k)
	long := strings.Repeat("x", unix.IFNAMSIZ)

	_, err := c.MTU(long)
	require.ErrorIs(t, err, tunnel.ErrNameTooLong)

	err = c.SetMTU(long, 1400)
	require.ErrorIs(t, err, tunnel.ErrNameTooLong)

	var errno unix.Errno
	assert.False(t, errors.As(err, &errno), "validation error must not look like an OS error")
	assert.Empty(t, k.Calls())
}

func TestMTU_IoctlFailureClosesSocket(t *testing.T) {
	k := systest.NewKernel()
	c := NewController(k)

	_, err := c.MTU("nosuch0")
	require.ErrorIs(t, err, unix.ENODEV)
	assert.Empty(t, k.OpenDescriptors())
	assert.Equal(t, 1, k.Count(systest.OpClose))
}

func TestSetMTU_IoctlFailureClosesSocket(t *testing.T) {
	k := systest.NewKernel()
	k.AddInterface("tun0", 1500)
	k.Fail(systest.OpSetMTU, unix.EPERM)
	c := NewController(k)

	err := c.SetMTU("tun0", 1400)
	require.ErrorIs(t, err, unix.EPERM)
	assert.Empty(t, k.OpenDescriptors())
	assert.Equal(t, 1, k.Count(systest.OpClose))
}

func TestMTU_SocketFailureIsOSError(t *testing.T) {
	k := systest.NewKernel()
	k.AddInterface("tun0", 1500)
	k.Fail(systest.OpSocket, unix.EMFILE)
	c := NewController(k)

	_, err := c.MTU("tun0")
	require.ErrorIs(t, err, unix.EMFILE)
	require.NotErrorIs(t, err, tunnel.ErrNameTooLong)

	err = c.SetMTU("tun0", 1400)
	require.ErrorIs(t, err, unix.EMFILE)
	assert.Zero(t, k.Count(systest.OpSetMTU))
}
