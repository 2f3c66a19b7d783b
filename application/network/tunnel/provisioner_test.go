package tunnel

import (
	"errors"
	"net/netip"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rawtun/domain/network/tunnel"
	"rawtun/infrastructure/logging"
	"rawtun/infrastructure/settings"
)

type fakeOpener struct {
	iface     tunnel.Interface
	err       error
	requested int
}

func (o *fakeOpener) OpenTunnel(extra int) (tunnel.Interface, error) {
	o.requested = extra
	return o.iface, o.err
}

type fakeMTU struct {
	set map[string]int
	err error
}

func (m *fakeMTU) MTU(name string) (int, error) { return m.set[name], nil }

func (m *fakeMTU) SetMTU(name string, mtu int) error {
	if m.err != nil {
		return m.err
	}
	if m.set == nil {
		m.set = map[string]int{}
	}
	m.set[name] = mtu
	return nil
}

type fakeConfigurer struct {
	up     []string
	added  []netip.Prefix
	upErr  error
	addErr error
	failOn netip.Prefix
}

func (c *fakeConfigurer) Up(name string) error {
	if c.upErr != nil {
		return c.upErr
	}
	c.up = append(c.up, name)
	return nil
}

func (c *fakeConfigurer) AddSubnet(_ string, s netip.Prefix) error {
	if c.addErr != nil && s == c.failOn {
		return c.addErr
	}
	c.added = append(c.added, s)
	return nil
}

func (c *fakeConfigurer) RemoveSubnet(string, netip.Prefix) error { return nil }

func (c *fakeConfigurer) Subnets(string) ([]netip.Prefix, error) { return c.added, nil }

type fakeCloser struct {
	closed []int
	err    error
}

func (c *fakeCloser) Close(fd int) error {
	c.closed = append(c.closed, fd)
	return c.err
}

type fixture struct {
	opener     *fakeOpener
	mtu        *fakeMTU
	configurer *fakeConfigurer
	closer     *fakeCloser
	p          *Provisioner
}

func newFixture() *fixture {
	f := &fixture{
		opener:     &fakeOpener{iface: tunnel.Interface{Name: "tun0", Queues: []int{10, 11, 12}}},
		mtu:        &fakeMTU{},
		configurer: &fakeConfigurer{},
		closer:     &fakeCloser{},
	}
	f.p = NewProvisioner(f.opener, f.mtu, f.configurer, f.closer, logging.Nop{})
	return f
}

func (f *fixture) closedSorted() []int {
	c := append([]int(nil), f.closer.closed...)
	sort.Ints(c)
	return c
}

func TestProvision_Success(t *testing.T) {
	f := newFixture()
	cfg := settings.Tunnel{
		Queues:  2,
		MTU:     1400,
		Up:      true,
		Subnets: []string{"10.0.0.1/24", "fd00::1/64"},
	}

	iface, err := f.p.Provision(cfg)
	require.NoError(t, err)

	assert.Equal(t, "tun0", iface.Name)
	assert.Equal(t, 2, f.opener.requested)
	assert.Equal(t, 1400, f.mtu.set["tun0"])
	assert.Equal(t, []string{"tun0"}, f.configurer.up)
	assert.Equal(t, []netip.Prefix{
		netip.MustParsePrefix("10.0.0.1/24"),
		netip.MustParsePrefix("fd00::1/64"),
	}, f.configurer.added)
	assert.Empty(t, f.closer.closed)
}

func TestProvision_DefaultMTUAndNoUp(t *testing.T) {
	f := newFixture()

	_, err := f.p.Provision(settings.Tunnel{})
	require.NoError(t, err)

	assert.Equal(t, settings.DefaultEthernetMTU, f.mtu.set["tun0"])
	assert.Empty(t, f.configurer.up)
}

func TestProvision_OpenFailure(t *testing.T) {
	f := newFixture()
	f.opener.err = errors.New("no device")

	_, err := f.p.Provision(settings.Tunnel{})
	require.ErrorIs(t, err, f.opener.err)
	assert.Empty(t, f.closer.closed)
}

func TestProvision_RollbackClosesEveryQueue(t *testing.T) {
	boom := errors.New("boom")
	tests := map[string]func(f *fixture){
		"mtu":    func(f *fixture) { f.mtu.err = boom },
		"up":     func(f *fixture) { f.configurer.upErr = boom },
		"subnet": func(f *fixture) {
			f.configurer.addErr = boom
			f.configurer.failOn = netip.MustParsePrefix("fd00::1/64")
		},
	}
	for name, inject := range tests {
		t.Run(name, func(t *testing.T) {
			f := newFixture()
			inject(f)

			iface, err := f.p.Provision(settings.Tunnel{Up: true, Subnets: []string{"10.0.0.1/24", "fd00::1/64"}})
			require.ErrorIs(t, err, boom)
			assert.Empty(t, iface.Name)
			assert.Equal(t, []int{10, 11, 12}, f.closedSorted())
		})
	}
}

func TestRelease_ReportsFirstError(t *testing.T) {
	f := newFixture()
	f.closer.err = errors.New("bad descriptor")

	err := f.p.Release(f.opener.iface)
	require.ErrorIs(t, err, f.closer.err)
	assert.Contains(t, err.Error(), "queue 10")
	assert.Equal(t, []int{10, 11, 12}, f.closer.closed)
}
