package ifconfig

import (
	"errors"
	"net/netip"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rawtun/domain/network/subnet"
)

// mockCommander records every call and returns pre-configured results.
type mockCommander struct {
	calls []mockCall

	combinedOutputBytes []byte
	combinedOutputErr   error
	outputBytes         []byte
	outputErr           error
}

type mockCall struct {
	name string
	args []string
}

func (m *mockCommander) CombinedOutput(name string, args ...string) ([]byte, error) {
	m.calls = append(m.calls, mockCall{name: name, args: args})
	return m.combinedOutputBytes, m.combinedOutputErr
}

func (m *mockCommander) Output(name string, args ...string) ([]byte, error) {
	m.calls = append(m.calls, mockCall{name: name, args: args})
	return m.outputBytes, m.outputErr
}

func (m *mockCommander) Run(name string, args ...string) error {
	m.calls = append(m.calls, mockCall{name: name, args: args})
	return nil
}

func TestConfigurer_Up(t *testing.T) {
	m := &mockCommander{}
	require.NoError(t, NewConfigurer(m).Up("utun4"))

	require.Len(t, m.calls, 1)
	assert.Equal(t, "ifconfig", m.calls[0].name)
	assert.Equal(t, []string{"utun4", "up"}, m.calls[0].args)
}

func TestConfigurer_AddSubnet(t *testing.T) {
	tests := []struct {
		subnet string
		want   []string
	}{
		{"10.0.0.1/24", []string{"utun4", "inet", "10.0.0.1/24", "10.0.0.1", "alias"}},
		{"fd00::1/64", []string{"utun4", "inet6", "add", "fd00::1/64"}},
	}
	for _, tt := range tests {
		t.Run(tt.subnet, func(t *testing.T) {
			m := &mockCommander{}
			require.NoError(t, NewConfigurer(m).AddSubnet("utun4", netip.MustParsePrefix(tt.subnet)))
			require.Len(t, m.calls, 1)
			assert.Equal(t, tt.want, m.calls[0].args)
		})
	}
}

func TestConfigurer_RemoveSubnet(t *testing.T) {
	tests := []struct {
		subnet string
		want   []string
	}{
		{"10.0.0.1/24", []string{"utun4", "inet", "10.0.0.1/24", "10.0.0.1", "-alias"}},
		{"fd00::1/64", []string{"utun4", "inet6", "delete", "fd00::1"}},
	}
	for _, tt := range tests {
		t.Run(tt.subnet, func(t *testing.T) {
			m := &mockCommander{}
			require.NoError(t, NewConfigurer(m).RemoveSubnet("utun4", netip.MustParsePrefix(tt.subnet)))
			require.Len(t, m.calls, 1)
			assert.Equal(t, tt.want, m.calls[0].args)
		})
	}
}

func TestConfigurer_CommandFailure(t *testing.T) {
	m := &mockCommander{
		combinedOutputBytes: []byte("ifconfig: interface utun9 does not exist"),
		combinedOutputErr:   errors.New("exit status 1"),
	}
	err := NewConfigurer(m).Up("utun9")
	require.ErrorIs(t, err, m.combinedOutputErr)
	assert.Contains(t, err.Error(), "does not exist")
}

const utunOutput = `utun4: flags=8051<UP,POINTOPOINT,RUNNING,MULTICAST> mtu 1380
	inet 10.0.0.1 --> 10.0.0.1 netmask 0xffffff00
	inet 192.168.5.2 netmask 0xffff0000 broadcast 192.168.255.255
	inet6 fe80::aede:48ff:fe00:1122%utun4 prefixlen 64 scopeid 0x11
	inet6 fd00::1 prefixlen 64
	nd6 options=201<PERFORMNUD,DAD>
`

func TestConfigurer_Subnets(t *testing.T) {
	m := &mockCommander{outputBytes: []byte(utunOutput)}

	subnets, err := NewConfigurer(m).Subnets("utun4")
	require.NoError(t, err)
	assert.Equal(t, []netip.Prefix{
		netip.MustParsePrefix("10.0.0.1/24"),
		netip.MustParsePrefix("192.168.5.2/16"),
		netip.MustParsePrefix("fe80::aede:48ff:fe00:1122/64"),
		netip.MustParsePrefix("fd00::1/64"),
	}, subnets)
	assert.Equal(t, []string{"utun4"}, m.calls[0].args)
}

func TestConfigurer_SubnetsNone(t *testing.T) {
	m := &mockCommander{outputBytes: []byte("utun4: flags=8010<POINTOPOINT,MULTICAST> mtu 1500\n")}

	subnets, err := NewConfigurer(m).Subnets("utun4")
	require.NoError(t, err)
	assert.Empty(t, subnets)
}

func TestConfigurer_SubnetsBadMask(t *testing.T) {
	m := &mockCommander{outputBytes: []byte("\tinet 10.0.0.1 netmask 0xff00ff00\n")}

	_, err := NewConfigurer(m).Subnets("utun4")
	require.ErrorIs(t, err, subnet.ErrInvalidMask)
}

func TestConfigurer_SubnetsCommandFailure(t *testing.T) {
	m := &mockCommander{outputErr: errors.New("exit status 1")}

	_, err := NewConfigurer(m).Subnets("utun4")
	require.ErrorIs(t, err, m.outputErr)
}
