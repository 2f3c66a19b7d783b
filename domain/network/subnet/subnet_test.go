package subnet

import (
	"net/netip"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOf(t *testing.T) {
	assert.Equal(t, netip.MustParsePrefix("1.2.3.4/32"), Of(netip.MustParseAddr("1.2.3.4")))
	assert.Equal(t, netip.MustParsePrefix("::1/128"), Of(netip.MustParseAddr("::1")))
	assert.Equal(t, netip.MustParsePrefix("10.0.0.1/32"), Of(netip.MustParseAddr("::ffff:10.0.0.1")))
}

func TestPrefixFromMask(t *testing.T) {
	cases := []struct {
		mask []byte
		want int
	}{
		{[]byte{255, 255, 255, 0}, 24},
		{[]byte{255, 255, 255, 255}, 32},
		{[]byte{0, 0, 0, 0}, 0},
		{[]byte{255, 128, 0, 0}, 9},
	}
	for _, c := range cases {
		got, err := PrefixFromMask(c.mask)
		require.NoError(t, err)
		assert.Equal(t, c.want, got, "mask % x", c.mask)
	}
}

func TestPrefixFromMask_NonContiguous(t *testing.T) {
	_, err := PrefixFromMask([]byte{255, 0, 255, 0})
	require.ErrorIs(t, err, ErrInvalidMask)
}

func TestFromMask_FamilyMismatch(t *testing.T) {
	_, err := FromMask(netip.MustParseAddr("fe80::1"), []byte{255, 255, 255, 0})
	require.ErrorIs(t, err, ErrInvalidMask)
}

func TestFromMask(t *testing.T) {
	p, err := FromMask(netip.MustParseAddr("10.1.2.3"), []byte{255, 255, 0, 0})
	require.NoError(t, err)
	assert.Equal(t, "10.1.2.3/16", p.String())
}

func TestParse(t *testing.T) {
	p, err := Parse("10.0.0.1/24")
	require.NoError(t, err)
	assert.Equal(t, "10.0.0.1/24", p.String())

	p, err = Parse("fd00::5")
	require.NoError(t, err)
	assert.Equal(t, "fd00::5/128", p.String())

	_, err = Parse("not-an-address")
	require.Error(t, err)
}
