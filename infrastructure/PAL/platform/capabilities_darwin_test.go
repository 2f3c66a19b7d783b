package platform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rawtun/infrastructure/PAL/darwin/utun"
	"rawtun/infrastructure/PAL/network/darwin/ifconfig"
	"rawtun/infrastructure/logging"
)

func TestMultiQueueSupported_Darwin(t *testing.T) {
	assert.False(t, Capabilities().MultiQueueSupported())
}

func TestNewTunnelOpener_Darwin(t *testing.T) {
	o, err := NewTunnelOpener("/ignored", logging.Nop{})
	require.NoError(t, err)
	assert.IsType(t, &utun.Opener{}, o)
}

func TestNewConfigurer_Darwin(t *testing.T) {
	c, err := NewConfigurer(logging.Nop{})
	require.NoError(t, err)
	assert.IsType(t, &ifconfig.Configurer{}, c)
}
