package settings

const (
	DefaultEthernetMTU = 1500
	MinimumMTU         = 68
	MaximumMTU         = 65535

	// MaxExtraQueues is the most extra queues a tunnel may ask for.
	MaxExtraQueues = 255

	DefaultDevicePath = "/dev/net/tun"
	DefaultLogLevel   = "info"
)
