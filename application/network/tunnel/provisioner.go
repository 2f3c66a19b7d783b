package tunnel

import (
	"fmt"

	"rawtun/application/logging"
	"rawtun/domain/network/tunnel"
	"rawtun/infrastructure/settings"
)

// Provisioner opens a tunnel and applies MTU, link state and subnets to it. If any step
// after the open fails, every queue is closed before the error is returned.
type Provisioner struct {
	opener     Opener
	mtu        MTUController
	configurer Configurer
	closer     DescriptorCloser
	logger     logging.Logger
}

func NewProvisioner(
	opener Opener,
	mtu MTUController,
	configurer Configurer,
	closer DescriptorCloser,
	logger logging.Logger,
) *Provisioner {
	return &Provisioner{
		opener:     opener,
		mtu:        mtu,
		configurer: configurer,
		closer:     closer,
		logger:     logger,
	}
}

func (p *Provisioner) Provision(t settings.Tunnel) (tunnel.Interface, error) {
	iface, err := p.opener.OpenTunnel(t.Queues)
	if err != nil {
		return tunnel.Interface{}, fmt.Errorf("open tunnel: %w", err)
	}

	shouldClose := true
	defer func() {
		if shouldClose {
			_ = p.Release(iface)
		}
	}()

	mtu := t.MTU
	if mtu == 0 {
		mtu = settings.DefaultEthernetMTU
	}
	if err = p.mtu.SetMTU(iface.Name, mtu); err != nil {
		return tunnel.Interface{}, fmt.Errorf("set mtu of %s: %w", iface.Name, err)
	}

	if t.Up {
		if err = p.configurer.Up(iface.Name); err != nil {
			return tunnel.Interface{}, fmt.Errorf("bring %s up: %w", iface.Name, err)
		}
	}

	for _, s := range t.Prefixes() {
		if err = p.configurer.AddSubnet(iface.Name, s); err != nil {
			return tunnel.Interface{}, fmt.Errorf("add subnet %s to %s: %w", s, iface.Name, err)
		}
		p.logger.Debugf("%s: added subnet %s", iface.Name, s)
	}

	shouldClose = false
	p.logger.Printf("%s: provisioned with %d queue(s), mtu %d", iface.Name, len(iface.Queues), mtu)
	return iface, nil
}

// Release closes every queue of iface and reports the first close error.
func (p *Provisioner) Release(iface tunnel.Interface) error {
	var first error
	for _, fd := range iface.Queues {
		if err := p.closer.Close(fd); err != nil && first == nil {
			first = fmt.Errorf("close queue %d of %s: %w", fd, iface.Name, err)
		}
	}
	return first
}
