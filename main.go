//go:build linux || darwin

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os/signal"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"rawtun/application/network/tunnel"
	"rawtun/infrastructure/PAL/platform"
	shutdown "rawtun/infrastructure/PAL/signal"
	"rawtun/infrastructure/PAL/tun_device"
	"rawtun/infrastructure/logging"
	"rawtun/infrastructure/settings"
)

// errQueueClosed ends a drain loop. Every loop exit carries it or a read error, so one
// queue going away cancels all of them.
var errQueueClosed = errors.New("queue closed")

func main() {
	var configFile string
	flag.StringVar(&configFile, "c", "", "Config file path")
	flag.Parse()

	conf, err := settings.Load(configFile)
	if err != nil {
		log.Fatal(err)
	}
	log.SetLevel(logging.ParseLevel(conf.Log.Level))

	ctx, cancel := signal.NotifyContext(context.Background(), shutdown.NewDefaultProvider().ShutdownSignals()...)
	defer cancel()

	if err = run(ctx, conf); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, conf *settings.Settings) error {
	logger := logging.NewLogrusLogger(nil)

	if conf.Tunnel.Queues > 0 && !platform.Capabilities().MultiQueueSupported() {
		logger.Printf("extra queues are not supported on this platform, ignoring queues = %d", conf.Tunnel.Queues)
	}

	provisioner, err := newProvisioner(conf.Tunnel.DevicePath, logger)
	if err != nil {
		return err
	}

	iface, err := provisioner.Provision(conf.Tunnel)
	if err != nil {
		return err
	}
	ifaceLogger := logger.With("iface", iface.Name)
	ifaceLogger.Printf("tunnel ready: %d queue(s), mtu %d", len(iface.Queues), conf.Tunnel.MTU)

	// OpenQueues owns every descriptor from here on, including on failure.
	queues, err := tun_device.OpenQueues(iface, conf.Tunnel.MTU)
	if err != nil {
		return err
	}

	if err = serve(ctx, queues, ifaceLogger); err != nil {
		return err
	}
	ifaceLogger.Printf("released")
	return nil
}

func newProvisioner(devicePath string, logger *logging.LogrusLogger) (*tunnel.Provisioner, error) {
	opener, err := platform.NewTunnelOpener(devicePath, logger)
	if err != nil {
		return nil, err
	}
	mtu, err := platform.NewMTUController()
	if err != nil {
		return nil, err
	}
	configurer, err := platform.NewConfigurer(logger)
	if err != nil {
		return nil, err
	}
	closer, err := platform.NewDescriptorCloser()
	if err != nil {
		return nil, err
	}
	return tunnel.NewProvisioner(opener, mtu, configurer, closer, logger), nil
}

// serve drains every queue until ctx is done or any queue stops, then closes them all.
// It reports an error only when a queue stopped on its own.
func serve(ctx context.Context, queues []io.ReadWriteCloser, logger *logging.LogrusLogger) error {
	g, gctx := errgroup.WithContext(ctx)
	for n, q := range queues {
		n, q := n, q
		g.Go(func() error { return drain(q, logger.With("queue", n)) })
	}
	<-gctx.Done()
	for _, q := range queues {
		_ = q.Close()
	}
	err := g.Wait()
	if ctx.Err() != nil {
		return nil
	}
	return err
}

func drain(q io.Reader, logger *logging.LogrusLogger) error {
	buf := make([]byte, tun_device.MaxPacketSize)
	for {
		n, err := q.Read(buf)
		if err != nil {
			return fmt.Errorf("%w: %w", errQueueClosed, err)
		}
		logger.Debugf("dropped %d byte packet", n)
	}
}
