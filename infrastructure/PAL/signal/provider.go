package signal

import (
	"os"
	"syscall"
)

// Provider abstracts the signals that end the drain loop.
type Provider interface {
	ShutdownSignals() []os.Signal
}

type DefaultProvider struct {
}

func NewDefaultProvider() *DefaultProvider {
	return &DefaultProvider{}
}

// ShutdownSignals returns SIGINT and SIGTERM. SIGHUP is not a shutdown signal.
func (p *DefaultProvider) ShutdownSignals() []os.Signal {
	return []os.Signal{os.Interrupt, syscall.SIGTERM}
}
