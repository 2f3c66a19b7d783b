//go:build !linux && !darwin

package main

import (
	"runtime"

	log "github.com/sirupsen/logrus"

	"rawtun/domain/network/tunnel"
)

func main() {
	log.Fatalf("%v: %s", tunnel.ErrUnsupportedPlatform, runtime.GOOS)
}
