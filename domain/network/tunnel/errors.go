package tunnel

import (
	"errors"
	"fmt"
)

var (
	// ErrNameTooLong is returned before any syscall when an interface name does not fit IFNAMSIZ.
	ErrNameTooLong = errors.New("interface name too long")
	// ErrUnitsExhausted is returned when every utun control unit is already claimed.
	ErrUnitsExhausted = errors.New("no free tunnel unit")
	// ErrUnsupportedPlatform is returned by the tunnel opener of platforms without a variant.
	ErrUnsupportedPlatform = errors.New("tunnel interfaces are not supported on this platform")
)

// nameSize is IFNAMSIZ on linux and darwin, terminating NUL included.
const nameSize = 16

// MaxNameLen is the longest interface name the kernel accepts.
const MaxNameLen = nameSize - 1

// ValidateName checks that name fits in an ifreq.
func ValidateName(name string) error {
	if len(name) > MaxNameLen {
		return fmt.Errorf("%w: %q is %d bytes, limit is %d", ErrNameTooLong, name, len(name), MaxNameLen)
	}
	return nil
}
