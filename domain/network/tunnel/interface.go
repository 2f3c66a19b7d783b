package tunnel

import (
	"os"
	"strconv"
)

// Interface is a provisioned tunnel: one kernel interface and the queue descriptors
// attached to it. Queues[0] is the primary queue; the rest are extra queues of the
// same interface. Ownership of every descriptor belongs to whoever holds the value.
type Interface struct {
	Name   string
	Queues []int
}

// Primary returns the primary queue descriptor.
func (i Interface) Primary() int {
	if len(i.Queues) == 0 {
		return -1
	}
	return i.Queues[0]
}

// Extra returns the descriptors of the extra queues, possibly none.
func (i Interface) Extra() []int {
	if len(i.Queues) < 2 {
		return nil
	}
	return i.Queues[1:]
}

// Files wraps every queue descriptor in an *os.File, primary first.
// The files take ownership of the descriptors.
func (i Interface) Files() []*os.File {
	files := make([]*os.File, 0, len(i.Queues))
	for n, fd := range i.Queues {
		files = append(files, os.NewFile(uintptr(fd), i.queueFileName(n)))
	}
	return files
}

func (i Interface) queueFileName(n int) string {
	if n == 0 {
		return i.Name
	}
	return i.Name + "#" + strconv.Itoa(n)
}

