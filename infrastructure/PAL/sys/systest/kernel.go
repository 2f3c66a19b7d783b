// Package systest provides an in-memory kernel implementing sys.Syscalls.
//
// It hands out fake descriptors, keeps track of which are still open and emulates
// just enough of TUN devices, interface MTUs and utun kernel controls for the openers'
// rollback and naming rules to be exercised without privileges.
package systest

import (
	"fmt"
	"sort"
	"sync"

	"golang.org/x/sys/unix"
)

// Operations that can be made to fail.
const (
	OpOpen       = "open"
	OpSocket     = "socket"
	OpClose      = "close"
	OpSetsockopt = "setsockopt"
	OpSetIff     = "TUNSETIFF"
	OpGetMTU     = "SIOCGIFMTU"
	OpSetMTU     = "SIOCSIFMTU"
	OpCtlInfo    = "CTLIOCGINFO"
	OpConnect    = "connect"
)

// UtunControlID is the id the fake kernel reports for the utun control.
const UtunControlID uint32 = 0x7c4

const firstFD = 100

type failure struct {
	err   error
	after int
}

// Kernel is a fake kernel. The zero value is not usable; use NewKernel.
type Kernel struct {
	mu sync.Mutex

	nextFD   int
	open     map[int]string
	calls    []string
	failures map[string]*failure

	nextTun   int
	bound     map[int]string
	mtus      map[string]int
	sockopts  map[int]map[[2]int]int
	units     map[uint32]int
	connected map[int]uint32
}

func NewKernel() *Kernel {
	return &Kernel{
		nextFD:    firstFD,
		open:      make(map[int]string),
		failures:  make(map[string]*failure),
		bound:     make(map[int]string),
		mtus:      make(map[string]int),
		sockopts:  make(map[int]map[[2]int]int),
		units:     make(map[uint32]int),
		connected: make(map[int]uint32),
	}
}

// Fail makes every call of op return err.
func (k *Kernel) Fail(op string, err error) {
	k.FailAfter(op, 0, err)
}

// FailAfter lets the first n calls of op succeed and fails the rest with err.
func (k *Kernel) FailAfter(op string, n int, err error) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.failures[op] = &failure{err: err, after: n}
}

// AddInterface registers an existing interface with the given MTU.
func (k *Kernel) AddInterface(name string, mtu int) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.mtus[name] = mtu
}

// ClaimUnit marks a utun unit as held by someone outside the test.
func (k *Kernel) ClaimUnit(unit uint32) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.units[unit] = -1
}

// OpenDescriptors returns the descriptors that were opened and not yet closed.
func (k *Kernel) OpenDescriptors() []int {
	k.mu.Lock()
	defer k.mu.Unlock()
	fds := make([]int, 0, len(k.open))
	for fd := range k.open {
		fds = append(fds, fd)
	}
	sort.Ints(fds)
	return fds
}

// Calls returns every operation issued so far, in order.
func (k *Kernel) Calls() []string {
	k.mu.Lock()
	defer k.mu.Unlock()
	return append([]string(nil), k.calls...)
}

// Count returns how many times op was issued.
func (k *Kernel) Count(op string) int {
	k.mu.Lock()
	defer k.mu.Unlock()
	n := 0
	for _, c := range k.calls {
		if c == op {
			n++
		}
	}
	return n
}

// InterfaceOf returns the interface fd is attached to, if any.
func (k *Kernel) InterfaceOf(fd int) (string, bool) {
	k.mu.Lock()
	defer k.mu.Unlock()
	name, ok := k.bound[fd]
	return name, ok
}

// Sockopt returns the integer option stored for fd.
func (k *Kernel) Sockopt(fd, level, opt int) (int, bool) {
	k.mu.Lock()
	defer k.mu.Unlock()
	v, ok := k.sockopts[fd][[2]int{level, opt}]
	return v, ok
}

// enter records op and reports the injected failure, if any. Callers hold k.mu.
func (k *Kernel) enter(op string) error {
	k.calls = append(k.calls, op)
	f, ok := k.failures[op]
	if !ok {
		return nil
	}
	if f.after > 0 {
		f.after--
		return nil
	}
	return f.err
}

func (k *Kernel) alloc(kind string) int {
	fd := k.nextFD
	k.nextFD++
	k.open[fd] = kind
	return fd
}

func (k *Kernel) Open(path string, _ int) (int, error) {
	k.mu.Lock()
	defer k.mu.Unlock()
	if err := k.enter(OpOpen); err != nil {
		return -1, err
	}
	return k.alloc(path), nil
}

func (k *Kernel) Socket(domain, typ, proto int) (int, error) {
	k.mu.Lock()
	defer k.mu.Unlock()
	if err := k.enter(OpSocket); err != nil {
		return -1, err
	}
	return k.alloc(fmt.Sprintf("socket(%d,%d,%d)", domain, typ, proto)), nil
}

func (k *Kernel) Close(fd int) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	if err := k.enter(OpClose); err != nil {
		return err
	}
	if _, ok := k.open[fd]; !ok {
		return unix.EBADF
	}
	delete(k.open, fd)
	delete(k.bound, fd)
	delete(k.sockopts, fd)
	if unit, ok := k.connected[fd]; ok {
		delete(k.units, unit)
		delete(k.connected, fd)
	}
	return nil
}

func (k *Kernel) SetsockoptInt(fd, level, opt, value int) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	if err := k.enter(OpSetsockopt); err != nil {
		return err
	}
	if _, ok := k.open[fd]; !ok {
		return unix.EBADF
	}
	if k.sockopts[fd] == nil {
		k.sockopts[fd] = make(map[[2]int]int)
	}
	k.sockopts[fd][[2]int{level, opt}] = value
	return nil
}

func (k *Kernel) SetInterfaceFlags(fd int, name string, _ uint16) (string, error) {
	k.mu.Lock()
	defer k.mu.Unlock()
	if err := k.enter(OpSetIff); err != nil {
		return "", err
	}
	if _, ok := k.open[fd]; !ok {
		return "", unix.EBADF
	}
	if _, ok := k.bound[fd]; ok {
		return "", unix.EINVAL
	}
	if name == "" {
		name = fmt.Sprintf("tun%d", k.nextTun)
		k.nextTun++
	}
	if len(name) >= unix.IFNAMSIZ {
		return "", unix.EINVAL
	}
	if _, ok := k.mtus[name]; !ok {
		k.mtus[name] = 1500
	}
	k.bound[fd] = name
	return name, nil
}

func (k *Kernel) InterfaceMTU(fd int, name string) (int, error) {
	k.mu.Lock()
	defer k.mu.Unlock()
	if err := k.enter(OpGetMTU); err != nil {
		return 0, err
	}
	if _, ok := k.open[fd]; !ok {
		return 0, unix.EBADF
	}
	mtu, ok := k.mtus[name]
	if !ok {
		return 0, unix.ENODEV
	}
	return mtu, nil
}

func (k *Kernel) SetInterfaceMTU(fd int, name string, mtu int) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	if err := k.enter(OpSetMTU); err != nil {
		return err
	}
	if _, ok := k.open[fd]; !ok {
		return unix.EBADF
	}
	if _, ok := k.mtus[name]; !ok {
		return unix.ENODEV
	}
	if mtu < 68 || mtu > 65535 {
		return unix.EINVAL
	}
	k.mtus[name] = mtu
	return nil
}

func (k *Kernel) ControlID(fd int, name string) (uint32, error) {
	k.mu.Lock()
	defer k.mu.Unlock()
	if err := k.enter(OpCtlInfo); err != nil {
		return 0, err
	}
	if _, ok := k.open[fd]; !ok {
		return 0, unix.EBADF
	}
	if name != "com.apple.net.utun_control" {
		return 0, unix.ENOENT
	}
	return UtunControlID, nil
}

func (k *Kernel) ConnectControl(fd int, id, unit uint32) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	if err := k.enter(OpConnect); err != nil {
		return err
	}
	if _, ok := k.open[fd]; !ok {
		return unix.EBADF
	}
	if id != UtunControlID {
		return unix.ENOENT
	}
	if _, ok := k.connected[fd]; ok {
		return unix.EISCONN
	}
	if _, taken := k.units[unit]; taken {
		return unix.EBUSY
	}
	k.units[unit] = fd
	k.connected[fd] = unit
	return nil
}
