package sys

import "golang.org/x/sys/unix"

func (unixSyscalls) ControlID(fd int, name string) (uint32, error) {
	var ci unix.CtlInfo
	copy(ci.Name[:], name)
	if err := unix.IoctlCtlInfo(fd, &ci); err != nil {
		return 0, err
	}
	return ci.Id, nil
}

func (unixSyscalls) ConnectControl(fd int, id, unit uint32) error {
	return unix.Connect(fd, &unix.SockaddrCtl{ID: id, Unit: unit})
}
