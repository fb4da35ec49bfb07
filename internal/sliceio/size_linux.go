//go:build linux

package sliceio

import (
	"fmt"
	"io"
	"os"
	"unsafe"

	"golang.org/x/sys/unix"
)

func blockDeviceSize(dev io.ReaderAt) (uint64, error) {
	f, ok := dev.(*os.File)
	if !ok {
		return 0, fmt.Errorf("sliceio: device size unavailable for %T", dev)
	}

	var size uint64
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, f.Fd(), unix.BLKGETSIZE64, uintptr(unsafe.Pointer(&size)))
	if errno != 0 {
		return 0, fmt.Errorf("sliceio: BLKGETSIZE64 ioctl on %s: %w", f.Name(), errno)
	}
	return size, nil
}
