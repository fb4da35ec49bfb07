//go:build !linux

package sliceio

import (
	"fmt"
	"io"
)

func blockDeviceSize(dev io.ReaderAt) (uint64, error) {
	return 0, fmt.Errorf("sliceio: device size ioctl not supported on this platform (%T)", dev)
}
