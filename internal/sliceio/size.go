// Package sliceio implements the device_size(fd) -> u64 external
// collaborator spec.md §1 calls out as out of scope for the probing core
// itself: the session needs a size when the caller passes 0, but how that
// size is obtained is device-plumbing, not probing logic.
package sliceio

import "io"

// Sizer is satisfied by anything that can report its own size directly
// (e.g. a wrapper around a known-length image file).
type Sizer interface {
	Size() (int64, error)
}

// DeviceSize returns the size in bytes of dev. It tries, in order: an
// explicit Sizer implementation, seeking to end on an io.Seeker, and
// finally the platform's block-device size ioctl (Linux only) when dev is
// an *os.File. Returns an error if none of these succeed.
func DeviceSize(dev io.ReaderAt) (uint64, error) {
	if s, ok := dev.(Sizer); ok {
		n, err := s.Size()
		if err == nil && n >= 0 {
			return uint64(n), nil
		}
	}
	if seeker, ok := dev.(io.Seeker); ok {
		cur, err := seeker.Seek(0, io.SeekCurrent)
		if err == nil {
			end, err := seeker.Seek(0, io.SeekEnd)
			if err == nil {
				_, _ = seeker.Seek(cur, io.SeekStart)
				return uint64(end), nil
			}
		}
	}
	return blockDeviceSize(dev)
}
