package blkid

import "io"

// SBBufSize is the size of the superblock buffer tier. Nearly every
// prober's magic and superblock fields live inside the first 64 KiB, so
// this tier is filled once per device binding and never reallocated.
const SBBufSize = 65536

// Device is the seek-free positioned-read contract the buffer cache needs.
// *os.File satisfies it directly. Unlike a raw file descriptor with a
// shared seek cursor, ReadAt takes an explicit offset on every call, which
// sidesteps the "file position may be clobbered between calls" hazard
// spec.md §5 warns about for the C-style fd contract.
type Device interface {
	io.ReaderAt
}

// bufferCache is the two-tier read-through cache described in spec.md
// §4.1: a fixed superblock buffer for the common case, and a dynamically
// sized, dynamically positioned general buffer for the rest.
type bufferCache struct {
	dev    Device
	origin int64

	sbBuf    []byte
	sbFilled bool
	sbLen    int64

	genBuf   []byte
	genOff   int64
	genLen   int64
	genValid bool
}

func newBufferCache(dev Device, origin int64) *bufferCache {
	return &bufferCache{dev: dev, origin: origin}
}

// reset drops both cached windows without releasing the underlying
// allocations, so a subsequent get() refills rather than reallocates.
func (c *bufferCache) reset() {
	c.sbFilled = false
	c.sbLen = 0
	c.genOff = 0
	c.genLen = 0
	c.genValid = false
}

// free releases both buffer allocations and drops both cached windows.
// A later get() allocates the buffers again.
func (c *bufferCache) free() {
	c.sbBuf = nil
	c.genBuf = nil
	c.reset()
}

// get returns a read-only window of length length at absolute offset off
// (relative to the cache's origin), or nil if the window cannot be
// satisfied (short read / end of device / I/O error).
func (c *bufferCache) get(off, length int64) []byte {
	if off < 0 || length < 0 {
		return nil
	}
	if off+length <= SBBufSize {
		return c.getFromSuperblock(off, length)
	}
	return c.getFromGeneral(off, length)
}

// fillSuperblock performs the superblock tier's lazy read if it hasn't
// happened yet, and returns how many bytes were actually read (possibly
// short, possibly zero). Exposed separately from get() so bind's
// precautionary readability check can distinguish "zero bytes read" (hard
// failure) from "fewer than requested bytes read" (fine, served later
// get() calls just fail for windows past sbLen).
func (c *bufferCache) fillSuperblock() int64 {
	if !c.sbFilled {
		if c.sbBuf == nil {
			c.sbBuf = make([]byte, SBBufSize)
		}
		n, err := c.dev.ReadAt(c.sbBuf, c.origin)
		if n < 0 {
			n = 0
		}
		if err != nil && err != io.EOF && n == 0 {
			c.sbLen = 0
		} else {
			c.sbLen = int64(n)
		}
		c.sbFilled = true
	}
	return c.sbLen
}

func (c *bufferCache) getFromSuperblock(off, length int64) []byte {
	c.fillSuperblock()
	if off+length > c.sbLen {
		return nil
	}
	return c.sbBuf[off : off+length]
}

func (c *bufferCache) getFromGeneral(off, length int64) []byte {
	reallocated := false

	if length > int64(len(c.genBuf)) {
		c.genBuf = make([]byte, length)
		c.genOff = 0
		c.genLen = 0
		c.genValid = false
		reallocated = true
	}

	needsRefill := reallocated || !c.genValid ||
		off < c.genOff || off+length > c.genOff+c.genLen

	if needsRefill {
		n, err := c.dev.ReadAt(c.genBuf[:length], c.origin+off)
		if err != nil || int64(n) != length {
			c.genValid = false
			return nil
		}
		c.genOff = off
		c.genLen = length
		c.genValid = true
	}

	start := off - c.genOff
	return c.genBuf[start : start+length]
}
