// Package blkid decides what resides at offset zero of a readable byte
// range — a filesystem, a RAID/container superblock, a swap area, or a
// hibernation image — and extracts descriptive tags (TYPE, USAGE, LABEL,
// UUID, VERSION) from the structure it found.
//
// The package is single-threaded and synchronous: a Session is owned by
// one goroutine for its lifetime, and every call does a positioned read
// against the bound Device. Different Sessions are fully independent.
package blkid

import (
	log "github.com/dsoprea/go-logging"

	"github.com/kzak/go-blkid/internal/sliceio"
)

// ProbeStatus is the outcome of a ProbeNext call.
type ProbeStatus int

const (
	// Matched means the tag store now holds one prober's result.
	Matched ProbeStatus = iota
	// Exhausted means every unfiltered prober was tried with no match.
	Exhausted
)

// Session owns the device binding, buffers, filter, cursor, and tag store
// for one device-identification workflow (spec.md §3).
type Session struct {
	dev    Device
	origin int64
	size   uint64
	bound  bool

	buffers *bufferCache
	filter  *filterBitmap
	request ProbeRequest

	resumeAt int
	tags     tagStore
}

// New returns an empty, unbound session with the default probe-request
// mask (every tag family enabled).
func New() *Session {
	return &Session{request: ReqAll}
}

// Bind assigns a device to the session, resetting all buffers, tags and
// the cursor (an installed filter is kept), and performs a precautionary 512-byte read to surface an unreadable
// device early. size of 0 asks the session to query the device's size via
// the sliceio external collaborator. Returns an error if the device could
// not be read at all (zero bytes), per spec.md §4.5/§7.
func (s *Session) Bind(dev Device, origin int64, size uint64) (err error) {
	defer recoverErr(&err)

	if dev == nil {
		return ErrNoDevice
	}

	s.dev = dev
	s.origin = origin
	s.buffers = newBufferCache(dev, origin)
	s.resumeAt = 0
	s.tags.clear()
	s.bound = false

	if size == 0 {
		queried, sizeErr := sliceio.DeviceSize(dev)
		log.PanicIf(sizeErr)
		size = queried
	}
	s.size = size

	// Precautionary read: bind succeeds as long as at least one byte of
	// the device was readable, even if fewer than 512 bytes came back
	// (spec.md §4.5, §7, scenario S5).
	if s.buffers.fillSuperblock() == 0 {
		return ErrShortRead
	}

	s.bound = true
	return nil
}

// SetRequest sets the probe-request mask. Does not reset the cursor.
func (s *Session) SetRequest(mask ProbeRequest) {
	s.request = mask
}

// Reset clears buffers, tags, and the cursor; fd/origin/size (the device
// binding) are preserved.
func (s *Session) Reset() {
	if s.buffers != nil {
		s.buffers.reset()
	}
	s.tags.clear()
	s.resumeAt = 0
}

// Free releases buffers, filter, and tag storage. The underlying Device is
// NOT closed; the caller owns it.
func (s *Session) Free() {
	if s.buffers != nil {
		s.buffers.free()
	}
	s.filter = nil
	s.tags.clear()
	s.dev = nil
	s.bound = false
}

// Size returns the logical size bound to the session.
func (s *Session) Size() uint64 { return s.size }

// Origin returns the session's logical origin offset.
func (s *Session) Origin() int64 { return s.origin }

// getBuffer is the prober-facing read primitive (spec.md §6): it requests
// a window of len bytes at off, relative to the session's origin, via the
// two-tier buffer cache. Returns nil on short read / end of device / I/O
// error — probers must treat a nil return as "this prober does not
// match", never as a hard failure.
func (s *Session) getBuffer(off, length int64) []byte {
	if s.buffers == nil {
		return nil
	}
	return s.buffers.get(off, length)
}

// ProbeNext advances the dispatch loop (spec.md §4.4). On Matched, the tag
// store holds the successful prober's tags plus the auto-appended TYPE and
// USAGE. On Exhausted, the tag store is empty. err is non-nil only for a
// hard failure (invalid session state), corresponding to the reference
// API's ERROR(-1) return.
func (s *Session) ProbeNext() (status ProbeStatus, err error) {
	defer recoverErr(&err)

	if s == nil {
		return Exhausted, ErrNilSession
	}
	if !s.bound {
		return Exhausted, ErrNoDevice
	}

	s.tags.clear()

	for i := s.resumeAt; i < len(Registry); i++ {
		if s.filter.isSet(i) {
			continue
		}

		descriptor := Registry[i]

		var matched *MagicSpec
		if len(descriptor.Magics) > 0 {
			matched = findMagic(s.buffers, descriptor.Magics)
			if matched == nil {
				continue
			}
		}

		if probeErr := descriptor.ProbeFunc(s, matched); probeErr != nil {
			s.tags.clear()
			continue
		}

		if s.request&ReqType != 0 {
			log.PanicIf(s.setValue(TagType, []byte(descriptor.Name)))
		}
		if s.request&ReqUsage != 0 {
			log.PanicIf(s.setValue(TagUsage, []byte(descriptor.Usage.String())))
		}

		s.resumeAt = i + 1
		return Matched, nil
	}

	s.resumeAt = len(Registry)
	return Exhausted, nil
}

// NumValues returns the number of tags currently in the store.
func (s *Session) NumValues() int {
	return s.tags.numValues()
}

// Value returns the i'th tag entry, or ok=false if i is out of range.
func (s *Session) Value(i int) (entry TagEntry, ok bool) {
	return s.tags.at(i)
}

// Lookup returns the tag named name, or ok=false if absent.
func (s *Session) Lookup(name string) (entry TagEntry, ok bool) {
	return s.tags.lookup(name)
}

// HasValue reports whether a tag named name is present.
func (s *Session) HasValue(name string) bool {
	return s.tags.has(name)
}
