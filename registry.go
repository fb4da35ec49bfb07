package blkid

// UsageClass categorizes what a format is for (spec.md §3). It is a
// bitmask so that filter.by_usage can select on an arbitrary combination,
// even though any single Descriptor carries exactly one bit.
type UsageClass uint32

const (
	UsageFilesystem UsageClass = 1 << iota
	UsageRAID
	UsageCrypto
	UsageOther
)

// String returns the lowercase tag value for a usage class, or "unknown"
// for an unset/invalid class (spec.md §3, §6).
func (u UsageClass) String() string {
	switch u {
	case UsageFilesystem:
		return "filesystem"
	case UsageRAID:
		return "raid"
	case UsageCrypto:
		return "crypto"
	case UsageOther:
		return "other"
	default:
		return "unknown"
	}
}

// MagicSpec is a short byte pattern expected at a fixed (kilobyte,
// sub-kilobyte) offset from the session's origin (spec.md §3).
type MagicSpec struct {
	Pattern   []byte
	KBOffset  uint32
	SubOffset uint32
}

// absoluteOffset returns the magic's absolute byte offset from origin.
func (m MagicSpec) absoluteOffset() int64 {
	return int64(m.KBOffset)*1024 + int64(m.SubOffset)
}

// ProbeFunc validates a candidate superblock and emits tags via the
// Session's value emitters. It must not emit TYPE or USAGE itself (the
// dispatch loop does that on a successful return) and must return nil to
// accept, any non-nil error to reject. matched is the MagicSpec that
// triggered the call, or nil if the descriptor declared no magics.
type ProbeFunc func(s *Session, matched *MagicSpec) error

// Descriptor is an immutable, statically defined prober entry (spec.md
// §3). The registry is a plain ordered slice of these, built once from
// package-level descriptor variables — there is no runtime registration
// step.
type Descriptor struct {
	Name      string
	Usage     UsageClass
	Magics    []MagicSpec
	ProbeFunc ProbeFunc
}

// Registry is the ordered, immutable prober table. Order is part of the
// data model (spec.md §3): RAID/container formats are tried before
// filesystems so a wrapped filesystem never shadows its container.
var Registry = []Descriptor{
	// RAID / container formats first.
	linuxraidDescriptor,
	ddfraidDescriptor,
	iswraidDescriptor,
	lvm2Descriptor,
	luksDescriptor,

	// Boot-sector / fixed-signature formats.
	vfatDescriptor,
	hibernateDescriptor,
	swapDescriptor,

	// Filesystems.
	xfsDescriptor,
	ext4Descriptor,
	ext3Descriptor,
	ext2Descriptor,
	jbdDescriptor,
	ntfsDescriptor,
	iso9660Descriptor,
}

// KnownFSType reports whether name matches a registered prober's Name,
// the Go equivalent of blkid_known_fstype.
func KnownFSType(name string) bool {
	if name == "" {
		return false
	}
	for _, d := range Registry {
		if d.Name == name {
			return true
		}
	}
	return false
}
