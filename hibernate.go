package blkid

// hibernate probes a Linux suspend-to-disk image. The kernel writes the
// image into what was a swap area, so it reuses the exact same
// page-minus-10-bytes signature offsets as swap.go, just with different
// magic strings, and the same header shape (so the UUID field lines up).
var hibernateMagicValues = [][]byte{
	[]byte("S1SUSPEND"),
	[]byte("S2SUSPEND"),
	[]byte("LINHIB0001"),
}

func hibernateMagics() []MagicSpec {
	magics := make([]MagicSpec, 0, len(swapPageSizes)*len(hibernateMagicValues))
	for _, page := range swapPageSizes {
		off := uint32(page - 10)
		for _, v := range hibernateMagicValues {
			magics = append(magics, MagicSpec{Pattern: v, KBOffset: off / 1024, SubOffset: off % 1024})
		}
	}
	return magics
}

func probeHibernate(s *Session, _ *MagicSpec) error {
	hdr := s.getBuffer(swapHeaderOffset, swapHeaderReadLen)
	if hdr == nil {
		return ErrShortRead
	}
	uuidRaw := hdr[swapHeaderUUIDOff : swapHeaderUUIDOff+16]
	return s.setUUID(uuidRaw)
}

var hibernateDescriptor = Descriptor{
	Name:      "hibernate",
	Usage:     UsageOther,
	Magics:    hibernateMagics(),
	ProbeFunc: probeHibernate,
}
