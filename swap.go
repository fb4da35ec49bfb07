package blkid

// swap probes a Linux swap area. The signature sits 10 bytes before the
// end of the page, so its absolute offset depends on the page size; real
// swap areas are only ever created at one of a handful of page sizes, so
// the registry lists one MagicSpec per candidate page size rather than
// trying to detect page size first. Header layout grounded on
// other_examples/f40f5261_siderolabs-go-blockdevice__blkid-internal-filesystems-swap-swap.go.go
// (version/last_page/uuid/volume_name field order) plus the classic
// struct swap_header_v1_2 layout it was generated from.
const (
	swapHeaderOffset     = 1024
	swapHeaderVersionOff = 0
	swapHeaderLastPgOff  = 4
	swapHeaderUUIDOff    = 12
	swapHeaderLabelOff   = 28
	swapHeaderLabelLen   = 16
	swapHeaderReadLen    = 44
)

var swapMagicValues = [][]byte{[]byte("SWAPSPACE2"), []byte("SWAP-SPACE")}

// swapPageSizes are the page sizes blkid checks for a swap signature.
var swapPageSizes = []int64{4096, 8192, 16384, 32768, 65536}

func swapMagics() []MagicSpec {
	magics := make([]MagicSpec, 0, len(swapPageSizes)*len(swapMagicValues))
	for _, page := range swapPageSizes {
		off := uint32(page - 10)
		for _, v := range swapMagicValues {
			magics = append(magics, MagicSpec{Pattern: v, KBOffset: off / 1024, SubOffset: off % 1024})
		}
	}
	return magics
}

func probeSwap(s *Session, _ *MagicSpec) error {
	hdr := s.getBuffer(swapHeaderOffset, swapHeaderReadLen)
	if hdr == nil {
		return ErrShortRead
	}

	version := le32(hdr[swapHeaderVersionOff:])
	lastPage := le32(hdr[swapHeaderLastPgOff:])
	if version != 1 || lastPage == 0 {
		return ErrNoMatch
	}

	label := hdr[swapHeaderLabelOff : swapHeaderLabelOff+swapHeaderLabelLen]
	if label[0] != 0 {
		if err := s.setLabel(label); err != nil {
			return err
		}
	}

	uuidRaw := hdr[swapHeaderUUIDOff : swapHeaderUUIDOff+16]
	return s.setUUID(uuidRaw)
}

func le32(b []byte) uint32 {
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}

var swapDescriptor = Descriptor{
	Name:      "swap",
	Usage:     UsageOther,
	Magics:    swapMagics(),
	ProbeFunc: probeSwap,
}
