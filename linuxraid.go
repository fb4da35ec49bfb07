package blkid

// linuxraid probes the legacy (0.90) Linux software RAID superblock. Unlike
// every other prober in this package, its superblock position depends on
// the device's total size (it sits 64 KiB below the last 64 KiB-aligned
// boundary), so it declares no static MagicSpec and instead validates the
// magic itself after computing that offset — the dispatch loop already
// supports this (a Descriptor with an empty Magics slice always invokes
// its ProbeFunc). Field offsets follow the well-known, format-stable
// mdp_superblock_s layout (no pack example covers md-raid; see DESIGN.md).
const (
	mdReservedBytes = 65536
	mdSuperblockLen = 64

	mdMagicOffset      = 0
	mdMajorVerOffset   = 4
	mdSetUUID0Offset   = 20
	mdSetUUID1Offset   = 52
	mdSetUUID2Offset   = 56
	mdSetUUID3Offset   = 60
)

const mdMagic = 0xa92b4efc

func linuxraidSuperblockOffset(size uint64) int64 {
	aligned := int64(size) &^ (mdReservedBytes - 1)
	return aligned - mdReservedBytes
}

func probeLinuxRAID(s *Session, _ *MagicSpec) error {
	off := linuxraidSuperblockOffset(s.Size())
	if off < 0 {
		return ErrNoMatch
	}

	buf := s.getBuffer(off, mdSuperblockLen)
	if buf == nil {
		return ErrNoMatch
	}

	if le32(buf[mdMagicOffset:]) != mdMagic {
		return ErrNoMatch
	}

	major := le32(buf[mdMajorVerOffset:])
	if err := s.setVersion(fmtUint(major)); err != nil {
		return err
	}

	uuidRaw := make([]byte, 0, 16)
	uuidRaw = append(uuidRaw, buf[mdSetUUID0Offset:mdSetUUID0Offset+4]...)
	uuidRaw = append(uuidRaw, buf[mdSetUUID1Offset:mdSetUUID1Offset+4]...)
	uuidRaw = append(uuidRaw, buf[mdSetUUID2Offset:mdSetUUID2Offset+4]...)
	uuidRaw = append(uuidRaw, buf[mdSetUUID3Offset:mdSetUUID3Offset+4]...)
	return s.setUUID(uuidRaw)
}

func fmtUint(v uint32) string {
	if v == 0 {
		return "0"
	}
	digits := [10]byte{}
	i := len(digits)
	for v > 0 {
		i--
		digits[i] = byte('0' + v%10)
		v /= 10
	}
	return string(digits[i:])
}

var linuxraidDescriptor = Descriptor{
	Name:      "linux_raid_member",
	Usage:     UsageRAID,
	ProbeFunc: probeLinuxRAID,
}
