package blkid

// ddfraid probes a SNIA DDF (Disk Data Format) RAID anchor, which is
// anchored to the very last sector of the device rather than a fixed
// offset from the start, so — like linuxraid — it carries no static
// MagicSpec. Signature and GUID layout follow the public SNIA DDF 1.2
// specification's ddf_header anchor record (no pack example covers DDF;
// see DESIGN.md).
const (
	ddfSectorSize  = 512
	ddfSigOffset   = 0
	ddfGUIDOffset  = 8
	ddfGUIDLen     = 24
)

var ddfSignature = []byte{0xde, 0x11, 0xde, 0x11}

func probeDDFRAID(s *Session, _ *MagicSpec) error {
	size := s.Size()
	if size < ddfSectorSize {
		return ErrNoMatch
	}
	off := int64(size) - ddfSectorSize

	buf := s.getBuffer(off, ddfSectorSize)
	if buf == nil {
		return ErrNoMatch
	}

	if !bytesEqual(buf[ddfSigOffset:ddfSigOffset+4], ddfSignature) {
		return ErrNoMatch
	}

	guid := buf[ddfGUIDOffset : ddfGUIDOffset+ddfGUIDLen]
	return s.setUUIDBytes(TagUUID, guid)
}

var ddfraidDescriptor = Descriptor{
	Name:      "ddf_raid_member",
	Usage:     UsageRAID,
	ProbeFunc: probeDDFRAID,
}
