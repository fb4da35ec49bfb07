package blkid

import "bytes"

// iswraid probes an Intel Matrix Storage Manager (IMSM) software RAID
// metadata anchor, which — like ddfraid — lives in the last sector of the
// device and carries a version string rather than a UUID. Signature
// follows the public Intel IMSM "Intel Raid ISM Cfg Sig." orig_family
// record (no pack example covers IMSM; see DESIGN.md).
const (
	iswSectorSize = 512
	iswSigLen     = 24
	iswVersionLen = 8 // version string right after the signature, e.g. "1.3.00"
)

var iswSignaturePrefix = []byte("Intel Raid ISM Cfg Sig.")

func probeISWRAID(s *Session, _ *MagicSpec) error {
	size := s.Size()
	if size < iswSectorSize {
		return ErrNoMatch
	}
	off := int64(size) - iswSectorSize

	buf := s.getBuffer(off, iswSectorSize)
	if buf == nil {
		return ErrNoMatch
	}

	if !bytes.HasPrefix(buf, iswSignaturePrefix) {
		return ErrNoMatch
	}

	version := bytes.Trim(buf[iswSigLen:iswSigLen+iswVersionLen], " \x00")
	return s.setVersion(string(version))
}

var iswraidDescriptor = Descriptor{
	Name:      "isw_raid_member",
	Usage:     UsageRAID,
	ProbeFunc: probeISWRAID,
}
