package blkid

// vfat probes the FAT12/16/32 boot sector BIOS Parameter Block. Byte
// offsets are grounded on other_examples/495c5548_soypat-fat__tables.go.go
// (bsVolLab, bpbBytsPerSec, bsBootSig and friends); FAT32's extended BPB
// shifts the legacy fields, handled by branching on the filesystem-type
// string the same way real blkid does.
const (
	fatBootSigOffset = 0x1fe

	fatLegacyFilSysTypeOffset = 54
	fatLegacyVolLabOffset     = 43
	fatLegacyVolIDOffset      = 39

	fat32FilSysTypeOffset = 82
	fat32VolLabOffset      = 71
	fat32VolIDOffset       = 67

	fatBootSectorReadLen = 90
)

var fatBootSignature = []byte{0x55, 0xaa}

func probeVFAT(s *Session, _ *MagicSpec) error {
	buf := s.getBuffer(0, fatBootSectorReadLen)
	if buf == nil {
		return ErrShortRead
	}

	bytsPerSec := uint16(buf[11]) | uint16(buf[12])<<8
	if bytsPerSec == 0 {
		return ErrNoMatch
	}

	var fsType, volLab []byte
	var volIDOff int

	if string(buf[fat32FilSysTypeOffset:fat32FilSysTypeOffset+5]) == "FAT32" {
		fsType = buf[fat32FilSysTypeOffset : fat32FilSysTypeOffset+8]
		volLab = buf[fat32VolLabOffset : fat32VolLabOffset+11]
		volIDOff = fat32VolIDOffset
	} else {
		fsType = buf[fatLegacyFilSysTypeOffset : fatLegacyFilSysTypeOffset+8]
		volLab = buf[fatLegacyVolLabOffset : fatLegacyVolLabOffset+11]
		volIDOff = fatLegacyVolIDOffset
	}

	if !hasFATPrefix(fsType) {
		return ErrNoMatch
	}

	if err := s.setLabel(volLab); err != nil {
		return err
	}

	volID := buf[volIDOff : volIDOff+4]
	// FAT's "volume ID" is a 32-bit value, not a 128-bit UUID; blkid
	// formats it as a bare hex serial rather than a dashed UUID.
	return s.setUUIDBytes(TagUUID, []byte{volID[3], volID[2], volID[1], volID[0]})
}

func hasFATPrefix(b []byte) bool {
	return len(b) >= 3 && b[0] == 'F' && b[1] == 'A' && b[2] == 'T'
}

var vfatDescriptor = Descriptor{
	Name:  "vfat",
	Usage: UsageFilesystem,
	Magics: []MagicSpec{
		{Pattern: fatBootSignature, KBOffset: 0, SubOffset: fatBootSigOffset},
	},
	ProbeFunc: probeVFAT,
}
