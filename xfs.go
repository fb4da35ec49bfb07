package blkid

import (
	"bytes"
	"encoding/binary"

	log "github.com/dsoprea/go-logging"
)

// xfsMagic is "XFSB", the XFS primary superblock signature, grounded on
// other_examples/97301363_direktiv-vorteil__pkg-xfs-structures.go.go
// (SBMagicNumber = 0x58465342).
var xfsMagic = []byte{0x58, 0x46, 0x53, 0x42}

// xfsSuperblock mirrors the leading portion of the XFS primary
// superblock, which lives at absolute byte offset 0 and is entirely
// big-endian on disk (unlike ext2/3/4's little-endian layout).
type xfsSuperblock struct {
	MagicNumber      uint32
	BlockSize        uint32
	DataBlocks       uint64
	RealtimeBlocks   uint64
	RealtimeExtents  uint64
	UUID             [16]byte
	LogStart         uint64
	RootInode        uint64
	RtBitmapInode    uint64
	RtSummaryInode   uint64
	RtExtentBlocks   uint32
	AGBlocks         uint32
	AGCount          uint32
	RtBitmapBlocks   uint32
	LogBlocks        uint32
	VersionNum       uint16
	SectorSize       uint16
	InodeSize        uint16
	InodesPerBlock   uint16
	FSName           [12]byte
}

func probeXFS(s *Session, _ *MagicSpec) error {
	buf := s.getBuffer(0, 120)
	if buf == nil {
		return ErrShortRead
	}

	sb := new(xfsSuperblock)
	if err := binary.Read(bytes.NewReader(buf), binary.BigEndian, sb); err != nil {
		return log.Wrap(err)
	}
	if sb.MagicNumber != 0x58465342 {
		return ErrNoMatch
	}

	if err := s.setLabel(sb.FSName[:]); err != nil {
		return err
	}
	return s.setUUID(sb.UUID[:])
}

var xfsDescriptor = Descriptor{
	Name:  "xfs",
	Usage: UsageFilesystem,
	Magics: []MagicSpec{
		{Pattern: xfsMagic, KBOffset: 0, SubOffset: 0},
	},
	ProbeFunc: probeXFS,
}
