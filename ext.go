package blkid

import (
	"bytes"
	"encoding/binary"

	log "github.com/dsoprea/go-logging"
)

// extMagic is Ext2Magic/Ext3Magic/Ext4Magic ("\x53\xef" little-endian),
// shared by the whole ext2/ext3/ext4/jbd family (they are, on disk, the
// same superblock layout distinguished only by feature flags).
var extMagic = []byte{0x53, 0xef}

// extSuperblockKB is the kilobyte at which every ext2/3/4 superblock
// lives, regardless of block size.
const extSuperblockKB = 1
const extMagicSubOffset = 0x38

// extFeatureCompat / extFeatureIncompat / extFeatureRoCompat bits used for
// variant dispatch (ext2 vs ext3 vs ext4 vs jbd) and the SEC_TYPE hint.
// Ported from the teacher's SbFeatureCompat*/SbFeatureIncompat* constants.
const (
	featureCompatHasJournal = 0x0004

	featureIncompatJournalDev = 0x0008
	featureIncompatExtents    = 0x0040
	featureIncompat64bit      = 0x0080

	featureRoCompatHugeFile = 0x0008
)

// extSuperblock mirrors the on-disk ext2/3/4 superblock, ported field for
// field from the teacher's Superblock struct (hellin-go-ext4). Only the
// prefix this package actually inspects is kept; the remainder of a real
// superblock (journal backups, quota inodes, error logs, …) is outside
// this package's concerns, same as every other prober here.
type extSuperblock struct {
	SInodesCount       uint32
	SBlocksCountLo     uint32
	SRBlocksCountLo    uint32
	SFreeBlocksCountLo uint32

	SFreeInodesCount uint32
	SFirstDataBlock  uint32
	SLogBlockSize    uint32
	SLogClusterSize  uint32

	SBlocksPerGroup   uint32
	SClustersPerGroup uint32
	SInodesPerGroup   uint32
	SMtime            uint32

	SWtime         uint32
	SMntCount      uint16
	SMaxMntCount   uint16
	SMagic         uint16
	SState         uint16
	SErrors        uint16
	SMinorRevLevel uint16

	SLastcheck     uint32
	SCheckinterval uint32
	SCreatorOs     uint32
	SRevLevel      uint32

	SDefResuid uint16
	SDefResgid uint16

	SFirstIno      uint32
	SInodeSize     uint16
	SBlockGroupNr  uint16
	SFeatureCompat uint32

	SFeatureIncompat uint32
	SFeatureRoCompat uint32

	SUuid [16]uint8

	SVolumeName [16]byte
}

func parseExtSuperblock(buf []byte) (*extSuperblock, error) {
	sb := new(extSuperblock)
	if err := binary.Read(bytes.NewReader(buf), binary.LittleEndian, sb); err != nil {
		return nil, log.Wrap(err)
	}
	if sb.SMagic != 0xef53 {
		return nil, ErrNoMatch
	}
	return sb, nil
}

// extSuperblockSize is large enough to cover every field this package
// reads (through SVolumeName, offset 0x78, ending at 0x88).
const extSuperblockSize = 0x88

func readExtSuperblock(s *Session) (*extSuperblock, error) {
	buf := s.getBuffer(extSuperblockKB*1024, extSuperblockSize)
	if buf == nil {
		return nil, ErrShortRead
	}
	return parseExtSuperblock(buf)
}

func (sb *extSuperblock) hasJournal() bool     { return sb.SFeatureCompat&featureCompatHasJournal != 0 }
func (sb *extSuperblock) isJournalDev() bool   { return sb.SFeatureIncompat&featureIncompatJournalDev != 0 }
func (sb *extSuperblock) hasExtents() bool     { return sb.SFeatureIncompat&featureIncompatExtents != 0 }
func (sb *extSuperblock) has64bit() bool       { return sb.SFeatureIncompat&featureIncompat64bit != 0 }
func (sb *extSuperblock) hasHugeFile() bool    { return sb.SFeatureRoCompat&featureRoCompatHugeFile != 0 }
func (sb *extSuperblock) isExt4Only() bool     { return sb.hasExtents() || sb.has64bit() || sb.hasHugeFile() }

func emitExtTags(s *Session, sb *extSuperblock) error {
	if err := s.setLabel(sb.SVolumeName[:]); err != nil {
		return err
	}
	if err := s.setUUID(sb.SUuid[:]); err != nil {
		return err
	}
	return nil
}

func probeJBD(s *Session, _ *MagicSpec) error {
	sb, err := readExtSuperblock(s)
	if err != nil {
		return err
	}
	if !sb.isJournalDev() {
		return ErrNoMatch
	}
	return emitExtTags(s, sb)
}

func probeExt2(s *Session, _ *MagicSpec) error {
	sb, err := readExtSuperblock(s)
	if err != nil {
		return err
	}
	if sb.isJournalDev() || sb.hasJournal() || sb.isExt4Only() {
		return ErrNoMatch
	}
	return emitExtTags(s, sb)
}

func probeExt3(s *Session, _ *MagicSpec) error {
	sb, err := readExtSuperblock(s)
	if err != nil {
		return err
	}
	if sb.isJournalDev() || !sb.hasJournal() || sb.isExt4Only() {
		return ErrNoMatch
	}
	return emitExtTags(s, sb)
}

func probeExt4(s *Session, _ *MagicSpec) error {
	sb, err := readExtSuperblock(s)
	if err != nil {
		return err
	}
	if sb.isJournalDev() || !sb.isExt4Only() {
		return ErrNoMatch
	}
	if err := emitExtTags(s, sb); err != nil {
		return err
	}
	// At least one of extents/64bit/huge_file is set here. When huge_file
	// (a read-only-compatible feature) is the only one, the volume is also
	// readable by an ext2 driver, and SEC_TYPE=ext2 says so.
	if !sb.hasExtents() && !sb.has64bit() {
		if err := s.setValue("SEC_TYPE", []byte("ext2")); err != nil {
			return err
		}
	}
	return nil
}

var extMagics = []MagicSpec{{Pattern: extMagic, KBOffset: extSuperblockKB, SubOffset: extMagicSubOffset}}

var ext2Descriptor = Descriptor{
	Name:      "ext2",
	Usage:     UsageFilesystem,
	Magics:    extMagics,
	ProbeFunc: probeExt2,
}

var ext3Descriptor = Descriptor{
	Name:      "ext3",
	Usage:     UsageFilesystem,
	Magics:    extMagics,
	ProbeFunc: probeExt3,
}

var ext4Descriptor = Descriptor{
	Name:      "ext4",
	Usage:     UsageFilesystem,
	Magics:    extMagics,
	ProbeFunc: probeExt4,
}

var jbdDescriptor = Descriptor{
	Name:      "jbd",
	Usage:     UsageFilesystem,
	Magics:    extMagics,
	ProbeFunc: probeJBD,
}
