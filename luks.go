package blkid

import (
	"bytes"
	"encoding/binary"

	log "github.com/dsoprea/go-logging"
)

// luksHeader mirrors the fixed LUKS1 header, grounded on
// other_examples/50231051_distr1-distri__cmd-minitrd-blkid.go.go. LUKS2
// moves most of this into a JSON metadata area but keeps the same six-byte
// magic and version field at offset 0, which is all this prober needs.
type luksHeader struct {
	Magic         [6]uint8
	Version       uint16
	CipherName    [32]byte
	CipherMode    [32]byte
	HashSpec      [32]uint8
	PayloadOffset uint32
	KeyBytes      uint32
	MkDigest      [20]byte
	MkDigestSalt  [32]byte
	MkDigestIter  uint32
	UUID          [40]byte
}

var luksMagic = append([]byte("LUKS"), 0xba, 0xbe)

func probeLUKS(s *Session, _ *MagicSpec) error {
	buf := s.getBuffer(0, 208)
	if buf == nil {
		return ErrShortRead
	}

	var hdr luksHeader
	if err := binary.Read(bytes.NewReader(buf), binary.BigEndian, &hdr); err != nil {
		return log.Wrap(err)
	}
	if !bytes.Equal(hdr.Magic[:], luksMagic) {
		return ErrNoMatch
	}

	if err := s.setVersion(versionString(hdr.Version)); err != nil {
		return err
	}
	return s.setUUIDString(TagUUID, string(hdr.UUID[:]))
}

func versionString(v uint16) string {
	switch v {
	case 1:
		return "1"
	case 2:
		return "2"
	default:
		return ""
	}
}

var luksDescriptor = Descriptor{
	Name:  "crypto_LUKS",
	Usage: UsageCrypto,
	Magics: []MagicSpec{
		{Pattern: luksMagic, KBOffset: 0, SubOffset: 0},
	},
	ProbeFunc: probeLUKS,
}
