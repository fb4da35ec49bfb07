package blkid

import "bytes"

// iso9660 probes the ISO 9660 Volume Descriptor Sequence, which starts at
// sector 16 (absolute byte 32768) regardless of the medium's native sector
// size. Layout grounded on
// other_examples/216b3067_rstms-iso-kit__pkg-iso9660-descriptor-supplementary.go.go
// (Primary/Supplementary Volume Descriptor shape, Joliet escape sequence).
const (
	iso9660SectorSize = 2048
	iso9660SystemArea = 16 // sectors before the descriptor sequence

	iso9660TypePrimary      = 1
	iso9660TypeSupplementary = 2
	iso9660TypeTerminator   = 255

	iso9660VolumeIDOffset = 40
	iso9660VolumeIDLen    = 32
	iso9660EscapeOffset   = 88
	iso9660MaxDescriptors = 16
)

var iso9660StdID = []byte("CD001")

// jolietEscapeSequences are the three UCS-2 level escape sequences a
// Supplementary Volume Descriptor uses to declare itself as Joliet.
var jolietEscapeSequences = [][]byte{
	{0x25, 0x2f, 0x40},
	{0x25, 0x2f, 0x43},
	{0x25, 0x2f, 0x45},
}

func probeISO9660(s *Session, _ *MagicSpec) error {
	pvd := s.getBuffer(iso9660SystemArea*iso9660SectorSize, iso9660SectorSize)
	if pvd == nil {
		return ErrShortRead
	}
	if pvd[0] != iso9660TypePrimary || !bytes.Equal(pvd[1:6], iso9660StdID) {
		return ErrNoMatch
	}

	asciiLabel := pvd[iso9660VolumeIDOffset : iso9660VolumeIDOffset+iso9660VolumeIDLen]

	for i := 1; i < iso9660MaxDescriptors; i++ {
		sector := s.getBuffer((iso9660SystemArea+int64(i))*iso9660SectorSize, iso9660SectorSize)
		if sector == nil || !bytes.Equal(sector[1:6], iso9660StdID) {
			break
		}
		switch sector[0] {
		case iso9660TypeTerminator:
			i = iso9660MaxDescriptors
		case iso9660TypeSupplementary:
			if isJolietEscape(sector[iso9660EscapeOffset : iso9660EscapeOffset+3]) {
				jolietLabel := sector[iso9660VolumeIDOffset : iso9660VolumeIDOffset+iso9660VolumeIDLen]
				return s.setUTF8Label(jolietLabel, EncUTF16BE)
			}
		}
	}

	return s.setLabel(asciiLabel)
}

func isJolietEscape(esc []byte) bool {
	for _, seq := range jolietEscapeSequences {
		if bytes.Equal(esc, seq) {
			return true
		}
	}
	return false
}

var iso9660Descriptor = Descriptor{
	Name:  "iso9660",
	Usage: UsageFilesystem,
	Magics: []MagicSpec{
		{Pattern: iso9660StdID, KBOffset: iso9660SystemArea * 2, SubOffset: 1},
	},
	ProbeFunc: probeISO9660,
}
