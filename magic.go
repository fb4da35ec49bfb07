package blkid

// findMagic scans magics in order and returns the first one whose pattern
// matches at its declared offset, or nil if none matched (spec.md §4.4).
// Each magic is checked against a 1024-byte window aligned to the
// kilobyte containing its absolute offset, mirroring the reference
// implementation's blkid_do_probe inner loop.
func findMagic(c *bufferCache, magics []MagicSpec) *MagicSpec {
	for i := range magics {
		m := &magics[i]
		abs := m.absoluteOffset()
		blockStart := (abs / 1024) * 1024
		within := abs - blockStart

		winLen := int64(1024)
		if within+int64(len(m.Pattern)) > winLen {
			winLen = within + int64(len(m.Pattern))
		}

		window := c.get(blockStart, winLen)
		if window == nil {
			continue
		}
		if bytesEqual(window[within:within+int64(len(m.Pattern))], m.Pattern) {
			return m
		}
	}
	return nil
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
