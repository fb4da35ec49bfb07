package blkid

// FilterMode selects the sense of a filter.by_name / filter.by_usage call
// (spec.md §4.3).
type FilterMode int

const (
	// FilterOnlyIn probes only the named/usage-matching probers.
	FilterOnlyIn FilterMode = iota
	// FilterNotIn probes everything except the named/usage-matching probers.
	FilterNotIn
)

const bitmapWordBits = 64

func bitmapWords(nbits int) int {
	return (nbits + bitmapWordBits - 1) / bitmapWordBits
}

// filterBitmap is a bitmap over the prober registry; bit i set means
// "skip prober i" (spec.md §4.3). A nil *filterBitmap behaves as though
// every bit were clear, i.e. no prober is skipped.
type filterBitmap struct {
	bits []uint64
}

func newFilterBitmap() *filterBitmap {
	return &filterBitmap{bits: make([]uint64, bitmapWords(len(Registry)))}
}

func (f *filterBitmap) set(i int) {
	f.bits[i/bitmapWordBits] |= 1 << uint(i%bitmapWordBits)
}

func (f *filterBitmap) isSet(i int) bool {
	if f == nil {
		return false
	}
	return f.bits[i/bitmapWordBits]&(1<<uint(i%bitmapWordBits)) != 0
}

func (f *filterBitmap) reset() {
	for i := range f.bits {
		f.bits[i] = 0
	}
}

func (f *filterBitmap) invert() {
	for i := range f.bits {
		f.bits[i] = ^f.bits[i]
	}
	f.maskTrailingBits()
}

// maskTrailingBits clears any bits beyond len(Registry) in the last word
// so invert doesn't set phantom bits that would otherwise be harmless
// (nothing indexes them) but would break a byte-for-byte bitmap comparison
// in tests.
func (f *filterBitmap) maskTrailingBits() {
	n := len(Registry)
	total := len(f.bits) * bitmapWordBits
	if total == n {
		return
	}
	lastWord := len(f.bits) - 1
	validBits := n - lastWord*bitmapWordBits
	f.bits[lastWord] &= (1 << uint(validBits)) - 1
}

// ResetFilter clears every bit (probes everything) and resets the cursor.
func (s *Session) ResetFilter() error {
	if s.filter == nil {
		s.filter = newFilterBitmap()
	} else {
		s.filter.reset()
	}
	s.resumeAt = 0
	return nil
}

// FilterByName restricts probing to (FilterOnlyIn) or excludes
// (FilterNotIn) the named probers. Resets the cursor.
func (s *Session) FilterByName(mode FilterMode, names []string) error {
	if len(names) == 0 {
		return ErrFilterNoNames
	}
	wanted := make(map[string]bool, len(names))
	for _, n := range names {
		wanted[n] = true
	}
	if s.filter == nil {
		s.filter = newFilterBitmap()
	} else {
		s.filter.reset()
	}
	for i, d := range Registry {
		has := wanted[d.Name]
		if mode == FilterOnlyIn && !has {
			s.filter.set(i)
		} else if mode == FilterNotIn && has {
			s.filter.set(i)
		}
	}
	s.resumeAt = 0
	return nil
}

// FilterByUsage restricts probing to (FilterOnlyIn) or excludes
// (FilterNotIn) probers whose usage class is in usageMask. Resets the
// cursor.
func (s *Session) FilterByUsage(mode FilterMode, usageMask UsageClass) error {
	if usageMask == 0 {
		return ErrFilterNoUsage
	}
	if s.filter == nil {
		s.filter = newFilterBitmap()
	} else {
		s.filter.reset()
	}
	for i, d := range Registry {
		in := d.Usage&usageMask != 0
		if mode == FilterNotIn && in {
			s.filter.set(i)
		} else if mode == FilterOnlyIn && !in {
			s.filter.set(i)
		}
	}
	s.resumeAt = 0
	return nil
}

// InvertFilter flips every bit in the current filter. A session with no
// filter installed behaves as all-zero, so inverting it excludes
// everything; callers who want the "probe everything" default should not
// invert an empty filter.
func (s *Session) InvertFilter() error {
	if s.filter == nil {
		s.filter = newFilterBitmap()
	}
	s.filter.invert()
	s.resumeAt = 0
	return nil
}
