package blkid

import "testing"

func TestFilterByName_OnlyIn(t *testing.T) {
	s := New()
	if err := s.FilterByName(FilterOnlyIn, []string{"ext4"}); err != nil {
		t.Fatalf("FilterByName: %v", err)
	}
	for i, d := range Registry {
		want := d.Name != "ext4"
		if s.filter.isSet(i) != want {
			t.Fatalf("prober %q: isSet=%v, want %v", d.Name, s.filter.isSet(i), want)
		}
	}
}

func TestFilterByName_NotIn(t *testing.T) {
	s := New()
	if err := s.FilterByName(FilterNotIn, []string{"ext4"}); err != nil {
		t.Fatalf("FilterByName: %v", err)
	}
	for i, d := range Registry {
		want := d.Name == "ext4"
		if s.filter.isSet(i) != want {
			t.Fatalf("prober %q: isSet=%v, want %v", d.Name, s.filter.isSet(i), want)
		}
	}
}

func TestFilterByName_EmptyNamesRejected(t *testing.T) {
	s := New()
	if err := s.FilterByName(FilterOnlyIn, nil); err != ErrFilterNoNames {
		t.Fatalf("expected ErrFilterNoNames, got %v", err)
	}
}

func TestFilterByUsage_NotIn(t *testing.T) {
	s := New()
	if err := s.FilterByUsage(FilterNotIn, UsageRAID); err != nil {
		t.Fatalf("FilterByUsage: %v", err)
	}
	for i, d := range Registry {
		want := d.Usage&UsageRAID != 0
		if s.filter.isSet(i) != want {
			t.Fatalf("prober %q: isSet=%v, want %v", d.Name, s.filter.isSet(i), want)
		}
	}
}

func TestFilterByUsage_ZeroMaskRejected(t *testing.T) {
	s := New()
	if err := s.FilterByUsage(FilterOnlyIn, 0); err != ErrFilterNoUsage {
		t.Fatalf("expected ErrFilterNoUsage, got %v", err)
	}
}

func TestInvertFilter_IsComplement(t *testing.T) {
	s := New()
	if err := s.FilterByName(FilterOnlyIn, []string{"ext4"}); err != nil {
		t.Fatalf("FilterByName: %v", err)
	}
	before := make([]bool, len(Registry))
	for i := range Registry {
		before[i] = s.filter.isSet(i)
	}

	if err := s.InvertFilter(); err != nil {
		t.Fatalf("InvertFilter: %v", err)
	}
	for i := range Registry {
		if s.filter.isSet(i) == before[i] {
			t.Fatalf("prober %d: expected invert to flip the bit", i)
		}
	}
}

func TestInvertFilter_DoesNotSetPhantomBitsBeyondRegistry(t *testing.T) {
	s := New()
	if err := s.InvertFilter(); err != nil {
		t.Fatalf("InvertFilter: %v", err)
	}
	total := len(s.filter.bits) * bitmapWordBits
	for i := len(Registry); i < total; i++ {
		if s.filter.isSet(i) {
			t.Fatalf("bit %d beyond Registry length must stay clear after invert", i)
		}
	}
}

func TestResetFilter_ClearsEverything(t *testing.T) {
	s := New()
	if err := s.FilterByName(FilterOnlyIn, []string{"ext4"}); err != nil {
		t.Fatalf("FilterByName: %v", err)
	}
	if err := s.ResetFilter(); err != nil {
		t.Fatalf("ResetFilter: %v", err)
	}
	for i := range Registry {
		if s.filter.isSet(i) {
			t.Fatalf("bit %d should be clear after ResetFilter", i)
		}
	}
}

func TestFilterMutation_ResetsCursor(t *testing.T) {
	s := New()
	s.resumeAt = 5
	if err := s.FilterByName(FilterOnlyIn, []string{"ext4"}); err != nil {
		t.Fatalf("FilterByName: %v", err)
	}
	if s.resumeAt != 0 {
		t.Fatalf("expected resumeAt reset to 0, got %d", s.resumeAt)
	}
}
