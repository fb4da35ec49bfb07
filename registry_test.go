package blkid_test

import (
	"testing"

	"github.com/kzak/go-blkid"
)

func TestKnownFSType(t *testing.T) {
	cases := []struct {
		name string
		want bool
	}{
		{"ext4", true},
		{"xfs", true},
		{"vfat", true},
		{"crypto_LUKS", true},
		{"not-a-real-fs", false},
		{"", false},
	}
	for _, c := range cases {
		if got := blkid.KnownFSType(c.name); got != c.want {
			t.Errorf("KnownFSType(%q) = %v, want %v", c.name, got, c.want)
		}
	}
}

func TestRegistry_RAIDFormatsPrecedeFilesystems(t *testing.T) {
	raidIndex := -1
	fsIndex := -1
	for i, d := range blkid.Registry {
		if d.Usage == blkid.UsageRAID && raidIndex == -1 {
			raidIndex = i
		}
		if d.Usage == blkid.UsageFilesystem && fsIndex == -1 {
			fsIndex = i
		}
	}
	if raidIndex == -1 || fsIndex == -1 {
		t.Fatal("expected both a RAID and a filesystem descriptor in Registry")
	}
	if raidIndex >= fsIndex {
		t.Fatalf("expected the first RAID descriptor (index %d) to precede the first filesystem descriptor (index %d)", raidIndex, fsIndex)
	}
}

func TestRegistry_NamesAreUnique(t *testing.T) {
	seen := make(map[string]bool)
	for _, d := range blkid.Registry {
		if seen[d.Name] {
			t.Fatalf("duplicate descriptor name %q", d.Name)
		}
		seen[d.Name] = true
	}
}
