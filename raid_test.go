package blkid_test

import (
	"testing"

	"github.com/kzak/go-blkid"
)

func buildLinuxRAIDImage(size int) []byte {
	buf := make([]byte, size)
	off := (size &^ (65536 - 1)) - 65536
	putLE32At(buf, off+0, 0xa92b4efc) // md_magic
	putLE32At(buf, off+4, 1)          // major_version
	putLE32At(buf, off+20, 0x11111111)
	putLE32At(buf, off+52, 0x22222222)
	putLE32At(buf, off+56, 0x33333333)
	putLE32At(buf, off+60, 0x44444444)
	return buf
}

func putLE32At(buf []byte, off int, v uint32) {
	buf[off] = byte(v)
	buf[off+1] = byte(v >> 8)
	buf[off+2] = byte(v >> 16)
	buf[off+3] = byte(v >> 24)
}

func TestProbeLinuxRAID(t *testing.T) {
	size := 196608 // 3 * 65536, so the superblock lands well inside the image
	dev := &memDevice{data: buildLinuxRAIDImage(size)}
	s := blkid.New()
	if err := s.Bind(dev, 0, uint64(size)); err != nil {
		t.Fatalf("Bind: %v", err)
	}
	status, err := s.ProbeNext()
	if err != nil || status != blkid.Matched {
		t.Fatalf("ProbeNext: status=%v err=%v", status, err)
	}
	ty, _ := s.Lookup(blkid.TagType)
	if string(ty.Value) != "linux_raid_member" {
		t.Fatalf("expected TYPE=linux_raid_member, got %q", ty.Value)
	}
	version, ok := s.Lookup(blkid.TagVersion)
	if !ok || string(version.Value) != "1" {
		t.Fatalf("expected VERSION=1, got %q (ok=%v)", version.Value, ok)
	}
}

func buildDDFImage(size int) []byte {
	buf := make([]byte, size)
	off := size - 512
	buf[off] = 0xde
	buf[off+1] = 0x11
	buf[off+2] = 0xde
	buf[off+3] = 0x11
	for i := 0; i < 24; i++ {
		buf[off+8+i] = byte(i + 1)
	}
	return buf
}

func TestProbeDDFRAID(t *testing.T) {
	dev := &memDevice{data: buildDDFImage(8192)}
	s := blkid.New()
	if err := s.Bind(dev, 0, 8192); err != nil {
		t.Fatalf("Bind: %v", err)
	}
	status, err := s.ProbeNext()
	if err != nil || status != blkid.Matched {
		t.Fatalf("ProbeNext: status=%v err=%v", status, err)
	}
	ty, _ := s.Lookup(blkid.TagType)
	if string(ty.Value) != "ddf_raid_member" {
		t.Fatalf("expected TYPE=ddf_raid_member, got %q", ty.Value)
	}
}

func buildISWImage(size int) []byte {
	buf := make([]byte, size)
	off := size - 512
	copy(buf[off:], []byte("Intel Raid ISM Cfg Sig.   1.3.00"))
	return buf
}

func TestProbeISWRAID(t *testing.T) {
	dev := &memDevice{data: buildISWImage(8192)}
	s := blkid.New()
	if err := s.Bind(dev, 0, 8192); err != nil {
		t.Fatalf("Bind: %v", err)
	}
	status, err := s.ProbeNext()
	if err != nil || status != blkid.Matched {
		t.Fatalf("ProbeNext: status=%v err=%v", status, err)
	}
	ty, _ := s.Lookup(blkid.TagType)
	if string(ty.Value) != "isw_raid_member" {
		t.Fatalf("expected TYPE=isw_raid_member, got %q", ty.Value)
	}
}
