package blkid

import "testing"

func newTestSession() *Session {
	s := New()
	s.tags.clear()
	return s
}

func TestSetValue_TruncatesToMaxValueBytes(t *testing.T) {
	s := newTestSession()
	data := make([]byte, MaxValueBytes+50)
	for i := range data {
		data[i] = 'x'
	}
	if err := s.setValue("FOO", data); err != nil {
		t.Fatalf("setValue: %v", err)
	}
	entry, ok := s.tags.lookup("FOO")
	if !ok {
		t.Fatal("expected FOO to be present")
	}
	if len(entry.Value) != MaxValueBytes {
		t.Fatalf("expected truncation to %d bytes, got %d", MaxValueBytes, len(entry.Value))
	}
}

func TestSetValue_StoreFullReturnsError(t *testing.T) {
	s := newTestSession()
	for i := 0; i < MaxTags; i++ {
		if err := s.setValue("TAG", []byte("v")); err != nil {
			t.Fatalf("setValue %d: %v", i, err)
		}
	}
	if err := s.setValue("ONE_TOO_MANY", []byte("v")); err != ErrTagStoreFull {
		t.Fatalf("expected ErrTagStoreFull, got %v", err)
	}
}

func TestSetLabel_StripsTrailingSpaceButKeepsRaw(t *testing.T) {
	s := newTestSession()
	raw := []byte("myvolume   \x00\x00\x00")
	if err := s.setLabel(raw); err != nil {
		t.Fatalf("setLabel: %v", err)
	}
	label, ok := s.Lookup(TagLabel)
	if !ok || string(label.Value) != "myvolume" {
		t.Fatalf("expected LABEL %q, got %q (ok=%v)", "myvolume", label.Value, ok)
	}
	rawEntry, ok := s.Lookup(TagLabelRaw)
	if !ok || len(rawEntry.Value) != len(raw) {
		t.Fatalf("expected LABEL_RAW to keep all %d bytes, got %d", len(raw), len(rawEntry.Value))
	}
}

func TestSetLabel_RequestGating(t *testing.T) {
	s := newTestSession()
	s.SetRequest(ReqLabelRaw) // LABEL not requested
	if err := s.setLabel([]byte("vol")); err != nil {
		t.Fatalf("setLabel: %v", err)
	}
	if s.HasValue(TagLabel) {
		t.Fatal("expected LABEL to be absent when ReqLabel is not set")
	}
	if !s.HasValue(TagLabelRaw) {
		t.Fatal("expected LABEL_RAW to be present")
	}
}

func TestEncodeUTF16ToUTF8_BasicASCII(t *testing.T) {
	raw := []byte{'h', 0, 'i', 0, 0, 0}
	got := encodeUTF16ToUTF8(raw, EncUTF16LE)
	if string(got) != "hi" {
		t.Fatalf("got %q, want %q", got, "hi")
	}
}

func TestEncodeUTF16ToUTF8_UnpairedSurrogateEmittedRaw(t *testing.T) {
	// 0xD800 is a lone high surrogate with no following low surrogate.
	raw := []byte{0xd8, 0x00, 0, 0}
	got := encodeUTF16ToUTF8(raw, EncUTF16BE)
	// Three-byte UTF-8 encoding of the raw 16-bit value 0xD800, not a
	// reassembled codepoint or U+FFFD.
	want := []byte{0xe0 | (0xd800 >> 12), 0x80 | ((0xd800 >> 6) & 0x3f), 0x80 | (0xd800 & 0x3f)}
	if len(got) != len(want) {
		t.Fatalf("got %x, want %x", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("byte %d: got %x, want %x", i, got[i], want[i])
		}
	}
}

func TestSetUUID_SkipsAllZero(t *testing.T) {
	s := newTestSession()
	if err := s.setUUID(make([]byte, 16)); err != nil {
		t.Fatalf("setUUID: %v", err)
	}
	if s.HasValue(TagUUID) {
		t.Fatal("expected all-zero UUID to be skipped")
	}
}

func TestSetUUID_CanonicalFormat(t *testing.T) {
	s := newTestSession()
	raw := []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08, 0x09, 0x0a, 0x0b, 0x0c, 0x0d, 0x0e, 0x0f, 0x10}
	if err := s.setUUID(raw); err != nil {
		t.Fatalf("setUUID: %v", err)
	}
	entry, ok := s.Lookup(TagUUID)
	if !ok {
		t.Fatal("expected UUID to be present")
	}
	want := "01020304-0506-0708-090a-0b0c0d0e0f10"
	if string(entry.Value) != want {
		t.Fatalf("got %q, want %q", entry.Value, want)
	}
}

func TestSetUUIDNamed_CustomNameStillGatedByReqUUID(t *testing.T) {
	s := newTestSession()
	s.SetRequest(ReqType) // ReqUUID intentionally not set
	raw := []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16}
	if err := s.setUUIDNamed(raw, "PTUUID"); err != nil {
		t.Fatalf("setUUIDNamed: %v", err)
	}
	if s.HasValue("PTUUID") {
		t.Fatal("expected custom-named UUID emission to respect ReqUUID gating")
	}
}

func TestSetUUIDNamed_CustomNameDoesNotEmitUUIDRaw(t *testing.T) {
	s := newTestSession()
	raw := []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16}
	if err := s.setUUIDNamed(raw, "PTUUID"); err != nil {
		t.Fatalf("setUUIDNamed: %v", err)
	}
	if s.HasValue(TagUUIDRaw) {
		t.Fatal("expected UUID_RAW to be emitted only for the default TagUUID name")
	}
	if !s.HasValue("PTUUID") {
		t.Fatal("expected PTUUID to be present")
	}
}

func TestSetUUIDBytes_RequestGating(t *testing.T) {
	s := newTestSession()
	s.SetRequest(ReqType)
	if err := s.setUUIDBytes(TagUUID, []byte{0xde, 0xad, 0xbe, 0xef}); err != nil {
		t.Fatalf("setUUIDBytes: %v", err)
	}
	if s.HasValue(TagUUID) {
		t.Fatal("expected setUUIDBytes to respect ReqUUID gating")
	}
}
