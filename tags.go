package blkid

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// MaxTags is the tag store's fixed capacity (spec.md §6: MAX_TAGS >= 16).
const MaxTags = 16

// MaxValueBytes is the per-tag payload cap (spec.md §6).
const MaxValueBytes = 256

// Well-known tag names, spec.md §6.
const (
	TagType     = "TYPE"
	TagUsage    = "USAGE"
	TagLabel    = "LABEL"
	TagLabelRaw = "LABEL_RAW"
	TagUUID     = "UUID"
	TagUUIDRaw  = "UUID_RAW"
	TagVersion  = "VERSION"
)

// ProbeRequest selects which tag families an emitter is allowed to
// materialize (spec.md §3, "probe-request mask").
type ProbeRequest uint32

const (
	ReqType ProbeRequest = 1 << iota
	ReqUsage
	ReqLabel
	ReqLabelRaw
	ReqUUID
	ReqUUIDRaw
	ReqVersion
)

// ReqAll requests every tag family; the natural default for a fresh session.
const ReqAll = ReqType | ReqUsage | ReqLabel | ReqLabelRaw | ReqUUID | ReqUUIDRaw | ReqVersion

// Encoding identifies the wire encoding of a label passed to setUTF8Label.
type Encoding int

const (
	EncUTF16LE Encoding = iota
	EncUTF16BE
)

// TagEntry is one (name, value) pair in a session's tag store. Name is
// always a compile-time string constant (see DESIGN.md's "borrowed tag
// names" note) so it never needs to be copied or interned.
type TagEntry struct {
	Name  string
	Value []byte
}

// tagStore is the bounded, insertion-ordered tag list owned by a Session.
type tagStore struct {
	entries [MaxTags]TagEntry
	count   int
}

func (s *tagStore) clear() {
	for i := 0; i < s.count; i++ {
		s.entries[i] = TagEntry{}
	}
	s.count = 0
}

func (s *tagStore) assign(name string) (*TagEntry, bool) {
	if s.count >= MaxTags {
		return nil, false
	}
	e := &s.entries[s.count]
	e.Name = name
	s.count++
	return e, true
}

func (s *tagStore) numValues() int {
	return s.count
}

func (s *tagStore) at(i int) (TagEntry, bool) {
	if i < 0 || i >= s.count {
		return TagEntry{}, false
	}
	return s.entries[i], true
}

func (s *tagStore) lookup(name string) (TagEntry, bool) {
	for i := 0; i < s.count; i++ {
		if s.entries[i].Name == name {
			return s.entries[i], true
		}
	}
	return TagEntry{}, false
}

func (s *tagStore) has(name string) bool {
	_, ok := s.lookup(name)
	return ok
}

// --- value emitters -------------------------------------------------------
//
// These are the shared primitives every prober uses to publish tags
// (spec.md §4.2). They are methods on *Session because the tag store and
// the probe-request mask both live on the session.

// setValue truncates data to MaxValueBytes and stores it verbatim under
// name. Returns ErrTagStoreFull if the store is at capacity.
func (s *Session) setValue(name string, data []byte) error {
	if len(data) > MaxValueBytes {
		data = data[:MaxValueBytes]
	}
	e, ok := s.tags.assign(name)
	if !ok {
		return ErrTagStoreFull
	}
	e.Value = append([]byte(nil), data...)
	return nil
}

// setVersion emits VERSION, gated by ReqVersion.
func (s *Session) setVersion(version string) error {
	if s.request&ReqVersion == 0 {
		return nil
	}
	return s.setValue(TagVersion, []byte(version))
}

// setLabel emits LABEL_RAW (verbatim) and LABEL (trailing whitespace
// stripped, NUL-terminated-equivalent by virtue of explicit length),
// each gated by its own request flag.
func (s *Session) setLabel(raw []byte) error {
	if len(raw) > MaxValueBytes {
		raw = raw[:MaxValueBytes]
	}
	if s.request&ReqLabelRaw != 0 {
		if err := s.setValue(TagLabelRaw, raw); err != nil {
			return err
		}
	}
	if s.request&ReqLabel == 0 {
		return nil
	}
	stripped := stripTrailingASCIISpace(raw)
	return s.setValue(TagLabel, stripped)
}

func stripTrailingASCIISpace(b []byte) []byte {
	end := len(b)
	for i, c := range b {
		if c == 0 {
			end = i
			break
		}
	}
	trimmed := b[:end]
	i := len(trimmed)
	for i > 0 && isASCIISpace(trimmed[i-1]) {
		i--
	}
	return trimmed[:i]
}

func isASCIISpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	default:
		return false
	}
}

// setUTF8Label transcodes a UTF-16LE/BE label to UTF-8 for LABEL while
// LABEL_RAW (if requested) keeps the original bytes untouched. Only the
// Basic Multilingual Plane is handled: encoding stops at the first U+0000
// code unit, and an unpaired surrogate is emitted as the raw three-byte
// UTF-8 encoding of its 16-bit value rather than reassembled or replaced —
// this matches the reference encode_to_utf8, not a general-purpose UTF-16
// decoder (see DESIGN.md for why a library decoder would be wrong here).
func (s *Session) setUTF8Label(raw []byte, enc Encoding) error {
	if s.request&ReqLabelRaw != 0 {
		if err := s.setValue(TagLabelRaw, raw); err != nil {
			return err
		}
	}
	if s.request&ReqLabel == 0 {
		return nil
	}
	return s.setValue(TagLabel, encodeUTF16ToUTF8(raw, enc))
}

func encodeUTF16ToUTF8(src []byte, enc Encoding) []byte {
	dest := make([]byte, 0, len(src))
	for i := 0; i+2 <= len(src); i += 2 {
		var c uint16
		if enc == EncUTF16LE {
			c = uint16(src[i]) | uint16(src[i+1])<<8
		} else {
			c = uint16(src[i])<<8 | uint16(src[i+1])
		}
		if c == 0 {
			break
		}
		switch {
		case c < 0x80:
			dest = append(dest, byte(c))
		case c < 0x800:
			dest = append(dest,
				byte(0xc0|(c>>6)),
				byte(0x80|(c&0x3f)),
			)
		default:
			dest = append(dest,
				byte(0xe0|(c>>12)),
				byte(0x80|((c>>6)&0x3f)),
				byte(0x80|(c&0x3f)),
			)
		}
		if len(dest) >= MaxValueBytes {
			dest = dest[:MaxValueBytes]
			break
		}
	}
	return dest
}

// isUUIDEmpty reports whether every byte of a raw UUID field is zero
// (spec.md §4.2's "uuid_is_empty").
func isUUIDEmpty(raw []byte) bool {
	for _, b := range raw {
		if b != 0 {
			return false
		}
	}
	return true
}

// setUUID emits UUID_RAW (if requested) and UUID (canonical lowercase
// 8-4-4-4-12 hex), skipping both entirely when raw is an all-zero 16-byte
// field. This is the default-name variant; use setUUIDNamed for a custom
// tag name (which never emits UUID_RAW, matching blkid_probe_set_uuid_as).
func (s *Session) setUUID(raw []byte) error {
	return s.setUUIDNamed(raw, TagUUID)
}

// setUUIDNamed emits a canonical UUID string under name. When name is the
// default TagUUID, UUID_RAW is also emitted if requested.
func (s *Session) setUUIDNamed(raw []byte, name string) error {
	if len(raw) != 16 || isUUIDEmpty(raw) {
		return nil
	}
	if name == TagUUID && s.request&ReqUUIDRaw != 0 {
		if err := s.setValue(TagUUIDRaw, raw); err != nil {
			return err
		}
	}
	if s.request&ReqUUID == 0 {
		return nil
	}
	var id uuid.UUID
	copy(id[:], raw)
	return s.setValue(name, []byte(id.String()))
}

// setUUIDString is the non-variadic replacement for blkid_probe_sprintf_uuid
// when a prober has already formatted its UUID as a string (e.g. an
// embedded ASCII UUID field, as LUKS carries). Skips empty input, is
// gated by ReqUUID, and lowercases A-F in place, per spec.md §4.2 / §9.
func (s *Session) setUUIDString(name, str string) error {
	str = strings.TrimRight(str, "\x00")
	if str == "" || s.request&ReqUUID == 0 {
		return nil
	}
	lowerHex := strings.Map(func(r rune) rune {
		if r >= 'A' && r <= 'F' {
			return r + ('a' - 'A')
		}
		return r
	}, str)
	return s.setValue(name, []byte(lowerHex))
}

// setUUIDBytes is the non-variadic replacement for
// blkid_probe_sprintf_uuid's byte-formatting branch: it hex-encodes an
// arbitrary-length raw UUID (a RAID GUID, a FAT or NTFS serial) as one
// run of lowercase hex digits with no dashes. Skips all-zero input.
func (s *Session) setUUIDBytes(name string, raw []byte) error {
	if isUUIDEmpty(raw) || s.request&ReqUUID == 0 {
		return nil
	}
	return s.setValue(name, []byte(strings.ToLower(fmt.Sprintf("%x", raw))))
}
