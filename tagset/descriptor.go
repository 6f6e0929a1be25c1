package tagset

import "github.com/tifftools-go/tifftools/tifftype"

// BitfieldEntry names one bit (or multi-bit group) of a bitmask-valued tag,
// e.g. NewSubfileType's bit 0 ("ReducedResolution"), bit 1 ("Page"), bit 2
// ("TransparencyMask").
type BitfieldEntry struct {
	Mask uint32
	Name string
}

// Descriptor carries everything the registry knows about one tag within
// one Space: its preferred name, the datatype(s) a writer should default
// to, decoding vocabulary, and structural markers the reader and writer
// both consult (IsIFD, ByteCounts).
type Descriptor struct {
	Tag      tifftype.Tag
	Name     string
	AltNames []string

	// Datatypes lists the datatype(s) this tag is normally encoded with,
	// in preference order. A reader never rejects a tag for using a
	// datatype outside this list; it is only a default for `set`.
	Datatypes []tifftype.Datatype

	// Enum maps an integral value to its symbolic name, e.g.
	// Compression: 7 -> "JPEG".
	Enum map[int64]string

	// Bitfield, if non-nil, decomposes an integral value into named bits
	// instead of (or in addition to) Enum.
	Bitfield []BitfieldEntry

	// IsIFD marks a tag whose payload is a list of offsets to child IFDs
	// (SubIFDs, ExifIFD, GPSIFD, InteropIFD, and any tag using datatype
	// IFD/IFD8).
	IsIFD bool

	// ChildSpace is the tag Space used to parse/emit the children pointed
	// to by an IsIFD tag.
	ChildSpace Space

	// ByteCounts names the paired bytecount tag for an offset tag (e.g.
	// StripOffsets -> "StripByteCounts"). Empty if this tag has no pair.
	ByteCounts string

	// Lossy marks a tag whose value cannot be losslessly reconstructed
	// from a re-encode (reserved for pretty-printing hints; the core
	// never drops a lossy tag's raw payload).
	Lossy bool
}

func (d *Descriptor) isOffsetTag() bool {
	return d.ByteCounts != ""
}

// Set is a closed collection of tag Descriptors sharing one Space, plus a
// case-insensitive name index (including altnames) for symbolic lookup.
type Set struct {
	space       Space
	byTag       map[tifftype.Tag]*Descriptor
	byLowerName map[string]*Descriptor
}

func newSet(space Space, descriptors []*Descriptor) *Set {
	s := &Set{
		space:       space,
		byTag:       make(map[tifftype.Tag]*Descriptor, len(descriptors)),
		byLowerName: make(map[string]*Descriptor, len(descriptors)*2),
	}
	for _, d := range descriptors {
		s.byTag[d.Tag] = d
		s.byLowerName[lower(d.Name)] = d
		for _, alt := range d.AltNames {
			s.byLowerName[lower(alt)] = d
		}
	}
	return s
}

// ByTag returns the descriptor for tag within this set, or nil if tag is
// not registered in this space (unknown tags are not an error; the caller
// preserves them with only the wire-level datatype and raw payload).
func (s *Set) ByTag(tag tifftype.Tag) *Descriptor {
	return s.byTag[tag]
}

// ByName resolves a case-insensitive symbolic name (or altname) within
// this set only. It does not fall back to other spaces.
func (s *Set) ByName(name string) *Descriptor {
	return s.byLowerName[lower(name)]
}

func lower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}
