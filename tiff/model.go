// Package tiff is the core TIFF/BigTIFF object model: the datatype-aware
// Field and IFD types, the Reader that materializes them from a byte
// stream, and the two-pass Writer that re-emits a model as a compact,
// self-consistent file. It never interprets pixel payload bytes; it only
// moves them.
package tiff

import (
	"encoding/binary"
	"io"

	"github.com/tifftools-go/tifftools/tagset"
	"github.com/tifftools-go/tifftools/tifftype"
)

// Field is one tag entry: either a leaf value (Data holding Count
// datatype-sized elements, byte order implied by the owning IFDNode) or,
// for a nested-IFD-bearing tag, a list of child IFD trees in SubIFDs.
// For a nested tag the writer computes the entry's offset words from the
// offsets it assigns to SubIFDs and never consults Data (which, after a
// read, still holds the as-read offset words), so SubIFDs remains the
// source of truth for nested tags across edits.
type Field struct {
	Tag      tifftype.Tag
	Datatype tifftype.Datatype
	Count    uint64
	Data     []byte

	SubIFDs []*IFDNode

	// ResolvedOffsets holds the decoded, NDPI-corrected absolute file
	// offsets for a registered offset tag (StripOffsets, TileOffsets,
	// FreeOffsets, JPEGInterchangeFormat). It is populated by the reader
	// alongside Data and consulted by the writer/command operations when
	// they need to fetch the referenced byte ranges from the source
	// file; Data keeps the as-read wire bytes for tags that are not
	// offset tags and is otherwise unconsulted once ResolvedOffsets is
	// set, since an offset tag's values are always recomputed on write.
	ResolvedOffsets []uint64

	// Source is the file this field's payload was read from, retained so
	// a later Writer can stream the bytes an offset/bytecount pair
	// describes without the reader having had to buffer them up front.
	// Ordinary (non-offset) fields carry it too, for uniformity, but
	// only offset fields ever consult it.
	Source io.ReaderAt
}

// IsNested reports whether this field holds child IFDs rather than a leaf
// payload.
func (f *Field) IsNested() bool {
	return f.SubIFDs != nil
}

// ByteLen returns the canonical payload length in bytes: Count times the
// datatype's element size. It is independent of whether Data currently
// holds that many bytes (a freshly constructed nested field may have nil
// Data, and the writer does not fill it in).
func (f *Field) ByteLen() uint64 {
	return f.Count * uint64(f.Datatype.Size())
}

// IFD is one Image File Directory: an ordered list of fields. Entries
// must stay sorted by ascending Tag, per the TIFF 6.0 requirement that a
// conforming reader may rely on; Sort enforces this after mutation.
type IFD struct {
	Fields []Field
}

// Sort restores the ascending-tag-ID ordering the TIFF format requires.
func (ifd *IFD) Sort() {
	// insertion sort: IFDs are small (tens of entries), and this keeps
	// the dependency list free of a generic sort import for one call site.
	for i := 1; i < len(ifd.Fields); i++ {
		for j := i; j > 0 && ifd.Fields[j-1].Tag > ifd.Fields[j].Tag; j-- {
			ifd.Fields[j-1], ifd.Fields[j] = ifd.Fields[j], ifd.Fields[j-1]
		}
	}
}

// Find returns the field with the given tag, or nil if absent.
func (ifd *IFD) Find(tag tifftype.Tag) *Field {
	for i := range ifd.Fields {
		if ifd.Fields[i].Tag == tag {
			return &ifd.Fields[i]
		}
	}
	return nil
}

// Set inserts or replaces the field with the given tag, keeping Fields
// sorted.
func (ifd *IFD) Set(f Field) {
	for i := range ifd.Fields {
		if ifd.Fields[i].Tag == f.Tag {
			ifd.Fields[i] = f
			return
		}
	}
	ifd.Fields = append(ifd.Fields, f)
	ifd.Sort()
}

// Unset removes the field with the given tag, if present. It reports
// whether a field was actually removed.
func (ifd *IFD) Unset(tag tifftype.Tag) bool {
	for i := range ifd.Fields {
		if ifd.Fields[i].Tag == tag {
			ifd.Fields = append(ifd.Fields[:i], ifd.Fields[i+1:]...)
			return true
		}
	}
	return false
}

// IFDNode is one node of the IFD tree: an IFD together with the
// endianness, BigTIFF-ness, and tag-set space it must be interpreted
// under, plus its source offset (informational, never consulted by the
// writer). Next links the nodes of a SubIFD chain; top-level IFDs have
// Next == nil and are ordered by Info.IFDs instead, so commands can
// splice whole directories without walking pointer chains.
type IFDNode struct {
	IFD
	Order   binary.ByteOrder
	BigTIFF bool
	Space   tagset.Space

	// SourceOffset is where this IFD was read from, kept only for
	// diagnostics; the writer assigns fresh offsets unconditionally.
	SourceOffset uint64

	Next *IFDNode
}

// Warning is a non-fatal condition recorded during read or write: an
// unknown tag with unknown datatype dropped, ASCII that needed fallback
// decoding, or an unrecognized GeoKey ID. Warnings never halt an
// operation.
type Warning struct {
	Message string
	Tag     tifftype.Tag
	IFDPath string
}

// Info is the root of a parsed TIFF file: its endianness, classic/BigTIFF
// selection, declared version and offset size, the top-level IFD chain,
// and any warnings accumulated while reading it.
type Info struct {
	Order      binary.ByteOrder
	BigTIFF    bool
	Version    uint16
	OffsetSize uint8

	IFDs []*IFDNode

	Warnings []Warning
}

// AddWarning appends a warning to the model; callers pass tag 0 when the
// warning is not tag-specific.
func (info *Info) AddWarning(message string, tag tifftype.Tag) {
	info.Warnings = append(info.Warnings, Warning{Message: message, Tag: tag})
}

// Walk visits every IFDNode reachable from the top-level chain, depth
// first, including SubIFD children, calling visit for each. It stops and
// returns the first error visit returns.
func (info *Info) Walk(visit func(node *IFDNode, depth int) error) error {
	var walkChain func(node *IFDNode, depth int) error
	walkChain = func(node *IFDNode, depth int) error {
		for n := node; n != nil; n = n.Next {
			if err := visit(n, depth); err != nil {
				return err
			}
			for i := range n.Fields {
				for _, child := range n.Fields[i].SubIFDs {
					if err := walkChain(child, depth+1); err != nil {
						return err
					}
				}
			}
		}
		return nil
	}
	for _, root := range info.IFDs {
		if err := walkChain(root, 0); err != nil {
			return err
		}
	}
	return nil
}

// MaxNestingDepth is the recommended ceiling on SubIFD recursion; both
// reader and writer enforce it independently against adversarial or
// accidental cyclic-looking structures.
const MaxNestingDepth = 16
