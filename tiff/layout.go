package tiff

import (
	"crypto/sha1"
	"encoding/binary"
	"io"

	"github.com/tifftools-go/tifftools/tagset"
	"github.com/tifftools-go/tifftools/tifftype"
)

// BigTIFFMode controls how the writer chooses between classic and
// BigTIFF output layout.
type BigTIFFMode uint8

const (
	// BigTIFFAuto upgrades to BigTIFF only when classic capacity would
	// be exceeded, a BigTIFF-only datatype is present, or the source
	// was already BigTIFF.
	BigTIFFAuto BigTIFFMode = iota
	// BigTIFFForce always emits BigTIFF layout.
	BigTIFFForce
	// BigTIFFForbid emits classic layout or fails with
	// BigTiffRequiredError if that is not possible.
	BigTIFFForbid
)

// Options configures a single Write call.
type Options struct {
	BigTIFF BigTIFFMode

	// IFDsFirst places every directory block before any payload or
	// image-data region, for readers that prefer dense header regions.
	IFDsFirst bool

	// Dedup elides re-copying an image-data region whose source bytes
	// were already written earlier in this same output. It costs one
	// extra read per offset/bytecount element to compute its content
	// hash during planning.
	Dedup bool
}

// classicSafetyMargin is subtracted from 2^32 when deciding whether a
// projected classic-layout file fits: large enough that alignment
// padding and the final next-IFD word never tip a borderline file over
// the edge after the safety check has already passed.
const classicSafetyMargin = 1 << 20

const classicMaxEntries = 0xFFFF

// copyChunkSize bounds how much of an image-data region is resident at
// once: blobs are hashed and copied through a buffer of this size, never
// loaded whole.
const copyChunkSize = 1 << 20

func align(offset uint64) uint64 {
	if offset%2 != 0 {
		return offset + 1
	}
	return offset
}

// plan is the complete pass-1 output: every offset pass 2 needs, indexed
// by the pointer identity of the IFDNode/Field it was computed for. It
// never holds payload bytes itself; image data is re-read from its source
// in bounded chunks during emission.
type plan struct {
	order      binary.ByteOrder
	bigTIFF    bool
	offsetSize uint64
	ifdsFirst  bool
	dedup      bool

	headerSize uint64
	dirCursor  uint64
	dataCursor uint64

	ifdOffset    map[*IFDNode]uint64
	fieldPayload map[*Field]uint64
	blobOffset   map[*Field][]uint64
	blobLengths  map[*Field][]uint64

	dedupHashes map[[sha1.Size]byte]uint64
	blobSkip    map[*Field][]bool

	totalSize uint64
}

func newPlan(order binary.ByteOrder, bigTIFF bool, opts Options) *plan {
	headerSize := uint64(8)
	offsetSize := uint64(4)
	if bigTIFF {
		headerSize = 16
		offsetSize = 8
	}
	return &plan{
		order:        order,
		bigTIFF:      bigTIFF,
		offsetSize:   offsetSize,
		ifdsFirst:    opts.IFDsFirst,
		dedup:        opts.Dedup,
		headerSize:   headerSize,
		dirCursor:    headerSize,
		dataCursor:   headerSize,
		ifdOffset:    map[*IFDNode]uint64{},
		fieldPayload: map[*Field]uint64{},
		blobOffset:   map[*Field][]uint64{},
		blobLengths:  map[*Field][]uint64{},
		dedupHashes:  map[[sha1.Size]byte]uint64{},
		blobSkip:     map[*Field][]bool{},
	}
}

func (p *plan) reserveDir(size uint64) uint64 {
	off := align(p.dirCursor)
	p.dirCursor = off + size
	if !p.ifdsFirst {
		p.dataCursor = p.dirCursor
	}
	return off
}

func (p *plan) reserveData(size uint64) uint64 {
	off := align(p.dataCursor)
	p.dataCursor = off + size
	if !p.ifdsFirst {
		p.dirCursor = p.dataCursor
	}
	return off
}

func (p *plan) entryWidth() uint64 {
	if p.bigTIFF {
		return 20
	}
	return 12
}

func (p *plan) countWidth() uint64 {
	if p.bigTIFF {
		return 8
	}
	return 2
}

func (p *plan) dirSize(n *IFDNode) uint64 {
	return p.countWidth() + uint64(len(n.Fields))*p.entryWidth() + p.offsetSize
}

// finalDatatype returns the datatype a field will actually be emitted
// with: offset-bearing fields (nested-IFD pointers and offset/bytecount
// pairs) are widened to their BigTIFF-only counterpart when the output
// is BigTIFF, since their values may now exceed 32 bits; every other
// field is preserved exactly as read, byte for byte.
func (p *plan) finalDatatype(space tagset.Space, f *Field) tifftype.Datatype {
	if f.IsNested() {
		if p.bigTIFF {
			return tifftype.IFD8
		}
		return tifftype.LONG
	}
	if f.ResolvedOffsets != nil {
		if p.bigTIFF {
			return tifftype.LONG8
		}
		return tifftype.LONG
	}
	return f.Datatype
}

// planChain lays out a sibling chain (a top-level chain, or the list of
// children under one nested-IFD field) in file order: each node's own
// directory and payload regions are placed before the chain continues to
// its successor, matching the writer's default emission order.
func planChain(p *plan, node *IFDNode, depth int) error {
	if depth > MaxNestingDepth {
		return errDepthExceeded("plan layout")
	}
	for n := node; n != nil; n = n.Next {
		if err := planOneIFD(p, n, depth); err != nil {
			return err
		}
	}
	return nil
}

func planOneIFD(p *plan, n *IFDNode, depth int) error {
	if len(n.Fields) > classicMaxEntries && !p.bigTIFF {
		return &BigTiffRequiredError{Reason: "IFD entry count exceeds classic limit"}
	}
	p.ifdOffset[n] = p.reserveDir(p.dirSize(n))

	for i := range n.Fields {
		f := &n.Fields[i]
		if !f.IsNested() && !f.Datatype.Known() {
			return &tifftype.UnknownDatatypeError{Code: f.Datatype}
		}
		dt := p.finalDatatype(n.Space, f)
		var count uint64
		switch {
		case f.IsNested():
			count = uint64(len(f.SubIFDs))
		default:
			count = f.Count
		}
		byteLen := count * uint64(dt.Size())
		if byteLen > p.offsetSize {
			p.fieldPayload[f] = p.reserveData(align(byteLen))
		}
		if f.ResolvedOffsets != nil {
			if err := planOffsetField(p, n, f); err != nil {
				return err
			}
		}
	}

	for i := range n.Fields {
		f := &n.Fields[i]
		for _, child := range f.SubIFDs {
			if err := planChain(p, child, depth+1); err != nil {
				return err
			}
		}
	}
	return nil
}

// planOffsetField reserves the copied-blob regions for one
// offset/bytecount tag (StripOffsets, TileOffsets, FreeOffsets,
// JPEGInterchangeFormat), consulting its paired bytecount field in the
// same IFD for element lengths.
func planOffsetField(p *plan, n *IFDNode, f *Field) error {
	pairTag, ok := tagset.ByteCountsTag(n.Space, f.Tag)
	if !ok {
		return errMissingByteCountPair("plan layout", f.Tag)
	}
	pairField := n.Find(pairTag)
	if pairField == nil {
		return errMissingByteCountPair("plan layout", f.Tag)
	}
	lengths := decodeUints(pairField.Data, pairField.Datatype, n.Order)
	if len(lengths) != len(f.ResolvedOffsets) {
		return errMissingByteCountPair("plan layout", f.Tag)
	}

	offsets := make([]uint64, len(f.ResolvedOffsets))
	var skip []bool
	if p.dedup {
		skip = make([]bool, len(f.ResolvedOffsets))
	}
	for i, length := range lengths {
		if length == 0 {
			offsets[i] = 0
			continue
		}
		if p.dedup {
			hash, err := hashRegion(f.Source, f.ResolvedOffsets[i], length)
			if err != nil {
				return errTruncated("plan layout (dedup read)", f.ResolvedOffsets[i])
			}
			if existing, seen := p.dedupHashes[hash]; seen {
				offsets[i] = existing
				skip[i] = true
				continue
			}
			offsets[i] = p.reserveData(align(length))
			p.dedupHashes[hash] = offsets[i]
		} else {
			offsets[i] = p.reserveData(align(length))
		}
	}
	p.blobOffset[f] = offsets
	p.blobLengths[f] = lengths
	if p.dedup {
		p.blobSkip[f] = skip
	}
	return nil
}

// hashRegion computes the content hash of a source byte range through a
// bounded buffer, so a multi-gigabyte strip costs one chunk of residency,
// not its full length.
func hashRegion(src io.ReaderAt, offset, length uint64) ([sha1.Size]byte, error) {
	var sum [sha1.Size]byte
	h := sha1.New()
	buf := make([]byte, copyChunkSize)
	for length > 0 {
		n := uint64(len(buf))
		if length < n {
			n = length
		}
		chunk := buf[:n]
		if _, err := src.ReadAt(chunk, int64(offset)); err != nil {
			return sum, err
		}
		h.Write(chunk)
		offset += n
		length -= n
	}
	copy(sum[:], h.Sum(nil))
	return sum, nil
}

func buildPlan(info *Info, bigTIFF bool, opts Options) (*plan, error) {
	p := newPlan(info.Order, bigTIFF, opts)
	if p.ifdsFirst {
		// With split cursors the data area must begin after the last
		// directory block, so pre-walk the tree summing directory sizes
		// in the same order the planner will reserve them.
		cursor := p.headerSize
		_ = info.Walk(func(n *IFDNode, depth int) error {
			cursor = align(cursor) + p.dirSize(n)
			return nil
		})
		p.dataCursor = cursor
	}
	for _, root := range info.IFDs {
		if err := planChain(p, root, 0); err != nil {
			return nil, err
		}
	}
	p.totalSize = p.dirCursor
	if p.dataCursor > p.totalSize {
		p.totalSize = p.dataCursor
	}
	return p, nil
}

func hasBigTIFFOnlyDatatype(info *Info) bool {
	found := false
	_ = info.Walk(func(node *IFDNode, depth int) error {
		for i := range node.Fields {
			if node.Fields[i].Datatype.IsBigTIFFOnly() {
				found = true
			}
		}
		return nil
	})
	return found
}

func anyIFDExceedsClassicEntryLimit(info *Info) bool {
	found := false
	_ = info.Walk(func(node *IFDNode, depth int) error {
		if len(node.Fields) > classicMaxEntries {
			found = true
		}
		return nil
	})
	return found
}

// decidePlan picks classic or BigTIFF layout and returns the finished
// plan for it: BigTIFF if the source already
// was, a BigTIFF-only datatype is present, any IFD is oversized for
// classic, or the projected classic size would exceed capacity.
func decidePlan(info *Info, opts Options) (*plan, error) {
	mustBig := info.BigTIFF || hasBigTIFFOnlyDatatype(info) || anyIFDExceedsClassicEntryLimit(info) || opts.BigTIFF == BigTIFFForce

	if mustBig {
		if opts.BigTIFF == BigTIFFForbid {
			return nil, &BigTiffRequiredError{Reason: "source requires BigTIFF-only features"}
		}
		return buildPlan(info, true, opts)
	}

	classicPlan, err := buildPlan(info, false, opts)
	if err != nil {
		return nil, err
	}
	if classicPlan.totalSize <= (uint64(1)<<32)-classicSafetyMargin {
		return classicPlan, nil
	}
	if opts.BigTIFF == BigTIFFForbid {
		return nil, &BigTiffRequiredError{Reason: "projected file size exceeds classic capacity"}
	}
	return buildPlan(info, true, opts)
}
