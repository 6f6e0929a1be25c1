package tiff

import (
	"encoding/binary"
	"io"
	"os"

	"github.com/tifftools-go/tifftools/ndpi"
	"github.com/tifftools-go/tifftools/tagset"
	"github.com/tifftools-go/tifftools/tifftype"
)

// Reader materializes a tiff.Info model from a random-access byte
// source. It never buffers the whole file: header and directory blocks
// are read with bounded ReadAt calls, and out-of-line payloads within one
// IFD are coalesced into grouped reads before being sliced apart.
type Reader struct {
	r    io.ReaderAt
	size int64
}

// NewReader wraps r (an *os.File, a mapped region from mmap-go, or a
// bytes.Reader in tests) together with its total size, used for bounds
// checking and the NDPI applicability heuristic.
func NewReader(r io.ReaderAt, size int64) *Reader {
	return &Reader{r: r, size: size}
}

func (r *Reader) readAt(offset uint64, length int) ([]byte, error) {
	if length == 0 {
		return nil, nil
	}
	if offset > uint64(r.size) || offset+uint64(length) > uint64(r.size) {
		return nil, errInvalidOffset("read", offset)
	}
	buf := make([]byte, length)
	n, err := r.r.ReadAt(buf, int64(offset))
	if err != nil && !(err == io.EOF && n == length) {
		return nil, errTruncated("read", offset)
	}
	return buf, nil
}

// ReadFile opens and parses path. The returned model's fields keep the
// open file as their payload source so a later Writer can stream image
// data out of it; close the returned closer only once the model (and any
// output written from it) is no longer needed.
func ReadFile(path string) (*Info, io.Closer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	info, err := NewReader(f, fi.Size()).Read()
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	return info, f, nil
}

// Read parses the header and the entire reachable IFD tree, returning
// the populated model.
func (r *Reader) Read() (*Info, error) {
	head, err := r.readAt(0, 8)
	if err != nil {
		return nil, err
	}
	var order binary.ByteOrder
	switch {
	case head[0] == 'I' && head[1] == 'I':
		order = binary.LittleEndian
	case head[0] == 'M' && head[1] == 'M':
		order = binary.BigEndian
	default:
		return nil, errBadMagic(0)
	}

	version := order.Uint16(head[2:4])
	info := &Info{Order: order, Version: version}

	var firstIFD uint64
	switch version {
	case 42:
		info.BigTIFF = false
		info.OffsetSize = 4
		firstIFD = uint64(order.Uint32(head[4:8]))
	case 43:
		rest, err := r.readAt(8, 8)
		if err != nil {
			return nil, err
		}
		offsetSize := order.Uint16(head[4:6])
		if offsetSize != 8 {
			return nil, &FormatError{Op: "read header", Message: "BigTIFF offset size must be 8"}
		}
		info.BigTIFF = true
		info.OffsetSize = 8
		firstIFD = order.Uint64(rest)
	default:
		return nil, errUnknownVersion(version, 0)
	}

	if firstIFD == 0 {
		return info, nil
	}

	visited := map[uint64]bool{}
	root, err := r.readChain(firstIFD, info, tagset.TIFF, visited, 0)
	if err != nil {
		return nil, err
	}
	// The top-level chain is flattened into info.IFDs so commands can
	// reorder, drop, and append whole directories by slice manipulation;
	// the writer re-links successors from slice order. Next stays in use
	// only inside SubIFD chains, where the chain is part of the payload.
	for n := root; n != nil; {
		next := n.Next
		n.Next = nil
		info.IFDs = append(info.IFDs, n)
		n = next
	}

	r.applyNDPIFixups(info)

	return info, nil
}

// readChain reads one IFD and, if its successor offset is nonzero,
// recursively reads the rest of the top-level (or sibling) chain.
func (r *Reader) readChain(offset uint64, info *Info, space tagset.Space, visited map[uint64]bool, depth int) (*IFDNode, error) {
	if depth > MaxNestingDepth {
		return nil, errDepthExceeded("read IFD")
	}
	node, next, err := r.readOneIFD(offset, info, space, visited, depth)
	if err != nil {
		return nil, err
	}
	if next != 0 {
		sibling, err := r.readChain(next, info, space, visited, depth)
		if err != nil {
			return nil, err
		}
		node.Next = sibling
	}
	return node, nil
}

type pendingRead struct {
	fieldIndex int
	offset     uint64
	length     int
}

// readOneIFD reads a single directory block (not its chain) and returns
// the node plus the raw next-IFD offset (0 meaning none).
func (r *Reader) readOneIFD(offset uint64, info *Info, space tagset.Space, visited map[uint64]bool, depth int) (*IFDNode, uint64, error) {
	if visited[offset] {
		return nil, 0, errCircularReference(offset)
	}
	visited[offset] = true

	order := info.Order
	countWidth := 2
	entryWidth := 12
	fieldWidth := 4
	if info.BigTIFF {
		countWidth = 8
		entryWidth = 20
		fieldWidth = 8
	}

	countBytes, err := r.readAt(offset, countWidth)
	if err != nil {
		return nil, 0, err
	}
	var count uint64
	if info.BigTIFF {
		count = order.Uint64(countBytes)
	} else {
		count = uint64(order.Uint16(countBytes))
	}

	// an entry table can never be larger than the file that holds it;
	// rejecting here keeps a corrupt 8-byte count from turning into a
	// giant allocation.
	if count > uint64(r.size)/uint64(entryWidth) {
		return nil, 0, errTruncated("parse IFD", offset)
	}

	tableOffset := offset + uint64(countWidth)
	table, err := r.readAt(tableOffset, int(count)*entryWidth)
	if err != nil {
		return nil, 0, err
	}

	node := &IFDNode{Order: order, BigTIFF: info.BigTIFF, Space: space, SourceOffset: offset}
	node.Fields = make([]Field, 0, count)

	var pending []pendingRead
	type rawEntry struct {
		tag      tifftype.Tag
		datatype tifftype.Datatype
		count    uint64
		fieldRaw []byte
	}
	entries := make([]rawEntry, 0, count)

	for i := uint64(0); i < count; i++ {
		e := table[i*uint64(entryWidth) : (i+1)*uint64(entryWidth)]
		tag := tifftype.Tag(order.Uint16(e[0:2]))
		dt := tifftype.Datatype(order.Uint16(e[2:4]))
		var cnt uint64
		var fieldRaw []byte
		if info.BigTIFF {
			cnt = order.Uint64(e[4:12])
			fieldRaw = e[12:20]
		} else {
			cnt = uint64(order.Uint32(e[4:8]))
			fieldRaw = e[8:12]
		}

		if !dt.Known() {
			if desc := tagset.Describe(space, tag); desc != nil {
				return nil, 0, errUnknownDatatype("parse IFD", tag, dt, offset)
			}
			info.AddWarning("unknown tag with unknown datatype dropped", tag)
			continue
		}

		entries = append(entries, rawEntry{tag: tag, datatype: dt, count: cnt, fieldRaw: fieldRaw})
	}

	for i := range entries {
		ent := &entries[i]
		byteLen := ent.count * uint64(ent.datatype.Size())
		if byteLen > uint64(r.size) {
			return nil, 0, errInvalidOffset("parse IFD", offset)
		}
		f := Field{Tag: ent.tag, Datatype: ent.datatype, Count: ent.count, Source: r.r}
		if byteLen <= uint64(fieldWidth) {
			f.Data = append([]byte(nil), ent.fieldRaw[:byteLen]...)
		} else {
			var valOffset uint64
			if info.BigTIFF {
				valOffset = order.Uint64(ent.fieldRaw)
			} else {
				valOffset = uint64(order.Uint32(ent.fieldRaw))
			}
			pending = append(pending, pendingRead{fieldIndex: len(node.Fields), offset: valOffset, length: int(byteLen)})
		}
		node.Fields = append(node.Fields, f)
	}

	if err := r.fillGroupedReads(node, pending); err != nil {
		return nil, 0, err
	}

	for i := range node.Fields {
		f := &node.Fields[i]
		if f.Datatype == tifftype.ASCII {
			if _, fallback := tagset.DecodeASCIIDisplay(f.Data); fallback {
				info.AddWarning("ASCII payload is not valid UTF-8; display uses fallback decoding", f.Tag)
			}
		}
		if tagset.IsIFDTag(space, f.Tag, f.Datatype) {
			childSpace := tagset.ChildSpaceFor(space, f.Tag)
			if childSpace == tagset.Unknown {
				childSpace = space
			}
			offsets := decodeUints(f.Data, f.Datatype, order)
			f.SubIFDs = make([]*IFDNode, 0, len(offsets))
			for _, childOffset := range offsets {
				child, err := r.readChain(childOffset, info, childSpace, visited, depth+1)
				if err != nil {
					return nil, 0, err
				}
				f.SubIFDs = append(f.SubIFDs, child)
			}
		} else if _, isPair := tagset.ByteCountsTag(space, f.Tag); isPair {
			f.ResolvedOffsets = decodeUints(f.Data, f.Datatype, order)
		}
	}

	node.Sort()

	next, err := r.readAt(tableOffset+count*uint64(entryWidth), fieldWidth)
	if err != nil {
		return nil, 0, err
	}
	var nextOffset uint64
	if info.BigTIFF {
		nextOffset = order.Uint64(next)
	} else {
		nextOffset = uint64(order.Uint32(next))
	}

	return node, nextOffset, nil
}

// fillGroupedReads coalesces adjacent or overlapping out-of-line payload
// ranges into as few ReadAt calls as possible, then
// slices each field's Data out of the merged buffers.
func (r *Reader) fillGroupedReads(node *IFDNode, pending []pendingRead) error {
	if len(pending) == 0 {
		return nil
	}
	order := append([]pendingRead(nil), pending...)
	// simple insertion sort by offset: counts per IFD are small.
	for i := 1; i < len(order); i++ {
		for j := i; j > 0 && order[j-1].offset > order[j].offset; j-- {
			order[j-1], order[j] = order[j], order[j-1]
		}
	}

	i := 0
	for i < len(order) {
		groupStart := order[i].offset
		groupEnd := order[i].offset + uint64(order[i].length)
		j := i + 1
		for j < len(order) && order[j].offset <= groupEnd {
			end := order[j].offset + uint64(order[j].length)
			if end > groupEnd {
				groupEnd = end
			}
			j++
		}
		buf, err := r.readAt(groupStart, int(groupEnd-groupStart))
		if err != nil {
			return err
		}
		for k := i; k < j; k++ {
			start := order[k].offset - groupStart
			node.Fields[order[k].fieldIndex].Data = append([]byte(nil), buf[start:start+uint64(order[k].length)]...)
		}
		i = j
	}
	return nil
}

// applyNDPIFixups walks the finished model and, when the file as a whole
// qualifies (classic header, size over 4 GiB), corrects any offset-tag
// values that look like they overflowed 32 bits relative to their owning
// IFD's own offset.
func (r *Reader) applyNDPIFixups(info *Info) {
	if !ndpi.Applicable(info.BigTIFF, uint64(r.size)) {
		return
	}
	_ = info.Walk(func(node *IFDNode, depth int) error {
		for i := range node.Fields {
			f := &node.Fields[i]
			if f.ResolvedOffsets == nil {
				continue
			}
			overflowed := false
			for _, v := range f.ResolvedOffsets {
				if ndpi.LooksOverflowed(uint32(v)) {
					overflowed = true
					break
				}
			}
			if !overflowed {
				continue
			}
			f.ResolvedOffsets = ndpi.FixOffsets(f.ResolvedOffsets, node.SourceOffset)
			info.AddWarning("NDPI 32-bit offset overflow corrected", f.Tag)
		}
		return nil
	})
}
