package tiff

import (
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/tifftools-go/tifftools/tifftype"
)

// Writer re-emits a model as a new, compact, fully self-consistent TIFF
// or BigTIFF stream. It never mutates the Info it is given.
type Writer struct {
	Options Options
}

// NewWriter returns a Writer configured with opts.
func NewWriter(opts Options) *Writer {
	return &Writer{Options: opts}
}

// WriteTo plans the output layout for info and emits it to dest, an
// io.WriterAt (a plain os.File, or anything else that supports
// random-access writes). Region order depends on Options.IFDsFirst;
// either way every byte is addressed by its final absolute offset. Writes
// do not arrive in increasing-offset order, even with the default layout:
// each directory block is written after the payload and image-data
// regions that follow it in the file.
func (w *Writer) WriteTo(info *Info, dest io.WriterAt) error {
	p, err := decidePlan(info, w.Options)
	if err != nil {
		return err
	}

	if err := writeHeader(dest, p, info); err != nil {
		return err
	}

	for i, root := range info.IFDs {
		var after uint64
		if i+1 < len(info.IFDs) {
			after = p.ifdOffset[info.IFDs[i+1]]
		}
		if err := emitChain(p, dest, root, after); err != nil {
			return err
		}
	}
	return nil
}

// WriteFile writes info to path using the write-to-temp-then-rename
// pattern: no partial output is ever left at path, even on failure or a
// process crash mid-write. The temp name is suffixed with a random UUID
// rather than a PID or counter, so concurrent writers targeting the same
// directory never collide.
func (w *Writer) WriteFile(info *Info, path string, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return &UserError{Message: "output already exists (use --overwrite to replace it)"}
		}
	}

	tmpPath := filepath.Join(filepath.Dir(path), "."+filepath.Base(path)+"."+uuid.NewString()+".tmp")
	f, err := os.OpenFile(tmpPath, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return err
	}
	if err := w.WriteTo(info, f); err != nil {
		f.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return err
	}
	return nil
}

func writeHeader(dest io.WriterAt, p *plan, info *Info) error {
	header := make([]byte, p.headerSize)
	if p.order == nil {
		return &FormatError{Op: "write header", Message: "byte order not set"}
	}
	if isLittleEndian(p.order) {
		header[0], header[1] = 'I', 'I'
	} else {
		header[0], header[1] = 'M', 'M'
	}
	if p.bigTIFF {
		p.order.PutUint16(header[2:4], 43)
		p.order.PutUint16(header[4:6], 8)
		p.order.PutUint16(header[6:8], 0)
		firstIFD := uint64(0)
		if len(info.IFDs) > 0 {
			firstIFD = p.ifdOffset[info.IFDs[0]]
		}
		p.order.PutUint64(header[8:16], firstIFD)
	} else {
		p.order.PutUint16(header[2:4], 42)
		firstIFD := uint64(0)
		if len(info.IFDs) > 0 {
			firstIFD = p.ifdOffset[info.IFDs[0]]
		}
		p.order.PutUint32(header[4:8], uint32(firstIFD))
	}
	_, err := dest.WriteAt(header, 0)
	return err
}

func isLittleEndian(order interface{ Uint16([]byte) uint16 }) bool {
	probe := []byte{1, 0}
	return order.Uint16(probe) == 1
}

// emitChain emits a Next-linked chain of IFDs; the last node's successor
// word is set to after (the next top-level directory's offset, or zero).
func emitChain(p *plan, dest io.WriterAt, node *IFDNode, after uint64) error {
	for n := node; n != nil; n = n.Next {
		next := after
		if n.Next != nil {
			next = p.ifdOffset[n.Next]
		}
		if err := emitOneIFD(p, dest, n, next); err != nil {
			return err
		}
	}
	return nil
}

func emitOneIFD(p *plan, dest io.WriterAt, n *IFDNode, nextOffset uint64) error {
	dirOffset := p.ifdOffset[n]
	countWidth := p.countWidth()
	entryWidth := p.entryWidth()

	block := make([]byte, p.dirSize(n))
	if p.bigTIFF {
		p.order.PutUint64(block[0:8], uint64(len(n.Fields)))
	} else {
		p.order.PutUint16(block[0:2], uint16(len(n.Fields)))
	}

	for i := range n.Fields {
		f := &n.Fields[i]
		e := block[countWidth+uint64(i)*entryWidth : countWidth+uint64(i+1)*entryWidth]
		dt := p.finalDatatype(n.Space, f)
		p.order.PutUint16(e[0:2], uint16(f.Tag))
		p.order.PutUint16(e[2:4], uint16(dt))

		var count uint64
		switch {
		case f.IsNested():
			count = uint64(len(f.SubIFDs))
		default:
			count = f.Count
		}

		valueField := e[4+p.offsetSize : 4+p.offsetSize+p.offsetSize]
		if p.bigTIFF {
			p.order.PutUint64(e[4:12], count)
		} else {
			p.order.PutUint32(e[4:8], uint32(count))
		}

		payload, err := fieldPayloadBytes(p, n, f, dt)
		if err != nil {
			return err
		}
		if off, outOfLine := p.fieldPayload[f]; outOfLine {
			if p.bigTIFF {
				p.order.PutUint64(valueField, off)
			} else {
				p.order.PutUint32(valueField, uint32(off))
			}
			if _, err := dest.WriteAt(payload, int64(off)); err != nil {
				return err
			}
		} else {
			copy(valueField, payload)
		}

		if f.ResolvedOffsets != nil {
			if err := emitBlobs(p, dest, f); err != nil {
				return err
			}
		}
	}

	nextField := block[countWidth+uint64(len(n.Fields))*entryWidth:]
	if p.bigTIFF {
		p.order.PutUint64(nextField, nextOffset)
	} else {
		p.order.PutUint32(nextField, uint32(nextOffset))
	}

	if _, err := dest.WriteAt(block, int64(dirOffset)); err != nil {
		return err
	}

	for i := range n.Fields {
		for _, child := range n.Fields[i].SubIFDs {
			if err := emitChain(p, dest, child, 0); err != nil {
				return err
			}
		}
	}
	return nil
}

// fieldPayloadBytes computes the bytes to place in the entry's
// value/offset field (if inline) or its payload region (if out-of-line):
// unchanged for an ordinary field, recomputed from freshly assigned
// offsets for a nested-IFD or offset/bytecount field.
func fieldPayloadBytes(p *plan, n *IFDNode, f *Field, dt tifftype.Datatype) ([]byte, error) {
	switch {
	case f.IsNested():
		offsets := make([]uint64, len(f.SubIFDs))
		for i, child := range f.SubIFDs {
			offsets[i] = p.ifdOffset[child]
		}
		return padInline(p, encodeUints(offsets, dt, p.order), f), nil
	case f.ResolvedOffsets != nil:
		offsets := p.blobOffset[f]
		return padInline(p, encodeUints(offsets, dt, p.order), f), nil
	default:
		return padInline(p, f.Data, f), nil
	}
}

// padInline zero-pads a value short enough to be written inline out to
// the field's offset-slot width; it is a no-op (returns data unchanged)
// for anything destined for an out-of-line payload region.
func padInline(p *plan, data []byte, f *Field) []byte {
	if _, outOfLine := p.fieldPayload[f]; outOfLine {
		return data
	}
	if uint64(len(data)) >= p.offsetSize {
		return data
	}
	padded := make([]byte, p.offsetSize)
	copy(padded, data)
	return padded
}

// emitBlobs copies each referenced image-data range from its source into
// the output through one bounded buffer; a blob is never resident in full.
func emitBlobs(p *plan, dest io.WriterAt, f *Field) error {
	offsets := p.blobOffset[f]
	lengths := p.blobLengths[f]
	skip := p.blobSkip[f]
	buf := make([]byte, copyChunkSize)
	for i, off := range offsets {
		if off == 0 || lengths[i] == 0 {
			continue
		}
		if skip != nil && skip[i] {
			// a dedup-reused offset: identical bytes already sit
			// there from an earlier element, nothing to rewrite.
			continue
		}
		srcOff, destOff, remaining := f.ResolvedOffsets[i], off, lengths[i]
		for remaining > 0 {
			n := uint64(len(buf))
			if remaining < n {
				n = remaining
			}
			chunk := buf[:n]
			if _, err := f.Source.ReadAt(chunk, int64(srcOff)); err != nil {
				return errTruncated("write (copy image data)", srcOff)
			}
			if _, err := dest.WriteAt(chunk, int64(destOff)); err != nil {
				return err
			}
			srcOff += n
			destOff += n
			remaining -= n
		}
	}
	return nil
}
