package tiff

import (
	"encoding/binary"

	"github.com/tifftools-go/tifftools/tifftype"
)

// decodeUints unpacks raw as a sequence of unsigned integers of the given
// datatype's element size (1, 2, 4, or 8 bytes), in order. It is used for
// offset-like datatypes (SHORT, LONG, LONG8, IFD, IFD8) where the writer
// and NDPI fix-up need the numeric values, not just the raw bytes.
func decodeUints(raw []byte, dt tifftype.Datatype, order binary.ByteOrder) []uint64 {
	size := int(dt.Size())
	if size == 0 {
		return nil
	}
	n := len(raw) / size
	out := make([]uint64, n)
	for i := 0; i < n; i++ {
		chunk := raw[i*size : i*size+size]
		switch size {
		case 1:
			out[i] = uint64(chunk[0])
		case 2:
			out[i] = uint64(order.Uint16(chunk))
		case 4:
			out[i] = uint64(order.Uint32(chunk))
		case 8:
			out[i] = order.Uint64(chunk)
		}
	}
	return out
}

// ConvertOrder rewrites a raw payload from one byte order to the other by
// reversing each machine word. Rationals are two 4-byte words per element;
// every other multi-byte datatype is one word of its element size; 1-byte
// datatypes pass through untouched. Used when IFDs from differently-ordered
// files are merged into a single output (concat, setfrom).
func ConvertOrder(raw []byte, dt tifftype.Datatype, from, to binary.ByteOrder) []byte {
	if from == to {
		return raw
	}
	word := int(dt.Size())
	if dt.IsRational() {
		word = 4
	}
	if word <= 1 {
		return raw
	}
	out := make([]byte, len(raw))
	for base := 0; base+word <= len(raw); base += word {
		for i := 0; i < word; i++ {
			out[base+i] = raw[base+word-1-i]
		}
	}
	return out
}

// encodeUints packs a sequence of unsigned integers back into raw bytes
// at the given datatype's element width and byte order. Used by the
// writer to re-emit a field whose decoded values it has just computed
// (the output offsets it assigned to child IFDs or to copied image-data
// regions).
func encodeUints(values []uint64, dt tifftype.Datatype, order binary.ByteOrder) []byte {
	size := int(dt.Size())
	out := make([]byte, len(values)*size)
	for i, v := range values {
		chunk := out[i*size : i*size+size]
		switch size {
		case 1:
			chunk[0] = byte(v)
		case 2:
			order.PutUint16(chunk, uint16(v))
		case 4:
			order.PutUint32(chunk, uint32(v))
		case 8:
			order.PutUint64(chunk, v)
		}
	}
	return out
}
