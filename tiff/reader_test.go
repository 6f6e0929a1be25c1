package tiff

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"

	"github.com/tifftools-go/tifftools/tifftype"
)

// rawIFDEntry builds one classic little-endian directory entry.
func rawIFDEntry(tag uint16, datatype uint16, count uint32, field [4]byte) []byte {
	e := make([]byte, 12)
	binary.LittleEndian.PutUint16(e[0:2], tag)
	binary.LittleEndian.PutUint16(e[2:4], datatype)
	binary.LittleEndian.PutUint32(e[4:8], count)
	copy(e[8:12], field[:])
	return e
}

// rawClassicTIFF assembles a classic little-endian file: header, then one
// IFD at offset 8 holding the given entries, then trailing data.
func rawClassicTIFF(entries [][]byte, next uint32, trailing []byte) []byte {
	buf := []byte{'I', 'I', 42, 0, 8, 0, 0, 0}
	count := make([]byte, 2)
	binary.LittleEndian.PutUint16(count, uint16(len(entries)))
	buf = append(buf, count...)
	for _, e := range entries {
		buf = append(buf, e...)
	}
	nextWord := make([]byte, 4)
	binary.LittleEndian.PutUint32(nextWord, next)
	buf = append(buf, nextWord...)
	return append(buf, trailing...)
}

func readBytes(t *testing.T, raw []byte) *Info {
	t.Helper()
	info, err := NewReader(bytes.NewReader(raw), int64(len(raw))).Read()
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	return info
}

func TestHeaderDetection(t *testing.T) {
	raw := rawClassicTIFF(nil, 0, nil)
	if !bytes.Equal(raw[:8], []byte{0x49, 0x49, 0x2A, 0x00, 0x08, 0x00, 0x00, 0x00}) {
		t.Fatalf("test harness produced wrong header bytes: % X", raw[:8])
	}
	info := readBytes(t, raw)
	if info.Order != binary.LittleEndian {
		t.Error("expected little-endian")
	}
	if info.BigTIFF || info.Version != 42 || info.OffsetSize != 4 {
		t.Errorf("header misparsed: bigtiff=%v version=%d offsetSize=%d", info.BigTIFF, info.Version, info.OffsetSize)
	}
	if len(info.IFDs) != 1 || len(info.IFDs[0].Fields) != 0 {
		t.Errorf("expected one empty IFD, got %+v", info.IFDs)
	}
	if info.IFDs[0].SourceOffset != 8 {
		t.Errorf("first IFD offset = %d, want 8", info.IFDs[0].SourceOffset)
	}
}

func TestBigEndianHeader(t *testing.T) {
	raw := []byte{'M', 'M', 0, 42, 0, 0, 0, 8, 0, 0, 0, 0, 0, 0}
	info := readBytes(t, raw)
	if info.Order != binary.BigEndian {
		t.Error("expected big-endian")
	}
}

func TestBadMagic(t *testing.T) {
	_, err := NewReader(bytes.NewReader([]byte{'X', 'X', 42, 0, 8, 0, 0, 0}), 8).Read()
	var fe *FormatError
	if !errors.As(err, &fe) {
		t.Fatalf("expected FormatError, got %v", err)
	}
}

func TestUnknownVersion(t *testing.T) {
	_, err := NewReader(bytes.NewReader([]byte{'I', 'I', 44, 0, 8, 0, 0, 0}), 8).Read()
	var fe *FormatError
	if !errors.As(err, &fe) {
		t.Fatalf("expected FormatError, got %v", err)
	}
}

func TestTruncatedHeader(t *testing.T) {
	_, err := NewReader(bytes.NewReader([]byte{'I', 'I', 42}), 3).Read()
	if err == nil {
		t.Fatal("expected error for truncated header")
	}
}

func TestFirstIFDOffsetBeyondFile(t *testing.T) {
	raw := []byte{'I', 'I', 42, 0, 0xFF, 0, 0, 0}
	_, err := NewReader(bytes.NewReader(raw), int64(len(raw))).Read()
	var fe *FormatError
	if !errors.As(err, &fe) {
		t.Fatalf("expected FormatError, got %v", err)
	}
}

func TestCircularIFDChain(t *testing.T) {
	// single empty IFD whose successor points back at itself.
	raw := rawClassicTIFF(nil, 8, nil)
	_, err := NewReader(bytes.NewReader(raw), int64(len(raw))).Read()
	var fe *FormatError
	if !errors.As(err, &fe) {
		t.Fatalf("expected circular-reference FormatError, got %v", err)
	}
}

func TestInlineShortValue(t *testing.T) {
	// ImageWidth = 64, SHORT, count 1, stored inline.
	entry := rawIFDEntry(0x0100, 3, 1, [4]byte{0x40, 0x00, 0x00, 0x00})
	info := readBytes(t, rawClassicTIFF([][]byte{entry}, 0, nil))
	f := info.IFDs[0].Find(0x0100)
	if f == nil {
		t.Fatal("ImageWidth missing")
	}
	if f.Datatype != tifftype.SHORT || f.Count != 1 {
		t.Errorf("got datatype %v count %d", f.Datatype, f.Count)
	}
	if got := binary.LittleEndian.Uint16(f.Data); got != 64 {
		t.Errorf("ImageWidth = %d, want 64", got)
	}
}

func TestOutOfLineASCII(t *testing.T) {
	text := []byte("a description longer than four bytes\x00")
	// directory block (count, one entry, next-IFD word) ends at
	// 8 + 2 + 12 + 4 = 26; payload right after.
	entry := rawIFDEntry(0x010E, 2, uint32(len(text)), [4]byte{26, 0, 0, 0})
	info := readBytes(t, rawClassicTIFF([][]byte{entry}, 0, text))
	f := info.IFDs[0].Find(0x010E)
	if f == nil {
		t.Fatal("ImageDescription missing")
	}
	if !bytes.Equal(f.Data, text) {
		t.Errorf("payload = %q, want %q", f.Data, text)
	}
}

func TestGroupedReadsSliceAdjacentPayloads(t *testing.T) {
	// two out-of-line payloads sharing one contiguous region exercise the
	// coalescing path; both must come back intact.
	a := []byte("first payload bytes!")
	b := []byte("second payload bytes")
	base := uint32(8 + 2 + 2*12 + 4)
	entryA := rawIFDEntry(0x010D, 2, uint32(len(a)), [4]byte{byte(base), 0, 0, 0})
	entryB := rawIFDEntry(0x010E, 2, uint32(len(b)), [4]byte{byte(base + uint32(len(a))), 0, 0, 0})
	info := readBytes(t, rawClassicTIFF([][]byte{entryA, entryB}, 0, append(append([]byte{}, a...), b...)))
	if got := info.IFDs[0].Find(0x010D); got == nil || !bytes.Equal(got.Data, a) {
		t.Errorf("DocumentName payload corrupted: %q", got.Data)
	}
	if got := info.IFDs[0].Find(0x010E); got == nil || !bytes.Equal(got.Data, b) {
		t.Errorf("ImageDescription payload corrupted: %q", got.Data)
	}
}

func TestUnknownTagUnknownDatatypeDropped(t *testing.T) {
	entry := rawIFDEntry(0xEEEE, 99, 1, [4]byte{1, 0, 0, 0})
	info := readBytes(t, rawClassicTIFF([][]byte{entry}, 0, nil))
	if len(info.IFDs[0].Fields) != 0 {
		t.Error("unknown-tag/unknown-datatype entry should be dropped")
	}
	if len(info.Warnings) == 0 {
		t.Error("expected a recorded warning")
	}
}

func TestKnownTagUnknownDatatypeFails(t *testing.T) {
	entry := rawIFDEntry(0x0100, 99, 1, [4]byte{1, 0, 0, 0})
	raw := rawClassicTIFF([][]byte{entry}, 0, nil)
	_, err := NewReader(bytes.NewReader(raw), int64(len(raw))).Read()
	var fe *FormatError
	if !errors.As(err, &fe) {
		t.Fatalf("expected FormatError for unknown datatype on known tag, got %v", err)
	}
}

func TestUnknownTagKnownDatatypePreserved(t *testing.T) {
	entry := rawIFDEntry(0xEEEE, 3, 1, [4]byte{7, 0, 0, 0})
	info := readBytes(t, rawClassicTIFF([][]byte{entry}, 0, nil))
	f := info.IFDs[0].Find(0xEEEE)
	if f == nil {
		t.Fatal("unknown tag with known datatype must be preserved")
	}
	if got := binary.LittleEndian.Uint16(f.Data); got != 7 {
		t.Errorf("payload = %d, want 7", got)
	}
}

func TestTopLevelChainFlattened(t *testing.T) {
	// IFD 0 at offset 8 links to IFD 1 right after it.
	first := rawClassicTIFF(nil, 8+2+4, nil)
	second := []byte{0, 0, 0, 0, 0, 0} // zero entries, next = 0
	info := readBytes(t, append(first, second...))
	if len(info.IFDs) != 2 {
		t.Fatalf("got %d top-level IFDs, want 2", len(info.IFDs))
	}
	if info.IFDs[0].Next != nil || info.IFDs[1].Next != nil {
		t.Error("top-level nodes must not carry Next links")
	}
}

func TestSubIFDParsing(t *testing.T) {
	// root IFD with a SubIFDs tag pointing at one child directory.
	childOffset := uint32(8 + 2 + 12 + 4)
	entry := rawIFDEntry(0x014A, 13, 1, [4]byte{byte(childOffset), 0, 0, 0})
	child := []byte{0, 0, 0, 0, 0, 0}
	info := readBytes(t, rawClassicTIFF([][]byte{entry}, 0, child))
	f := info.IFDs[0].Find(0x014A)
	if f == nil || !f.IsNested() || len(f.SubIFDs) != 1 {
		t.Fatalf("SubIFDs not resolved: %+v", f)
	}
}

func TestBigTIFFHeaderAndIFD(t *testing.T) {
	raw := []byte{'I', 'I', 43, 0, 8, 0, 0, 0, 16, 0, 0, 0, 0, 0, 0, 0}
	// one entry: ImageWidth LONG8 count 1 value 300, then 8-byte next = 0.
	raw = append(raw, 1, 0, 0, 0, 0, 0, 0, 0)
	e := make([]byte, 20)
	binary.LittleEndian.PutUint16(e[0:2], 0x0100)
	binary.LittleEndian.PutUint16(e[2:4], 16)
	binary.LittleEndian.PutUint64(e[4:12], 1)
	binary.LittleEndian.PutUint64(e[12:20], 300)
	raw = append(raw, e...)
	raw = append(raw, make([]byte, 8)...)

	info := readBytes(t, raw)
	if !info.BigTIFF || info.Version != 43 || info.OffsetSize != 8 {
		t.Fatalf("BigTIFF header misparsed: %+v", info)
	}
	f := info.IFDs[0].Find(0x0100)
	if f == nil || f.Datatype != tifftype.LONG8 {
		t.Fatalf("LONG8 field missing: %+v", f)
	}
	if got := binary.LittleEndian.Uint64(f.Data); got != 300 {
		t.Errorf("value = %d, want 300", got)
	}
}

func TestBigTIFFBadOffsetSize(t *testing.T) {
	raw := []byte{'I', 'I', 43, 0, 4, 0, 0, 0, 16, 0, 0, 0, 0, 0, 0, 0}
	_, err := NewReader(bytes.NewReader(raw), int64(len(raw))).Read()
	var fe *FormatError
	if !errors.As(err, &fe) {
		t.Fatalf("expected FormatError for offset size 4, got %v", err)
	}
}

func TestStripOffsetsResolved(t *testing.T) {
	strip := []byte("pixels")
	base := uint32(8 + 2 + 2*12 + 4)
	offsets := rawIFDEntry(0x0111, 4, 1, [4]byte{byte(base), 0, 0, 0})
	counts := rawIFDEntry(0x0117, 4, 1, [4]byte{byte(len(strip)), 0, 0, 0})
	info := readBytes(t, rawClassicTIFF([][]byte{offsets, counts}, 0, strip))
	f := info.IFDs[0].Find(0x0111)
	if f == nil || f.ResolvedOffsets == nil {
		t.Fatal("StripOffsets not resolved")
	}
	if f.ResolvedOffsets[0] != uint64(base) {
		t.Errorf("resolved offset = %d, want %d", f.ResolvedOffsets[0], base)
	}
}
