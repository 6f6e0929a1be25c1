package tiffops

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/tifftools-go/tifftools/tagset"
	"github.com/tifftools-go/tifftools/tiff"
	"github.com/tifftools-go/tifftools/tifftype"
)

func leShort(v uint16) []byte {
	data := make([]byte, 2)
	binary.LittleEndian.PutUint16(data, v)
	return data
}

// stripInfo builds a one-IFD model whose single strip references blob.
func stripInfo(desc string, blob []byte) *tiff.Info {
	order := binary.LittleEndian
	counts := make([]byte, 4)
	order.PutUint32(counts, uint32(len(blob)))
	text := append([]byte(desc), 0)
	node := &tiff.IFDNode{Order: order, Space: tagset.TIFF}
	node.Fields = []tiff.Field{
		{Tag: tagset.ImageWidth, Datatype: tifftype.SHORT, Count: 1, Data: leShort(64)},
		{Tag: tagset.ImageDescription, Datatype: tifftype.ASCII, Count: uint64(len(text)), Data: text},
		{Tag: tagset.StripOffsets, Datatype: tifftype.LONG, Count: 1, ResolvedOffsets: []uint64{0}, Source: bytes.NewReader(blob)},
		{Tag: tagset.StripByteCounts, Datatype: tifftype.LONG, Count: 1, Data: counts},
	}
	node.Sort()
	return &tiff.Info{Order: order, Version: 42, OffsetSize: 4, IFDs: []*tiff.IFDNode{node}}
}

func writeInfo(t *testing.T, path string, info *tiff.Info) {
	t.Helper()
	if err := tiff.NewWriter(tiff.Options{}).WriteFile(info, path, true); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func readFile(t *testing.T, path string) (*tiff.Info, []byte) {
	t.Helper()
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	info, err := tiff.NewReader(bytes.NewReader(raw), int64(len(raw))).Read()
	if err != nil {
		t.Fatalf("parse %s: %v", path, err)
	}
	return info, raw
}

func tagIDs(node *tiff.IFDNode) []tifftype.Tag {
	out := make([]tifftype.Tag, 0, len(node.Fields))
	for i := range node.Fields {
		out = append(out, node.Fields[i].Tag)
	}
	return out
}

func stripBytes(t *testing.T, raw []byte, node *tiff.IFDNode) []byte {
	t.Helper()
	offsets := node.Find(tagset.StripOffsets)
	counts := node.Find(tagset.StripByteCounts)
	if offsets == nil || counts == nil {
		t.Fatal("strip tags missing")
	}
	length := binary.LittleEndian.Uint32(counts.Data)
	off := offsets.ResolvedOffsets[0]
	return raw[off : off+uint64(length)]
}

func TestSetReplacesSecretEverywhere(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "in.tif")
	out := filepath.Join(dir, "out.tif")
	writeInfo(t, src, stripInfo("secret phrase", []byte("pixelpixelpixel!")))

	srcRaw, err := os.ReadFile(src)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(srcRaw, []byte("secret")) {
		t.Fatal("test precondition: source must contain the secret")
	}

	err = Set(src, out, []SetDirective{{Spec: "ImageDescription", Value: "public phrase"}}, nil, nil, SetOptions{})
	if err != nil {
		t.Fatalf("Set: %v", err)
	}

	outRaw, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if bytes.Contains(outRaw, []byte("secret")) {
		t.Error("output still contains the secret byte sequence")
	}
	if !bytes.Contains(outRaw, []byte("public phrase")) {
		t.Error("output lacks the replacement text")
	}

	info, raw := readFile(t, out)
	if got := stripBytes(t, raw, info.IFDs[0]); !bytes.Equal(got, []byte("pixelpixelpixel!")) {
		t.Errorf("pixel data disturbed: %q", got)
	}
}

func TestSetUnsetRemovesTag(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "in.tif")
	out := filepath.Join(dir, "out.tif")
	writeInfo(t, src, stripInfo("something", []byte("data")))

	if err := Set(src, out, nil, []string{"ImageDescription"}, nil, SetOptions{}); err != nil {
		t.Fatalf("Set: %v", err)
	}
	info, _ := readFile(t, out)
	if info.IFDs[0].Find(tagset.ImageDescription) != nil {
		t.Error("ImageDescription should be gone")
	}
	if info.IFDs[0].Find(tagset.ImageWidth) == nil {
		t.Error("other tags must survive")
	}
}

func TestSetFromCopiesEntry(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.tif")
	b := filepath.Join(dir, "b.tif")
	out := filepath.Join(dir, "out.tif")
	writeInfo(t, a, stripInfo("original", []byte("data")))
	writeInfo(t, b, stripInfo("donor description", []byte("other")))

	err := Set(a, out, nil, nil, []SetFromDirective{{Spec: "ImageDescription", Path: b}}, SetOptions{})
	if err != nil {
		t.Fatalf("Set: %v", err)
	}
	info, _ := readFile(t, out)
	f := info.IFDs[0].Find(tagset.ImageDescription)
	if f == nil || string(f.Data) != "donor description\x00" {
		t.Errorf("copied payload = %q", f.Data)
	}
}

func TestSetTargetsSelectedIFD(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "in.tif")
	out := filepath.Join(dir, "out.tif")

	a := stripInfo("first", []byte("aaaa"))
	b := stripInfo("second", []byte("bbbb"))
	merged := &tiff.Info{Order: a.Order, Version: 42, OffsetSize: 4, IFDs: append(a.IFDs, b.IFDs...)}
	writeInfo(t, src, merged)

	err := Set(src, out, []SetDirective{{Spec: "ImageDescription,1", Value: "patched"}}, nil, nil, SetOptions{})
	if err != nil {
		t.Fatalf("Set: %v", err)
	}
	info, _ := readFile(t, out)
	first := info.IFDs[0].Find(tagset.ImageDescription)
	second := info.IFDs[1].Find(tagset.ImageDescription)
	if string(first.Data) != "first\x00" {
		t.Errorf("IFD 0 disturbed: %q", first.Data)
	}
	if string(second.Data) != "patched\x00" {
		t.Errorf("IFD 1 not patched: %q", second.Data)
	}
}

func TestSetUnknownTagIsUserError(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "in.tif")
	writeInfo(t, src, stripInfo("x", []byte("d")))
	err := Set(src, filepath.Join(dir, "out.tif"),
		[]SetDirective{{Spec: "NoSuchTagAnywhere", Value: "1"}}, nil, nil, SetOptions{})
	if _, ok := err.(*tiff.UserError); !ok {
		t.Fatalf("expected UserError, got %v", err)
	}
}

func TestConcatTwoFiles(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.tif")
	b := filepath.Join(dir, "b.tif")
	c := filepath.Join(dir, "c.tif")
	writeInfo(t, a, stripInfo("file A", bytes.Repeat([]byte{0xAA}, 32)))
	writeInfo(t, b, stripInfo("file B", bytes.Repeat([]byte{0xBB}, 48)))

	if err := Concat([]string{a, b}, c, ConcatOptions{}); err != nil {
		t.Fatalf("Concat: %v", err)
	}

	infoA, rawA := readFile(t, a)
	infoB, rawB := readFile(t, b)
	infoC, rawC := readFile(t, c)
	if len(infoC.IFDs) != 2 {
		t.Fatalf("concat output has %d IFDs, want 2", len(infoC.IFDs))
	}
	if diff := tagIDs(infoC.IFDs[0]); !equalTags(diff, tagIDs(infoA.IFDs[0])) {
		t.Errorf("IFD 0 tag set = %v, want %v", diff, tagIDs(infoA.IFDs[0]))
	}
	if diff := tagIDs(infoC.IFDs[1]); !equalTags(diff, tagIDs(infoB.IFDs[0])) {
		t.Errorf("IFD 1 tag set = %v, want %v", diff, tagIDs(infoB.IFDs[0]))
	}
	if !bytes.Equal(stripBytes(t, rawC, infoC.IFDs[0]), stripBytes(t, rawA, infoA.IFDs[0])) {
		t.Error("IFD 0 pixel data does not match source A")
	}
	if !bytes.Equal(stripBytes(t, rawC, infoC.IFDs[1]), stripBytes(t, rawB, infoB.IFDs[0])) {
		t.Error("IFD 1 pixel data does not match source B")
	}
}

func equalTags(a, b []tifftype.Tag) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestConcatSingleSourceKeepsModel(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.tif")
	c := filepath.Join(dir, "c.tif")
	writeInfo(t, a, stripInfo("only", []byte("payload")))
	if err := Concat([]string{a}, c, ConcatOptions{}); err != nil {
		t.Fatalf("Concat: %v", err)
	}
	infoA, rawA := readFile(t, a)
	infoC, rawC := readFile(t, c)
	if len(infoC.IFDs) != 1 || !equalTags(tagIDs(infoC.IFDs[0]), tagIDs(infoA.IFDs[0])) {
		t.Error("single-source concat changed the tag set")
	}
	if !bytes.Equal(stripBytes(t, rawC, infoC.IFDs[0]), stripBytes(t, rawA, infoA.IFDs[0])) {
		t.Error("single-source concat changed pixel data")
	}
}

func subIFDInfo() *tiff.Info {
	order := binary.LittleEndian
	children := make([]*tiff.IFDNode, 3)
	for i := range children {
		n := &tiff.IFDNode{Order: order, Space: tagset.TIFF}
		n.Fields = []tiff.Field{{Tag: tagset.ImageWidth, Datatype: tifftype.SHORT, Count: 1, Data: leShort(uint16(10 + i))}}
		children[i] = n
	}
	parent := &tiff.IFDNode{Order: order, Space: tagset.TIFF}
	parent.Fields = []tiff.Field{
		{Tag: tagset.ImageWidth, Datatype: tifftype.SHORT, Count: 1, Data: leShort(100)},
		{Tag: tagset.SubIFDs, Datatype: tifftype.IFD, Count: 3, SubIFDs: children},
	}
	parent.Sort()
	return &tiff.Info{Order: order, Version: 42, OffsetSize: 4, IFDs: []*tiff.IFDNode{parent}}
}

func TestSplitSubIFDs(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "in.tif")
	writeInfo(t, src, subIFDInfo())

	paths, err := Split(src, filepath.Join(dir, "part-"), SplitOptions{SubIFDs: true})
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	if len(paths) != 4 {
		t.Fatalf("split produced %d files, want 4", len(paths))
	}
	widths := make([]uint16, 0, 4)
	for _, p := range paths {
		info, _ := readFile(t, p)
		if len(info.IFDs) != 1 {
			t.Errorf("%s has %d IFDs, want 1", p, len(info.IFDs))
		}
		if info.IFDs[0].Find(tagset.SubIFDs) != nil {
			t.Errorf("%s still carries a SubIFDs tag", p)
		}
		widths = append(widths, binary.LittleEndian.Uint16(info.IFDs[0].Find(tagset.ImageWidth).Data))
	}
	want := []uint16{100, 10, 11, 12}
	for i := range want {
		if widths[i] != want[i] {
			t.Errorf("file %d width = %d, want %d", i, widths[i], want[i])
		}
	}
}

func TestSplitKeepsSubIFDsWithoutFlag(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "in.tif")
	writeInfo(t, src, subIFDInfo())

	paths, err := Split(src, filepath.Join(dir, "whole-"), SplitOptions{})
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	if len(paths) != 1 {
		t.Fatalf("split produced %d files, want 1", len(paths))
	}
	info, _ := readFile(t, paths[0])
	f := info.IFDs[0].Find(tagset.SubIFDs)
	if f == nil || len(f.SubIFDs) != 3 {
		t.Error("SubIFDs must be preserved when the flag is off")
	}
}

func TestSplitRefusesExistingOutput(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "in.tif")
	writeInfo(t, src, stripInfo("x", []byte("d")))
	blocking := filepath.Join(dir, "out-") + "aaa.tif"
	if err := os.WriteFile(blocking, []byte("existing"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := Split(src, filepath.Join(dir, "out-"), SplitOptions{})
	if _, ok := err.(*tiff.UserError); !ok {
		t.Fatalf("expected UserError, got %v", err)
	}
}

func TestSplitNames(t *testing.T) {
	if got := splitName("x-", 0, 3); got != "x-aaa.tif" {
		t.Errorf("first name = %q", got)
	}
	if got := splitName("x-", 1, 3); got != "x-aab.tif" {
		t.Errorf("second name = %q", got)
	}
	if got := splitName("x-", 27, 3); got != "x-abb.tif" {
		t.Errorf("name 27 = %q", got)
	}
	if got := suffixChars(1); got != 3 {
		t.Errorf("suffixChars(1) = %d", got)
	}
	if got := suffixChars(26*26*26 + 1); got != 4 {
		t.Errorf("suffixChars(26^3+1) = %d", got)
	}
}

func TestDumpTextAndJSON(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "in.tif")
	writeInfo(t, src, stripInfo("hello dump", []byte("data")))

	var text bytes.Buffer
	if err := Dump(&text, []string{src}, DumpOptions{Max: 10}); err != nil {
		t.Fatalf("Dump text: %v", err)
	}
	if !bytes.Contains(text.Bytes(), []byte("ImageWidth")) {
		t.Error("text dump lacks ImageWidth")
	}
	if !bytes.Contains(text.Bytes(), []byte("hello dump")) {
		t.Error("text dump lacks the description value")
	}

	var js bytes.Buffer
	if err := Dump(&js, []string{src}, DumpOptions{Format: DumpJSON}); err != nil {
		t.Fatalf("Dump JSON: %v", err)
	}
	if !json.Valid(js.Bytes()) {
		t.Error("JSON dump is not valid JSON")
	}

	var yml bytes.Buffer
	if err := Dump(&yml, []string{src}, DumpOptions{Format: DumpYAML}); err != nil {
		t.Fatalf("Dump YAML: %v", err)
	}
	if yml.Len() == 0 {
		t.Error("YAML dump is empty")
	}
}

func TestParseValueSpecEnumName(t *testing.T) {
	desc := tagset.SetFor(tagset.TIFF).ByTag(tagset.Compression)
	dt, data, count, err := ParseValueSpec(desc, 0, binary.LittleEndian, "JPEG")
	if err != nil {
		t.Fatal(err)
	}
	if dt != tifftype.SHORT || count != 1 {
		t.Errorf("dt=%v count=%d", dt, count)
	}
	if binary.LittleEndian.Uint16(data) != 7 {
		t.Errorf("JPEG resolved to %d, want 7", binary.LittleEndian.Uint16(data))
	}
}

func TestParseValueSpecRationalAndArray(t *testing.T) {
	// "3/2", "3 2", and "3, 2" all describe the same single element.
	for _, raw := range []string{"3/2", "3 2", "3, 2"} {
		dt, data, count, err := ParseValueSpec(nil, tifftype.RATIONAL, binary.LittleEndian, raw)
		if err != nil {
			t.Fatalf("%q: %v", raw, err)
		}
		if dt != tifftype.RATIONAL || count != 1 {
			t.Errorf("%q: dt=%v count=%d", raw, dt, count)
		}
		if binary.LittleEndian.Uint32(data[0:4]) != 3 || binary.LittleEndian.Uint32(data[4:8]) != 2 {
			t.Errorf("%q: rational = % X", raw, data)
		}
	}

	// element forms can mix within one array value.
	_, data, count, err := ParseValueSpec(nil, tifftype.RATIONAL, binary.LittleEndian, "1/2 3 4")
	if err != nil {
		t.Fatal(err)
	}
	if count != 2 || len(data) != 16 {
		t.Fatalf("mixed rational array count=%d len=%d", count, len(data))
	}
	if binary.LittleEndian.Uint32(data[8:12]) != 3 || binary.LittleEndian.Uint32(data[12:16]) != 4 {
		t.Errorf("second element = % X", data[8:16])
	}

	// a dangling numerator is a user error, not a silent drop.
	if _, _, _, err := ParseValueSpec(nil, tifftype.RATIONAL, binary.LittleEndian, "3/2 5"); err == nil {
		t.Error("odd trailing token should fail")
	}

	_, data, count, err = ParseValueSpec(nil, tifftype.SHORT, binary.LittleEndian, "1, 2, 3")
	if err != nil {
		t.Fatal(err)
	}
	if count != 3 || len(data) != 6 {
		t.Errorf("array count=%d len=%d", count, len(data))
	}
	if binary.LittleEndian.Uint16(data[2:4]) != 2 {
		t.Errorf("middle element = %d", binary.LittleEndian.Uint16(data[2:4]))
	}
}

func TestBitfieldNames(t *testing.T) {
	desc := tagset.SetFor(tagset.TIFF).ByTag(tagset.NewSubfileType)
	names := BitfieldNames(desc, uint64(5))
	if len(names) != 2 || names[0] != "ReducedResolution" || names[1] != "TransparencyMask" {
		t.Errorf("bits of 5 = %v", names)
	}
	if got := BitfieldNames(desc, uint64(0)); len(got) != 0 {
		t.Errorf("no bits set should yield nothing, got %v", got)
	}
}

func TestParseValueSpecBadValue(t *testing.T) {
	_, _, _, err := ParseValueSpec(nil, tifftype.SHORT, binary.LittleEndian, "not-a-number")
	if _, ok := err.(*tiff.UserError); !ok {
		t.Fatalf("expected UserError, got %v", err)
	}
}

func TestDecodeGeoKeys(t *testing.T) {
	order := binary.LittleEndian
	// header (version 1, rev 1.0, 2 keys) + GTModelType=2 inline +
	// GeogCitation from the ASCII params tag.
	dirVals := []uint16{
		1, 1, 0, 2,
		uint16(tagset.GTModelType), 0, 1, 2,
		uint16(tagset.GeogCitation), uint16(tagset.GeoAsciiParamsTag), 7, 0,
	}
	dirData := make([]byte, len(dirVals)*2)
	for i, v := range dirVals {
		order.PutUint16(dirData[i*2:i*2+2], v)
	}
	ascii := []byte("WGS 84|")
	node := &tiff.IFDNode{Order: order, Space: tagset.TIFF}
	node.Fields = []tiff.Field{
		{Tag: tagset.GeoKeyDirectoryTag, Datatype: tifftype.SHORT, Count: uint64(len(dirVals)), Data: dirData},
		{Tag: tagset.GeoAsciiParamsTag, Datatype: tifftype.ASCII, Count: uint64(len(ascii)), Data: ascii},
	}
	node.Sort()
	info := &tiff.Info{Order: order, IFDs: []*tiff.IFDNode{node}}

	keys := DecodeGeoKeys(info, node)
	if len(keys) != 2 {
		t.Fatalf("decoded %d keys, want 2", len(keys))
	}
	if keys[0].Name != "GTModelType" || keys[0].Value.(uint64) != 2 {
		t.Errorf("key 0 = %+v", keys[0])
	}
	if keys[1].Name != "GeogCitation" || keys[1].Value.(string) != "WGS 84" {
		t.Errorf("key 1 = %+v", keys[1])
	}
}
