// Package tiffops implements dump, split, concat, and set as pure
// tree-to-tree transformations over the tiff.Info model: each reads its
// inputs, builds or edits a model, and hands the result to a tiff.Writer.
// None of them touch pixel payload bytes beyond copying the ranges the
// model already names.
package tiffops

import (
	"encoding/binary"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/tifftools-go/tifftools/tagset"
	"github.com/tifftools-go/tifftools/tiff"
	"github.com/tifftools-go/tifftools/tifftype"
)

// DecodedValues renders a field's raw payload as a slice of Go values
// suitable for display or JSON/YAML encoding: integers, floats, rational
// strings ("num/den"), or a single decoded string for ASCII/UNDEFINED.
// It never consults anything but the field's own Data and Datatype; the
// raw bytes remain the only source of truth for round-tripping.
func DecodedValues(order binary.ByteOrder, f *tiff.Field) []interface{} {
	switch f.Datatype {
	case tifftype.ASCII:
		text, _ := tagset.DecodeASCIIDisplay(f.Data)
		return []interface{}{text}
	case tifftype.UNDEFINED:
		return []interface{}{fmt.Sprintf("%x", f.Data)}
	}
	size := int(f.Datatype.Size())
	if size == 0 || len(f.Data)%size != 0 {
		return nil
	}
	n := len(f.Data) / size
	out := make([]interface{}, 0, n)
	for i := 0; i < n; i++ {
		chunk := f.Data[i*size : (i+1)*size]
		out = append(out, decodeOne(order, f.Datatype, chunk))
	}
	return out
}

func decodeOne(o binary.ByteOrder, dt tifftype.Datatype, chunk []byte) interface{} {
	switch dt {
	case tifftype.BYTE:
		return uint64(chunk[0])
	case tifftype.SBYTE:
		return int64(int8(chunk[0]))
	case tifftype.SHORT:
		return uint64(o.Uint16(chunk))
	case tifftype.SSHORT:
		return int64(int16(o.Uint16(chunk)))
	case tifftype.LONG, tifftype.IFD:
		return uint64(o.Uint32(chunk))
	case tifftype.SLONG:
		return int64(int32(o.Uint32(chunk)))
	case tifftype.LONG8, tifftype.IFD8:
		return o.Uint64(chunk)
	case tifftype.SLONG8:
		return int64(o.Uint64(chunk))
	case tifftype.FLOAT:
		return math.Float32frombits(o.Uint32(chunk))
	case tifftype.DOUBLE:
		return math.Float64frombits(o.Uint64(chunk))
	case tifftype.RATIONAL:
		return fmt.Sprintf("%d/%d", o.Uint32(chunk[0:4]), o.Uint32(chunk[4:8]))
	case tifftype.SRATIONAL:
		return fmt.Sprintf("%d/%d", int32(o.Uint32(chunk[0:4])), int32(o.Uint32(chunk[4:8])))
	default:
		return fmt.Sprintf("%x", chunk)
	}
}

// SymbolicName returns the registry's enum name for a single-valued
// field, or "" if the field has no enum vocabulary or the value isn't an
// integer type.
func SymbolicName(desc *tagset.Descriptor, value interface{}) string {
	if desc == nil || desc.Enum == nil {
		return ""
	}
	var iv int64
	switch v := value.(type) {
	case uint64:
		iv = int64(v)
	case int64:
		iv = v
	default:
		return ""
	}
	return desc.Enum[iv]
}

// BitfieldNames decomposes a single integral value into the names of its
// set bit groups, per the descriptor's bitfield vocabulary. Multi-bit
// groups match only when every bit of the mask is set.
func BitfieldNames(desc *tagset.Descriptor, value interface{}) []string {
	if desc == nil || desc.Bitfield == nil {
		return nil
	}
	var iv uint32
	switch v := value.(type) {
	case uint64:
		iv = uint32(v)
	case int64:
		iv = uint32(v)
	default:
		return nil
	}
	var out []string
	for _, b := range desc.Bitfield {
		if b.Mask != 0 && iv&b.Mask == b.Mask {
			out = append(out, b.Name)
		}
	}
	return out
}

// ParseValueSpec parses a command-line value string for a `set`
// directive into a Field payload, given the resolved descriptor (nil if
// the tag is unregistered) and an explicit datatype override (0 to use
// the descriptor's default, or ASCII as a last resort): rationals accept
// "a/b" or a numerator and denominator as two plain numbers ("a b",
// "a, b"), arrays accept whitespace- or comma-separated numbers, ASCII
// accepts a raw string, and a bare word matching an enum name resolves
// through it.
func ParseValueSpec(desc *tagset.Descriptor, dt tifftype.Datatype, order binary.ByteOrder, raw string) (tifftype.Datatype, []byte, uint64, error) {
	if dt == 0 {
		dt = defaultDatatype(desc)
	}

	if dt == tifftype.ASCII {
		data := append([]byte(raw), 0)
		return dt, data, uint64(len(data)), nil
	}
	if dt == tifftype.UNDEFINED {
		data := parseHexOrRaw(raw)
		return dt, data, uint64(len(data)), nil
	}

	tokens := splitValueList(raw)
	if dt.IsRational() {
		data, count, err := packRationals(order, tokens)
		if err != nil {
			return 0, nil, 0, err
		}
		return dt, data, count, nil
	}

	buf := make([]byte, 0, len(tokens)*int(dt.Size()))
	for _, tok := range tokens {
		if desc != nil && desc.Enum != nil {
			if code, ok := reverseEnum(desc, tok); ok {
				tok = strconv.FormatInt(code, 10)
			}
		}
		elem, err := parseScalar(dt, order, tok)
		if err != nil {
			return 0, nil, 0, err
		}
		buf = append(buf, elem...)
	}
	return dt, buf, uint64(len(tokens)), nil
}

// packRationals consumes tokens as rational elements: either one "a/b"
// token, or a numerator and denominator as two adjacent tokens — the
// whitespace/comma tokenizer has already flattened "3 2" and "3, 2" into
// the same pair, so "3/2", "3 2", and "3, 2" all yield one element.
func packRationals(order binary.ByteOrder, tokens []string) ([]byte, uint64, error) {
	buf := make([]byte, 0, len(tokens)*8)
	count := uint64(0)
	for i := 0; i < len(tokens); {
		numTok, denTok := tokens[i], ""
		if j := strings.IndexByte(numTok, '/'); j >= 0 {
			numTok, denTok = numTok[:j], numTok[j+1:]
			i++
		} else {
			if i+1 >= len(tokens) {
				return nil, 0, &tiff.UserError{Message: fmt.Sprintf("rational needs a numerator/denominator pair, got %q", tokens[i])}
			}
			denTok = tokens[i+1]
			i += 2
		}
		num, err := strconv.ParseInt(strings.TrimSpace(numTok), 10, 32)
		if err != nil {
			return nil, 0, &tiff.UserError{Message: fmt.Sprintf("cannot parse rational numerator %q", numTok)}
		}
		den, err := strconv.ParseInt(strings.TrimSpace(denTok), 10, 32)
		if err != nil {
			return nil, 0, &tiff.UserError{Message: fmt.Sprintf("cannot parse rational denominator %q", denTok)}
		}
		elem := make([]byte, 8)
		order.PutUint32(elem[0:4], uint32(num))
		order.PutUint32(elem[4:8], uint32(den))
		buf = append(buf, elem...)
		count++
	}
	return buf, count, nil
}

func defaultDatatype(desc *tagset.Descriptor) tifftype.Datatype {
	if desc != nil && len(desc.Datatypes) > 0 {
		return desc.Datatypes[0]
	}
	return tifftype.ASCII
}

func splitValueList(raw string) []string {
	raw = strings.TrimSpace(raw)
	return strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
}

func reverseEnum(desc *tagset.Descriptor, name string) (int64, bool) {
	for code, n := range desc.Enum {
		if strings.EqualFold(n, name) {
			return code, true
		}
	}
	return 0, false
}

// parseHexOrRaw accepts an optional "0x" prefix over an even number of
// hex digits for UNDEFINED payloads; anything else is kept as the literal
// string bytes, so opaque vendor payloads can be set verbatim.
func parseHexOrRaw(raw string) []byte {
	trimmed := strings.TrimPrefix(strings.TrimSpace(raw), "0x")
	if data, ok := tryHexDecode(trimmed); ok {
		return data
	}
	return []byte(raw)
}

func tryHexDecode(s string) ([]byte, bool) {
	if len(s) == 0 || len(s)%2 != 0 {
		return nil, false
	}
	out := make([]byte, len(s)/2)
	for i := range out {
		v, err := strconv.ParseUint(s[i*2:i*2+2], 16, 8)
		if err != nil {
			return nil, false
		}
		out[i] = byte(v)
	}
	return out, true
}

func parseScalar(dt tifftype.Datatype, order binary.ByteOrder, tok string) ([]byte, error) {
	if dt.IsFloat() {
		f, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return nil, &tiff.UserError{Message: fmt.Sprintf("cannot parse %q as a float", tok)}
		}
		buf := make([]byte, dt.Size())
		if dt == tifftype.FLOAT {
			order.PutUint32(buf, math.Float32bits(float32(f)))
		} else {
			order.PutUint64(buf, math.Float64bits(f))
		}
		return buf, nil
	}
	v, err := strconv.ParseInt(tok, 0, 64)
	if err != nil {
		return nil, &tiff.UserError{Message: fmt.Sprintf("cannot parse %q as an integer", tok)}
	}
	buf := make([]byte, dt.Size())
	switch dt.Size() {
	case 1:
		buf[0] = byte(v)
	case 2:
		order.PutUint16(buf, uint16(v))
	case 4:
		order.PutUint32(buf, uint32(v))
	case 8:
		order.PutUint64(buf, uint64(v))
	}
	return buf, nil
}
