package tiffops

import (
	"encoding/binary"
	"math"

	"github.com/tifftools-go/tifftools/tagset"
	"github.com/tifftools-go/tifftools/tiff"
	"github.com/tifftools-go/tifftools/tifftype"
)

// DecodedGeoKey is one named entry from a GeoKeyDirectoryTag payload,
// ready for display.
type DecodedGeoKey struct {
	Name  string
	KeyID uint16
	Value interface{}
}

// DecodeGeoKeys unpacks a GeoKeyDirectoryTag payload's packed (KeyID,
// TIFFTagLocation, Count, Value) quadruplets, pulling wide values out of
// the companion GeoDoubleParamsTag/GeoAsciiParamsTag fields in the same
// IFD. An unrecognized KeyID produces a warning on info rather than an
// error; the rest of the directory still decodes.
func DecodeGeoKeys(info *tiff.Info, node *tiff.IFDNode) []DecodedGeoKey {
	dirField := node.Find(tagset.GeoKeyDirectoryTag)
	if dirField == nil {
		return nil
	}
	order := node.Order
	values := decodeUint16s(order, dirField.Data)
	if len(values) < 4 {
		return nil
	}

	doubleField := node.Find(tagset.GeoDoubleParamsTag)
	var doubles []float64
	if doubleField != nil {
		doubles = decodeFloat64s(order, doubleField.Data)
	}
	asciiField := node.Find(tagset.GeoAsciiParamsTag)
	var asciiText string
	if asciiField != nil {
		asciiText = string(asciiField.Data)
	}

	// values[0:4] is the directory header: (keyDirectoryVersion,
	// keyRevision, minorRevision, numberOfKeys); entries follow in groups
	// of 4.
	numKeys := int(values[3])
	out := make([]DecodedGeoKey, 0, numKeys)
	for i := 0; i < numKeys && (i+1)*4+3 < len(values); i++ {
		base := (i + 1) * 4
		keyID := values[base]
		tagLocation := values[base+1]
		count := values[base+2]
		valueOffset := values[base+3]

		desc := tagset.Describe(tagset.GeoTIFF, tifftype.Tag(keyID))
		name := ""
		if desc != nil {
			name = desc.Name
		} else {
			info.AddWarning("unrecognized GeoKey ID", tifftype.Tag(keyID))
		}

		var value interface{}
		switch tagLocation {
		case 0:
			value = uint64(valueOffset)
		case uint16(tagset.GeoDoubleParamsTag):
			if int(valueOffset)+int(count) <= len(doubles) {
				value = doubles[int(valueOffset) : int(valueOffset)+int(count)]
			}
		case uint16(tagset.GeoAsciiParamsTag):
			end := int(valueOffset) + int(count)
			if end <= len(asciiText) {
				value = trimPipe(asciiText[int(valueOffset):end])
			}
		default:
			value = uint64(valueOffset)
		}

		out = append(out, DecodedGeoKey{Name: name, KeyID: keyID, Value: value})
	}
	return out
}

func trimPipe(s string) string {
	for len(s) > 0 && (s[len(s)-1] == '|' || s[len(s)-1] == 0) {
		s = s[:len(s)-1]
	}
	return s
}

func decodeUint16s(order binary.ByteOrder, raw []byte) []uint16 {
	n := len(raw) / 2
	out := make([]uint16, n)
	for i := 0; i < n; i++ {
		out[i] = order.Uint16(raw[i*2 : i*2+2])
	}
	return out
}

func decodeFloat64s(order binary.ByteOrder, raw []byte) []float64 {
	n := len(raw) / 8
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		bits := order.Uint64(raw[i*8 : i*8+8])
		out[i] = math.Float64frombits(bits)
	}
	return out
}
