package tagset

import (
	"strings"

	"github.com/tifftools-go/tifftools/tifftype"
)

// Hamamatsu NDPI private tags (whole-slide scanner metadata stored as
// extra top-level TIFF tags rather than a separate IFD). Tag numbers are
// the ones documented by the OpenSlide project's NDPI reader.
const (
	NDPISourceLens     tifftype.Tag = 65421
	NDPIXOffset        tifftype.Tag = 65422
	NDPIYOffset        tifftype.Tag = 65423
	NDPIFocalPlane     tifftype.Tag = 65424
	NDPIReference      tifftype.Tag = 65426
	NDPIXMagnification tifftype.Tag = 65427
	NDPIZOffset        tifftype.Tag = 65432
	NDPIScannerSerial  tifftype.Tag = 65439
)

var ndpiDescriptors = []*Descriptor{
	d(NDPISourceLens, "NDPISourceLens", tifftype.SRATIONAL),
	d(NDPIXOffset, "NDPIXOffset", tifftype.SLONG),
	d(NDPIYOffset, "NDPIYOffset", tifftype.SLONG),
	d(NDPIFocalPlane, "NDPIFocalPlane", tifftype.SLONG),
	d(NDPIReference, "NDPIReference", tifftype.ASCII),
	d(NDPIXMagnification, "NDPIXMagnification", tifftype.SRATIONAL),
	d(NDPIZOffset, "NDPIZOffset", tifftype.SLONG),
	d(NDPIScannerSerial, "NDPIScannerSerial", tifftype.ASCII),
}

// NDPISet is the Hamamatsu NDPI vendor tag-set. StripOffsets/StripByteCounts
// in an NDPI file are still root TIFF tags (see package ndpi for the 32-bit
// offset-overflow fix-up they require); this set only covers NDPI's own
// private tag numbers.
var NDPISet = newSet(NDPI, ndpiDescriptors)

// ImageJ stores a free-form key=value metadata block and a per-slice byte
// count array in two private tags rather than a nested IFD.
const (
	IJMetadataByteCounts tifftype.Tag = 50838
	IJMetadata           tifftype.Tag = 50839
)

var imageJDescriptors = []*Descriptor{
	d(IJMetadataByteCounts, "IJMetadataByteCounts", tifftype.LONG),
	d(IJMetadata, "IJMetadata", tifftype.BYTE),
}

// ImageJSet is the ImageJ vendor tag-set.
var ImageJSet = newSet(ImageJ, imageJDescriptors)

// AperioSet is intentionally empty: Aperio SVS files carry their vendor
// metadata as a "|"-delimited key=value string inside the standard
// baseline ImageDescription tag rather than as private numeric tags, so
// there is nothing to register here. ParseAperioDescription below is the
// vendor-specific decoding logic that belongs next to this set.
var AperioSet = newSet(Aperio, nil)

// ParseAperioDescription splits an Aperio-style ImageDescription payload
// ("AperioImageLibrary vX.Y\r\nlabel|key1 = value1|key2 = value2|...")
// into its free-text header line and its key/value pairs. It never errors:
// a non-Aperio description simply yields an empty map.
func ParseAperioDescription(desc string) (header string, fields map[string]string) {
	fields = make(map[string]string)
	parts := strings.Split(desc, "|")
	if len(parts) == 0 {
		return "", fields
	}
	header = strings.TrimSpace(parts[0])
	for _, part := range parts[1:] {
		kv := strings.SplitN(part, "=", 2)
		if len(kv) != 2 {
			continue
		}
		fields[strings.TrimSpace(kv[0])] = strings.TrimSpace(kv[1])
	}
	return header, fields
}
