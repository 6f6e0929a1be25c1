package tagset

import (
	"strconv"
	"strings"

	"github.com/tifftools-go/tifftools/tifftype"
)

var setsBySpace = map[Space]*Set{
	TIFF:    TIFFSet,
	Exif:    ExifSet,
	GPS:     GPSSet,
	Interop: InteropSet,
	GeoTIFF: GeoKeySet,
	Aperio:  AperioSet,
	NDPI:    NDPISet,
	ImageJ:  ImageJSet,
}

// SetFor returns the registered Set for a Space, or nil for Unknown and any
// space without a registered set (private maker-note spaces, for example).
func SetFor(space Space) *Set {
	return setsBySpace[space]
}

// Describe looks up a tag's Descriptor within a single space. It returns
// nil for an unregistered tag: unknown tags are not an error anywhere in
// this package, only in the reader/writer where preservation policy
// applies.
func Describe(space Space, tag tifftype.Tag) *Descriptor {
	set := SetFor(space)
	if set == nil {
		return nil
	}
	return set.ByTag(tag)
}

// Resolve looks up a symbolic tag name against the given space, then the
// standard fallback chain (TIFF, Exif, GPS, Interop, GeoTIFF, Aperio,
// NDPI, ImageJ), and finally accepts a raw numeric tag ("0x87AF" or
// "34735").
func Resolve(symbol string, preferred Space) (tifftype.Tag, *Descriptor, Space, bool) {
	tried := map[Space]bool{}
	if set := SetFor(preferred); set != nil {
		tried[preferred] = true
		if desc := set.ByName(symbol); desc != nil {
			return desc.Tag, desc, preferred, true
		}
	}
	for _, space := range fallbackOrder {
		if tried[space] {
			continue
		}
		set := SetFor(space)
		if set == nil {
			continue
		}
		if desc := set.ByName(symbol); desc != nil {
			return desc.Tag, desc, space, true
		}
	}
	if tag, ok := parseNumericTag(symbol); ok {
		return tag, Describe(preferred, tag), preferred, true
	}
	return 0, nil, preferred, false
}

func parseNumericTag(symbol string) (tifftype.Tag, bool) {
	s := strings.TrimSpace(symbol)
	base := 10
	if strings.HasPrefix(strings.ToLower(s), "0x") {
		base = 16
		s = s[2:]
	}
	v, err := strconv.ParseUint(s, base, 16)
	if err != nil {
		return 0, false
	}
	return tifftype.Tag(v), true
}

// ChildSpaceFor returns the tag space the registry names for the children
// of an IsIFD tag within the given parent space. It returns Unknown when
// tag has no nested-IFD descriptor in parentSpace; the reader then parses
// those children in the parent's space.
func ChildSpaceFor(parentSpace Space, tag tifftype.Tag) Space {
	if desc := Describe(parentSpace, tag); desc != nil && desc.IsIFD {
		return desc.ChildSpace
	}
	return Unknown
}

// IsIFDTag reports whether tag, interpreted within space, is a marker for
// nested IFDs — either because the registry marks it so (SubIFDs, ExifIFD,
// GPSIFD, InteropIFD) or because datatype itself is IFD/IFD8.
func IsIFDTag(space Space, tag tifftype.Tag, datatype tifftype.Datatype) bool {
	if datatype == tifftype.IFD || datatype == tifftype.IFD8 {
		return true
	}
	if desc := Describe(space, tag); desc != nil {
		return desc.IsIFD
	}
	return false
}

// ByteCountsTag returns the paired bytecount tag for an offset tag
// registered in space, and true if tag is a registered offset tag at all.
func ByteCountsTag(space Space, tag tifftype.Tag) (tifftype.Tag, bool) {
	desc := Describe(space, tag)
	if desc == nil || desc.ByteCounts == "" {
		return 0, false
	}
	pairDesc := SetFor(space).ByName(desc.ByteCounts)
	if pairDesc == nil {
		return 0, false
	}
	return pairDesc.Tag, true
}
