package tagset

import "github.com/tifftools-go/tifftools/tifftype"

// GPS private IFD tags (Exif 2.3 Annex C).
const (
	GPSVersionID    tifftype.Tag = 0x0000
	GPSLatitudeRef  tifftype.Tag = 0x0001
	GPSLatitude     tifftype.Tag = 0x0002
	GPSLongitudeRef tifftype.Tag = 0x0003
	GPSLongitude    tifftype.Tag = 0x0004
	GPSAltitudeRef  tifftype.Tag = 0x0005
	GPSAltitude     tifftype.Tag = 0x0006
	GPSTimeStamp    tifftype.Tag = 0x0007
	GPSSatellites   tifftype.Tag = 0x0008
	GPSStatus       tifftype.Tag = 0x0009
	GPSMapDatum     tifftype.Tag = 0x0012
	GPSDateStamp    tifftype.Tag = 0x001D
)

var gpsDescriptors = []*Descriptor{
	d(GPSVersionID, "GPSVersionID", tifftype.BYTE),
	d(GPSLatitudeRef, "GPSLatitudeRef", tifftype.ASCII),
	d(GPSLatitude, "GPSLatitude", tifftype.RATIONAL),
	d(GPSLongitudeRef, "GPSLongitudeRef", tifftype.ASCII),
	d(GPSLongitude, "GPSLongitude", tifftype.RATIONAL),
	{Tag: GPSAltitudeRef, Name: "GPSAltitudeRef", Datatypes: []tifftype.Datatype{tifftype.BYTE}, Enum: map[int64]string{
		0: "AboveSeaLevel", 1: "BelowSeaLevel",
	}},
	d(GPSAltitude, "GPSAltitude", tifftype.RATIONAL),
	d(GPSTimeStamp, "GPSTimeStamp", tifftype.RATIONAL),
	d(GPSSatellites, "GPSSatellites", tifftype.ASCII),
	d(GPSStatus, "GPSStatus", tifftype.ASCII),
	d(GPSMapDatum, "GPSMapDatum", tifftype.ASCII),
	d(GPSDateStamp, "GPSDateStamp", tifftype.ASCII),
}

// GPSSet is the GPS private-IFD tag-set.
var GPSSet = newSet(GPS, gpsDescriptors)

// Interop private IFD tags.
const (
	InteropIndex   tifftype.Tag = 0x0001
	InteropVersion tifftype.Tag = 0x0002
)

var interopDescriptors = []*Descriptor{
	d(InteropIndex, "InteropIndex", tifftype.ASCII),
	d(InteropVersion, "InteropVersion", tifftype.UNDEFINED),
}

// InteropSet is the Interoperability private-IFD tag-set.
var InteropSet = newSet(Interop, interopDescriptors)
