package tagset

import "github.com/tifftools-go/tifftools/tifftype"

// GeoTIFF GeoKeys are not TIFF tags: they are pseudo-tags packed into the
// GeoKeyDirectoryTag/GeoDoubleParamsTag/GeoAsciiParamsTag payload, each
// entry being a (KeyID, TIFFTagLocation, Count, Value) quadruplet. They
// are modeled as their own Set so symbolic lookup and dump rendering
// treat them like any other tag namespace.
const (
	GTModelType          tifftype.Tag = 1024
	GTRasterType         tifftype.Tag = 1025
	GTCitation           tifftype.Tag = 1026
	GeographicType       tifftype.Tag = 2048
	GeogCitation         tifftype.Tag = 2049
	GeogGeodeticDatum    tifftype.Tag = 2050
	GeogPrimeMeridian    tifftype.Tag = 2051
	GeogLinearUnits      tifftype.Tag = 2052
	GeogAngularUnits     tifftype.Tag = 2054
	GeogEllipsoid        tifftype.Tag = 2056
	GeogSemiMajorAxis    tifftype.Tag = 2057
	GeogSemiMinorAxis    tifftype.Tag = 2058
	GeogInvFlattening    tifftype.Tag = 2059
	ProjectedCSType      tifftype.Tag = 3072
	PCSCitation          tifftype.Tag = 3073
	Projection           tifftype.Tag = 3074
	ProjCoordTrans       tifftype.Tag = 3075
	ProjLinearUnits      tifftype.Tag = 3076
	ProjStdParallel1     tifftype.Tag = 3078
	ProjStdParallel2     tifftype.Tag = 3079
	ProjNatOriginLong    tifftype.Tag = 3080
	ProjNatOriginLat     tifftype.Tag = 3081
	ProjFalseEasting     tifftype.Tag = 3082
	ProjFalseNorthing    tifftype.Tag = 3083
	ProjCenterLong       tifftype.Tag = 3088
	ProjCenterLat        tifftype.Tag = 3089
	ProjScaleAtNatOrigin tifftype.Tag = 3092
	VerticalCSType       tifftype.Tag = 4096
	VerticalCitation     tifftype.Tag = 4097
	VerticalDatum        tifftype.Tag = 4098
	VerticalUnits        tifftype.Tag = 4099
)

var geoKeyDescriptors = []*Descriptor{
	d(GTModelType, "GTModelType", tifftype.SHORT),
	d(GTRasterType, "GTRasterType", tifftype.SHORT),
	d(GTCitation, "GTCitation", tifftype.ASCII),
	d(GeographicType, "GeographicType", tifftype.SHORT),
	d(GeogCitation, "GeogCitation", tifftype.ASCII),
	d(GeogGeodeticDatum, "GeogGeodeticDatum", tifftype.SHORT),
	d(GeogPrimeMeridian, "GeogPrimeMeridian", tifftype.SHORT),
	d(GeogLinearUnits, "GeogLinearUnits", tifftype.SHORT),
	d(GeogAngularUnits, "GeogAngularUnits", tifftype.SHORT),
	d(GeogEllipsoid, "GeogEllipsoid", tifftype.SHORT),
	d(GeogSemiMajorAxis, "GeogSemiMajorAxis", tifftype.DOUBLE),
	d(GeogSemiMinorAxis, "GeogSemiMinorAxis", tifftype.DOUBLE),
	d(GeogInvFlattening, "GeogInvFlattening", tifftype.DOUBLE),
	d(ProjectedCSType, "ProjectedCSType", tifftype.SHORT),
	d(PCSCitation, "PCSCitation", tifftype.ASCII),
	d(Projection, "Projection", tifftype.SHORT),
	d(ProjCoordTrans, "ProjCoordTrans", tifftype.SHORT),
	d(ProjLinearUnits, "ProjLinearUnits", tifftype.SHORT),
	d(ProjStdParallel1, "ProjStdParallel1", tifftype.DOUBLE),
	d(ProjStdParallel2, "ProjStdParallel2", tifftype.DOUBLE),
	d(ProjNatOriginLong, "ProjNatOriginLong", tifftype.DOUBLE),
	d(ProjNatOriginLat, "ProjNatOriginLat", tifftype.DOUBLE),
	d(ProjFalseEasting, "ProjFalseEasting", tifftype.DOUBLE),
	d(ProjFalseNorthing, "ProjFalseNorthing", tifftype.DOUBLE),
	d(ProjCenterLong, "ProjCenterLong", tifftype.DOUBLE),
	d(ProjCenterLat, "ProjCenterLat", tifftype.DOUBLE),
	d(ProjScaleAtNatOrigin, "ProjScaleAtNatOrigin", tifftype.DOUBLE),
	d(VerticalCSType, "VerticalCSType", tifftype.SHORT),
	d(VerticalCitation, "VerticalCitation", tifftype.ASCII),
	d(VerticalDatum, "VerticalDatum", tifftype.SHORT),
	d(VerticalUnits, "VerticalUnits", tifftype.SHORT),
}

// GeoKeySet is the GeoTIFF GeoKey pseudo-tag set.
var GeoKeySet = newSet(GeoTIFF, geoKeyDescriptors)

// GeoKeyEntry is one decoded (KeyID, TIFFTagLocation, Count, Value) record
// from a GeoKeyDirectoryTag payload.
type GeoKeyEntry struct {
	KeyID           uint16
	TIFFTagLocation uint16
	Count           uint16
	ValueOffset     uint16
}
