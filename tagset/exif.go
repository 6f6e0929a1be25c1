package tagset

import "github.com/tifftools-go/tifftools/tifftype"

// A representative subset of Exif 2.3's private IFD tags, enough for
// `dump`/`set` symbol resolution over the Exif pointer's children.
const (
	ExposureTime             tifftype.Tag = 0x829A
	FNumber                  tifftype.Tag = 0x829D
	ExposureProgram          tifftype.Tag = 0x8822
	ISOSpeedRatings          tifftype.Tag = 0x8827
	ExifVersion              tifftype.Tag = 0x9000
	DateTimeOriginal         tifftype.Tag = 0x9003
	DateTimeDigitized        tifftype.Tag = 0x9004
	ComponentsConfiguration  tifftype.Tag = 0x9101
	ShutterSpeedValue        tifftype.Tag = 0x9201
	ApertureValue            tifftype.Tag = 0x9202
	BrightnessValue          tifftype.Tag = 0x9203
	ExposureBiasValue        tifftype.Tag = 0x9204
	MeteringMode             tifftype.Tag = 0x9207
	Flash                    tifftype.Tag = 0x9209
	FocalLength              tifftype.Tag = 0x920A
	MakerNote                tifftype.Tag = 0x927C
	UserComment              tifftype.Tag = 0x9286
	FlashpixVersion          tifftype.Tag = 0xA000
	ColorSpace               tifftype.Tag = 0xA001
	PixelXDimension          tifftype.Tag = 0xA002
	PixelYDimension          tifftype.Tag = 0xA003
	InteropIFD               tifftype.Tag = 0xA005
	FocalPlaneXResolution    tifftype.Tag = 0xA20E
	FocalPlaneYResolution    tifftype.Tag = 0xA20F
	FocalPlaneResolutionUnit tifftype.Tag = 0xA210
	ExposureMode             tifftype.Tag = 0xA402
	WhiteBalance             tifftype.Tag = 0xA403
	LensModel                tifftype.Tag = 0xA434
)

var exifDescriptors = []*Descriptor{
	d(ExposureTime, "ExposureTime", tifftype.RATIONAL),
	d(FNumber, "FNumber", tifftype.RATIONAL),
	d(ExposureProgram, "ExposureProgram", tifftype.SHORT),
	d(ISOSpeedRatings, "ISOSpeedRatings", tifftype.SHORT),
	d(ExifVersion, "ExifVersion", tifftype.UNDEFINED),
	d(DateTimeOriginal, "DateTimeOriginal", tifftype.ASCII),
	d(DateTimeDigitized, "DateTimeDigitized", tifftype.ASCII),
	d(ComponentsConfiguration, "ComponentsConfiguration", tifftype.UNDEFINED),
	d(ShutterSpeedValue, "ShutterSpeedValue", tifftype.SRATIONAL),
	d(ApertureValue, "ApertureValue", tifftype.RATIONAL),
	d(BrightnessValue, "BrightnessValue", tifftype.SRATIONAL),
	d(ExposureBiasValue, "ExposureBiasValue", tifftype.SRATIONAL),
	{Tag: MeteringMode, Name: "MeteringMode", Datatypes: []tifftype.Datatype{tifftype.SHORT}, Enum: map[int64]string{
		0: "Unknown", 1: "Average", 2: "CenterWeightedAverage", 3: "Spot", 5: "Pattern",
	}},
	d(Flash, "Flash", tifftype.SHORT),
	d(FocalLength, "FocalLength", tifftype.RATIONAL),
	{Tag: MakerNote, Name: "MakerNote", Datatypes: []tifftype.Datatype{tifftype.UNDEFINED}, Lossy: true},
	d(UserComment, "UserComment", tifftype.UNDEFINED),
	d(FlashpixVersion, "FlashpixVersion", tifftype.UNDEFINED),
	d(ColorSpace, "ColorSpace", tifftype.SHORT),
	d(PixelXDimension, "PixelXDimension", tifftype.SHORT, tifftype.LONG),
	d(PixelYDimension, "PixelYDimension", tifftype.SHORT, tifftype.LONG),
	{Tag: InteropIFD, Name: "InteropIFD", Datatypes: []tifftype.Datatype{tifftype.LONG, tifftype.IFD, tifftype.IFD8}, IsIFD: true, ChildSpace: Interop, AltNames: []string{"InteroperabilityIFD"}},
	d(FocalPlaneXResolution, "FocalPlaneXResolution", tifftype.RATIONAL),
	d(FocalPlaneYResolution, "FocalPlaneYResolution", tifftype.RATIONAL),
	d(FocalPlaneResolutionUnit, "FocalPlaneResolutionUnit", tifftype.SHORT),
	d(ExposureMode, "ExposureMode", tifftype.SHORT),
	{Tag: WhiteBalance, Name: "WhiteBalance", Datatypes: []tifftype.Datatype{tifftype.SHORT}, Enum: map[int64]string{
		0: "Auto", 1: "Manual",
	}},
	d(LensModel, "LensModel", tifftype.ASCII),
}

// ExifSet is the Exif private-IFD tag-set.
var ExifSet = newSet(Exif, exifDescriptors)
