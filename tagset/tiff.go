package tagset

import "github.com/tifftools-go/tifftools/tifftype"

// Root TIFF tags: TIFF 6.0 baseline and extended tags plus the private
// registrations (XMP, IPTC, GeoTIFF, Exif/GPS pointers) the registry needs
// offset/bytecount pairings, nested-IFD markers, and enum vocabulary for.
const (
	NewSubfileType              tifftype.Tag = 0x0FE
	SubfileType                 tifftype.Tag = 0x0FF
	ImageWidth                  tifftype.Tag = 0x100
	ImageLength                 tifftype.Tag = 0x101
	BitsPerSample               tifftype.Tag = 0x102
	Compression                 tifftype.Tag = 0x103
	PhotometricInterpretation   tifftype.Tag = 0x106
	Threshholding               tifftype.Tag = 0x107
	CellWidth                   tifftype.Tag = 0x108
	CellLength                  tifftype.Tag = 0x109
	FillOrder                   tifftype.Tag = 0x10A
	DocumentName                tifftype.Tag = 0x10D
	ImageDescription            tifftype.Tag = 0x10E
	Make                        tifftype.Tag = 0x10F
	Model                       tifftype.Tag = 0x110
	StripOffsets                tifftype.Tag = 0x111
	Orientation                 tifftype.Tag = 0x112
	SamplesPerPixel             tifftype.Tag = 0x115
	RowsPerStrip                tifftype.Tag = 0x116
	StripByteCounts             tifftype.Tag = 0x117
	MinSampleValue              tifftype.Tag = 0x118
	MaxSampleValue              tifftype.Tag = 0x119
	XResolution                 tifftype.Tag = 0x11A
	YResolution                 tifftype.Tag = 0x11B
	PlanarConfiguration         tifftype.Tag = 0x11C
	PageName                    tifftype.Tag = 0x11D
	XPosition                   tifftype.Tag = 0x11E
	YPosition                   tifftype.Tag = 0x11F
	FreeOffsets                 tifftype.Tag = 0x120
	FreeByteCounts              tifftype.Tag = 0x121
	GrayResponseUnit            tifftype.Tag = 0x122
	GrayResponseCurve           tifftype.Tag = 0x123
	T4Options                   tifftype.Tag = 0x124
	T6Options                   tifftype.Tag = 0x125
	ResolutionUnit              tifftype.Tag = 0x128
	PageNumber                  tifftype.Tag = 0x129
	TransferFunction            tifftype.Tag = 0x12D
	Software                    tifftype.Tag = 0x131
	DateTime                    tifftype.Tag = 0x132
	Artist                      tifftype.Tag = 0x13B
	HostComputer                tifftype.Tag = 0x13C
	Predictor                   tifftype.Tag = 0x13D
	WhitePoint                  tifftype.Tag = 0x13E
	PrimaryChromaticities       tifftype.Tag = 0x13F
	ColorMap                    tifftype.Tag = 0x140
	HalftoneHints               tifftype.Tag = 0x141
	TileWidth                   tifftype.Tag = 0x142
	TileLength                  tifftype.Tag = 0x143
	TileOffsets                 tifftype.Tag = 0x144
	TileByteCounts              tifftype.Tag = 0x145
	BadFaxLines                 tifftype.Tag = 0x146
	CleanFaxData                tifftype.Tag = 0x147
	ConsecutiveBadFaxLines      tifftype.Tag = 0x148
	SubIFDs                     tifftype.Tag = 0x14A
	InkSet                      tifftype.Tag = 0x14C
	InkNames                    tifftype.Tag = 0x14D
	NumberOfInks                tifftype.Tag = 0x14E
	DotRange                    tifftype.Tag = 0x150
	TargetPrinter               tifftype.Tag = 0x151
	ExtraSamples                tifftype.Tag = 0x152
	SampleFormat                tifftype.Tag = 0x153
	SMinSampleValue             tifftype.Tag = 0x154
	SMaxSampleValue             tifftype.Tag = 0x155
	TransferRange               tifftype.Tag = 0x156
	ClipPath                    tifftype.Tag = 0x157
	XClipPathUnits              tifftype.Tag = 0x158
	YClipPathUnits              tifftype.Tag = 0x159
	Indexed                     tifftype.Tag = 0x15A
	JPEGTables                  tifftype.Tag = 0x15B
	OPIProxy                    tifftype.Tag = 0x15F
	JPEGProc                    tifftype.Tag = 0x200
	JPEGInterchangeFormat       tifftype.Tag = 0x201
	JPEGInterchangeFormatLength tifftype.Tag = 0x202
	JPEGRestartInterval         tifftype.Tag = 0x203
	JPEGLosslessPredictors      tifftype.Tag = 0x205
	JPEGPointTransforms         tifftype.Tag = 0x206
	JPEGQTables                 tifftype.Tag = 0x207
	JPEGDCTables                tifftype.Tag = 0x208
	JPEGACTables                tifftype.Tag = 0x209
	YCbCrCoefficients           tifftype.Tag = 0x211
	YCbCrSubSampling            tifftype.Tag = 0x212
	YCbCrPositioning            tifftype.Tag = 0x213
	ReferenceBlackWhite         tifftype.Tag = 0x214
	XMP                         tifftype.Tag = 0x2BC
	ImageID                     tifftype.Tag = 0x800
	Copyright                   tifftype.Tag = 0x8298
	ModelPixelScaleTag          tifftype.Tag = 0x830E
	IPTC                        tifftype.Tag = 0x83BB
	ModelTiepointTag            tifftype.Tag = 0x8482
	ModelTransformationTag      tifftype.Tag = 0x85D8
	PSIR                        tifftype.Tag = 0x8649
	ExifIFD                     tifftype.Tag = 0x8769
	ICCProfile                  tifftype.Tag = 0x8773
	GeoKeyDirectoryTag          tifftype.Tag = 0x87AF
	GeoDoubleParamsTag          tifftype.Tag = 0x87B0
	GeoAsciiParamsTag           tifftype.Tag = 0x87B1
	GPSIFD                      tifftype.Tag = 0x8825
	ImageSourceData             tifftype.Tag = 0x935C
)

func d(tag tifftype.Tag, name string, types ...tifftype.Datatype) *Descriptor {
	return &Descriptor{Tag: tag, Name: name, Datatypes: types}
}

var tiffDescriptors = []*Descriptor{
	{Tag: NewSubfileType, Name: "NewSubfileType", Datatypes: []tifftype.Datatype{tifftype.LONG}, Bitfield: []BitfieldEntry{
		{Mask: 1, Name: "ReducedResolution"},
		{Mask: 2, Name: "Page"},
		{Mask: 4, Name: "TransparencyMask"},
	}},
	d(SubfileType, "SubfileType", tifftype.SHORT),
	d(ImageWidth, "ImageWidth", tifftype.SHORT, tifftype.LONG),
	d(ImageLength, "ImageLength", tifftype.SHORT, tifftype.LONG),
	d(BitsPerSample, "BitsPerSample", tifftype.SHORT),
	{Tag: Compression, Name: "Compression", Datatypes: []tifftype.Datatype{tifftype.SHORT}, Enum: map[int64]string{
		1: "Uncompressed", 2: "CCITT1D", 3: "Group3Fax", 4: "Group4Fax", 5: "LZW",
		6: "OldJPEG", 7: "JPEG", 8: "AdobeDeflate", 32773: "PackBits", 32946: "Deflate",
	}},
	{Tag: PhotometricInterpretation, Name: "PhotometricInterpretation", Datatypes: []tifftype.Datatype{tifftype.SHORT}, Enum: map[int64]string{
		0: "WhiteIsZero", 1: "BlackIsZero", 2: "RGB", 3: "Palette", 4: "TransparencyMask",
		5: "CMYK", 6: "YCbCr", 8: "CIELab",
	}},
	d(Threshholding, "Threshholding", tifftype.SHORT),
	d(CellWidth, "CellWidth", tifftype.SHORT),
	d(CellLength, "CellLength", tifftype.SHORT),
	d(FillOrder, "FillOrder", tifftype.SHORT),
	d(DocumentName, "DocumentName", tifftype.ASCII),
	d(ImageDescription, "ImageDescription", tifftype.ASCII),
	d(Make, "Make", tifftype.ASCII),
	d(Model, "Model", tifftype.ASCII),
	{Tag: StripOffsets, Name: "StripOffsets", Datatypes: []tifftype.Datatype{tifftype.SHORT, tifftype.LONG, tifftype.LONG8}, ByteCounts: "StripByteCounts"},
	{Tag: Orientation, Name: "Orientation", Datatypes: []tifftype.Datatype{tifftype.SHORT}, Enum: map[int64]string{
		1: "TopLeft", 2: "TopRight", 3: "BottomRight", 4: "BottomLeft",
		5: "LeftTop", 6: "RightTop", 7: "RightBottom", 8: "LeftBottom",
	}},
	d(SamplesPerPixel, "SamplesPerPixel", tifftype.SHORT),
	d(RowsPerStrip, "RowsPerStrip", tifftype.SHORT, tifftype.LONG),
	d(StripByteCounts, "StripByteCounts", tifftype.SHORT, tifftype.LONG, tifftype.LONG8),
	d(MinSampleValue, "MinSampleValue", tifftype.SHORT),
	d(MaxSampleValue, "MaxSampleValue", tifftype.SHORT),
	d(XResolution, "XResolution", tifftype.RATIONAL),
	d(YResolution, "YResolution", tifftype.RATIONAL),
	{Tag: PlanarConfiguration, Name: "PlanarConfiguration", Datatypes: []tifftype.Datatype{tifftype.SHORT}, Enum: map[int64]string{
		1: "Chunky", 2: "Planar",
	}},
	d(PageName, "PageName", tifftype.ASCII),
	d(XPosition, "XPosition", tifftype.RATIONAL),
	d(YPosition, "YPosition", tifftype.RATIONAL),
	{Tag: FreeOffsets, Name: "FreeOffsets", Datatypes: []tifftype.Datatype{tifftype.LONG}, ByteCounts: "FreeByteCounts"},
	d(FreeByteCounts, "FreeByteCounts", tifftype.LONG),
	d(GrayResponseUnit, "GrayResponseUnit", tifftype.SHORT),
	d(GrayResponseCurve, "GrayResponseCurve", tifftype.SHORT),
	d(T4Options, "T4Options", tifftype.LONG),
	d(T6Options, "T6Options", tifftype.LONG),
	{Tag: ResolutionUnit, Name: "ResolutionUnit", Datatypes: []tifftype.Datatype{tifftype.SHORT}, Enum: map[int64]string{
		1: "None", 2: "Inch", 3: "Centimeter",
	}},
	d(PageNumber, "PageNumber", tifftype.SHORT),
	d(TransferFunction, "TransferFunction", tifftype.SHORT),
	d(Software, "Software", tifftype.ASCII),
	d(DateTime, "DateTime", tifftype.ASCII),
	d(Artist, "Artist", tifftype.ASCII),
	d(HostComputer, "HostComputer", tifftype.ASCII),
	{Tag: Predictor, Name: "Predictor", Datatypes: []tifftype.Datatype{tifftype.SHORT}, Enum: map[int64]string{
		1: "None", 2: "Horizontal", 3: "FloatingPoint",
	}},
	d(WhitePoint, "WhitePoint", tifftype.RATIONAL),
	d(PrimaryChromaticities, "PrimaryChromaticities", tifftype.RATIONAL),
	d(ColorMap, "ColorMap", tifftype.SHORT),
	d(HalftoneHints, "HalftoneHints", tifftype.SHORT),
	d(TileWidth, "TileWidth", tifftype.SHORT, tifftype.LONG),
	d(TileLength, "TileLength", tifftype.SHORT, tifftype.LONG),
	{Tag: TileOffsets, Name: "TileOffsets", Datatypes: []tifftype.Datatype{tifftype.LONG, tifftype.LONG8}, ByteCounts: "TileByteCounts"},
	d(TileByteCounts, "TileByteCounts", tifftype.SHORT, tifftype.LONG, tifftype.LONG8),
	d(BadFaxLines, "BadFaxLines", tifftype.SHORT, tifftype.LONG),
	d(CleanFaxData, "CleanFaxData", tifftype.SHORT),
	d(ConsecutiveBadFaxLines, "ConsecutiveBadFaxLines", tifftype.SHORT, tifftype.LONG),
	{Tag: SubIFDs, Name: "SubIFDs", Datatypes: []tifftype.Datatype{tifftype.IFD, tifftype.IFD8}, IsIFD: true, ChildSpace: TIFF, AltNames: []string{"SubIFD"}},
	d(InkSet, "InkSet", tifftype.SHORT),
	d(InkNames, "InkNames", tifftype.ASCII),
	d(NumberOfInks, "NumberOfInks", tifftype.SHORT),
	d(DotRange, "DotRange", tifftype.SHORT, tifftype.BYTE),
	d(TargetPrinter, "TargetPrinter", tifftype.ASCII),
	d(ExtraSamples, "ExtraSamples", tifftype.SHORT),
	{Tag: SampleFormat, Name: "SampleFormat", Datatypes: []tifftype.Datatype{tifftype.SHORT}, Enum: map[int64]string{
		1: "UnsignedInteger", 2: "SignedInteger", 3: "IEEEFloat", 4: "Undefined",
	}},
	d(SMinSampleValue, "SMinSampleValue", tifftype.SHORT),
	d(SMaxSampleValue, "SMaxSampleValue", tifftype.SHORT),
	d(TransferRange, "TransferRange", tifftype.SHORT),
	d(ClipPath, "ClipPath", tifftype.BYTE),
	d(XClipPathUnits, "XClipPathUnits", tifftype.SLONG),
	d(YClipPathUnits, "YClipPathUnits", tifftype.SLONG),
	d(Indexed, "Indexed", tifftype.SHORT),
	d(JPEGTables, "JPEGTables", tifftype.UNDEFINED),
	d(OPIProxy, "OPIProxy", tifftype.SHORT),
	d(JPEGProc, "JPEGProc", tifftype.LONG),
	{Tag: JPEGInterchangeFormat, Name: "JPEGInterchangeFormat", Datatypes: []tifftype.Datatype{tifftype.LONG}, ByteCounts: "JPEGInterchangeFormatLength"},
	d(JPEGInterchangeFormatLength, "JPEGInterchangeFormatLength", tifftype.LONG),
	d(JPEGRestartInterval, "JPEGRestartInterval", tifftype.SHORT),
	d(JPEGLosslessPredictors, "JPEGLosslessPredictors", tifftype.SHORT),
	d(JPEGPointTransforms, "JPEGPointTransforms", tifftype.SHORT),
	d(JPEGQTables, "JPEGQTables", tifftype.LONG),
	d(JPEGDCTables, "JPEGDCTables", tifftype.LONG),
	d(JPEGACTables, "JPEGACTables", tifftype.LONG),
	d(YCbCrCoefficients, "YCbCrCoefficients", tifftype.RATIONAL),
	d(YCbCrSubSampling, "YCbCrSubSampling", tifftype.SHORT),
	{Tag: YCbCrPositioning, Name: "YCbCrPositioning", Datatypes: []tifftype.Datatype{tifftype.SHORT}, Enum: map[int64]string{
		1: "Centered", 2: "Cosited",
	}},
	d(ReferenceBlackWhite, "ReferenceBlackWhite", tifftype.RATIONAL),
	d(XMP, "XMP", tifftype.BYTE),
	d(ImageID, "ImageID", tifftype.ASCII),
	d(Copyright, "Copyright", tifftype.ASCII),
	d(ModelPixelScaleTag, "ModelPixelScaleTag", tifftype.DOUBLE),
	d(IPTC, "IPTC", tifftype.UNDEFINED, tifftype.LONG),
	d(ModelTiepointTag, "ModelTiepointTag", tifftype.DOUBLE),
	d(ModelTransformationTag, "ModelTransformationTag", tifftype.DOUBLE),
	d(PSIR, "PSIR", tifftype.UNDEFINED, tifftype.BYTE),
	{Tag: ExifIFD, Name: "EXIFIFD", Datatypes: []tifftype.Datatype{tifftype.LONG, tifftype.IFD, tifftype.IFD8}, IsIFD: true, ChildSpace: Exif, AltNames: []string{"Exif", "ExifIFD"}},
	d(ICCProfile, "ICCProfile", tifftype.UNDEFINED),
	d(GeoKeyDirectoryTag, "GeoKeyDirectoryTag", tifftype.SHORT),
	d(GeoDoubleParamsTag, "GeoDoubleParamsTag", tifftype.DOUBLE),
	d(GeoAsciiParamsTag, "GeoAsciiParamsTag", tifftype.ASCII),
	{Tag: GPSIFD, Name: "GPSIFD", Datatypes: []tifftype.Datatype{tifftype.LONG, tifftype.IFD, tifftype.IFD8}, IsIFD: true, ChildSpace: GPS, AltNames: []string{"GPS"}},
	d(ImageSourceData, "ImageSourceData", tifftype.UNDEFINED),
}

// TIFFSet is the root TIFF tag-set, carrying the registry metadata (enum,
// bitfield, isIFD, bytecounts) the reader and writer both consult.
var TIFFSet = newSet(TIFF, tiffDescriptors)
