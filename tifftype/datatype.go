// Package tifftype defines the closed set of TIFF field datatypes and the
// bare Tag identifier type shared by the constants registry and the core
// model. It holds no file-format logic of its own.
package tifftype

import "fmt"

// Datatype is one of the TIFF field datatypes: codes 1-13 are defined by
// TIFF 6.0 and its supplements; 16-18 are added by the BigTIFF extension.
type Datatype uint16

const (
	BYTE      Datatype = 1
	ASCII     Datatype = 2
	SHORT     Datatype = 3
	LONG      Datatype = 4
	RATIONAL  Datatype = 5
	SBYTE     Datatype = 6
	UNDEFINED Datatype = 7
	SSHORT    Datatype = 8
	SLONG     Datatype = 9
	SRATIONAL Datatype = 10
	FLOAT     Datatype = 11
	DOUBLE    Datatype = 12
	IFD       Datatype = 13
	LONG8     Datatype = 16
	SLONG8    Datatype = 17
	IFD8      Datatype = 18
)

type datatypeInfo struct {
	name        string
	size        uint32
	integral    bool
	rational    bool
	float       bool
	signed      bool
	bigTiffOnly bool
	offsetLike  bool
}

var datatypeTable = map[Datatype]datatypeInfo{
	BYTE:      {name: "Byte", size: 1, integral: true},
	ASCII:     {name: "ASCII", size: 1},
	SHORT:     {name: "Short", size: 2, integral: true},
	LONG:      {name: "Long", size: 4, integral: true, offsetLike: true},
	RATIONAL:  {name: "Rational", size: 8, rational: true},
	SBYTE:     {name: "SByte", size: 1, integral: true, signed: true},
	UNDEFINED: {name: "Undefined", size: 1},
	SSHORT:    {name: "SShort", size: 2, integral: true, signed: true},
	SLONG:     {name: "SLong", size: 4, integral: true, signed: true},
	SRATIONAL: {name: "SRational", size: 8, rational: true, signed: true},
	FLOAT:     {name: "Float", size: 4, float: true},
	DOUBLE:    {name: "Double", size: 8, float: true},
	IFD:       {name: "IFD", size: 4, offsetLike: true},
	LONG8:     {name: "Long8", size: 8, integral: true, bigTiffOnly: true, offsetLike: true},
	SLONG8:    {name: "SLong8", size: 8, integral: true, signed: true, bigTiffOnly: true},
	IFD8:      {name: "IFD8", size: 8, bigTiffOnly: true, offsetLike: true},
}

// Name returns the TIFF-spec name of the datatype, or "Unknown" if the code
// is not one of the 16 recognized values.
func (t Datatype) Name() string {
	if info, ok := datatypeTable[t]; ok {
		return info.name
	}
	return "Unknown"
}

// Size returns the byte size of a single element of the datatype, or 0 if
// the code is unrecognized.
func (t Datatype) Size() uint32 {
	return datatypeTable[t].size
}

// Known reports whether t is one of the 16 TIFF/BigTIFF datatype codes.
func (t Datatype) Known() bool {
	_, ok := datatypeTable[t]
	return ok
}

// IsIntegral reports whether t is one of the integer datatypes.
func (t Datatype) IsIntegral() bool {
	return datatypeTable[t].integral
}

// IsRational reports whether t is RATIONAL or SRATIONAL.
func (t Datatype) IsRational() bool {
	return datatypeTable[t].rational
}

// IsFloat reports whether t is FLOAT or DOUBLE.
func (t Datatype) IsFloat() bool {
	return datatypeTable[t].float
}

// IsSigned reports whether t's integer or rational values are signed.
func (t Datatype) IsSigned() bool {
	return datatypeTable[t].signed
}

// IsBigTIFFOnly reports whether t (LONG8, SLONG8, IFD8) can only appear in
// a BigTIFF file.
func (t Datatype) IsBigTIFFOnly() bool {
	return datatypeTable[t].bigTiffOnly
}

// IsOffsetLike reports whether t holds offset-sized values (LONG, IFD,
// LONG8, IFD8): these are the datatypes the writer may need to widen when
// promoting a file to BigTIFF.
func (t Datatype) IsOffsetLike() bool {
	return datatypeTable[t].offsetLike
}

// UnknownDatatypeError is returned by anything that must reject a closed
// enumeration violation distinctly, per the datatype table's contract.
type UnknownDatatypeError struct {
	Code Datatype
}

func (e *UnknownDatatypeError) Error() string {
	return fmt.Sprintf("tifftype: unknown datatype code %d (0x%X)", uint16(e.Code), uint16(e.Code))
}

// Tag is a raw 16-bit TIFF tag identifier. Semantic metadata (name, enum
// vocabulary, nested-IFD marker, and so on) lives in the tagset registry,
// not here: a Tag by itself is just a number, the way the wire format
// treats it.
type Tag uint16
