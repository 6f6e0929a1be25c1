package tiff

import (
	"fmt"

	"github.com/tifftools-go/tifftools/tifftype"
)

// FormatError reports a malformed TIFF stream: bad magic, unknown
// version, truncation, an unknown datatype on a recognized tag, a
// circular IFD reference, an invalid offset, or a bytecount-pair
// mismatch. It is always fatal to the read or write in progress.
type FormatError struct {
	Op      string
	Offset  uint64
	Message string
}

func (e *FormatError) Error() string {
	if e.Offset != 0 {
		return fmt.Sprintf("tiff: %s: %s (at offset 0x%X)", e.Op, e.Message, e.Offset)
	}
	return fmt.Sprintf("tiff: %s: %s", e.Op, e.Message)
}

// BigTiffRequiredError is returned when the caller pinned classic layout
// (Options.BigTIFF == BigTIFFForbid) but the data needs BigTIFF-only
// features or exceeds classic capacity.
type BigTiffRequiredError struct {
	Reason string
}

func (e *BigTiffRequiredError) Error() string {
	return fmt.Sprintf("tiff: BigTIFF layout required but forbidden by caller: %s", e.Reason)
}

// UserError reports a caller mistake distinct from a malformed file:
// an unknown symbolic tag name, a value that cannot parse as the
// declared datatype, conflicting set/unset directives, or an output
// path that already exists without an overwrite option.
type UserError struct {
	Message string
}

func (e *UserError) Error() string {
	return fmt.Sprintf("tifftools: %s", e.Message)
}

func errBadMagic(offset uint64) error {
	return &FormatError{Op: "read header", Offset: offset, Message: "bad byte-order magic (expected \"II\" or \"MM\")"}
}

func errUnknownVersion(version uint16, offset uint64) error {
	return &FormatError{Op: "read header", Offset: offset, Message: fmt.Sprintf("unknown TIFF version %d (expected 42 or 43)", version)}
}

func errTruncated(op string, offset uint64) error {
	return &FormatError{Op: op, Offset: offset, Message: "truncated file"}
}

func errUnknownDatatype(op string, tag tifftype.Tag, code tifftype.Datatype, offset uint64) error {
	return &FormatError{Op: op, Offset: offset, Message: fmt.Sprintf("tag %d (0x%X): unknown datatype code %d", tag, uint16(tag), uint16(code))}
}

func errCircularReference(offset uint64) error {
	return &FormatError{Op: "walk IFD chain", Offset: offset, Message: "circular IFD reference"}
}

func errInvalidOffset(op string, offset uint64) error {
	return &FormatError{Op: op, Offset: offset, Message: "offset beyond end of file"}
}

func errMissingByteCountPair(op string, tag tifftype.Tag) error {
	return &FormatError{Op: op, Message: fmt.Sprintf("tag %d (0x%X): missing paired bytecount tag", tag, uint16(tag))}
}

func errDepthExceeded(op string) error {
	return &FormatError{Op: op, Message: fmt.Sprintf("SubIFD nesting exceeds maximum depth %d", MaxNestingDepth)}
}
