package tiffops

import (
	"github.com/tifftools-go/tifftools/tiff"
)

// ConcatOptions configures a Concat call.
type ConcatOptions struct {
	Overwrite bool

	Writer tiff.Options
}

// Concat reads each source and appends their top-level IFD chains, in
// argument order, into a single output file. Source offsets are
// discarded; the writer reassigns every directory and image-data offset.
// Inputs of mixed endianness are allowed: payloads from sources whose
// byte order differs from the first input's are converted element-wise
// before the write.
func Concat(sources []string, output string, opts ConcatOptions) error {
	if len(sources) == 0 {
		return &tiff.UserError{Message: "concat needs at least one source"}
	}
	srcs, err := openSources(sources)
	if err != nil {
		return err
	}
	defer closeSources(srcs)

	merged := &tiff.Info{
		Order:      srcs[0].info.Order,
		Version:    srcs[0].info.Version,
		OffsetSize: srcs[0].info.OffsetSize,
	}
	for _, s := range srcs {
		if s.info.BigTIFF {
			merged.BigTIFF = true
		}
		merged.IFDs = append(merged.IFDs, s.info.IFDs...)
		merged.Warnings = append(merged.Warnings, s.info.Warnings...)
	}
	normalizeOrder(merged)

	return tiff.NewWriter(opts.Writer).WriteFile(merged, output, opts.Overwrite)
}

// normalizeOrder converts every IFD whose byte order differs from the
// merged root's: leaf payloads are re-packed element-wise; decoded values
// (ResolvedOffsets) are order-independent and untouched.
func normalizeOrder(info *tiff.Info) {
	_ = info.Walk(func(node *tiff.IFDNode, depth int) error {
		if node.Order == info.Order {
			return nil
		}
		for i := range node.Fields {
			f := &node.Fields[i]
			if f.IsNested() || f.Data == nil {
				continue
			}
			f.Data = tiff.ConvertOrder(f.Data, f.Datatype, node.Order, info.Order)
		}
		node.Order = info.Order
		return nil
	})
}
