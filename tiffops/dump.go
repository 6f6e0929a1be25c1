package tiffops

import (
	"io"

	"github.com/tifftools-go/tifftools/tiff"
)

// DumpFormat selects the rendering used by Dump.
type DumpFormat uint8

const (
	DumpText DumpFormat = iota
	DumpJSON
	DumpYAML
)

// DumpOptions configures a Dump call.
type DumpOptions struct {
	Format DumpFormat

	// Max caps how many decoded values are shown per field before the
	// renderer truncates the list; 0 means unlimited.
	Max int
}

// Dump parses all of sources (concurrently, through openSources) and
// writes a human- or machine-readable rendering of their tag trees to w,
// in argument order, in one of three output modes: plain text (the
// default), JSON, and YAML.
func Dump(w io.Writer, sources []string, opts DumpOptions) error {
	srcs, err := openSources(sources)
	if err != nil {
		return err
	}
	defer closeSources(srcs)
	infos := make([]*tiff.Info, len(srcs))
	for i, s := range srcs {
		infos[i] = s.info
	}

	switch opts.Format {
	case DumpJSON:
		return RenderJSON(w, infos, opts.Max)
	case DumpYAML:
		return RenderYAML(w, infos, opts.Max)
	default:
		for i, info := range infos {
			if len(sources) > 1 {
				if _, err := io.WriteString(w, "\n=== "+sources[i]+" ===\n"); err != nil {
					return err
				}
			}
			if err := RenderText(w, info, opts.Max); err != nil {
				return err
			}
		}
		return nil
	}
}
