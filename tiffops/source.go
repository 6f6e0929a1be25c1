package tiffops

import (
	"bytes"
	"os"

	"github.com/edsrzf/mmap-go"
	"golang.org/x/sync/errgroup"

	"github.com/tifftools-go/tifftools/tiff"
)

// source is one open input file: its parsed model plus the handle (and
// mapped region, when mapping succeeded) that the model's Field.Source
// readers point into. It must stay open until every write that streams
// image data out of it has finished, which is why the commands close
// sources themselves instead of reading eagerly and letting go.
type source struct {
	path string
	info *tiff.Info
	file *os.File
	mm   mmap.MMap
}

// openSource opens and parses one TIFF file. The file is mapped read-only
// when the platform allows it, so random strip/tile fetches during a later
// write become plain memory reads; an unmappable file (zero length, or an
// exotic filesystem) falls back to ReadAt on the handle.
func openSource(path string) (*source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	s := &source{path: path, file: f}

	if mm, merr := mmap.Map(f, mmap.RDONLY, 0); merr == nil {
		s.mm = mm
		s.info, err = tiff.NewReader(bytes.NewReader(mm), int64(len(mm))).Read()
	} else {
		fi, serr := f.Stat()
		if serr != nil {
			f.Close()
			return nil, serr
		}
		s.info, err = tiff.NewReader(f, fi.Size()).Read()
	}
	if err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

func (s *source) Close() error {
	if s.mm != nil {
		s.mm.Unmap()
		s.mm = nil
	}
	return s.file.Close()
}

// openSources opens and parses several inputs concurrently, preserving the
// caller's ordering in the result. Parsing is independent per file (each
// gets its own model), so this stays within the core's no-shared-state
// contract; only the fan-out lives here.
func openSources(paths []string) ([]*source, error) {
	srcs := make([]*source, len(paths))
	var g errgroup.Group
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			s, err := openSource(path)
			if err != nil {
				return err
			}
			srcs[i] = s
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		closeSources(srcs)
		return nil, err
	}
	return srcs, nil
}

func closeSources(srcs []*source) {
	for _, s := range srcs {
		if s != nil {
			s.Close()
		}
	}
}
