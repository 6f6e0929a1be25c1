package tiffops

import (
	"log"
	"os"

	"github.com/tifftools-go/tifftools/tagset"
	"github.com/tifftools-go/tifftools/tiff"
)

// SplitOptions configures a Split call.
type SplitOptions struct {
	// SubIFDs additionally writes every IFD found under a SubIFDs tag to
	// its own file, and removes the SubIFDs tag from the parent's copy.
	// Only the SubIFDs tag itself is treated this way; EXIF and GPS IFDs
	// always stay with their parent.
	SubIFDs bool

	Overwrite bool

	Writer tiff.Options
}

// Split reads source and writes each of its top-level IFDs (and, with
// SubIFDs set, each IFD under a SubIFDs tag) to its own single-directory
// file. Output names are prefix plus a base-26 sequence of at least three
// letters plus ".tif": prefix + "aaa.tif", "aab.tif", and so on. It
// returns the paths written.
func Split(sourcePath, prefix string, opts SplitOptions) ([]string, error) {
	src, err := openSource(sourcePath)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	nodes := collectSplitNodes(src.info.IFDs, opts.SubIFDs)
	chars := suffixChars(len(nodes))
	paths := make([]string, len(nodes))
	for i := range nodes {
		paths[i] = splitName(prefix, i, chars)
	}

	if !opts.Overwrite {
		for _, p := range paths {
			if _, err := os.Stat(p); err == nil {
				return nil, &tiff.UserError{Message: "output already exists: " + p + " (use --overwrite to replace it)"}
			}
		}
	}

	w := tiff.NewWriter(opts.Writer)
	for i, node := range nodes {
		log.Printf("writing %s", paths[i])
		out := &tiff.Info{
			Order:      src.info.Order,
			BigTIFF:    src.info.BigTIFF,
			Version:    src.info.Version,
			OffsetSize: src.info.OffsetSize,
			IFDs:       []*tiff.IFDNode{detachIFD(node, opts.SubIFDs)},
		}
		if err := w.WriteFile(out, paths[i], opts.Overwrite); err != nil {
			return nil, err
		}
	}
	return paths, nil
}

// collectSplitNodes lists the IFDs Split will emit, in file order: each
// top-level IFD, then (when subifds is set) every node of every chain
// under its SubIFDs tag, recursively.
func collectSplitNodes(roots []*tiff.IFDNode, subifds bool) []*tiff.IFDNode {
	var out []*tiff.IFDNode
	var visit func(n *tiff.IFDNode)
	visit = func(n *tiff.IFDNode) {
		out = append(out, n)
		if !subifds {
			return
		}
		if f := n.Find(tagset.SubIFDs); f != nil {
			for _, head := range f.SubIFDs {
				for c := head; c != nil; c = c.Next {
					visit(c)
				}
			}
		}
	}
	for _, n := range roots {
		visit(n)
	}
	return out
}

// detachIFD returns a copy of node suitable as the sole directory of a new
// file: no successor, and (when dropSubIFDs is set) no SubIFDs tag, since
// those children are being written to files of their own.
func detachIFD(node *tiff.IFDNode, dropSubIFDs bool) *tiff.IFDNode {
	c := *node
	c.Next = nil
	if dropSubIFDs && c.Find(tagset.SubIFDs) != nil {
		fields := make([]tiff.Field, 0, len(c.Fields))
		for _, f := range c.Fields {
			if f.Tag == tagset.SubIFDs {
				continue
			}
			fields = append(fields, f)
		}
		c.Fields = fields
	}
	return &c
}

// suffixChars returns how many base-26 letters the split names need: the
// smallest width that can represent every index, but never fewer than 3.
func suffixChars(n int) int {
	chars := 1
	for capacity := 26; capacity < n; capacity *= 26 {
		chars++
	}
	if chars < 3 {
		chars = 3
	}
	return chars
}

func splitName(prefix string, num, chars int) string {
	if prefix == "" {
		prefix = "./"
	}
	suffix := ".tif"
	for i := 0; i < chars; i++ {
		suffix = string(rune('a'+num%26)) + suffix
		num /= 26
	}
	return prefix + suffix
}
