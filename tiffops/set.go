package tiffops

import (
	"encoding/binary"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/tifftools-go/tifftools/tagset"
	"github.com/tifftools-go/tifftools/tiff"
	"github.com/tifftools-go/tifftools/tifftype"
)

// SetDirective is one --set directive: a tag specification plus its value
// string. A value starting with "@" names a file whose contents become the
// raw payload.
type SetDirective struct {
	Spec  string
	Value string
}

// SetFromDirective is one --setfrom directive: the tag entry (datatype,
// count, and payload) is copied from the first IFD of Path.
type SetFromDirective struct {
	Spec string
	Path string
}

// SetOptions configures a Set call.
type SetOptions struct {
	Overwrite bool

	Writer tiff.Options
}

// Set reads source, applies the unset, set, and setfrom directives in that
// order, and writes the edited model to output (or back over source when
// output is empty, which requires Overwrite). Tag specifications take the
// form NAME[:Datatype][,ifd-selector...], where the selector list
// alternates a top-level IFD index with an optional [Tag:]subifd index
// step down into nested directories.
func Set(sourcePath, outputPath string, setlist []SetDirective, unsetlist []string, setfromlist []SetFromDirective, opts SetOptions) error {
	if outputPath == "" {
		outputPath = sourcePath
	}

	src, err := openSource(sourcePath)
	if err != nil {
		return err
	}
	defer src.Close()
	info := src.info
	if len(info.IFDs) == 0 {
		return &tiff.FormatError{Op: "set", Message: "source has no IFDs"}
	}

	for _, spec := range unsetlist {
		target, err := resolveTagSpec(info, spec)
		if err != nil {
			return err
		}
		if !target.node.Unset(target.tag) {
			log.Printf("unset: tag %s is not present", spec)
			info.AddWarning("unset: tag not present", target.tag)
		}
	}

	for _, directive := range setlist {
		target, err := resolveTagSpec(info, directive.Spec)
		if err != nil {
			return err
		}
		f, err := buildSetField(target, directive.Value, info.Order)
		if err != nil {
			return err
		}
		target.node.Set(f)
	}

	// setfrom sources must stay open until the write has streamed any
	// copied offset/bytecount payloads out of them.
	var fromSrcs []*source
	defer func() { closeSources(fromSrcs) }()
	for _, directive := range setfromlist {
		from, err := openSource(directive.Path)
		if err != nil {
			return err
		}
		fromSrcs = append(fromSrcs, from)
		target, err := resolveTagSpec(info, directive.Spec)
		if err != nil {
			return err
		}
		if len(from.info.IFDs) == 0 {
			return &tiff.FormatError{Op: "setfrom", Message: "source has no IFDs: " + directive.Path}
		}
		copied := from.info.IFDs[0].Find(target.tag)
		if copied == nil {
			log.Printf("setfrom: tag %s is not in %s", directive.Spec, directive.Path)
			info.AddWarning("setfrom: tag not present in "+directive.Path, target.tag)
			continue
		}
		f := *copied
		if from.info.Order != info.Order && !f.IsNested() {
			f.Data = tiff.ConvertOrder(f.Data, f.Datatype, from.info.Order, info.Order)
		}
		target.node.Set(f)
	}

	return tiff.NewWriter(opts.Writer).WriteFile(info, outputPath, opts.Overwrite)
}

// tagTarget is a resolved tag specification: the IFD it addresses, the tag
// within it, its registry descriptor (nil for unknown numeric tags), and
// an explicit datatype override (0 when the spec carried none).
type tagTarget struct {
	node     *tiff.IFDNode
	space    tagset.Space
	tag      tifftype.Tag
	desc     *tagset.Descriptor
	datatype tifftype.Datatype
}

func resolveTagSpec(info *tiff.Info, spec string) (*tagTarget, error) {
	parts := strings.Split(spec, ",")
	namePart := parts[0]

	node, space, err := selectIFD(info, parts[1:])
	if err != nil {
		return nil, err
	}

	var override tifftype.Datatype
	if i := strings.IndexByte(namePart, ':'); i >= 0 {
		dt, ok := parseDatatypeName(namePart[i+1:])
		if !ok {
			return nil, &tiff.UserError{Message: "unknown datatype " + namePart[i+1:]}
		}
		override = dt
		namePart = namePart[:i]
	}

	tag, desc, resolvedSpace, ok := tagset.Resolve(namePart, space)
	if !ok {
		return nil, &tiff.UserError{Message: "unknown tag " + namePart}
	}
	return &tagTarget{node: node, space: resolvedSpace, tag: tag, desc: desc, datatype: override}, nil
}

// selectIFD walks an IFD selector list: an index into the top-level list,
// then optionally "[Tag:]n" picking the n-th chain under a nested-IFD tag,
// then an index into that chain, and so on.
func selectIFD(info *tiff.Info, selectors []string) (*tiff.IFDNode, tagset.Space, error) {
	space := tagset.TIFF
	nodes := info.IFDs
	node := info.IFDs[0]
	for len(selectors) > 0 {
		idx, err := strconv.Atoi(strings.TrimSpace(selectors[0]))
		if err != nil || idx < 0 || idx >= len(nodes) {
			return nil, space, &tiff.UserError{Message: "IFD index out of range: " + selectors[0]}
		}
		node = nodes[idx]
		selectors = selectors[1:]
		if len(selectors) == 0 {
			break
		}

		tagName, chainSpec := "SubIFD", selectors[0]
		if i := strings.IndexByte(chainSpec, ':'); i >= 0 {
			tagName, chainSpec = chainSpec[:i], chainSpec[i+1:]
		}
		tag, desc, _, ok := tagset.Resolve(tagName, space)
		if !ok {
			return nil, space, &tiff.UserError{Message: "unknown tag " + tagName + " in IFD selector"}
		}
		f := node.Find(tag)
		if f == nil || !f.IsNested() {
			return nil, space, &tiff.UserError{Message: tagName + " has no nested IFDs here"}
		}
		chain, err := strconv.Atoi(strings.TrimSpace(chainSpec))
		if err != nil || chain < 0 || chain >= len(f.SubIFDs) {
			return nil, space, &tiff.UserError{Message: "SubIFD index out of range: " + chainSpec}
		}
		nodes = flattenChain(f.SubIFDs[chain])
		node = nodes[0]
		if desc != nil && desc.ChildSpace != tagset.Unknown {
			space = desc.ChildSpace
		}
		selectors = selectors[1:]
	}
	return node, space, nil
}

func flattenChain(head *tiff.IFDNode) []*tiff.IFDNode {
	var out []*tiff.IFDNode
	for n := head; n != nil; n = n.Next {
		out = append(out, n)
	}
	return out
}

// buildSetField turns a --set value string into a Field for the target
// tag: an "@path" value is a raw file payload; everything else goes
// through the registry-aware value parser.
func buildSetField(target *tagTarget, value string, order binary.ByteOrder) (tiff.Field, error) {
	if strings.HasPrefix(value, "@") {
		data, err := os.ReadFile(value[1:])
		if err != nil {
			return tiff.Field{}, err
		}
		dt := target.datatype
		if dt == 0 {
			dt = tifftype.UNDEFINED
		}
		if dt == tifftype.ASCII && (len(data) == 0 || data[len(data)-1] != 0) {
			data = append(data, 0)
		}
		size := uint64(dt.Size())
		if size == 0 || uint64(len(data))%size != 0 {
			return tiff.Field{}, &tiff.UserError{Message: "file payload length does not fit datatype " + dt.Name()}
		}
		return tiff.Field{Tag: target.tag, Datatype: dt, Count: uint64(len(data)) / size, Data: data}, nil
	}

	dt, data, count, err := ParseValueSpec(target.desc, target.datatype, order, value)
	if err != nil {
		return tiff.Field{}, err
	}
	return tiff.Field{Tag: target.tag, Datatype: dt, Count: count, Data: data}, nil
}

func parseDatatypeName(name string) (tifftype.Datatype, bool) {
	name = strings.TrimSpace(name)
	for _, dt := range []tifftype.Datatype{
		tifftype.BYTE, tifftype.ASCII, tifftype.SHORT, tifftype.LONG,
		tifftype.RATIONAL, tifftype.SBYTE, tifftype.UNDEFINED,
		tifftype.SSHORT, tifftype.SLONG, tifftype.SRATIONAL,
		tifftype.FLOAT, tifftype.DOUBLE, tifftype.IFD,
		tifftype.LONG8, tifftype.SLONG8, tifftype.IFD8,
	} {
		if strings.EqualFold(dt.Name(), name) {
			return dt, true
		}
	}
	if v, err := strconv.ParseUint(name, 0, 16); err == nil {
		dt := tifftype.Datatype(v)
		if dt.Known() {
			return dt, true
		}
	}
	return 0, false
}
