package tiffops

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v2"

	"github.com/tifftools-go/tifftools/tagset"
	"github.com/tifftools-go/tifftools/tifftype"

	"github.com/tifftools-go/tifftools/tiff"
)

// renderedField is the display-only projection of one tag entry, shared
// by the JSON and YAML encoders; the plain-text renderer walks the model
// directly instead.
type renderedField struct {
	Tag      string            `json:"tag" yaml:"tag"`
	Datatype string            `json:"datatype" yaml:"datatype"`
	Count    uint64            `json:"count" yaml:"count"`
	Value    []interface{}     `json:"value,omitempty" yaml:"value,omitempty"`
	Symbol   string            `json:"symbol,omitempty" yaml:"symbol,omitempty"`
	SubIFDs  [][]renderedField `json:"subIfds,omitempty" yaml:"subIfds,omitempty"`
}

// tagLabel names a tag for display: its registered symbol, or a bare
// numeric fallback when the tag is unregistered in the given space.
func tagLabel(desc *tagset.Descriptor, tag tifftype.Tag) string {
	if desc != nil {
		return desc.Name
	}
	return fmt.Sprintf("tag%d", uint16(tag))
}

func renderIFD(info *tiff.Info, node *tiff.IFDNode, max int) []renderedField {
	out := make([]renderedField, 0, len(node.Fields))
	for i := range node.Fields {
		f := &node.Fields[i]
		desc := tagset.Describe(node.Space, f.Tag)
		name := tagLabel(desc, f.Tag)

		rf := renderedField{Tag: name, Datatype: f.Datatype.Name(), Count: f.Count}
		if f.IsNested() {
			for _, child := range f.SubIFDs {
				for n := child; n != nil; n = n.Next {
					rf.SubIFDs = append(rf.SubIFDs, renderIFD(info, n, max))
				}
			}
			out = append(out, rf)
			continue
		}

		values := DecodedValues(node.Order, f)
		if max > 0 && len(values) > max {
			values = values[:max]
		}
		rf.Value = values
		if len(values) == 1 {
			rf.Symbol = SymbolicName(desc, values[0])
			if rf.Symbol == "" {
				rf.Symbol = strings.Join(BitfieldNames(desc, values[0]), "|")
			}
		}
		if f.Tag == tagset.GeoKeyDirectoryTag {
			for _, gk := range DecodeGeoKeys(info, node) {
				rf.SubIFDs = append(rf.SubIFDs, []renderedField{{Tag: geoKeyLabel(gk), Value: []interface{}{gk.Value}}})
			}
		}
		out = append(out, rf)
	}
	return out
}

// RenderJSON writes every source's decoded model as a JSON array, one
// element per source, in a shape a human or another tool can consume.
func RenderJSON(w io.Writer, infos []*tiff.Info, max int) error {
	docs := buildDocs(infos, max)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(docs)
}

// RenderYAML mirrors RenderJSON's shape through yaml.v2.
func RenderYAML(w io.Writer, infos []*tiff.Info, max int) error {
	docs := buildDocs(infos, max)
	data, err := yaml.Marshal(docs)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

type renderDoc struct {
	IFDs [][]renderedField `json:"ifds" yaml:"ifds"`
}

func buildDocs(infos []*tiff.Info, max int) []renderDoc {
	docs := make([]renderDoc, 0, len(infos))
	for _, info := range infos {
		var ifds [][]renderedField
		for _, root := range info.IFDs {
			for n := root; n != nil; n = n.Next {
				ifds = append(ifds, renderIFD(info, n, max))
			}
		}
		docs = append(docs, renderDoc{IFDs: ifds})
	}
	return docs
}

// RenderText writes the default human-readable form: a per-IFD header,
// then one line per field, recursing into SubIFDs and Next.
func RenderText(w io.Writer, info *tiff.Info, max int) error {
	for _, root := range info.IFDs {
		if err := printNode(w, info, root, max, 0); err != nil {
			return err
		}
	}
	return nil
}

func printNode(w io.Writer, info *tiff.Info, node *tiff.IFDNode, max, depth int) error {
	indent := strings.Repeat("  ", depth)
	entryWord := "entries"
	if len(node.Fields) == 1 {
		entryWord = "entry"
	}
	if _, err := fmt.Fprintf(w, "\n%s%s IFD with %d %s:\n", indent, node.Space.Name(), len(node.Fields), entryWord); err != nil {
		return err
	}
	for i := range node.Fields {
		f := &node.Fields[i]
		desc := tagset.Describe(node.Space, f.Tag)
		name := tagLabel(desc, f.Tag)
		if f.IsNested() {
			if _, err := fmt.Fprintf(w, "%s  %s (%d child IFD(s))\n", indent, name, len(f.SubIFDs)); err != nil {
				return err
			}
			for _, child := range f.SubIFDs {
				if err := printNode(w, info, child, max, depth+1); err != nil {
					return err
				}
			}
			continue
		}
		values := DecodedValues(node.Order, f)
		display := values
		truncated := false
		if max > 0 && len(display) > max {
			display = display[:max]
			truncated = true
		}
		symbol := ""
		if len(values) == 1 {
			symbol = SymbolicName(desc, values[0])
			if symbol == "" {
				symbol = strings.Join(BitfieldNames(desc, values[0]), "|")
			}
		}
		suffix := ""
		if symbol != "" {
			suffix = fmt.Sprintf(" (%s)", symbol)
		}
		if truncated {
			suffix += fmt.Sprintf(" ... (%d total)", len(values))
		}
		if _, err := fmt.Fprintf(w, "%s  %s %s[%d]: %v%s\n", indent, name, f.Datatype.Name(), f.Count, display, suffix); err != nil {
			return err
		}
		if f.Tag == tagset.GeoKeyDirectoryTag {
			for _, gk := range DecodeGeoKeys(info, node) {
				if _, err := fmt.Fprintf(w, "%s    %s: %v\n", indent, geoKeyLabel(gk), gk.Value); err != nil {
					return err
				}
			}
		}
	}
	if node.Next != nil {
		return printNode(w, info, node.Next, max, depth)
	}
	return nil
}

func geoKeyLabel(gk DecodedGeoKey) string {
	if gk.Name != "" {
		return gk.Name
	}
	return fmt.Sprintf("GeoKey(%d)", gk.KeyID)
}
