// Package cproject reads and mutates Eclipse CDT build descriptors. The
// descriptors are kept as generic element trees so unknown plug-in content
// survives a load, mutate and save cycle.
package cproject

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"os"
	"strings"

	"github.com/samber/lo"
)

// prolog precedes every serialized descriptor, matching the header written by
// Eclipse itself.
const prolog = `<?xml version="1.0" encoding="UTF-8" standalone="no"?><?fileVersion 4.0.0?>`

// A Descriptor is a parsed Eclipse CDT build descriptor.
type Descriptor struct {
	root    *Node
	options map[string][]*Node
	sources []*Node
}

// Load will read and parse the descriptor at the given path.
func Load(path string) (*Descriptor, error) {
	// read file
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return Parse(data)
}

// Parse will parse the provided descriptor document.
func Parse(data []byte) (*Descriptor, error) {
	// prepare a lenient decoder, as Eclipse writes entities the strict parser
	// rejects
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.Strict = false

	// decode the root element, skipping the prolog
	var root *Node
	for root == nil {
		// get next token
		tok, err := dec.Token()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, err
		}

		// decode first element
		if start, ok := tok.(xml.StartElement); ok {
			root, err = decodeNode(dec, start)
			if err != nil {
				return nil, err
			}
		}
	}

	// check root
	if root == nil {
		return nil, errors.New("empty descriptor")
	}

	// prepare descriptor
	d := &Descriptor{
		root:    root,
		options: map[string][]*Node{},
	}

	// index option nodes by class and collect source entry lists
	root.Walk(func(n *Node) bool {
		if n.Name == "option" {
			if class := n.Attr("superClass"); class != "" {
				d.options[class] = append(d.options[class], n)
			}
		}
		if n.Name == "sourceEntries" {
			d.sources = append(d.sources, n)
		}
		return true
	})

	return d, nil
}

// Options returns all option nodes tagged with the given superClass.
func (d *Descriptor) Options(superClass string) []*Node {
	return d.options[superClass]
}

// OptionValues returns the values attached to the first option node tagged
// with the given superClass.
func (d *Descriptor) OptionValues(superClass string) []string {
	// get option nodes
	options := d.options[superClass]
	if len(options) == 0 {
		return nil
	}

	// collect values
	return lo.Map(options[0].Children, func(child *Node, _ int) string {
		return child.Attr("value")
	})
}

// AddOptionValues appends the provided values to every option node tagged with
// the given superClass. Quoted values are stored in double quotes, following
// the convention the IDE uses for paths, while macros stay bare. Values
// already present are skipped, so repeated calls insert each value exactly
// once. The values that were actually added are returned.
func (d *Descriptor) AddOptionValues(superClass string, quoted bool, values ...string) []string {
	// prepare result
	var added []string

	// go through all matching option nodes
	for _, option := range d.options[superClass] {
		// list present values
		present := lo.Map(option.Children, func(child *Node, _ int) string {
			return child.Attr("value")
		})

		// append missing values
		for _, value := range values {
			// format candidate
			candidate := value
			if quoted {
				candidate = `"` + value + `"`
			}

			// skip present values
			if lo.Contains(present, candidate) {
				continue
			}

			// clone the first value node to inherit its shape, or synthesize a
			// standard one for empty options
			var entry *Node
			if len(option.Children) > 0 {
				entry = option.Children[0].Clone()
			} else {
				entry = &Node{Name: "listOptionValue"}
				entry.SetAttr("builtIn", "false")
			}

			// set value and append entry
			entry.SetAttr("value", candidate)
			option.Children = append(option.Children, entry)

			// track value
			present = append(present, candidate)
			added = append(added, value)
		}
	}

	return lo.Uniq(added)
}

// AddSourceEntries appends source folder entries with the given names to every
// source entry list in the descriptor. Entries already present are skipped.
// The names that were actually added are returned.
func (d *Descriptor) AddSourceEntries(names ...string) []string {
	// prepare result
	var added []string

	// go through all source entry lists
	for _, source := range d.sources {
		// list present names
		present := lo.Map(source.Children, func(child *Node, _ int) string {
			return child.Attr("name")
		})

		// append missing entries
		for _, name := range names {
			// skip present names
			if lo.Contains(present, name) {
				continue
			}

			// clone the first entry to inherit its shape, or synthesize a
			// standard one for empty lists
			var entry *Node
			if len(source.Children) > 0 {
				entry = source.Children[0].Clone()
			} else {
				entry = &Node{Name: "entry"}
				entry.SetAttr("flags", "VALUE_WORKSPACE_PATH|RESOLVED")
				entry.SetAttr("kind", "sourcePath")
			}

			// set name and append entry
			entry.SetAttr("name", name)
			source.Children = append(source.Children, entry)

			// track name
			present = append(present, name)
			added = append(added, name)
		}
	}

	return lo.Uniq(added)
}

// Encode will serialize the descriptor using the escaping conventions of the
// IDE: double quotes inside attribute values become &quot; while ampersands
// are left alone so pre-escaped entities survive a round trip.
func (d *Descriptor) Encode() []byte {
	// write prolog and root element
	var buf bytes.Buffer
	buf.WriteString(prolog)
	buf.WriteString("\n")
	writeNode(&buf, d.root, 0)

	return buf.Bytes()
}

// WriteFile will serialize the descriptor to the given path.
func (d *Descriptor) WriteFile(path string) error {
	return os.WriteFile(path, d.Encode(), 0644)
}

var attrEscaper = strings.NewReplacer(`"`, "&quot;", "<", "&lt;", ">", "&gt;")

var textEscaper = strings.NewReplacer("<", "&lt;", ">", "&gt;")

func writeNode(buf *bytes.Buffer, node *Node, depth int) {
	// write opening tag
	buf.WriteString(strings.Repeat("\t", depth))
	buf.WriteByte('<')
	buf.WriteString(node.Name)

	// write attributes
	for _, attr := range node.Attrs {
		buf.WriteByte(' ')
		buf.WriteString(attr.Name.Local)
		buf.WriteString(`="`)
		buf.WriteString(attrEscaper.Replace(attr.Value))
		buf.WriteByte('"')
	}

	// close empty elements inline
	if len(node.Children) == 0 && node.Text == "" {
		buf.WriteString("/>\n")
		return
	}

	// write content
	buf.WriteByte('>')
	if node.Text != "" {
		buf.WriteString(textEscaper.Replace(node.Text))
	}
	if len(node.Children) > 0 {
		buf.WriteByte('\n')
		for _, child := range node.Children {
			writeNode(buf, child, depth+1)
		}
		buf.WriteString(strings.Repeat("\t", depth))
	}

	// write closing tag
	buf.WriteString("</")
	buf.WriteString(node.Name)
	buf.WriteString(">\n")
}
