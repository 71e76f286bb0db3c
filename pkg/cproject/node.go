package cproject

import (
	"encoding/xml"
	"strings"
)

// A Node is a single element of a descriptor document. Children keep their
// document order so a serialized descriptor stays diffable against the file it
// was parsed from.
type Node struct {
	Name     string
	Attrs    []xml.Attr
	Text     string
	Children []*Node
}

// Attr returns the value of the named attribute or an empty string.
func (n *Node) Attr(name string) string {
	for _, attr := range n.Attrs {
		if attr.Name.Local == name {
			return attr.Value
		}
	}

	return ""
}

// SetAttr sets the named attribute and adds it when missing.
func (n *Node) SetAttr(name, value string) {
	// update existing attribute
	for i, attr := range n.Attrs {
		if attr.Name.Local == name {
			n.Attrs[i].Value = value
			return
		}
	}

	// add new attribute
	n.Attrs = append(n.Attrs, xml.Attr{
		Name:  xml.Name{Local: name},
		Value: value,
	})
}

// Clone returns a deep copy of the node.
func (n *Node) Clone() *Node {
	// copy node
	clone := &Node{
		Name:  n.Name,
		Attrs: append([]xml.Attr(nil), n.Attrs...),
		Text:  n.Text,
	}

	// copy children
	for _, child := range n.Children {
		clone.Children = append(clone.Children, child.Clone())
	}

	return clone
}

// Walk visits the node and all its descendants in document order until the
// callback returns false.
func (n *Node) Walk(fn func(*Node) bool) bool {
	// visit node
	if !fn(n) {
		return false
	}

	// visit children
	for _, child := range n.Children {
		if !child.Walk(fn) {
			return false
		}
	}

	return true
}

func decodeNode(dec *xml.Decoder, start xml.StartElement) (*Node, error) {
	// prepare node
	node := &Node{
		Name:  start.Name.Local,
		Attrs: append([]xml.Attr(nil), start.Attr...),
	}

	// consume tokens until the element ends
	for {
		// get next token
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}

		// handle token
		switch t := tok.(type) {
		case xml.StartElement:
			child, err := decodeNode(dec, t)
			if err != nil {
				return nil, err
			}
			node.Children = append(node.Children, child)
		case xml.CharData:
			node.Text += strings.TrimSpace(string(t))
		case xml.EndElement:
			return node, nil
		}
	}
}
