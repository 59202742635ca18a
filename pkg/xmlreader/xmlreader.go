// Package xmlreader decodes NAXML bytes into a generic attributed tree.
// It is the only layer of this core that touches raw XML; everything
// downstream works against the typed documents pkg/naxml builds from its
// output.
package xmlreader

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/cuemby/naxml-ingest/pkg/naxmlerr"
)

// Node is a generic XML element: attributes, a text value, and children
// keyed by tag name. A child name declared repeating (see RepeatingNames)
// is always a []*Node, even with a single occurrence; every other child
// name is a single *Node when it occurs once and becomes a []*Node, in
// document order, when it occurs more than once.
type Node struct {
	Name     string
	Attrs    map[string]string
	Text     string
	Children map[string]any // string child name -> *Node or []*Node
}

// Child returns the child node named name, or nil if absent. Where name
// holds several nodes (declared repeating or not), it returns the first;
// use Repeated for all of them.
func (n *Node) Child(name string) *Node {
	v, ok := n.Children[name]
	if !ok {
		return nil
	}
	if c, ok := v.(*Node); ok {
		return c
	}
	if list, ok := v.([]*Node); ok && len(list) > 0 {
		return list[0]
	}
	return nil
}

// Repeated returns the children named name as an ordered slice, whether or
// not name was declared repeating. Absent children yield an empty slice.
func (n *Node) Repeated(name string) []*Node {
	v, ok := n.Children[name]
	if !ok {
		return nil
	}
	switch c := v.(type) {
	case []*Node:
		return c
	case *Node:
		return []*Node{c}
	}
	return nil
}

// Attr returns an attribute value and whether it was present. Values are
// never coerced except the Y/N -> bool helper below; leading zeros in
// vendor codes are preserved verbatim.
func (n *Node) Attr(name string) (string, bool) {
	v, ok := n.Attrs[name]
	return v, ok
}

// AttrOrChildText resolves a value that NAXML dialects may express either
// as an attribute (@Code) or a child element (<Code>), trying each name in
// turn and, for each, the attribute before the child; the node's own text
// is not consulted. This is
// the single point that implements the "…ID or …Id, or @Code or <Code>"
// tolerance the wire format requires.
func (n *Node) AttrOrChildText(names ...string) (string, bool) {
	for _, name := range names {
		if v, ok := n.Attrs[name]; ok {
			return v, true
		}
		if c := n.Child(name); c != nil {
			return c.Text, true
		}
	}
	return "", false
}

// Bool implements the spec's ONLY permitted value coercion: "Y"/"true" ->
// true, "N"/"false" -> false. Any other value is treated as absent/false
// with ok=false so callers can distinguish "no such flag" from "Y".
func Bool(s string) (value bool, ok bool) {
	switch strings.TrimSpace(s) {
	case "Y", "y", "true", "True", "TRUE":
		return true, true
	case "N", "n", "false", "False", "FALSE":
		return false, true
	default:
		return false, false
	}
}

// Decode parses raw XML bytes into a generic Node tree. It is XXE-safe by
// construction: encoding/xml's Decoder is a pull tokenizer that never
// resolves external entities, never loads DTD subsets from disk or
// network, and never expands parameter entities -- there is no opt-in
// flag to disable because the vulnerable behavior was never implemented.
// repeatingNames declares, per the calling dialect, which child element
// names must always materialize as an ordered sequence.
func Decode(data []byte, repeatingNames map[string]bool) (*Node, error) {
	decoder := xml.NewDecoder(newReader(data))
	decoder.Strict = true
	// CharsetReader left nil: only UTF-8/ASCII input is accepted, matching
	// the wire format's "UTF-8 with optional BOM" contract; anything else
	// fails the same way malformed XML does.

	var root *Node
	var stack []*Node

	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			line, col := lineColAt(data, decoder.InputOffset())
			return nil, naxmlerr.Wrap(naxmlerr.CodeInvalidXML, err, fmt.Sprintf("malformed XML at line %d, column %d", line, col))
		}

		switch t := tok.(type) {
		case xml.StartElement:
			node := &Node{
				Name:     t.Name.Local,
				Attrs:    make(map[string]string, len(t.Attr)),
				Children: make(map[string]any),
			}
			for _, a := range t.Attr {
				node.Attrs[a.Name.Local] = a.Value
			}
			if len(stack) == 0 {
				root = node
			} else {
				parent := stack[len(stack)-1]
				attachChild(parent, node, repeatingNames)
			}
			stack = append(stack, node)

		case xml.CharData:
			if len(stack) > 0 {
				stack[len(stack)-1].Text += string(t)
			}

		case xml.EndElement:
			if len(stack) > 0 {
				stack[len(stack)-1].Text = strings.TrimSpace(stack[len(stack)-1].Text)
				stack = stack[:len(stack)-1]
			}

		case xml.Comment, xml.ProcInst:
			// ignored

		case xml.Directive:
			// DOCTYPE/internal-subset declarations arrive as an opaque
			// Directive token; encoding/xml does not parse or resolve
			// entities/parameter-entities within it. Reject outright
			// rather than silently ignoring, since a DOCTYPE in NAXML
			// input is itself a sign of a malformed or hostile document.
			return nil, naxmlerr.New(naxmlerr.CodeInvalidXML, "DTD/DOCTYPE declarations are not permitted in NAXML documents")
		}
	}

	if root == nil {
		return nil, naxmlerr.New(naxmlerr.CodeInvalidXML, "empty document")
	}
	return root, nil
}

func attachChild(parent, child *Node, repeatingNames map[string]bool) {
	existing, ok := parent.Children[child.Name]
	if !ok {
		if repeatingNames[child.Name] {
			parent.Children[child.Name] = []*Node{child}
		} else {
			parent.Children[child.Name] = child
		}
		return
	}
	switch v := existing.(type) {
	case []*Node:
		parent.Children[child.Name] = append(v, child)
	case *Node:
		parent.Children[child.Name] = []*Node{v, child}
	}
}

func newReader(data []byte) *strings.Reader {
	return strings.NewReader(string(data))
}

// lineColAt converts a byte offset into the 1-indexed line/column encoding/xml's
// Decoder.InputOffset reports, since the stdlib decoder exposes only the raw
// byte offset and the security contract requires line/column in the error.
func lineColAt(data []byte, offset int64) (line, col int) {
	line = 1
	col = 1
	limit := offset
	if limit > int64(len(data)) {
		limit = int64(len(data))
	}
	for i := int64(0); i < limit; i++ {
		if data[i] == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return
}
