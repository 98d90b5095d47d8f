package mathml

import (
	"encoding/xml"
	"io"
	"sort"
	"strings"
)

// Element is a node of the generic labeled tree: a tag, attributes, child
// elements in document order, and text fragments. Fragments are the
// character data runs split at <sep/> boundaries, which is how content
// MathML encodes two-part literals (e-notation, rationals); an element
// without separators has at most one fragment.
type Element struct {
	Tag       string
	Attrs     map[string]string
	Fragments []string
	Children  []*Element
}

// NewElement creates an element with the given tag and children.
func NewElement(tag string, children ...*Element) *Element {
	return &Element{Tag: tag, Children: children}
}

// NewText creates an element with the given tag and a single text fragment.
func NewText(tag, text string) *Element {
	return &Element{Tag: tag, Fragments: []string{text}}
}

// Attr returns the named attribute, ignoring namespaces, and whether it
// was present.
func (el *Element) Attr(name string) (string, bool) {
	v, ok := el.Attrs[name]
	return v, ok
}

// SetAttr sets an attribute, allocating the map on first use.
func (el *Element) SetAttr(name, value string) {
	if el.Attrs == nil {
		el.Attrs = make(map[string]string)
	}
	el.Attrs[name] = value
}

// Text returns the element's character data with surrounding whitespace
// removed. Multi-fragment elements are joined with a single space, which
// only matters for diagnostics; literal decoding reads Fragments directly.
func (el *Element) Text() string {
	switch len(el.Fragments) {
	case 0:
		return ""
	case 1:
		return strings.TrimSpace(el.Fragments[0])
	}
	parts := make([]string, len(el.Fragments))
	for i, f := range el.Fragments {
		parts[i] = strings.TrimSpace(f)
	}
	return strings.Join(parts, " ")
}

// Decode reads one XML document and returns its root element.
func Decode(r io.Reader) (*Element, error) {
	dec := xml.NewDecoder(r)
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		if start, ok := tok.(xml.StartElement); ok {
			el := &Element{}
			if err := el.unmarshal(dec, start); err != nil {
				return nil, err
			}
			return el, nil
		}
	}
}

// DecodeString reads one XML document from a string.
func DecodeString(s string) (*Element, error) {
	return Decode(strings.NewReader(s))
}

// UnmarshalXML implements xml.Unmarshaler.
func (el *Element) UnmarshalXML(dec *xml.Decoder, start xml.StartElement) error {
	return el.unmarshal(dec, start)
}

func (el *Element) unmarshal(dec *xml.Decoder, start xml.StartElement) error {
	el.Tag = start.Name.Local
	for _, a := range start.Attr {
		// Namespace declarations are markup plumbing, not content.
		if a.Name.Space == "xmlns" || a.Name.Local == "xmlns" {
			continue
		}
		el.SetAttr(a.Name.Local, a.Value)
	}
	var text strings.Builder
	flush := func() {
		if s := strings.TrimSpace(text.String()); s != "" {
			el.Fragments = append(el.Fragments, s)
		}
		text.Reset()
	}
	for {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.CharData:
			text.Write(t)
		case xml.StartElement:
			if t.Name.Local == "sep" {
				if err := dec.Skip(); err != nil {
					return err
				}
				// A separator closes the current fragment even
				// when it is empty, preserving positions.
				el.Fragments = append(el.Fragments, strings.TrimSpace(text.String()))
				text.Reset()
				continue
			}
			child := &Element{}
			if err := child.unmarshal(dec, t); err != nil {
				return err
			}
			el.Children = append(el.Children, child)
		case xml.EndElement:
			flush()
			return nil
		}
	}
}

// MarshalXML implements xml.Marshaler. Fragments beyond the first are
// emitted behind <sep/> separators, mirroring how they were decoded.
func (el *Element) MarshalXML(enc *xml.Encoder, _ xml.StartElement) error {
	start := xml.StartElement{Name: xml.Name{Local: el.Tag}}
	keys := make([]string, 0, len(el.Attrs))
	for k := range el.Attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys) // deterministic output for golden comparison
	for _, k := range keys {
		start.Attr = append(start.Attr, xml.Attr{Name: xml.Name{Local: k}, Value: el.Attrs[k]})
	}
	if err := enc.EncodeToken(start); err != nil {
		return err
	}
	for i, f := range el.Fragments {
		if i > 0 {
			sep := xml.StartElement{Name: xml.Name{Local: "sep"}}
			if err := enc.EncodeToken(sep); err != nil {
				return err
			}
			if err := enc.EncodeToken(sep.End()); err != nil {
				return err
			}
		}
		if err := enc.EncodeToken(xml.CharData(f)); err != nil {
			return err
		}
	}
	for _, child := range el.Children {
		if err := enc.Encode(child); err != nil {
			return err
		}
	}
	return enc.EncodeToken(start.End())
}

// String renders the element as compact XML, for diagnostics and golden
// files.
func (el *Element) String() string {
	var b strings.Builder
	enc := xml.NewEncoder(&b)
	if err := enc.Encode(el); err != nil {
		return "<" + el.Tag + "?>"
	}
	enc.Flush()
	return b.String()
}
