package xccdf

import (
	"encoding/xml"
	"strings"
)

// Walk consumes the children of the element the decoder is positioned in,
// calling fn for every descendant start element. The depth argument is 1 for
// direct children. If fn reports that it consumed the element (via [text],
// [xml.Decoder.Skip], or a nested walk), its descendants are not visited.
func walk(d *xml.Decoder, fn func(el xml.StartElement, depth int) (bool, error)) error {
	depth := 1
	for depth > 0 {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			consumed, err := fn(t, depth)
			if err != nil {
				return err
			}
			if !consumed {
				depth++
			}
		case xml.EndElement:
			depth--
		}
	}
	return nil
}

// Text consumes the element the decoder is positioned in and returns all the
// character data inside it, including that of nested markup, with surrounding
// whitespace removed.
func text(d *xml.Decoder) (string, error) {
	var b strings.Builder
	for depth := 1; depth > 0; {
		tok, err := d.Token()
		if err != nil {
			return "", err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			depth++
		case xml.EndElement:
			depth--
		case xml.CharData:
			b.Write(t)
		}
	}
	return strings.TrimSpace(b.String()), nil
}

// Optional is a text field that remembers whether its element was present.
// Only the first occurrence is kept.
type optional struct {
	Text string
	Set  bool
}

func (o *optional) decode(d *xml.Decoder) error {
	s, err := text(d)
	if err != nil {
		return err
	}
	if !o.Set {
		o.Text, o.Set = s, true
	}
	return nil
}

// Or returns the text, or def if the element was absent.
func (o optional) Or(def string) string {
	if o.Set {
		return o.Text
	}
	return def
}

// Profile is the decoded form of an XCCDF Profile element.
type profile struct {
	ID          string
	Title       optional
	Description optional
	// Idrefs of select elements with selected="true", in document order.
	Selected []string
}

// UnmarshalXML implements [xml.Unmarshaler].
func (p *profile) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	p.ID = attrOr(start, "id", "")
	return walk(d, func(el xml.StartElement, depth int) (bool, error) {
		switch {
		case depth == 1 && is(el.Name, elemTitle):
			return true, p.Title.decode(d)
		case depth == 1 && is(el.Name, elemDescription):
			return true, p.Description.decode(d)
		case is(el.Name, elemSelect):
			if v, _ := attr(el, "selected"); v == "true" {
				p.Selected = append(p.Selected, attrOr(el, "idref", ""))
			}
		}
		return false, nil
	})
}

// Reference is an XCCDF reference element.
type reference struct {
	Href string
	Text string
}

// Ident is an XCCDF ident element.
type ident struct {
	System string
	Text   string
}

// Rule is the decoded form of an XCCDF Rule element.
type rule struct {
	ID          string
	Severity    string
	Title       optional
	Description optional
	Rationale   optional
	References  []reference
	Idents      []ident
	// Value ids named by check-export elements inside checks, in document
	// order.
	Exports []string
}

// UnmarshalXML implements [xml.Unmarshaler].
func (r *rule) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	r.ID = attrOr(start, "id", "")
	r.Severity = attrOr(start, "severity", "unknown")
	return walk(d, func(el xml.StartElement, depth int) (bool, error) {
		switch {
		case depth == 1 && is(el.Name, elemTitle):
			return true, r.Title.decode(d)
		case depth == 1 && is(el.Name, elemDescription):
			return true, r.Description.decode(d)
		case depth == 1 && is(el.Name, elemRationale):
			return true, r.Rationale.decode(d)
		case is(el.Name, elemReference):
			s, err := text(d)
			if err != nil {
				return true, err
			}
			r.References = append(r.References, reference{
				Href: attrOr(el, "href", ""),
				Text: s,
			})
			return true, nil
		case is(el.Name, elemIdent):
			s, err := text(d)
			if err != nil {
				return true, err
			}
			r.Idents = append(r.Idents, ident{
				System: attrOr(el, "system", ""),
				Text:   s,
			})
			return true, nil
		case is(el.Name, elemCheck):
			return true, walk(d, func(el xml.StartElement, _ int) (bool, error) {
				if !is(el.Name, elemCheckExport) {
					return false, nil
				}
				if id, _ := attr(el, "value-id"); id != "" {
					r.Exports = append(r.Exports, id)
				}
				return false, nil
			})
		}
		return false, nil
	})
}

// Value is the decoded form of an XCCDF Value element.
type value struct {
	ID    string
	Type  string
	Title optional
	// Values holds the direct value children.
	Values []selectorValue
}

type selectorValue struct {
	Selector    string
	HasSelector bool
	Text        string
}

// UnmarshalXML implements [xml.Unmarshaler].
func (v *value) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	v.ID = attrOr(start, "id", "")
	v.Type = attrOr(start, "type", "string")
	return walk(d, func(el xml.StartElement, depth int) (bool, error) {
		if depth != 1 {
			return false, nil
		}
		switch {
		case is(el.Name, elemTitle):
			return true, v.Title.decode(d)
		case is(el.Name, elemValueText):
			s, err := text(d)
			if err != nil {
				return true, err
			}
			sel, ok := attr(el, "selector")
			v.Values = append(v.Values, selectorValue{
				Selector:    sel,
				HasSelector: ok,
				Text:        s,
			})
			return true, nil
		}
		return false, nil
	})
}

// Default returns the text of the first value child without a selector, the
// first value child if they all have one, or the empty string.
func (v *value) Default() string {
	for _, sv := range v.Values {
		if !sv.HasSelector {
			return sv.Text
		}
	}
	if len(v.Values) > 0 {
		return v.Values[0].Text
	}
	return ""
}
