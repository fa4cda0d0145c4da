package rss

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html/charset"
)

// element is a generic XML node: its name, attributes, child elements and
// the character data found directly inside it.
type element struct {
	Name     xml.Name
	Attrs    []xml.Attr
	Children []*element
	// content keeps char data and child elements in document order for Text.
	content []any
}

// Text returns the concatenated character data of the element and all of
// its descendants.
func (e *element) Text() string {
	var sb strings.Builder
	e.writeText(&sb)
	return sb.String()
}

func (e *element) writeText(sb *strings.Builder) {
	for _, c := range e.content {
		switch v := c.(type) {
		case string:
			sb.WriteString(v)
		case *element:
			v.writeText(sb)
		}
	}
}

// single returns the only child named name in no namespace. It returns nil
// when there is no such child or more than one.
func (e *element) single(name string) *element {
	if e == nil {
		return nil
	}
	var found *element
	for _, c := range e.Children {
		if c.Name.Space != "" || c.Name.Local != name {
			continue
		}
		if found != nil {
			return nil
		}
		found = c
	}
	return found
}

func (e *element) all(name string) []*element {
	if e == nil {
		return nil
	}
	var out []*element
	for _, c := range e.Children {
		if c.Name.Space == "" && c.Name.Local == name {
			out = append(out, c)
		}
	}
	return out
}

// parseTree reads a whole XML document and returns a synthetic document
// node whose only child is the root element.
func parseTree(data []byte) (*element, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.CharsetReader = charset.NewReaderLabel

	doc := &element{}
	stack := []*element{doc}
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		top := stack[len(stack)-1]
		switch t := tok.(type) {
		case xml.StartElement:
			if top == doc && len(doc.Children) > 0 {
				return nil, fmt.Errorf("XML syntax error on line %d: multiple root elements", line(dec))
			}
			el := &element{Name: t.Name, Attrs: t.Copy().Attr}
			top.Children = append(top.Children, el)
			top.content = append(top.content, el)
			stack = append(stack, el)
		case xml.EndElement:
			stack = stack[:len(stack)-1]
		case xml.CharData:
			if top == doc {
				if len(bytes.TrimSpace(t)) > 0 {
					return nil, fmt.Errorf("XML syntax error on line %d: text outside root element", line(dec))
				}
				continue
			}
			top.content = append(top.content, string(t))
		}
	}
	if len(doc.Children) == 0 {
		return nil, errors.New("XML syntax error: no root element")
	}
	if len(stack) != 1 {
		return nil, errors.New("XML syntax error: unexpected EOF")
	}
	return doc, nil
}

func line(dec *xml.Decoder) int {
	l, _ := dec.InputPos()
	return l
}
