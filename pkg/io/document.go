package io

import (
	"strconv"

	"github.com/mitchellh/mapstructure"

	"github.com/jimtonn/foldout/pkg/errors"
	"github.com/jimtonn/foldout/pkg/outline"
)

// Document is the serialized form of an outline.
type Document struct {
	Columns []ColumnSpec `json:"columns" toml:"columns" yaml:"columns"`
	Rows    []RowSpec    `json:"rows" toml:"rows" yaml:"rows"`
}

// ColumnSpec describes one column.
type ColumnSpec struct {
	Kind  outline.Kind `json:"kind" toml:"kind" yaml:"kind"`
	Title string       `json:"title" toml:"title" yaml:"title"`
}

// RowSpec describes one row and, recursively, its children. Values line up
// with the document's columns.
type RowSpec struct {
	Values   []any     `json:"values" toml:"values" yaml:"values"`
	Children []RowSpec `json:"children,omitempty" toml:"children,omitempty" yaml:"children,omitempty"`
}

// FromOutline captures o as a document. Only the built-in column kinds can
// be represented; any other kind is rejected with UNSUPPORTED.
func FromOutline(o *outline.Outline) (*Document, error) {
	cols := o.Columns()
	doc := &Document{Columns: make([]ColumnSpec, len(cols))}
	for i, c := range cols {
		if !builtin(c.Kind()) {
			return nil, errors.New(errors.ErrCodeUnsupported, "column %q has kind %q, which documents cannot store", c.Title(), c.Kind())
		}
		doc.Columns[i] = ColumnSpec{Kind: c.Kind(), Title: c.Title()}
	}

	// Rows arrive in pre-order; open[d] is the most recent row at depth d.
	type node struct {
		spec     RowSpec
		children []*node
	}
	var top []*node
	var open []*node
	for r, depth := range o.Rows() {
		n := &node{spec: RowSpec{Values: make([]any, len(cols))}}
		for i, c := range cols {
			v, _ := r.Value(c)
			n.spec.Values[i] = c.CloneValue(v)
		}
		open = open[:depth]
		if depth == 0 {
			top = append(top, n)
		} else {
			parent := open[depth-1]
			parent.children = append(parent.children, n)
		}
		open = append(open, n)
	}

	var flatten func(nodes []*node) []RowSpec
	flatten = func(nodes []*node) []RowSpec {
		if len(nodes) == 0 {
			return nil
		}
		out := make([]RowSpec, len(nodes))
		for i, n := range nodes {
			out[i] = n.spec
			out[i].Children = flatten(n.children)
		}
		return out
	}
	doc.Rows = flatten(top)
	return doc, nil
}

// Build creates a new outline from the document.
func (d *Document) Build() (*outline.Outline, error) {
	o := outline.New()
	cols := make([]*outline.Column, len(d.Columns))
	for i, spec := range d.Columns {
		c, err := spec.NewColumn()
		if err != nil {
			return nil, err
		}
		if err := o.AddColumn(c, nil); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "column %d", i)
		}
		cols[i] = c
	}
	if err := buildRows(o, o.Root(), cols, d.Rows, "rows"); err != nil {
		return nil, err
	}
	return o, nil
}

func buildRows(o *outline.Outline, parent *outline.Row, cols []*outline.Column, rows []RowSpec, path string) error {
	for i, spec := range rows {
		at := path + "[" + strconv.Itoa(i) + "]"
		if len(spec.Values) > len(cols) {
			return errors.New(errors.ErrCodeInvalidDocument, "%s: %d values for %d columns", at, len(spec.Values), len(cols))
		}
		values := make(map[*outline.Column]any, len(spec.Values))
		for j, raw := range spec.Values {
			if raw == nil {
				continue
			}
			v, err := convertValue(cols[j].Kind(), raw)
			if err != nil {
				return errors.Wrap(errors.ErrCodeInvalidDocument, err, "%s: column %q", at, cols[j].Title())
			}
			values[cols[j]] = v
		}
		r, err := o.InsertRow(parent, parent.ChildCount(), values)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "%s", at)
		}
		if err := buildRows(o, r, cols, spec.Children, at+".children"); err != nil {
			return err
		}
	}
	return nil
}

func builtin(k outline.Kind) bool {
	switch k {
	case outline.KindText, outline.KindCheck, outline.KindNumber, outline.KindTags:
		return true
	}
	return false
}

// NewColumn creates a fresh column of the spec's kind. Unknown kinds fail
// with INVALID_DOCUMENT.
func (spec ColumnSpec) NewColumn() (*outline.Column, error) {
	switch spec.Kind {
	case outline.KindText:
		return outline.NewTextColumn(spec.Title), nil
	case outline.KindCheck:
		return outline.NewCheckColumn(spec.Title), nil
	case outline.KindNumber:
		return outline.NewNumberColumn(spec.Title), nil
	case outline.KindTags:
		return outline.NewTagsColumn(spec.Title), nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidDocument, "column %q: unknown kind %q", spec.Title, spec.Kind)
	}
}

// convertValue decodes a loosely typed value, as produced by a JSON, TOML
// or YAML decoder, into the Go type of the column kind.
func convertValue(kind outline.Kind, raw any) (any, error) {
	switch kind {
	case outline.KindText:
		var s string
		err := mapstructure.Decode(raw, &s)
		return s, err
	case outline.KindCheck:
		var b bool
		err := mapstructure.Decode(raw, &b)
		return b, err
	case outline.KindNumber:
		var f float64
		err := mapstructure.Decode(raw, &f)
		return f, err
	case outline.KindTags:
		var tags []string
		if err := mapstructure.Decode(raw, &tags); err != nil {
			return nil, err
		}
		if tags == nil {
			tags = []string{}
		}
		return tags, nil
	default:
		return raw, nil
	}
}
