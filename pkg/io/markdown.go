package io

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/jimtonn/foldout/pkg/errors"
	"github.com/jimtonn/foldout/pkg/outline"
)

// WriteMarkdown renders o as a nested bullet list, two spaces of indent per
// level. The first text column supplies the bullet text and the first check
// column becomes a task box. Remaining non-empty values follow in
// parentheses as "Title: value".
//
//	- [ ] Groceries
//	  - [x] Milk (Qty: 2)
func WriteMarkdown(o *outline.Outline, w io.Writer) error {
	cols := o.Columns()
	text := firstOfKind(cols, outline.KindText)
	check := firstOfKind(cols, outline.KindCheck)

	bw := bufio.NewWriter(w)
	for r, depth := range o.Rows() {
		var b strings.Builder
		b.WriteString(strings.Repeat("  ", depth))
		b.WriteString("- ")
		if check != nil {
			if done, _ := outline.ValueOf[bool](r, check); done {
				b.WriteString("[x] ")
			} else {
				b.WriteString("[ ] ")
			}
		}
		if text != nil {
			s, _ := outline.ValueOf[string](r, text)
			b.WriteString(strings.ReplaceAll(s, "\n", " "))
		}

		var extras []string
		for _, c := range cols {
			if c == text || c == check {
				continue
			}
			v, _ := r.Value(c)
			if s := outline.FormatValue(v); s != "" {
				extras = append(extras, c.Title()+": "+s)
			}
		}
		if len(extras) > 0 {
			fmt.Fprintf(&b, " (%s)", strings.Join(extras, ", "))
		}
		b.WriteByte('\n')
		if _, err := bw.WriteString(b.String()); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "write markdown")
		}
	}
	if err := bw.Flush(); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write markdown")
	}
	return nil
}

func firstOfKind(cols []*outline.Column, k outline.Kind) *outline.Column {
	for _, c := range cols {
		if c.Kind() == k {
			return c
		}
	}
	return nil
}
