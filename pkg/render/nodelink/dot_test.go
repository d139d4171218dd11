package nodelink

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/jimtonn/foldout/pkg/outline"
)

func sample(t *testing.T) *outline.Outline {
	t.Helper()
	o := outline.New()
	content := outline.NewTextColumn("Content")
	done := outline.NewCheckColumn("Done")
	qty := outline.NewNumberColumn("Qty")
	for _, c := range []*outline.Column{content, done, qty} {
		if err := o.AddColumn(c, nil); err != nil {
			t.Fatal(err)
		}
	}
	groceries, err := o.InsertRow(o.Root(), 0, map[*outline.Column]any{content: "Groceries"})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := o.InsertRow(groceries, 0, map[*outline.Column]any{content: "Milk", done: true, qty: float64(2)}); err != nil {
		t.Fatal(err)
	}
	return o
}

func TestToDOT(t *testing.T) {
	o := sample(t)
	dot := ToDOT(o, Options{})

	for _, want := range []string{
		"digraph outline {",
		"ordering=out;",
		`root [shape=point`,
		`n0 [label="Groceries"];`,
		`n1 [label="Milk", fillcolor="` + doneFill + `"];`,
		`root -> n0;`,
		`n0 -> n1;`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT missing %q\n%s", want, dot)
		}
	}
	if strings.Contains(dot, "Qty") {
		t.Error("non-detailed labels should only show the text column")
	}
}

func TestToDOTDetailed(t *testing.T) {
	o := sample(t)
	dot := ToDOT(o, Options{Detailed: true})

	want := `n1 [label="Milk\nDone: true\nQty: 2"`
	if !strings.Contains(dot, want) {
		t.Errorf("ToDOT detailed missing %q\n%s", want, dot)
	}
}

func TestToDOTEmpty(t *testing.T) {
	o := outline.New()
	dot := ToDOT(o, Options{})
	if strings.Count(dot, "->") != 0 {
		t.Errorf("empty outline should have no edges:\n%s", dot)
	}
	if !strings.Contains(dot, "root [shape=point") {
		t.Error("root point should always be drawn")
	}
}

func TestToDOTEdgeOrder(t *testing.T) {
	o := outline.New()
	c := outline.NewTextColumn("Content")
	if err := o.AddColumn(c, nil); err != nil {
		t.Fatal(err)
	}
	if _, err := o.InsertRow(o.Root(), 0, map[*outline.Column]any{c: "b"}); err != nil {
		t.Fatal(err)
	}
	if _, err := o.InsertRow(o.Root(), 0, map[*outline.Column]any{c: "a"}); err != nil {
		t.Fatal(err)
	}

	dot := ToDOT(o, Options{})
	if !strings.Contains(dot, `n0 [label="a"]`) || !strings.Contains(dot, `n1 [label="b"]`) {
		t.Errorf("nodes should follow sibling order:\n%s", dot)
	}
	if strings.Index(dot, "root -> n0;") > strings.Index(dot, "root -> n1;") {
		t.Error("edges should follow sibling order")
	}
}

func TestToDOTStable(t *testing.T) {
	a := sample(t)
	b := sample(t)
	if ToDOT(a, Options{}) != ToDOT(b, Options{}) {
		t.Error("equal outlines should produce equal DOT")
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="100pt" height="50pt" viewBox="0.00 0.00 100.00 50.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	out := normalizeViewBox(in)
	want := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100.00 50.00" width="100" height="50"><g/></svg>`
	if string(out) != want {
		t.Errorf("normalizeViewBox = %s, want %s", out, want)
	}

	plain := []byte(`<svg><g/></svg>`)
	if got := normalizeViewBox(plain); !bytes.Equal(got, plain) {
		t.Errorf("svg without viewBox should be unchanged: %s", got)
	}
}

func TestRenderSVG(t *testing.T) {
	o := sample(t)
	svg, err := RenderSVG(context.Background(), ToDOT(o, Options{}))
	if err != nil {
		t.Fatalf("RenderSVG: %v", err)
	}
	if !bytes.Contains(svg, []byte("<svg")) {
		t.Errorf("RenderSVG output is not SVG: %.100s", svg)
	}
	if !bytes.Contains(svg, []byte("Groceries")) {
		t.Error("RenderSVG output should contain row labels")
	}
}

func TestRenderPNG(t *testing.T) {
	o := sample(t)
	png, err := RenderPNG(context.Background(), ToDOT(o, Options{}))
	if err != nil {
		t.Fatalf("RenderPNG: %v", err)
	}
	if !bytes.HasPrefix(png, []byte("\x89PNG")) {
		t.Errorf("RenderPNG output is not PNG: % x", png[:min(8, len(png))])
	}
}

func TestRenderSVGInvalidDOT(t *testing.T) {
	if _, err := RenderSVG(context.Background(), "digraph {"); err == nil {
		t.Error("RenderSVG should fail on malformed DOT")
	}
}

func TestToDOTDetailedTags(t *testing.T) {
	o := outline.New()
	text := outline.NewTextColumn("Content")
	tags := outline.NewTagsColumn("Tags")
	for _, c := range []*outline.Column{text, tags} {
		if err := o.AddColumn(c, nil); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := o.InsertRow(o.Root(), 0, map[*outline.Column]any{text: "Plan", tags: []string{"work", "q3"}}); err != nil {
		t.Fatal(err)
	}

	dot := ToDOT(o, Options{Detailed: true})
	if want := `n0 [label="Plan\nTags: work, q3"]`; !strings.Contains(dot, want) {
		t.Errorf("ToDOT detailed missing %q\n%s", want, dot)
	}
}
