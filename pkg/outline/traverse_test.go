package outline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type visit struct {
	row   *Row
	depth int
}

func collect(seq func(func(*Row, int) bool)) []visit {
	var out []visit
	for r, d := range seq {
		out = append(out, visit{r, d})
	}
	return out
}

func TestRowsPreOrder(t *testing.T) {
	o := New()
	a := mustInsert(t, o, o.Root(), 0)
	b := mustInsert(t, o, o.Root(), 1)
	a1 := mustInsert(t, o, a, 0)
	a2 := mustInsert(t, o, a, 1)

	want := []visit{{a, 0}, {a1, 1}, {a2, 1}, {b, 0}}
	assert.Equal(t, want, collect(o.Rows()))
	assert.Equal(t, 4, o.Len())
}

func TestRowsRestartable(t *testing.T) {
	o := New()
	a := mustInsert(t, o, o.Root(), 0)
	mustInsert(t, o, a, 0)

	seq := o.Rows()
	first := collect(seq)
	second := collect(seq)
	assert.Equal(t, first, second)
}

func TestRowsEarlyStop(t *testing.T) {
	o := New()
	for i := range 5 {
		mustInsert(t, o, o.Root(), i)
	}
	n := 0
	for range o.Rows() {
		n++
		if n == 2 {
			break
		}
	}
	assert.Equal(t, 2, n)
}

func TestDescendantsDeep(t *testing.T) {
	o := New()
	a := mustInsert(t, o, o.Root(), 0)
	b := mustInsert(t, o, a, 0)
	c := mustInsert(t, o, b, 0)
	d := mustInsert(t, o, c, 0)
	e := mustInsert(t, o, o.Root(), 1)

	assert.Equal(t, []visit{{a, 0}, {b, 1}, {c, 2}, {d, 3}, {e, 0}}, collect(o.Rows()))
	assert.Equal(t, []visit{{c, 0}, {d, 1}}, collect(b.Descendants()))
	assert.Empty(t, collect(d.Descendants()))
}

func TestRowsExcludeRoot(t *testing.T) {
	o := New()
	for r := range o.Rows() {
		require.NotSame(t, o.Root(), r)
	}
	assert.Empty(t, collect(o.Rows()))
}
