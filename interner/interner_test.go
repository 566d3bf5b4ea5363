package interner_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"importgraph.dev/importgraph/interner"
)

func TestInternIdempotent(t *testing.T) {
	in := interner.New()
	a := in.Intern("pkg.a")
	b := in.Intern("pkg.a")
	require.Equal(t, a, b)
	require.Equal(t, 1, in.Len())
}

func TestInternDistinctNames(t *testing.T) {
	in := interner.New()
	a := in.Intern("pkg.a")
	b := in.Intern("pkg.b")
	require.NotEqual(t, a, b)
	require.Equal(t, "pkg.a", in.Resolve(a))
	require.Equal(t, "pkg.b", in.Resolve(b))
}

func TestLookupMissing(t *testing.T) {
	in := interner.New()
	in.Intern("pkg.a")
	_, ok := in.Lookup("pkg.b")
	require.False(t, ok)
}

func TestResolveUnknownPanics(t *testing.T) {
	in := interner.New()
	require.Panics(t, func() { in.Resolve(interner.ID(99)) })
}
