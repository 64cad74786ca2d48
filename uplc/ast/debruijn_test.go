package ast

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

// TestNamedDeBruijnRoundTripPreservesStructure exercises the lattice
// from debruijn.go: converting Name -> NamedDeBruijn -> Name -> NamedDeBruijn
// must land back on a structurally identical NamedDeBruijn term, even
// though the intermediate Name term gets freshly allocated Uniques.
func TestNamedDeBruijnRoundTripPreservesStructure(t *testing.T) {
	x := Name{Text: "x", Unique: 1}
	y := Name{Text: "y", Unique: 2}
	term := NewLambda(x, NewLambda(y, NewApply(NewVar(x), NewVar(y))))

	nd1, err := ToNamedDeBruijn(term)
	if err != nil {
		t.Fatalf("ToNamedDeBruijn: %v", err)
	}

	next := Unique(100)
	nameTerm2, err := FromNamedDeBruijn(nd1, &next)
	if err != nil {
		t.Fatalf("FromNamedDeBruijn: %v", err)
	}
	nd2, err := ToNamedDeBruijn(nameTerm2)
	if err != nil {
		t.Fatalf("ToNamedDeBruijn (second pass): %v", err)
	}

	if got, want := nd2.Pretty(), nd1.Pretty(); !cmp.Equal(got, want) {
		t.Error(cmp.Diff(want, got))
	}
}
