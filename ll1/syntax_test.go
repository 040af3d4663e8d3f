package ll1

import (
	"testing"

	"github.com/cache-nez/scallion"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

// Kinds and tokens for testing. Tokens carry nothing but their kind.

const (
	kindA = "A"
	kindB = "B"
	kindC = "C"
)

type testToken struct {
	kind scallion.Kind
}

func (t testToken) Kind() scallion.Kind {
	return t.kind
}

func tok(k scallion.Kind) testToken {
	return testToken{kind: k}
}

func toks(kinds ...scallion.Kind) []scallion.Token {
	tokens := make([]scallion.Token, len(kinds))
	for i, k := range kinds {
		tokens[i] = tok(k)
	}
	return tokens
}

func sameKinds(got []scallion.Kind, want ...scallion.Kind) bool {
	if len(got) != len(want) {
		return false
	}
	for _, w := range want {
		found := false
		for _, g := range got {
			if g == w {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// takeTrails collects the first n trails of a syntax.
func takeTrails(s *Syntax, n int) []scallion.Trail {
	var trails []scallion.Trail
	for _, item := range s.Trails().Take(n) {
		trails = append(trails, item.(scallion.Trail))
	}
	return trails
}

// --- the Tests -------------------------------------------------------------

func TestSeqOfConstantsFolds(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scallion.ll1")
	defer teardown()
	//
	s := Epsilon(1).Seq(Epsilon(2))
	if s.op != opSuccess {
		t.Fatalf("Expected ε(1) ~ ε(2) to fold into a constant, is %s", s)
	}
	p, ok := s.value.(Pair)
	if !ok || p.First != 1 || p.Second != 2 {
		t.Errorf("Expected folded value (1, 2), is %v", s.value)
	}
}

func TestFailureShortCircuits(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scallion.ll1")
	defer teardown()
	//
	if s := Elem(kindA).Seq(Fail()); s.op != opFailure {
		t.Errorf("Expected elem ~ ⊥ to collapse to ⊥, is %s", s)
	}
	if s := Fail().Seq(Elem(kindA)); s.op != opFailure {
		t.Errorf("Expected ⊥ ~ elem to collapse to ⊥, is %s", s)
	}
	if s := Fail().Concat(Elem(kindA)); s.op != opFailure {
		t.Errorf("Expected ⊥ ++ elem to collapse to ⊥, is %s", s)
	}
	if s := Fail().Map(func(v interface{}) interface{} { return v }); s.op != opFailure {
		t.Errorf("Expected map over ⊥ to collapse to ⊥, is %s", s)
	}
}

func TestDisjunctionDropsFailure(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scallion.ll1")
	defer teardown()
	//
	a := Elem(kindA)
	if s := Fail().Or(a); s != a {
		t.Errorf("Expected ⊥ | a to collapse to a, is %s", s)
	}
	if s := a.Or(Fail()); s != a {
		t.Errorf("Expected a | ⊥ to collapse to a, is %s", s)
	}
}

func TestConcatLeansRight(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scallion.ll1")
	defer teardown()
	//
	seqs := func(k scallion.Kind) *Syntax {
		return Elem(k).Map(func(v interface{}) interface{} {
			return []interface{}{v}
		})
	}
	s := seqs(kindA).Concat(seqs(kindB)).Concat(seqs(kindC))
	if s.op != opConcat {
		t.Fatalf("Expected a concat node, is %s", s)
	}
	if s.left.op == opConcat || s.right.op != opConcat {
		t.Errorf("Expected (a ++ (b ++ c)), is %s", s)
	}
}

func TestRecursiveIdentities(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scallion.ll1")
	defer teardown()
	//
	r1 := Recursive(func() *Syntax { return Elem(kindA) })
	r2 := Recursive(func() *Syntax { return Elem(kindA) })
	if r1.id == r2.id {
		t.Errorf("Expected distinct recursive identities, both are %d", r1.id)
	}
}

func TestRecursiveForcesLazilyOnce(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scallion.ll1")
	defer teardown()
	//
	forced := 0
	r := Recursive(func() *Syntax {
		forced++
		return Elem(kindA)
	})
	if forced != 0 {
		t.Fatal("Expected the definition to be deferred")
	}
	r.First()
	r.IsProductive()
	if _, ok := r.Nullable(); ok {
		t.Errorf("Expected rec{elem} not to be nullable")
	}
	if forced != 1 {
		t.Errorf("Expected the definition to run exactly once, ran %d times", forced)
	}
}
