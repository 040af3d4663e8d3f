package ll1

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"

	"github.com/cache-nez/scallion"
)

func TestFirstConflict(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scallion.ll1")
	defer teardown()
	//
	p := Elem(kindA).Or(Elem(kindA))
	if p.IsLL1() {
		t.Errorf("Expected elem(A) | elem(A) not to be LL(1)")
	}
	conflicts := p.Conflicts()
	if len(conflicts) != 1 {
		t.Fatalf("Expected exactly one conflict, is %v", conflicts)
	}
	fc, ok := conflicts[0].(FirstConflict)
	if !ok {
		t.Fatalf("Expected a FIRST conflict, is %v", conflicts[0])
	}
	if !sameKinds(fc.Ambiguous, kindA) {
		t.Errorf("Expected ambiguous kinds {A}, is %v", fc.Ambiguous)
	}
	if fc.Source() != p {
		t.Errorf("Expected the disjunction as conflict source")
	}
}

func TestNullableConflict(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scallion.ll1")
	defer teardown()
	//
	p := Epsilon(1).Or(Elem(kindA).Opt())
	if p.IsLL1() {
		t.Errorf("Expected a doubly nullable disjunction not to be LL(1)")
	}
	var nullable int
	for _, c := range p.Conflicts() {
		if _, ok := c.(NullableConflict); ok {
			nullable++
		}
	}
	if nullable == 0 {
		t.Errorf("Expected a nullable conflict, is %v", p.Conflicts())
	}
}

func TestFollowConflict(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scallion.ll1")
	defer teardown()
	//
	// Both branches of the disjunction may be followed by A, and the left
	// one is nullable: one token of look-ahead cannot decide whether A
	// belongs to the disjunction or to the tail.
	left := Epsilon(0).Or(Elem(kindA).Map(func(interface{}) interface{} { return 1 }))
	p := left.Seq(Elem(kindA))
	if p.IsLL1() {
		t.Errorf("Expected a FOLLOW-conflicted sequence not to be LL(1)")
	}
	var found *FollowConflict
	for _, c := range p.Conflicts() {
		if fc, ok := c.(FollowConflict); ok {
			found = &fc
			break
		}
	}
	if found == nil {
		t.Fatalf("Expected a FOLLOW conflict, is %v", p.Conflicts())
	}
	if !sameKinds(found.Ambiguous, kindA) {
		t.Errorf("Expected ambiguous kinds {A}, is %v", found.Ambiguous)
	}
	if found.Source() != p {
		t.Errorf("Expected the sequence as conflict source")
	}
	if trails := takeTrails(found.Prefix(), 1); len(trails) != 1 || len(trails[0]) != 0 {
		t.Errorf("Expected the empty witness prefix, is %v", trails)
	}
}

func TestLeftRecursiveConflict(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scallion.ll1")
	defer teardown()
	//
	var p *Syntax
	p = Recursive(func() *Syntax { return p.Seq(Elem(kindA)) })
	if p.IsLL1() {
		t.Errorf("Expected a left-recursive syntax not to be LL(1)")
	}
	conflicts := p.Conflicts()
	if len(conflicts) == 0 {
		t.Fatalf("Expected a left-recursion conflict")
	}
	if _, ok := conflicts[0].(LeftRecursiveConflict); !ok {
		t.Errorf("Expected a left-recursion conflict, is %v", conflicts[0])
	}
}

func TestConflictGainsPrefixThroughSequence(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scallion.ll1")
	defer teardown()
	//
	ambiguous := Elem(kindA).Or(Elem(kindA))
	p := Elem(kindB).Seq(ambiguous)
	conflicts := p.Conflicts()
	if len(conflicts) != 1 {
		t.Fatalf("Expected exactly one conflict, is %v", conflicts)
	}
	trails := takeTrails(conflicts[0].Prefix(), 1)
	if len(trails) != 1 || !trails[0].Equals(scallion.Trail{kindB}) {
		t.Errorf("Expected witness prefix trail ⟨B⟩, is %v", trails)
	}
	if conflicts[0].Source() != ambiguous {
		t.Errorf("Expected the inner disjunction as conflict source")
	}
}

func TestLL1AgreesWithConflicts(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scallion.ll1")
	defer teardown()
	//
	var leftrec *Syntax
	leftrec = Recursive(func() *Syntax { return leftrec.Seq(Elem(kindA)) })
	fixtures := []*Syntax{
		Elem(kindA),
		Epsilon(7),
		Fail(),
		Many(Elem(kindA)),
		Elem(kindA).Or(Elem(kindB)),
		Elem(kindA).Or(Elem(kindA)),
		Epsilon(0).Or(Elem(kindA).Map(func(interface{}) interface{} { return 1 })).Seq(Elem(kindA)),
		Epsilon(1).Or(Epsilon(2)),
		leftrec,
		RepSep(Elem(kindA), Elem(kindB)),
	}
	for i, p := range fixtures {
		ll1 := p.IsLL1()
		conflicts := p.Conflicts()
		if ll1 != (len(conflicts) == 0) {
			t.Errorf("Fixture #%d: IsLL1 = %v, but %d conflict(s): %v", i, ll1, len(conflicts), conflicts)
		}
	}
}
