package ll1

import (
	"fmt"

	"github.com/cache-nez/scallion"
)

// A Conflict describes one reason why a syntax is not LL(1). Conflicts are
// data: the analyzer returns them, nothing ever raises them. Every conflict
// carries the node it originates from and a prefix syntax accepting the
// tokens leading up to the ambiguity; enumerate the prefix's Trails for
// concrete witnesses.
type Conflict interface {
	// Source returns the node the ambiguity originates from.
	Source() *Syntax
	// Prefix returns a syntax accepting the token sequences leading up to
	// the ambiguity.
	Prefix() *Syntax
	// AddPrefix returns the same conflict with p sequenced in front of its
	// prefix. Used while conflicts propagate out of nested sequences.
	AddPrefix(p *Syntax) Conflict

	fmt.Stringer
}

// NullableConflict reports a disjunction both sides of which accept the
// empty input.
type NullableConflict struct {
	prefix *Syntax
	source *Syntax
}

// FirstConflict reports a disjunction whose sides can start with a common
// kind.
type FirstConflict struct {
	prefix    *Syntax
	Ambiguous []scallion.Kind
	source    *Syntax
}

// FollowConflict reports a sequence whose right side can start with a kind
// the left side must not be followed by.
type FollowConflict struct {
	prefix    *Syntax
	Ambiguous []scallion.Kind
	source    *Syntax
}

// LeftRecursiveConflict reports a recursive node that re-enters itself
// without consuming input.
type LeftRecursiveConflict struct {
	prefix *Syntax
	source *Syntax
}

func (c NullableConflict) Source() *Syntax { return c.source }
func (c NullableConflict) Prefix() *Syntax { return c.prefix }
func (c NullableConflict) AddPrefix(p *Syntax) Conflict {
	return NullableConflict{prefix: p.Seq(c.prefix), source: c.source}
}
func (c NullableConflict) String() string {
	return fmt.Sprintf("nullable conflict: both sides of %s accept the empty input", c.source)
}

func (c FirstConflict) Source() *Syntax { return c.source }
func (c FirstConflict) Prefix() *Syntax { return c.prefix }
func (c FirstConflict) AddPrefix(p *Syntax) Conflict {
	return FirstConflict{prefix: p.Seq(c.prefix), Ambiguous: c.Ambiguous, source: c.source}
}
func (c FirstConflict) String() string {
	return fmt.Sprintf("FIRST conflict: both sides of %s may start with %v", c.source, c.Ambiguous)
}

func (c FollowConflict) Source() *Syntax { return c.source }
func (c FollowConflict) Prefix() *Syntax { return c.prefix }
func (c FollowConflict) AddPrefix(p *Syntax) Conflict {
	return FollowConflict{prefix: p.Seq(c.prefix), Ambiguous: c.Ambiguous, source: c.source}
}
func (c FollowConflict) String() string {
	return fmt.Sprintf("FOLLOW conflict: %v may both end and continue %s", c.Ambiguous, c.source)
}

func (c LeftRecursiveConflict) Source() *Syntax { return c.source }
func (c LeftRecursiveConflict) Prefix() *Syntax { return c.prefix }
func (c LeftRecursiveConflict) AddPrefix(p *Syntax) Conflict {
	return LeftRecursiveConflict{prefix: p.Seq(c.prefix), source: c.source}
}
func (c LeftRecursiveConflict) String() string {
	return fmt.Sprintf("left recursion: %s re-enters itself without consuming input", c.source)
}

// --- The analyzer -----------------------------------------------------------

// IsLL1 reports whether one token of look-ahead always decides the parse.
// Parsing a syntax for which IsLL1 is false has no defined semantics (it
// still terminates, but may reject accepted input).
func (s *Syntax) IsLL1() bool {
	return s.isLL1(nil)
}

func (s *Syntax) isLL1(path visited) bool {
	entry := len(path) == 0
	if entry && s.cache.ll1Known {
		return s.cache.ll1Value
	}
	ll1 := true
	switch s.op {
	case opSuccess, opFailure, opElem:
		// always
	case opTransform:
		ll1 = s.left.isLL1(path)
	case opSequence, opConcat:
		_, overlap := followOverlap(s.left, s.right)
		ll1 = !overlap && s.left.isLL1(path) && s.right.isLL1(path)
	case opDisjunction:
		_, lNullable := s.left.nullable(nil)
		_, rNullable := s.right.nullable(nil)
		ll1 = !(lNullable && rNullable) &&
			s.left.first(nil).disjointWith(s.right.first(nil)) &&
			s.left.isLL1(path) && s.right.isLL1(path)
	case opRecursive:
		if path[s.id] {
			return true // cycle base
		}
		if s.isLeftRecursive() {
			ll1 = false
			break
		}
		path = path.enter(s.id)
		ll1 = s.force().isLL1(path)
		path.leave(s.id)
	}
	if entry {
		s.cache.ll1Value, s.cache.ll1Known = ll1, true
	}
	return ll1
}

// followOverlap computes the kinds in FIRST(r) that l must not be followed
// by, together with the merged snf witness for them.
func followOverlap(l, r *Syntax) (FollowConflict, bool) {
	snf := l.shouldNotFollow(nil)
	if len(snf) == 0 {
		return FollowConflict{}, false
	}
	rFirst := r.first(nil)
	var ambiguous []scallion.Kind
	witness := Fail()
	for k, w := range snf {
		if rFirst.has(k) {
			ambiguous = append(ambiguous, k)
			witness = witness.Or(w)
		}
	}
	if len(ambiguous) == 0 {
		return FollowConflict{}, false
	}
	return FollowConflict{prefix: witness, Ambiguous: ambiguous}, true
}

// Conflicts returns all LL(1) ambiguities of the syntax. The result is
// empty exactly when IsLL1 holds.
func (s *Syntax) Conflicts() []Conflict {
	return s.conflicts(nil)
}

func (s *Syntax) conflicts(path visited) []Conflict {
	var found []Conflict
	switch s.op {
	case opSuccess, opFailure, opElem:
		// never
	case opTransform:
		found = s.left.conflicts(path)
	case opSequence, opConcat:
		found = s.left.conflicts(path)
		for _, c := range s.right.conflicts(path) {
			found = append(found, c.AddPrefix(s.left))
		}
		if c, overlap := followOverlap(s.left, s.right); overlap {
			c.source = s
			found = append(found, c)
		}
	case opDisjunction:
		found = append(s.left.conflicts(path), s.right.conflicts(path)...)
		_, lNullable := s.left.nullable(nil)
		_, rNullable := s.right.nullable(nil)
		if lNullable && rNullable {
			found = append(found, NullableConflict{prefix: Epsilon(nil), source: s})
		}
		if common := s.left.first(nil).intersect(s.right.first(nil)); common.size() > 0 {
			found = append(found, FirstConflict{
				prefix:    Epsilon(nil),
				Ambiguous: common.values(),
				source:    s,
			})
		}
	case opRecursive:
		if path[s.id] {
			return nil
		}
		if s.isLeftRecursive() {
			found = append(found, LeftRecursiveConflict{prefix: Epsilon(nil), source: s})
		}
		path = path.enter(s.id)
		found = append(found, s.force().conflicts(path)...)
		path.leave(s.id)
	}
	if len(found) > 0 {
		tracer().Debugf("%d conflict(s) at %s", len(found), s)
	}
	return found
}
