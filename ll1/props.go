package ll1

import (
	"github.com/cache-nez/scallion"
	"github.com/emirpasic/gods/sets/hashset"
)

// All analyses in this file follow one scheme: a recursive walk over the
// term graph that carries the set of recursion identities on the current
// path. Re-entering a recursive node on the same path returns the
// property's cycle-base value (the bottom of its lattice); since every
// composite rule is monotone and the lattices are finite, the walk computes
// the least fixed point in a single pass.
//
// Entry-level results (empty path) are memoized per node; results computed
// deeper inside a walk are path-dependent approximations and are not.

// The recursion identities on the current walk path.
type visited map[uint64]bool

func (v visited) enter(id uint64) visited {
	if v == nil {
		v = make(visited)
	}
	v[id] = true
	return v
}

func (v visited) leave(id uint64) {
	delete(v, id)
}

// Lazily memoized analysis results, attached per node.
type propCache struct {
	nullValue  interface{}
	nullOK     bool
	nullKnown  bool
	prodValue  bool
	prodKnown  bool
	firstSet   kindSet
	firstKnown bool
	snf        map[scallion.Kind]*Syntax
	snfKnown   bool
	kindsSet   kindSet
	kindsKnown bool
	ll1Value   bool
	ll1Known   bool
}

// --- Kind sets --------------------------------------------------------------

// A kindSet is an unordered set of token kinds. Kinds are opaque comparable
// values, which makes a hash set their natural container.
type kindSet struct {
	set *hashset.Set
}

func newKindSet(kinds ...scallion.Kind) kindSet {
	s := kindSet{set: hashset.New()}
	for _, k := range kinds {
		s.set.Add(k)
	}
	return s
}

func (s kindSet) add(k scallion.Kind) {
	s.set.Add(k)
}

func (s kindSet) has(k scallion.Kind) bool {
	return s.set.Contains(k)
}

func (s kindSet) size() int {
	return s.set.Size()
}

func (s kindSet) values() []scallion.Kind {
	vs := s.set.Values()
	kinds := make([]scallion.Kind, len(vs))
	for i, v := range vs {
		kinds[i] = v.(scallion.Kind)
	}
	return kinds
}

func (s kindSet) addAll(o kindSet) {
	for _, k := range o.set.Values() {
		s.set.Add(k)
	}
}

func (s kindSet) union(o kindSet) kindSet {
	u := newKindSet()
	u.addAll(s)
	u.addAll(o)
	return u
}

func (s kindSet) intersect(o kindSet) kindSet {
	i := newKindSet()
	for _, k := range s.set.Values() {
		if o.set.Contains(k) {
			i.set.Add(k)
		}
	}
	return i
}

func (s kindSet) disjointWith(o kindSet) bool {
	for _, k := range s.set.Values() {
		if o.set.Contains(k) {
			return false
		}
	}
	return true
}

// --- Nullability ------------------------------------------------------------

// Nullable reports whether the syntax accepts the empty input and, if so,
// the value it produces for it.
func (s *Syntax) Nullable() (interface{}, bool) {
	return s.nullable(nil)
}

func (s *Syntax) nullable(path visited) (interface{}, bool) {
	entry := len(path) == 0
	if entry && s.cache.nullKnown {
		return s.cache.nullValue, s.cache.nullOK
	}
	var value interface{}
	var ok bool
	switch s.op {
	case opSuccess:
		value, ok = s.value, true
	case opFailure, opElem:
		value, ok = nil, false
	case opTransform:
		if inner, innerOK := s.left.nullable(path); innerOK {
			value, ok = s.apply(inner), true
		}
	case opSequence:
		if lv, lok := s.left.nullable(path); lok {
			if rv, rok := s.right.nullable(path); rok {
				value, ok = Pair{lv, rv}, true
			}
		}
	case opConcat:
		if lv, lok := s.left.nullable(path); lok {
			if rv, rok := s.right.nullable(path); rok {
				value, ok = joinSeqValues(lv, rv), true
			}
		}
	case opDisjunction:
		if value, ok = s.left.nullable(path); !ok {
			value, ok = s.right.nullable(path)
		}
	case opRecursive:
		if path[s.id] {
			return nil, false // cycle base
		}
		path = path.enter(s.id)
		value, ok = s.force().nullable(path)
		path.leave(s.id)
	}
	if entry {
		s.cache.nullValue, s.cache.nullOK = value, ok
		s.cache.nullKnown = true
	}
	return value, ok
}

// --- Productivity -----------------------------------------------------------

// IsProductive reports whether the syntax accepts any input at all, i.e.
// whether its language is non-empty.
func (s *Syntax) IsProductive() bool {
	return s.productive(nil)
}

func (s *Syntax) productive(path visited) bool {
	entry := len(path) == 0
	if entry && s.cache.prodKnown {
		return s.cache.prodValue
	}
	var prod bool
	switch s.op {
	case opSuccess, opElem:
		prod = true
	case opFailure:
		prod = false
	case opTransform:
		prod = s.left.productive(path)
	case opSequence, opConcat:
		prod = s.left.productive(path) && s.right.productive(path)
	case opDisjunction:
		prod = s.left.productive(path) || s.right.productive(path)
	case opRecursive:
		if path[s.id] {
			return false // cycle base
		}
		path = path.enter(s.id)
		prod = s.force().productive(path)
		path.leave(s.id)
	}
	if entry {
		s.cache.prodValue, s.cache.prodKnown = prod, true
	}
	return prod
}

// --- FIRST ------------------------------------------------------------------

// First returns the kinds that may start an accepted input.
func (s *Syntax) First() []scallion.Kind {
	return s.first(nil).values()
}

func (s *Syntax) first(path visited) kindSet {
	entry := len(path) == 0
	if entry && s.cache.firstKnown {
		return s.cache.firstSet
	}
	first := newKindSet()
	switch s.op {
	case opSuccess, opFailure:
		// empty
	case opElem:
		first.add(s.kind)
	case opTransform:
		first = s.left.first(path)
	case opSequence, opConcat:
		first.addAll(s.left.first(path))
		if _, ok := s.left.nullable(nil); ok {
			first.addAll(s.right.first(path))
		}
	case opDisjunction:
		first.addAll(s.left.first(path))
		first.addAll(s.right.first(path))
	case opRecursive:
		if path[s.id] {
			return first // cycle base: empty
		}
		path = path.enter(s.id)
		first = s.force().first(path)
		path.leave(s.id)
	}
	if entry {
		s.cache.firstSet, s.cache.firstKnown = first, true
	}
	return first
}

// --- SHOULD-NOT-FOLLOW ------------------------------------------------------

// ShouldNotFollow returns the kinds that must not appear immediately after
// this syntax if it may stop here. The associated syntax is a witness: a
// parser accepting the tokens leading up to the ambiguity, used by conflict
// reports.
func (s *Syntax) ShouldNotFollow() map[scallion.Kind]*Syntax {
	return s.shouldNotFollow(nil)
}

// mergeSNF folds the entries of b into a. Witnesses for a kind present in
// both maps are merged by disjunction.
func mergeSNF(a, b map[scallion.Kind]*Syntax) map[scallion.Kind]*Syntax {
	if len(b) == 0 {
		return a
	}
	if a == nil {
		a = make(map[scallion.Kind]*Syntax, len(b))
	}
	for k, witness := range b {
		if prev, ok := a[k]; ok {
			a[k] = prev.Or(witness)
		} else {
			a[k] = witness
		}
	}
	return a
}

func (s *Syntax) shouldNotFollow(path visited) map[scallion.Kind]*Syntax {
	entry := len(path) == 0
	if entry && s.cache.snfKnown {
		return s.cache.snf
	}
	var snf map[scallion.Kind]*Syntax
	switch s.op {
	case opSuccess, opFailure, opElem:
		// empty
	case opTransform:
		snf = s.left.shouldNotFollow(path)
	case opSequence, opConcat:
		// What must not follow r must not follow the whole sequence; its
		// witnesses gain l as prefix. If r can vanish, l's constraint
		// becomes visible as well.
		for k, witness := range s.right.shouldNotFollow(path) {
			snf = mergeSNF(snf, map[scallion.Kind]*Syntax{k: s.left.Seq(witness)})
		}
		if _, ok := s.right.nullable(nil); ok {
			snf = mergeSNF(snf, s.left.shouldNotFollow(path))
		}
	case opDisjunction:
		snf = mergeSNF(snf, s.left.shouldNotFollow(path))
		snf = mergeSNF(snf, s.right.shouldNotFollow(path))
		// A nullable side must not be followed by a kind that could start
		// the other side; the empty witness marks the ambiguity at this
		// very point.
		if _, ok := s.right.nullable(nil); ok {
			for _, k := range s.left.first(path).values() {
				snf = mergeSNF(snf, map[scallion.Kind]*Syntax{k: Epsilon(nil)})
			}
		}
		if _, ok := s.left.nullable(nil); ok {
			for _, k := range s.right.first(path).values() {
				snf = mergeSNF(snf, map[scallion.Kind]*Syntax{k: Epsilon(nil)})
			}
		}
	case opRecursive:
		if path[s.id] {
			return nil // cycle base: empty
		}
		path = path.enter(s.id)
		snf = s.force().shouldNotFollow(path)
		path.leave(s.id)
	}
	if entry {
		s.cache.snf, s.cache.snfKnown = snf, true
	}
	return snf
}

// --- Kinds ------------------------------------------------------------------

// Kinds returns all kinds mentioned anywhere in the term graph.
func (s *Syntax) Kinds() []scallion.Kind {
	return s.kinds(nil).values()
}

func (s *Syntax) kinds(path visited) kindSet {
	entry := len(path) == 0
	if entry && s.cache.kindsKnown {
		return s.cache.kindsSet
	}
	all := newKindSet()
	switch s.op {
	case opSuccess, opFailure:
		// empty
	case opElem:
		all.add(s.kind)
	case opTransform:
		all = s.left.kinds(path)
	case opSequence, opConcat, opDisjunction:
		all.addAll(s.left.kinds(path))
		all.addAll(s.right.kinds(path))
	case opRecursive:
		if path[s.id] {
			return all
		}
		path = path.enter(s.id)
		all = s.force().kinds(path)
		path.leave(s.id)
	}
	if entry {
		s.cache.kindsSet, s.cache.kindsKnown = all, true
	}
	return all
}

// --- Left recursion ---------------------------------------------------------

// calledLeft reports whether this subterm can reach rec without consuming
// any token first. On the recursive node itself this is the defining test
// for left recursion.
func (s *Syntax) calledLeft(rec *Syntax, path visited) bool {
	switch s.op {
	case opSuccess, opFailure, opElem:
		return false
	case opTransform:
		return s.left.calledLeft(rec, path)
	case opSequence, opConcat:
		if s.left.calledLeft(rec, path) {
			return true
		}
		if _, ok := s.left.nullable(nil); ok {
			return s.right.calledLeft(rec, path)
		}
		return false
	case opDisjunction:
		return s.left.calledLeft(rec, path) || s.right.calledLeft(rec, path)
	case opRecursive:
		if s.id == rec.id {
			return true
		}
		if path[s.id] {
			return false
		}
		path = path.enter(s.id)
		defer path.leave(s.id)
		return s.force().calledLeft(rec, path)
	}
	return false
}

// isLeftRecursive reports whether a recursive node re-enters itself without
// consuming input.
func (s *Syntax) isLeftRecursive() bool {
	if s.op != opRecursive {
		return false
	}
	return s.force().calledLeft(s, visited{s.id: true})
}
