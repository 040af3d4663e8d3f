package ll1

import (
	"fmt"
	"sync/atomic"

	"github.com/cache-nez/scallion"
)

// The variants of the syntax algebra. A Syntax value is a node of a finite
// graph over these variants; Recursive nodes introduce back-edges, all other
// variants are acyclic.
type opcode int8

const (
	opSuccess opcode = iota
	opFailure
	opElem
	opTransform
	opSequence
	opConcat
	opDisjunction
	opRecursive
)

// Pair is the value produced by a sequence of two syntaxes. It is a
// dedicated record (not a generic slice) so that reverse-token enumeration
// can split it unambiguously.
type Pair struct {
	First  interface{}
	Second interface{}
}

// A Transformer maps the value of an inner syntax to the value of a
// transformed syntax. Transformers are expected to be pure.
type Transformer func(interface{}) interface{}

// An Inverter maps a target value back to the set of inner values that the
// forward transformer would map onto it. Inverters drive reverse-token
// enumeration; a nil Inverter means "no candidates known".
type Inverter func(interface{}) []interface{}

// Syntax is a parser for some language over token kinds, producing a value
// for every accepted input. Syntaxes are immutable and freely shared;
// combinators construct new nodes rather than mutating. The zero value is
// not a valid syntax, use the constructors.
type Syntax struct {
	op     opcode
	value  interface{}   // opSuccess: the constant value
	kind   scallion.Kind // opElem: the accepted kind
	apply  Transformer   // opTransform
	invert Inverter      // opTransform
	left   *Syntax       // binary variants; also the inner term of opTransform
	right  *Syntax       // binary variants
	id     uint64        // opRecursive: globally unique identity
	thunk  func() *Syntax // opRecursive: deferred definition, nil once forced
	inner  *Syntax        // opRecursive: the forced definition

	cache propCache // lazily memoized analysis results
}

// The one Failure node. Failure carries no payload, so all uses share it.
var failure = &Syntax{op: opFailure}

// Identities for recursive nodes come from one monotone counter.
var recIDs uint64

// Fail returns the syntax that accepts no input at all.
func Fail() *Syntax {
	return failure
}

// Epsilon returns a syntax accepting the empty input, producing v.
func Epsilon(v interface{}) *Syntax {
	return &Syntax{op: opSuccess, value: v}
}

// Elem returns a syntax accepting exactly one token of the given kind,
// producing that token.
func Elem(kind scallion.Kind) *Syntax {
	return &Syntax{op: opElem, kind: kind}
}

// Recursive creates a syntax defined in terms of itself. The definition is
// not invoked here but deferred until the first analysis or parse touches
// the node, so it may refer back to the value Recursive returns:
//
//	var list *ll1.Syntax
//	list = ll1.Recursive(func() *ll1.Syntax {
//	    return ll1.Epsilon(nil).Or(ll1.Elem(comma).SkipLeft(list))
//	})
//
// Every call allocates a fresh identity; recursive nodes are equal only to
// themselves.
func Recursive(definition func() *Syntax) *Syntax {
	return &Syntax{
		op:    opRecursive,
		id:    atomic.AddUint64(&recIDs, 1),
		thunk: definition,
	}
}

// force resolves a recursive node to its definition, invoking the deferred
// thunk exactly once. For any other variant force is the identity.
func (s *Syntax) force() *Syntax {
	if s.op != opRecursive {
		return s
	}
	if s.inner == nil {
		if s.thunk == nil {
			panic("ll1: recursive syntax forced during its own definition")
		}
		thunk := s.thunk
		s.thunk = nil
		s.inner = thunk()
	}
	return s.inner
}

// --- Binary combinators -----------------------------------------------------

// Seq sequences two syntaxes: first l, then r. The produced value is the
// Pair of both values.
//
// Sequencing two constants folds into a constant; a failing side
// short-circuits to failure.
func (l *Syntax) Seq(r *Syntax) *Syntax {
	if l.op == opFailure || r.op == opFailure {
		return failure
	}
	if l.op == opSuccess && r.op == opSuccess {
		return Epsilon(Pair{l.value, r.value})
	}
	return &Syntax{op: opSequence, left: l, right: r}
}

// Concat sequences two syntaxes whose values are sequences (slices) and
// produces their concatenation.
//
// Concat rebalances to the right, so that accumulating on the left stays
// linear.
func (l *Syntax) Concat(r *Syntax) *Syntax {
	if l.op == opFailure || r.op == opFailure {
		return failure
	}
	if l.op == opSuccess && r.op == opSuccess {
		return Epsilon(joinSeqValues(l.value, r.value))
	}
	if l.op == opConcat {
		return l.left.Concat(l.right.Concat(r))
	}
	return &Syntax{op: opConcat, left: l, right: r}
}

// Or is the disjunction of two syntaxes: whichever side accepts the input
// provides the value. For the result to be LL(1) the sides must not overlap
// (see Conflicts).
//
// Failure is the neutral element and collapses away.
func (l *Syntax) Or(r *Syntax) *Syntax {
	if l.op == opFailure {
		return r
	}
	if r.op == opFailure {
		return l
	}
	return &Syntax{op: opDisjunction, left: l, right: r}
}

// OrElse is Or under a name matching its use between same-typed
// alternatives.
func (l *Syntax) OrElse(r *Syntax) *Syntax {
	return l.Or(r)
}

// Map transforms the produced value with f. The reverse direction is left
// undefined; see MapInv.
func (s *Syntax) Map(f Transformer) *Syntax {
	return s.MapInv(f, nil)
}

// MapInv transforms the produced value with f and registers inv as the
// inverse: inv maps a target value to candidate inner values, enabling
// TokensOf to run the grammar backwards.
func (s *Syntax) MapInv(f Transformer, inv Inverter) *Syntax {
	if s.op == opFailure {
		return failure
	}
	return &Syntax{op: opTransform, apply: f, invert: inv, left: s}
}

// --- Sequence-value plumbing ------------------------------------------------

// Sequence-typed values are []interface{}. Values of Many, RepSep and
// friends have this shape, as do both sides of a Concat.

func asSeqValue(v interface{}) ([]interface{}, bool) {
	if v == nil {
		return nil, false
	}
	vs, ok := v.([]interface{})
	return vs, ok
}

func joinSeqValues(a, b interface{}) interface{} {
	as, _ := asSeqValue(a)
	bs, _ := asSeqValue(b)
	joined := make([]interface{}, 0, len(as)+len(bs))
	joined = append(joined, as...)
	return append(joined, bs...)
}

// --- Stringer ---------------------------------------------------------------

// String renders the shape of a syntax. Recursive nodes print as their
// identity to keep the output finite.
func (s *Syntax) String() string {
	switch s.op {
	case opSuccess:
		return fmt.Sprintf("ε(%v)", s.value)
	case opFailure:
		return "⊥"
	case opElem:
		return fmt.Sprintf("elem(%v)", s.kind)
	case opTransform:
		return fmt.Sprintf("map(%s)", s.left)
	case opSequence:
		return fmt.Sprintf("(%s ~ %s)", s.left, s.right)
	case opConcat:
		return fmt.Sprintf("(%s ++ %s)", s.left, s.right)
	case opDisjunction:
		return fmt.Sprintf("(%s | %s)", s.left, s.right)
	case opRecursive:
		return fmt.Sprintf("rec#%d", s.id)
	}
	return "?"
}
