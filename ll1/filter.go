package ll1

import (
	"github.com/cache-nez/scallion"
)

// Filter returns a syntax accepting exactly those inputs of s that consist
// of kinds satisfying pred: every single-token acceptor of a filtered-out
// kind becomes a failing parser. The structure of the term graph is
// preserved, with recursive nodes rebuilt under fresh identities shared
// within this one invocation. Filtering the same syntax twice yields two
// distinct term graphs.
func (s *Syntax) Filter(pred func(scallion.Kind) bool) *Syntax {
	return s.filter(pred, make(map[uint64]*Syntax))
}

func (s *Syntax) filter(pred func(scallion.Kind) bool, memo map[uint64]*Syntax) *Syntax {
	switch s.op {
	case opSuccess, opFailure:
		return s
	case opElem:
		if pred(s.kind) {
			return s
		}
		return failure
	case opTransform:
		return s.left.filter(pred, memo).MapInv(s.apply, s.invert)
	case opSequence:
		return s.left.filter(pred, memo).Seq(s.right.filter(pred, memo))
	case opConcat:
		return s.left.filter(pred, memo).Concat(s.right.filter(pred, memo))
	case opDisjunction:
		return s.left.filter(pred, memo).Or(s.right.filter(pred, memo))
	case opRecursive:
		if filtered, ok := memo[s.id]; ok {
			return filtered
		}
		filtered := Recursive(nil)
		memo[s.id] = filtered
		filtered.thunk = func() *Syntax {
			return s.force().filter(pred, memo)
		}
		return filtered
	}
	return failure
}
