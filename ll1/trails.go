package ll1

import (
	"fmt"
	"reflect"

	"github.com/cache-nez/scallion"
	"github.com/cache-nez/scallion/produce"
	"github.com/cnf/structhash"
)

// Enumeration of accepted inputs. Both directions, kind-sequences (Trails)
// and token-sequences for a target value (TokensOf), are built from the same
// producer algebra: disjunctions become ordered unions, sequences become
// measure-ordered products, and recursive nodes memoize their producer so
// self-references observe independent views of one shared enumeration.

// trailLE orders trails by length.
func trailLE(x, y interface{}) bool {
	return len(x.(scallion.Trail)) <= len(y.(scallion.Trail))
}

func trailMeasure(x interface{}) int {
	return len(x.(scallion.Trail))
}

func trailJoin(x, y interface{}) interface{} {
	return x.(scallion.Trail).Extend(y.(scallion.Trail))
}

// Trails enumerates the token-kind sequences the syntax accepts, in
// non-decreasing length. The enumeration is lazy: grammars with loops
// accept infinitely many trails, so consume a finite prefix only.
func (s *Syntax) Trails() *produce.Producer {
	return s.trails(make(map[uint64]*produce.Producer))
}

func (s *Syntax) trails(memo map[uint64]*produce.Producer) *produce.Producer {
	switch s.op {
	case opSuccess:
		return produce.Single(scallion.Trail{})
	case opFailure:
		return produce.Empty()
	case opElem:
		return produce.Single(scallion.Trail{s.kind})
	case opTransform:
		return s.left.trails(memo)
	case opSequence, opConcat:
		return produce.Product(s.left.trails(memo), s.right.trails(memo), trailJoin, trailMeasure)
	case opDisjunction:
		return produce.Union(s.left.trails(memo), s.right.trails(memo), trailLE)
	case opRecursive:
		// The producer of a recursive node is created once and memoized;
		// every use site, including self-references reached while the
		// definition unfolds, gets an independent from-the-start view of
		// it. The lazy indirection makes the handle exist before the
		// definition is consulted.
		if root, ok := memo[s.id]; ok {
			return root.Duplicate()
		}
		root := produce.Lazily(func() *produce.Producer {
			return s.force().trails(memo)
		})
		memo[s.id] = root
		return root.Duplicate()
	}
	return produce.Empty()
}

// --- Reverse token enumeration ----------------------------------------------

// tokensLE orders token sequences by length.
func tokensLE(x, y interface{}) bool {
	return len(x.([]scallion.Token)) <= len(y.([]scallion.Token))
}

func tokensMeasure(x interface{}) int {
	return len(x.([]scallion.Token))
}

func tokensJoin(x, y interface{}) interface{} {
	xs := x.([]scallion.Token)
	ys := y.([]scallion.Token)
	joined := make([]scallion.Token, 0, len(xs)+len(ys))
	joined = append(joined, xs...)
	return append(joined, ys...)
}

// Reverse-token producers of recursive nodes are memoized per recursion
// identity and target value; the target, an arbitrary caller value, is
// keyed by a structural hash.
type tokensMemoKey struct {
	id     uint64
	target string
}

func hashTarget(v interface{}) string {
	if v == nil {
		return "<nil>"
	}
	if h, err := structhash.Hash(v, 1); err == nil {
		return h
	}
	return fmt.Sprintf("%#v", v)
}

// TokensOf enumerates the token sequences that parse to the given value, in
// non-decreasing length. The enumeration runs Transform nodes backwards
// through their registered Inverters; syntaxes mapped without an inverse
// contribute no sequences.
//
// For an LL(1) syntax with correct inverses, applying the syntax to any
// enumerated sequence reproduces the value.
func (s *Syntax) TokensOf(value interface{}) *produce.Producer {
	return s.collectTokens(value, make(map[tokensMemoKey]*produce.Producer))
}

func (s *Syntax) collectTokens(target interface{}, memo map[tokensMemoKey]*produce.Producer) *produce.Producer {
	switch s.op {
	case opSuccess:
		if reflect.DeepEqual(s.value, target) {
			return produce.Single([]scallion.Token{})
		}
		return produce.Empty()
	case opFailure:
		return produce.Empty()
	case opElem:
		if tok, ok := target.(scallion.Token); ok && tok.Kind() == s.kind {
			return produce.Single([]scallion.Token{tok})
		}
		return produce.Empty()
	case opTransform:
		if s.invert == nil {
			return produce.Empty()
		}
		candidates := s.invert(target)
		producers := make([]*produce.Producer, len(candidates))
		for i, c := range candidates {
			producers[i] = s.left.collectTokens(c, memo)
		}
		return produce.UnionAll(tokensLE, producers...)
	case opSequence:
		p, ok := target.(Pair)
		if !ok {
			return produce.Empty()
		}
		return produce.Product(
			s.left.collectTokens(p.First, memo),
			s.right.collectTokens(p.Second, memo),
			tokensJoin, tokensMeasure)
	case opConcat:
		// The target sequence may split anywhere between the two sides.
		vs, ok := asSeqValue(target)
		if !ok {
			return produce.Empty()
		}
		producers := make([]*produce.Producer, 0, len(vs)+1)
		for cut := 0; cut <= len(vs); cut++ {
			lhs := append([]interface{}{}, vs[:cut]...)
			rhs := append([]interface{}{}, vs[cut:]...)
			producers = append(producers, produce.Product(
				s.left.collectTokens(lhs, memo),
				s.right.collectTokens(rhs, memo),
				tokensJoin, tokensMeasure))
		}
		return produce.UnionAll(tokensLE, producers...)
	case opDisjunction:
		return produce.Union(
			s.left.collectTokens(target, memo),
			s.right.collectTokens(target, memo),
			tokensLE)
	case opRecursive:
		key := tokensMemoKey{id: s.id, target: hashTarget(target)}
		if root, ok := memo[key]; ok {
			return root.Duplicate()
		}
		root := produce.Lazily(func() *produce.Producer {
			return s.force().collectTokens(target, memo)
		})
		memo[key] = root
		return root.Duplicate()
	}
	return produce.Empty()
}
