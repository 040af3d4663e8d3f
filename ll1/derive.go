package ll1

import (
	"fmt"

	"github.com/cache-nez/scallion"
)

// Derive returns the residual syntax after consuming one token of the given
// kind. For an LL(1) receiver, the returned syntax accepts exactly the
// remainders of inputs the receiver accepts that start with that token; a
// disjunction derives only one side (the left one if both can start with
// the kind), so on other syntaxes remainders may be lost. Derive is defined
// for every well-formed syntax and always terminates.
func (s *Syntax) Derive(tok scallion.Token, kind scallion.Kind) *Syntax {
	if s.op != opFailure && !s.IsProductive() {
		// An empty language stays empty; this also keeps the derivative
		// total on degenerate (left-recursive) terms.
		return failure
	}
	switch s.op {
	case opSuccess, opFailure:
		return failure
	case opElem:
		if s.kind == kind {
			return Epsilon(tok)
		}
		return failure
	case opTransform:
		return s.left.Derive(tok, kind).MapInv(s.apply, s.invert)
	case opSequence:
		// The token goes to the left side if anything of it remains;
		// otherwise the left side vanishes into its nullable value and the
		// token goes to the right.
		l := s.left.Derive(tok, kind)
		if l.IsProductive() {
			return l.Seq(s.right)
		}
		if v, ok := s.left.Nullable(); ok {
			return Epsilon(v).Seq(s.right.Derive(tok, kind))
		}
		return failure
	case opConcat:
		l := s.left.Derive(tok, kind)
		if l.IsProductive() {
			return l.Concat(s.right)
		}
		if v, ok := s.left.Nullable(); ok {
			return Epsilon(v).Concat(s.right.Derive(tok, kind))
		}
		return failure
	case opDisjunction:
		// One token of look-ahead selects the side. For an LL(1) syntax at
		// most one side can claim the kind; ties prefer the left.
		if s.left.first(nil).has(kind) {
			return s.left.Derive(tok, kind)
		}
		if s.right.first(nil).has(kind) {
			return s.right.Derive(tok, kind)
		}
		return failure
	case opRecursive:
		return s.force().Derive(tok, kind)
	}
	return failure
}

// --- Parse results ----------------------------------------------------------

// A Result is the outcome of running a syntax over an input. Every result
// carries the residual syntax at the point the loop stopped, so callers can
// continue parsing or diagnose (the expected kinds are First of the
// residual).
type Result interface {
	// Residual returns the syntax state at the point the parse stopped.
	Residual() *Syntax
	// Accepted returns the parsed value, if the input was accepted.
	Accepted() (interface{}, bool)

	fmt.Stringer
}

// Parsed reports an accepted input together with the produced value.
type Parsed struct {
	Value interface{}
	Rest  *Syntax
}

// UnexpectedToken reports the first token the syntax could not consume.
type UnexpectedToken struct {
	Token scallion.Token
	Rest  *Syntax
}

// UnexpectedEnd reports input that ended while the syntax still expected
// tokens.
type UnexpectedEnd struct {
	Rest *Syntax
}

func (r Parsed) Residual() *Syntax { return r.Rest }
func (r Parsed) Accepted() (interface{}, bool) {
	return r.Value, true
}
func (r Parsed) String() string {
	return fmt.Sprintf("parsed: %v", r.Value)
}

func (r UnexpectedToken) Residual() *Syntax { return r.Rest }
func (r UnexpectedToken) Accepted() (interface{}, bool) {
	return nil, false
}
func (r UnexpectedToken) String() string {
	return fmt.Sprintf("unexpected token of kind %v, expected one of %v",
		r.Token.Kind(), r.Rest.First())
}

func (r UnexpectedEnd) Residual() *Syntax { return r.Rest }
func (r UnexpectedEnd) Accepted() (interface{}, bool) {
	return nil, false
}
func (r UnexpectedEnd) String() string {
	return fmt.Sprintf("unexpected end of input, expected one of %v", r.Rest.First())
}

// --- The parse loop ---------------------------------------------------------

// Apply runs the syntax over a stream of tokens. It consumes the stream up
// to and including the first offending token, if any.
//
// Apply assumes an LL(1) syntax; see IsLL1 and Conflicts. On other syntaxes
// it still terminates, but which alternative it commits to is unspecified.
func (s *Syntax) Apply(stream scallion.TokenStream) Result {
	current := s
	for {
		tok, ok := stream.Next()
		if !ok {
			break
		}
		kind := tok.Kind()
		next := current.Derive(tok, kind)
		if !next.IsProductive() {
			tracer().Debugf("parse stopped at token of kind %v", kind)
			return UnexpectedToken{Token: tok, Rest: current}
		}
		current = next
	}
	if v, ok := current.Nullable(); ok {
		return Parsed{Value: v, Rest: current}
	}
	return UnexpectedEnd{Rest: current}
}

// ApplyTokens runs the syntax over a token slice.
func (s *Syntax) ApplyTokens(tokens ...scallion.Token) Result {
	return s.Apply(scallion.StreamOf(tokens...))
}
