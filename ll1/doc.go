/*
Package ll1 implements LL(1) parsing with derivatives, on top of a parser
combinator algebra.

Building a Syntax

Parsers are ordinary values of type Syntax, built from primitives and
combinators. Clients combine single-token acceptors, constant producers and
an always-failing parser with sequencing, disjunction, mapping and recursion.

Example:

    num := ll1.Elem(NUM)
    var expr *ll1.Syntax
    expr = ll1.Recursive(func() *ll1.Syntax {
        paren := ll1.Elem(LPAREN).Void().SkipLeft(expr).SkipRight(ll1.Elem(RPAREN).Void())
        return num.Or(paren)
    })

Recursive nodes are the only source of cycles in the term graph; they carry a
globally unique identity and force their definition lazily.

Static Grammar Analysis

Four mutually recursive properties are computed on demand over the possibly
cyclic term graph: nullability, productivity, the FIRST set and the
SHOULD-NOT-FOLLOW set. They drive an LL(1) conflict detector which reports
ambiguities as structured values, each carrying a witness prefix parser:

    if !expr.IsLL1() {
        for _, c := range expr.Conflicts() {
            fmt.Println(c)
        }
    }

Parsing

Parsing consumes one token at a time by computing the derivative of the
current syntax with respect to the token. The loop never backtracks; on the
first offending token it stops and reports, together with the residual
syntax, from which the set of expected kinds can be read off:

    result := expr.Apply(tokens)
    switch r := result.(type) {
    case ll1.Parsed:          // r.Value, r.Rest
    case ll1.UnexpectedToken: // r.Token, r.Rest
    case ll1.UnexpectedEnd:   // r.Rest
    }

Trails and Completion

Syntax.Trails enumerates the token-kind sequences a syntax accepts, shortest
first, lazily (grammars with loops accept infinitely many). TokensOf inverts
a parse: given a target value it enumerates token sequences producing that
value. Completions and Complete extend a partial input to an accepted one.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2023–2026 cache-nez

*/
package ll1

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'scallion.ll1'.
func tracer() tracing.Trace {
	return tracing.Select("scallion.ll1")
}
