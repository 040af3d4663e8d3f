/*
Package produce implements lazy producers of ordered item sequences.

A Producer is a potentially infinite sequence of items, generated on demand
and memoized. Producers are the work-horse behind enumerating the token-kind
sequences a parser accepts: grammar loops make these sequences infinite, so
they can only ever be observed through a lazy prefix.

Producers may be duplicated. A duplicate is an independent view onto the same
underlying sequence; items already produced are shared between views rather
than re-computed. This makes it safe to bind a producer to a node of a cyclic
grammar and hand fresh views to every use site, including uses from inside
the producer itself.

Two producers can be merged (Union) or combined into all pairings of their
items (Product). Both
operations preserve ordering: if the operands yield their items in
non-decreasing order of some measure, so does the result.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2023–2026 cache-nez

*/
package produce
