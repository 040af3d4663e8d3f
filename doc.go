/*
Package scallion is an LL(1) parsing-with-derivatives toolbox.

Scallion lets clients describe LL(1) languages as values: parsers are built
from a handful of primitives and combinators, then analysed and run without a
code-generation step. Package structure is as follows:

■ ll1: Package ll1 implements the combinator algebra, the grammar analyses
(nullability, FIRST, SHOULD-NOT-FOLLOW, productivity), LL(1) conflict
reporting, the derivative-based parse loop, and enumeration of accepted
token-kind sequences.

■ produce: Package produce implements lazy, memoized, duplicable producers of
ordered sequences, the machinery behind trail and token enumeration.

■ scanner: Package scanner defines a tokenizer interface together with two
implementations, for clients that do not bring their own lexer.

The base package contains data types which are used throughout all the other
packages.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2023–2026 cache-nez

*/
package scallion
