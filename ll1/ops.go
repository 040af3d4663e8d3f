package ll1

// Derived combinators. All of them bottom out in the primitives of
// syntax.go; none introduces a new variant.

// SkipLeft sequences l and r and keeps only r's value. l is expected to
// produce nil (apply Void or Unit to it first); otherwise the inverse
// direction finds no candidates.
func (l *Syntax) SkipLeft(r *Syntax) *Syntax {
	return l.Seq(r).MapInv(
		func(v interface{}) interface{} { return v.(Pair).Second },
		func(v interface{}) []interface{} { return []interface{}{Pair{nil, v}} },
	)
}

// SkipRight sequences l and r and keeps only l's value. r is expected to
// produce nil (apply Void or Unit to it first).
func (l *Syntax) SkipRight(r *Syntax) *Syntax {
	return l.Seq(r).MapInv(
		func(v interface{}) interface{} { return v.(Pair).First },
		func(v interface{}) []interface{} { return []interface{}{Pair{v, nil}} },
	)
}

// Append sequences a sequence-valued syntax with a single element and
// produces the sequence extended by that element.
func (l *Syntax) Append(r *Syntax) *Syntax {
	return l.Seq(r).MapInv(
		func(v interface{}) interface{} {
			p := v.(Pair)
			init, _ := asSeqValue(p.First)
			joined := make([]interface{}, 0, len(init)+1)
			joined = append(joined, init...)
			return append(joined, p.Second)
		},
		func(v interface{}) []interface{} {
			vs, ok := asSeqValue(v)
			if !ok || len(vs) == 0 {
				return nil
			}
			init := make([]interface{}, len(vs)-1)
			copy(init, vs[:len(vs)-1])
			return []interface{}{Pair{init, vs[len(vs)-1]}}
		},
	)
}

// Prepend sequences a single element with a sequence-valued syntax and
// produces the sequence extended in front by that element.
func (l *Syntax) Prepend(r *Syntax) *Syntax {
	return l.Seq(r).MapInv(
		func(v interface{}) interface{} {
			p := v.(Pair)
			rest, _ := asSeqValue(p.Second)
			joined := make([]interface{}, 0, len(rest)+1)
			joined = append(joined, p.First)
			return append(joined, rest...)
		},
		func(v interface{}) []interface{} {
			vs, ok := asSeqValue(v)
			if !ok || len(vs) == 0 {
				return nil
			}
			rest := make([]interface{}, len(vs)-1)
			copy(rest, vs[1:])
			return []interface{}{Pair{vs[0], rest}}
		},
	)
}

// Opt makes a syntax optional: it accepts the empty input as well,
// producing nil.
func (s *Syntax) Opt() *Syntax {
	return s.Or(Epsilon(nil))
}

// Unit discards the produced value, producing nil instead. The given
// defaults become the inverse candidates: they are the inner values
// reverse-token enumeration will try for a nil target.
func (s *Syntax) Unit(defaults ...interface{}) *Syntax {
	return s.MapInv(
		func(interface{}) interface{} { return nil },
		func(v interface{}) []interface{} {
			if v != nil {
				return nil
			}
			return defaults
		},
	)
}

// Void discards the produced value and registers no inverse candidates.
func (s *Syntax) Void() *Syntax {
	return s.Unit()
}

// Many accepts zero or more repetitions of s, producing the sequence of the
// values.
func Many(s *Syntax) *Syntax {
	var rec *Syntax
	rec = Recursive(func() *Syntax {
		return Epsilon([]interface{}{}).Or(s.Prepend(rec))
	})
	return rec
}

// Many1 accepts one or more repetitions of s.
func Many1(s *Syntax) *Syntax {
	return s.Prepend(Many(s))
}

// RepSep accepts zero or more repetitions of s, separated by sep. The
// separator values are discarded.
func RepSep(s, sep *Syntax) *Syntax {
	return Rep1Sep(s, sep).Or(Epsilon([]interface{}{}))
}

// Rep1Sep accepts one or more repetitions of s, separated by sep. The
// separator values are discarded; pass a Unit-ed separator if the result
// needs an inverse.
func Rep1Sep(s, sep *Syntax) *Syntax {
	return s.Prepend(Many(sep.SkipLeft(s)))
}

// OneOf folds any number of alternatives into a disjunction.
func OneOf(alternatives ...*Syntax) *Syntax {
	alt := Fail()
	for _, a := range alternatives {
		alt = alt.Or(a)
	}
	return alt
}
