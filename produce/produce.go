package produce

import (
	"github.com/emirpasic/gods/lists/arraylist"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'scallion.produce'.
func tracer() tracing.Trace {
	return tracing.Select("scallion.produce")
}

// A Generator produces the items of a sequence, one per call. It returns
// false when the sequence is exhausted; after that it will not be called
// again.
type Generator func() (interface{}, bool)

// Outcome of one internal pull on a sequence. Self-referential sequences
// (producers bound to recursive grammar nodes) may be asked for an item
// which is just now being computed; such a pull is 'blocked', which is
// different from the sequence being exhausted: a blocked pull may succeed
// later, once the in-flight item has materialized.
type pullStatus int8

const (
	pullOK pullStatus = iota
	pullBlocked
	pullDone
)

// A Producer is a view onto a lazily generated sequence of items. Views are
// stateful single-consumer iterators: Next advances the view. All views
// created by Duplicate share one memo buffer, so no item is ever generated
// twice.
type Producer struct {
	buf *buffer
	pos int
}

// The shared state behind all views of one sequence: the items produced so
// far, plus the generator for the rest.
type buffer struct {
	items *arraylist.List
	gen   func() (interface{}, pullStatus) // nil means exhausted
	busy  bool                             // an item of this sequence is being computed
}

// tryGet returns the item at index i, running the generator as far as
// needed. A blocked outcome leaves the buffer untouched.
func (b *buffer) tryGet(i int) (interface{}, pullStatus) {
	for b.items.Size() <= i {
		if b.gen == nil {
			return nil, pullDone
		}
		if b.busy {
			tracer().Debugf("re-entrant pull on producer buffer")
			return nil, pullBlocked
		}
		b.busy = true
		item, status := b.gen()
		b.busy = false
		switch status {
		case pullBlocked:
			return nil, pullBlocked
		case pullDone:
			b.gen = nil
			return nil, pullDone
		}
		b.items.Add(item)
	}
	item, _ := b.items.Get(i)
	return item, pullOK
}

func fromPull(gen func() (interface{}, pullStatus)) *Producer {
	return &Producer{buf: &buffer{items: arraylist.New(), gen: gen}}
}

// pull advances the view by one item, reporting blockage distinctly from
// exhaustion. Combinators below use this to retry blocked operands.
func (p *Producer) pull() (interface{}, pullStatus) {
	item, status := p.buf.tryGet(p.pos)
	if status == pullOK {
		p.pos++
	}
	return item, status
}

// FromFunc creates a producer backed by a generator function.
func FromFunc(gen Generator) *Producer {
	return fromPull(func() (interface{}, pullStatus) {
		item, ok := gen()
		if !ok {
			return nil, pullDone
		}
		return item, pullOK
	})
}

// FromSlice creates a producer over the given items.
func FromSlice(items []interface{}) *Producer {
	i := 0
	return FromFunc(func() (interface{}, bool) {
		if i >= len(items) {
			return nil, false
		}
		item := items[i]
		i++
		return item, true
	})
}

// Empty creates a producer with no items.
func Empty() *Producer {
	return FromFunc(func() (interface{}, bool) { return nil, false })
}

// Single creates a producer with exactly one item.
func Single(item interface{}) *Producer {
	done := false
	return FromFunc(func() (interface{}, bool) {
		if done {
			return nil, false
		}
		done = true
		return item, true
	})
}

// Lazily defers the construction of a producer until its first item is
// requested. This is the indirection that lets a sequence reference itself:
// by the time the constructor runs, the producer handle already exists.
func Lazily(construct func() *Producer) *Producer {
	var inner *Producer
	return fromPull(func() (interface{}, pullStatus) {
		if inner == nil {
			inner = construct()
		}
		return inner.pull()
	})
}

// Next returns the next item of this view, or false if no further item is
// available.
func (p *Producer) Next() (interface{}, bool) {
	item, status := p.pull()
	return item, status == pullOK
}

// Duplicate returns an independent view positioned at the same item as p.
// Both views share produced items.
func (p *Producer) Duplicate() *Producer {
	return &Producer{buf: p.buf, pos: p.pos}
}

// Take returns up to n items, advancing the view.
func (p *Producer) Take(n int) []interface{} {
	items := make([]interface{}, 0, n)
	for len(items) < n {
		item, ok := p.Next()
		if !ok {
			break
		}
		items = append(items, item)
	}
	return items
}

// Map returns a producer applying f to every item of p. The argument view is
// consumed.
func Map(p *Producer, f func(interface{}) interface{}) *Producer {
	return fromPull(func() (interface{}, pullStatus) {
		item, status := p.pull()
		if status != pullOK {
			return nil, status
		}
		return f(item), pullOK
	})
}

// --- Ordered merging --------------------------------------------------------

// Union merges two producers into one. If both operands yield their items in
// non-decreasing order under le, so does the result; ties prefer a. The
// argument views are consumed.
func Union(a, b *Producer, le func(x, y interface{}) bool) *Producer {
	var aItem, bItem interface{}
	var aLoaded, bLoaded bool
	var aDone, bDone bool
	return fromPull(func() (interface{}, pullStatus) {
		aBlocked, bBlocked := false, false
		if !aLoaded && !aDone {
			var status pullStatus
			if aItem, status = a.pull(); status == pullOK {
				aLoaded = true
			} else if status == pullDone {
				aDone = true
			} else {
				aBlocked = true
			}
		}
		if !bLoaded && !bDone {
			var status pullStatus
			if bItem, status = b.pull(); status == pullOK {
				bLoaded = true
			} else if status == pullDone {
				bDone = true
			} else {
				bBlocked = true
			}
		}
		switch {
		case aLoaded && (!bLoaded || le(aItem, bItem)):
			aLoaded = false
			return aItem, pullOK
		case bLoaded:
			bLoaded = false
			return bItem, pullOK
		case aBlocked || bBlocked:
			return nil, pullBlocked
		}
		return nil, pullDone
	})
}

// UnionAll folds Union over any number of producers.
func UnionAll(le func(x, y interface{}) bool, ps ...*Producer) *Producer {
	switch len(ps) {
	case 0:
		return Empty()
	case 1:
		return ps[0]
	}
	u := ps[0]
	for _, p := range ps[1:] {
		u = Union(u, p, le)
	}
	return u
}

// --- Ordered pairing --------------------------------------------------------

// Product combines two producers pairwise: for every pair (x, y) from a × b
// it yields join(x, y). The measure of a joined item is assumed to be
// measure(x) + measure(y); under that assumption, if both operands are
// non-decreasing in measure, so is the result.
//
// The enumeration walks the (i, j) index plane along a frontier of
// candidates, always emitting a candidate of minimal measure. Only finitely
// many items of either operand are materialized for any finite prefix of the
// result. The argument views are consumed.
func Product(a, b *Producer, join func(x, y interface{}) interface{}, measure func(interface{}) int) *Producer {
	type cell struct {
		i, j int
		m    int // measure(a[i]) + measure(b[j]); valid on the ready list only
	}
	var as, bs []interface{} // materialized operand prefixes
	var aDone, bDone bool
	aAt := func(i int) (interface{}, pullStatus) {
		for len(as) <= i {
			if aDone {
				return nil, pullDone
			}
			item, status := a.pull()
			if status != pullOK {
				if status == pullDone {
					aDone = true
				}
				return nil, status
			}
			as = append(as, item)
		}
		return as[i], pullOK
	}
	bAt := func(j int) (interface{}, pullStatus) {
		for len(bs) <= j {
			if bDone {
				return nil, pullDone
			}
			item, status := b.pull()
			if status != pullOK {
				if status == pullDone {
					bDone = true
				}
				return nil, status
			}
			bs = append(bs, item)
		}
		return bs[j], pullOK
	}
	var ready []cell   // both operand items materialized; sorted by m, FIFO among equals
	var pending []cell // waiting for an operand item
	push := func(c cell) {
		at := len(ready)
		for at > 0 && ready[at-1].m > c.m {
			at--
		}
		ready = append(ready, cell{})
		copy(ready[at+1:], ready[at:])
		ready[at] = c
	}
	// promote moves pending cells whose operand items have materialized onto
	// the ready list. Cells beyond an exhausted operand are dropped.
	promote := func() (blocked bool) {
		kept := pending[:0]
		for _, c := range pending {
			x, stx := aAt(c.i)
			if stx == pullDone {
				continue
			}
			y, sty := bAt(c.j)
			if sty == pullDone {
				continue
			}
			if stx == pullOK && sty == pullOK {
				push(cell{c.i, c.j, measure(x) + measure(y)})
				continue
			}
			blocked = true
			kept = append(kept, c)
		}
		pending = kept
		return blocked
	}
	started := false
	return fromPull(func() (interface{}, pullStatus) {
		if !started {
			started = true
			pending = append(pending, cell{0, 0, 0})
		}
		blocked := promote()
		if len(ready) == 0 {
			if blocked {
				return nil, pullBlocked
			}
			return nil, pullDone
		}
		c := ready[0]
		ready = ready[1:]
		x, _ := aAt(c.i)
		y, _ := bAt(c.j)
		pending = append(pending, cell{c.i, c.j + 1, 0})
		if c.j == 0 { // open the next row exactly once
			pending = append(pending, cell{c.i + 1, 0, 0})
		}
		return join(x, y), pullOK
	})
}
