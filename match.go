package laxjson

// Match applies the compiled chain to root and returns every selected
// value in document order. A bare "$" selects root itself. Matching never
// fails: operators that do not apply to a node simply select nothing.
func (p *Path) Match(root *Value) []*Value {
	m := &matcher{}
	m.visit(p.ops, 0, root)
	return m.out
}

// MatchFirst is Match stopping at the first selected value. Traversal
// short-circuits as soon as a match is recorded.
func (p *Path) MatchFirst(root *Value) (*Value, bool) {
	m := &matcher{single: true}
	m.visit(p.ops, 0, root)
	if len(m.out) == 0 {
		return nullValue, false
	}
	return m.out[0], true
}

type matcher struct {
	out    []*Value
	single bool
	done   bool
}

func (m *matcher) record(v *Value) {
	m.out = append(m.out, v)
	if m.single {
		m.done = true
	}
}

// visit applies ops[i:] at node. Past the end of the chain the node itself
// is a match.
func (m *matcher) visit(ops []pathOp, i int, node *Value) {
	if m.done {
		return
	}
	if i >= len(ops) {
		m.record(node)
		return
	}
	op := &ops[i]
	switch op.kind {
	case opChildName:
		if v, ok := node.Lookup(op.name); ok {
			m.visit(ops, i+1, v)
		}
	case opChildIndex:
		if node.typ == TypeArray && op.index < len(node.arr) {
			m.visit(ops, i+1, node.arr[op.index])
		}
	case opWildcard:
		m.eachChild(node, func(child *Value) {
			m.visit(ops, i+1, child)
		})
	case opIndexList:
		if node.typ != TypeArray {
			return
		}
		for _, idx := range op.indices {
			if m.done {
				return
			}
			if idx < len(node.arr) {
				m.visit(ops, i+1, node.arr[idx])
			}
		}
	case opSlice:
		if node.typ != TypeArray {
			return
		}
		count := len(node.arr)
		start, stop := 0, count
		if op.hasStart {
			start = op.start
			if start < 0 {
				start += count
			}
			if start < 0 {
				start = 0
			}
		}
		if op.hasStop {
			stop = op.stop
			if stop < 0 {
				stop += count
			}
			if stop > count {
				stop = count
			}
		}
		for k := start; k < stop; k += op.step {
			if m.done {
				return
			}
			m.visit(ops, i+1, node.arr[k])
		}
	case opRecursive:
		m.recurse(ops, i, node)
	}
}

// recurse implements the ".." operator at node. ops[i+1] always exists
// (the compiler rejects a trailing "..").
//
// When the following operator is a ChildIndex or ChildName, each immediate
// child whose position or key it names is a direct hit: the following
// operator is applied to the current container, selecting that child at
// this depth exactly once. Every other child is descended into with ".."
// still active. Direct-hit children are not additionally descended into,
// which is what prevents duplicate selections.
//
// For the remaining operator kinds (wildcard, index list, slice) there is
// no per-child hit to test, so the following operator is applied at the
// current node itself before descending into every child.
func (m *matcher) recurse(ops []pathOp, i int, node *Value) {
	if m.done || i+1 >= len(ops) {
		return
	}
	next := &ops[i+1]
	switch node.typ {
	case TypeArray:
		if next.kind == opChildIndex {
			for pos, child := range node.arr {
				if m.done {
					return
				}
				if pos == next.index {
					m.visit(ops, i+1, node)
				} else {
					m.recurse(ops, i, child)
				}
			}
			return
		}
		if next.kind != opChildName {
			m.visit(ops, i+1, node)
		}
		for _, child := range node.arr {
			if m.done {
				return
			}
			m.recurse(ops, i, child)
		}
	case TypeDict:
		if next.kind == opChildName {
			m.eachEntry(node, func(name string, child *Value) {
				if name == next.name {
					m.visit(ops, i+1, node)
				} else {
					m.recurse(ops, i, child)
				}
			})
			return
		}
		if next.kind != opChildIndex {
			m.visit(ops, i+1, node)
		}
		m.eachEntry(node, func(_ string, child *Value) {
			m.recurse(ops, i, child)
		})
	}
}

func (m *matcher) eachChild(node *Value, fn func(*Value)) {
	switch node.typ {
	case TypeArray:
		for _, child := range node.arr {
			if m.done {
				return
			}
			fn(child)
		}
	case TypeDict:
		m.eachEntry(node, func(_ string, child *Value) {
			fn(child)
		})
	}
}

func (m *matcher) eachEntry(node *Value, fn func(string, *Value)) {
	if node.obj == nil {
		return
	}
	for i := range node.obj.entries {
		if m.done {
			return
		}
		fn(node.obj.entries[i].name, node.obj.entries[i].value)
	}
}
