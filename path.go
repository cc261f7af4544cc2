package laxjson

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
)

// PathError reports a malformed path expression. Expressions are short, so
// it carries a reason only, not a position.
type PathError struct {
	Expr string
	Msg  string
}

func (e *PathError) Error() string {
	return fmt.Sprintf("invalid path %q: %s", e.Expr, e.Msg)
}

// Operator kinds of a compiled path chain.
type opKind uint8

const (
	opChildName opKind = iota
	opChildIndex
	opRecursive
	opWildcard
	opIndexList
	opSlice
)

// pathOp is one operator of a compiled chain. Operators live in the Path's
// slice and are addressed by position, never by pointer.
type pathOp struct {
	kind    opKind
	name    string // opChildName
	index   int    // opChildIndex
	indices []int  // opIndexList, all non-negative

	// opSlice. start/stop may be negative meaning offset from the end;
	// hasStart/hasStop record whether they were given at all.
	start, stop, step int
	hasStart, hasStop bool
}

// Path is a compiled path expression. A Path is immutable and can be
// applied concurrently to any number of value trees.
//
// The grammar is a JSONPath subset: `$` (root), `.name`, `.*`, `..`
// (recursive descent, which must be followed by another operator), and the
// bracket forms [N], [N1,N2,...], [start:stop:step], ['name'], ["name"],
// ['*'], ["*"] and [*]. Both quote styles are accepted.
type Path struct {
	expr string
	ops  []pathOp
}

// String returns the original expression.
func (p *Path) String() string { return p.expr }

// pathCache holds successfully compiled paths keyed by expression.
var pathCache sync.Map

// CompilePath compiles expr into an operator chain. Compiled paths are
// cached, so repeated use of the same expression costs one map lookup.
func CompilePath(expr string) (*Path, error) {
	if cached, ok := pathCache.Load(expr); ok {
		return cached.(*Path), nil
	}
	p, err := compilePath(expr)
	if err != nil {
		return nil, err
	}
	pathCache.Store(expr, p)
	return p, nil
}

// MustCompilePath is CompilePath panicking on error, for fixed expressions.
func MustCompilePath(expr string) *Path {
	p, err := CompilePath(expr)
	if err != nil {
		panic(err)
	}
	return p
}

// QuoteName renders a dictionary name as a path operator: ".name" when the
// name is safe as a bare component, otherwise a bracket-quoted form using
// whichever quote character the name does not contain. Useful when building
// expressions from keys containing dots, brackets or wildcards. A name
// containing both quote characters cannot be expressed in the path grammar.
func QuoteName(name string) string {
	bare := name != "" && name != "*"
	for i := 0; bare && i < len(name); i++ {
		switch name[i] {
		case '.', '[', ']', '$', '\'', '"':
			bare = false
		}
	}
	if bare {
		return "." + name
	}
	if !strings.ContainsRune(name, '\'') {
		return "['" + name + "']"
	}
	return `["` + name + `"]`
}

// JoinPath builds an expression selecting the entry reached through the
// given names from the root, quoting each one as needed.
func JoinPath(names ...string) string {
	var b strings.Builder
	b.WriteByte('$')
	for _, n := range names {
		b.WriteString(QuoteName(n))
	}
	return b.String()
}

func compilePath(expr string) (*Path, error) {
	fail := func(format string, args ...any) (*Path, error) {
		return nil, &PathError{Expr: expr, Msg: fmt.Sprintf(format, args...)}
	}
	if expr == "" || expr[0] != '$' {
		return fail("expression must begin with '$'")
	}
	p := &Path{expr: expr}
	i := 1
	for i < len(expr) {
		switch c := expr[i]; {
		case c == '.':
			i++
			if i < len(expr) && expr[i] == '.' {
				i++
				p.ops = append(p.ops, pathOp{kind: opRecursive})
				if i >= len(expr) {
					return fail("recursive descent must be followed by another operator")
				}
				if expr[i] == '[' {
					continue // bracket handled by the main loop
				}
				if expr[i] == '*' {
					i++
					p.ops = append(p.ops, pathOp{kind: opWildcard})
					continue
				}
				name := scanName(expr, &i)
				if name == "" {
					return fail("recursive descent must be followed by another operator")
				}
				p.ops = append(p.ops, pathOp{kind: opChildName, name: name})
				continue
			}
			if i >= len(expr) {
				return fail("trailing '.'")
			}
			if expr[i] == '*' {
				i++
				p.ops = append(p.ops, pathOp{kind: opWildcard})
				continue
			}
			name := scanName(expr, &i)
			if name == "" {
				return fail("expected a name after '.'")
			}
			p.ops = append(p.ops, pathOp{kind: opChildName, name: name})
		case c == '[':
			op, next, err := parseBracket(expr, i)
			if err != nil {
				return nil, err
			}
			p.ops = append(p.ops, op)
			i = next
		case c == '$':
			return fail("unexpected second '$'")
		default:
			return fail("unexpected character %q", c)
		}
	}
	if n := len(p.ops); n > 0 && p.ops[n-1].kind == opRecursive {
		return fail("recursive descent must be followed by another operator")
	}
	return p, nil
}

// scanName consumes a bare operator name: everything up to the next '.',
// '[' or '$'.
func scanName(expr string, i *int) string {
	start := *i
	for *i < len(expr) {
		switch expr[*i] {
		case '.', '[', '$':
			return expr[start:*i]
		}
		*i++
	}
	return expr[start:]
}

// parseBracket compiles one bracket operator starting at expr[i] == '['.
// It returns the operator and the position just past the closing bracket.
func parseBracket(expr string, i int) (pathOp, int, error) {
	fail := func(format string, args ...any) (pathOp, int, error) {
		return pathOp{}, 0, &PathError{Expr: expr, Msg: fmt.Sprintf(format, args...)}
	}
	i++ // '['

	// Quoted name (single or double quotes both accepted).
	if i < len(expr) && (expr[i] == '\'' || expr[i] == '"') {
		q := expr[i]
		i++
		end := strings.IndexByte(expr[i:], q)
		if end < 0 {
			return fail("unmatched quote")
		}
		name := expr[i : i+end]
		i += end + 1
		if i >= len(expr) || expr[i] != ']' {
			return fail("missing ']'")
		}
		if name == "*" {
			return pathOp{kind: opWildcard}, i + 1, nil
		}
		return pathOp{kind: opChildName, name: name}, i + 1, nil
	}

	end := strings.IndexByte(expr[i:], ']')
	if end < 0 {
		return fail("missing ']'")
	}
	inner := strings.TrimSpace(expr[i : i+end])
	next := i + end + 1

	switch {
	case inner == "*":
		return pathOp{kind: opWildcard}, next, nil

	case inner == "":
		return fail("empty brackets")

	case strings.ContainsRune(inner, ':'):
		parts := strings.Split(inner, ":")
		if len(parts) > 3 {
			return fail("too many slice components")
		}
		op := pathOp{kind: opSlice, step: 1}
		for k, part := range parts {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			n, err := strconv.Atoi(part)
			if err != nil {
				return fail("non-numeric slice component %q", part)
			}
			switch k {
			case 0:
				op.start, op.hasStart = n, true
			case 1:
				op.stop, op.hasStop = n, true
			case 2:
				op.step = n
			}
		}
		if op.step <= 0 {
			return fail("slice step must be positive")
		}
		return op, next, nil

	case strings.ContainsRune(inner, ','):
		op := pathOp{kind: opIndexList}
		for _, part := range strings.Split(inner, ",") {
			part = strings.TrimSpace(part)
			n, err := strconv.Atoi(part)
			if err != nil {
				return fail("invalid index %q", part)
			}
			if n < 0 {
				return fail("negative index %d in index list", n)
			}
			op.indices = append(op.indices, n)
		}
		return op, next, nil

	default:
		n, err := strconv.Atoi(inner)
		if err != nil {
			return fail("invalid index %q", inner)
		}
		if n < 0 {
			return fail("negative index %d", n)
		}
		return pathOp{kind: opChildIndex, index: n}, next, nil
	}
}
