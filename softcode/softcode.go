// Package softcode evaluates attribute text as in-game code: percent
// substitutions, [bracketed] sub-evaluation, and built-in function
// calls. It implements the slice of the full language that attribute
// values and eval-locks depend on.
package softcode

import (
	"strings"

	"mush/config"
	"mush/db"
	"mush/types"
)

// NumRegisters is the number of global q-registers (%q0 through %q9)
const NumRegisters = 10

// Registers is a snapshot of the global q-register state
type Registers [NumRegisters]string

// Fn is a built-in softcode function
type Fn func(e *Evaluator, ctx Context, args []string) string

// Context carries the three dbrefs softcode execution runs under:
// executor supplies attributes and permissions, caller is whoever
// invoked the current evaluation, enactor is who set it all in motion.
type Context struct {
	Executor types.ObjID
	Caller   types.ObjID
	Enactor  types.ObjID

	depth int
}

// Evaluator executes softcode against a world. The q-registers are
// shared mutable state across evaluations; callers that re-enter the
// evaluator (lock checks do) snapshot them around the inner call.
type Evaluator struct {
	store *db.Store
	conf  *config.Config
	regs  Registers
	fns   map[string]Fn
	invk  int
}

// New creates an evaluator with the standard function set registered
func New(store *db.Store, conf *config.Config) *Evaluator {
	e := &Evaluator{
		store: store,
		conf:  conf,
		fns:   make(map[string]Fn),
	}
	registerBuiltins(e)
	return e
}

// Register adds or replaces a built-in function
func (e *Evaluator) Register(name string, fn Fn) {
	e.fns[strings.ToLower(name)] = fn
}

// SaveRegs snapshots the global q-registers
func (e *Evaluator) SaveRegs() Registers {
	return e.regs
}

// RestoreRegs puts back a q-register snapshot
func (e *Evaluator) RestoreRegs(r Registers) {
	e.regs = r
}

// SetReg stores a q-register value; out-of-range indexes are dropped
func (e *Evaluator) SetReg(n int, val string) {
	if n >= 0 && n < NumRegisters {
		e.regs[n] = val
	}
}

// Exec evaluates text as a top-level expression: function calls are
// recognized, percent escapes and brackets substituted. This is the
// entry point lock evaluation uses.
func (e *Evaluator) Exec(text string, executor, caller, enactor types.ObjID) string {
	e.invk = 0
	ctx := Context{Executor: executor, Caller: caller, Enactor: enactor}
	return e.evalExpr(text, ctx)
}

// evalExpr evaluates one expression: a function call when the text has
// the shape name(args), otherwise plain substitution.
func (e *Evaluator) evalExpr(text string, ctx Context) string {
	if ctx.depth >= e.conf.FuncNestLim {
		return "#-1 FUNCTION RECURSION LIMIT EXCEEDED"
	}
	text = strings.TrimSpace(text)

	if name, argText, ok := splitCall(text); ok {
		fn, known := e.fns[strings.ToLower(name)]
		if known {
			e.invk++
			if e.invk > e.conf.FuncInvkLim {
				return "#-1 FUNCTION INVOCATION LIMIT EXCEEDED"
			}
			inner := ctx
			inner.depth++
			args := splitArgs(argText)
			for i, a := range args {
				args[i] = e.evalExpr(a, inner)
			}
			return fn(e, inner, args)
		}
	}
	return e.substitute(text, ctx)
}

// substitute expands %-escapes and [bracketed] expressions in place
func (e *Evaluator) substitute(text string, ctx Context) string {
	var out strings.Builder
	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		switch runes[i] {
		case '%':
			if i+1 >= len(runes) {
				out.WriteRune('%')
				continue
			}
			i++
			i += e.percent(&out, runes[i:], ctx)
		case '[':
			end, ok := matchBracket(runes, i)
			if !ok {
				out.WriteRune('[')
				continue
			}
			inner := ctx
			inner.depth++
			out.WriteString(e.evalExpr(string(runes[i+1:end]), inner))
			i = end
		default:
			out.WriteRune(runes[i])
		}
	}
	return out.String()
}

// percent expands one %-escape starting at r[0], returning how many
// extra runes beyond the first were consumed.
func (e *Evaluator) percent(out *strings.Builder, r []rune, ctx Context) int {
	switch r[0] {
	case '%':
		out.WriteRune('%')
	case 'r', 'R':
		out.WriteRune('\n')
	case 't', 'T':
		out.WriteRune('\t')
	case 'b', 'B':
		out.WriteRune(' ')
	case '#':
		out.WriteString(ctx.Enactor.String())
	case '!':
		out.WriteString(ctx.Executor.String())
	case '@':
		out.WriteString(ctx.Caller.String())
	case 'n', 'N':
		out.WriteString(e.objName(ctx.Enactor))
	case 'q', 'Q':
		if len(r) >= 2 && r[1] >= '0' && r[1] <= '9' {
			out.WriteString(e.regs[r[1]-'0'])
			return 1
		}
	case '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		// Environment args; lock evaluation supplies none
	default:
		out.WriteRune('%')
		out.WriteRune(r[0])
	}
	return 0
}

func (e *Evaluator) objName(id types.ObjID) string {
	obj := e.store.Get(id)
	if obj == nil {
		return ""
	}
	name := obj.Name
	if i := strings.IndexByte(name, ';'); i >= 0 {
		name = name[:i]
	}
	return name
}

// splitCall recognizes text of the shape name(args) where the closing
// paren ends the string.
func splitCall(text string) (name, args string, ok bool) {
	open := strings.IndexByte(text, '(')
	if open <= 0 || !strings.HasSuffix(text, ")") {
		return "", "", false
	}
	name = text[:open]
	for _, c := range name {
		if !isFuncNameRune(c) {
			return "", "", false
		}
	}
	// The opening paren must match the final close
	depth := 0
	for i := open; i < len(text); i++ {
		switch text[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 && i != len(text)-1 {
				return "", "", false
			}
		}
	}
	if depth != 0 {
		return "", "", false
	}
	return name, text[open+1 : len(text)-1], true
}

func isFuncNameRune(c rune) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

// splitArgs splits on top-level commas, respecting parens and brackets
func splitArgs(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	var args []string
	depth := 0
	start := 0
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '(', '[':
			depth++
		case ')', ']':
			depth--
		case ',':
			if depth == 0 {
				args = append(args, strings.TrimSpace(text[start:i]))
				start = i + 1
			}
		}
	}
	args = append(args, strings.TrimSpace(text[start:]))
	return args
}

// matchBracket finds the ']' matching the '[' at position i
func matchBracket(runes []rune, i int) (int, bool) {
	depth := 0
	for ; i < len(runes); i++ {
		switch runes[i] {
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return i, true
			}
		}
	}
	return 0, false
}
