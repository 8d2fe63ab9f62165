package softcode

import (
	"strconv"
	"strings"

	"mush/match"
	"mush/types"
	"mush/wild"
)

// registerBuiltins installs the stock function set
func registerBuiltins(e *Evaluator) {
	e.Register("name", fnName)
	e.Register("get", fnGet)
	e.Register("v", fnV)
	e.Register("u", fnU)
	e.Register("owner", fnOwner)
	e.Register("loc", fnLoc)
	e.Register("num", fnNum)
	e.Register("and", fnAnd)
	e.Register("or", fnOr)
	e.Register("not", fnNot)
	e.Register("eq", fnEq)
	e.Register("strmatch", fnStrmatch)
	e.Register("strlen", fnStrlen)
	e.Register("ucstr", fnUcstr)
	e.Register("lcstr", fnLcstr)
	e.Register("words", fnWords)
	e.Register("setq", fnSetq)
	e.Register("r", fnR)
	e.Register("if", fnIf)
	e.Register("switch", fnSwitch)
}

func truthy(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" || strings.HasPrefix(s, "#-") {
		return false
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n != 0
	}
	return true
}

func boolStr(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

// resolveObj turns a function argument into a dbref, through the matcher
func resolveObj(e *Evaluator, ctx Context, arg string) types.ObjID {
	return match.MatchThing(e.store, ctx.Executor, arg)
}

// fetchAttr reads obj/attr with the executor's visibility
func fetchAttr(e *Evaluator, ctx Context, objArg, attrArg string) (string, bool) {
	obj := resolveObj(e, ctx, objArg)
	if !e.store.Valid(obj) {
		return "", false
	}
	def := e.store.Defs.ByName(attrArg)
	if def == nil {
		return "", false
	}
	text, aowner, aflags := e.store.AttrPGet(obj, def.Number)
	if text == "" {
		return "", true
	}
	if !e.store.See(ctx.Executor, obj, def, aowner, aflags) {
		return "", false
	}
	return text, true
}

func fnName(e *Evaluator, ctx Context, args []string) string {
	if len(args) != 1 {
		return "#-1 FUNCTION (NAME) EXPECTS 1 ARGUMENT"
	}
	return e.objName(resolveObj(e, ctx, args[0]))
}

func fnGet(e *Evaluator, ctx Context, args []string) string {
	if len(args) != 1 {
		return "#-1 FUNCTION (GET) EXPECTS 1 ARGUMENT"
	}
	objArg, attrArg, ok := strings.Cut(args[0], "/")
	if !ok {
		return "#-1 BAD ARGUMENT FORMAT TO GET"
	}
	text, ok := fetchAttr(e, ctx, objArg, attrArg)
	if !ok {
		return "#-1 PERMISSION DENIED"
	}
	return text
}

func fnV(e *Evaluator, ctx Context, args []string) string {
	if len(args) != 1 {
		return "#-1 FUNCTION (V) EXPECTS 1 ARGUMENT"
	}
	def := e.store.Defs.ByName(args[0])
	if def == nil {
		return ""
	}
	text, _, _ := e.store.AttrPGet(ctx.Executor, def.Number)
	return text
}

// fnU evaluates obj/attr as softcode in the target's context
func fnU(e *Evaluator, ctx Context, args []string) string {
	if len(args) < 1 {
		return "#-1 FUNCTION (U) EXPECTS AT LEAST 1 ARGUMENT"
	}
	objArg, attrArg, ok := strings.Cut(args[0], "/")
	if !ok {
		objArg, attrArg = "me", args[0]
	}
	obj := resolveObj(e, ctx, objArg)
	text, visible := fetchAttr(e, ctx, objArg, attrArg)
	if !visible {
		return "#-1 PERMISSION DENIED"
	}
	inner := Context{Executor: obj, Caller: ctx.Executor, Enactor: ctx.Enactor, depth: ctx.depth}
	return e.evalExpr(text, inner)
}

func fnOwner(e *Evaluator, ctx Context, args []string) string {
	if len(args) != 1 {
		return "#-1 FUNCTION (OWNER) EXPECTS 1 ARGUMENT"
	}
	owner := e.store.Owner(resolveObj(e, ctx, args[0]))
	if owner.IsNone() {
		return "#-1"
	}
	return owner.String()
}

func fnLoc(e *Evaluator, ctx Context, args []string) string {
	if len(args) != 1 {
		return "#-1 FUNCTION (LOC) EXPECTS 1 ARGUMENT"
	}
	obj := e.store.Get(resolveObj(e, ctx, args[0]))
	if obj == nil {
		return "#-1"
	}
	return obj.Location.String()
}

func fnNum(e *Evaluator, ctx Context, args []string) string {
	if len(args) != 1 {
		return "#-1 FUNCTION (NUM) EXPECTS 1 ARGUMENT"
	}
	return resolveObj(e, ctx, args[0]).String()
}

func fnAnd(e *Evaluator, ctx Context, args []string) string {
	for _, a := range args {
		if !truthy(a) {
			return "0"
		}
	}
	return boolStr(len(args) > 0)
}

func fnOr(e *Evaluator, ctx Context, args []string) string {
	for _, a := range args {
		if truthy(a) {
			return "1"
		}
	}
	return "0"
}

func fnNot(e *Evaluator, ctx Context, args []string) string {
	if len(args) != 1 {
		return "#-1 FUNCTION (NOT) EXPECTS 1 ARGUMENT"
	}
	return boolStr(!truthy(args[0]))
}

func fnEq(e *Evaluator, ctx Context, args []string) string {
	if len(args) != 2 {
		return "#-1 FUNCTION (EQ) EXPECTS 2 ARGUMENTS"
	}
	return boolStr(strings.EqualFold(args[0], args[1]))
}

func fnStrmatch(e *Evaluator, ctx Context, args []string) string {
	if len(args) != 2 {
		return "#-1 FUNCTION (STRMATCH) EXPECTS 2 ARGUMENTS"
	}
	return boolStr(wild.Glob(args[1], args[0]))
}

func fnStrlen(e *Evaluator, ctx Context, args []string) string {
	if len(args) != 1 {
		return "#-1 FUNCTION (STRLEN) EXPECTS 1 ARGUMENT"
	}
	return strconv.Itoa(len(args[0]))
}

func fnUcstr(e *Evaluator, ctx Context, args []string) string {
	if len(args) != 1 {
		return "#-1 FUNCTION (UCSTR) EXPECTS 1 ARGUMENT"
	}
	return strings.ToUpper(args[0])
}

func fnLcstr(e *Evaluator, ctx Context, args []string) string {
	if len(args) != 1 {
		return "#-1 FUNCTION (LCSTR) EXPECTS 1 ARGUMENT"
	}
	return strings.ToLower(args[0])
}

func fnWords(e *Evaluator, ctx Context, args []string) string {
	if len(args) != 1 {
		return "#-1 FUNCTION (WORDS) EXPECTS 1 ARGUMENT"
	}
	return strconv.Itoa(len(strings.Fields(args[0])))
}

func fnSetq(e *Evaluator, ctx Context, args []string) string {
	if len(args) != 2 {
		return "#-1 FUNCTION (SETQ) EXPECTS 2 ARGUMENTS"
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 0 || n >= NumRegisters {
		return "#-1 INVALID GLOBAL REGISTER"
	}
	e.regs[n] = args[1]
	return ""
}

func fnR(e *Evaluator, ctx Context, args []string) string {
	if len(args) != 1 {
		return "#-1 FUNCTION (R) EXPECTS 1 ARGUMENT"
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 0 || n >= NumRegisters {
		return "#-1 INVALID GLOBAL REGISTER"
	}
	return e.regs[n]
}

func fnIf(e *Evaluator, ctx Context, args []string) string {
	switch len(args) {
	case 2:
		if truthy(args[0]) {
			return args[1]
		}
		return ""
	case 3:
		if truthy(args[0]) {
			return args[1]
		}
		return args[2]
	default:
		return "#-1 FUNCTION (IF) EXPECTS 2 OR 3 ARGUMENTS"
	}
}

// fnSwitch matches the first argument against pattern/result pairs,
// globbing each pattern, with an optional trailing default.
func fnSwitch(e *Evaluator, ctx Context, args []string) string {
	if len(args) < 3 {
		return "#-1 FUNCTION (SWITCH) EXPECTS AT LEAST 3 ARGUMENTS"
	}
	target := args[0]
	rest := args[1:]
	for i := 0; i+1 < len(rest); i += 2 {
		if wild.Glob(rest[i], target) {
			return rest[i+1]
		}
	}
	if len(rest)%2 == 1 {
		return rest[len(rest)-1]
	}
	return ""
}
