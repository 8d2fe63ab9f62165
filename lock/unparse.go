package lock

import (
	"fmt"
	"strings"

	"mush/types"
)

// Format selects how object references in a lock render back to text
type Format int

const (
	// FormatQuiet renders dbrefs bare, for dumps and internal use
	FormatQuiet Format = iota
	// FormatExamine renders Name(#n), for examine output
	FormatExamine
	// FormatDecompile renders *Name for players and Name for things,
	// portable to another server
	FormatDecompile
	// FormatFunction renders *Name for players and #n otherwise,
	// usable as @lock input
	FormatFunction
)

// Unparse renders a lock expression back to canonical text. Parsing
// the FormatQuiet or FormatFunction output of a tree yields a tree
// that evaluates identically. The Unlocked sentinel renders as
// "*UNLOCKED*" for examine and as the empty string otherwise.
func (ev *Evaluator) Unparse(player types.ObjID, b Node, format Format) string {
	var sb strings.Builder
	ev.unparse(&sb, player, b, nil, format)
	return sb.String()
}

// unparse walks the tree, parenthesizing only where the outer operator
// binds tighter than the inner one.
func (ev *Evaluator) unparse(sb *strings.Builder, player types.ObjID, b Node, outer Node, format Format) {
	if b == Unlocked {
		if format == FormatExamine {
			sb.WriteString("*UNLOCKED*")
		}
		return
	}

	switch n := b.(type) {
	case *AndNode:
		_, notOuter := outer.(*NotNode)
		if notOuter {
			sb.WriteByte('(')
		}
		ev.unparse(sb, player, n.Left, b, format)
		sb.WriteByte(andToken)
		ev.unparse(sb, player, n.Right, b, format)
		if notOuter {
			sb.WriteByte(')')
		}

	case *OrNode:
		needParen := false
		switch outer.(type) {
		case *NotNode, *AndNode:
			needParen = true
		}
		if needParen {
			sb.WriteByte('(')
		}
		ev.unparse(sb, player, n.Left, b, format)
		sb.WriteByte(orToken)
		ev.unparse(sb, player, n.Right, b, format)
		if needParen {
			sb.WriteByte(')')
		}

	case *NotNode:
		sb.WriteByte(notToken)
		ev.unparse(sb, player, n.Sub, b, format)

	case *IndirNode:
		sb.WriteByte(indirToken)
		ev.unparse(sb, player, n.Sub, b, format)

	case *IsNode:
		sb.WriteByte(isToken)
		ev.unparse(sb, player, n.Sub, b, format)

	case *CarryNode:
		sb.WriteByte(carryToken)
		ev.unparse(sb, player, n.Sub, b, format)

	case *OwnerNode:
		sb.WriteByte(ownerToken)
		ev.unparse(sb, player, n.Sub, b, format)

	case *ConstNode:
		ev.unparseConst(sb, player, n.Thing, format)

	case *AtrNode:
		ev.unparseAttr(sb, n.Attr, n.Pattern, ':')

	case *EvalNode:
		ev.unparseAttr(sb, n.Attr, n.Pattern, '/')

	default:
		panic(fmt.Sprintf("unknown boolexp node type %T in unparse", b))
	}
}

func (ev *Evaluator) unparseConst(sb *strings.Builder, player, thing types.ObjID, format Format) {
	obj := ev.Store.Get(thing)

	switch format {
	case FormatQuiet:
		sb.WriteString(thing.String())

	case FormatExamine:
		if obj == nil {
			sb.WriteString(thing.String())
			return
		}
		fmt.Fprintf(sb, "%s(#%d)", primaryName(obj.Name), thing)

	case FormatDecompile:
		switch {
		case obj != nil && obj.Type == types.TypePlayer:
			sb.WriteByte('*')
			sb.WriteString(primaryName(obj.Name))
		case obj != nil && obj.Type == types.TypeThing:
			sb.WriteString(primaryName(obj.Name))
		default:
			sb.WriteString(thing.String())
		}

	case FormatFunction:
		if obj != nil && obj.Type == types.TypePlayer {
			sb.WriteByte('*')
			sb.WriteString(primaryName(obj.Name))
			return
		}
		sb.WriteString(thing.String())
	}
}

func (ev *Evaluator) unparseAttr(sb *strings.Builder, num int, pattern string, sep byte) {
	if def := ev.Store.Defs.ByNum(num); def != nil {
		sb.WriteString(def.Name)
	} else {
		fmt.Fprintf(sb, "%d", num)
	}
	sb.WriteByte(sep)
	sb.WriteString(pattern)
}

// primaryName is the object name up to any alias separator
func primaryName(name string) string {
	if i := strings.IndexByte(name, ';'); i >= 0 {
		name = name[:i]
	}
	return name
}
