// Package lock implements boolean lock expressions: the key language
// that gates movement, use and control of objects. A lock string such
// as "#123&!(@#45|name:Bob)" parses into a tree of typed nodes which
// the evaluator walks against an (actor, thing, from) triple.
package lock

import (
	"mush/types"
)

// Node is one node of a parsed lock expression.
// The variant set is closed: the parser only ever produces the types
// below, and the evaluator treats anything else as a fatal bug.
type Node interface {
	node()
}

// ConstNode references an object: passes when the actor is the object
// or stands inside it.
type ConstNode struct {
	Thing types.ObjID
}

// AndNode passes when both sides pass
type AndNode struct {
	Left, Right Node
}

// OrNode passes when either side passes
type OrNode struct {
	Left, Right Node
}

// NotNode negates its subtree
type NotNode struct {
	Sub Node
}

// IndirNode (@) evaluates the LOCK attribute of the referenced object
// in place of itself. Sub is always a *ConstNode after a successful parse.
type IndirNode struct {
	Sub Node
}

// IsNode (=) checks identity only, never containment. Sub is a
// *ConstNode or *AtrNode after a successful parse.
type IsNode struct {
	Sub Node
}

// CarryNode (+) checks containment only, never identity. Sub is a
// *ConstNode or *AtrNode after a successful parse.
type CarryNode struct {
	Sub Node
}

// OwnerNode ($) passes when the actor's owner matches the referenced
// object's owner. Sub is always a *ConstNode after a successful parse.
type OwnerNode struct {
	Sub Node
}

// AtrNode (name:pattern) wildcard-matches the pattern against a named
// attribute on the actor, and on each object the actor carries.
type AtrNode struct {
	Attr    int
	Pattern string
}

// EvalNode (name/pattern) evaluates the attribute as softcode and
// compares the result against the pattern.
type EvalNode struct {
	Attr    int
	Pattern string
}

func (*ConstNode) node() {}
func (*AndNode) node()   {}
func (*OrNode) node()    {}
func (*NotNode) node()   {}
func (*IndirNode) node() {}
func (*IsNode) node()    {}
func (*CarryNode) node() {}
func (*OwnerNode) node() {}
func (*AtrNode) node()   {}
func (*EvalNode) node()  {}

type unlocked struct{}

func (unlocked) node() {}

// Unlocked is the always-true sentinel: the result of parsing an empty
// or malformed lock. It is a distinguished value compared by identity
// (b == Unlocked), never taken apart, and it cannot be produced by any
// lock string a player can type.
var Unlocked Node = unlocked{}

// Lock expression tokens
const (
	notToken    = '!'
	andToken    = '&'
	orToken     = '|'
	indirToken  = '@'
	isToken     = '='
	carryToken  = '+'
	ownerToken  = '$'
	numberToken = '#'
)
