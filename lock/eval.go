package lock

import (
	"mush/config"
	"mush/db"
	"mush/mlog"
	"mush/softcode"
	"mush/types"
)

// Evaluator parses and evaluates lock expressions against a world.
// Indirection depth is threaded through each evaluation as a parameter,
// so concurrent lock checks cannot see each other's nesting state.
type Evaluator struct {
	Store    *db.Store
	Conf     *config.Config
	Softcode *softcode.Evaluator

	// Notify delivers a message to an actor; nil means drop it
	Notify func(player types.ObjID, msg string)
}

// New creates a lock evaluator over a world
func New(store *db.Store, conf *config.Config, sc *softcode.Evaluator) *Evaluator {
	return &Evaluator{Store: store, Conf: conf, Softcode: sc}
}

func (ev *Evaluator) notify(player types.ObjID, msg string) {
	if ev.Notify != nil {
		ev.Notify(player, msg)
	}
}

// Eval walks a lock expression for the actor against thing, with from
// supplying attribute context. Unlocked always passes.
func (ev *Evaluator) Eval(b Node, player, thing, from types.ObjID) bool {
	return ev.eval(b, player, thing, from, 0, types.Nothing)
}

// EvalAttrText parses and evaluates a one-shot lock string, the form
// used when the lock is fetched fresh from an attribute each check.
func (ev *Evaluator) EvalAttrText(player, thing, from types.ObjID, text string) bool {
	return ev.evalAttrText(player, thing, from, text, 0, types.Nothing)
}

// PassesLock is the standard gate: fetch the lock attribute off thing
// and check the actor against it. Objects flagged KEY only ever admit
// players; wizards pass everything.
func (ev *Evaluator) PassesLock(player, thing types.ObjID, attrNum int) bool {
	obj := ev.Store.Get(thing)
	if obj != nil && obj.Flags.Has(db.FlagKey) {
		if p := ev.Store.Get(player); p == nil || p.Type != types.TypePlayer {
			return false
		}
	}
	if ev.Store.Wizard(player) {
		return true
	}
	key, _, _ := ev.Store.AttrGet(thing, attrNum)
	return ev.EvalAttrText(player, thing, thing, key)
}

func (ev *Evaluator) evalAttrText(player, thing, from types.ObjID, text string, depth int, originator types.ObjID) bool {
	b := ev.Parse(player, text, true)
	if b == Unlocked {
		return true
	}
	return ev.eval(b, player, thing, from, depth, originator)
}

// eval dispatches on node type. originator is the thing an enclosing
// @-indirection was attached to, Nothing at top level; Eval nodes use
// it to pick the caller for softcode execution.
func (ev *Evaluator) eval(b Node, player, thing, from types.ObjID, depth int, originator types.ObjID) bool {
	if b == Unlocked {
		return true
	}

	switch n := b.(type) {
	case *AndNode:
		return ev.eval(n.Left, player, thing, from, depth, originator) &&
			ev.eval(n.Right, player, thing, from, depth, originator)

	case *OrNode:
		return ev.eval(n.Left, player, thing, from, depth, originator) ||
			ev.eval(n.Right, player, thing, from, depth, originator)

	case *NotNode:
		return !ev.eval(n.Sub, player, thing, from, depth, originator)

	case *IndirNode:
		return ev.evalIndir(n, player, thing, from, depth)

	case *ConstNode:
		// The actor is the object, or stands inside it
		return n.Thing == player || ev.Store.Contains(n.Thing, player)

	case *AtrNode:
		def := ev.Store.Defs.ByNum(n.Attr)
		if def == nil {
			return false
		}
		// The actor itself first, then everything it carries
		if ev.checkAttr(player, from, def, n.Pattern) {
			return true
		}
		for _, obj := range ev.Store.Contents(player) {
			if ev.checkAttr(obj, from, def, n.Pattern) {
				return true
			}
		}
		return false

	case *EvalNode:
		return ev.evalEvalNode(n, player, thing, from, originator)

	case *IsNode:
		if c, ok := n.Sub.(*ConstNode); ok {
			return c.Thing == player
		}
		a, ok := n.Sub.(*AtrNode)
		if !ok {
			mlog.Fatal("= lock with %T subtree", n.Sub)
		}
		def := ev.Store.Defs.ByNum(a.Attr)
		if def == nil {
			return false
		}
		return ev.checkAttr(player, from, def, a.Pattern)

	case *CarryNode:
		if c, ok := n.Sub.(*ConstNode); ok {
			return ev.Store.Contains(player, c.Thing)
		}
		a, ok := n.Sub.(*AtrNode)
		if !ok {
			mlog.Fatal("+ lock with %T subtree", n.Sub)
		}
		def := ev.Store.Defs.ByNum(a.Attr)
		if def == nil {
			return false
		}
		for _, obj := range ev.Store.Contents(player) {
			if ev.checkAttr(obj, from, def, a.Pattern) {
				return true
			}
		}
		return false

	case *OwnerNode:
		c, ok := n.Sub.(*ConstNode)
		if !ok {
			return false
		}
		owner := ev.Store.Owner(player)
		return owner != types.Nothing && owner == ev.Store.Owner(c.Thing)

	default:
		mlog.Fatal("unknown boolexp node type %T in eval", b)
		return false
	}
}
