package lock

import (
	"fmt"
	"strings"

	"mush/db"
	"mush/mlog"
	"mush/types"
	"mush/wild"
)

// checkAttr reports whether the pattern matches the named attribute on
// player, checked on behalf of the locked object lockObj. The control
// lock is always readable (hiding it would break zone control), the
// name attribute likewise; everything else goes through the ambient
// visibility rule. Invisible reads count as absent.
func (ev *Evaluator) checkAttr(player, lockObj types.ObjID, def *db.AttrDef, pattern string) bool {
	text, aowner, aflags := ev.Store.AttrPGet(player, def.Number)

	checkit := false
	switch {
	case def.Number == db.AttrControlLock:
		checkit = true
	case ev.Store.See(lockObj, player, def, aowner, aflags):
		checkit = true
	case def.Number == db.AttrName:
		checkit = true
	}
	return checkit && wild.Match(pattern, text)
}

// evalIndir replaces an @-node with the lock of the referenced object,
// evaluated in the original thing's context.
func (ev *Evaluator) evalIndir(n *IndirNode, player, thing, from types.ObjID, depth int) bool {
	depth++
	if depth >= ev.Conf.LockNestLim {
		ev.logLockBug(player, "Lock exceeded recursion limit.")
		ev.notify(player, "Sorry, broken lock!")
		return false
	}

	sub, ok := n.Sub.(*ConstNode)
	if !ok || sub.Thing < 0 {
		ev.logLockBug(player, "Lock had bad indirection (@, type %T).", n.Sub)
		ev.notify(player, "Sorry, broken lock!")
		return false
	}

	key, _, _ := ev.Store.AttrPGet(sub.Thing, db.AttrLockAttr)
	// The enclosing thing becomes the indirection originator for any
	// Eval nodes inside the referenced lock.
	return ev.evalAttrText(player, sub.Thing, from, key, depth, thing)
}

// evalEvalNode computes the softcode value of an attribute and compares
// it against the stored pattern. The attribute comes off from first,
// falling back to thing; whichever supplied it becomes the executor for
// the softcode run.
func (ev *Evaluator) evalEvalNode(n *EvalNode, player, thing, from, originator types.ObjID) bool {
	def := ev.Store.Defs.ByNum(n.Attr)
	if def == nil {
		return false
	}

	source := from
	text, aowner, aflags := ev.Store.AttrPGet(from, n.Attr)
	if text == "" {
		text, aowner, aflags = ev.Store.AttrPGet(thing, n.Attr)
		source = thing
	}

	visible := false
	switch {
	case n.Attr == db.AttrName || n.Attr == db.AttrControlLock:
		visible = true
	case ev.Store.See(source, source, def, aowner, aflags):
		visible = true
	}
	if !visible || text == "" {
		return false
	}

	caller := player
	if originator != types.Nothing {
		caller = originator
	}

	saved := ev.Softcode.SaveRegs()
	result := ev.Softcode.Exec(text, source, caller, player)
	ev.Softcode.RestoreRegs(saved)

	return strings.EqualFold(result, n.Pattern)
}

// logLockBug writes a BUG-severity diagnostic about a lock the actor
// tripped over, including the actor's location when configured and known.
func (ev *Evaluator) logLockBug(player types.ObjID, format string, args ...any) {
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	pname := ev.logName(player)
	if obj := ev.Store.Get(player); ev.Conf.LogLocation && obj != nil && ev.Store.Valid(obj.Location) {
		mlog.Write(mlog.Bugs, "BUG", "LOCK", "%s in %s: %s", pname, ev.logName(obj.Location), msg)
		return
	}
	mlog.Write(mlog.Bugs, "BUG", "LOCK", "%s: %s", pname, msg)
}

// logName renders "Name(#n)" for diagnostics
func (ev *Evaluator) logName(id types.ObjID) string {
	obj := ev.Store.Get(id)
	if obj == nil {
		return id.String()
	}
	return fmt.Sprintf("%s(#%d)", obj.Name, obj.ID)
}
