package db

import (
	"mush/types"
)

// maxParentDepth bounds the parent-chain walk in AttrPGet. A chparent
// cycle in a loaded database must not hang attribute fetches.
const maxParentDepth = 50

// AttrGet fetches an attribute directly from one object, without
// consulting its parents. The NAME attribute reads through to the
// object's name field. Returns the text plus the value's owner and
// flags; the zero Attr when absent.
func (s *Store) AttrGet(id types.ObjID, num int) (text string, owner types.ObjID, flags AttrFlags) {
	obj := s.Get(id)
	if obj == nil {
		return "", types.Nothing, 0
	}
	if num == AttrName {
		return obj.Name, obj.Owner, 0
	}
	a, ok := obj.Attrs[num]
	if !ok {
		return "", obj.Owner, 0
	}
	return a.Text, a.Owner, a.Flags
}

// AttrPGet fetches an attribute with inheritance: the object itself
// first, then each ancestor along the parent chain until a non-empty
// value turns up.
func (s *Store) AttrPGet(id types.ObjID, num int) (text string, owner types.ObjID, flags AttrFlags) {
	cur := id
	for depth := 0; depth < maxParentDepth && s.Valid(cur); depth++ {
		text, owner, flags = s.AttrGet(cur, num)
		if text != "" {
			return text, owner, flags
		}
		obj := s.Get(cur)
		if obj == nil {
			break
		}
		cur = obj.Parent
	}
	return "", types.Nothing, 0
}

// AttrSet stores attribute text on an object, owned by setter. Empty
// text clears the attribute.
func (s *Store) AttrSet(id types.ObjID, num int, text string, setter types.ObjID) error {
	obj := s.Get(id)
	if obj == nil {
		return errNoObject(id)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if text == "" {
		delete(obj.Attrs, num)
		return nil
	}
	var defFlags AttrFlags
	if def := s.Defs.ByNum(num); def != nil {
		defFlags = def.Flags
	}
	obj.Attrs[num] = &Attr{Text: text, Owner: setter, Flags: defFlags}
	return nil
}

// Wizard reports whether an object carries wizard privilege, directly
// or through its owner.
func (s *Store) Wizard(id types.ObjID) bool {
	obj := s.Get(id)
	if obj == nil {
		return false
	}
	if obj.Flags.Has(FlagWizard) {
		return true
	}
	if owner := s.Get(obj.Owner); owner != nil && owner.ID != id {
		return owner.Flags.Has(FlagWizard)
	}
	return false
}

// Controls reports whether who controls what: wizards control
// everything, otherwise ownership decides.
func (s *Store) Controls(who, what types.ObjID) bool {
	if !s.Valid(who) || !s.Valid(what) {
		return false
	}
	if s.Wizard(who) {
		return true
	}
	return s.Owner(who) == s.Owner(what)
}

// See reports whether viewer may read the given attribute value on
// target. This is the ambient visibility rule the lock evaluator
// consults: internal attributes are never shown, dark ones only to God,
// mortal-dark ones only to wizards, and otherwise either the viewer
// controls the target, owns the value, or the attribute/object is
// marked visual.
func (s *Store) See(viewer, target types.ObjID, def *AttrDef, aowner types.ObjID, aflags AttrFlags) bool {
	if def == nil {
		return false
	}
	flags := aflags | def.Flags
	if flags.Has(AttrInternal) {
		return false
	}
	if flags.Has(AttrDark) {
		return viewer == types.God
	}
	if flags.Has(AttrMDark) && !s.Wizard(viewer) {
		return false
	}
	if flags.Has(AttrVisual) {
		return true
	}
	if obj := s.Get(target); obj != nil && obj.Flags.Has(FlagVisual) {
		return true
	}
	if s.Controls(viewer, target) {
		return true
	}
	return s.Valid(viewer) && s.Owner(viewer) == aowner
}

func errNoObject(id types.ObjID) error {
	return &NoObjectError{ID: id}
}

// NoObjectError reports a dangling object reference
type NoObjectError struct {
	ID types.ObjID
}

func (e *NoObjectError) Error() string {
	return "no such object " + e.ID.String()
}
