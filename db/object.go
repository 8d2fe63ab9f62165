package db

import (
	"mush/types"
)

// Object represents a MUSH object
// CRITICAL: All cross-object references use ObjID, not Go pointers
// This matches the TinyMUSH flatfile layout and simplifies serialization
type Object struct {
	ID       types.ObjID
	Name     string
	Owner    types.ObjID   // NOT *Object
	Parent   types.ObjID   // single-parent inheritance chain
	Location types.ObjID   // NOT *Object
	Contents []types.ObjID // NOT []*Object
	Type     types.TypeCode
	Flags    ObjectFlags

	// Attrs maps attribute number to stored attribute.
	// Attribute numbers resolve to definitions via the Defs registry.
	Attrs map[int]*Attr

	// Password holds a bcrypt hash for player objects, empty otherwise
	Password string

	Recycled bool
}

// Attr is one stored attribute value on one object
type Attr struct {
	Text  string
	Owner types.ObjID
	Flags AttrFlags
}

// ObjectFlags represents object permission flags
type ObjectFlags uint32

const (
	FlagWizard    ObjectFlags = 1 << 0 // full administrative access
	FlagDark      ObjectFlags = 1 << 1
	FlagKey       ObjectFlags = 1 << 2 // only players may pass the lock
	FlagVisual    ObjectFlags = 1 << 3 // attributes readable by anyone
	FlagRoyalty   ObjectFlags = 1 << 4 // may examine without controlling
	FlagRecycled  ObjectFlags = 1 << 5
	FlagControlOK ObjectFlags = 1 << 6 // honor the control lock
)

// Has checks if a flag is set
func (f ObjectFlags) Has(flag ObjectFlags) bool {
	return f&flag != 0
}

// Set sets a flag
func (f ObjectFlags) Set(flag ObjectFlags) ObjectFlags {
	return f | flag
}

// Clear clears a flag
func (f ObjectFlags) Clear(flag ObjectFlags) ObjectFlags {
	return f &^ flag
}

// AttrFlags represents per-attribute permission flags
type AttrFlags uint32

const (
	AttrDark     AttrFlags = 1 << 0 // only God sees it
	AttrInternal AttrFlags = 1 << 1 // never shown, never read
	AttrWizard   AttrFlags = 1 << 2 // only wizards may set
	AttrMDark    AttrFlags = 1 << 3 // hidden from mortals
	AttrVisual   AttrFlags = 1 << 4 // readable by anyone
	AttrLock     AttrFlags = 1 << 5 // attribute is locked against change
	AttrNoProg   AttrFlags = 1 << 6 // not visible to softcode
)

// Has checks if an attribute flag is set
func (f AttrFlags) Has(flag AttrFlags) bool {
	return f&flag != 0
}

// NewObject creates a new object with defaults
func NewObject(id types.ObjID, owner types.ObjID, typ types.TypeCode) *Object {
	return &Object{
		ID:       id,
		Name:     "",
		Owner:    owner,
		Parent:   types.Nothing,
		Location: types.Nothing,
		Contents: []types.ObjID{},
		Type:     typ,
		Attrs:    make(map[int]*Attr),
	}
}
