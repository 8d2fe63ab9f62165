package db

import (
	"strings"
	"sync"
)

// Well-known attribute numbers. The values are fixed by the flatfile
// format; renumbering them breaks every stored lock that references an
// attribute by number.
const (
	AttrDesc     = 6
	AttrFail     = 10
	AttrSucc     = 13
	AttrLockAttr = 42 // the default object lock
	AttrName     = 43 // object name, always visible
	AttrSex      = 46
	AttrEnterLock = 59
	AttrLeaveLock = 60
	AttrPageLock  = 61
	AttrUseLock   = 62
	AttrControlLock = 99 // who controls me if CONTROL_OK set

	// AttrUserStart is the first number handed out for user-named attributes
	AttrUserStart = 256
)

// AttrDef is an attribute definition: the binding of a name to a number
// plus default flags applied when the attribute is first stored.
type AttrDef struct {
	Number int
	Name   string
	Flags  AttrFlags
}

// Defs is the attribute definition registry. Lookup is by canonical
// (upper-cased) name or by number. User attributes are allocated on
// demand starting at AttrUserStart.
type Defs struct {
	mu     sync.RWMutex
	byName map[string]*AttrDef
	byNum  map[int]*AttrDef
	next   int
}

// NewDefs creates a registry preloaded with the built-in attributes
func NewDefs() *Defs {
	d := &Defs{
		byName: make(map[string]*AttrDef),
		byNum:  make(map[int]*AttrDef),
		next:   AttrUserStart,
	}
	builtin := []AttrDef{
		{AttrDesc, "DESCRIBE", 0},
		{AttrFail, "FAIL", 0},
		{AttrSucc, "SUCC", 0},
		{AttrLockAttr, "LOCK", AttrLock},
		{AttrName, "NAME", 0},
		{AttrSex, "SEX", 0},
		{AttrEnterLock, "ENTERLOCK", AttrLock},
		{AttrLeaveLock, "LEAVELOCK", AttrLock},
		{AttrPageLock, "PAGELOCK", AttrLock},
		{AttrUseLock, "USELOCK", AttrLock},
		{AttrControlLock, "CONLOCK", AttrLock},
	}
	for i := range builtin {
		def := builtin[i]
		d.byName[def.Name] = &def
		d.byNum[def.Number] = &def
	}
	return d
}

// ByName resolves an attribute name to its definition, nil if unknown.
// Names are case-insensitive.
func (d *Defs) ByName(name string) *AttrDef {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.byName[strings.ToUpper(strings.TrimSpace(name))]
}

// ByNum resolves an attribute number to its definition, nil if unknown
func (d *Defs) ByNum(num int) *AttrDef {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.byNum[num]
}

// Define returns the definition for name, allocating a fresh user
// attribute number when the name has never been seen before.
func (d *Defs) Define(name string) *AttrDef {
	canon := strings.ToUpper(strings.TrimSpace(name))
	if canon == "" {
		return nil
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if def, ok := d.byName[canon]; ok {
		return def
	}
	def := &AttrDef{Number: d.next, Name: canon}
	d.next++
	d.byName[canon] = def
	d.byNum[def.Number] = def
	return def
}

// All returns every definition, for dump output
func (d *Defs) All() []*AttrDef {
	d.mu.RLock()
	defer d.mu.RUnlock()

	out := make([]*AttrDef, 0, len(d.byNum))
	for _, def := range d.byNum {
		out = append(out, def)
	}
	return out
}
