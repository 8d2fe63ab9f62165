package lock

import (
	"io"
	"testing"

	"mush/config"
	"mush/db"
	"mush/mlog"
	"mush/softcode"
	"mush/types"
)

type notice struct {
	player types.ObjID
	msg    string
}

// testWorld builds the world the lock tests share: Limbo holds God, two
// mortals and a couple of things. Bob carries a brass key, Alice
// carries a gem.
//
//	#0 Limbo   room    owner #1
//	#1 God     player  wizard
//	#2 Bob     player
//	#3 Alice   player
//	#4 chest   thing   owner Bob, in Limbo
//	#5 brass key  thing  owner Bob, carried by Bob
//	#6 gem     thing   owner Alice, carried by Alice
//	#7 shrine  thing   owner Alice, in Limbo
func testWorld(t *testing.T) (*db.Store, *Evaluator, *[]notice) {
	t.Helper()
	mlog.Init(0, io.Discard)

	s := db.NewStore()
	add := func(id types.ObjID, name string, typ types.TypeCode, owner types.ObjID) *db.Object {
		obj := db.NewObject(id, owner, typ)
		obj.Name = name
		if err := s.Add(obj); err != nil {
			t.Fatalf("add %s: %v", name, err)
		}
		return obj
	}
	place := func(id, loc types.ObjID) {
		if err := s.MoveTo(id, loc); err != nil {
			t.Fatalf("place #%d: %v", id, err)
		}
	}

	add(0, "Limbo", types.TypeRoom, 1)
	god := add(1, "God", types.TypePlayer, 1)
	god.Flags = god.Flags.Set(db.FlagWizard)
	add(2, "Bob", types.TypePlayer, 2)
	add(3, "Alice", types.TypePlayer, 3)
	add(4, "chest", types.TypeThing, 2)
	add(5, "brass key", types.TypeThing, 2)
	add(6, "gem", types.TypeThing, 3)
	add(7, "shrine", types.TypeThing, 3)

	place(1, 0)
	place(2, 0)
	place(3, 0)
	place(4, 0)
	place(5, 2)
	place(6, 3)
	place(7, 0)

	conf := config.Default()
	sc := softcode.New(s, conf)
	ev := New(s, conf, sc)

	notes := &[]notice{}
	ev.Notify = func(p types.ObjID, msg string) {
		*notes = append(*notes, notice{p, msg})
	}
	return s, ev, notes
}
