package match

import (
	"testing"

	"mush/db"
	"mush/types"
)

// testWorld: Limbo #0 holding Bob #2 and two swords; Bob carries a lamp
func testWorld(t *testing.T) *db.Store {
	t.Helper()
	s := db.NewStore()

	add := func(id types.ObjID, name string, typ types.TypeCode, loc types.ObjID) *db.Object {
		obj := db.NewObject(id, 1, typ)
		obj.Name = name
		obj.Location = loc
		if err := s.Add(obj); err != nil {
			t.Fatalf("Add(#%d) error = %v", id, err)
		}
		if l := s.Get(loc); l != nil {
			l.Contents = append(l.Contents, id)
		}
		return obj
	}

	add(0, "Limbo", types.TypeRoom, types.Nothing)
	add(1, "God", types.TypePlayer, 0)
	add(2, "Bob", types.TypePlayer, 0)
	add(3, "brass lamp;lamp;lantern", types.TypeThing, 2)
	add(4, "rusty sword", types.TypeThing, 0)
	add(5, "rusty shield", types.TypeThing, 0)
	return s
}

func TestMatchThing(t *testing.T) {
	s := testWorld(t)

	tests := []struct {
		name string
		want types.ObjID
	}{
		{"me", 2},
		{"ME", 2},
		{"here", 0},
		{"#4", 4},
		{"#99", types.Nothing},
		{"#nope", types.Nothing},
		{"*god", 1},
		{"*nobody", types.Nothing},
		{"brass lamp", 3},
		{"lamp", 3},      // alias
		{"lantern", 3},   // alias
		{"bra", 3},       // prefix, inventory wins
		{"rusty sword", 4},
		{"rusty sw", 4}, // unambiguous prefix
		{"rusty", types.Ambiguous},
		{"", types.Nothing},
		{"unicorn", types.Nothing},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MatchThing(s, 2, tt.name); got != tt.want {
				t.Errorf("MatchThing(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestMatchInventoryBeforeRoom(t *testing.T) {
	s := testWorld(t)

	// Put a second lamp in the room; Bob's own lamp still wins
	roomLamp := db.NewObject(6, 1, types.TypeThing)
	roomLamp.Name = "brass lamp"
	roomLamp.Location = 0
	s.Add(roomLamp)
	room := s.Get(0)
	room.Contents = append(room.Contents, 6)

	if got := MatchThing(s, 2, "brass lamp"); got != 3 {
		t.Errorf("MatchThing = %v, want #3 (inventory first)", got)
	}
}

func TestMatchExcludesSelfFromRoom(t *testing.T) {
	s := testWorld(t)

	// "bob" should not match the player doing the matching via room contents
	if got := MatchThing(s, 2, "bob"); got != types.Nothing {
		t.Errorf("MatchThing(bob) = %v, want Nothing", got)
	}
}

func TestMatchBadPlayer(t *testing.T) {
	s := testWorld(t)
	if got := MatchThing(s, 99, "lamp"); got != types.Nothing {
		t.Errorf("MatchThing with invalid player = %v, want Nothing", got)
	}
}
