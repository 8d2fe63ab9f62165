package lock

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"mush/db"
	"mush/types"
)

func TestParseStoredTrees(t *testing.T) {
	_, ev, _ := testWorld(t)

	tests := []struct {
		input string
		want  Node
	}{
		{"#2", &ConstNode{Thing: 2}},
		{"  #2  ", &ConstNode{Thing: 2}},
		{"!#2", &NotNode{Sub: &ConstNode{Thing: 2}}},
		{"!!#2", &NotNode{Sub: &NotNode{Sub: &ConstNode{Thing: 2}}}},
		{"#1&#2", &AndNode{Left: &ConstNode{Thing: 1}, Right: &ConstNode{Thing: 2}}},
		{"#1|#2", &OrNode{Left: &ConstNode{Thing: 1}, Right: &ConstNode{Thing: 2}}},

		// & binds tighter than |
		{"#1|#2&#3", &OrNode{
			Left:  &ConstNode{Thing: 1},
			Right: &AndNode{Left: &ConstNode{Thing: 2}, Right: &ConstNode{Thing: 3}},
		}},
		{"#1&#2|#3", &OrNode{
			Left:  &AndNode{Left: &ConstNode{Thing: 1}, Right: &ConstNode{Thing: 2}},
			Right: &ConstNode{Thing: 3},
		}},
		{"(#1|#2)&#3", &AndNode{
			Left:  &OrNode{Left: &ConstNode{Thing: 1}, Right: &ConstNode{Thing: 2}},
			Right: &ConstNode{Thing: 3},
		}},
		{"((#2))", &ConstNode{Thing: 2}},

		{"@#4", &IndirNode{Sub: &ConstNode{Thing: 4}}},
		{"=#2", &IsNode{Sub: &ConstNode{Thing: 2}}},
		{"+#5", &CarryNode{Sub: &ConstNode{Thing: 5}}},
		{"$#2", &OwnerNode{Sub: &ConstNode{Thing: 2}}},

		{"name:B*", &AtrNode{Attr: db.AttrName, Pattern: "B*"}},
		{"sex:m*", &AtrNode{Attr: db.AttrSex, Pattern: "m*"}},
		{"LOCK/1", &EvalNode{Attr: db.AttrLockAttr, Pattern: "1"}},
		{"=name:B*", &IsNode{Sub: &AtrNode{Attr: db.AttrName, Pattern: "B*"}}},
		{"+sex:m*", &CarryNode{Sub: &AtrNode{Attr: db.AttrSex, Pattern: "m*"}}},
	}
	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			got := ev.ParseStored(tc.input)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("ParseStored(%q) tree mismatch (-want +got):\n%s", tc.input, diff)
			}
		})
	}
}

func TestParseStoredFoldsToUnlocked(t *testing.T) {
	_, ev, _ := testWorld(t)

	bad := []string{
		"bogus",   // no dbref marker in a stored lock
		"#x",      // not a number
		"#-2",     // negative dbref
		"#2&",     // dangling operator
		"&#2",     // missing left factor
		"|",       // bare operator
		"!",       // negation of nothing
		"(#2",     // unclosed paren
		"()",      // empty group
		"@!#2",    // indirection of a non-reference
		"@name:x", // indirection of an attribute lock
		"$name:x", // ownership of an attribute lock
		"=@#2",    // identity of an indirection
	}
	for _, input := range bad {
		if got := ev.ParseStored(input); got != Unlocked {
			t.Errorf("ParseStored(%q) = %#v, want Unlocked", input, got)
		}
	}
}

func TestParseEmptyIsUnlockedSentinel(t *testing.T) {
	_, ev, _ := testWorld(t)

	if ev.ParseStored("") != Unlocked {
		t.Fatal("stored empty lock did not parse to the Unlocked sentinel")
	}
	if ev.Parse(2, "", false) != Unlocked {
		t.Fatal("interactive empty lock did not parse to the Unlocked sentinel")
	}
	// Identity, not equality: every fold yields the same value
	if ev.ParseStored("bogus") != ev.ParseStored("") {
		t.Fatal("distinct Unlocked values returned for different failed parses")
	}
}

func TestParseInteractive(t *testing.T) {
	_, ev, _ := testWorld(t)

	tests := []struct {
		input string
		want  Node
	}{
		{"me", &ConstNode{Thing: 2}},
		{"here", &ConstNode{Thing: 0}},
		{"#5", &ConstNode{Thing: 5}},
		{"chest", &ConstNode{Thing: 4}},
		{"brass key", &ConstNode{Thing: 5}},
		{"*God", &ConstNode{Thing: 1}},
		{"chest & !shrine", &AndNode{
			Left:  &ConstNode{Thing: 4},
			Right: &NotNode{Sub: &ConstNode{Thing: 7}},
		}},
		{"=me|+brass key", &OrNode{
			Left:  &IsNode{Sub: &ConstNode{Thing: 2}},
			Right: &CarryNode{Sub: &ConstNode{Thing: 5}},
		}},
	}
	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			got := ev.Parse(2, tc.input, false)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("Parse(Bob, %q) tree mismatch (-want +got):\n%s", tc.input, diff)
			}
		})
	}
}

func TestParseInteractiveRejectsControlChars(t *testing.T) {
	_, ev, notes := testWorld(t)

	for _, input := range []string{"\t#2", "#2\n", "#2\r", "\x1b#2", "me)", "(me", ")(", "(#1&#2"} {
		*notes = nil
		if got := ev.Parse(2, input, false); got != Unlocked {
			t.Errorf("Parse(Bob, %q) = %#v, want Unlocked", input, got)
		}
		if len(*notes) != 1 || (*notes)[0].msg != "I don't understand that key." {
			t.Errorf("Parse(Bob, %q): notifications %+v", input, *notes)
		}
	}
}

func TestParseNotifiesOnFailedMatch(t *testing.T) {
	s, ev, notes := testWorld(t)

	if got := ev.Parse(2, "unicorn", false); got != Unlocked {
		t.Fatalf("Parse of unmatched name = %#v, want Unlocked", got)
	}
	if len(*notes) != 1 || (*notes)[0].player != 2 || (*notes)[0].msg != "I don't see unicorn here." {
		t.Fatalf("unexpected notifications: %+v", *notes)
	}
	*notes = nil

	// Two things sharing a prefix in Bob's room make a name ambiguous
	for i, name := range []string{"silver chalice", "silver coin"} {
		obj := db.NewObject(types.ObjID(8+i), 3, types.TypeThing)
		obj.Name = name
		if err := s.Add(obj); err != nil {
			t.Fatalf("add %s: %v", name, err)
		}
		if err := s.MoveTo(obj.ID, 0); err != nil {
			t.Fatalf("place %s: %v", name, err)
		}
	}
	if got := ev.Parse(2, "silver", false); got != Unlocked {
		t.Fatalf("Parse of ambiguous name = %#v, want Unlocked", got)
	}
	if len(*notes) != 1 || (*notes)[0].msg != "I don't know which silver you mean!" {
		t.Fatalf("unexpected notifications: %+v", *notes)
	}
}

func TestParseNumericAttrReference(t *testing.T) {
	_, ev, notes := testWorld(t)

	// God may reference attributes by bare number
	got := ev.Parse(types.God, "300:x", false)
	if diff := cmp.Diff(&AtrNode{Attr: 300, Pattern: "x"}, got); diff != "" {
		t.Errorf("God numeric attr lock mismatch (-want +got):\n%s", diff)
	}
	if got := ev.Parse(types.God, "0:x", false); got != Unlocked {
		t.Errorf("God zero attr lock = %#v, want Unlocked", got)
	}

	// Mortals fall through to object matching, which fails
	if got := ev.Parse(2, "300:x", false); got != Unlocked {
		t.Errorf("mortal numeric attr lock = %#v, want Unlocked", got)
	}
	if len(*notes) == 0 {
		t.Error("mortal numeric attr lock produced no notification")
	}

	// Stored locks hold no numeric attr references either
	if got := ev.ParseStored("300:x"); got != Unlocked {
		t.Errorf("stored numeric attr lock = %#v, want Unlocked", got)
	}
}

func TestParseKnownAttrBeatsObjectMatch(t *testing.T) {
	s, ev, _ := testWorld(t)

	// A user-defined attribute becomes usable in locks by name
	def := s.Defs.Define("COLOR")
	got := ev.Parse(2, "color:red*", false)
	if diff := cmp.Diff(&AtrNode{Attr: def.Number, Pattern: "red*"}, got); diff != "" {
		t.Errorf("user attr lock mismatch (-want +got):\n%s", diff)
	}
}
