package db

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"mush/types"
)

const sampleDump = `
attrdefs:
  - number: 256
    name: COLOR
objects:
  - id: 0
    name: Limbo
    type: ROOM
    owner: 1
    parent: -1
    location: -1
  - id: 1
    name: God
    type: PLAYER
    owner: 1
    parent: -1
    location: 0
    flags: 1
  - id: 2
    name: lantern;lamp
    type: THING
    owner: 1
    parent: -1
    location: 0
    attrs:
      - number: 6
        text: A dusty brass lantern.
        owner: 1
      - number: 256
        text: brass
        owner: 1
`

func TestLoad(t *testing.T) {
	store, err := Load([]byte(sampleDump))
	if err != nil {
		t.Fatalf("Load error = %v", err)
	}

	if def := store.Defs.ByName("COLOR"); def == nil || def.Number != 256 {
		t.Fatalf("COLOR attrdef not restored: %v", def)
	}

	lantern := store.Get(2)
	if lantern == nil {
		t.Fatal("lantern not loaded")
	}
	if lantern.Type != types.TypeThing {
		t.Errorf("lantern type = %v, want THING", lantern.Type)
	}
	if text, _, _ := store.AttrGet(2, 256); text != "brass" {
		t.Errorf("COLOR = %q, want brass", text)
	}

	// Contents rebuilt from locations
	if !store.Contains(0, 1) || !store.Contains(0, 2) {
		t.Errorf("Limbo contents = %v, want [1 2]", store.Get(0).Contents)
	}
}

func TestLoadRejectsBadType(t *testing.T) {
	_, err := Load([]byte("objects:\n  - id: 0\n    name: x\n    type: BLOB\n    owner: 0\n    parent: -1\n    location: -1\n"))
	if err == nil {
		t.Fatal("expected error for unknown object type")
	}
}

func TestDumpRoundTrip(t *testing.T) {
	store, err := Load([]byte(sampleDump))
	if err != nil {
		t.Fatalf("Load error = %v", err)
	}

	data, err := store.Dump()
	if err != nil {
		t.Fatalf("Dump error = %v", err)
	}
	again, err := Load(data)
	if err != nil {
		t.Fatalf("reload error = %v", err)
	}

	opts := []cmp.Option{
		cmpopts.EquateEmpty(),
		cmpopts.SortSlices(func(a, b *Object) bool { return a.ID < b.ID }),
	}
	if diff := cmp.Diff(store.All(), again.All(), opts...); diff != "" {
		t.Errorf("round trip mismatch (-orig +reloaded):\n%s", diff)
	}

	// Dumps are deterministic
	data2, err := again.Dump()
	if err != nil {
		t.Fatalf("second Dump error = %v", err)
	}
	if string(data) != string(data2) {
		t.Error("successive dumps of the same world differ")
	}
}

func TestSaveFile(t *testing.T) {
	store, err := Load([]byte(sampleDump))
	if err != nil {
		t.Fatalf("Load error = %v", err)
	}
	path := t.TempDir() + "/world.yaml"
	if err := store.SaveFile(path); err != nil {
		t.Fatalf("SaveFile error = %v", err)
	}
	again, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile error = %v", err)
	}
	if again.Get(2) == nil {
		t.Error("lantern missing after save/load")
	}
}
