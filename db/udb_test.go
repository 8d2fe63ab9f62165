package db

import (
	"path/filepath"
	"testing"
)

func TestAttrStorePutGet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "attrs.db")
	as, err := OpenAttrStore(path)
	if err != nil {
		t.Fatalf("OpenAttrStore error = %v", err)
	}
	defer as.Close()

	if err := as.Put(2, AttrDesc, "a shiny orb"); err != nil {
		t.Fatalf("Put error = %v", err)
	}
	text, ok := as.Get(2, AttrDesc)
	if !ok || text != "a shiny orb" {
		t.Errorf("Get = %q, %v; want 'a shiny orb', true", text, ok)
	}

	if _, ok := as.Get(2, AttrFail); ok {
		t.Error("Get on unset attribute should report absent")
	}

	// Empty text deletes
	if err := as.Put(2, AttrDesc, ""); err != nil {
		t.Fatalf("Put(empty) error = %v", err)
	}
	if _, ok := as.Get(2, AttrDesc); ok {
		t.Error("attribute should be gone after empty Put")
	}
}

func TestAttrStoreCheckpointLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "attrs.db")
	as, err := OpenAttrStore(path)
	if err != nil {
		t.Fatalf("OpenAttrStore error = %v", err)
	}
	defer as.Close()

	store := testStore(t)
	def := store.Defs.Define("COLOR")
	store.AttrSet(3, def.Number, "brass", 2)
	store.AttrSet(2, AttrDesc, "an ordinary fellow", 2)

	if err := as.Checkpoint(store); err != nil {
		t.Fatalf("Checkpoint error = %v", err)
	}

	// A fresh store with the same objects but no attributes
	fresh := testStore(t)
	fresh.Defs.Define("COLOR")
	if err := as.LoadInto(fresh); err != nil {
		t.Fatalf("LoadInto error = %v", err)
	}
	if text, _, _ := fresh.AttrGet(3, def.Number); text != "brass" {
		t.Errorf("COLOR after restore = %q, want brass", text)
	}
	if text, _, _ := fresh.AttrGet(2, AttrDesc); text != "an ordinary fellow" {
		t.Errorf("DESC after restore = %q, want 'an ordinary fellow'", text)
	}
}
