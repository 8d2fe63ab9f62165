package db

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"mush/types"
)

// dumpFile is the YAML layout of a world dump. Contents lists are not
// stored; they are rebuilt from the location field on load, the same
// way the flatfile loader reconstructs them.
type dumpFile struct {
	AttrDefs []dumpAttrDef `yaml:"attrdefs,omitempty"`
	Objects  []dumpObject  `yaml:"objects"`
}

type dumpAttrDef struct {
	Number int    `yaml:"number"`
	Name   string `yaml:"name"`
	Flags  uint32 `yaml:"flags,omitempty"`
}

type dumpObject struct {
	ID       int        `yaml:"id"`
	Name     string     `yaml:"name"`
	Type     string     `yaml:"type"`
	Owner    int        `yaml:"owner"`
	Parent   int        `yaml:"parent"`
	Location int        `yaml:"location"`
	Flags    uint32     `yaml:"flags,omitempty"`
	Password string     `yaml:"password,omitempty"`
	Attrs    []dumpAttr `yaml:"attrs,omitempty"`
}

type dumpAttr struct {
	Number int    `yaml:"number"`
	Text   string `yaml:"text"`
	Owner  int    `yaml:"owner"`
	Flags  uint32 `yaml:"flags,omitempty"`
}

// LoadFile reads a YAML world dump into a fresh store
func LoadFile(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading database: %w", err)
	}
	return Load(data)
}

// Load parses YAML dump bytes into a fresh store
func Load(data []byte) (*Store, error) {
	var dump dumpFile
	if err := yaml.Unmarshal(data, &dump); err != nil {
		return nil, fmt.Errorf("parsing database: %w", err)
	}

	store := NewStore()
	for _, d := range dump.AttrDefs {
		def := store.Defs.Define(d.Name)
		if def == nil {
			return nil, fmt.Errorf("attrdef with empty name (number %d)", d.Number)
		}
		def.Flags = AttrFlags(d.Flags)
	}

	for _, o := range dump.Objects {
		typ, err := parseTypeCode(o.Type)
		if err != nil {
			return nil, fmt.Errorf("object #%d: %w", o.ID, err)
		}
		obj := NewObject(types.ObjID(o.ID), types.ObjID(o.Owner), typ)
		obj.Name = o.Name
		obj.Parent = types.ObjID(o.Parent)
		obj.Location = types.ObjID(o.Location)
		obj.Flags = ObjectFlags(o.Flags)
		obj.Password = o.Password
		for _, a := range o.Attrs {
			obj.Attrs[a.Number] = &Attr{
				Text:  a.Text,
				Owner: types.ObjID(a.Owner),
				Flags: AttrFlags(a.Flags),
			}
		}
		if err := store.Add(obj); err != nil {
			return nil, err
		}
	}

	// Rebuild contents lists from locations
	for _, obj := range store.All() {
		if loc := store.Get(obj.Location); loc != nil {
			loc.Contents = append(loc.Contents, obj.ID)
		}
	}
	for _, obj := range store.All() {
		sort.Slice(obj.Contents, func(i, j int) bool {
			return obj.Contents[i] < obj.Contents[j]
		})
	}
	return store, nil
}

func parseTypeCode(s string) (types.TypeCode, error) {
	switch s {
	case "ROOM":
		return types.TypeRoom, nil
	case "THING", "":
		return types.TypeThing, nil
	case "EXIT":
		return types.TypeExit, nil
	case "PLAYER":
		return types.TypePlayer, nil
	default:
		return 0, fmt.Errorf("unknown object type %q", s)
	}
}
