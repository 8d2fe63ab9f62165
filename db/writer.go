package db

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// Dump serializes the store to YAML dump bytes. Objects and attributes
// come out in numeric order so successive dumps of the same world are
// byte-identical.
func (s *Store) Dump() ([]byte, error) {
	var dump dumpFile

	defs := s.Defs.All()
	sort.Slice(defs, func(i, j int) bool { return defs[i].Number < defs[j].Number })
	for _, def := range defs {
		if def.Number < AttrUserStart {
			continue // built-ins are implied
		}
		dump.AttrDefs = append(dump.AttrDefs, dumpAttrDef{
			Number: def.Number,
			Name:   def.Name,
			Flags:  uint32(def.Flags),
		})
	}

	objs := s.All()
	sort.Slice(objs, func(i, j int) bool { return objs[i].ID < objs[j].ID })
	for _, obj := range objs {
		d := dumpObject{
			ID:       int(obj.ID),
			Name:     obj.Name,
			Type:     obj.Type.String(),
			Owner:    int(obj.Owner),
			Parent:   int(obj.Parent),
			Location: int(obj.Location),
			Flags:    uint32(obj.Flags),
			Password: obj.Password,
		}
		nums := make([]int, 0, len(obj.Attrs))
		for num := range obj.Attrs {
			nums = append(nums, num)
		}
		sort.Ints(nums)
		for _, num := range nums {
			a := obj.Attrs[num]
			d.Attrs = append(d.Attrs, dumpAttr{
				Number: num,
				Text:   a.Text,
				Owner:  int(a.Owner),
				Flags:  uint32(a.Flags),
			})
		}
		dump.Objects = append(dump.Objects, d)
	}

	return yaml.Marshal(&dump)
}

// SaveFile writes the store to a YAML dump, atomically via a temp file
func (s *Store) SaveFile(path string) error {
	data, err := s.Dump()
	if err != nil {
		return fmt.Errorf("serializing database: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing database: %w", err)
	}
	return os.Rename(tmp, path)
}
