package lock

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"

	"mush/config"
	"mush/db"
	"mush/mlog"
	"mush/softcode"
	"mush/types"
)

// Lock fixtures pair a world dump with a list of expected outcomes, so
// new cases need a YAML edit rather than new Go.
type lockSuite struct {
	Suite string     `yaml:"suite"`
	World string     `yaml:"world"`
	Cases []lockCase `yaml:"cases"`
}

type lockCase struct {
	Name   string `yaml:"name"`
	Lock   string `yaml:"lock"`
	Actor  int    `yaml:"actor"`
	Thing  int    `yaml:"thing"`
	From   *int   `yaml:"from"`
	Expect bool   `yaml:"expect"`
}

func TestLockFixtures(t *testing.T) {
	mlog.Init(0, io.Discard)

	paths, err := filepath.Glob(filepath.Join("testdata", "*.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	ran := 0
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		var suite lockSuite
		if err := yaml.Unmarshal(data, &suite); err != nil {
			t.Fatalf("%s: %v", path, err)
		}
		if suite.Suite == "" {
			continue // a world dump, not a suite
		}
		ran++

		store, err := db.LoadFile(filepath.Join("testdata", suite.World))
		if err != nil {
			t.Fatalf("%s: loading world %s: %v", path, suite.World, err)
		}
		conf := config.Default()
		ev := New(store, conf, softcode.New(store, conf))

		t.Run(suite.Suite, func(t *testing.T) {
			for _, tc := range suite.Cases {
				t.Run(tc.Name, func(t *testing.T) {
					b := ev.ParseStored(tc.Lock)
					from := tc.Thing
					if tc.From != nil {
						from = *tc.From
					}
					got := ev.Eval(b, types.ObjID(tc.Actor), types.ObjID(tc.Thing), types.ObjID(from))
					if got != tc.Expect {
						t.Errorf("Eval(%q, actor #%d, thing #%d, from #%d) = %v, want %v",
							tc.Lock, tc.Actor, tc.Thing, from, got, tc.Expect)
					}
				})
			}
		})
	}
	if ran == 0 {
		t.Fatal("no lock suites found under testdata")
	}
}
