package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"sort"
	"strconv"
	"strings"

	"mush/config"
	"mush/db"
	"mush/lock"
	"mush/mlog"
	"mush/softcode"
	"mush/types"
)

func main() {
	dbPath := flag.String("db", "world.yaml", "World database file path")
	confPath := flag.String("config", "", "Config file path (YAML)")
	attrDB := flag.String("attrdb", "", "Attribute sidecar file (bolt)")

	// Inspection flags
	objInfo := flag.String("obj-info", "", "Show object info (e.g., #0)")
	lockCheck := flag.String("lock-check", "", "Check a lock: 'expr;actor;thing' (e.g., '#2&!#3;#2;#0')")
	parseLock := flag.String("parse-lock", "", "Parse a lock and print its canonical forms")
	asPlayer := flag.String("player", "#1", "Actor for -parse-lock and -eval")
	evalExpr := flag.String("eval", "", "Evaluate a softcode expression")
	checkpoint := flag.Bool("checkpoint", false, "Checkpoint attributes into -attrdb and exit")

	flag.Parse()

	cfg := config.Default()
	if *confPath != "" {
		var err error
		cfg, err = config.LoadFile(*confPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
	}

	mlog.Init(mlog.AllLog, os.Stderr)

	store, err := db.LoadFile(*dbPath)
	if err != nil {
		log.Fatalf("Failed to load database: %v", err)
	}

	if *attrDB != "" {
		sidecar, err := db.OpenAttrStore(*attrDB)
		if err != nil {
			log.Fatalf("Failed to open attribute store: %v", err)
		}
		defer sidecar.Close()

		if *checkpoint {
			if err := sidecar.Checkpoint(store); err != nil {
				log.Fatalf("Checkpoint failed: %v", err)
			}
			log.Printf("Checkpointed attributes to %s", *attrDB)
			return
		}
		if err := sidecar.LoadInto(store); err != nil {
			log.Fatalf("Failed to load attribute store: %v", err)
		}
	}

	sc := softcode.New(store, cfg)
	ev := lock.New(store, cfg, sc)
	ev.Notify = func(player types.ObjID, msg string) {
		fmt.Printf("[notify %s] %s\n", player, msg)
	}

	switch {
	case *objInfo != "":
		dumpObjInfo(store, *objInfo)
	case *lockCheck != "":
		runLockCheck(ev, *lockCheck)
	case *parseLock != "":
		runParseLock(ev, *asPlayer, *parseLock)
	case *evalExpr != "":
		runEval(sc, *asPlayer, *evalExpr)
	default:
		flag.Usage()
		os.Exit(2)
	}
}

// parseObjID parses "#N" or "N" to types.ObjID
func parseObjID(s string) (types.ObjID, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	id, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid object ID: %s", s)
	}
	return types.ObjID(id), nil
}

// dumpObjInfo shows detailed object info
func dumpObjInfo(store *db.Store, spec string) {
	objID, err := parseObjID(spec)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	obj := store.Get(objID)
	if obj == nil {
		fmt.Fprintf(os.Stderr, "Error: object #%d not found\n", objID)
		os.Exit(1)
	}

	fmt.Printf("=== Object #%d ===\n", objID)
	fmt.Printf("Name:     %s\n", obj.Name)
	fmt.Printf("Type:     %s\n", obj.Type)
	fmt.Printf("Owner:    #%d\n", obj.Owner)
	fmt.Printf("Parent:   #%d\n", obj.Parent)
	fmt.Printf("Location: #%d\n", obj.Location)
	fmt.Printf("Flags:    0x%x\n", obj.Flags)

	fmt.Printf("Contents: ")
	if len(obj.Contents) == 0 {
		fmt.Println("(none)")
	} else {
		for i, c := range obj.Contents {
			if i > 0 {
				fmt.Print(", ")
			}
			fmt.Printf("#%d", c)
		}
		fmt.Println()
	}

	fmt.Printf("\n--- Attributes (%d) ---\n", len(obj.Attrs))
	nums := make([]int, 0, len(obj.Attrs))
	for num := range obj.Attrs {
		nums = append(nums, num)
	}
	sort.Ints(nums)
	for _, num := range nums {
		a := obj.Attrs[num]
		name := strconv.Itoa(num)
		if def := store.Defs.ByNum(num); def != nil {
			name = def.Name
		}
		val := a.Text
		if len(val) > 60 {
			val = val[:57] + "..."
		}
		fmt.Printf("  %-20s = %-60s  owner=#%-6d flags=0x%x\n", name, val, a.Owner, a.Flags)
	}
}

// runLockCheck parses and evaluates one lock expression
func runLockCheck(ev *lock.Evaluator, spec string) {
	parts := strings.Split(spec, ";")
	if len(parts) != 3 {
		fmt.Fprintln(os.Stderr, "Error: -lock-check wants 'expr;actor;thing'")
		os.Exit(1)
	}
	actor, err := parseObjID(parts[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	thing, err := parseObjID(parts[2])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	b := ev.Parse(actor, parts[0], false)
	fmt.Printf("Lock:   %s\n", ev.Unparse(actor, b, lock.FormatExamine))
	fmt.Printf("Result: %v\n", ev.Eval(b, actor, thing, thing))
}

// runParseLock shows every canonical rendering of a lock
func runParseLock(ev *lock.Evaluator, playerSpec, text string) {
	player, err := parseObjID(playerSpec)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	b := ev.Parse(player, text, false)
	fmt.Printf("Quiet:     %s\n", ev.Unparse(player, b, lock.FormatQuiet))
	fmt.Printf("Examine:   %s\n", ev.Unparse(player, b, lock.FormatExamine))
	fmt.Printf("Decompile: %s\n", ev.Unparse(player, b, lock.FormatDecompile))
	fmt.Printf("Function:  %s\n", ev.Unparse(player, b, lock.FormatFunction))
}

// runEval evaluates a softcode snippet as the given player
func runEval(sc *softcode.Evaluator, playerSpec, text string) {
	player, err := parseObjID(playerSpec)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("=> %s\n", sc.Exec(text, player, player, player))
}
