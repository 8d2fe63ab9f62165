// Package match resolves object names the way a player sees the world:
// dbref notation, me/here, *player lookup, then inventory and room
// contents by exact name, alias, and prefix.
package match

import (
	"strconv"
	"strings"

	"mush/db"
	"mush/types"
)

// MatchThing resolves an object name string to an object ID from the
// player's point of view.
// Searches: special syntax (#N, me, here, *player) → inventory → room contents
func MatchThing(store *db.Store, player types.ObjID, name string) types.ObjID {
	name = strings.TrimSpace(name)
	if name == "" {
		return types.Nothing
	}

	// Handle #<number> syntax
	if strings.HasPrefix(name, "#") {
		num, err := strconv.Atoi(name[1:])
		if err != nil {
			return types.Nothing
		}
		if store.Valid(types.ObjID(num)) {
			return types.ObjID(num)
		}
		return types.Nothing
	}

	// Handle *<player> syntax
	if strings.HasPrefix(name, "*") {
		return matchPlayer(store, name[1:])
	}

	// Handle special words (case-insensitive)
	nameLower := strings.ToLower(name)
	if nameLower == "me" {
		return player
	}

	playerObj := store.Get(player)
	if playerObj == nil {
		return types.Nothing
	}
	if nameLower == "here" {
		return playerObj.Location
	}

	// Search player's inventory first
	matches := findInContents(store, playerObj.Contents, name)
	if len(matches) == 1 {
		return matches[0]
	}
	if len(matches) > 1 {
		return types.Ambiguous
	}

	// Search room contents, excluding the player itself
	if roomObj := store.Get(playerObj.Location); roomObj != nil {
		roomContents := make([]types.ObjID, 0, len(roomObj.Contents))
		for _, id := range roomObj.Contents {
			if id != player {
				roomContents = append(roomContents, id)
			}
		}
		matches = findInContents(store, roomContents, name)
		if len(matches) == 1 {
			return matches[0]
		}
		if len(matches) > 1 {
			return types.Ambiguous
		}
	}

	return types.Nothing
}

// matchPlayer finds a player object by exact name, anywhere in the world
func matchPlayer(store *db.Store, name string) types.ObjID {
	nameLower := strings.ToLower(strings.TrimSpace(name))
	if nameLower == "" {
		return types.Nothing
	}
	for _, obj := range store.All() {
		if obj.Type == types.TypePlayer && strings.ToLower(obj.Name) == nameLower {
			return obj.ID
		}
	}
	return types.Nothing
}

// findInContents finds all objects in contents that match the search string
func findInContents(store *db.Store, contents []types.ObjID, search string) []types.ObjID {
	searchLower := strings.ToLower(search)
	var matches []types.ObjID

	// First pass: exact name matches
	for _, objID := range contents {
		obj := store.Get(objID)
		if obj != nil && primaryName(obj) == searchLower {
			matches = append(matches, objID)
		}
	}
	if len(matches) > 0 {
		return matches
	}

	// Second pass: exact alias matches
	for _, objID := range contents {
		obj := store.Get(objID)
		if obj == nil {
			continue
		}
		for _, alias := range aliases(obj) {
			if alias == searchLower {
				matches = append(matches, objID)
				break
			}
		}
	}
	if len(matches) > 0 {
		return matches
	}

	// Third pass: prefix name matches
	for _, objID := range contents {
		obj := store.Get(objID)
		if obj != nil && strings.HasPrefix(primaryName(obj), searchLower) {
			matches = append(matches, objID)
		}
	}
	return matches
}

// primaryName is the part of the name before any alias separator, lowered
func primaryName(obj *db.Object) string {
	name := obj.Name
	if i := strings.IndexByte(name, ';'); i >= 0 {
		name = name[:i]
	}
	return strings.ToLower(strings.TrimSpace(name))
}

// aliases reads the semicolon-separated alias list off an object name,
// e.g. "brass lantern;lamp;lantern" names one object three ways.
func aliases(obj *db.Object) []string {
	parts := strings.Split(obj.Name, ";")
	if len(parts) <= 1 {
		return nil
	}
	out := make([]string, 0, len(parts)-1)
	for _, p := range parts[1:] {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, strings.ToLower(p))
		}
	}
	return out
}
