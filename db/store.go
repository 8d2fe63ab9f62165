package db

import (
	"fmt"
	"sync"

	"mush/types"
)

// Store is an in-memory object database
type Store struct {
	mu       sync.RWMutex
	objects  map[types.ObjID]*Object
	maxObjID types.ObjID

	// Defs is the attribute definition registry shared by every object
	Defs *Defs
}

// NewStore creates a new empty object store
func NewStore() *Store {
	return &Store{
		objects:  make(map[types.ObjID]*Object),
		maxObjID: -1,
		Defs:     NewDefs(),
	}
}

// Get retrieves an object by ID
// Returns nil if object doesn't exist or is recycled
func (s *Store) Get(id types.ObjID) *Object {
	s.mu.RLock()
	defer s.mu.RUnlock()

	obj, ok := s.objects[id]
	if !ok || obj.Recycled {
		return nil
	}
	return obj
}

// Add adds a new object to the store
// Returns error if object ID already exists
func (s *Store) Add(obj *Object) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.objects[obj.ID]; exists {
		return fmt.Errorf("object #%d already exists", obj.ID)
	}

	s.objects[obj.ID] = obj
	if obj.ID > s.maxObjID {
		s.maxObjID = obj.ID
	}
	return nil
}

// NextID returns the next available object ID
func (s *Store) NextID() types.ObjID {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.maxObjID + 1
}

// Valid checks if an object exists and is not recycled (Good_obj)
func (s *Store) Valid(id types.ObjID) bool {
	if id < 0 {
		return false
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if id > s.maxObjID {
		return false
	}
	obj, ok := s.objects[id]
	return ok && !obj.Recycled
}

// Owner returns the owner of an object, or Nothing for a bad reference.
// Players own themselves unless explicitly chowned.
func (s *Store) Owner(id types.ObjID) types.ObjID {
	obj := s.Get(id)
	if obj == nil {
		return types.Nothing
	}
	return obj.Owner
}

// Contains reports whether member is directly inside container's
// contents list. One hop only; this is the member() check the lock
// evaluator uses, not a transitive location walk.
func (s *Store) Contains(container, member types.ObjID) bool {
	obj := s.Get(container)
	if obj == nil {
		return false
	}
	for _, id := range obj.Contents {
		if id == member {
			return true
		}
	}
	return false
}

// Contents returns the contents list of an object, nil for a bad reference
func (s *Store) Contents(id types.ObjID) []types.ObjID {
	obj := s.Get(id)
	if obj == nil {
		return nil
	}
	return obj.Contents
}

// MoveTo relocates an object into a destination's contents, removing it
// from its previous location first. dest may be Nothing to send the
// object into limbo.
func (s *Store) MoveTo(id, dest types.ObjID) error {
	obj := s.Get(id)
	if obj == nil {
		return fmt.Errorf("no such object #%d", id)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if old, ok := s.objects[obj.Location]; ok {
		for i, c := range old.Contents {
			if c == id {
				old.Contents = append(old.Contents[:i], old.Contents[i+1:]...)
				break
			}
		}
	}
	obj.Location = dest
	if dst, ok := s.objects[dest]; ok && !dst.Recycled {
		dst.Contents = append(dst.Contents, id)
	}
	return nil
}

// Recycle marks an object as recycled
func (s *Store) Recycle(id types.ObjID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	obj, ok := s.objects[id]
	if !ok {
		return fmt.Errorf("object #%d does not exist", id)
	}
	if obj.Recycled {
		return fmt.Errorf("object #%d already recycled", id)
	}
	obj.Recycled = true
	obj.Flags = obj.Flags.Set(FlagRecycled)
	return nil
}

// All returns all valid (non-recycled) objects
func (s *Store) All() []*Object {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*Object, 0, len(s.objects))
	for _, obj := range s.objects {
		if !obj.Recycled {
			result = append(result, obj)
		}
	}
	return result
}
