package db

import (
	"fmt"
	"strconv"
	"strings"

	bolt "go.etcd.io/bbolt"

	"mush/types"
)

// AttrStore is the attribute persistence sidecar: a bolt file holding
// every stored attribute keyed by "<obj>.<attrnum>". The in-memory
// store remains authoritative while running; the sidecar exists so a
// crash loses at most the writes since the last checkpoint, the role
// the udb attribute cache plays for the flatfile database.
type AttrStore struct {
	db *bolt.DB
}

var bucketAttrs = []byte("attrs")

// OpenAttrStore opens (creating if needed) an attribute sidecar file
func OpenAttrStore(path string) (*AttrStore, error) {
	db, err := bolt.Open(path, 0o600, nil)
	if err != nil {
		return nil, fmt.Errorf("opening attribute store: %w", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketAttrs)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing attribute store: %w", err)
	}
	return &AttrStore{db: db}, nil
}

// Close closes the underlying bolt file
func (a *AttrStore) Close() error {
	return a.db.Close()
}

// Put writes one attribute value through to the sidecar
func (a *AttrStore) Put(id types.ObjID, num int, text string) error {
	return a.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketAttrs)
		key := attrKey(id, num)
		if text == "" {
			return b.Delete(key)
		}
		return b.Put(key, []byte(text))
	})
}

// Get reads one attribute value from the sidecar
func (a *AttrStore) Get(id types.ObjID, num int) (string, bool) {
	var text string
	var found bool
	a.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket(bucketAttrs).Get(attrKey(id, num)); v != nil {
			text = string(v)
			found = true
		}
		return nil
	})
	return text, found
}

// Checkpoint rewrites the sidecar from the store's current attribute
// contents in one transaction.
func (a *AttrStore) Checkpoint(s *Store) error {
	objs := s.All()
	return a.db.Update(func(tx *bolt.Tx) error {
		if err := tx.DeleteBucket(bucketAttrs); err != nil {
			return err
		}
		b, err := tx.CreateBucket(bucketAttrs)
		if err != nil {
			return err
		}
		for _, obj := range objs {
			for num, attr := range obj.Attrs {
				if attr.Text == "" {
					continue
				}
				if err := b.Put(attrKey(obj.ID, num), []byte(attr.Text)); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

// LoadInto restores sidecar attribute text onto objects already present
// in the store. Attribute values for objects the store does not know
// are skipped; owners default to the holding object's owner.
func (a *AttrStore) LoadInto(s *Store) error {
	return a.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketAttrs).ForEach(func(k, v []byte) error {
			id, num, err := parseAttrKey(k)
			if err != nil {
				return err
			}
			obj := s.Get(id)
			if obj == nil {
				return nil
			}
			obj.Attrs[num] = &Attr{Text: string(v), Owner: obj.Owner}
			return nil
		})
	})
}

func attrKey(id types.ObjID, num int) []byte {
	return []byte(fmt.Sprintf("%d.%d", id, num))
}

func parseAttrKey(k []byte) (types.ObjID, int, error) {
	parts := strings.SplitN(string(k), ".", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("malformed attribute key %q", k)
	}
	id, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("malformed attribute key %q", k)
	}
	num, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("malformed attribute key %q", k)
	}
	return types.ObjID(id), num, nil
}
