package db

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"mush/types"
)

// SetPassword hashes and stores a player password
func (s *Store) SetPassword(id types.ObjID, password string) error {
	obj := s.Get(id)
	if obj == nil {
		return errNoObject(id)
	}
	if obj.Type != types.TypePlayer {
		return fmt.Errorf("%s is not a player", id)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}
	obj.Password = string(hash)
	return nil
}

// CheckPassword verifies a player password against the stored hash
func (s *Store) CheckPassword(id types.ObjID, password string) bool {
	obj := s.Get(id)
	if obj == nil || obj.Password == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(obj.Password), []byte(password)) == nil
}
