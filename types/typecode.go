package types

// TypeCode classifies an object in the world: room, thing, exit or player
type TypeCode int

const (
	TypeRoom   TypeCode = 0
	TypeThing  TypeCode = 1
	TypeExit   TypeCode = 2
	TypePlayer TypeCode = 3
)

// String returns the type name used in dumps and examine output
func (t TypeCode) String() string {
	switch t {
	case TypeRoom:
		return "ROOM"
	case TypeThing:
		return "THING"
	case TypeExit:
		return "EXIT"
	case TypePlayer:
		return "PLAYER"
	default:
		return "UNKNOWN"
	}
}
