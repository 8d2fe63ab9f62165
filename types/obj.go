package types

import "fmt"

// ObjID represents a MUSH object reference (dbref)
// -1 = nothing, -2 = ambiguous match, -3 = home, 0+ = valid object
type ObjID int

const (
	Nothing   ObjID = -1
	Ambiguous ObjID = -2
	Home      ObjID = -3
)

// God is the superuser dbref. #1 gets a handful of special privileges,
// among them locking on raw attribute numbers.
const God ObjID = 1

// String returns the dbref notation, e.g. "#42"
func (o ObjID) String() string {
	return fmt.Sprintf("#%d", o)
}

// IsNone reports whether the reference is any of the negative sentinels
func (o ObjID) IsNone() bool {
	return o < 0
}
