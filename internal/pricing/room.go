package pricing

import (
	"fmt"
)

// RoomCategory identifies one of the fixed accommodation types.
type RoomCategory int

const (
	Suite RoomCategory = iota + 1
	Apartment
	FamilyRoom
	FamilyRoom2
)

var categoryKeys = map[RoomCategory]string{
	Suite:       "suite",
	Apartment:   "apartment",
	FamilyRoom:  "familyRoom",
	FamilyRoom2: "familyRoom2",
}

var categoryNames = map[RoomCategory]string{
	Suite:       "Suite with Mountain View",
	Apartment:   "Spacious Apartment",
	FamilyRoom:  "Family Room",
	FamilyRoom2: "Family Room 2",
}

// Option values of the booking form select.
var roomIdentifiers = map[string]RoomCategory{
	"suite-mountain-view": Suite,
	"spacious-apartment":  Apartment,
	"family-room":         FamilyRoom,
	"family-room-2":       FamilyRoom2,
}

// Categories returns every room category in display order.
func Categories() []RoomCategory {
	return []RoomCategory{Suite, Apartment, FamilyRoom, FamilyRoom2}
}

func (c RoomCategory) Valid() bool {
	_, ok := categoryKeys[c]

	return ok
}

func (c RoomCategory) String() string {
	if key, ok := categoryKeys[c]; ok {
		return key
	}

	return fmt.Sprintf("RoomCategory(%d)", int(c))
}

// DisplayName is the guest-facing room name.
func (c RoomCategory) DisplayName() string {
	return categoryNames[c]
}

func (c RoomCategory) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("marshal %v: %w", c, ErrUnknownRoom)
	}

	return []byte(categoryKeys[c]), nil
}

func (c *RoomCategory) UnmarshalText(text []byte) error {
	parsed, ok := ParseRoomCategory(string(text))
	if !ok {
		return fmt.Errorf("unmarshal %q: %w", string(text), ErrUnknownRoom)
	}

	*c = parsed

	return nil
}

// ParseRoomCategory resolves a canonical category key such as "familyRoom2".
func ParseRoomCategory(key string) (RoomCategory, bool) {
	for c, k := range categoryKeys {
		if k == key {
			return c, true
		}
	}

	return 0, false
}

// MapRoomIdentifier translates a booking form room option into a category.
// Unrecognized identifiers report false; they come straight from user input.
func MapRoomIdentifier(id string) (RoomCategory, bool) {
	c, ok := roomIdentifiers[id]

	return c, ok
}

// Identifier is the inverse of MapRoomIdentifier.
func (c RoomCategory) Identifier() string {
	for id, rc := range roomIdentifiers {
		if rc == c {
			return id
		}
	}

	return ""
}
