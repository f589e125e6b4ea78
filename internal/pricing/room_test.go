package pricing

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapRoomIdentifier(t *testing.T) {
	tests := []struct {
		id       string
		expected RoomCategory
		found    bool
	}{
		{"suite-mountain-view", Suite, true},
		{"spacious-apartment", Apartment, true},
		{"family-room", FamilyRoom, true},
		{"family-room-2", FamilyRoom2, true},
		{"nonexistent", 0, false},
		{"", 0, false},
		{"Family-Room-2", 0, false},
		{"suite", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			c, ok := MapRoomIdentifier(tt.id)
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.expected, c)
		})
	}
}

func TestRoomCategory_Identifier(t *testing.T) {
	for _, c := range Categories() {
		back, ok := MapRoomIdentifier(c.Identifier())
		require.True(t, ok, c.String())
		assert.Equal(t, c, back)
	}

	assert.Empty(t, RoomCategory(99).Identifier())
}

func TestParseRoomCategory(t *testing.T) {
	c, ok := ParseRoomCategory("familyRoom2")
	assert.True(t, ok)
	assert.Equal(t, FamilyRoom2, c)

	_, ok = ParseRoomCategory("family-room-2")
	assert.False(t, ok)
}

func TestRoomCategory_Text(t *testing.T) {
	assert.Equal(t, "apartment", Apartment.String())
	assert.Equal(t, "Suite with Mountain View", Suite.DisplayName())
	assert.Equal(t, "RoomCategory(0)", RoomCategory(0).String())
	assert.False(t, RoomCategory(0).Valid())

	data, err := json.Marshal(map[string]RoomCategory{"room": FamilyRoom})
	require.NoError(t, err)
	assert.JSONEq(t, `{"room":"familyRoom"}`, string(data))

	var decoded struct {
		Room RoomCategory `json:"room"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"room":"suite"}`), &decoded))
	assert.Equal(t, Suite, decoded.Room)

	err = json.Unmarshal([]byte(`{"room":"penthouse"}`), &decoded)
	assert.ErrorIs(t, err, ErrUnknownRoom)

	_, err = json.Marshal(RoomCategory(42))
	assert.Error(t, err)
}
