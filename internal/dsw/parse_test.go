package dsw

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func pf(f float64) *float64 {
	return &f
}

// validData returns a small world that parses without error.
func validData() topLevelWorldData {
	return topLevelWorldData{
		Format: "DSW",
		Type:   "DATA",
		World:  world{Start: "a"},
		Items: []item{
			{ID: "cup", Name: "Cup", Mass: 0.2},
			{ID: "box", Type: "storage", Name: "Box", Capacity: 1, Contents: []string{"cup"}},
		},
		Rooms: []room{
			{ID: "a", Name: "A", Dimensions: dimensions{1, 1, 1}, Objects: []string{"box"}, Exits: []exit{{Key: "b", Target: "b"}}},
			{ID: "b", Name: "B", Dimensions: dimensions{1, 1, 1}, Exits: []exit{{Key: "a", Target: "a"}}},
		},
		Connections: []connection{
			{ID: "ab", Rooms: []string{"a", "b"}, SecurityLevel: 1},
		},
	}
}

func Test_parseWorldData_Errors(t *testing.T) {
	testCases := []struct {
		name      string
		modify    func(td *topLevelWorldData)
		expectErr string
	}{
		{
			name:   "valid",
			modify: func(td *topLevelWorldData) {},
		},
		{
			name:      "duplicate item",
			modify:    func(td *topLevelWorldData) { td.Items = append(td.Items, item{ID: "cup", Name: "Mug"}) },
			expectErr: `items["cup"]: duplicate id`,
		},
		{
			name:      "duplicate room",
			modify:    func(td *topLevelWorldData) { td.Rooms = append(td.Rooms, td.Rooms[0]) },
			expectErr: `rooms["a"]: duplicate id`,
		},
		{
			name:      "blank room id",
			modify:    func(td *topLevelWorldData) { td.Rooms[1].ID = "" },
			expectErr: `rooms[1]: id must not be blank`,
		},
		{
			name:      "missing start",
			modify:    func(td *topLevelWorldData) { td.World.Start = "z" },
			expectErr: `world: start: no room with id "z" exists`,
		},
		{
			name:      "unknown item type",
			modify:    func(td *topLevelWorldData) { td.Items[0].Type = "edible" },
			expectErr: `items["cup"]: type: must be one of`,
		},
		{
			name:      "bad slot",
			modify:    func(td *topLevelWorldData) { td.Items[0].EquipSlot = "tail" },
			expectErr: `items["cup"]: equip_slot: "tail" is not a valid slot`,
		},
		{
			name:      "contents of fixed item",
			modify:    func(td *topLevelWorldData) { td.Items[1].Type = "fixed" },
			expectErr: `items["box"]: contents: only storage items can hold contents`,
		},
		{
			name:      "contents over capacity",
			modify:    func(td *topLevelWorldData) { td.Items[1].Capacity = 0.1 },
			expectErr: `items["box"]: contents: total mass 0.20 kg exceeds capacity 0.10 kg`,
		},
		{
			name:      "contents not portable",
			modify:    func(td *topLevelWorldData) { td.Items[1].Contents = []string{"box"} },
			expectErr: `items["box"]: contents[0]: item "box" is not portable`,
		},
		{
			name:      "unknown object",
			modify:    func(td *topLevelWorldData) { td.Rooms[0].Objects = []string{"ghost"} },
			expectErr: `rooms["a"]: objects[0]: no item with id "ghost" exists`,
		},
		{
			name:      "flat room",
			modify:    func(td *topLevelWorldData) { td.Rooms[0].Dimensions.Height = 0 },
			expectErr: `rooms["a"]: dimensions: length, width, and height must all be positive`,
		},
		{
			name:      "bad exit target",
			modify:    func(td *topLevelWorldData) { td.Rooms[0].Exits[0].Target = "c" },
			expectErr: `rooms["a"]: exits["b"]: target: no room with id "c" exists`,
		},
		{
			name: "duplicate exit key",
			modify: func(td *topLevelWorldData) {
				td.Rooms[0].Exits = append(td.Rooms[0].Exits, exit{Key: "B", Target: "b"})
			},
			expectErr: `rooms["a"]: exits["b"]: duplicate key`,
		},
		{
			name:      "connection to itself",
			modify:    func(td *topLevelWorldData) { td.Connections[0].Rooms = []string{"a", "a"} },
			expectErr: `connections["ab"]: rooms: must name 2 different rooms`,
		},
		{
			name:      "connection to nowhere",
			modify:    func(td *topLevelWorldData) { td.Connections[0].Rooms = []string{"a", "q"} },
			expectErr: `connections["ab"]: rooms: no room with id "q" exists`,
		},
		{
			name:      "pin required",
			modify:    func(td *topLevelWorldData) { td.Connections[0].SecurityLevel = 3 },
			expectErr: `connections["ab"]: pin: security level keycard-high+pin requires a PIN`,
		},
		{
			name: "pin with letters",
			modify: func(td *topLevelWorldData) {
				td.Connections[0].SecurityLevel = 3
				td.Connections[0].PIN = "AB12"
			},
			expectErr: `connections["ab"]: pin: must be numeric`,
		},
		{
			name:      "security level out of range",
			modify:    func(td *topLevelWorldData) { td.Connections[0].SecurityLevel = 4 },
			expectErr: `connections["ab"]: security_level: must be between 0 and 3`,
		},
		{
			name:      "one-way door",
			modify:    func(td *topLevelWorldData) { td.Rooms[1].Exits = nil },
			expectErr: `connections["ab"]: room "b" has no exit to "a"`,
		},
		{
			name: "panel on a room the door does not join",
			modify: func(td *topLevelWorldData) {
				td.Connections[0].Panels = []panel{{Side: "c"}}
			},
			expectErr: `connections["ab"]: panels[0]: side: "c" is not a room joined by door "ab"`,
		},
		{
			name: "second panel on the same side",
			modify: func(td *topLevelWorldData) {
				td.Connections = append(td.Connections, connection{Rooms: []string{"b", "a"}, Panels: []panel{{Side: "a"}, {Side: "a"}}})
			},
			expectErr: `connections[1]: panels[1]: side: door "ab" already has a panel on the "a" side`,
		},
		{
			name: "repair progress out of range",
			modify: func(td *topLevelWorldData) {
				td.Connections[0].Panels = []panel{{Side: "a", RepairProgress: pf(1.5)}}
			},
			expectErr: `connections["ab"]: panels[0]: repair_progress: must be between 0 and 1`,
		},
		{
			name:      "starting item not portable",
			modify:    func(td *topLevelWorldData) { td.World.StartingItems = []string{"box"} },
			expectErr: `world: starting_items[0]: item "box" is not portable`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)
			td := validData()
			tc.modify(&td)

			w, err := parseWorldData(td)

			if tc.expectErr == "" {
				assert.NoError(err)
				assert.NotNil(w)
				return
			}
			assert.ErrorContains(err, tc.expectErr)
			assert.Nil(w)
		})
	}
}

func Test_parseWorldData_Defaults(t *testing.T) {
	assert := assert.New(t)
	td := validData()
	td.Items[0].Keywords = []string{" Coffee Cup ", ""}
	td.Items[0].Description = "A chipped cup."

	w, err := parseWorldData(td)

	if !assert.NoError(err) {
		return
	}
	box := w.Rooms["a"].FindStorage("box")
	if assert.NotNil(box) && assert.Len(box.Contents, 1) {
		cup := box.Contents[0]
		assert.Equal([]string{"coffee cup"}, cup.Keywords)
		assert.Equal("A chipped cup.", cup.ExamineText)
	}
	assert.Equal([]string{"box"}, box.Keywords)
	assert.Equal("ab:a", w.Doors["ab"].PanelFor("a").ID)
}

func Test_topLevelWorldData_merge(t *testing.T) {
	assert := assert.New(t)
	td := topLevelWorldData{World: world{Start: "a"}}

	err := td.merge(topLevelWorldData{World: world{Ship: "Kestrel"}, Rooms: []room{{ID: "x"}}})
	assert.NoError(err)
	assert.Equal("Kestrel", td.World.Ship)
	assert.Len(td.Rooms, 1)

	err = td.merge(topLevelWorldData{World: world{Start: "b"}})
	assert.ErrorContains(err, `duplicate world start; start has already been defined as "a"`)
}
