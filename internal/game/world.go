package game

import (
	"fmt"

	"github.com/dekarrin/darkstar/internal/util"
)

// World is every room, door, and item template in a game.
type World struct {
	// Rooms maps room IDs to rooms.
	Rooms map[string]*Room

	// Doors maps door IDs to doors.
	Doors map[string]*Door

	// Items maps item IDs to the templates new instances are made from.
	Items map[string]PortableItem

	// Start is the ID of the room the player starts in.
	Start string

	// PlayerName is the name of the player character.
	PlayerName string

	// ShipName is the name of the ship the game takes place on.
	ShipName string

	// StartingItems is put into the player's inventory when a game begins.
	StartingItems []*PortableItem
}

var builtinItems = map[string]PortableItem{
	ItemHighSecCardDamaged: {
		Object: Object{
			ID:          ItemHighSecCardDamaged,
			Name:        "Damaged ID card",
			Description: "A high-security ID card with a scorched magnetic strip.",
			ExamineText: "The strip has been burned out by the access panel. No door on the ship will accept it now.",
			Keywords:    []string{"damaged id card", "damaged card", "id card", "card"},
		},
		Mass: 0.01,
	},
}

// NewItem returns a new instance of the item template with the given ID.
// Built-in templates are used if the world does not define one.
func (w *World) NewItem(id string) (*PortableItem, error) {
	tmpl, ok := w.Items[id]
	if !ok {
		tmpl, ok = builtinItems[id]
		if !ok {
			return nil, fmt.Errorf("no item template with ID %q", id)
		}
	}
	return tmpl.Copy(id), nil
}

// Validate checks that the world references are consistent.
func (w *World) Validate() error {
	if _, ok := w.Rooms[w.Start]; !ok {
		return fmt.Errorf("start room %q does not exist", w.Start)
	}

	for _, roomID := range util.OrderedKeys(w.Rooms) {
		room := w.Rooms[roomID]
		for _, ex := range room.Exits {
			if _, ok := w.Rooms[ex.Target]; !ok {
				return fmt.Errorf("rooms[%q]: exits[%q]: target %q does not exist", roomID, ex.Key, ex.Target)
			}
			if ex.DoorID == "" {
				continue
			}
			door, ok := w.Doors[ex.DoorID]
			if !ok {
				return fmt.Errorf("rooms[%q]: exits[%q]: door %q does not exist", roomID, ex.Key, ex.DoorID)
			}
			if !door.Connects(roomID) || door.OtherRoom(roomID) != ex.Target {
				return fmt.Errorf("rooms[%q]: exits[%q]: door %q does not connect %q and %q", roomID, ex.Key, ex.DoorID, roomID, ex.Target)
			}
		}
	}

	for _, doorID := range util.OrderedKeys(w.Doors) {
		door := w.Doors[doorID]
		if len(door.Panels) != 2 {
			return fmt.Errorf("doors[%q]: has %d panels; must have exactly 2", doorID, len(door.Panels))
		}
		for _, side := range door.Rooms {
			if door.Panels[side] == nil {
				return fmt.Errorf("doors[%q]: no panel on %q side", doorID, side)
			}
		}
		if door.Security.RequiresPIN() && door.PIN == "" {
			return fmt.Errorf("doors[%q]: security level %s requires a PIN", doorID, door.Security)
		}
		if door.PIN != "" && !ValidPIN(door.PIN) {
			return fmt.Errorf("doors[%q]: PIN must be numeric", doorID)
		}
	}

	return nil
}
