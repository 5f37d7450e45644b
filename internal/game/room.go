// Package game implements the world model and the command-processing core
// that drives it.
package game

// File room.go includes symbols for holding data on the rooms and exits between
// them.

import (
	"fmt"
	"strings"

	"github.com/zyedidia/generic/mapset"
)

// Dimensions is the size of a room in metres.
type Dimensions struct {
	Length float64
	Width  float64
	Height float64
}

// Volume returns the volume of the room in cubic metres.
func (d Dimensions) Volume() float64 {
	return d.Length * d.Width * d.Height
}

// Exit is a way out of a room. An Exit with an empty DoorID is an archway and
// can always be traversed.
type Exit struct {
	// Key is the canonical name of the exit within its room.
	Key string

	// Target is the ID of the room the exit leads to.
	Target string

	// Label is shown when the player goes through the exit. If empty, the
	// target room's name is used.
	Label string

	// Direction is an optional compass direction, such as "fore" or "port".
	Direction string

	// Shortcuts are other phrases the player can use for the exit.
	Shortcuts []string

	// DoorID is the ID of the Door that secures this exit, if any.
	DoorID string
}

func (ex *Exit) String() string {
	if ex.DoorID != "" {
		return fmt.Sprintf("Exit(%q -> %s via %s)", ex.Key, ex.Target, ex.DoorID)
	}
	return fmt.Sprintf("Exit(%q -> %s)", ex.Key, ex.Target)
}

// Secured returns whether a door stands in the exit.
func (ex *Exit) Secured() bool {
	return ex.DoorID != ""
}

// Room is a scene in the game. It contains a series of exits that lead to other
// rooms, a description, and the objects that are currently in it.
type Room struct {
	// ID is how the room is referred to internally. It must be unique from all
	// other Rooms.
	ID string

	// Name is the display name of the room.
	Name string

	// Description is the lines of the room description. Lines may contain
	// inline markup.
	Description []string

	// Background is the image shown while the player is in the room.
	Background string

	// Dimensions is the size of the room.
	Dimensions Dimensions

	// Exits is the ways out of the room, in declaration order.
	Exits []*Exit

	// Objects is everything in the room that can be interacted with. This
	// changes as items are taken and dropped.
	Objects []Interactable

	// Panels maps a door ID to the security panel mounted on this room's side
	// of it.
	Panels map[string]*SecurityPanel

	// CargoHold is whether items can be stored in the room's cargo.
	CargoHold bool

	// Cargo is the items stored in the room's cargo hold.
	Cargo []*PortableItem
}

func (room *Room) String() string {
	var exits []string
	for _, ex := range room.Exits {
		exits = append(exits, ex.String())
	}
	exitsStr := strings.Join(exits, ", ")

	return fmt.Sprintf("Room<%s %q EXITS: %s>", room.ID, room.Name, exitsStr)
}

// FindExit returns the exit that phrase refers to, or nil if there is none.
// The phrase is compared against every exit's key, then every direction, then
// every shortcut, then every label, and finally every target room ID. The
// first exit matching in the earliest pass wins.
func (room *Room) FindExit(phrase string) *Exit {
	phrase = strings.Join(strings.Fields(strings.ToLower(phrase)), " ")
	if phrase == "" {
		return nil
	}

	passes := []func(*Exit) bool{
		func(ex *Exit) bool { return strings.ToLower(ex.Key) == phrase },
		func(ex *Exit) bool { return ex.Direction != "" && strings.EqualFold(ex.Direction, phrase) },
		func(ex *Exit) bool {
			shortcuts := mapset.New[string]()
			for _, sc := range ex.Shortcuts {
				shortcuts.Put(strings.ToLower(sc))
			}
			return shortcuts.Has(phrase)
		},
		func(ex *Exit) bool { return ex.Label != "" && strings.ToLower(ex.Label) == phrase },
		func(ex *Exit) bool { return strings.ToLower(ex.Target) == phrase },
	}

	for _, matches := range passes {
		for _, ex := range room.Exits {
			if matches(ex) {
				return ex
			}
		}
	}
	return nil
}

// ExitForDoor returns the exit in the room secured by the given door, or nil.
func (room *Room) ExitForDoor(doorID string) *Exit {
	for _, ex := range room.Exits {
		if ex.DoorID == doorID {
			return ex
		}
	}
	return nil
}

// SecuredExits returns every exit in the room that has a door.
func (room *Room) SecuredExits() []*Exit {
	var secured []*Exit
	for _, ex := range room.Exits {
		if ex.Secured() {
			secured = append(secured, ex)
		}
	}
	return secured
}

// FindObject returns the object in the room that phrase refers to, or nil.
func (room *Room) FindObject(phrase string) Interactable {
	obj, ok := MatchObject(phrase, room.Objects)
	if !ok {
		return nil
	}
	return obj
}

// AddObject puts obj in the room.
func (room *Room) AddObject(obj Interactable) {
	room.Objects = append(room.Objects, obj)
}

// RemoveObject removes the object with the given ID from the room and returns
// it. If there is already no object with that ID in the room, this has no
// effect and nil is returned.
func (room *Room) RemoveObject(id string) Interactable {
	for idx, obj := range room.Objects {
		if obj.GetID() == id {
			room.Objects = append(room.Objects[:idx], room.Objects[idx+1:]...)
			return obj
		}
	}
	return nil
}

// StorageUnits returns every storage unit in the room.
func (room *Room) StorageUnits() []*StorageUnit {
	var units []*StorageUnit
	for _, obj := range room.Objects {
		if su, ok := obj.(*StorageUnit); ok {
			units = append(units, su)
		}
	}
	return units
}

// FindStorage returns the storage unit in the room that phrase refers to, or
// nil.
func (room *Room) FindStorage(phrase string) *StorageUnit {
	su, ok := MatchObject(phrase, room.StorageUnits())
	if !ok {
		return nil
	}
	return su
}

// ObjectNames returns the names of every object in the room in order.
func (room *Room) ObjectNames() []string {
	names := make([]string, len(room.Objects))
	for i, obj := range room.Objects {
		names[i] = obj.GetName()
	}
	return names
}

// CargoMass returns the total mass of the room's cargo.
func (room *Room) CargoMass() float64 {
	var total float64
	for _, it := range room.Cargo {
		total += it.Mass
	}
	return total
}
