package game

// File item.go holds the interactable object types: portable items, fixed
// objects, and storage units.

import (
	"fmt"
	"strings"

	"github.com/leonelquinteros/gotext"
)

// Slot is an equipment slot on the player.
type Slot string

const (
	SlotNone  Slot = ""
	SlotBody  Slot = "body"
	SlotTorso Slot = "torso"
	SlotWaist Slot = "waist"
	SlotFeet  Slot = "feet"
	SlotHead  Slot = "head"
)

// Slots is every valid equipment slot in display order.
var Slots = []Slot{SlotBody, SlotTorso, SlotWaist, SlotFeet, SlotHead}

// ParseSlot returns the Slot named by s.
func ParseSlot(s string) (Slot, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, sl := range Slots {
		if string(sl) == s {
			return sl, true
		}
	}
	return SlotNone, false
}

// Well-known item IDs.
const (
	ItemLowSecCard         = "id_card_low_sec"
	ItemHighSecCard        = "id_card_high_sec"
	ItemHighSecCardDamaged = "id_card_high_sec_damaged"
)

// Object holds the fields shared by every Interactable.
type Object struct {
	// ID is the unique identifier of the object instance.
	ID string

	// Name is the display name.
	Name string

	// Description is the short description of the object.
	Description string

	// ExamineText is shown when the object is examined. If empty, Description
	// is used.
	ExamineText string

	// Keywords are the phrases the player can use to refer to the object. If
	// empty, the lower-cased Name is the only keyword.
	Keywords []string
}

func (obj *Object) GetID() string {
	return obj.ID
}

func (obj *Object) GetName() string {
	return obj.Name
}

func (obj *Object) GetKeywords() []string {
	if len(obj.Keywords) == 0 {
		return []string{strings.ToLower(obj.Name)}
	}
	return obj.Keywords
}

func (obj *Object) Examine() string {
	if obj.ExamineText != "" {
		return obj.ExamineText
	}
	if obj.Description != "" {
		return obj.Description
	}
	return gotext.Get("You see nothing special about the %s.", obj.Name)
}

// PortableItem is an object that can be taken, carried, stored, and dropped.
// Items with an EquipSlot can also be worn.
type PortableItem struct {
	Object

	// Mass is the mass of the item in kg.
	Mass float64

	// EquipSlot is the slot the item is worn in, or SlotNone if it cannot be
	// worn.
	EquipSlot Slot
}

func (item *PortableItem) String() string {
	return fmt.Sprintf("PortableItem<%s %q %.1fkg>", item.ID, item.Name, item.Mass)
}

// Copy returns a copy of the item with the given ID.
func (item *PortableItem) Copy(id string) *PortableItem {
	cp := *item
	cp.ID = id
	cp.Keywords = make([]string, len(item.Keywords))
	copy(cp.Keywords, item.Keywords)
	return &cp
}

// FixedObject is an object that is permanently part of a room.
type FixedObject struct {
	Object
}

func (fo *FixedObject) String() string {
	return fmt.Sprintf("FixedObject<%s %q>", fo.ID, fo.Name)
}

// StorageUnit is a fixed object that can be opened and closed and holds
// portable items up to a mass capacity.
type StorageUnit struct {
	FixedObject

	// Open is whether the unit is currently open.
	Open bool

	// Capacity is the most mass in kg that the unit can hold.
	Capacity float64

	// Contents is the items in the unit.
	Contents []*PortableItem

	// OpenDescription is appended to the message shown when the unit is
	// opened.
	OpenDescription string
}

func (su *StorageUnit) String() string {
	return fmt.Sprintf("StorageUnit<%s %q %.1f/%.1fkg open=%t>", su.ID, su.Name, su.ContentsMass(), su.Capacity, su.Open)
}

// ContentsMass returns the total mass of the unit's contents.
func (su *StorageUnit) ContentsMass() float64 {
	var total float64
	for _, it := range su.Contents {
		total += it.Mass
	}
	return total
}

// Find returns the item in the unit that phrase refers to, or nil.
func (su *StorageUnit) Find(phrase string) *PortableItem {
	item, _ := MatchObject(phrase, su.Contents)
	return item
}

// Put adds item to the unit. If the item would take the unit over capacity,
// the unit is left unchanged and an error wrapping ErrContainerFull is
// returned.
func (su *StorageUnit) Put(item *PortableItem) error {
	if su.ContentsMass()+item.Mass > su.Capacity+massEpsilon {
		remaining := su.Capacity - su.ContentsMass()
		if remaining < 0 {
			remaining = 0
		}
		return fail(ErrContainerFull, "The %s is full. It can hold %.1f kg more.", su.Name, remaining)
	}
	su.Contents = append(su.Contents, item)
	return nil
}

// Remove takes the item with the given ID out of the unit and returns it. It
// returns nil if the unit does not hold it.
func (su *StorageUnit) Remove(id string) *PortableItem {
	for i, it := range su.Contents {
		if it.ID == id {
			su.Contents = append(su.Contents[:i], su.Contents[i+1:]...)
			return it
		}
	}
	return nil
}

// ContentNames returns the names of the unit's contents in order.
func (su *StorageUnit) ContentNames() []string {
	names := make([]string, len(su.Contents))
	for i := range su.Contents {
		names[i] = su.Contents[i].Name
	}
	return names
}
