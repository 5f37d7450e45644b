package game

import (
	"strings"

	"github.com/leonelquinteros/gotext"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DefaultMaxCarryMass is the loose-carry limit used when none is configured.
const DefaultMaxCarryMass = 10.0

// Player is the player character: loose inventory plus equipment slots.
// Equipped items do not count against the carry limit.
type Player struct {
	// Name is the player character's name.
	Name string

	// Inventory is the loose items being carried.
	Inventory []*PortableItem

	// Equipped maps each slot to the item worn in it. A slot with nothing in
	// it maps to nil.
	Equipped map[Slot]*PortableItem

	// MaxCarryMass is the most total loose mass the player can carry.
	MaxCarryMass float64
}

// NewPlayer creates a Player with empty inventory and slots.
func NewPlayer(name string, maxCarryMass float64) *Player {
	if maxCarryMass <= 0 {
		maxCarryMass = DefaultMaxCarryMass
	}
	p := &Player{
		Name:         name,
		Equipped:     make(map[Slot]*PortableItem, len(Slots)),
		MaxCarryMass: maxCarryMass,
	}
	for _, sl := range Slots {
		p.Equipped[sl] = nil
	}
	return p
}

// CarryMass returns the total mass of loose inventory.
func (p *Player) CarryMass() float64 {
	var total float64
	for _, it := range p.Inventory {
		total += it.Mass
	}
	return total
}

// EquippedMass returns the total mass of equipped items.
func (p *Player) EquippedMass() float64 {
	var total float64
	for _, it := range p.Equipped {
		if it != nil {
			total += it.Mass
		}
	}
	return total
}

func (p *Player) tooHeavy() error {
	remaining := p.MaxCarryMass - p.CarryMass()
	if remaining < 0 {
		remaining = 0
	}
	return fail(ErrTooHeavy, "Too heavy! You can carry %.1f kg more.", remaining)
}

// Add puts item into loose inventory. If that would exceed MaxCarryMass the
// inventory is left unchanged and an error wrapping ErrTooHeavy is returned.
func (p *Player) Add(item *PortableItem) error {
	if p.CarryMass()+item.Mass > p.MaxCarryMass+massEpsilon {
		return p.tooHeavy()
	}
	p.Inventory = append(p.Inventory, item)
	return nil
}

// Remove takes the item with the given ID out of loose inventory and returns
// it. It returns nil if no such item is carried.
func (p *Player) Remove(id string) *PortableItem {
	for i, it := range p.Inventory {
		if it.ID == id {
			p.Inventory = append(p.Inventory[:i], p.Inventory[i+1:]...)
			return it
		}
	}
	return nil
}

// Find returns the loose inventory item that phrase refers to, or nil.
func (p *Player) Find(phrase string) *PortableItem {
	item, _ := MatchObject(phrase, p.Inventory)
	return item
}

// FindEquipped returns the equipped item that phrase refers to and the slot it
// is in. The returned item is nil if nothing equipped matches.
func (p *Player) FindEquipped(phrase string) (Slot, *PortableItem) {
	var worn []*PortableItem
	for _, sl := range Slots {
		if it := p.Equipped[sl]; it != nil {
			worn = append(worn, it)
		}
	}
	item, ok := MatchObject(phrase, worn)
	if !ok {
		return SlotNone, nil
	}
	return item.EquipSlot, item
}

// Has returns whether an item with the given ID is in loose inventory.
func (p *Player) Has(id string) bool {
	for _, it := range p.Inventory {
		if it.ID == id {
			return true
		}
	}
	return false
}

// Equip wears item in its slot, taking it out of loose inventory. Anything
// already in the slot goes back into loose inventory; if that would exceed the
// carry limit, nothing changes and an error is returned.
func (p *Player) Equip(item *PortableItem) (string, error) {
	slot := item.EquipSlot
	if _, ok := p.Equipped[slot]; !ok || slot == SlotNone {
		return "", fail(ErrInvalidSlot, "Cannot equip %s: invalid slot.", item.Name)
	}

	inInventory := p.Has(item.ID)

	if old := p.Equipped[slot]; old != nil {
		after := p.CarryMass() + old.Mass
		if inInventory {
			after -= item.Mass
		}
		if after > p.MaxCarryMass+massEpsilon {
			return "", fail(ErrTooHeavy, "Cannot unequip %s: inventory too full.", old.Name)
		}
		p.Inventory = append(p.Inventory, old)
	}

	if inInventory {
		p.Remove(item.ID)
	}
	p.Equipped[slot] = item

	return gotext.Get("You equip the %s.", item.Name), nil
}

// Unequip takes the item out of slot and puts it into loose inventory.
func (p *Player) Unequip(slot Slot) (string, error) {
	item, ok := p.Equipped[slot]
	if !ok {
		return "", fail(ErrInvalidSlot, "Invalid slot: %s", string(slot))
	}
	if item == nil {
		return "", fail(ErrNotFound, "Nothing equipped in %s.", string(slot))
	}

	if err := p.Add(item); err != nil {
		return "", fail(err, "Cannot unequip %s: %s", item.Name, gameMessage(err))
	}
	p.Equipped[slot] = nil

	return gotext.Get("You remove the %s.", item.Name), nil
}

// EquippedSummary returns one "Slot: item" line per slot.
func (p *Player) EquippedSummary() string {
	title := cases.Title(language.English)
	lines := make([]string, len(Slots))
	for i, sl := range Slots {
		name := gotext.Get("nothing")
		if it := p.Equipped[sl]; it != nil {
			name = it.Name
		}
		lines[i] = title.String(string(sl)) + ": " + name
	}
	return strings.Join(lines, "\n")
}

// InventoryNames returns the names of loose inventory items in order.
func (p *Player) InventoryNames() []string {
	names := make([]string, len(p.Inventory))
	for i := range p.Inventory {
		names[i] = p.Inventory[i].Name
	}
	return names
}
