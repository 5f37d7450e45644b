package game

// File actions.go holds the handlers for the everyday verbs: looking,
// examining, taking and dropping, inventory, and equipment.

import (
	"fmt"
	"strings"

	"github.com/dekarrin/darkstar/internal/util"
	"github.com/dekarrin/rosed"
	"github.com/leonelquinteros/gotext"
)

var takeMessages = []string{
	"You take the %s.",
	"You pick up the %s.",
	"You grab the %s and stow it.",
}

var fixedTakeMessages = []string{
	"The %s is bolted to the deck.",
	"You tug at the %s, but it won't budge.",
	"The %s is part of the ship. It isn't going anywhere.",
}

func (gs *State) handleTake(args string) (string, error) {
	if strings.TrimSpace(args) == "" {
		return gotext.Get("What do you want to take?"), nil
	}

	obj := gs.CurrentRoom.FindObject(args)
	if obj == nil {
		return "", fail(ErrNotFound, "You don't see any %s here.", args)
	}

	if IsFixed(obj) {
		return gotext.Get(gs.pick(fixedTakeMessages), obj.GetName()), nil
	}
	item := obj.(*PortableItem)

	if err := gs.Player.Add(item); err != nil {
		return "", err
	}
	gs.CurrentRoom.RemoveObject(item.ID)

	return gotext.Get(gs.pick(takeMessages), item.Name), nil
}

func (gs *State) handleDrop(args string) (string, error) {
	if strings.TrimSpace(args) == "" {
		return gotext.Get("What do you want to drop?"), nil
	}

	item := gs.Player.Find(args)
	if item == nil {
		return "", fail(ErrNotHeld, "You don't have that.")
	}

	gs.Player.Remove(item.ID)
	gs.CurrentRoom.AddObject(item)

	return gotext.Get("You drop the %s.", item.Name), nil
}

// examinable returns the thing phrase refers to, searching the room first,
// then the player's inventory, then what the player is wearing.
func (gs *State) examinable(phrase string) Interactable {
	if obj := gs.CurrentRoom.FindObject(phrase); obj != nil {
		return obj
	}
	if it := gs.Player.Find(phrase); it != nil {
		return it
	}
	if _, it := gs.Player.FindEquipped(phrase); it != nil {
		return it
	}
	return nil
}

func (gs *State) handleExamine(args string) (string, error) {
	if strings.TrimSpace(args) == "" {
		return gotext.Get("What do you want to examine?"), nil
	}

	target := gs.examinable(args)
	if target == nil {
		return "", fail(ErrNotFound, "You don't see any %s here.", args)
	}
	return target.Examine(), nil
}

func (gs *State) handleLook(args string) (string, error) {
	if strings.TrimSpace(args) != "" {
		return gs.handleExamine(args)
	}
	return gs.Describe(), nil
}

func (gs *State) handleInventory(_ string) (string, error) {
	p := gs.Player

	var output string
	if len(p.Inventory) < 1 {
		output = gotext.Get("You aren't carrying anything.")
	} else {
		output = gotext.Get("You are carrying %s (%.1f/%.1f kg).", util.MakeTextList(p.InventoryNames(), true), p.CarryMass(), p.MaxCarryMass)
	}

	output = rosed.Edit(output).WrapOpts(gs.tune.OutputWidth, textFormatOptions).String()
	return output + "\n\n" + gotext.Get("Equipped:") + "\n" + p.EquippedSummary(), nil
}

func (gs *State) handleEquip(args string) (string, error) {
	if strings.TrimSpace(args) == "" {
		return gotext.Get("What do you want to wear?"), nil
	}

	item := gs.Player.Find(args)
	if item == nil {
		if _, worn := gs.Player.FindEquipped(args); worn != nil {
			return gotext.Get("You are already wearing the %s.", worn.Name), nil
		}
		return "", fail(ErrNotHeld, "You don't have a %s.", args)
	}

	return gs.Player.Equip(item)
}

func (gs *State) handleUnequip(args string) (string, error) {
	if strings.TrimSpace(args) == "" {
		return gotext.Get("What do you want to take off?"), nil
	}

	if slot, ok := ParseSlot(args); ok {
		return gs.Player.Unequip(slot)
	}

	slot, item := gs.Player.FindEquipped(args)
	if item == nil {
		return "", fail(ErrNotFound, "You aren't wearing a %s.", args)
	}
	return gs.Player.Unequip(slot)
}

// String gives a one-line summary of the game state.
func (gs *State) String() string {
	return fmt.Sprintf("State<room=%s pending=%s time=%q>", gs.CurrentRoom.ID, gs.Pending(), gs.Clock.String())
}
