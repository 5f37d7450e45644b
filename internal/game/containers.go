package game

import (
	"github.com/dekarrin/darkstar/internal/command"
	"github.com/dekarrin/darkstar/internal/util"
	"github.com/leonelquinteros/gotext"
)

// findStorage returns the storage unit in the current room that phrase names.
// If there is none, the returned error says whether phrase named something
// that is not a storage unit.
func (gs *State) findStorage(verb, phrase string) (*StorageUnit, error) {
	if phrase == "" {
		return nil, fail(ErrNotFound, "What do you want to %s?", verb)
	}
	su := gs.CurrentRoom.FindStorage(phrase)
	if su != nil {
		return su, nil
	}
	if obj := gs.CurrentRoom.FindObject(phrase); obj != nil {
		return nil, fail(ErrNotFound, "You can't %s the %s.", verb, obj.GetName())
	}
	return nil, fail(ErrNotFound, "There's no storage unit like that here.")
}

func (gs *State) handleOpen(args string) (string, error) {
	su, err := gs.findStorage("open", args)
	if err != nil {
		return "", err
	}
	if su.Open {
		return gotext.Get("The %s is already open.", su.Name), nil
	}

	su.Open = true
	output := gotext.Get("You open the %s.", su.Name)
	if su.OpenDescription != "" {
		output += " " + su.OpenDescription
	}
	return output, nil
}

func (gs *State) handleClose(args string) (string, error) {
	su, err := gs.findStorage("close", args)
	if err != nil {
		return "", err
	}
	if !su.Open {
		return gotext.Get("The %s is already closed.", su.Name), nil
	}

	su.Open = false
	return gotext.Get("You close the %s.", su.Name), nil
}

func (gs *State) handleLookIn(args string) (string, error) {
	su, err := gs.findStorage("look in", args)
	if err != nil {
		return "", err
	}
	if !su.Open {
		return "", fail(ErrClosed, "The %s is closed.", su.Name)
	}
	if len(su.Contents) == 0 {
		return gotext.Get("The %s is empty.", su.Name), nil
	}
	return gotext.Get("The %s contains: %s.", su.Name, util.MakeTextList(su.ContentNames(), false)), nil
}

func (gs *State) handleTakeFrom(args string) (string, error) {
	itemPhrase, unitPhrase := command.SplitPrepositional(args, "from")
	if itemPhrase == "" || unitPhrase == "" {
		return gotext.Get("Take what from where? Try 'take [item] from [storage]'."), nil
	}

	su, err := gs.findStorage("take from", unitPhrase)
	if err != nil {
		return "", err
	}
	if !su.Open {
		return "", fail(ErrClosed, "The %s is closed.", su.Name)
	}

	item := su.Find(itemPhrase)
	if item == nil {
		return "", fail(ErrNotFound, "There's no %s in the %s.", itemPhrase, su.Name)
	}

	if err := gs.Player.Add(item); err != nil {
		return "", err
	}
	su.Remove(item.ID)

	return gotext.Get("You take the %s from the %s.", item.Name, su.Name), nil
}

func (gs *State) handlePutIn(args string) (string, error) {
	itemPhrase, unitPhrase := command.SplitPrepositional(args, "in")
	if itemPhrase == "" || unitPhrase == "" {
		return gotext.Get("Put what in where? Try 'put [item] in [storage]'."), nil
	}

	su, err := gs.findStorage("put in", unitPhrase)
	if err != nil {
		return "", err
	}
	if !su.Open {
		return "", fail(ErrClosed, "The %s is closed.", su.Name)
	}

	item := gs.Player.Find(itemPhrase)
	if item == nil {
		return "", fail(ErrNotHeld, "You don't have a %s.", itemPhrase)
	}

	if err := su.Put(item); err != nil {
		return "", err
	}
	gs.Player.Remove(item.ID)

	return gotext.Get("You put the %s in the %s.", item.Name, su.Name), nil
}
