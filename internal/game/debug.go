package game

import (
	"fmt"
	"strings"

	"github.com/dekarrin/darkstar/internal/util"
	"github.com/dekarrin/rosed"
	"github.com/leonelquinteros/gotext"
)

// This file contains the cargo hold handlers and the diagnostic DEBUG commands
// of game.State.

func (gs *State) handleStore(args string) (string, error) {
	room := gs.CurrentRoom
	if !room.CargoHold {
		return gotext.Get("There is no cargo hold here."), nil
	}
	if strings.TrimSpace(args) == "" {
		return gotext.Get("What do you want to store?"), nil
	}

	item := gs.Player.Find(args)
	if item == nil {
		return "", fail(ErrNotHeld, "You don't have a %s.", args)
	}

	gs.Player.Remove(item.ID)
	room.Cargo = append(room.Cargo, item)

	return gotext.Get("You store the %s in the cargo hold.", item.Name), nil
}

func (gs *State) handleRetrieve(args string) (string, error) {
	room := gs.CurrentRoom
	if !room.CargoHold {
		return gotext.Get("There is no cargo hold here."), nil
	}
	if strings.TrimSpace(args) == "" {
		return gotext.Get("What do you want to retrieve?"), nil
	}

	item, ok := MatchObject(args, room.Cargo)
	if !ok {
		return "", fail(ErrNotFound, "There's no %s in the cargo hold.", args)
	}

	if err := gs.Player.Add(item); err != nil {
		return "", err
	}
	for i := range room.Cargo {
		if room.Cargo[i] == item {
			room.Cargo = append(room.Cargo[:i], room.Cargo[i+1:]...)
			break
		}
	}

	return gotext.Get("You retrieve the %s from the cargo hold.", item.Name), nil
}

func (gs *State) handleDebugCargo(_ string) (string, error) {
	data := [][]string{{"Room", "Mass", "Contents"}}

	for _, roomID := range util.OrderedKeys(gs.World.Rooms) {
		room := gs.World.Rooms[roomID]
		if !room.CargoHold {
			continue
		}

		var names []string
		for _, it := range room.Cargo {
			names = append(names, it.ID)
		}
		contents := strings.Join(names, ", ")
		if contents == "" {
			contents = "(empty)"
		}

		data = append(data, []string{room.ID, fmt.Sprintf("%.1f kg", room.CargoMass()), contents})
	}

	if len(data) == 1 {
		return gotext.Get("There are no cargo holds on this ship."), nil
	}

	tableOpts := rosed.Options{
		TableHeaders:             true,
		NoTrailingLineSeparators: true,
	}

	output := rosed.Edit("").
		InsertTableOpts(0, data, gs.tune.OutputWidth, tableOpts).
		String()

	return output, nil
}

func (gs *State) handleDebugRoom(_ string) (string, error) {
	room := gs.CurrentRoom

	info := [][2]string{
		{"ID", room.ID},
		{"Name", room.Name},
		{"Volume", fmt.Sprintf("%.2f m3", room.Dimensions.Volume())},
		{"Background", room.Background},
		{"Objects", fmt.Sprintf("%d", len(room.Objects))},
	}

	for _, ex := range room.Exits {
		desc := "-> " + ex.Target
		if ex.Secured() {
			door := gs.World.Doors[ex.DoorID]
			state := "unlocked"
			if door.Locked {
				state = "locked"
			}
			desc += fmt.Sprintf(" via %s (%s, %s)", door.ID, state, door.Security)
			if panel := door.PanelFor(room.ID); panel != nil {
				panelState := "ok"
				if panel.Broken {
					panelState = fmt.Sprintf("damaged %.0f%%", panel.RepairProgress*100)
				}
				desc += fmt.Sprintf(" panel %s %s", panel.ID, panelState)
			}
		}
		info = append(info, [2]string{"Exit " + ex.Key, desc})
	}

	info = append(info, [2]string{"Pending", gs.Pending().String()})

	tableOpts := rosed.Options{ParagraphSeparator: "\n", NoTrailingLineSeparators: true}
	output := rosed.Edit("Room info for "+room.ID+"\n\n").
		InsertDefinitionsTableOpts(rosed.End, info, gs.tune.OutputWidth, tableOpts).
		String()

	return output, nil
}
