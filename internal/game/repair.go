package game

import (
	"strings"

	"github.com/leonelquinteros/gotext"
)

type brokenPanel struct {
	panel *SecurityPanel
	door  *Door
	exit  *Exit
	label string
}

// brokenPanels returns every damaged panel on the current room's side of its
// doors, in exit order.
func (gs *State) brokenPanels() []brokenPanel {
	room := gs.CurrentRoom

	var broken []brokenPanel
	for _, ex := range room.SecuredExits() {
		door := gs.World.Doors[ex.DoorID]
		panel := door.PanelFor(room.ID)
		if panel == nil || !panel.Broken {
			continue
		}
		broken = append(broken, brokenPanel{
			panel: panel,
			door:  door,
			exit:  ex,
			label: gs.exitLabel(room, ex),
		})
	}
	return broken
}

func (gs *State) handleRepairPanel(args string) (string, error) {
	broken := gs.brokenPanels()
	if len(broken) == 0 {
		return gotext.Get("There are no damaged door access panels in this room."), nil
	}

	target := trimDestination(args)
	if target == "" {
		if len(broken) == 1 {
			return gs.repair(broken[0]), nil
		}
		labels := make([]string, len(broken))
		for i := range broken {
			labels[i] = broken[i].label
		}
		return gotext.Get("Which door access panel do you want to repair? (%s)", strings.Join(labels, ", ")), nil
	}

	ex := gs.CurrentRoom.FindExit(target)
	if ex == nil && strings.HasSuffix(target, " door") {
		ex = gs.CurrentRoom.FindExit(strings.TrimSuffix(target, " door"))
	}
	if ex != nil {
		for _, bp := range broken {
			if bp.exit == ex {
				return gs.repair(bp), nil
			}
		}
	}
	return gotext.Get("No damaged door access panel to '%s'.", strings.TrimSpace(args)), nil
}

// repair fixes the panel at once. The confirmation is shown after the repair
// delay; the panel image is only swapped in if the player is still in the
// room by then.
func (gs *State) repair(bp brokenPanel) string {
	room := gs.CurrentRoom

	gs.present.ShowImage(bp.door.Images.PanelDamaged)
	gs.present.ShowText(gotext.Get("Repairing door access panel..."))

	bp.panel.Repair(1)
	gs.Clock.Advance(gs.tune.RepairMinutes)
	gs.logFor(bp.door, "repair").WithField("panel", bp.panel.ID).Info("panel repaired")

	gs.sched.After(gs.tune.RepairDelay, func() {
		if gs.CurrentRoom == room {
			gs.present.ShowImage(bp.door.Images.Panel)
		}
		gs.present.ShowText(gotext.Get("You repair the door access panel to %s. It is now operational.", bp.label))
	})

	return ""
}
