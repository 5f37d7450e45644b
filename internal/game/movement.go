package game

import (
	"strings"

	"github.com/leonelquinteros/gotext"
)

// only the first of these that matches is removed from a destination.
var destinationFillers = []string{"to the ", "to ", "the "}

func trimDestination(args string) string {
	dest := strings.TrimSpace(strings.ToLower(args)) + " "
	for _, f := range destinationFillers {
		if strings.HasPrefix(dest, f) {
			return strings.TrimSpace(dest[len(f):])
		}
	}
	return strings.TrimSpace(dest)
}

func (gs *State) handleGo(args string) (string, error) {
	dest := trimDestination(args)
	if dest == "" {
		return gotext.Get("Where do you want to go? Try 'go to [place]'."), nil
	}

	room := gs.CurrentRoom
	ex := room.FindExit(dest)
	if ex == nil {
		return gotext.Get("You can't go that way."), nil
	}

	if ex.Secured() {
		door := gs.World.Doors[ex.DoorID]
		if door.Locked {
			gs.present.ShowImage(door.Images.Locked)
			gs.lastDoor = door.ID
			if door.LockedText != "" {
				return door.LockedText, nil
			}
			return gotext.Get("The door to %s is locked.", gs.exitLabel(room, ex)), nil
		}
	}

	label := gs.exitLabel(room, ex)
	gs.enter(gs.World.Rooms[ex.Target])
	gs.Clock.Advance(gs.tune.TravelMinutes)

	return gotext.Get("You enter the %s.", label), nil
}

// enter moves the player into room. Any swipe still checking a card in the
// old room is abandoned.
func (gs *State) enter(room *Room) {
	if sw, ok := gs.pending.(*swipeWait); ok {
		gs.logFor(sw.door, sw.action).Debug("abandoning card swipe; player left the room")
		gs.pending = nil
	}
	gs.CurrentRoom = room
	gs.lastDoor = ""
	gs.present.ShowImage(room.Background)
	gs.log.WithField("room", room.ID).Debug("entered room")
}
