package game

// File access.go holds the door lock/unlock flow: card swipe, the delayed card
// check, and the PIN challenge that high-security doors follow it with.

import (
	"strings"

	"github.com/leonelquinteros/gotext"
)

const (
	actionLock   = "lock"
	actionUnlock = "unlock"
)

// maxPINAttempts is how many wrong PINs are accepted before lockout.
const maxPINAttempts = 3

// swipeWait is a card swipe whose check has not yet finished.
type swipeWait struct {
	door   *Door
	panel  *SecurityPanel
	action string
	label  string
}

func (sw *swipeWait) kind() PendingKind {
	return PendingSwipe
}

// pinChallenge is an armed PIN prompt. While it is pending every line of input
// goes to cont.
type pinChallenge struct {
	door        *Door
	panel       *SecurityPanel
	action      string
	exitLabel   string
	attempts    int
	maxAttempts int
	cont        func(input string)
}

func (pc *pinChallenge) kind() PendingKind {
	return PendingPIN
}

func (gs *State) handleLock(args string) (string, error) {
	return gs.doorAction(actionLock, args)
}

func (gs *State) handleUnlock(args string) (string, error) {
	return gs.doorAction(actionUnlock, args)
}

// resolveDoor finds the secured exit that args names. If there is no secured
// exit to use, the returned string says why.
func (gs *State) resolveDoor(action, args string) (*Exit, string) {
	room := gs.CurrentRoom
	target := trimDestination(args)

	if target == "" {
		if gs.lastDoor != "" {
			if ex := room.ExitForDoor(gs.lastDoor); ex != nil {
				return ex, ""
			}
		}
		secured := room.SecuredExits()
		if len(secured) == 1 {
			return secured[0], ""
		}
		return nil, gotext.Get("Which door?")
	}

	ex := room.FindExit(target)
	if ex == nil && strings.HasSuffix(target, " door") {
		ex = room.FindExit(strings.TrimSuffix(target, " door"))
	}
	if ex == nil {
		return nil, gotext.Get("There is no such exit.")
	}

	if !ex.Secured() {
		otherName := ex.Target
		if other, ok := gs.World.Rooms[ex.Target]; ok {
			otherName = other.Name
		}
		if action == actionUnlock {
			return nil, gotext.Get("There is an open archway between %s and %s, there is nothing to unlock.", room.Name, otherName)
		}
		return nil, gotext.Get("There is an open archway between %s and %s, it has no lock.", room.Name, otherName)
	}

	return ex, ""
}

func (gs *State) doorAction(action, args string) (string, error) {
	if _, ok := gs.pending.(*swipeWait); ok {
		return gotext.Get("The door access panel is still checking a card. Wait for it to finish."), nil
	}

	room := gs.CurrentRoom
	ex, msg := gs.resolveDoor(action, args)
	if ex == nil {
		return msg, nil
	}
	door := gs.World.Doors[ex.DoorID]
	label := gs.exitLabel(room, ex)

	if door.Locked == (action == actionLock) {
		return gotext.Get("That door is already %sed.", action), nil
	}

	panel := door.PanelFor(room.ID)
	if panel == nil {
		return gotext.Get("No access panel on this side."), nil
	}

	if panel.Broken {
		gs.present.ShowImage(door.Images.PanelDamaged)
		return gotext.Get("The door access panel on this side is damaged and currently unusable. Repairing it may be possible."), nil
	}

	if !gs.Player.Has(ItemLowSecCard) && !gs.Player.Has(ItemHighSecCard) {
		return gotext.Get("You need an ID card to swipe the door access panel."), nil
	}

	gs.present.ShowImage(door.Images.Panel)

	sw := &swipeWait{door: door, panel: panel, action: action, label: label}
	gs.pending = sw
	gs.sched.After(gs.tune.SwipeDelay, func() {
		gs.finishSwipe(sw)
	})
	gs.logFor(door, action).Debug("card swipe started")

	return gotext.Get("Swiping door access panel, checking card ID..."), nil
}

// finishSwipe runs once the swipe delay is over. A swipe that is no longer the
// pending interaction is dropped.
func (gs *State) finishSwipe(sw *swipeWait) {
	log := gs.logFor(sw.door, sw.action)
	if gs.pending != sw {
		log.Debug("dropping stale card swipe")
		return
	}
	gs.pending = nil
	gs.lastDoor = sw.door.ID

	ok, msg := sw.panel.CheckCard(gs.Player)
	if !ok {
		gs.present.ShowImage(sw.door.Images.For(sw.action == actionUnlock))
		gs.present.ShowText(msg)
		log.WithField("reason", msg).Info("card rejected")
		return
	}

	if sw.panel.Security.RequiresPIN() {
		gs.startPINChallenge(sw.door, sw.panel, sw.action, sw.label)
		return
	}

	sw.door.Locked = sw.action == actionLock
	gs.present.ShowImage(sw.door.Images.For(sw.door.Locked))
	if sw.door.Locked {
		gs.present.ShowText(gotext.Get("ID accepted, door locked. Access to %s is now closed.", sw.label))
	} else {
		gs.present.ShowText(gotext.Get("ID accepted, door unlocked. Access to %s is now open.", sw.label))
	}
	log.WithField("locked", sw.door.Locked).Info("door state changed")
}

func (gs *State) startPINChallenge(door *Door, panel *SecurityPanel, action, label string) {
	pc := &pinChallenge{
		door:        door,
		panel:       panel,
		action:      action,
		exitLabel:   label,
		maxAttempts: maxPINAttempts,
	}
	pc.cont = func(input string) {
		gs.enterPIN(pc, input)
	}
	gs.pending = pc

	gs.present.ShowText(gotext.Get("Enter PIN to %s the door to %s (%d/%d attempts)", action, label, pc.attempts, pc.maxAttempts))
	gs.logFor(door, action).Debug("PIN challenge armed")
}

func (gs *State) enterPIN(pc *pinChallenge, input string) {
	log := gs.logFor(pc.door, pc.action)
	pc.attempts++

	ok, msg := pc.panel.CheckPIN(pc.door.PIN, strings.TrimSpace(input))
	if ok {
		gs.pending = nil
		pc.door.Locked = pc.action == actionLock
		gs.present.ShowImage(pc.door.Images.For(pc.door.Locked))
		if pc.door.Locked {
			gs.present.ShowText(gotext.Get("PIN accepted. Door locked. Access to %s is now closed.", pc.exitLabel))
		} else {
			gs.present.ShowText(gotext.Get("PIN accepted. Door unlocked. Access to %s is now open.", pc.exitLabel))
		}
		log.WithField("attempts", pc.attempts).Info("PIN accepted")
		return
	}

	left := pc.maxAttempts - pc.attempts
	if left > 0 {
		gs.present.ShowText(gotext.Get("%s Attempts left: %d/%d", msg, left, pc.maxAttempts))
		log.WithField("attempts", pc.attempts).Debug("wrong PIN")
		return
	}

	gs.pending = nil
	gs.present.ShowImage(pc.door.Images.For(pc.door.Locked))
	text := gotext.Get("Access denied after %d incorrect PIN attempts. Process terminated.", pc.maxAttempts)

	invalidated := gs.invalidateHighSecCard()
	if invalidated {
		text += "\n" + gotext.Get("ID card invalidated.") + "\n\n" + gs.Describe()
	}
	gs.present.ShowText(text)
	log.WithField("card_invalidated", invalidated).Warn("PIN lockout")
}

// invalidateHighSecCard replaces the player's high-security card with a
// damaged one in the same inventory position. It returns false if the player
// has no high-security card.
func (gs *State) invalidateHighSecCard() bool {
	for i, it := range gs.Player.Inventory {
		if it.ID != ItemHighSecCard {
			continue
		}
		damaged, err := gs.World.NewItem(ItemHighSecCardDamaged)
		if err != nil {
			gs.log.WithError(err).Error("cannot create damaged card")
			gs.Player.Remove(it.ID)
			return true
		}
		damaged.Mass = it.Mass
		gs.Player.Inventory[i] = damaged
		return true
	}
	return false
}
