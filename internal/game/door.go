package game

import (
	"fmt"
	"math"

	"github.com/leonelquinteros/gotext"
)

// SecurityLevel is the credential tier a door requires.
type SecurityLevel int

const (
	SecurityNone SecurityLevel = iota
	SecurityKeycardLow
	SecurityKeycardHigh
	SecurityKeycardHighPIN
)

func (sl SecurityLevel) String() string {
	switch sl {
	case SecurityNone:
		return "none"
	case SecurityKeycardLow:
		return "keycard-low"
	case SecurityKeycardHigh:
		return "keycard-high"
	case SecurityKeycardHighPIN:
		return "keycard-high+pin"
	default:
		return fmt.Sprintf("SecurityLevel(%d)", int(sl))
	}
}

// RequiresPIN returns whether a PIN must be entered after the card check.
func (sl SecurityLevel) RequiresPIN() bool {
	return sl == SecurityKeycardHighPIN
}

// ValidPIN returns whether pin can be typed at a panel: one or more ASCII
// digits.
func ValidPIN(pin string) bool {
	if pin == "" {
		return false
	}
	for _, r := range pin {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// MissingImage is shown wherever an image was not given.
const MissingImage = "resources/images/image_missing.png"

// DoorImages is the set of images shown for a door.
type DoorImages struct {
	Open         string
	Locked       string
	Panel        string
	PanelDamaged string
}

// For returns the open image if locked is false and the locked image
// otherwise.
func (di DoorImages) For(locked bool) string {
	if locked {
		return di.Locked
	}
	return di.Open
}

// Door is a lockable connection between exactly two rooms. Each side has its
// own SecurityPanel.
type Door struct {
	// ID uniquely identifies the door.
	ID string

	// Rooms is the IDs of the two rooms the door connects.
	Rooms [2]string

	// Locked is whether the door is currently locked.
	Locked bool

	// Security is the credential tier needed to lock or unlock the door.
	Security SecurityLevel

	// PIN is the code that must be entered when Security requires one.
	PIN string

	// Images is what is shown while interacting with the door.
	Images DoorImages

	// LockedText is shown when the player tries to go through the door while
	// it is locked. If empty, a generic message is used.
	LockedText string

	// Panels maps each adjoining room's ID to the panel on that side.
	Panels map[string]*SecurityPanel
}

func (d *Door) String() string {
	return fmt.Sprintf("Door<%s %s<->%s locked=%t sec=%s>", d.ID, d.Rooms[0], d.Rooms[1], d.Locked, d.Security)
}

// Connects returns whether the door has a side in the given room.
func (d *Door) Connects(roomID string) bool {
	return d.Rooms[0] == roomID || d.Rooms[1] == roomID
}

// OtherRoom returns the ID of the room on the other side of the door from
// roomID. If the door does not connect roomID, "" is returned.
func (d *Door) OtherRoom(roomID string) string {
	switch roomID {
	case d.Rooms[0]:
		return d.Rooms[1]
	case d.Rooms[1]:
		return d.Rooms[0]
	default:
		return ""
	}
}

// PanelFor returns the panel on roomID's side of the door, or nil.
func (d *Door) PanelFor(roomID string) *SecurityPanel {
	return d.Panels[roomID]
}

// CardHolder is anything that can be checked for holding an item.
type CardHolder interface {
	Has(id string) bool
}

// SecurityPanel is the access control on one side of a Door.
type SecurityPanel struct {
	// ID uniquely identifies the panel.
	ID string

	// DoorID is the door the panel controls.
	DoorID string

	// Side is the ID of the room the panel is mounted in.
	Side string

	// Security mirrors the door's security level.
	Security SecurityLevel

	// Broken is whether the panel is damaged. A broken panel rejects every
	// attempt to use it.
	Broken bool

	// RepairProgress is how repaired the panel is, from 0 to 1.
	RepairProgress float64
}

func (p *SecurityPanel) String() string {
	return fmt.Sprintf("SecurityPanel<%s side=%s broken=%t repair=%.2f>", p.ID, p.Side, p.Broken, p.RepairProgress)
}

// CheckCard returns whether the credentials held by h are enough to operate
// the panel. If they are not, a message giving the reason is also returned.
func (p *SecurityPanel) CheckCard(h CardHolder) (bool, string) {
	if p.Broken {
		return false, gotext.Get("The panel on this side is damaged.")
	}

	switch p.Security {
	case SecurityNone:
		return true, ""
	case SecurityKeycardLow:
		if h.Has(ItemLowSecCard) || h.Has(ItemHighSecCard) {
			return true, ""
		}
		return false, gotext.Get("Access denied: ID card required.")
	default:
		if h.Has(ItemHighSecCard) {
			return true, ""
		}
		if h.Has(ItemLowSecCard) {
			return false, gotext.Get("Access denied: high-security clearance required.")
		}
		return false, gotext.Get("Access denied: ID card required.")
	}
}

// CheckPIN compares input against the expected PIN.
func (p *SecurityPanel) CheckPIN(expected, input string) (bool, string) {
	if p.Broken {
		return false, gotext.Get("The panel on this side is damaged.")
	}
	if input == expected {
		return true, ""
	}
	return false, gotext.Get("Incorrect PIN.")
}

// Damage breaks the panel.
func (p *SecurityPanel) Damage() {
	p.Broken = true
	p.RepairProgress = 0
}

// Repair adds amount to the panel's repair progress, clamped to [0, 1]. Once
// progress reaches 1 the panel is no longer broken. It returns whether the
// panel is now fully repaired.
func (p *SecurityPanel) Repair(amount float64) bool {
	p.RepairProgress = math.Max(0, math.Min(1, p.RepairProgress+amount))
	if p.RepairProgress >= 1 {
		p.Broken = false
	}
	return !p.Broken
}
