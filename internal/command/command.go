// Package command defines game command data types and resolves free-text
// player input into a verb and its argument string.
package command

// Verb is the canonical name of a command. Every phrase a player can type to
// invoke a command maps onto exactly one Verb.
type Verb string

const (
	Quit        Verb = "QUIT"
	Help        Verb = "HELP"
	Go          Verb = "GO"
	Look        Verb = "LOOK"
	Inventory   Verb = "INVENTORY"
	Take        Verb = "TAKE"
	Drop        Verb = "DROP"
	Examine     Verb = "EXAMINE"
	Store       Verb = "STORE"
	Retrieve    Verb = "RETRIEVE"
	Open        Verb = "OPEN"
	Close       Verb = "CLOSE"
	LookIn      Verb = "LOOK IN"
	TakeFrom    Verb = "TAKE FROM"
	PutIn       Verb = "PUT IN"
	Lock        Verb = "LOCK"
	Unlock      Verb = "UNLOCK"
	RepairPanel Verb = "REPAIR PANEL"
	Equip       Verb = "EQUIP"
	Unequip     Verb = "UNEQUIP"
	Time        Verb = "TIME"
	DebugCargo  Verb = "DEBUG CARGO"
	DebugRoom   Verb = "DEBUG ROOM"
)

// Command is a resolved line of player input.
type Command struct {
	// Verb is the canonical verb that was matched.
	Verb Verb

	// Phrase is the text that matched the verb, for instance "pick up" for a
	// Take command typed as "pick up wrench". It is empty for commands that
	// were produced by preposition rewriting.
	Phrase string

	// Args is everything after the verb phrase, normalized to lower case and
	// single spaces. For TakeFrom and PutIn commands it has the form
	// "<item> from <container>" and "<item> in <container>" respectively.
	Args string

	// Input is the normalized line the command was resolved from.
	Input string
}
