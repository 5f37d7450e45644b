package command

import (
	"errors"
	"strings"

	"github.com/dekarrin/darkstar/internal/dserrors"
	"github.com/leonelquinteros/gotext"
)

// ErrUnknownVerb is wrapped by the error returned from Parse when no verb in
// the table matches the input.
var ErrUnknownVerb = errors.New("no verb matches input")

// Table maps typed phrases to the verbs they invoke. Phrases may be more than
// one word long; lookups always prefer the longest phrase that matches.
//
// Table should not be used directly; create one with [NewTable] or
// [DefaultTable].
type Table struct {
	phrases map[string]Verb
}

// NewTable returns an empty Table.
func NewTable() *Table {
	return &Table{phrases: make(map[string]Verb)}
}

// DefaultTable returns a Table holding the standard phrases for every verb.
func DefaultTable() *Table {
	t := NewTable()

	t.Add(Quit, "quit", "exit", "bye")
	t.Add(Help, "help", "?")
	t.Add(Go, "go", "enter", "move", "walk")
	t.Add(Look, "look", "l")
	t.Add(Inventory, "inventory", "inven", "i")
	t.Add(Take, "take", "pick up", "get", "grab")
	t.Add(Drop, "drop", "put down")
	t.Add(Examine, "examine", "x", "inspect")
	t.Add(Store, "store")
	t.Add(Retrieve, "retrieve")
	t.Add(Open, "open")
	t.Add(Close, "close", "shut")
	t.Add(LookIn, "look in", "look inside", "search")
	t.Add(TakeFrom, "take from")
	t.Add(PutIn, "put in")
	t.Add(Lock, "lock")
	t.Add(Unlock, "unlock")
	t.Add(RepairPanel,
		"repair door panel",
		"repair door access panel",
		"repair access panel",
		"repair panel",
		"fix door panel",
		"fix panel",
	)
	t.Add(Equip, "wear", "put on", "equip")
	t.Add(Unequip, "remove", "take off", "unequip")
	t.Add(Time, "time", "clock")
	t.Add(DebugCargo, "debug cargo")
	t.Add(DebugRoom, "debug room")

	return t
}

// Add binds each of the given phrases to v. Phrases are normalized to lower
// case with single spaces between words. Adding a phrase that is already bound
// rebinds it.
func (t *Table) Add(v Verb, phrases ...string) {
	for _, p := range phrases {
		p = normalize(p)
		if p == "" {
			continue
		}
		t.phrases[p] = v
	}
}

// Lookup returns the verb bound to exactly the given phrase.
func (t *Table) Lookup(phrase string) (Verb, bool) {
	v, ok := t.phrases[normalize(phrase)]
	return v, ok
}

// Phrases returns every phrase bound to v.
func (t *Table) Phrases(v Verb) []string {
	var found []string
	for p, pv := range t.phrases {
		if pv == v {
			found = append(found, p)
		}
	}
	return found
}

// Parse resolves a line of input into a Command.
//
// The line is trimmed and lower-cased first; if nothing is left, the zero
// Command and a nil error are returned. Lines of the form "take X from Y" and
// "put X in Y" are rewritten into TakeFrom and PutIn commands whose Args are
// "X from Y" and "X in Y". Otherwise the words of the line are matched against
// the table from the full word count down to a single word, and the first
// (and therefore longest) phrase found wins. Words after the phrase become the
// Args.
//
// If no phrase matches, the returned error wraps ErrUnknownVerb and has a game
// message that echoes the input.
func (t *Table) Parse(line string) (Command, error) {
	line = normalize(line)
	if line == "" {
		return Command{}, nil
	}

	if cmd, ok := rewritePreposition(line); ok {
		return cmd, nil
	}

	words := strings.Fields(line)
	for k := len(words); k >= 1; k-- {
		phrase := strings.Join(words[:k], " ")
		if v, ok := t.phrases[phrase]; ok {
			return Command{
				Verb:   v,
				Phrase: phrase,
				Args:   strings.Join(words[k:], " "),
				Input:  line,
			}, nil
		}
	}

	msg := gotext.Get("I don't understand '%s'. Try 'help' for available commands.", line)
	return Command{Input: line}, dserrors.Wrap(ErrUnknownVerb, msg)
}

func rewritePreposition(line string) (Command, bool) {
	if strings.HasPrefix(line, "take ") && strings.Contains(line, " from ") {
		return Command{
			Verb:  TakeFrom,
			Args:  strings.TrimPrefix(line, "take "),
			Input: line,
		}, true
	}
	if strings.HasPrefix(line, "put ") && strings.Contains(line, " in ") {
		return Command{
			Verb:  PutIn,
			Args:  strings.TrimPrefix(line, "put "),
			Input: line,
		}, true
	}
	return Command{}, false
}

func normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// SplitPrepositional splits the Args of a TakeFrom or PutIn command around
// the given preposition ("from" or "in"). The split happens at the last
// occurrence so that item names may themselves contain the preposition. Either
// returned part may be empty if the player left it out.
func SplitPrepositional(args, prep string) (item, container string) {
	padded := " " + args + " "
	sep := " " + prep + " "

	idx := strings.LastIndex(padded, sep)
	if idx < 0 {
		return strings.TrimSpace(args), ""
	}

	item = strings.TrimSpace(padded[:idx])
	container = strings.TrimSpace(padded[idx+len(sep):])
	return item, container
}
