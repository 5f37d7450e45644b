package game

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/dekarrin/darkstar/internal/command"
	"github.com/dekarrin/darkstar/internal/dserrors"
	"github.com/dekarrin/darkstar/internal/logging"
	"github.com/dekarrin/darkstar/internal/sched"
	"github.com/dekarrin/darkstar/internal/tuning"
	"github.com/dekarrin/rosed"
	"github.com/leonelquinteros/gotext"
	"github.com/sirupsen/logrus"
)

// Errors wrapped by the interpreter errors that world operations return.
var (
	ErrTooHeavy      = errors.New("carry limit exceeded")
	ErrContainerFull = errors.New("container capacity exceeded")
	ErrNotFound      = errors.New("no such thing")
	ErrInvalidSlot   = errors.New("invalid equipment slot")
	ErrNotHeld       = errors.New("item not held")
	ErrClosed        = errors.New("storage unit is closed")
)

// masses are compared with a small tolerance so that sums of decimal masses
// like 0.1 + 0.2 do not spuriously exceed a limit of 0.3.
const massEpsilon = 1e-9

// fail returns an interpreter error wrapping sentinel whose game message is
// the localized form of format.
func fail(sentinel error, format string, a ...interface{}) error {
	return dserrors.Wrap(sentinel, gotext.Get(format, a...))
}

func gameMessage(err error) string {
	return dserrors.GameMessage(err)
}

// commandHelp returns the help definitions with their descriptions
// translated.
func commandHelp() [][2]string {
	return [][2]string{
		{"HELP", gotext.Get("show this help")},
		{"LOOK [something]", gotext.Get("describe the room, or something in it")},
		{"GO/ENTER/MOVE", gotext.Get("go through one of the exits, e.g. 'go to the galley'")},
		{"INVENTORY/I", gotext.Get("show what you are carrying and wearing")},
		{"TAKE/PICK UP", gotext.Get("pick up an object in the room")},
		{"DROP", gotext.Get("put down something you are carrying")},
		{"EXAMINE/X", gotext.Get("look closely at something here or in your inventory")},
		{"OPEN/CLOSE", gotext.Get("open or close a storage unit")},
		{"LOOK IN", gotext.Get("see what is inside an open storage unit")},
		{"TAKE X FROM Y", gotext.Get("take something out of an open storage unit")},
		{"PUT X IN Y", gotext.Get("put something into an open storage unit")},
		{"STORE/RETRIEVE", gotext.Get("move an item into or out of a cargo hold")},
		{"LOCK/UNLOCK [door]", gotext.Get("swipe an ID card at a door access panel")},
		{"REPAIR DOOR PANEL [door]", gotext.Get("repair a damaged door access panel")},
		{"WEAR/PUT ON", gotext.Get("equip something you are carrying")},
		{"REMOVE/TAKE OFF", gotext.Get("unequip something you are wearing")},
		{"TIME", gotext.Get("show the ship time")},
		{"DEBUG CARGO", gotext.Get("list the contents of every cargo hold")},
		{"DEBUG ROOM", gotext.Get("print info on the current room")},
		{"QUIT/EXIT", gotext.Get("end the game")},
	}
}

var textFormatOptions = rosed.Options{
	PreserveParagraphs: true,
	IndentStr:          "  ",
}

//go:generate mockgen -destination=gamemock/mock_presenter.go -package=gamemock github.com/dekarrin/darkstar/internal/game Presenter

// Presenter is where the game sends output that is not part of the response
// to a command: background image changes, and text produced by continuations
// that run after a delay.
type Presenter interface {
	// ShowImage sets the displayed background image.
	ShowImage(path string)

	// ShowText sets the displayed response text.
	ShowText(text string)
}

type nopPresenter struct{}

func (nopPresenter) ShowImage(string) {}
func (nopPresenter) ShowText(string)  {}

// Options is the collaborators and settings used by a State. Every field is
// optional.
type Options struct {
	// Presenter receives images and out-of-band text. Defaults to one that
	// discards everything.
	Presenter Presenter

	// Scheduler runs delayed continuations. Defaults to a sched.Manual that
	// nothing advances, which means that delays never finish.
	Scheduler sched.Scheduler

	// Tuning holds delays, carry limits, and output width. Defaults to
	// tuning.Defaults().
	Tuning *tuning.Config

	// Log receives diagnostic output. Defaults to a logger that discards
	// everything.
	Log *logrus.Entry

	// Rand picks flavor text. Defaults to one seeded from Tuning.Seed, or the
	// current time if that is 0.
	Rand *rand.Rand

	// Verbs is the table used to parse input. Defaults to
	// command.DefaultTable().
	Verbs *command.Table
}

// PendingKind is the kind of multi-turn interaction in progress.
type PendingKind int

const (
	PendingNone PendingKind = iota
	PendingSwipe
	PendingPIN
)

func (pk PendingKind) String() string {
	switch pk {
	case PendingSwipe:
		return "swipe"
	case PendingPIN:
		return "pin"
	default:
		return "none"
	}
}

// pendingInteraction is the in-flight multi-turn flow. A State has at most one.
type pendingInteraction interface {
	kind() PendingKind
}

// State is the game's entire state.
type State struct {
	// World is all rooms, doors, and item templates.
	World *World

	// Player is the player character.
	Player *Player

	// CurrentRoom is the room that the player is in.
	CurrentRoom *Room

	// Clock is the ship time.
	Clock Chronometer

	verbs   *command.Table
	present Presenter
	sched   sched.Scheduler
	tune    tuning.Config
	log     *logrus.Entry
	rng     *rand.Rand

	pending  pendingInteraction
	lastDoor string
	ended    bool
}

// New creates a new State for the given world. The world is checked for
// consistency first; the player is placed in the start room holding the
// world's starting items.
func New(world *World, opts Options) (*State, error) {
	if world == nil {
		return nil, fmt.Errorf("world must not be nil")
	}
	if err := world.Validate(); err != nil {
		return nil, err
	}

	tune := tuning.Defaults()
	if opts.Tuning != nil {
		tune = *opts.Tuning
	}
	if err := tune.Validate(); err != nil {
		return nil, fmt.Errorf("tuning: %w", err)
	}

	gs := &State{
		World:       world,
		CurrentRoom: world.Rooms[world.Start],
		verbs:       opts.Verbs,
		present:     opts.Presenter,
		sched:       opts.Scheduler,
		tune:        tune,
		log:         opts.Log,
		rng:         opts.Rand,
	}

	if gs.verbs == nil {
		gs.verbs = command.DefaultTable()
	}
	if gs.present == nil {
		gs.present = nopPresenter{}
	}
	if gs.sched == nil {
		gs.sched = sched.NewManual()
	}
	if gs.log == nil {
		gs.log = logrus.NewEntry(logging.Discard())
	}
	if gs.rng == nil {
		seed := tune.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		gs.rng = rand.New(rand.NewSource(seed))
	}

	gs.Player = NewPlayer(world.PlayerName, tune.MaxCarryMass)
	for _, it := range world.StartingItems {
		if err := gs.Player.Add(it); err != nil {
			return nil, fmt.Errorf("starting item %q: %w", it.ID, err)
		}
	}

	return gs, nil
}

type handlerFunc func(gs *State, args string) (string, error)

var handlers = map[command.Verb]handlerFunc{
	command.Quit:        (*State).handleQuit,
	command.Help:        (*State).handleHelp,
	command.Go:          (*State).handleGo,
	command.Look:        (*State).handleLook,
	command.Inventory:   (*State).handleInventory,
	command.Take:        (*State).handleTake,
	command.Drop:        (*State).handleDrop,
	command.Examine:     (*State).handleExamine,
	command.Store:       (*State).handleStore,
	command.Retrieve:    (*State).handleRetrieve,
	command.Open:        (*State).handleOpen,
	command.Close:       (*State).handleClose,
	command.LookIn:      (*State).handleLookIn,
	command.TakeFrom:    (*State).handleTakeFrom,
	command.PutIn:       (*State).handlePutIn,
	command.Lock:        (*State).handleLock,
	command.Unlock:      (*State).handleUnlock,
	command.RepairPanel: (*State).handleRepairPanel,
	command.Equip:       (*State).handleEquip,
	command.Unequip:     (*State).handleUnequip,
	command.Time:        (*State).handleTime,
	command.DebugCargo:  (*State).handleDebugCargo,
	command.DebugRoom:   (*State).handleDebugRoom,
}

// Process interprets one line of player input and returns the response to
// show. Any change to the world is made before Process returns, except for
// work that a command defers with the scheduler.
//
// While a PIN challenge is pending, the whole line is given to it as the PIN
// and Process returns "". The challenge reports its outcome through the
// Presenter.
//
// Process never fails; problems are described in the returned text.
func (gs *State) Process(line string) string {
	line = strings.ToLower(strings.TrimSpace(line))
	if line == "" {
		return ""
	}

	if pc, ok := gs.pending.(*pinChallenge); ok {
		pc.cont(line)
		return ""
	}

	cmd, err := gs.verbs.Parse(line)
	if err != nil {
		gs.log.WithError(err).Debug("could not parse input")
		return gameMessage(err)
	}

	handle, ok := handlers[cmd.Verb]
	if !ok {
		return gotext.Get("I don't understand '%s'. Try 'help' for available commands.", line)
	}

	output, err := handle(gs, cmd.Args)
	if err != nil {
		gs.log.WithError(err).WithField("verb", string(cmd.Verb)).Debug("command rejected")
		return gameMessage(err)
	}
	return output
}

// Pending returns the kind of multi-turn interaction currently in progress.
func (gs *State) Pending() PendingKind {
	if gs.pending == nil {
		return PendingNone
	}
	return gs.pending.kind()
}

// Ended returns whether the player has quit.
func (gs *State) Ended() bool {
	return gs.ended
}

// Describe returns the description of the current room: its name, its
// description lines, what can be seen in it, and its exits. Markup in the
// description is left in place.
func (gs *State) Describe() string {
	room := gs.CurrentRoom

	var sb strings.Builder
	sb.WriteString(room.Name)
	sb.WriteString("\n\n")
	sb.WriteString(strings.Join(room.Description, "\n"))

	if len(room.Objects) > 0 {
		sb.WriteString("\n\n")
		sb.WriteString(gotext.Get("You see:"))
		for _, obj := range room.Objects {
			sb.WriteString("\n  %" + obj.GetName() + "%")
		}
	}

	if len(room.Exits) > 0 {
		var exits []string
		for _, ex := range room.Exits {
			exits = append(exits, "*"+gs.exitLabel(room, ex)+"*")
		}
		sb.WriteString("\n\n")
		sb.WriteString(gotext.Get("Exits: %s", strings.Join(exits, ", ")))
	}

	return sb.String()
}

// exitLabel gives the player-facing name of where ex leads.
func (gs *State) exitLabel(room *Room, ex *Exit) string {
	if ex.Label != "" {
		return ex.Label
	}
	if target, ok := gs.World.Rooms[ex.Target]; ok {
		return target.Name
	}
	return ex.Key
}

func (gs *State) logFor(door *Door, action string) *logrus.Entry {
	return gs.log.WithFields(logrus.Fields{
		"room":   gs.CurrentRoom.ID,
		"door":   door.ID,
		"action": action,
	})
}

func (gs *State) pick(options []string) string {
	return options[gs.rng.Intn(len(options))]
}

func (gs *State) handleQuit(_ string) (string, error) {
	gs.ended = true
	return gotext.Get("Thanks for playing Project Dark Star. Goodbye!"), nil
}

func (gs *State) handleHelp(_ string) (string, error) {
	defs := commandHelp()

	output := rosed.Edit("").WithOptions(
		textFormatOptions.
			WithParagraphSeparator("\n").
			WithNoTrailingLineSeparators(true)).
		Insert(rosed.End, gotext.Get("Here are the commands you can use:")+"\n").
		InsertDefinitionsTable(rosed.End, defs, gs.tune.OutputWidth).String()

	return output, nil
}

func (gs *State) handleTime(_ string) (string, error) {
	return gotext.Get("Ship time: %s", gs.Clock.String()), nil
}
