// Package darkstar contains a CLI-driven engine for reading player input and
// advancing the game state continuously until the player quits.
package darkstar

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dekarrin/darkstar/internal/dsw"
	"github.com/dekarrin/darkstar/internal/game"
	"github.com/dekarrin/darkstar/internal/input"
	"github.com/dekarrin/darkstar/internal/logging"
	"github.com/dekarrin/darkstar/internal/sched"
	"github.com/dekarrin/darkstar/internal/tuning"
	"github.com/sirupsen/logrus"
)

const prompt = "> "

// Options configures an Engine.
type Options struct {
	// WorldFile is the DSW data or manifest file the world is loaded from.
	WorldFile string

	// TuningFile is an optional YAML tuning file.
	TuningFile string

	// ForceDirect reads input straight from the input stream even when
	// readline could be used.
	ForceDirect bool

	// ShowImages names the image file whenever the game would show one.
	ShowImages bool

	// Log receives diagnostics. If nil, nothing is logged.
	Log *logrus.Logger
}

// Engine contains the things needed to run a game from an interactive shell
// attached to an input stream and an output stream.
type Engine struct {
	state       *game.State
	in          input.Reader
	out         io.Writer
	present     *consolePresenter
	loop        *sched.Loop
	log         *logrus.Logger
	forceDirect bool
	running     bool
}

// New creates a new engine ready to operate on the given input and output
// streams. The world is loaded and checked before New returns.
//
// If nil is given for the input stream, stdin is used. If nil is given for the
// output stream, stdout is used.
func New(inputStream io.Reader, outputStream io.Writer, opts Options) (*Engine, error) {
	if inputStream == nil {
		inputStream = os.Stdin
	}
	if outputStream == nil {
		outputStream = os.Stdout
	}
	log := opts.Log
	if log == nil {
		log = logging.Discard()
	}

	dsw.SetLogger(log.WithField("component", "dsw"))
	world, err := dsw.LoadResourceBundle(opts.WorldFile)
	if err != nil {
		return nil, err
	}

	tune, err := tuning.Load(opts.TuningFile)
	if err != nil {
		return nil, fmt.Errorf("loading tuning: %w", err)
	}

	eng := &Engine{
		out:         outputStream,
		loop:        sched.NewLoop(),
		log:         log,
		forceDirect: opts.ForceDirect,
	}

	useReadline := !opts.ForceDirect && inputStream == os.Stdin && outputStream == os.Stdout
	if useReadline {
		icr, err := input.NewInteractiveReader(prompt)
		if err != nil {
			return nil, fmt.Errorf("initializing interactive-mode input reader: %w", err)
		}
		eng.in = icr
		eng.out = icr.Stdout()
	} else {
		eng.in = input.NewDirectReader(inputStream)
	}

	eng.present = newConsolePresenter(eng.out, tune.OutputWidth, opts.ShowImages)

	eng.state, err = game.New(world, game.Options{
		Presenter: eng.present,
		Scheduler: eng.loop,
		Tuning:    &tune,
		Log:       log.WithField("session", "console"),
	})
	if err != nil {
		eng.loop.Stop()
		eng.in.Close()
		return nil, fmt.Errorf("initializing game engine: %w", err)
	}

	return eng, nil
}

// Close closes all resources associated with the Engine, including any
// readline-related resources created for interactive mode.
func (eng *Engine) Close() error {
	if eng.running {
		return fmt.Errorf("cannot close a running game engine")
	}

	eng.loop.Stop()
	if err := eng.in.Close(); err != nil {
		return fmt.Errorf("close input reader: %w", err)
	}

	return nil
}

// RunUntilQuit reads lines of input and applies them to the game until the
// player quits or input ends. Continuations scheduled by the game, such as a
// card check finishing, are run between lines on the same goroutine.
func (eng *Engine) RunUntilQuit() error {
	introMsg := "Welcome to Project Dark Star\n"
	if eng.forceDirect {
		introMsg += "(direct input mode)\n"
	}
	introMsg += "============================\n"
	if _, err := io.WriteString(eng.out, introMsg+"\n"); err != nil {
		return fmt.Errorf("could not write output: %w", err)
	}
	eng.present.ShowText(eng.state.Describe())

	eng.running = true
	defer func() {
		eng.running = false
	}()

	lines := input.Pump(eng.in)
	for eng.running {
		select {
		case fn := <-eng.loop.Fired():
			fn()
		case ln, ok := <-lines:
			if !ok || errors.Is(ln.Err, io.EOF) {
				eng.log.Debug("input ended")
				eng.running = false
				break
			}
			if ln.Err != nil {
				return fmt.Errorf("get user input: %w", ln.Err)
			}

			eng.present.ShowText(eng.state.Process(ln.Text))
			if eng.state.Ended() {
				eng.running = false
			}
		}
	}

	return nil
}
