/*
Dsi starts an interactive Dark Star engine session.

It reads in a world file and starts the game in the designated starting room.
The interpreter then prints what is happening in the game to stdout and reads
player input from stdin until the "QUIT" command is input or input ends.

Usage:

	dsi [flags]

The flags are:

	-v, --version
		Give the current version of Dark Star and then exit.

	-w, --world FILE
		Use the provided DSW data or manifest file for the world. If not
		given, the value of environment variable DARKSTAR_WORLD is used, and
		if that is not set, "resources/world/ship.dsw".

	--tuning FILE
		Read delays, carry limits and output width from the given YAML tuning
		file. If not given, the value of environment variable DARKSTAR_TUNING
		is used, and if that is not set, the built-in defaults.

	-d, --direct
		Force reading directly from the console as opposed to using GNU
		readline based routines for reading command input even if launched in
		a tty with stdin and stdout.

	--images
		Name the image the game would show whenever it shows one.

	--log-level LEVEL
		Write diagnostics at LEVEL and above to stderr. Defaults to the value
		of DARKSTAR_LOG_LEVEL, or "warning".

	--log-format FORMAT
		Either "text" or "json". Defaults to the value of DARKSTAR_LOG_FORMAT,
		or "text".

	--lang LANG, --locale-dir DIR
		Translate player-facing text using the "darkstar" gettext domain of
		LANG found under DIR.

Once a session has started, the player input is parsed for Dark Star commands.
For an explanation of the commands, type "HELP" once in a session.
*/
package main

import (
	"fmt"
	"os"

	"github.com/dekarrin/darkstar"
	"github.com/dekarrin/darkstar/internal/logging"
	"github.com/dekarrin/darkstar/internal/version"
	"github.com/leonelquinteros/gotext"
	"github.com/spf13/pflag"
)

const (
	// ExitSuccess indicates a successful program execution.
	ExitSuccess = iota

	// ExitGameError indicates an unsuccessful program execution due to a
	// problem during the game.
	ExitGameError

	// ExitInitError indicates an unsuccessful program execution due to an issue
	// initializing the engine.
	ExitInitError
)

const (
	EnvWorld  = "DARKSTAR_WORLD"
	EnvTuning = "DARKSTAR_TUNING"

	defaultWorldFile = "resources/world/ship.dsw"
	gettextDomain    = "darkstar"
)

var (
	returnCode int = ExitSuccess

	flagVersion   = pflag.BoolP("version", "v", false, "Give the current version of Dark Star and then exit.")
	flagWorld     = pflag.StringP("world", "w", defaultWorldFile, "The DSW world data or manifest file that defines the world.")
	flagTuning    = pflag.String("tuning", "", "A YAML file of delays, carry limits and output width.")
	flagDirect    = pflag.BoolP("direct", "d", false, "Force reading directly from stdin instead of going through GNU readline where possible.")
	flagImages    = pflag.Bool("images", false, "Name each image the game shows.")
	flagLogLevel  = pflag.String("log-level", "", "Minimum level of diagnostics written to stderr.")
	flagLogFormat = pflag.String("log-format", "", "Diagnostic format, 'text' or 'json'.")
	flagLang      = pflag.String("lang", "", "Language of player-facing text.")
	flagLocaleDir = pflag.String("locale-dir", "locales", "Directory holding gettext translations.")
)

func main() {
	defer func() {
		if panicErr := recover(); panicErr != nil {
			// we are panicking, make sure we dont lose the panic just because
			// we checked
			panic(panicErr)
		} else {
			os.Exit(returnCode)
		}
	}()

	pflag.Parse()

	if *flagVersion {
		fmt.Printf("%s\n", version.Current)
		return
	}

	if len(pflag.Args()) > 0 {
		fmt.Fprintf(os.Stderr, "ERROR: too many arguments\nDo -h for help.\n")
		returnCode = ExitInitError
		return
	}

	worldFile := os.Getenv(EnvWorld)
	if pflag.Lookup("world").Changed || worldFile == "" {
		worldFile = *flagWorld
	}
	tuningFile := os.Getenv(EnvTuning)
	if pflag.Lookup("tuning").Changed {
		tuningFile = *flagTuning
	}

	logLevel := *flagLogLevel
	if logLevel == "" && os.Getenv(logging.EnvLevel) == "" {
		// the console is shared with the game, so keep it quiet by default
		logLevel = "warning"
	}
	log, err := logging.Setup(logLevel, *flagLogFormat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitInitError
		return
	}

	if *flagLang != "" {
		gotext.Configure(*flagLocaleDir, *flagLang, gettextDomain)
	}

	gameEng, initErr := darkstar.New(os.Stdin, os.Stdout, darkstar.Options{
		WorldFile:   worldFile,
		TuningFile:  tuningFile,
		ForceDirect: *flagDirect,
		ShowImages:  *flagImages,
		Log:         log,
	})
	if initErr != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", initErr.Error())
		returnCode = ExitInitError
		return
	}
	defer gameEng.Close()

	if err := gameEng.RunUntilQuit(); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitGameError
		return
	}
}
