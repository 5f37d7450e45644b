/*
Dsserver starts a Dark Star server that hosts games over HTTP.

Usage:

	dsserver serve [flags]
	dsserver version

Each client creates its own game session with POST /api/v1/sessions and plays
it by posting commands. Output that the game produces later, such as a card
check finishing, is pushed to clients connected to the session's events
websocket.

The serve flags are:

	-l, --listen ADDRESS
		Listen on the given address, in BIND_ADDRESS:PORT or :PORT format. If
		not given, the value of environment variable DARKSTAR_LISTEN is used,
		and if that is not set, localhost:8080.

	-w, --world FILE
		The DSW data or manifest file each session's world is loaded from. If
		not given, the value of DARKSTAR_WORLD is used, and if that is not
		set, "resources/world/ship.dsw".

	--tuning FILE
		YAML tuning file shared by all sessions. Defaults to the value of
		DARKSTAR_TUNING.

	--log-level LEVEL, --log-format FORMAT
		Diagnostic level and format ("text" or "json"). Default to the values
		of DARKSTAR_LOG_LEVEL and DARKSTAR_LOG_FORMAT, or "info" and "text".
*/
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "dsserver",
	Short:         "Dark Star game server",
	Long:          `Dsserver hosts independent Dark Star games over HTTP, with deferred output pushed over websockets.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}
