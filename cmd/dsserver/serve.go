package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/dekarrin/darkstar/internal/logging"
	"github.com/dekarrin/darkstar/internal/version"
	"github.com/dekarrin/darkstar/server"
	"github.com/spf13/cobra"
)

const (
	EnvListen = "DARKSTAR_LISTEN"
	EnvWorld  = "DARKSTAR_WORLD"
	EnvTuning = "DARKSTAR_TUNING"

	defaultWorldFile = "resources/world/ship.dsw"
)

var (
	listenAddr string
	worldFile  string
	tuningFile string
	logLevel   string
	logFormat  string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the game server",
	Long:  `Load and check the world, then serve games under /api/v1 until interrupted.`,
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the server version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "%s (Dark Star v%s)\n", version.ServerCurrent, version.Current)
	},
}

func init() {
	serveCmd.Flags().StringVarP(&listenAddr, "listen", "l", "", "Listen on the given address.")
	serveCmd.Flags().StringVarP(&worldFile, "world", "w", defaultWorldFile, "The DSW world data or manifest file.")
	serveCmd.Flags().StringVar(&tuningFile, "tuning", "", "A YAML tuning file shared by all sessions.")
	serveCmd.Flags().StringVar(&logLevel, "log-level", "", "Minimum level of diagnostics.")
	serveCmd.Flags().StringVar(&logFormat, "log-format", "", "Diagnostic format, 'text' or 'json'.")
}

// fromEnv returns the value of the named flag, unless it was not set on the
// command line and env is non-empty.
func fromEnv(cmd *cobra.Command, flag, env, val string) string {
	if cmd.Flags().Changed(flag) {
		return val
	}
	if v := os.Getenv(env); v != "" {
		return v
	}
	return val
}

func runServe(cmd *cobra.Command, args []string) error {
	addr := fromEnv(cmd, "listen", EnvListen, listenAddr)
	if addr != "" {
		if _, _, err := net.SplitHostPort(addr); err != nil {
			return fmt.Errorf("listen address is not in ADDRESS:PORT or :PORT format: %q", addr)
		}
	}

	log, err := logging.Setup(logLevel, logFormat)
	if err != nil {
		return err
	}

	srv, err := server.New(server.Config{
		WorldFile:  fromEnv(cmd, "world", EnvWorld, worldFile),
		TuningFile: fromEnv(cmd, "tuning", EnvTuning, tuningFile),
		Log:        log,
	})
	if err != nil {
		return fmt.Errorf("could not start server: %w", err)
	}
	log.Debug("Server initialized")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Infof("Starting Dark Star server %s...", version.ServerCurrent)
	return srv.ServeForever(ctx, addr)
}
