// Package cli implements the giikertrigger command-line interface.
package cli

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	giiker "github.com/mlowell/giiker_trigger"
)

const version = "0.1.0"

var (
	// Global flags
	address string
	dbPath  string
	verbose bool
)

// rootCmd is the base command.
var rootCmd = &cobra.Command{
	Use:   "giikertrigger",
	Short: "Giiker cube solved-state trigger",
	Long: `Giiker cube solved-state trigger - connects to a Giiker smart cube over
Bluetooth, decodes its state notifications, and pulses an output line
whenever the cube reaches the solved configuration.

A pass-through UART-style BLE service is advertised alongside, and solved
events can be logged to a local SQLite database.`,
	Version: version,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&address, "address", giiker.DefaultAddress, "Cube hardware address")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Solve log path (default: ~/.giiker_trigger/solves.db)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

// newLogger builds the logger shared by the session components.
func newLogger() *logrus.Logger {
	logger := logrus.New()
	if verbose {
		logger.SetLevel(logrus.DebugLevel)
	}
	return logger
}
