package cli

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	giiker "github.com/mlowell/giiker_trigger"
	"github.com/mlowell/giiker_trigger/internal/storage"
)

var (
	runGPIOPin  int
	runHold     time.Duration
	runUARTName string
	runNoUART   bool
	runNoLog    bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Connect to the cube and pulse the output on solve",
	Long: `Scan for the configured cube address, connect, subscribe to state
notifications and hold the output line high for the configured duration
each time the cube is solved. Reconnects automatically after link loss.

Runs until interrupted.`,
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().IntVar(&runGPIOPin, "gpio", -1, "sysfs GPIO line to pulse (default: log only)")
	runCmd.Flags().DurationVar(&runHold, "hold", giiker.DefaultHoldDuration, "How long the output stays high per solve")
	runCmd.Flags().StringVar(&runUARTName, "uart-name", giiker.DefaultUARTName, "Local name for the pass-through UART service")
	runCmd.Flags().BoolVar(&runNoUART, "no-uart", false, "Disable the pass-through UART service")
	runCmd.Flags().BoolVar(&runNoLog, "no-log", false, "Disable the SQLite solve log")
}

// sessionOptions assembles options shared by run and watch.
func sessionOptions(logger *logrus.Logger) ([]giiker.Option, error) {
	opts := []giiker.Option{
		giiker.WithAddress(address),
		giiker.WithLogger(logger),
		giiker.WithHoldDuration(runHold),
		giiker.WithUART(!runNoUART),
		giiker.WithUARTName(runUARTName),
	}

	if !runNoLog {
		path := dbPath
		if path == "" {
			var err error
			path, err = storage.DefaultDBPath()
			if err != nil {
				return nil, err
			}
		}
		opts = append(opts, giiker.WithSolveLog(path))
	}

	if runGPIOPin >= 0 {
		opts = append(opts, giiker.WithGPIOPin(runGPIOPin))
	}

	return opts, nil
}

func runRun(cmd *cobra.Command, args []string) error {
	opts, err := sessionOptions(newLogger())
	if err != nil {
		return err
	}

	session, err := giiker.New(opts...)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := session.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
