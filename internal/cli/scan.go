package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"tinygo.org/x/bluetooth"
)

var scanTimeout time.Duration

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "List nearby BLE advertisements and mark the target cube",
	RunE:  runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)
	scanCmd.Flags().DurationVarP(&scanTimeout, "timeout", "t", 10*time.Second, "How long to scan")
}

func runScan(cmd *cobra.Command, args []string) error {
	adapter := bluetooth.DefaultAdapter
	if err := adapter.Enable(); err != nil {
		return fmt.Errorf("failed to enable BLE adapter: %w", err)
	}

	fmt.Printf("Scanning for %s (target %s)...\n\n", scanTimeout, address)

	seen := make(map[string]bool)
	done := make(chan struct{})

	go func() {
		adapter.Scan(func(adapter *bluetooth.Adapter, result bluetooth.ScanResult) {
			addr := result.Address.String()
			if seen[addr] {
				return
			}
			seen[addr] = true

			marker := ""
			if strings.EqualFold(addr, address) {
				marker = "  <- target"
			}
			name := result.LocalName()
			if name == "" {
				name = "(no name)"
			}
			fmt.Printf("%-20s %-24s %4d dBm%s\n", addr, name, result.RSSI, marker)
		})
		close(done)
	}()

	time.Sleep(scanTimeout)
	adapter.StopScan()
	<-done

	fmt.Printf("\n%d devices seen\n", len(seen))
	return nil
}
