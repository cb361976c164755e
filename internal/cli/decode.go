package cli

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mlowell/giiker_trigger/internal/protocol"
)

var decodeCmd = &cobra.Command{
	Use:   "decode <hex-payload>",
	Short: "Decode a captured state notification",
	Long: `Decode a hex-encoded cube state notification, decrypting it first if the
rotating-key marker is set. Spaces and colons in the input are ignored.

Example:
  giikertrigger decode "12 34 56 78 33 33 33 33 12 34 56 78 9a bc 00 00 41 00 00 00"`,
	Args: cobra.ExactArgs(1),
	RunE: runDecode,
}

func init() {
	rootCmd.AddCommand(decodeCmd)
}

func runDecode(cmd *cobra.Command, args []string) error {
	clean := strings.NewReplacer(" ", "", ":", "", "\n", "").Replace(args[0])
	payload, err := hex.DecodeString(clean)
	if err != nil {
		return fmt.Errorf("invalid hex payload: %w", err)
	}

	encrypted := protocol.IsEncrypted(payload)

	st, err := protocol.DecodeState(payload)
	if err != nil {
		return err
	}

	fmt.Printf("Encrypted:  %v\n", encrypted)
	fmt.Printf("Body:       % X\n", st.Body)
	fmt.Printf("Last move:  %s\n", st.LastMove.Notation())
	fmt.Printf("Solved:     %v\n", st.Solved())

	return nil
}
