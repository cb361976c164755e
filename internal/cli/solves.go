package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mlowell/giiker_trigger/internal/storage"
)

var solvesLimit int

var solvesCmd = &cobra.Command{
	Use:   "solves",
	Short: "List recorded solve events",
	RunE:  runSolves,
}

func init() {
	rootCmd.AddCommand(solvesCmd)
	solvesCmd.Flags().IntVarP(&solvesLimit, "limit", "n", 20, "Maximum number of solves to show")
}

func runSolves(cmd *cobra.Command, args []string) error {
	path := dbPath
	if path == "" {
		var err error
		path, err = storage.DefaultDBPath()
		if err != nil {
			return err
		}
	}

	db, err := storage.Open(path)
	if err != nil {
		return err
	}
	defer db.Close()

	repo := storage.NewSolveRepository(db)

	total, err := repo.Count()
	if err != nil {
		return err
	}
	solves, err := repo.List(solvesLimit)
	if err != nil {
		return err
	}

	if total == 0 {
		fmt.Println("No solves recorded yet.")
		return nil
	}

	fmt.Printf("%-25s %-8s %s\n", "SOLVED AT", "MOVES", "ID")
	for _, s := range solves {
		fmt.Printf("%-25s %-8d %s\n", s.SolvedAt.Local().Format("2006-01-02 15:04:05"), s.MoveCount, s.SolveID[:8])
	}
	fmt.Printf("\n%d of %d solves\n", len(solves), total)

	return nil
}
