// Command dpllsat is the CLI front-end for the solver, dimacs, resultio,
// sudoku and verify packages. Grounded on operator-lifecycle-manager's
// cmd/operator-cli: a cobra root command with a persistent --debug flag
// wired to logrus's level, and subcommands built by small newXxxCmd
// constructors rather than one flat switch.
package main

import (
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "dpllsat",
		Short: "dpllsat",
		Long:  "A DPLL-based SAT solver: DIMACS CNF solving, result files, Sudoku encoding, and independent model verification.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if debug, _ := cmd.Flags().GetBool("debug"); debug {
				log.SetLevel(log.DebugLevel)
			}
			return nil
		},
	}
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")

	rootCmd.AddCommand(newSolveCmd())
	rootCmd.AddCommand(newVerifyCmd())
	rootCmd.AddCommand(newSudokuCmd())

	if err := rootCmd.Execute(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}
