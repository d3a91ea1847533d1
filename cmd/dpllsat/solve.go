package main

import (
	"fmt"
	"io"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/satcore/dpllsat/dimacs"
	"github.com/satcore/dpllsat/resultio"
	"github.com/satcore/dpllsat/solver"
)

// exitUnsat is returned by subcommands that have no result to act on
// because the formula turned out UNSAT (e.g. "sudoku solve" with no
// solution); it is distinct from the I/O and parse errors cobra already
// maps to exit 1, per spec.md §6's "0 for success, nonzero for I/O or
// parse errors" — a produced UNSAT verdict is still success, but a
// command that promised a grid to print has nothing to print.
const exitUnsat = 2

func newSolveCmd() *cobra.Command {
	var (
		mode             string
		majorityPolarity bool
		outPath          string
		verbose          bool
	)
	cmd := &cobra.Command{
		Use:   "solve <file.cnf>",
		Short: "Solve a DIMACS CNF file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pb, err := readProblem(args[0])
			if err != nil {
				return err
			}

			m, err := parseMode(mode)
			if err != nil {
				return err
			}

			log.WithFields(log.Fields{
				"vars":    pb.NbVars,
				"clauses": len(pb.Clauses),
				"mode":    m,
			}).Info("solving")
			if verbose {
				for i, c := range pb.Clauses {
					log.WithField("clause", c.String()).Debugf("clause %d", i)
				}
			}

			res, err := solver.Solve(pb, solver.Options{Mode: m, PreferMajorityPolarity: majorityPolarity})
			if err != nil {
				return err
			}

			fields := log.Fields{"verdict": res.Verdict, "elapsed": res.Elapsed}
			if verbose {
				fields["decisions"] = res.Stats.Decisions
				fields["conflicts"] = res.Stats.Conflicts
				fields["flips"] = res.Stats.Flips
				fields["propagations"] = res.Stats.Propagations
			}
			log.WithFields(fields).Info("done")

			return writeResult(outPath, res)
		},
	}
	cmd.Flags().StringVar(&mode, "mode", "serial", "search strategy: serial or dual")
	cmd.Flags().BoolVar(&majorityPolarity, "prefer-majority-polarity", false, "pick each decision's initial polarity by majority occurrence instead of always true")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "write the .res result file here instead of stdout")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log per-clause detail and CD.Stats (decisions, conflicts, flips, propagations)")
	return cmd
}

func parseMode(s string) (solver.Mode, error) {
	switch s {
	case "serial":
		return solver.SerialMode, nil
	case "dual":
		return solver.DualMode, nil
	default:
		return 0, fmt.Errorf("unknown mode %q, want \"serial\" or \"dual\"", s)
	}
}

func readProblem(path string) (*solver.Problem, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return dimacs.Parse(f)
}

func writeResult(path string, res solver.Result) error {
	var w io.Writer = os.Stdout
	if path != "" {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	return resultio.Write(w, resultio.Result{
		Verdict: res.Verdict,
		Model:   res.Model,
		Elapsed: res.Elapsed,
	})
}
