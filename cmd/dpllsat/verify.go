package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/satcore/dpllsat/resultio"
	"github.com/satcore/dpllsat/solver"
	"github.com/satcore/dpllsat/verify"
)

func newVerifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify <file.cnf> <result.res>",
		Short: "Independently check a .res model against a CNF file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			pb, err := readProblem(args[0])
			if err != nil {
				return err
			}

			rf, err := os.Open(args[1])
			if err != nil {
				return err
			}
			defer rf.Close()
			res, err := resultio.Read(rf)
			if err != nil {
				return err
			}

			if res.Verdict != solver.Sat {
				fmt.Println("nothing to verify: result file reports UNSATISFIABLE")
				return nil
			}

			if fail := verify.Model(pb, res.Model); fail != nil {
				fmt.Println(fail)
				os.Exit(1)
			}
			fmt.Println("OK: model satisfies every clause")
			return nil
		},
	}
	return cmd
}
