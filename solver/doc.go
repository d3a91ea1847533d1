/*
Package solver implements a DPLL-based propositional SAT solver over CNF
input: two-watched-literal Boolean constraint propagation, a hybrid
MOM/Jeroslow-Wang/activity decision heuristic, root-level pure-literal
elimination, and chronological backtracking. It does not learn clauses,
does not restart and does not preprocess beyond pure-literal elimination.

Describing a problem

A Problem is a variable count and an ordered list of Clauses, built either
by hand or by the dimacs package's parser:

    pb, err := dimacs.Parse(r)

Solving a problem

    res, err := solver.Solve(pb, solver.Options{Mode: solver.SerialMode})
    if res.Verdict == solver.Sat {
        // res.Model holds one 1-indexed DIMACS literal per variable.
    }

Setting Options.Mode to DualMode splits the search on the root variable
with the best positive/negative occurrence balance and races two workers
on a ClauseDB.Snapshot() each; the first to report Sat wins and the other
is cancelled cooperatively. Both workers are always joined before Solve
returns.
*/
package solver
