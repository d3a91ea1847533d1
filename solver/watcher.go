package solver

// Implements Boolean Constraint Propagation via the two-watched-literal
// invariant (spec.md §4.2). Grounded on gophersat's solver/watcher.go,
// stripped of clause learning/LBD/cardinality bookkeeping: every clause
// here has plain cardinality 1. Binary clauses (Len() == 2) get their own
// watch buckets (wlistBin), since Sudoku-scale encodings are dominated by
// binary at-most-one clauses and a binary clause's "other" literal is
// known without a scan; clauses of size >= 3 use the general two-watch
// scan below, per SPEC_FULL.md's watched-literal fast path.

// binWatch pairs a binary clause with its other (non-watched-by-this-
// bucket) literal, so propagating past it needs no clause scan at all.
type binWatch struct {
	other  Lit
	clause *Clause
}

// watcherList indexes, for each literal, the clauses currently watching its
// negation: wlist[l] (resp. wlistBin[l]) holds every clause of size >= 3
// (resp. exactly 2) C such that ¬l is one of C's two watched literals.
// Watched literals of a clause are always stored at positions 0 and 1 of
// that clause's literal slice.
type watcherList struct {
	wlist    [][]*Clause
	wlistBin [][]binWatch
}

func (db *ClauseDB) initWatcherList(clauses []*Clause) {
	db.wl = watcherList{
		wlist:    make([][]*Clause, db.nbVars*2),
		wlistBin: make([][]binWatch, db.nbVars*2),
	}
	for _, c := range clauses {
		db.watchClause(c)
	}
}

func (db *ClauseDB) watchClause(c *Clause) {
	first := c.First()
	second := c.Second()
	neg0 := first.Negation()
	neg1 := second.Negation()
	if c.Len() == 2 {
		db.wl.wlistBin[neg0] = append(db.wl.wlistBin[neg0], binWatch{clause: c, other: second})
		db.wl.wlistBin[neg1] = append(db.wl.wlistBin[neg1], binWatch{clause: c, other: first})
		return
	}
	db.wl.wlist[neg0] = append(db.wl.wlist[neg0], c)
	db.wl.wlist[neg1] = append(db.wl.wlist[neg1], c)
}

// CancelFunc is polled by Propagate every propagationPollInterval literals;
// returning true aborts propagation early (used by the dual-worker race to
// stop a losing branch promptly). A nil CancelFunc disables polling.
type CancelFunc func() bool

const propagationPollInterval = 1000

// Propagate drains the implication queue of every literal assigned since
// the last quiescent point, restoring the two-watched invariant for every
// affected clause. It returns the first conflicting clause found, or nil if
// propagation reached quiescence without conflict (spec.md §4.2).
//
// Propagate does not assign the initial seed literal(s) itself: callers
// assign the triggering literal (a decision or a forced unit) and then call
// Propagate, matching spec.md §9's note that there is no redundant
// full-scan unit-propagation pass distinct from watched-literal
// propagation — BCP is driven purely off the trail.
func (db *ClauseDB) Propagate(cancel CancelFunc) *Clause {
	qhead := db.propagated
	steps := 0
	for qhead < len(db.trail) {
		falsifiedVar := db.trail[qhead].Var
		falsifiedValue := db.trail[qhead].Value
		qhead++
		db.propagated = qhead

		// The literal that just became falsified is the negation of the
		// polarity the variable was bound to; clauses watching it are
		// stored in the watcher list under the negation of their watched
		// literal (see watchClause), so the bucket to scan is keyed by the
		// literal that just became satisfied, i.e. negLit's negation.
		negLit := falsifiedVar.SignedLit(falsifiedValue == True)
		trueLit := negLit.Negation()

		steps++
		db.propagationSteps++
		if cancel != nil && steps%propagationPollInterval == 0 && cancel() {
			return nil
		}

		for _, bw := range db.wl.wlistBin[trueLit] {
			switch db.LiteralValue(bw.other) {
			case True:
				continue // binary clause already satisfied through its other literal.
			case Unassigned:
				db.Assign(bw.other.Var(), polarityOf(bw.other), false, bw.clause)
			case False:
				return bw.clause
			}
		}

		watchers := db.wl.wlist[trueLit]
		i := 0
		for i < len(watchers) {
			c := watchers[i]
			var other Lit
			if c.First() == negLit {
				other = c.Second()
			} else {
				other = c.First()
			}
			if db.LiteralValue(other) == True {
				i++
				continue // clause already satisfied through its other watch.
			}
			replaced := false
			for k := 2; k < c.Len(); k++ {
				lit := c.Get(k)
				if db.LiteralValue(lit) != False {
					if c.First() == negLit {
						c.swap(0, k)
					} else {
						c.swap(1, k)
					}
					watchers[i] = watchers[len(watchers)-1]
					watchers = watchers[:len(watchers)-1]
					newNeg := lit.Negation()
					db.wl.wlist[newNeg] = append(db.wl.wlist[newNeg], c)
					replaced = true
					break
				}
			}
			if replaced {
				continue // watchers shrank; clause now formerly at i+1 sits at i.
			}
			if db.LiteralValue(other) == Unassigned {
				db.Assign(other.Var(), polarityOf(other), false, c)
				i++
				continue
			}
			db.wl.wlist[trueLit] = watchers
			return c
		}
		db.wl.wlist[trueLit] = watchers
	}
	return nil
}

func polarityOf(lit Lit) TriState {
	if lit.IsPositive() {
		return True
	}
	return False
}
