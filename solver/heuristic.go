package solver

import "math"

// Implements the Heuristic & Decision component (spec.md §4.3): a hybrid
// MOM / Jeroslow-Wang / activity variable ordering, default-true polarity
// selection, conflict-driven activity bumping (no clause learning), and a
// root-level pure-literal pass. Grounded on gophersat's activity decay/
// rescale constants (solver/solver.go) and on original_source's
// optimize_cnf.h, which names exactly this MOM+VSIDS+pure-literal
// combination as the "optimized" DPLL's heuristic surface.

const (
	defaultVarDecay  = 0.95   // per spec.md §3 "Activity": typical decay 0.95.
	activityRescale  = 1e-100 // multiplicative rescale applied when activity overflows.
	activityOverflow = 1e100  // spec.md §3's "large threshold".
)

// Heuristic ranks unassigned variables and tracks per-variable activity.
type Heuristic struct {
	nbVars   int
	activity []float64
	heap     activityHeap
	varInc   float64
	varDecay float64

	// preferMajorityPolarity implements the spec.md §4.3 alternative to
	// the default "TRUE first" polarity rule (see SPEC_FULL.md's Open
	// Questions): prefer the polarity with the larger literal count.
	preferMajorityPolarity bool
	posCount               []int
	negCount               []int
}

// NewHeuristic builds a Heuristic over nbVars variables, seeding per-
// variable literal counts from clauses (used by majority-polarity
// selection, if enabled, and by the dual race's split-variable choice;
// the MOM phase computes its own counts over the current clause state).
func NewHeuristic(nbVars int, clauses []*Clause, preferMajorityPolarity bool) *Heuristic {
	h := &Heuristic{
		nbVars:                 nbVars,
		activity:               make([]float64, nbVars),
		varInc:                 1.0,
		varDecay:               defaultVarDecay,
		preferMajorityPolarity: preferMajorityPolarity,
		posCount:               make([]int, nbVars),
		negCount:               make([]int, nbVars),
	}
	for _, c := range clauses {
		for _, l := range c.Lits() {
			if l.IsPositive() {
				h.posCount[l.Var()]++
			} else {
				h.negCount[l.Var()]++
			}
		}
	}
	h.heap = newActivityHeap(h.activity)
	return h
}

// ChoosePolarity returns the initial truth value to try for v when it is
// picked as a decision variable (spec.md §4.3).
func (h *Heuristic) ChoosePolarity(v Var) TriState {
	if h.preferMajorityPolarity && h.negCount[v] > h.posCount[v] {
		return False
	}
	return True
}

// OnConflict bumps the activity of every variable in the conflict clause,
// decaying varInc and rescaling if any activity overflows (spec.md §4.3,
// §3's "Activity" invariants). No clause is learned; this is bookkeeping
// only, used to steer later decisions.
func (h *Heuristic) OnConflict(conflict *Clause) {
	for _, l := range conflict.Lits() {
		h.bumpActivity(l.Var())
	}
	h.varInc /= h.varDecay
}

func (h *Heuristic) bumpActivity(v Var) {
	h.activity[v] += h.varInc
	if h.activity[v] > activityOverflow {
		for i := range h.activity {
			h.activity[i] *= activityRescale
		}
		h.varInc *= activityRescale
	}
	if h.heap.contains(int(v)) {
		h.heap.update(int(v))
	}
}

// ChooseVariable returns the next unassigned variable to branch on, or
// false if every variable is already bound (spec.md §4.3). decisionsMade
// is the number of decisions taken so far in this search, used to pick
// between the MOM and activity phases.
func (h *Heuristic) ChooseVariable(db *ClauseDB, decisionsMade int) (Var, bool) {
	if decisionsMade < h.nbVars/4 {
		if v, ok := h.chooseMOM(db); ok {
			return v, true
		}
	}
	return h.chooseActivity(db)
}

// chooseActivity returns the unassigned variable with the largest
// activity, using the same lazily-deleting heap pattern gophersat uses
// (solver.go's pickBranchLit): pop the max-activity entry; if it turns out
// to already be assigned, it is simply dropped (it will be reinserted by
// ReleaseVar if it is ever unassigned again) and the next entry is popped.
func (h *Heuristic) chooseActivity(db *ClauseDB) (Var, bool) {
	for !h.heap.empty() {
		v := Var(h.heap.removeMin())
		if db.StateOf(v) == Unassigned {
			return v, true
		}
	}
	return 0, false
}

// ReleaseVar makes v selectable by the activity phase again after
// backtracking has unassigned it.
func (h *Heuristic) ReleaseVar(v Var) {
	if !h.heap.contains(int(v)) {
		h.heap.insert(int(v))
	}
}

// clone returns an independent copy of h, suitable for handing to a
// dual-race worker goroutine alongside its own ClauseDB.Snapshot() (the
// two must not share the activity slice the heap was built over).
func (h *Heuristic) clone() *Heuristic {
	c := &Heuristic{
		nbVars:                 h.nbVars,
		activity:               append([]float64(nil), h.activity...),
		varInc:                 h.varInc,
		varDecay:               h.varDecay,
		preferMajorityPolarity: h.preferMajorityPolarity,
		posCount:               h.posCount,
		negCount:               h.negCount,
	}
	c.heap = activityHeap{activity: c.activity}
	for v := 0; v < h.nbVars; v++ {
		if h.heap.contains(v) {
			c.heap.insert(v)
		}
	}
	return c
}

// chooseMOM implements the MOM/Jeroslow-Wang phase of spec.md §4.3: among
// unsatisfied clauses of minimum current size k, score(v) = pos*neg*2^k +
// pos + neg, ties broken by the full Jeroslow-Wang sum.
func (h *Heuristic) chooseMOM(db *ClauseDB) (Var, bool) {
	k, unsatisfied := h.minClauseSize(db)
	if k < 0 {
		return 0, false // every clause already satisfied.
	}
	pos := make([]int, h.nbVars)
	neg := make([]int, h.nbVars)
	jw := make([]float64, h.nbVars)
	any := false
	for _, c := range unsatisfied {
		size := currentSize(db, c)
		weight := math.Exp2(-float64(size))
		minSize := size == k
		for _, l := range c.Lits() {
			if db.LiteralValue(l) != Unassigned {
				continue
			}
			any = true
			jw[l.Var()] += weight
			if minSize {
				if l.IsPositive() {
					pos[l.Var()]++
				} else {
					neg[l.Var()]++
				}
			}
		}
	}
	if !any {
		return 0, false
	}
	var best Var = -1
	bestScore := -1.0
	bestJW := -1.0
	for v := 0; v < h.nbVars; v++ {
		if db.StateOf(Var(v)) != Unassigned {
			continue
		}
		score := float64(pos[v]*neg[v])*math.Exp2(float64(k)) + float64(pos[v]+neg[v])
		if score > bestScore || (score == bestScore && jw[v] > bestJW) {
			bestScore = score
			bestJW = jw[v]
			best = Var(v)
		}
	}
	if best < 0 {
		return 0, false
	}
	return best, true
}

// minClauseSize returns the smallest current size (free-literal count)
// among unsatisfied clauses, and the list of unsatisfied clauses, or -1 if
// every clause is satisfied.
func (h *Heuristic) minClauseSize(db *ClauseDB) (int, []*Clause) {
	k := -1
	var unsatisfied []*Clause
	for _, c := range db.clauses {
		sat := false
		size := 0
		for _, l := range c.Lits() {
			switch db.LiteralValue(l) {
			case True:
				sat = true
			case Unassigned:
				size++
			}
		}
		if sat {
			continue
		}
		unsatisfied = append(unsatisfied, c)
		if k < 0 || size < k {
			k = size
		}
	}
	return k, unsatisfied
}

func currentSize(db *ClauseDB, c *Clause) int {
	size := 0
	for _, l := range c.Lits() {
		if db.LiteralValue(l) == Unassigned {
			size++
		}
	}
	return size
}

// PureLiteralPass scans unsatisfied clauses and forces the assignment of
// every variable whose free occurrences are all one polarity, iterating to
// a fixpoint (spec.md §4.3). It is invoked once, at root, before the first
// decision. It returns a conflicting clause if forcing a pure literal
// somehow falsifies another clause (this cannot happen by the pure-literal
// argument, but Propagate is still run so watches stay consistent, and its
// result is surfaced defensively).
func (h *Heuristic) PureLiteralPass(db *ClauseDB) *Clause {
	for {
		posSeen := make([]bool, h.nbVars)
		negSeen := make([]bool, h.nbVars)
		changed := false
		for _, c := range db.clauses {
			sat := false
			for _, l := range c.Lits() {
				if db.LiteralValue(l) == True {
					sat = true
					break
				}
			}
			if sat {
				continue
			}
			for _, l := range c.Lits() {
				if db.LiteralValue(l) != Unassigned {
					continue
				}
				if l.IsPositive() {
					posSeen[l.Var()] = true
				} else {
					negSeen[l.Var()] = true
				}
			}
		}
		for v := 0; v < h.nbVars; v++ {
			if db.StateOf(Var(v)) != Unassigned {
				continue
			}
			pureTrue := posSeen[v] && !negSeen[v]
			pureFalse := negSeen[v] && !posSeen[v]
			if !pureTrue && !pureFalse {
				continue
			}
			value := True
			if pureFalse {
				value = False
			}
			db.Assign(Var(v), value, false, nil)
			if c := db.Propagate(nil); c != nil {
				return c
			}
			changed = true
		}
		if !changed {
			return nil
		}
	}
}
