package solver

import "fmt"

// TrailEntry is one appended assignment: which variable was bound, what it
// was bound to, at which decision level, and whether the binding was a
// branching decision (as opposed to one forced by propagation). reason is
// the clause that forced the assignment, or nil for decisions and for units
// bound directly from the input.
type TrailEntry struct {
	Var      Var
	Value    TriState
	Level    int
	Decision bool
	reason   *Clause
}

// ClauseDB owns the clause set, the assignment vector and the trail for one
// solve() call (spec.md §3, §4.1). Its lifetime is exactly one call to
// Solve (or one worker's branch of a dual race); nothing here is process-
// global (spec.md §9).
type ClauseDB struct {
	nbVars  int
	assign  []TriState // indexed by Var
	trail   []TrailEntry
	level   int
	clauses []*Clause // clauses of size >= 2; unit clauses are applied eagerly below
	wl      watcherList

	// propagated is the index of the first trail entry not yet drained by
	// Propagate; it advances monotonically within a decision level and is
	// rewound by UnassignTo.
	propagated int

	// trivialUnsat is set at construction time if the input contains an
	// empty clause or two contradictory unit clauses (spec.md §8).
	trivialUnsat bool

	// propagationSteps counts literals dequeued by Propagate across the
	// lifetime of this ClauseDB, surfaced in Stats.Propagations.
	propagationSteps int

	// decisions, conflicts and flips count the corresponding search events
	// over the lifetime of this ClauseDB, bumped by the Search Driver and
	// surfaced via Stats (mirroring gophersat's Solver.Stats, per
	// SPEC_FULL.md's CD module).
	decisions int
	conflicts int
	flips     int
}

// Stats reports the counters gathered by one ClauseDB over the lifetime of
// a search: decisions and flips taken, conflicts encountered, and literals
// propagated. Exposed for the CLI's --verbose logging.
type Stats struct {
	Decisions    int
	Conflicts    int
	Flips        int
	Propagations int
}

// Stats returns db's counters as gathered so far.
func (db *ClauseDB) Stats() Stats {
	return Stats{
		Decisions:    db.decisions,
		Conflicts:    db.conflicts,
		Flips:        db.flips,
		Propagations: db.propagationSteps,
	}
}

// Decisions returns the number of fresh branching decisions made so far
// (not counting polarity flips on backtrack), used by the heuristic to
// decide when to switch from MOM to activity-based selection.
func (db *ClauseDB) Decisions() int {
	return db.decisions
}

// BumpDecisions records one fresh branching decision.
func (db *ClauseDB) BumpDecisions() {
	db.decisions++
}

// BumpConflicts records one conflict encountered during propagation.
func (db *ClauseDB) BumpConflicts() {
	db.conflicts++
}

// BumpFlips records one polarity flip of an existing decision on backtrack.
func (db *ClauseDB) BumpFlips() {
	db.flips++
}

// NewClauseDB builds a clause database from pb. Unit clauses are applied
// immediately as root-level forced assignments (spec.md §4.2: "a unit
// clause is handled as an immediate forced assignment at load time"), so
// by the time NewClauseDB returns, the trail already reflects them and
// Propagate has been run to quiescence once.
func NewClauseDB(pb *Problem) *ClauseDB {
	db := &ClauseDB{
		nbVars: pb.NbVars,
		assign: make([]TriState, pb.NbVars),
	}
	if pb.HasEmptyClause() {
		db.trivialUnsat = true
		return db
	}
	nonUnit := make([]*Clause, 0, len(pb.Clauses))
	for _, c := range pb.Clauses {
		if c.Len() == 1 {
			lit := c.Get(0)
			v := lit.Var()
			want := True
			if !lit.IsPositive() {
				want = False
			}
			switch db.assign[v] {
			case Unassigned:
				db.Assign(v, want, false, nil)
			case want:
				// already bound the same way by an earlier unit; no-op.
			default:
				db.trivialUnsat = true
				return db
			}
			continue
		}
		nonUnit = append(nonUnit, c)
	}
	db.clauses = nonUnit
	db.initWatcherList(nonUnit)
	if c := db.Propagate(nil); c != nil {
		db.trivialUnsat = true
	}
	return db
}

// NbVars returns the number of variables in the database.
func (db *ClauseDB) NbVars() int {
	return db.nbVars
}

// CurrentLevel returns the current decision level; 0 is root.
func (db *ClauseDB) CurrentLevel() int {
	return db.level
}

// StateOf returns v's current tri-state binding.
func (db *ClauseDB) StateOf(v Var) TriState {
	return db.assign[v]
}

// LiteralValue returns whether lit is currently satisfied, falsified or free.
func (db *ClauseDB) LiteralValue(lit Lit) TriState {
	s := db.assign[lit.Var()]
	if s == Unassigned {
		return Unassigned
	}
	if (s == True) == lit.IsPositive() {
		return True
	}
	return False
}

// Assign binds v to value. Precondition: v is currently Unassigned. If
// isDecision is true the current decision level is incremented first, so
// the new entry is recorded at the new level; otherwise the entry is
// recorded at the current level (a forced assignment implied by a
// decision already on the trail). reason is the clause that forced the
// assignment, or nil for decisions and input units.
func (db *ClauseDB) Assign(v Var, value TriState, isDecision bool, reason *Clause) {
	if db.assign[v] != Unassigned {
		panic(fmt.Sprintf("solver: variable %d assigned twice", v+1))
	}
	if isDecision {
		db.level++
	}
	db.assign[v] = value
	db.trail = append(db.trail, TrailEntry{
		Var:      v,
		Value:    value,
		Level:    db.level,
		Decision: isDecision,
		reason:   reason,
	})
}

// UnassignTo pops trail entries whose level exceeds level, restoring each
// variable to Unassigned, and sets the current level to level. It returns
// the freed variables, so callers (the decision heuristic) can make them
// selectable again.
func (db *ClauseDB) UnassignTo(level int) []Var {
	var freed []Var
	for len(db.trail) > 0 && db.trail[len(db.trail)-1].Level > level {
		e := db.trail[len(db.trail)-1]
		db.trail = db.trail[:len(db.trail)-1]
		db.assign[e.Var] = Unassigned
		freed = append(freed, e.Var)
	}
	db.level = level
	if db.propagated > len(db.trail) {
		db.propagated = len(db.trail)
	}
	return freed
}

// PropagationSteps returns the number of literals Propagate has dequeued
// over the lifetime of db.
func (db *ClauseDB) PropagationSteps() int {
	return db.propagationSteps
}

// TrailLen returns the number of entries currently on the trail.
func (db *ClauseDB) TrailLen() int {
	return len(db.trail)
}

// TrailEntryAt returns the i-th trail entry, in assignment order.
func (db *ClauseDB) TrailEntryAt(i int) TrailEntry {
	return db.trail[i]
}

// LastDecision returns the most recent decision-flagged trail entry and
// true, or the zero value and false if no decision remains on the trail.
func (db *ClauseDB) LastDecision() (TrailEntry, bool) {
	for i := len(db.trail) - 1; i >= 0; i-- {
		if db.trail[i].Decision {
			return db.trail[i], true
		}
	}
	return TrailEntry{}, false
}

// AllAssigned reports whether every variable currently has a binding.
func (db *ClauseDB) AllAssigned() bool {
	return len(db.trail) == db.nbVars
}

// Satisfied reports whether every clause has at least one satisfied literal
// under the current (possibly partial) assignment.
func (db *ClauseDB) Satisfied() bool {
	for _, c := range db.clauses {
		sat := false
		for _, l := range c.Lits() {
			if db.LiteralValue(l) == True {
				sat = true
				break
			}
		}
		if !sat {
			return false
		}
	}
	return true
}

// Model returns the current total assignment as 1-indexed DIMACS literals:
// +i if variable i is True, -i if False. Model must only be called once
// AllAssigned() holds.
func (db *ClauseDB) Model() []int {
	m := make([]int, db.nbVars)
	for i, s := range db.assign {
		if s == True {
			m[i] = i + 1
		} else {
			m[i] = -(i + 1)
		}
	}
	return m
}

// Snapshot returns an independent deep copy of db, suitable for handing to
// a dual-race worker goroutine (spec.md §9: array-based state makes this a
// handful of copy() calls, not a graph walk).
func (db *ClauseDB) Snapshot() *ClauseDB {
	clone := &ClauseDB{
		nbVars:           db.nbVars,
		level:            db.level,
		propagated:       db.propagated,
		trivialUnsat:     db.trivialUnsat,
		propagationSteps: db.propagationSteps,
		decisions:        db.decisions,
		conflicts:        db.conflicts,
		flips:            db.flips,
	}
	clone.assign = append([]TriState(nil), db.assign...)
	clone.trail = append([]TrailEntry(nil), db.trail...)
	clone.clauses = make([]*Clause, len(db.clauses))
	for i, c := range db.clauses {
		lits := append([]Lit(nil), c.Lits()...)
		clone.clauses[i] = NewClause(lits)
	}
	// Re-point trail reasons and the watcher list at the cloned clauses by
	// rebuilding the watcher list from scratch rather than translating
	// pointers: correctness-preserving and keeps Snapshot O(n) simple code.
	for i := range clone.trail {
		clone.trail[i].reason = nil
	}
	clone.initWatcherList(clone.clauses)
	return clone
}
