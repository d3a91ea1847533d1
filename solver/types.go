package solver

// Describes the basic types and constants used by the core DPLL engine.

// Verdict is the outcome of a solve call.
type Verdict byte

const (
	// Unsat means no assignment satisfies the formula.
	Unsat Verdict = iota
	// Sat means an assignment satisfying the formula was found.
	Sat
)

func (v Verdict) String() string {
	if v == Sat {
		return "SAT"
	}
	return "UNSAT"
}

// TriState is the tri-valued state of a variable: unassigned, true or false.
type TriState int8

const (
	// Unassigned means the variable currently has no binding.
	Unassigned TriState = 0
	// True means the variable is bound to true.
	True TriState = 1
	// False means the variable is bound to false.
	False TriState = -1
)

func (t TriState) String() string {
	switch t {
	case True:
		return "TRUE"
	case False:
		return "FALSE"
	default:
		return "UNASSIGNED"
	}
}

// Var is a variable identifier. Vars are 0-indexed internally; CNF variable
// i (1-indexed, as read from DIMACS) is represented as Var(i-1).
type Var int32

// Lit is a literal: a variable paired with a polarity, encoded so that for
// variable v, Lit(2*v) is the positive literal and Lit(2*v+1) its negation.
// This doubling, rather than a signed int, lets literals index directly into
// per-literal watch-list slices (ground in gophersat's solver/types.go).
type Lit int32

// IntToLit converts a signed, nonzero DIMACS literal to a Lit.
func IntToLit(i int) Lit {
	if i < 0 {
		return Lit(2*(-i-1) + 1)
	}
	return Lit(2 * (i - 1))
}

// IntToVar converts a 1-indexed DIMACS variable number to a Var.
func IntToVar(i int) Var {
	return Var(i - 1)
}

// PosLit returns the positive literal of v.
func (v Var) PosLit() Lit {
	return Lit(v * 2)
}

// NegLit returns the negative literal of v.
func (v Var) NegLit() Lit {
	return Lit(v*2 + 1)
}

// SignedLit returns the literal of v, negated iff neg is true.
func (v Var) SignedLit(neg bool) Lit {
	if neg {
		return v.NegLit()
	}
	return v.PosLit()
}

// Var returns the variable l refers to.
func (l Lit) Var() Var {
	return Var(l / 2)
}

// IsPositive is true iff l is the positive literal of its variable.
func (l Lit) IsPositive() bool {
	return l%2 == 0
}

// Negation returns the complementary literal of l.
func (l Lit) Negation() Lit {
	return l ^ 1
}

// Int converts l back to a signed DIMACS literal.
func (l Lit) Int() int {
	v := int(l/2) + 1
	if !l.IsPositive() {
		return -v
	}
	return v
}

// Mode selects the search strategy used by Solve.
type Mode byte

const (
	// SerialMode runs the single-threaded DPLL loop.
	SerialMode Mode = iota
	// DualMode runs the two-worker race on the root decision variable.
	DualMode
)

func (m Mode) String() string {
	if m == DualMode {
		return "dual"
	}
	return "serial"
}
