package solver

import (
	"fmt"
	"strings"
)

// A Clause is an ordered slice of literals; an empty one is allowed and
// makes its Problem trivially UNSAT (see HasEmptyClause). Lits[0] and lits[1]
// are the two watched literals whenever Len() >= 2 (see watcher.go); their
// position within the slice is swapped in place as propagation runs, so a
// Clause's literal order is not stable after the first propagate() call,
// matching spec.md's note that clause order is "operationally irrelevant".
type Clause struct {
	lits []Lit
}

// NewClause returns a clause made of the given literals. The slice is kept,
// not copied; callers must not retain it.
func NewClause(lits []Lit) *Clause {
	return &Clause{lits: lits}
}

// Len returns the number of literals in c.
func (c *Clause) Len() int {
	return len(c.lits)
}

// Get returns the ith literal of c.
func (c *Clause) Get(i int) Lit {
	return c.lits[i]
}

// First returns the first watched literal.
func (c *Clause) First() Lit {
	return c.lits[0]
}

// Second returns the second watched literal.
func (c *Clause) Second() Lit {
	return c.lits[1]
}

func (c *Clause) swap(i, j int) {
	c.lits[i], c.lits[j] = c.lits[j], c.lits[i]
}

// Lits returns a read-only view of c's literals, in their current order.
func (c *Clause) Lits() []Lit {
	return c.lits
}

// CNF renders c as a DIMACS clause line.
func (c *Clause) CNF() string {
	parts := make([]string, 0, len(c.lits)+1)
	for _, l := range c.lits {
		parts = append(parts, fmt.Sprintf("%d", l.Int()))
	}
	parts = append(parts, "0")
	return strings.Join(parts, " ")
}

func (c *Clause) String() string {
	parts := make([]string, len(c.lits))
	for i, l := range c.lits {
		parts[i] = fmt.Sprintf("%d", l.Int())
	}
	return "(" + strings.Join(parts, " ∨ ") + ")"
}
