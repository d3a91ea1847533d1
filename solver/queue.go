/******************************************************************************************[Heap.h]
Copyright (c) 2003-2006, Niklas Een, Niklas Sorensson
Copyright (c) 2007-2010, Niklas Sorensson

Permission is hereby granted, free of charge, to any person obtaining a copy of this software and
associated documentation files (the "Software"), to deal in the Software without restriction,
including without limitation the rights to use, copy, modify, merge, publish, distribute,
sublicense, and/or sell copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in all copies or
substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR IMPLIED, INCLUDING BUT
NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY, FITNESS FOR A PARTICULAR PURPOSE AND
NONINFRINGEMENT. IN NO EVENT SHALL THE AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM,
DAMAGES OR OTHER LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM, OUT
OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE SOFTWARE.
**************************************************************************************************/

package solver

// A heap with support for decrease/increase key, used to pick the
// unassigned variable with the highest activity in O(log n). Strongly
// inspired from MiniSat's mtl/Heap.h, as carried by gophersat's
// solver/queue.go.

type activityHeap struct {
	activity []float64 // Activity of each variable; must be the owner's slice, not a copy.
	content  []int     // Heap content: variable indices.
	indices  []int     // Reverse index: position of each variable in content, or -1.
}

func newActivityHeap(activity []float64) activityHeap {
	h := activityHeap{activity: activity}
	for i := range h.activity {
		h.insert(i)
	}
	return h
}

func (h *activityHeap) lt(i, j int) bool {
	return h.activity[i] > h.activity[j]
}

func left(i int) int   { return i*2 + 1 }
func right(i int) int  { return (i + 1) * 2 }
func parent(i int) int { return (i - 1) >> 1 }

func (h *activityHeap) percolateUp(i int) {
	x := h.content[i]
	p := parent(i)
	for i != 0 && h.lt(x, h.content[p]) {
		h.content[i] = h.content[p]
		h.indices[h.content[p]] = i
		i = p
		p = parent(p)
	}
	h.content[i] = x
	h.indices[x] = i
}

func (h *activityHeap) percolateDown(i int) {
	x := h.content[i]
	for left(i) < len(h.content) {
		var child int
		if right(i) < len(h.content) && h.lt(h.content[right(i)], h.content[left(i)]) {
			child = right(i)
		} else {
			child = left(i)
		}
		if !h.lt(h.content[child], x) {
			break
		}
		h.content[i] = h.content[child]
		h.indices[h.content[i]] = i
		i = child
	}
	h.content[i] = x
	h.indices[x] = i
}

func (h *activityHeap) empty() bool { return len(h.content) == 0 }

func (h *activityHeap) contains(n int) bool {
	return n < len(h.indices) && h.indices[n] >= 0
}

func (h *activityHeap) update(n int) {
	if !h.contains(n) {
		h.insert(n)
		return
	}
	h.percolateUp(h.indices[n])
	h.percolateDown(h.indices[n])
}

func (h *activityHeap) insert(n int) {
	for i := len(h.indices); i <= n; i++ {
		h.indices = append(h.indices, -1)
	}
	h.indices[n] = len(h.content)
	h.content = append(h.content, n)
	h.percolateUp(h.indices[n])
}

// removeMin pops and returns the variable with the highest activity (the
// heap is ordered so that "min" means "most active", per lt's direction).
func (h *activityHeap) removeMin() int {
	x := h.content[0]
	last := len(h.content) - 1
	h.content[0] = h.content[last]
	h.indices[h.content[0]] = 0
	h.indices[x] = -1
	h.content = h.content[:last]
	if len(h.content) > 1 {
		h.percolateDown(0)
	}
	return x
}
