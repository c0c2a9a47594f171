// Package sccgraph computes a topological layering of the bucket graph
// produced by arcgen: the strongly connected components of the bucket
// arcs, in an order such that every arc from one SCC to another points
// from an earlier SCC to a later one. The labeling loop processes buckets
// in this order so a bucket's c̄ is finalized before any successor reads
// it.
package sccgraph

import "github.com/Salancelot/baldes/arcgen"

// SCC is one strongly connected component: the bucket ids composing it.
type SCC struct {
	Members []int
}

// Layering is the result of computing SCCs over a bucket graph: a
// topological order over SCCs, a flattened bucket order consistent with
// it, and the SCC membership of every bucket.
type Layering struct {
	SCCs     []SCC
	Order    []int
	sccIndex map[int]int
}

// SCCOf returns the index into Layering.SCCs that bucket id belongs to.
func (l *Layering) SCCOf(id int) int { return l.sccIndex[id] }

// Compute runs Tarjan's algorithm over the n buckets reachable from out,
// returning their SCCs in topological order (sources first) and a
// flattened processing order consistent with it.
func Compute(n int, out func(id int) []arcgen.BucketArc) *Layering {
	t := &tarjan{
		index:    make([]int, n),
		lowlink:  make([]int, n),
		onStack:  make([]bool, n),
		out:      out,
		sccIndex: make(map[int]int, n),
	}
	for i := range t.index {
		t.index[i] = -1
	}
	for v := 0; v < n; v++ {
		if t.index[v] == -1 {
			t.strongconnect(v)
		}
	}

	// Tarjan emits SCCs in reverse topological order (sinks first); reverse
	// to get sources first, matching the order the labeling loop needs.
	for i, j := 0, len(t.sccs)-1; i < j; i, j = i+1, j-1 {
		t.sccs[i], t.sccs[j] = t.sccs[j], t.sccs[i]
	}

	l := &Layering{sccIndex: make(map[int]int, n)}
	for idx, comp := range t.sccs {
		l.SCCs = append(l.SCCs, SCC{Members: comp})
		for _, m := range comp {
			l.sccIndex[m] = idx
			l.Order = append(l.Order, m)
		}
	}
	return l
}

type tarjan struct {
	index, lowlink []int
	onStack        []bool
	stack          []int
	counter        int
	sccs           [][]int
	out            func(id int) []arcgen.BucketArc
	sccIndex       map[int]int
}

func (t *tarjan) strongconnect(v int) {
	t.index[v] = t.counter
	t.lowlink[v] = t.counter
	t.counter++
	t.stack = append(t.stack, v)
	t.onStack[v] = true

	for _, arc := range t.out(v) {
		w := arc.To
		if t.index[w] == -1 {
			t.strongconnect(w)
			if t.lowlink[w] < t.lowlink[v] {
				t.lowlink[v] = t.lowlink[w]
			}
		} else if t.onStack[w] {
			if t.index[w] < t.lowlink[v] {
				t.lowlink[v] = t.index[w]
			}
		}
	}

	if t.lowlink[v] == t.index[v] {
		var comp []int
		for {
			n := len(t.stack) - 1
			w := t.stack[n]
			t.stack = t.stack[:n]
			t.onStack[w] = false
			comp = append(comp, w)
			if w == v {
				break
			}
		}
		t.sccs = append(t.sccs, comp)
	}
}
