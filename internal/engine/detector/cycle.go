package detector

import (
	"fmt"
	"slices"

	"study-planner/internal/model"
)

const (
	unvisited = iota
	onStack
	done
)

// graph is an adjacency list over dense obligation indexes.
type graph struct {
	ids   []string
	edges [][]int
}

func newGraph(obligations []model.Obligation) graph {
	ids := make([]string, 0, len(obligations))
	for _, o := range obligations {
		ids = append(ids, o.ID)
	}
	slices.Sort(ids)
	ids = slices.Compact(ids)

	index := make(map[string]int, len(ids))
	for i, id := range ids {
		index[id] = i
	}

	g := graph{ids: ids, edges: make([][]int, len(ids))}
	for _, o := range obligations {
		from := index[o.ID]
		for _, dep := range o.Dependencies {
			to, ok := index[dep]
			if !ok {
				continue
			}
			g.edges[from] = append(g.edges[from], to)
		}
	}
	for i := range g.edges {
		slices.Sort(g.edges[i])
		g.edges[i] = slices.Compact(g.edges[i])
	}
	return g
}

// cycles returns one conflict per dependency edge inside a strongly connected
// component with more than one member, plus one per self-dependency.
func (d Detector) cycles(obligations []model.Obligation) []model.Conflict {
	g := newGraph(obligations)
	n := len(g.ids)

	state := make([]int, n)
	low := make([]int, n)
	order := make([]int, n)
	comp := make([]int, n)
	for i := range comp {
		comp[i] = -1
	}
	var stack []int
	var sizes []int
	counter := 0

	var visit func(v int)
	visit = func(v int) {
		order[v] = counter
		low[v] = counter
		counter++
		state[v] = onStack
		stack = append(stack, v)

		for _, w := range g.edges[v] {
			switch state[w] {
			case unvisited:
				visit(w)
				low[v] = min(low[v], low[w])
			case onStack:
				low[v] = min(low[v], order[w])
			}
		}

		if low[v] != order[v] {
			return
		}
		id := len(sizes)
		size := 0
		for {
			w := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			state[w] = done
			comp[w] = id
			size++
			if w == v {
				break
			}
		}
		sizes = append(sizes, size)
	}

	for v := 0; v < n; v++ {
		if state[v] == unvisited {
			visit(v)
		}
	}

	var out []model.Conflict
	for v := 0; v < n; v++ {
		for _, w := range g.edges[v] {
			if comp[v] != comp[w] {
				continue
			}
			if v != w && sizes[comp[v]] < 2 {
				continue
			}
			detail := fmt.Sprintf("%s depends on %s inside a dependency cycle of %d obligations",
				g.ids[v], g.ids[w], sizes[comp[v]])
			if v == w {
				detail = fmt.Sprintf("%s depends on itself", g.ids[v])
			}
			out = append(out, model.Conflict{
				ObligationA: g.ids[v],
				ObligationB: g.ids[w],
				Kind:        model.ConflictDependencyCycle,
				Detail:      detail,
			})
		}
	}
	return out
}
