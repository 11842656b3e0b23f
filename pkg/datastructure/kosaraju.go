package datastructure

// StronglyConnectedComponents runs kosaraju's algorithm over the node graph. comp[u] is the component
// of node u; components are numbered in the order the second pass discovers them.
// Both depth first passes are iterative so long road chains cannot overflow the goroutine stack.
func (g *Graph) StronglyConnectedComponents() (comp []int, count int) {
	n := g.NumberOfVertices()

	reverse := make([][]Index, n)
	for _, e := range g.edges {
		reverse[e.to] = append(reverse[e.to], e.from)
	}

	order := make([]Index, 0, n)
	visited := make([]bool, n)

	type frame struct {
		v    Index
		next int
	}
	stack := make([]frame, 0, 64)
	for s := Index(0); int(s) < n; s++ {
		if visited[s] {
			continue
		}
		visited[s] = true
		stack = append(stack, frame{v: s})
		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			out := g.outEdges[top.v]
			if top.next < len(out) {
				w := g.edges[out[top.next]].to
				top.next++
				if !visited[w] {
					visited[w] = true
					stack = append(stack, frame{v: w})
				}
				continue
			}
			order = append(order, top.v)
			stack = stack[:len(stack)-1]
		}
	}

	comp = make([]int, n)
	for i := range comp {
		comp[i] = -1
	}
	todo := make([]Index, 0, 64)
	for i := len(order) - 1; i >= 0; i-- {
		root := order[i]
		if comp[root] != -1 {
			continue
		}
		comp[root] = count
		todo = append(todo[:0], root)
		for len(todo) > 0 {
			v := todo[len(todo)-1]
			todo = todo[:len(todo)-1]
			for _, w := range reverse[v] {
				if comp[w] == -1 {
					comp[w] = count
					todo = append(todo, w)
				}
			}
		}
		count++
	}
	return comp, count
}

// LargestComponent returns the nodes of the biggest strongly connected component, in index order.
// Ties go to the component discovered first.
func (g *Graph) LargestComponent() []Index {
	comp, count := g.StronglyConnectedComponents()
	if count == 0 {
		return nil
	}
	sizes := make([]int, count)
	for _, c := range comp {
		sizes[c]++
	}
	best := 0
	for c := 1; c < count; c++ {
		if sizes[c] > sizes[best] {
			best = c
		}
	}
	nodes := make([]Index, 0, sizes[best])
	for u, c := range comp {
		if c == best {
			nodes = append(nodes, Index(u))
		}
	}
	return nodes
}
