package navmesh

// Components labels every cell with the index of its connected component,
// numbered from 0 in cell order, and returns the number of components. Plan
// panics for any pair of cells with different labels.
func (m *NavMesh) Components() ([]int, int) {
	label := make([]int, m.Len())
	for i := range label {
		label[i] = -1
	}
	next := 0
	for i := range label {
		if label[i] >= 0 {
			continue
		}
		stack := []uint32{uint32(i)}
		label[i] = next
		for len(stack) > 0 {
			c := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			for _, e := range m.cells[c].Edges {
				if label[e.Neighbor] < 0 {
					label[e.Neighbor] = next
					stack = append(stack, e.Neighbor)
				}
			}
		}
		next++
	}
	return label, next
}
