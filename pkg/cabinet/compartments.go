package cabinet

// Bounds holds the boundaries of a top section split by shelves.
// Compartment j spans Edges[j] to Edges[j+1].
type Bounds struct {
	Edges []float64
}

// Compartments returns the boundaries [floor] + shelves + [ceiling] for an
// ascending shelf list. It is the only mapping from compartment ids to
// heights; divider ids, labels and the text grid all go through it.
func Compartments(shelves []float64, floor, ceiling float64) Bounds {
	edges := make([]float64, 0, len(shelves)+2)
	edges = append(edges, floor)
	edges = append(edges, shelves...)
	edges = append(edges, ceiling)
	return Bounds{Edges: edges}
}

// Count returns the number of compartments.
func (b Bounds) Count() int { return len(b.Edges) - 1 }

// Valid reports whether id names a compartment.
func (b Bounds) Valid(id int) bool { return id >= 0 && id < b.Count() }

// Span returns the lower and upper boundary of compartment j.
func (b Bounds) Span(j int) (low, high float64) { return b.Edges[j], b.Edges[j+1] }

// Height returns the clear height of compartment j.
func (b Bounds) Height(j int) float64 {
	low, high := b.Span(j)
	return high - low
}

// Index returns the compartment containing height z, or -1 when z lies
// outside the section. A height exactly on a shelf belongs to the
// compartment above it.
func (b Bounds) Index(z float64) int {
	if len(b.Edges) < 2 || z < b.Edges[0] || z > b.Edges[len(b.Edges)-1] {
		return -1
	}
	for j := 0; j < b.Count(); j++ {
		if z < b.Edges[j+1] {
			return j
		}
	}
	return b.Count() - 1
}
