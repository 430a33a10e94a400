package cabinet

// Group is a run of adjacent columns whose top sections are fused.
type Group struct {
	Members []int // Column indices, ascending and contiguous
	Width   int   // Sum of member widths in cm
	HasTop  bool  // True if any member has its top section on
	Master  int   // Leftmost member; source of shelves and dividers
}

// Len returns the number of member columns.
func (g Group) Len() int { return len(g.Members) }

// ResolveGroups scans columns left to right and fuses each column with its
// right neighbour while MergeRight is set. A MergeRight flag on the final
// column is ignored.
//
// This is the only grouping rule in the module; the model, the projector and
// the diagram renderers all call it.
func ResolveGroups(columns []Column) []Group {
	var groups []Group
	for i := 0; i < len(columns); {
		g := Group{Master: i}
		k := i
		for {
			g.Members = append(g.Members, k)
			g.Width += columns[k].Width
			g.HasTop = g.HasTop || columns[k].HasTop
			if !columns[k].MergeRight || k == len(columns)-1 {
				break
			}
			k++
		}
		groups = append(groups, g)
		i = k + 1
	}
	return groups
}
