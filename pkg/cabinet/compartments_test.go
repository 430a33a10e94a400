package cabinet

import (
	"slices"
	"testing"
)

func TestCompartments(t *testing.T) {
	b := Compartments([]float64{130, 180}, 80, 240)
	if !slices.Equal(b.Edges, []float64{80, 130, 180, 240}) {
		t.Fatalf("Edges = %v", b.Edges)
	}
	if b.Count() != 3 {
		t.Errorf("Count() = %d, want 3", b.Count())
	}
	for id, want := range []bool{true, true, true, false} {
		if got := b.Valid(id); got != want {
			t.Errorf("Valid(%d) = %v, want %v", id, got, want)
		}
	}
	if b.Valid(-1) {
		t.Error("Valid(-1) = true")
	}
	if low, high := b.Span(1); low != 130 || high != 180 {
		t.Errorf("Span(1) = %g, %g, want 130, 180", low, high)
	}
	if h := b.Height(2); h != 60 {
		t.Errorf("Height(2) = %g, want 60", h)
	}
}

func TestCompartmentsNoShelves(t *testing.T) {
	b := Compartments(nil, 80, 240)
	if b.Count() != 1 || b.Height(0) != 160 {
		t.Errorf("Count() = %d Height(0) = %g, want 1, 160", b.Count(), b.Height(0))
	}
}

func TestBoundsIndex(t *testing.T) {
	b := Compartments([]float64{130, 180}, 80, 240)
	tests := []struct {
		z    float64
		want int
	}{
		{79.9, -1},
		{80, 0},
		{129.9, 0},
		{130, 1},
		{200, 2},
		{240, 2},
		{240.1, -1},
	}
	for _, tt := range tests {
		if got := b.Index(tt.z); got != tt.want {
			t.Errorf("Index(%g) = %d, want %d", tt.z, got, tt.want)
		}
	}
}

func TestCabinetCompartments(t *testing.T) {
	c := withShelves(t, 60, 130, 180)
	b, err := c.Compartments(0)
	if err != nil {
		t.Fatalf("Compartments: %v", err)
	}
	if !slices.Equal(b.Edges, []float64{80, 130, 180, 240}) {
		t.Errorf("Edges = %v", b.Edges)
	}
	if _, err := c.Compartments(1); err == nil {
		t.Error("Compartments(1) on one-column cabinet succeeded")
	}
}

func TestEvenShelves(t *testing.T) {
	if got := EvenShelves(80, 240, 4); !slices.Equal(got, []float64{120, 160, 200}) {
		t.Errorf("EvenShelves(4) = %v", got)
	}
	if got := EvenShelves(80, 240, 1); len(got) != 0 {
		t.Errorf("EvenShelves(1) = %v, want none", got)
	}
	if got := EvenShelves(80, 240, 0); len(got) != 0 {
		t.Errorf("EvenShelves(0) = %v, want none", got)
	}
}
