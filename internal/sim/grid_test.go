package sim

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/sirsim/internal/dynamo"
)

func TestGridEndpoint(t *testing.T) {
	g, err := NewGrid(0, 140, 140, true)
	if err != nil {
		t.Fatal(err)
	}

	times := g.Times()
	if len(times) != 140 {
		t.Fatalf("expected 140 points, got %d", len(times))
	}
	if times[0] != 0 {
		t.Errorf("first point = %v, want 0", times[0])
	}
	if times[139] != 140 {
		t.Errorf("last point = %v, want 140", times[139])
	}
	if math.Abs(g.Spacing()-140.0/139.0) > 1e-12 {
		t.Errorf("spacing = %v, want 140/139", g.Spacing())
	}
}

func TestGridHalfOpen(t *testing.T) {
	g, err := NewGrid(0, 140, 140, false)
	if err != nil {
		t.Fatal(err)
	}

	if g.Spacing() != 1 {
		t.Errorf("spacing = %v, want 1", g.Spacing())
	}
	if last := g.At(139); last != 139 {
		t.Errorf("last point = %v, want 139", last)
	}
}

func TestGridIncreasing(t *testing.T) {
	g, _ := NewGrid(0, 140, 140, true)
	times := g.Times()
	for i := 1; i < len(times); i++ {
		if times[i] <= times[i-1] {
			t.Fatalf("grid not increasing at %d", i)
		}
	}
}

func TestGridInvalid(t *testing.T) {
	if _, err := NewGrid(0, 140, 0, true); !errors.Is(err, dynamo.ErrEmptyGrid) {
		t.Errorf("expected ErrEmptyGrid, got %v", err)
	}
	if _, err := NewGrid(10, 10, 5, true); err == nil {
		t.Error("expected error for empty interval")
	}
}

func TestGridSinglePoint(t *testing.T) {
	g, _ := NewGrid(0, 140, 1, true)
	if g.At(0) != 0 {
		t.Errorf("single point grid should start at 0, got %v", g.At(0))
	}
}

func TestTrajectoryPrefix(t *testing.T) {
	traj := &Trajectory{
		Times:  []float64{0, 1, 2},
		States: []dynamo.State{{1, 0, 0}, {0.9, 0.05, 0.05}, {0.8, 0.1, 0.1}},
	}

	p, err := traj.Prefix(2)
	if err != nil {
		t.Fatal(err)
	}
	if p.Len() != 2 {
		t.Errorf("prefix length = %d, want 2", p.Len())
	}
	if col := p.Column(1); col[1] != 0.05 {
		t.Errorf("unexpected column %v", col)
	}

	for _, n := range []int{0, 4} {
		if _, err := traj.Prefix(n); err == nil {
			t.Errorf("expected error for prefix %d", n)
		}
	}
}
