package integrators

import (
	"math"
	"testing"

	"github.com/san-kum/sirsim/internal/dynamo"
)

func TestRK4Accuracy(t *testing.T) {
	dyn := &harmonicOscillator{}
	integ := NewRK4()

	x := dynamo.State{1.0, 0.0}
	dt := 0.01
	steps := 100

	for i := 0; i < steps; i++ {
		x = integ.Step(dyn, x, float64(i)*dt, dt)
	}

	expectedX := math.Cos(float64(steps) * dt)
	expectedV := -math.Sin(float64(steps) * dt)

	if math.Abs(x[0]-expectedX) > 1e-4 {
		t.Errorf("position error too large: got %.6f, expected %.6f", x[0], expectedX)
	}

	if math.Abs(x[1]-expectedV) > 1e-4 {
		t.Errorf("velocity error too large: got %.6f, expected %.6f", x[1], expectedV)
	}
}

func TestEulerFirstOrder(t *testing.T) {
	dyn := &decay{rate: 1}
	x := NewEuler().Step(dyn, dynamo.State{1.0}, 0, 0.1)

	if math.Abs(x[0]-0.9) > 1e-15 {
		t.Errorf("euler step = %v, want 0.9", x[0])
	}
}

func TestRegistry(t *testing.T) {
	for _, name := range []string{"euler", "rk4", "rk45"} {
		integ, err := Get(name)
		if err != nil {
			t.Errorf("Get(%q) failed: %v", name, err)
			continue
		}
		if integ == nil {
			t.Errorf("Get(%q) returned nil", name)
		}
	}

	if _, ok := mustGet(t, "rk45").(dynamo.AdaptiveIntegrator); !ok {
		t.Error("rk45 should be adaptive")
	}

	if _, err := Get("leapfrog"); err == nil {
		t.Error("expected error for unknown integrator")
	}

	if names := Names(); len(names) != 3 || names[0] != "euler" {
		t.Errorf("unexpected names %v", names)
	}
}

func mustGet(t *testing.T, name string) dynamo.Integrator {
	t.Helper()
	integ, err := Get(name)
	if err != nil {
		t.Fatalf("Get(%q): %v", name, err)
	}
	return integ
}
