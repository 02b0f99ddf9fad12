package analysis

import (
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/san-kum/sirsim/internal/dynamo"
	"github.com/san-kum/sirsim/internal/models"
	"github.com/san-kum/sirsim/internal/sim"
)

func sampleTrajectory() *sim.Trajectory {
	return &sim.Trajectory{
		Times: []float64{0, 1, 2, 3},
		States: []dynamo.State{
			{1.0, 0.0, 0.0},
			{0.7, 0.1, 0.2},
			{0.4, 0.3, 0.3},
			{0.3, 0.6, 0.1},
		},
	}
}

func TestSummarize(t *testing.T) {
	sum := Summarize(sampleTrajectory(), models.Params{N: 1, B: 0.3, K: 0.1})

	if math.Abs(sum.R0-3) > 1e-12 {
		t.Errorf("R0 = %v, want 3", sum.R0)
	}
	if math.Abs(sum.HerdThreshold-2.0/3.0) > 1e-12 {
		t.Errorf("herd threshold = %v, want 2/3", sum.HerdThreshold)
	}
	if sum.PeakInfected != 0.3 || sum.PeakDay != 2 {
		t.Errorf("peak = %v on %v, want 0.3 on 2", sum.PeakInfected, sum.PeakDay)
	}
	if math.Abs(sum.AttackRate-0.7) > 1e-12 {
		t.Errorf("attack rate = %v, want 0.7", sum.AttackRate)
	}
	if sum.FinalRecovered != 0.6 {
		t.Errorf("final recovered = %v, want 0.6", sum.FinalRecovered)
	}
	if sum.MassDrift > 1e-12 {
		t.Errorf("unexpected mass drift %e", sum.MassDrift)
	}
	if sum.Samples != 4 {
		t.Errorf("samples = %d, want 4", sum.Samples)
	}
}

func TestSummarizeSubcritical(t *testing.T) {
	sum := Summarize(sampleTrajectory(), models.Params{N: 1, B: 0.1, K: 0.2})
	if sum.HerdThreshold != 0 {
		t.Errorf("herd threshold for R0<1 = %v, want 0", sum.HerdThreshold)
	}
}

func TestSummaryJSONUnboundedR0(t *testing.T) {
	sum := Summarize(sampleTrajectory(), models.Params{N: 1, B: 0.3, K: 0})
	data, err := json.Marshal(sum)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"r0":null`) {
		t.Errorf("expected null r0, got %s", data)
	}
	if !strings.Contains(string(data), `"peak_day":2`) {
		t.Errorf("expected peak_day field, got %s", data)
	}
}

func TestPhasePortrait(t *testing.T) {
	p, err := PhasePortrait(sampleTrajectory(), models.Susceptible, models.Infected)
	if err != nil {
		t.Fatal(err)
	}
	if len(p.Points) != 4 {
		t.Fatalf("expected 4 points, got %d", len(p.Points))
	}
	if p.Points[2].X != 0.4 || p.Points[2].Y != 0.3 {
		t.Errorf("unexpected point %v", p.Points[2])
	}

	if _, err := PhasePortrait(sampleTrajectory(), 0, 3); err == nil {
		t.Error("expected error for out of range axis")
	}
	if _, err := PhasePortrait(&sim.Trajectory{}, 0, 1); err == nil {
		t.Error("expected error for empty trajectory")
	}
}

func TestPhasePortraitToASCII(t *testing.T) {
	p, _ := PhasePortrait(sampleTrajectory(), models.Susceptible, models.Infected)
	out := PhasePortraitToASCII(p, 40, 10)

	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	if len(lines) != 10 {
		t.Fatalf("expected 10 rows, got %d", len(lines))
	}
	if strings.Count(out, "•") == 0 {
		t.Error("expected plotted points")
	}
	if PhasePortraitToASCII(nil, 40, 10) != "" {
		t.Error("expected empty output for nil portrait")
	}
}
