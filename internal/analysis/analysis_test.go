package analysis

import (
	"math"
	"testing"

	"github.com/san-kum/unitrack/internal/rover"
)

func TestCandidateTrace(t *testing.T) {
	errs := []rover.TrackingError{
		{X: 0, Y: 0, Heading: 0},
		{X: 0.3, Y: 0.4, Heading: 0},
		{X: 0, Y: 0, Heading: math.Pi / 2},
	}
	want := []float64{0, 0.125, 1.0}

	trace := CandidateTrace(errs)
	if len(trace) != len(want) {
		t.Fatalf("trace length = %d, want %d", len(trace), len(want))
	}
	for i := range want {
		if math.Abs(trace[i]-want[i]) > 1e-12 {
			t.Errorf("trace[%d] = %v, want %v", i, trace[i], want[i])
		}
	}
}

func TestCandidateShrinksOnConvergentHistory(t *testing.T) {
	errs := make([]rover.TrackingError, 200)
	for i := range errs {
		decay := math.Exp(-0.1 * float64(i))
		errs[i] = rover.TrackingError{X: 0.5 * decay, Y: 0.2 * decay, Heading: 0.3 * decay}
	}

	ok, at := NonIncreasing(CandidateTrace(errs), 1e-12)
	if !ok {
		t.Fatalf("candidate rose at step %d on a shrinking error history", at)
	}
}

func TestNonIncreasing(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		tol    float64
		ok     bool
		at     int
	}{
		{"strictly falling", []float64{3, 2, 1}, 0, true, -1},
		{"flat", []float64{1, 1, 1}, 0, true, -1},
		{"rise flagged", []float64{1.0, 0.8, 0.9}, 1e-9, false, 2},
		{"rise within tolerance", []float64{1.0, 0.8, 0.8 + 1e-12}, 1e-9, true, -1},
		{"empty", nil, 0, true, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, at := NonIncreasing(tt.values, tt.tol)
			if ok != tt.ok || at != tt.at {
				t.Errorf("NonIncreasing(%v, %g) = (%v, %d), want (%v, %d)",
					tt.values, tt.tol, ok, at, tt.ok, tt.at)
			}
		})
	}
}

func TestConvergenceRateRecoversDecay(t *testing.T) {
	times := make([]float64, 500)
	dists := make([]float64, 500)
	for i := range times {
		times[i] = float64(i) * 0.01
		dists[i] = 2.0 * math.Exp(-3.0*times[i])
	}

	rate := ConvergenceRate(times, dists)
	if math.Abs(rate-3.0) > 1e-9 {
		t.Errorf("rate = %v, want 3.0", rate)
	}
}

func TestConvergenceRateSkipsNonPositive(t *testing.T) {
	times := []float64{0, 1, 2, 3, 4}
	dists := []float64{1, 0, math.Exp(-2), -1, math.Exp(-4)}

	rate := ConvergenceRate(times, dists)
	if math.Abs(rate-1.0) > 1e-9 {
		t.Errorf("rate = %v, want 1.0", rate)
	}
}

func TestConvergenceRateDegenerate(t *testing.T) {
	if r := ConvergenceRate([]float64{1, 2}, []float64{1}); r != 0 {
		t.Errorf("mismatched lengths: rate = %v, want 0", r)
	}
	if r := ConvergenceRate([]float64{1, 2}, []float64{0, 0}); r != 0 {
		t.Errorf("all zero distances: rate = %v, want 0", r)
	}
	if r := ConvergenceRate([]float64{1, 2}, []float64{0.5, 0}); r != 0 {
		t.Errorf("single usable sample: rate = %v, want 0", r)
	}
}

func TestPowerSpectrumPeak(t *testing.T) {
	const n = 256
	data := make([]float64, n)
	for i := range data {
		data[i] = math.Sin(2 * math.Pi * float64(i) / 32)
	}

	ps := PowerSpectrum(data)
	if len(ps) != n/2 {
		t.Fatalf("spectrum length = %d, want %d", len(ps), n/2)
	}

	kBest := 0
	for k := range ps {
		if ps[k] > ps[kBest] {
			kBest = k
		}
	}
	if kBest != n/32 {
		t.Errorf("peak at bin %d, want %d", kBest, n/32)
	}
}

func TestPowerSpectrumPadsOddLengths(t *testing.T) {
	ps := PowerSpectrum(make([]float64, 100))
	if len(ps) != 64 {
		t.Errorf("spectrum length = %d, want 64", len(ps))
	}
}

func TestDominantPeriod(t *testing.T) {
	const n = 256
	const dt = 0.01
	data := make([]float64, n)
	for i := range data {
		data[i] = 0.7 + math.Sin(2*math.Pi*float64(i)/32)
	}

	period := DominantPeriod(data, dt)
	if math.Abs(period-32*dt) > 1e-12 {
		t.Errorf("period = %v, want %v", period, 32*dt)
	}

	if p := DominantPeriod([]float64{1, 2}, dt); p != 0 {
		t.Errorf("short series: period = %v, want 0", p)
	}
	if p := DominantPeriod(make([]float64, 64), dt); p != 0 {
		t.Errorf("flat series: period = %v, want 0", p)
	}
}
