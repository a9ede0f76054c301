package power

import (
	"math"
	"testing"

	"gotost/internal/errors"
)

// The classic benchmark: two groups of 64 have roughly 80% power for
// d = 0.5 at one-sided alpha = 0.025.
func TestDetectableEffectBenchmark(t *testing.T) {
	d, err := DetectableEffect(64, 0.025, 0.80, TwoSample)
	if err != nil {
		t.Fatalf("detectable effect: %v", err)
	}
	if math.Abs(d-0.5) > 0.02 {
		t.Fatalf("expected d near 0.5 for n=64 per group at 80%% power, got %.4f", d)
	}
}

func TestDetectableEffectMonotoneInN(t *testing.T) {
	prev := math.Inf(1)
	for _, n := range []int{10, 25, 50, 100, 500} {
		d, err := DetectableEffect(n, 0.05, 0.80, TwoSample)
		if err != nil {
			t.Fatalf("n=%d: %v", n, err)
		}
		if d >= prev {
			t.Fatalf("n=%d: detectable effect %.4f did not shrink from %.4f", n, d, prev)
		}
		prev = d
	}
}

func TestDetectableEffectMonotoneInPower(t *testing.T) {
	prev := 0.0
	for _, p := range []float64{0.33, 0.5, 0.8, 0.9, 0.95} {
		d, err := DetectableEffect(50, 0.05, p, OneSample)
		if err != nil {
			t.Fatalf("power=%g: %v", p, err)
		}
		if d <= prev {
			t.Fatalf("power=%g: detectable effect %.4f did not grow from %.4f", p, d, prev)
		}
		prev = d
	}
}

func TestDetectableEffectValidation(t *testing.T) {
	cases := []struct {
		n            int
		alpha, power float64
		design       Design
	}{
		{1, 0.05, 0.8, TwoSample},
		{50, 0, 0.8, TwoSample},
		{50, 0.05, 1, TwoSample},
		{50, 0.05, 0.8, Design("paired")},
	}
	for i, c := range cases {
		_, err := DetectableEffect(c.n, c.alpha, c.power, c.design)
		if !errors.IsCode(err, errors.CodeInvalidInput) {
			t.Fatalf("case %d: expected invalid input, got %v", i, err)
		}
	}
}
