package tost

import (
	"math"
	"testing"

	"gotost/internal/errors"
)

func TestDescribe(t *testing.T) {
	s, err := Describe([]float64{1, 2, 3, 4, 5})
	if err != nil {
		t.Fatalf("describe: %v", err)
	}
	if !aeq(s.Mean, 3) {
		t.Fatalf("expected mean 3, got %g", s.Mean)
	}
	if !aeq(s.SD, math.Sqrt(2.5)) {
		t.Fatalf("expected sample sd %.6f, got %.6f", math.Sqrt(2.5), s.SD)
	}
	if s.N != 5 {
		t.Fatalf("expected n=5, got %d", s.N)
	}
}

func TestDescribeTooFewObservations(t *testing.T) {
	for _, xs := range [][]float64{nil, {}, {1.0}} {
		_, err := Describe(xs)
		if err == nil {
			t.Fatalf("expected error for %d observations", len(xs))
		}
		if !errors.IsCode(err, errors.CodeInvalidInput) {
			t.Fatalf("expected code %s, got %s", errors.CodeInvalidInput, errors.GetCode(err))
		}
	}
}

func TestDescribeFeedsTester(t *testing.T) {
	a := []float64{10.1, 11.3, 9.8, 10.7, 10.2, 11.0, 10.5, 9.9}
	b := []float64{10.0, 10.9, 10.3, 10.6, 9.7, 10.8, 10.4, 10.1}

	sa, err := Describe(a)
	if err != nil {
		t.Fatalf("describe a: %v", err)
	}
	sb, err := Describe(b)
	if err != nil {
		t.Fatalf("describe b: %v", err)
	}

	res, err := TwoSample(sa, sb, RawBounds(-2, 2), DefaultConfig())
	if err != nil {
		t.Fatalf("two-sample: %v", err)
	}
	if res.Verdict != VerdictEquivalent {
		t.Fatalf("expected equivalent for near-identical samples, got %s (CI=[%.3f, %.3f])",
			res.Verdict, res.CI.Lower, res.CI.Upper)
	}
}
