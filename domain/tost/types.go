package tost

// SampleSummary holds one group's descriptive statistics. It is the only
// sample representation the tester consumes; callers reduce raw observations
// to a summary (see Describe) before testing.
type SampleSummary struct {
	Mean float64 `json:"mean"`
	SD   float64 `json:"sd"`
	N    int     `json:"n"`
}

// BoundUnit tags how equivalence bounds are expressed
type BoundUnit string

const (
	// UnitRaw means bounds are in the outcome's own units
	UnitRaw BoundUnit = "raw"
	// UnitSMD means bounds are standardized mean differences (Cohen's d scale)
	UnitSMD BoundUnit = "smd"
)

// EquivalenceBounds is the region considered practically equivalent to the
// reference. Invariant: Low < High.
//
// For the one-sample test, raw bounds are absolute target values and are
// converted internally to offsets from mu; SMD bounds are multiples of the
// sample standard deviation. For the two-sample test, raw bounds are mean
// differences and SMD bounds are converted through the pooled SD.
type EquivalenceBounds struct {
	Low  float64   `json:"low"`
	High float64   `json:"high"`
	Unit BoundUnit `json:"unit"`
}

// RawBounds is shorthand for bounds in outcome units
func RawBounds(low, high float64) EquivalenceBounds {
	return EquivalenceBounds{Low: low, High: high, Unit: UnitRaw}
}

// SMDBounds is shorthand for standardized bounds
func SMDBounds(low, high float64) EquivalenceBounds {
	return EquivalenceBounds{Low: low, High: high, Unit: UnitSMD}
}

// SymmetricSMD builds ±d standardized bounds from an effect-size magnitude,
// e.g. one obtained from a power-based smallest-effect-of-interest helper.
func SymmetricSMD(d float64) EquivalenceBounds {
	if d < 0 {
		d = -d
	}
	return SMDBounds(-d, d)
}

// Mode selects the hypothesis family being tested
type Mode string

const (
	// ModeEquivalence tests H0 "effect outside bounds" against H1 "effect
	// within bounds"; both one-sided nulls must be rejected.
	ModeEquivalence Mode = "equivalence"
	// ModeMinimalEffect flips the tails: H0 "effect within bounds" against
	// H1 "effect beyond at least one bound".
	ModeMinimalEffect Mode = "minimal_effect"
)

// TestConfig carries the caller's test parameters
type TestConfig struct {
	Alpha float64 `json:"alpha"` // significance level, 0 < alpha < 1
	Mode  Mode    `json:"mode"`
	// Standardized requests a Hedges' g estimate and interval alongside the
	// raw-scale result (two-sample and one-sample).
	Standardized bool `json:"standardized"`
}

// DefaultConfig returns an equivalence test at alpha = 0.05
func DefaultConfig() TestConfig {
	return TestConfig{Alpha: 0.05, Mode: ModeEquivalence}
}

// Verdict is the overall decision of a TOST run
type Verdict string

const (
	VerdictEquivalent    Verdict = "equivalent"
	VerdictNotEquivalent Verdict = "not_equivalent"
	// Minimal-effect verdicts: the effect is (not) shown to exceed the bounds
	VerdictRelevant    Verdict = "relevant"
	VerdictNotRelevant Verdict = "not_relevant"
)

// Interval is a closed confidence interval
type Interval struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
}

// Width returns the interval width
func (iv Interval) Width() float64 {
	return iv.Upper - iv.Lower
}

// Within reports whether the interval lies strictly inside (low, high)
func (iv Interval) Within(low, high float64) bool {
	return iv.Lower > low && iv.Upper < high
}

// EffectEstimate is a standardized effect size with its interval.
// G carries the small-sample (Hedges) bias correction; CI is a delta-method
// normal approximation at the same (1 - 2*alpha) level as the raw interval.
type EffectEstimate struct {
	G  float64  `json:"g"`
	CI Interval `json:"ci"`
}

// TOSTResult is the complete output of one TOST run. It is a value object:
// produced fresh per call and never mutated afterward.
//
// TLower/PLower belong to the test at the lower bound and TUpper/PUpper to
// the test at the upper bound. In equivalence mode PLower is the upper-tail
// probability and PUpper the lower-tail probability; minimal-effect mode
// uses the opposite tails.
type TOSTResult struct {
	TLower float64 `json:"t_lower"`
	PLower float64 `json:"p_lower"`
	TUpper float64 `json:"t_upper"`
	PUpper float64 `json:"p_upper"`

	Verdict Verdict `json:"verdict"`

	// Diff is the raw mean difference (two-sample) or the deviation from mu
	// (one-sample). CI is its (1 - 2*alpha) confidence interval; two
	// one-sided tests at alpha correspond to a (1 - 2*alpha) two-sided
	// interval.
	Diff float64  `json:"diff"`
	CI   Interval `json:"ci"`

	// AbsoluteCI restates the one-sample interval on the original scale
	// (mu + lower, mu + upper); nil for two-sample results.
	AbsoluteCI *Interval `json:"absolute_ci,omitempty"`

	SE    float64 `json:"se"`
	DF    float64 `json:"df"`
	Alpha float64 `json:"alpha"`
	Mode  Mode    `json:"mode"`

	// Bounds are the equivalence bounds after conversion to the Diff scale
	// (offsets from mu for one-sample, raw mean-difference units otherwise).
	Bounds Interval `json:"bounds"`

	// Standardized is present when TestConfig.Standardized was set
	Standardized *EffectEstimate `json:"standardized,omitempty"`
}
