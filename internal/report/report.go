package report

import (
	"fmt"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"gotost/domain/tost"
)

// Meta labels a report with the analysis it describes
type Meta struct {
	Title    string
	Design   string // e.g. "one-sample", "two-sample (Welch)"
	Outcome  string
	Groups   []string
	BoundTag string // original bound expression, e.g. "[-10, 10] raw"
}

// Markdown renders a TOSTResult into a human-readable markdown report
func Markdown(res *tost.TOSTResult, meta Meta) string {
	var b strings.Builder

	title := meta.Title
	if title == "" {
		title = "Equivalence test"
	}
	fmt.Fprintf(&b, "# %s\n\n", title)

	if meta.Design != "" {
		fmt.Fprintf(&b, "Design: %s", meta.Design)
		if meta.Outcome != "" {
			fmt.Fprintf(&b, " on `%s`", meta.Outcome)
		}
		if len(meta.Groups) == 2 {
			fmt.Fprintf(&b, " (%s vs %s)", meta.Groups[0], meta.Groups[1])
		}
		b.WriteString("\n\n")
	}

	fmt.Fprintf(&b, "**%s**\n\n", verdictSentence(res))

	level := (1 - 2*res.Alpha) * 100
	fmt.Fprintf(&b, "Mean difference %.4f, %.0f%% CI [%.4f, %.4f], against bounds [%.4f, %.4f]",
		res.Diff, level, res.CI.Lower, res.CI.Upper, res.Bounds.Lower, res.Bounds.Upper)
	if meta.BoundTag != "" {
		fmt.Fprintf(&b, " (given as %s)", meta.BoundTag)
	}
	b.WriteString(".\n\n")

	b.WriteString("| test | t | p |\n|---|---|---|\n")
	fmt.Fprintf(&b, "| lower bound | %.4f | %.4g |\n", res.TLower, res.PLower)
	fmt.Fprintf(&b, "| upper bound | %.4f | %.4g |\n\n", res.TUpper, res.PUpper)

	fmt.Fprintf(&b, "df = %.2f, se = %.4f, alpha = %g.\n", res.DF, res.SE, res.Alpha)

	if res.AbsoluteCI != nil {
		fmt.Fprintf(&b, "\nOn the original scale the interval is [%.4f, %.4f].\n",
			res.AbsoluteCI.Lower, res.AbsoluteCI.Upper)
	}
	if res.Standardized != nil {
		fmt.Fprintf(&b, "\nStandardized effect (Hedges' g): %.4f, CI [%.4f, %.4f].\n",
			res.Standardized.G, res.Standardized.CI.Lower, res.Standardized.CI.Upper)
	}

	return b.String()
}

// verdictSentence states the decision the way a results section would
func verdictSentence(res *tost.TOSTResult) string {
	pMax := res.PLower
	if res.PUpper > pMax {
		pMax = res.PUpper
	}
	pMin := res.PLower
	if res.PUpper < pMin {
		pMin = res.PUpper
	}

	switch res.Verdict {
	case tost.VerdictEquivalent:
		return fmt.Sprintf("Equivalence shown: the observed effect is statistically smaller than the bounds (max one-sided p = %.4g < alpha = %g).", pMax, res.Alpha)
	case tost.VerdictNotEquivalent:
		return fmt.Sprintf("Equivalence not shown: at least one one-sided test failed to reject (max one-sided p = %.4g >= alpha = %g).", pMax, res.Alpha)
	case tost.VerdictRelevant:
		return fmt.Sprintf("Minimal effect shown: the observed effect exceeds the bounds (min one-sided p = %.4g < alpha = %g).", pMin, res.Alpha)
	case tost.VerdictNotRelevant:
		return fmt.Sprintf("Minimal effect not shown: the data are compatible with effects inside the bounds (min one-sided p = %.4g >= alpha = %g).", pMin, res.Alpha)
	default:
		return fmt.Sprintf("Verdict: %s.", res.Verdict)
	}
}

// HTML renders a markdown report into a standalone HTML page
func HTML(md string) []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs | parser.Tables)
	renderer := html.NewRenderer(html.RendererOptions{
		Flags: html.CommonFlags | html.CompletePage,
	})
	return markdown.ToHTML([]byte(md), p, renderer)
}
