package analysis

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gotost/adapters/excel"
	"gotost/domain/core"
	"gotost/domain/tost"
	"gotost/internal"
	"gotost/internal/errors"
	"gotost/internal/eqplot"
	"gotost/internal/report"
)

// Request defines one complete equivalence analysis over a dataset file.
// When Group is empty the outcome column is tested one-sample against Mu;
// otherwise the grouping column must yield exactly two groups for a Welch
// two-sample test.
type Request struct {
	Title    string
	DataFile string
	Outcome  string
	Group    string
	Mu       float64

	Bounds tost.EquivalenceBounds
	Config tost.TestConfig

	// Artifact options
	OutputDir string // empty disables file output
	Plot      bool   // write an equivalence plot (SVG)
	HTML      bool   // write an HTML rendering of the report
}

// Result is one completed analysis with its artifacts
type Result struct {
	ID      core.AnalysisID  `json:"id"`
	Title   string           `json:"title"`
	TOST    *tost.TOSTResult `json:"tost"`
	Report  string           `json:"report"`
	Files   []string         `json:"files,omitempty"`
	Runtime time.Duration    `json:"-"`
}

var logger = internal.DefaultLogger

// Run reads the dataset, reduces it to summaries, runs the equivalence test
// and writes the requested artifacts.
func Run(ctx context.Context, req Request) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start := time.Now()

	ds, err := excel.NewReader(req.DataFile).Read()
	if err != nil {
		return nil, err
	}

	var (
		res  *tost.TOSTResult
		meta report.Meta
	)
	if req.Group == "" {
		res, meta, err = runOneSample(ds, req)
	} else {
		res, meta, err = runTwoSample(ds, req)
	}
	if err != nil {
		return nil, err
	}
	meta.Title = req.Title
	meta.BoundTag = fmt.Sprintf("[%g, %g] %s", req.Bounds.Low, req.Bounds.High, req.Bounds.Unit)

	result := &Result{
		ID:      core.NewAnalysisID(),
		Title:   req.Title,
		TOST:    res,
		Report:  report.Markdown(res, meta),
		Runtime: time.Since(start),
	}

	if req.OutputDir != "" {
		if err := writeArtifacts(result, req); err != nil {
			return nil, err
		}
	}

	logger.Info("analysis %s finished: %s (%.1fms)", result.ID, res.Verdict,
		float64(result.Runtime.Nanoseconds())/1e6)
	return result, nil
}

func runOneSample(ds *excel.Dataset, req Request) (*tost.TOSTResult, report.Meta, error) {
	values, err := ds.NumericColumn(req.Outcome)
	if err != nil {
		return nil, report.Meta{}, err
	}
	summary, err := tost.Describe(values)
	if err != nil {
		return nil, report.Meta{}, err
	}
	res, err := tost.OneSample(summary, req.Mu, req.Bounds, req.Config)
	if err != nil {
		return nil, report.Meta{}, err
	}
	return res, report.Meta{Design: "one-sample", Outcome: req.Outcome}, nil
}

func runTwoSample(ds *excel.Dataset, req Request) (*tost.TOSTResult, report.Meta, error) {
	groups, err := ds.SplitGroups(req.Outcome, req.Group)
	if err != nil {
		return nil, report.Meta{}, err
	}
	labels := excel.GroupLabels(groups)
	if len(labels) != 2 {
		return nil, report.Meta{}, errors.DatasetError(
			fmt.Sprintf("grouping column %q must yield exactly 2 groups, got %d (%v)", req.Group, len(labels), labels))
	}

	s1, err := tost.Describe(groups[labels[0]])
	if err != nil {
		return nil, report.Meta{}, errors.Wrapf(err, "group %q", labels[0])
	}
	s2, err := tost.Describe(groups[labels[1]])
	if err != nil {
		return nil, report.Meta{}, errors.Wrapf(err, "group %q", labels[1])
	}

	res, err := tost.TwoSample(s1, s2, req.Bounds, req.Config)
	if err != nil {
		return nil, report.Meta{}, err
	}
	return res, report.Meta{Design: "two-sample (Welch)", Outcome: req.Outcome, Groups: labels}, nil
}

// writeArtifacts stores the report (and optional renderings) under
// OutputDir/<analysis-id>/.
func writeArtifacts(result *Result, req Request) error {
	dir := filepath.Join(req.OutputDir, result.ID.String())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrap(err, "creating output directory")
	}

	mdPath := filepath.Join(dir, "report.md")
	if err := os.WriteFile(mdPath, []byte(result.Report), 0o644); err != nil {
		return errors.Wrap(err, "writing report")
	}
	result.Files = append(result.Files, mdPath)

	if req.HTML {
		htmlPath := filepath.Join(dir, "report.html")
		if err := os.WriteFile(htmlPath, report.HTML(result.Report), 0o644); err != nil {
			return errors.Wrap(err, "writing HTML report")
		}
		result.Files = append(result.Files, htmlPath)
	}

	if req.Plot {
		plotPath := filepath.Join(dir, "equivalence.svg")
		if err := eqplot.Save(result.TOST, result.Title, plotPath); err != nil {
			return err
		}
		result.Files = append(result.Files, plotPath)
	}
	return nil
}
