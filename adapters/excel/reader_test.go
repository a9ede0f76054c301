package excel

import (
	"os"
	"path/filepath"
	"testing"

	"gotost/internal/errors"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	return path
}

func TestReadCSV(t *testing.T) {
	path := writeCSV(t, "condition,score\ncontrol,7.5\ncontrol,8.0\ncourse,6.5\ncourse,7.0\n")

	ds, err := NewReader(path).Read()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(ds.Headers) != 2 || ds.Headers[0] != "condition" || ds.Headers[1] != "score" {
		t.Fatalf("unexpected headers: %v", ds.Headers)
	}
	if len(ds.Rows) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(ds.Rows))
	}
}

func TestNumericColumn(t *testing.T) {
	path := writeCSV(t, "score,note\n1.5,ok\n2.5,\n,skipped\n3.5,ok\n")

	ds, err := NewReader(path).Read()
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	vals, err := ds.NumericColumn("score")
	if err != nil {
		t.Fatalf("numeric column: %v", err)
	}
	if len(vals) != 3 {
		t.Fatalf("expected 3 values (blank skipped), got %d: %v", len(vals), vals)
	}

	if _, err := ds.NumericColumn("note"); err == nil {
		t.Fatal("expected error for non-numeric column")
	}
	if _, err := ds.NumericColumn("missing"); !errors.IsCode(err, errors.CodeDatasetError) {
		t.Fatalf("expected dataset error for missing column, got %v", err)
	}
}

func TestSplitGroups(t *testing.T) {
	path := writeCSV(t, "condition,score\ncontrol,7.5\ncontrol,8.0\ncourse,6.5\ncourse,7.0\ncourse,\n")

	ds, err := NewReader(path).Read()
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	groups, err := ds.SplitGroups("score", "condition")
	if err != nil {
		t.Fatalf("split: %v", err)
	}
	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}
	if len(groups["control"]) != 2 || len(groups["course"]) != 2 {
		t.Fatalf("unexpected group sizes: control=%d course=%d", len(groups["control"]), len(groups["course"]))
	}

	labels := GroupLabels(groups)
	if labels[0] != "control" || labels[1] != "course" {
		t.Fatalf("expected sorted labels, got %v", labels)
	}
}

func TestMissingFile(t *testing.T) {
	_, err := NewReader(filepath.Join(t.TempDir(), "nope.csv")).Read()
	if !errors.IsCode(err, errors.CodeDatasetError) {
		t.Fatalf("expected dataset error, got %v", err)
	}
}
