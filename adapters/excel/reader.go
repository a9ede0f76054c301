package excel

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"gotost/internal/errors"
)

// Reader handles reading Excel and CSV files into a tabular Dataset
type Reader struct {
	filePath string
	fileType string // "xlsx" or "csv"
}

// NewReader creates a reader that handles both Excel and CSV files
func NewReader(filePath string) *Reader {
	ext := strings.ToLower(filepath.Ext(filePath))
	fileType := "xlsx"
	if ext == ".csv" {
		fileType = "csv"
	}
	return &Reader{filePath: filePath, fileType: fileType}
}

// Read loads the file into a Dataset
func (r *Reader) Read() (*Dataset, error) {
	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, errors.DatasetError(fmt.Sprintf("%s file not found: %s", strings.ToUpper(r.fileType), r.filePath))
	}

	switch r.fileType {
	case "csv":
		return r.readCSV()
	case "xlsx":
		return r.readExcel()
	default:
		return nil, errors.DatasetError(fmt.Sprintf("unsupported file type: %s", r.fileType))
	}
}

// readExcel reads Sheet1 of an Excel workbook
func (r *Reader) readExcel() (*Dataset, error) {
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open Excel file")
	}
	defer f.Close()

	rows, err := f.GetRows("Sheet1")
	if err != nil {
		return nil, errors.Wrap(err, "failed to read Sheet1")
	}
	log.Printf("[Reader] Sheet1 read (%d rows)", len(rows))

	return r.processRows(rows)
}

// readCSV reads a CSV file
func (r *Reader) readCSV() (*Dataset, error) {
	file, err := os.Open(r.filePath)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open CSV file")
	}
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "failed to read CSV file")
	}
	log.Printf("[Reader] CSV file read (%d rows)", len(rows))

	return r.processRows(rows)
}

// processRows converts raw string rows into the Dataset format
func (r *Reader) processRows(rows [][]string) (*Dataset, error) {
	if len(rows) < 2 {
		return nil, errors.DatasetError("file must have at least a header row and one data row")
	}

	headerRow := rows[0]
	headers := make([]string, len(headerRow))
	for i, header := range headerRow {
		headers[i] = strings.TrimSpace(header)
	}

	var dataRows []RawRow
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		rowData := make(RawRow)
		for j, cell := range row {
			if j < len(headers) {
				rowData[headers[j]] = strings.TrimSpace(cell)
			}
		}
		dataRows = append(dataRows, rowData)
	}

	log.Printf("[Reader] %s file processed (%d columns, %d rows)",
		strings.ToUpper(r.fileType), len(headers), len(dataRows))

	return &Dataset{Headers: headers, Rows: dataRows}, nil
}

// HasColumn reports whether the dataset carries the named column
func (d *Dataset) HasColumn(name string) bool {
	for _, h := range d.Headers {
		if h == name {
			return true
		}
	}
	return false
}

// NumericColumn extracts a numeric outcome column. Blank cells are skipped;
// a non-empty cell that does not parse as a number is an error rather than
// a silent drop.
func (d *Dataset) NumericColumn(name string) ([]float64, error) {
	if !d.HasColumn(name) {
		return nil, errors.DatasetError(fmt.Sprintf("column %q not found", name))
	}

	values := make([]float64, 0, len(d.Rows))
	for i, row := range d.Rows {
		cell := row[name]
		if cell == "" {
			continue
		}
		v, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			return nil, errors.DatasetError(fmt.Sprintf("column %q row %d: %q is not numeric", name, i+1, cell))
		}
		values = append(values, v)
	}

	if len(values) == 0 {
		return nil, errors.DatasetError(fmt.Sprintf("column %q has no numeric values", name))
	}
	return values, nil
}

// SplitGroups splits a numeric outcome column by the values of a grouping
// column. Rows with a blank group label or blank outcome are skipped.
func (d *Dataset) SplitGroups(outcome, group string) (map[string][]float64, error) {
	if !d.HasColumn(outcome) {
		return nil, errors.DatasetError(fmt.Sprintf("outcome column %q not found", outcome))
	}
	if !d.HasColumn(group) {
		return nil, errors.DatasetError(fmt.Sprintf("group column %q not found", group))
	}

	groups := make(map[string][]float64)
	for i, row := range d.Rows {
		label := row[group]
		cell := row[outcome]
		if label == "" || cell == "" {
			continue
		}
		v, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			return nil, errors.DatasetError(fmt.Sprintf("column %q row %d: %q is not numeric", outcome, i+1, cell))
		}
		groups[label] = append(groups[label], v)
	}

	if len(groups) == 0 {
		return nil, errors.DatasetError(fmt.Sprintf("no usable rows for outcome %q grouped by %q", outcome, group))
	}
	return groups, nil
}

// GroupLabels returns the group names in stable sorted order
func GroupLabels(groups map[string][]float64) []string {
	labels := make([]string, 0, len(groups))
	for label := range groups {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}
