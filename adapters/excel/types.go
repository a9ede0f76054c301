package excel

// RawRow represents a row of raw tabular data as string key-value pairs
type RawRow map[string]string

// Dataset represents a complete tabular dataset read from Excel or CSV
type Dataset struct {
	Headers []string // Column headers
	Rows    []RawRow // Data rows
}
