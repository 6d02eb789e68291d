// Package loader reads the score lookup table produced by the offline model
// run. Any parse problem is a fatal load failure: the service cannot answer
// queries without a complete table.
package loader

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"oppscore_backend/internal/scores/domain"
)

// columns is the required CSV header, matched by name so column order in the
// export does not matter.
var columns = []string{
	"state",
	"corp_type",
	"emp_size",
	"score",
	"confidence",
	"establishments",
	"employees",
	"avg_salary_thousands",
}

// LoadFile reads the lookup table from a local CSV file. A missing file is
// reported distinctly from a malformed one.
func LoadFile(path string) ([]domain.ScoreRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("lookup table not found at %s: run the model export first", path)
		}
		return nil, fmt.Errorf("open lookup table %s: %w", path, err)
	}
	defer func() {
		_ = f.Close()
	}()

	rows, err := LoadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("lookup table %s: %w", path, err)
	}
	return rows, nil
}

// LoadCSV parses lookup table rows from CSV. The header row is validated and
// every data row must carry all eight typed fields; the first malformed row
// aborts the load with its line number.
func LoadCSV(r io.Reader) ([]domain.ScoreRecord, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("empty table: missing header row")
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	fieldIdx, err := mapHeader(header)
	if err != nil {
		return nil, err
	}

	var rows []domain.ScoreRecord
	line := 1
	for {
		fields, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		record, err := parseRow(fields, fieldIdx)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		rows = append(rows, record)
	}

	return rows, nil
}

func mapHeader(header []string) (map[string]int, error) {
	fieldIdx := make(map[string]int, len(header))
	for i, name := range header {
		fieldIdx[strings.TrimSpace(name)] = i
	}
	for _, col := range columns {
		if _, ok := fieldIdx[col]; !ok {
			return nil, fmt.Errorf("header missing required column %q", col)
		}
	}
	return fieldIdx, nil
}

func parseRow(fields []string, fieldIdx map[string]int) (domain.ScoreRecord, error) {
	get := func(col string) (string, error) {
		idx := fieldIdx[col]
		if idx >= len(fields) {
			return "", fmt.Errorf("missing value for column %q", col)
		}
		return fields[idx], nil
	}

	var record domain.ScoreRecord
	var err error

	if record.State, err = get("state"); err != nil {
		return record, err
	}
	if strings.TrimSpace(record.State) == "" {
		return record, fmt.Errorf("state must not be empty")
	}
	if record.CorpType, err = get("corp_type"); err != nil {
		return record, err
	}
	if record.EmpSize, err = get("emp_size"); err != nil {
		return record, err
	}
	if record.Confidence, err = get("confidence"); err != nil {
		return record, err
	}

	if record.Score, err = parseFloat(fields, fieldIdx, "score"); err != nil {
		return record, err
	}
	if record.AvgSalaryThousands, err = parseFloat(fields, fieldIdx, "avg_salary_thousands"); err != nil {
		return record, err
	}
	if record.Establishments, err = parseCount(fields, fieldIdx, "establishments"); err != nil {
		return record, err
	}
	if record.Employees, err = parseCount(fields, fieldIdx, "employees"); err != nil {
		return record, err
	}

	return record, nil
}

func parseFloat(fields []string, fieldIdx map[string]int, col string) (float64, error) {
	idx := fieldIdx[col]
	if idx >= len(fields) {
		return 0, fmt.Errorf("missing value for column %q", col)
	}
	value, err := strconv.ParseFloat(strings.TrimSpace(fields[idx]), 64)
	if err != nil {
		return 0, fmt.Errorf("column %q: invalid number %q", col, fields[idx])
	}
	return value, nil
}

func parseCount(fields []string, fieldIdx map[string]int, col string) (int, error) {
	idx := fieldIdx[col]
	if idx >= len(fields) {
		return 0, fmt.Errorf("missing value for column %q", col)
	}
	value, err := strconv.Atoi(strings.TrimSpace(fields[idx]))
	if err != nil {
		return 0, fmt.Errorf("column %q: invalid count %q", col, fields[idx])
	}
	if value < 0 {
		return 0, fmt.Errorf("column %q: count must not be negative, got %d", col, value)
	}
	return value, nil
}
