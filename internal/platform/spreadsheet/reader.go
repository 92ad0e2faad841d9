package spreadsheet

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ErrUnsupportedFormat is returned for files that are neither .xlsx nor .csv.
var ErrUnsupportedFormat = errors.New("unsupported file format, expected .xlsx or .csv")

// MaxRows bounds how many data rows a single import may contain.
const MaxRows = 5000

// Pair is one usable row.
type Pair struct {
	Row        int // 1-based row number in the file
	Original   string
	Translated string
}

// Result holds the usable rows and the numbers of rows that were skipped
// because a cell was blank.
type Result struct {
	Pairs   []Pair
	Skipped []int
}

// ReadPairs parses r according to the extension of filename.
// Cells are trimmed; rows with a blank original or translation are skipped.
func ReadPairs(r io.Reader, filename string) (*Result, error) {
	var (
		rows [][]string
		err  error
	)

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx", ".xlsm":
		rows, err = readExcel(r)
	case ".csv":
		rows, err = readCSV(r)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filename)
	}
	if err != nil {
		return nil, err
	}

	return collect(rows)
}

func readExcel(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open spreadsheet: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read rows of sheet %q: %w", sheets[0], err)
	}
	return rows, nil
}

func readCSV(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv: %w", err)
	}
	return rows, nil
}

func collect(rows [][]string) (*Result, error) {
	result := &Result{Pairs: make([]Pair, 0, len(rows))}

	for i, row := range rows {
		if i == 0 {
			continue // header
		}
		if i > MaxRows {
			return nil, fmt.Errorf("file has more than %d rows", MaxRows)
		}

		original, translated := cell(row, 0), cell(row, 1)
		if original == "" && translated == "" {
			continue
		}
		if original == "" || translated == "" {
			result.Skipped = append(result.Skipped, i+1)
			continue
		}

		result.Pairs = append(result.Pairs, Pair{Row: i + 1, Original: original, Translated: translated})
	}

	return result, nil
}

func cell(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
