// Package spreadsheet reads word pairs from uploaded .xlsx and .csv files.
// Column A holds the original text and column B its translation; the first
// row is a header and is skipped.
package spreadsheet
