// Package dataset reads posterior draws files.
//
// A draws file is wide CSV: a header row naming columns, then one row
// per posterior draw. Fitted-value columns form the draw matrix in file
// order; an optional residual column (named by the caller, typically
// "sigma") supplies one residual-scale draw per row and is excluded from
// the matrix.
//
// The reader performs file-shape checks only. Statistical validation
// (probability domains, positivity, degenerate variance) belongs to the
// draws and bayesr2 packages.
package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
)

// File holds the parsed contents of a draws CSV file.
type File struct {
	// Columns names the fitted-value columns in file order.
	Columns []string

	// Fitted is the S×N fitted-value matrix, one row per draw.
	Fitted [][]float64

	// Residual holds the residual column values, one per draw.
	// Empty when no residual column was requested.
	Residual []float64
}

// Read parses the draws file at path. residualColumn names the residual
// column to split out, or "" when the file has none.
func Read(path, residualColumn string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening draws file: %w", err)
	}
	defer f.Close()

	parsed, err := Parse(f, residualColumn)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return parsed, nil
}

// Parse reads a draws file from r. See Read.
func Parse(r io.Reader, residualColumn string) (*File, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("empty draws file")
	}
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}

	residualIdx := -1
	columns := make([]string, 0, len(header))
	for i, name := range header {
		if name == residualColumn && residualColumn != "" {
			if residualIdx != -1 {
				return nil, fmt.Errorf("residual column %q appears twice", residualColumn)
			}
			residualIdx = i
			continue
		}
		columns = append(columns, name)
	}
	if residualColumn != "" && residualIdx == -1 {
		return nil, fmt.Errorf("residual column %q not found (columns: %v)", residualColumn, header)
	}
	if len(columns) == 0 {
		return nil, fmt.Errorf("no fitted-value columns")
	}

	out := &File{Columns: columns}
	for line := 2; ; line++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// csv.Reader enforces a rectangular file once the header
			// fixes the field count.
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		row := make([]float64, 0, len(columns))
		for i, cell := range record {
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d, column %q: not a number: %q", line, header[i], cell)
			}
			if i == residualIdx {
				out.Residual = append(out.Residual, v)
				continue
			}
			row = append(row, v)
		}
		out.Fitted = append(out.Fitted, row)
	}

	if len(out.Fitted) == 0 {
		return nil, fmt.Errorf("draws file has a header but no draws")
	}
	return out, nil
}
