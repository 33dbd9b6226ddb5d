package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Parse tokenizes CSV content, validates every data row, and runs duplicate
// detection against the batch and against existingNames (names already in
// the database). The header row is matched case-insensitively with
// whitespace trimmed; unknown columns are ignored. Data rows are numbered
// from 2 to account for the header, matching what the coach sees in a
// spreadsheet.
//
// Tokenizer failures are collected into ParseErrors rather than aborting:
// one mangled line should not hide the report for the rest of the file.
func Parse(content string, existingNames []string) ParseResult {
	result := ParseResult{}

	// Strict quoting: a mangled quote is reported as a parse error for that
	// row instead of being silently absorbed into a neighboring field.
	r := csv.NewReader(strings.NewReader(content))
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		if err == io.EOF {
			result.ParseErrors = append(result.ParseErrors, "file is empty")
		} else {
			result.ParseErrors = append(result.ParseErrors, fmt.Sprintf("invalid header row: %v", err))
		}
		return result
	}

	colIdx := headerIndex(header)

	rowNumber := 1 // header is row 1
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		rowNumber++
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				result.ParseErrors = append(result.ParseErrors,
					fmt.Sprintf("row %d: %v", rowNumber, parseErr.Err))
				continue
			}
			result.ParseErrors = append(result.ParseErrors, err.Error())
			continue
		}

		if isBlank(record) {
			continue
		}

		result.Rows = append(result.Rows, validateRow(mapRow(record, colIdx), rowNumber))
	}

	checkDuplicates(result.Rows, existingNames)

	result.TotalRows = len(result.Rows)
	for _, row := range result.Rows {
		if row.Valid {
			result.ValidRows++
		} else {
			result.InvalidRows++
		}
	}
	return result
}

// headerIndex maps known column names to their position in the header row.
// Matching is case-insensitive with surrounding whitespace ignored.
func headerIndex(header []string) map[string]int {
	known := make(map[string]bool, len(Headers))
	for _, h := range Headers {
		known[h] = true
	}

	idx := make(map[string]int, len(header))
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(h))
		if known[key] {
			idx[key] = i
		}
	}
	return idx
}

// mapRow projects a raw record onto the fixed column set. Columns missing
// from the file or beyond the record's length simply stay absent.
func mapRow(record []string, colIdx map[string]int) Row {
	row := make(Row, len(colIdx))
	for col, i := range colIdx {
		if i < len(record) {
			row[col] = record[i]
		}
	}
	return row
}

func isBlank(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
