package importer

import (
	"fmt"
	"strings"
)

// checkDuplicates runs after field validation and augments rows in place
// with duplicate errors. Name comparison is case-insensitive.
//
// Two separate findings can stack on one row:
//   - within the batch, every occurrence except the first is flagged with a
//     reference to the first occurrence's row number;
//   - against the database, every occurrence is flagged, the first included.
//
// Rows with an empty name are skipped; there is nothing to compare.
func checkDuplicates(rows []ValidatedRow, existingNames []string) {
	existing := make(map[string]bool, len(existingNames))
	for _, n := range existingNames {
		existing[normalizeName(n)] = true
	}

	// First pass: record the first row number seen for each name.
	firstSeen := make(map[string]int)
	for _, row := range rows {
		name := rowName(row)
		if name == "" {
			continue
		}
		if _, ok := firstSeen[name]; !ok {
			firstSeen[name] = row.RowNumber
		}
	}

	// Second pass: annotate.
	for i := range rows {
		row := &rows[i]
		name := rowName(*row)
		if name == "" {
			continue
		}

		if first := firstSeen[name]; first != row.RowNumber {
			row.addError("name", fmt.Sprintf("duplicate name in CSV (first occurrence at row %d)", first))
		}
		if existing[name] {
			row.addError("name", "name already exists in database")
		}

		if len(row.Errors) > 0 {
			row.Valid = false
			row.Item = nil
		}
	}
}

// rowName returns the normalized name for duplicate comparison, or "" when
// the row has no usable name.
func rowName(row ValidatedRow) string {
	return normalizeName(row.Data["name"])
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
