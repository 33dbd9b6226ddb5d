// Package importer turns an uploaded food-item CSV into typed, validated
// records ready for bulk insertion. It has no I/O of its own: callers hand
// it file content and the set of names already in the database, and get back
// a per-row report.
//
// Validation never returns Go errors for bad data. Each row accumulates all
// of its field errors so the review screen can show every problem at once;
// only tokenizer-level failures land in ParseResult.ParseErrors.
package importer

// Headers is the fixed column set, in template order. The order is part of
// the contract: the downloadable template and Parse must agree byte for byte.
var Headers = []string{
	"name",
	"calories",
	"protein",
	"carbs",
	"fats",
	"serving_size",
	"is_vegetarian",
	"raw_quantity",
	"cooked_quantity",
	"meal_types",
}

// Row is one CSV data row keyed by column name. Missing and empty cells are
// equivalent; both mean "not provided".
type Row map[string]string

// FieldError is a single validation problem on one field of one row.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// FoodItem is the normalized record produced from a clean row, shaped for
// the food_items table.
type FoodItem struct {
	Name           string   `json:"name"`
	Calories       float64  `json:"calories"`
	Protein        float64  `json:"protein"`
	Carbs          *float64 `json:"carbs,omitempty"`
	Fats           *float64 `json:"fats,omitempty"`
	ServingSize    string   `json:"serving_size"`
	IsVegetarian   bool     `json:"is_vegetarian"`
	RawQuantity    *string  `json:"raw_quantity,omitempty"`
	CookedQuantity *string  `json:"cooked_quantity,omitempty"`
	MealTypes      []string `json:"meal_types,omitempty"`
}

// ValidatedRow pairs a data row with its validation outcome.
// Invariant: Item is non-nil exactly when Errors is empty. Duplicate
// detection appends to Errors and clears Item, so the invariant survives
// both passes.
type ValidatedRow struct {
	RowNumber int          `json:"rowNumber"`
	Data      Row          `json:"data"`
	Errors    []FieldError `json:"errors"`
	Valid     bool         `json:"isValid"`
	Item      *FoodItem    `json:"transformedData,omitempty"`
}

// ParseResult is the full report for one uploaded file.
type ParseResult struct {
	Rows        []ValidatedRow `json:"rows"`
	TotalRows   int            `json:"totalRows"`
	ValidRows   int            `json:"validRows"`
	InvalidRows int            `json:"invalidRows"`
	// ParseErrors are tokenizer-level problems (malformed quoting, etc.),
	// distinct from per-row field validation errors.
	ParseErrors []string `json:"parseErrors,omitempty"`
}

// Failed reports a hard parse failure: the tokenizer produced errors and no
// rows at all. Partial results (some errors, some rows) are usable.
func (r *ParseResult) Failed() bool {
	return len(r.ParseErrors) > 0 && len(r.Rows) == 0
}

// ValidItems returns the transformed records of all valid rows, preserving
// file order. This is what gets handed to the bulk-insert collaborator.
func ValidItems(r *ParseResult) []FoodItem {
	items := make([]FoodItem, 0, r.ValidRows)
	for _, row := range r.Rows {
		if row.Valid && row.Item != nil {
			items = append(items, *row.Item)
		}
	}
	return items
}
