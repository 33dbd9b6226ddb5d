package importer

import (
	"fmt"
	"strconv"
	"strings"
)

// Field limits for food-item rows. Ranges are inclusive.
const (
	maxNameLen     = 100
	maxServingLen  = 50
	maxQuantityLen = 50
	maxCalories    = 5000
	maxMacroGrams  = 500
)

// validateRow checks one row against the field rules and returns the row
// paired with every error found. It never short-circuits: the review UI
// shows all problems per row at once, so the builder accumulates errors and
// decides at the end. Item is populated only when no error fired.
func validateRow(row Row, rowNumber int) ValidatedRow {
	v := ValidatedRow{RowNumber: rowNumber, Data: row}
	item := FoodItem{}

	name := strings.TrimSpace(row["name"])
	switch {
	case name == "":
		v.addError("name", "name is required")
	case len(name) > maxNameLen:
		v.addError("name", fmt.Sprintf("name must be %d characters or less", maxNameLen))
	default:
		item.Name = name
	}

	if cal, ok := v.requireNumber(row, "calories", 0, maxCalories); ok {
		item.Calories = cal
	}
	if protein, ok := v.requireNumber(row, "protein", 0, maxMacroGrams); ok {
		item.Protein = protein
	}
	item.Carbs = v.optionalNumber(row, "carbs", 0, maxMacroGrams)
	item.Fats = v.optionalNumber(row, "fats", 0, maxMacroGrams)

	serving := strings.TrimSpace(row["serving_size"])
	switch {
	case serving == "":
		v.addError("serving_size", "serving_size is required")
	case len(serving) > maxServingLen:
		v.addError("serving_size", fmt.Sprintf("serving_size must be %d characters or less", maxServingLen))
	default:
		item.ServingSize = serving
	}

	item.RawQuantity = v.optionalText(row, "raw_quantity", maxQuantityLen)
	item.CookedQuantity = v.optionalText(row, "cooked_quantity", maxQuantityLen)

	// Lenient boolean: "true"/"yes"/"1" (any case) mean vegetarian, anything
	// else, including blank, means not. This field cannot produce an error.
	item.IsVegetarian = parseBool(row["is_vegetarian"])

	item.MealTypes = parseMealTypes(row["meal_types"])

	if len(v.Errors) == 0 {
		v.Valid = true
		v.Item = &item
	}
	return v
}

func (v *ValidatedRow) addError(field, message string) {
	v.Errors = append(v.Errors, FieldError{Field: field, Message: message})
}

// requireNumber validates a required numeric field within [min, max].
// Reports ok=false when any error was recorded.
func (v *ValidatedRow) requireNumber(row Row, field string, min, max float64) (float64, bool) {
	raw := strings.TrimSpace(row[field])
	if raw == "" {
		v.addError(field, field+" is required")
		return 0, false
	}

	n, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		v.addError(field, field+" must be a number")
		return 0, false
	}
	if n < min || n > max {
		v.addError(field, fmt.Sprintf("%s must be between %g and %g", field, min, max))
		return 0, false
	}
	return n, true
}

// optionalNumber validates an optional numeric field. Empty means absent
// (nil), not an error.
func (v *ValidatedRow) optionalNumber(row Row, field string, min, max float64) *float64 {
	raw := strings.TrimSpace(row[field])
	if raw == "" {
		return nil
	}

	n, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		v.addError(field, field+" must be a number")
		return nil
	}
	if n < min || n > max {
		v.addError(field, fmt.Sprintf("%s must be between %g and %g", field, min, max))
		return nil
	}
	return &n
}

// optionalText validates an optional text field against a length cap.
func (v *ValidatedRow) optionalText(row Row, field string, maxLen int) *string {
	raw := strings.TrimSpace(row[field])
	if raw == "" {
		return nil
	}
	if len(raw) > maxLen {
		v.addError(field, fmt.Sprintf("%s must be %d characters or less", field, maxLen))
		return nil
	}
	return &raw
}

// parseBool accepts the truthy spellings coaches actually type.
func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "yes", "1":
		return true
	default:
		return false
	}
}

// parseMealTypes splits a pipe-delimited list into lowercased trimmed
// values. Empty input yields nil.
func parseMealTypes(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	parts := strings.Split(s, "|")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.ToLower(strings.TrimSpace(p))
		if p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
