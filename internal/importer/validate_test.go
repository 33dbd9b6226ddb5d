package importer

import (
	"reflect"
	"strings"
	"testing"
)

func errorFields(row ValidatedRow) []string {
	fields := make([]string, 0, len(row.Errors))
	for _, e := range row.Errors {
		fields = append(fields, e.Field)
	}
	return fields
}

func TestValidateRow_CleanRow(t *testing.T) {
	row := Row{
		"name":            "  Grilled Chicken Breast ",
		"calories":        "165",
		"protein":         "31",
		"carbs":           "0",
		"fats":            "3.6",
		"serving_size":    "100g",
		"is_vegetarian":   "false",
		"raw_quantity":    "120g",
		"cooked_quantity": "100g",
		"meal_types":      "Lunch | DINNER",
	}

	got := validateRow(row, 2)

	if !got.Valid {
		t.Fatalf("expected valid row, got errors: %v", got.Errors)
	}
	if got.Item == nil {
		t.Fatal("expected transformed item on valid row")
	}
	if got.Item.Name != "Grilled Chicken Breast" {
		t.Errorf("Name = %q, want trimmed %q", got.Item.Name, "Grilled Chicken Breast")
	}
	if got.Item.Calories != 165 || got.Item.Protein != 31 {
		t.Errorf("macros = %v/%v, want 165/31", got.Item.Calories, got.Item.Protein)
	}
	if got.Item.Carbs == nil || *got.Item.Carbs != 0 {
		t.Errorf("Carbs = %v, want 0", got.Item.Carbs)
	}
	if got.Item.IsVegetarian {
		t.Error("IsVegetarian = true, want false")
	}
	if want := []string{"lunch", "dinner"}; !reflect.DeepEqual(got.Item.MealTypes, want) {
		t.Errorf("MealTypes = %v, want %v", got.Item.MealTypes, want)
	}
	if got.RowNumber != 2 {
		t.Errorf("RowNumber = %d, want 2", got.RowNumber)
	}
}

func TestValidateRow_AccumulatesAllErrors(t *testing.T) {
	// Out-of-range calories AND protein: both errors must be reported, not
	// just the first one hit.
	row := Row{
		"name":         "Test",
		"calories":     "10000",
		"protein":      "600",
		"serving_size": "100g",
	}

	got := validateRow(row, 2)

	if got.Valid {
		t.Fatal("expected invalid row")
	}
	if got.Item != nil {
		t.Error("transformed item must be absent when errors exist")
	}
	if len(got.Errors) != 2 {
		t.Fatalf("expected exactly 2 errors, got %d: %v", len(got.Errors), got.Errors)
	}

	fields := errorFields(got)
	if !reflect.DeepEqual(fields, []string{"calories", "protein"}) {
		t.Errorf("error fields = %v, want [calories protein]", fields)
	}
}

func TestValidateRow_FieldRules(t *testing.T) {
	base := func() Row {
		return Row{
			"name":         "Oats",
			"calories":     "389",
			"protein":      "16.9",
			"serving_size": "100g",
		}
	}

	tests := []struct {
		name       string
		mutate     func(Row)
		wantFields []string
	}{
		{
			name:       "valid minimal row",
			mutate:     func(Row) {},
			wantFields: nil,
		},
		{
			name:       "missing name",
			mutate:     func(r Row) { delete(r, "name") },
			wantFields: []string{"name"},
		},
		{
			name:       "whitespace-only name",
			mutate:     func(r Row) { r["name"] = "   " },
			wantFields: []string{"name"},
		},
		{
			name:       "name too long",
			mutate:     func(r Row) { r["name"] = strings.Repeat("a", 101) },
			wantFields: []string{"name"},
		},
		{
			name:       "name at limit ok",
			mutate:     func(r Row) { r["name"] = strings.Repeat("a", 100) },
			wantFields: nil,
		},
		{
			name:       "calories missing",
			mutate:     func(r Row) { r["calories"] = "" },
			wantFields: []string{"calories"},
		},
		{
			name:       "calories not numeric",
			mutate:     func(r Row) { r["calories"] = "lots" },
			wantFields: []string{"calories"},
		},
		{
			name:       "calories negative",
			mutate:     func(r Row) { r["calories"] = "-1" },
			wantFields: []string{"calories"},
		},
		{
			name:       "calories at upper bound ok",
			mutate:     func(r Row) { r["calories"] = "5000" },
			wantFields: nil,
		},
		{
			name:       "protein over limit",
			mutate:     func(r Row) { r["protein"] = "500.1" },
			wantFields: []string{"protein"},
		},
		{
			name:       "optional carbs invalid",
			mutate:     func(r Row) { r["carbs"] = "abc" },
			wantFields: []string{"carbs"},
		},
		{
			name:       "optional fats out of range",
			mutate:     func(r Row) { r["fats"] = "501" },
			wantFields: []string{"fats"},
		},
		{
			name:       "empty carbs is not an error",
			mutate:     func(r Row) { r["carbs"] = "" },
			wantFields: nil,
		},
		{
			name:       "serving size missing",
			mutate:     func(r Row) { r["serving_size"] = "" },
			wantFields: []string{"serving_size"},
		},
		{
			name:       "serving size too long",
			mutate:     func(r Row) { r["serving_size"] = strings.Repeat("x", 51) },
			wantFields: []string{"serving_size"},
		},
		{
			name:       "raw quantity too long",
			mutate:     func(r Row) { r["raw_quantity"] = strings.Repeat("x", 51) },
			wantFields: []string{"raw_quantity"},
		},
		{
			name:       "garbage is_vegetarian is not an error",
			mutate:     func(r Row) { r["is_vegetarian"] = "banana" },
			wantFields: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := base()
			tt.mutate(row)

			got := validateRow(row, 2)
			fields := errorFields(got)

			if tt.wantFields == nil {
				if !got.Valid {
					t.Fatalf("expected valid row, got errors: %v", got.Errors)
				}
				if got.Item == nil {
					t.Fatal("expected transformed item on valid row")
				}
				return
			}

			if got.Valid {
				t.Fatal("expected invalid row")
			}
			if got.Item != nil {
				t.Error("transformed item must be absent when errors exist")
			}
			if !reflect.DeepEqual(fields, tt.wantFields) {
				t.Errorf("error fields = %v, want %v", fields, tt.wantFields)
			}
		})
	}
}

func TestValidateRow_Idempotent(t *testing.T) {
	row := Row{
		"name":         "Salmon",
		"calories":     "208",
		"protein":      "20",
		"serving_size": "100g",
		"meal_types":   "dinner",
	}

	first := validateRow(row, 7)
	second := validateRow(row, 7)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("validateRow not idempotent:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestParseBool(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"true", true},
		{"TRUE", true},
		{"Yes", true},
		{"1", true},
		{" yes ", true},
		{"false", false},
		{"no", false},
		{"0", false},
		{"", false},
		{"maybe", false},
	}

	for _, tt := range tests {
		if got := parseBool(tt.in); got != tt.want {
			t.Errorf("parseBool(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseMealTypes(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"   ", nil},
		{"breakfast", []string{"breakfast"}},
		{"Lunch|Dinner", []string{"lunch", "dinner"}},
		{" snack | LUNCH ", []string{"snack", "lunch"}},
		{"|", nil},
		{"breakfast||dinner", []string{"breakfast", "dinner"}},
	}

	for _, tt := range tests {
		if got := parseMealTypes(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("parseMealTypes(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
