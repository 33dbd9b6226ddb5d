package metabolic

// ConditionID identifies a medical condition in the fixed catalog.
type ConditionID string

// ConditionNone is the sentinel the intake form uses for "no conditions".
// Its presence zeroes the metabolic impact even if other IDs are selected
// alongside it.
const ConditionNone ConditionID = "none"

// Condition describes one catalog entry: the percent reduction it applies to
// TDEE and, where relevant, the gender it applies to.
type Condition struct {
	ID            ConditionID
	Label         string
	ImpactPercent float64
	// GenderOnly restricts the condition to one gender; empty means both.
	GenderOnly Gender
}

// conditionCatalog is the fixed set of conditions the intake form offers.
// Impacts are coaching heuristics, not medical claims; their sum is capped
// by MaxMetabolicImpact.
var conditionCatalog = map[ConditionID]Condition{
	ConditionNone:        {ID: ConditionNone, Label: "None", ImpactPercent: 0},
	"hypothyroidism":     {ID: "hypothyroidism", Label: "Hypothyroidism", ImpactPercent: 10},
	"pcos":               {ID: "pcos", Label: "PCOS", ImpactPercent: 10, GenderOnly: Female},
	"insulin_resistance": {ID: "insulin_resistance", Label: "Insulin resistance", ImpactPercent: 8},
	"type2_diabetes":     {ID: "type2_diabetes", Label: "Type 2 diabetes", ImpactPercent: 7},
	"metabolic_syndrome": {ID: "metabolic_syndrome", Label: "Metabolic syndrome", ImpactPercent: 8},
	"cushings_syndrome":  {ID: "cushings_syndrome", Label: "Cushing's syndrome", ImpactPercent: 12},
	"menopause":          {ID: "menopause", Label: "Menopause", ImpactPercent: 5, GenderOnly: Female},
	"sleep_apnea":        {ID: "sleep_apnea", Label: "Sleep apnea", ImpactPercent: 5},
}

// MaxMetabolicImpact caps the combined TDEE reduction from conditions.
const MaxMetabolicImpact = 30

// Conditions returns the full catalog for rendering the intake form.
func Conditions() []Condition {
	out := make([]Condition, 0, len(conditionCatalog))
	for _, c := range conditionCatalog {
		out = append(out, c)
	}
	return out
}

// MetabolicImpact sums the impact of the selected conditions, capped at
// MaxMetabolicImpact. The "none" sentinel short-circuits to 0 regardless of
// what else is selected. Unknown IDs are ignored; stale form values should
// degrade, not error.
func MetabolicImpact(conditions []ConditionID) float64 {
	for _, id := range conditions {
		if id == ConditionNone {
			return 0
		}
	}

	var total float64
	for _, id := range conditions {
		if c, ok := conditionCatalog[id]; ok {
			total += c.ImpactPercent
		}
	}

	if total > MaxMetabolicImpact {
		return MaxMetabolicImpact
	}
	return total
}
