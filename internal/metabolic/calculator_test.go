package metabolic

import (
	"math"
	"testing"
)

func floatPtr(f float64) *float64 { return &f }

func TestBMRMifflinStJeor(t *testing.T) {
	tests := []struct {
		name     string
		gender   Gender
		weightKg float64
		heightCm float64
		age      int
		want     float64
	}{
		{
			name:     "reference male",
			gender:   Male,
			weightKg: 80,
			heightCm: 180,
			age:      30,
			want:     1780, // 800 + 1125 - 150 + 5
		},
		{
			name:     "reference female",
			gender:   Female,
			weightKg: 80,
			heightCm: 180,
			age:      30,
			want:     1614, // 800 + 1125 - 150 - 161
		},
		{
			name:     "unrounded result preserved",
			gender:   Female,
			weightKg: 62.5,
			heightCm: 167,
			age:      41,
			want:     10*62.5 + 6.25*167 - 5*41 - 161,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BMRMifflinStJeor(tt.gender, tt.weightKg, tt.heightCm, tt.age)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("BMRMifflinStJeor() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBMRMifflinStJeor_GenderOffset(t *testing.T) {
	// The male (+5) vs female (-161) constants mean the male value always
	// exceeds the female value by exactly 166 for identical biometrics.
	cases := []struct {
		weightKg, heightCm float64
		age                int
	}{
		{50, 150, 20},
		{80, 180, 30},
		{120, 200, 65},
		{62.3, 171.5, 44},
	}

	for _, c := range cases {
		male := BMRMifflinStJeor(Male, c.weightKg, c.heightCm, c.age)
		female := BMRMifflinStJeor(Female, c.weightKg, c.heightCm, c.age)
		if diff := male - female; math.Abs(diff-166) > 1e-9 {
			t.Errorf("male-female offset for %+v = %v, want 166", c, diff)
		}
	}
}

func TestBMRKatchMcArdle(t *testing.T) {
	// 80kg at 20% body fat: lean mass 64kg, 370 + 21.6*64 = 1752.4
	got := BMRKatchMcArdle(80, 20)
	if math.Abs(got-1752.4) > 1e-9 {
		t.Errorf("BMRKatchMcArdle(80, 20) = %v, want 1752.4", got)
	}
}

func TestBMRKatchMcArdle_DecreasingInBodyFat(t *testing.T) {
	prev := math.Inf(1)
	for bf := 5.0; bf <= 50; bf += 5 {
		got := BMRKatchMcArdle(90, bf)
		if got >= prev {
			t.Fatalf("BMRKatchMcArdle(90, %v) = %v, not strictly below %v", bf, got, prev)
		}
		prev = got
	}
}

func TestMetabolicImpact(t *testing.T) {
	tests := []struct {
		name       string
		conditions []ConditionID
		want       float64
	}{
		{
			name:       "empty selection",
			conditions: nil,
			want:       0,
		},
		{
			name:       "single condition",
			conditions: []ConditionID{"hypothyroidism"},
			want:       10,
		},
		{
			name:       "two conditions sum",
			conditions: []ConditionID{"hypothyroidism", "insulin_resistance"},
			want:       18,
		},
		{
			name:       "none alone",
			conditions: []ConditionID{ConditionNone},
			want:       0,
		},
		{
			name:       "none short-circuits other selections",
			conditions: []ConditionID{"hypothyroidism", ConditionNone, "cushings_syndrome"},
			want:       0,
		},
		{
			name:       "unknown id ignored",
			conditions: []ConditionID{"hypothyroidism", "chronic_mondays"},
			want:       10,
		},
		{
			name:       "sum capped at 30",
			conditions: []ConditionID{"hypothyroidism", "pcos", "cushings_syndrome", "metabolic_syndrome"},
			want:       30,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MetabolicImpact(tt.conditions)
			if got != tt.want {
				t.Errorf("MetabolicImpact(%v) = %v, want %v", tt.conditions, got, tt.want)
			}
		})
	}
}

func TestMetabolicImpact_AlwaysInRange(t *testing.T) {
	// Stack every catalog entry; the cap must hold no matter the combination.
	var all []ConditionID
	for _, c := range Conditions() {
		if c.ID != ConditionNone {
			all = append(all, c.ID)
		}
	}

	got := MetabolicImpact(all)
	if got < 0 || got > MaxMetabolicImpact {
		t.Errorf("MetabolicImpact(all catalog) = %v, want within [0, %d]", got, MaxMetabolicImpact)
	}
}

func TestProteinRecommendation(t *testing.T) {
	tests := []struct {
		name     string
		weightKg float64
		goal     Goal
		want     int
	}{
		{"fat loss 80kg", 80, FatLoss, 160},
		{"maintain 80kg", 80, Maintain, 144},
		{"muscle gain 80kg", 80, MuscleGain, 176},
		{"rounds half up", 72.5, FatLoss, 145},
		{"rounds to nearest", 61.2, Maintain, 110}, // 110.16
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ProteinRecommendation(tt.weightKg, tt.goal)
			if got != tt.want {
				t.Errorf("ProteinRecommendation(%v, %s) = %d, want %d", tt.weightKg, tt.goal, got, tt.want)
			}
		})
	}
}

func TestProteinRecommendation_GoalOrdering(t *testing.T) {
	// muscle_gain (2.2) > fat_loss (2.0) > maintain (1.8) for equal weight.
	w := 75.0
	gain := ProteinRecommendation(w, MuscleGain)
	loss := ProteinRecommendation(w, FatLoss)
	maintain := ProteinRecommendation(w, Maintain)

	if !(gain > loss && loss > maintain) {
		t.Errorf("goal ordering violated: gain=%d loss=%d maintain=%d", gain, loss, maintain)
	}
}

func TestProteinRecommendation_MonotonicInWeight(t *testing.T) {
	prev := -1
	for w := 40.0; w <= 160; w += 2.5 {
		got := ProteinRecommendation(w, Maintain)
		if got < prev {
			t.Fatalf("ProteinRecommendation(%v) = %d, below previous %d", w, got, prev)
		}
		prev = got
	}
}

func TestCalculate_NilInputs(t *testing.T) {
	if got := Calculate(nil); got != nil {
		t.Errorf("Calculate(nil) = %+v, want nil", got)
	}
}

func TestCalculate_ReferenceScenario(t *testing.T) {
	in := &Inputs{
		Gender:        Male,
		Age:           30,
		WeightKg:      80,
		HeightCm:      180,
		ActivityLevel: ModeratelyActive,
		Goal:          FatLoss,
	}

	got := Calculate(in)
	if got == nil {
		t.Fatal("Calculate() returned nil for valid inputs")
	}

	want := Results{
		BMR:            1780,
		TDEE:           2759,
		AdjustedTDEE:   2759,
		TargetCalories: 2259,
		ProteinGrams:   160,
	}

	if got.BMR != want.BMR {
		t.Errorf("BMR = %d, want %d", got.BMR, want.BMR)
	}
	if got.TDEE != want.TDEE {
		t.Errorf("TDEE = %d, want %d", got.TDEE, want.TDEE)
	}
	if got.AdjustedTDEE != want.AdjustedTDEE {
		t.Errorf("AdjustedTDEE = %d, want %d", got.AdjustedTDEE, want.AdjustedTDEE)
	}
	if got.TargetCalories != want.TargetCalories {
		t.Errorf("TargetCalories = %d, want %d", got.TargetCalories, want.TargetCalories)
	}
	if got.ProteinGrams != want.ProteinGrams {
		t.Errorf("ProteinGrams = %d, want %d", got.ProteinGrams, want.ProteinGrams)
	}
	if got.MetabolicImpactPercent != 0 {
		t.Errorf("MetabolicImpactPercent = %v, want 0", got.MetabolicImpactPercent)
	}
}

func TestCalculate_BodyFatSwitchesFormula(t *testing.T) {
	in := &Inputs{
		Gender:         Male,
		Age:            30,
		WeightKg:       80,
		HeightCm:       180,
		BodyFatPercent: floatPtr(20),
		ActivityLevel:  ModeratelyActive,
		Goal:           FatLoss,
	}

	got := Calculate(in)
	if got == nil {
		t.Fatal("Calculate() returned nil for valid inputs")
	}

	// Katch-McArdle path: 1752.4 rounds to 1752.
	if got.BMR != 1752 {
		t.Errorf("BMR = %d, want 1752 (Katch-McArdle path)", got.BMR)
	}
}

func TestCalculate_ConditionAdjustedTDEE(t *testing.T) {
	in := &Inputs{
		Gender:        Female,
		Age:           45,
		WeightKg:      70,
		HeightCm:      165,
		ActivityLevel: Sedentary,
		Goal:          Maintain,
		Conditions:    []ConditionID{"hypothyroidism", "insulin_resistance"},
	}

	got := Calculate(in)
	if got == nil {
		t.Fatal("Calculate() returned nil for valid inputs")
	}

	if got.MetabolicImpactPercent != 18 {
		t.Fatalf("MetabolicImpactPercent = %v, want 18", got.MetabolicImpactPercent)
	}

	// adjustedTdee = tdee * (1 - impact/100), computed before rounding.
	bmr := BMRMifflinStJeor(Female, 70, 165, 45)
	tdee := bmr * 1.2
	wantAdjusted := int(math.Round(tdee * 0.82))
	if got.AdjustedTDEE != wantAdjusted {
		t.Errorf("AdjustedTDEE = %d, want %d", got.AdjustedTDEE, wantAdjusted)
	}
	if got.TargetCalories != int(math.Round(tdee*0.82)) {
		t.Errorf("TargetCalories = %d, want %d (maintain adds 0)", got.TargetCalories, wantAdjusted)
	}
}

func TestHealthScore(t *testing.T) {
	tests := []struct {
		name           string
		lifestyle      float64
		impact         float64
		targetCalories int
		want           int
	}{
		{
			name:           "perfect inputs clamp to 100",
			lifestyle:      100,
			impact:         0,
			targetCalories: 2200,
			want:           100, // 60 + 40 + 5 clamped
		},
		{
			name:           "no bonus outside calorie range",
			lifestyle:      100,
			impact:         0,
			targetCalories: 4000,
			want:           100,
		},
		{
			name:           "mid lifestyle no conditions",
			lifestyle:      50,
			impact:         0,
			targetCalories: 2000,
			want:           75, // 30 + 40 + 5
		},
		{
			name:           "max impact loses the metabolic points",
			lifestyle:      50,
			impact:         30,
			targetCalories: 2000,
			want:           35, // 30 + 0 + 5
		},
		{
			name:           "bonus excluded below floor",
			lifestyle:      50,
			impact:         30,
			targetCalories: 1100,
			want:           30,
		},
		{
			name:           "bonus inclusive at bounds",
			lifestyle:      0,
			impact:         30,
			targetCalories: 1200,
			want:           5,
		},
		{
			name:           "fractional blend rounds",
			lifestyle:      73,
			impact:         12,
			targetCalories: 2500,
			want:           73, // 43.8 + 24 + 5 = 72.8
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := HealthScore(tt.lifestyle, tt.impact, tt.targetCalories)
			if got != tt.want {
				t.Errorf("HealthScore(%v, %v, %d) = %d, want %d",
					tt.lifestyle, tt.impact, tt.targetCalories, got, tt.want)
			}
		})
	}
}

func TestCalculate_Idempotent(t *testing.T) {
	in := &Inputs{
		Gender:        Male,
		Age:           28,
		WeightKg:      95.5,
		HeightCm:      188,
		ActivityLevel: VeryActive,
		Goal:          MuscleGain,
		Conditions:    []ConditionID{"sleep_apnea"},
	}

	first := Calculate(in)
	second := Calculate(in)
	if *first != *second {
		t.Errorf("Calculate not idempotent: %+v vs %+v", first, second)
	}
}
