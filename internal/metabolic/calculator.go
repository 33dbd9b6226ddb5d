// Package metabolic computes calorie and macro targets from a client's
// biometric profile. Every function is pure and deterministic: the package
// does no I/O and keeps no state, so it can be called from any frontend.
//
// Inputs are trusted. Range checking (positive weight, plausible age, etc.)
// is the caller's job; the formulas here are applied as published.
package metabolic

import "math"

// Gender selects the sex-specific constant in the Mifflin-St Jeor formula.
type Gender string

const (
	Male   Gender = "male"
	Female Gender = "female"
)

// ActivityLevel scales BMR into TDEE.
type ActivityLevel string

const (
	Sedentary        ActivityLevel = "sedentary"
	LightlyActive    ActivityLevel = "lightly_active"
	ModeratelyActive ActivityLevel = "moderately_active"
	VeryActive       ActivityLevel = "very_active"
	ExtremelyActive  ActivityLevel = "extremely_active"
)

// Goal selects the calorie adjustment and protein multiplier.
type Goal string

const (
	FatLoss    Goal = "fat_loss"
	Maintain   Goal = "maintain"
	MuscleGain Goal = "muscle_gain"
)

// activityMultipliers is the single source of truth for valid activity
// levels. The values are part of the client-facing contract and must not
// change without a coordinated frontend release.
var activityMultipliers = map[ActivityLevel]float64{
	Sedentary:        1.2,
	LightlyActive:    1.375,
	ModeratelyActive: 1.55,
	VeryActive:       1.725,
	ExtremelyActive:  1.9,
}

// goalAdjustments is the daily calorie delta applied on top of adjusted TDEE.
var goalAdjustments = map[Goal]float64{
	FatLoss:    -500,
	Maintain:   0,
	MuscleGain: 300,
}

// proteinMultipliers is grams of protein per kg bodyweight for each goal.
var proteinMultipliers = map[Goal]float64{
	FatLoss:    2.0,
	Maintain:   1.8,
	MuscleGain: 2.2,
}

// ValidActivityLevel reports whether s names a known activity level.
func ValidActivityLevel(s string) bool {
	_, ok := activityMultipliers[ActivityLevel(s)]
	return ok
}

// ValidGoal reports whether s names a known goal.
func ValidGoal(s string) bool {
	_, ok := goalAdjustments[Goal(s)]
	return ok
}

// Inputs is a client's profile for a single calculation. Constructed per
// request and discarded; nothing is cached between calls.
type Inputs struct {
	Gender         Gender
	Age            int
	WeightKg       float64
	HeightCm       float64
	BodyFatPercent *float64 // when present, switches the BMR formula to Katch-McArdle
	ActivityLevel  ActivityLevel
	Goal           Goal
	Conditions     []ConditionID
}

// Results holds the computed targets. BMR, TDEE and adjusted TDEE are
// rounded for display; target calories and protein are integers by
// construction.
type Results struct {
	BMR                    int     `json:"bmr"`
	TDEE                   int     `json:"tdee"`
	AdjustedTDEE           int     `json:"adjustedTdee"`
	TargetCalories         int     `json:"targetCalories"`
	ProteinGrams           int     `json:"proteinGrams"`
	MetabolicImpactPercent float64 `json:"metabolicImpactPercent"`
}

// BMRMifflinStJeor estimates basal metabolic rate from weight, height and
// age: 10w + 6.25h - 5a, then +5 for males and -161 for females. The result
// is not rounded.
func BMRMifflinStJeor(gender Gender, weightKg, heightCm float64, age int) float64 {
	bmr := 10*weightKg + 6.25*heightCm - 5*float64(age)
	if gender == Male {
		return bmr + 5
	}
	return bmr - 161
}

// BMRKatchMcArdle estimates basal metabolic rate from lean body mass:
// 370 + 21.6 * leanMass. Preferred whenever body-fat percentage is known.
func BMRKatchMcArdle(weightKg, bodyFatPercent float64) float64 {
	leanMass := weightKg * (1 - bodyFatPercent/100)
	return 370 + 21.6*leanMass
}

// ProteinRecommendation returns the daily protein target in grams, rounded
// to the nearest gram.
func ProteinRecommendation(weightKg float64, goal Goal) int {
	return int(math.Round(weightKg * proteinMultipliers[goal]))
}

// Calculate runs the full pipeline: BMR (formula chosen by body-fat
// presence), TDEE, condition-adjusted TDEE, goal-adjusted target calories
// and protein. Returns nil for nil inputs, the caller's convention for a
// form that has not been submitted yet.
func Calculate(in *Inputs) *Results {
	if in == nil {
		return nil
	}

	var bmr float64
	if in.BodyFatPercent != nil {
		bmr = BMRKatchMcArdle(in.WeightKg, *in.BodyFatPercent)
	} else {
		bmr = BMRMifflinStJeor(in.Gender, in.WeightKg, in.HeightCm, in.Age)
	}

	tdee := bmr * activityMultipliers[in.ActivityLevel]
	impact := MetabolicImpact(in.Conditions)
	adjusted := tdee * (1 - impact/100)
	target := math.Round(adjusted + goalAdjustments[in.Goal])

	return &Results{
		BMR:                    int(math.Round(bmr)),
		TDEE:                   int(math.Round(tdee)),
		AdjustedTDEE:           int(math.Round(adjusted)),
		TargetCalories:         int(target),
		ProteinGrams:           ProteinRecommendation(in.WeightKg, in.Goal),
		MetabolicImpactPercent: impact,
	}
}
