package metabolic

import "math"

// Health score blend weights. The lifestyle assessment (scored elsewhere)
// carries 60%, the metabolic picture 40%, plus a small bonus when the
// computed calorie target lands in a sustainable range.
const (
	lifestyleWeight   = 0.6
	metabolicWeight   = 40.0
	calorieBonus      = 5.0
	calorieBonusFloor = 1200
	calorieBonusCeil  = 3500
)

// HealthScore blends a 0-100 lifestyle score with the metabolic impact
// (0-30) and the calorie target into a composite 0-100 score.
//
// The metabolic component maps impact 0 -> full 40 points and impact 30 ->
// 0 points. The result is rounded and clamped to 100; valid inputs cannot
// produce a negative score.
func HealthScore(lifestyleScore, impactPercent float64, targetCalories int) int {
	score := lifestyleScore*lifestyleWeight +
		((MaxMetabolicImpact-impactPercent)/MaxMetabolicImpact)*metabolicWeight

	if targetCalories >= calorieBonusFloor && targetCalories <= calorieBonusCeil {
		score += calorieBonus
	}

	if score > 100 {
		score = 100
	}
	return int(math.Round(score))
}
