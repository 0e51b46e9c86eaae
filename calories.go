package main

// activityFactor is the fixed TDEE multiplier applied to every profile.
const activityFactor = 1.5

// mifflinStJeorBMR returns the basal metabolic rate in kcal/day. Only "Male"
// gets the male constant; every other value uses the female one.
func mifflinStJeorBMR(weightKG, heightCM float64, age int, gender string) float64 {
	bmr := 10*weightKG + 6.25*heightCM - 5*float64(age)
	if gender == "Male" {
		return bmr + 5
	}
	return bmr - 161
}

// calculateCalories returns the estimated daily energy need, truncated to
// whole kcal. Within the accepted input bounds the result is always positive.
func calculateCalories(weightKG, heightCM float64, age int, gender string) int {
	return int(mifflinStJeorBMR(weightKG, heightCM, age, gender) * activityFactor)
}
