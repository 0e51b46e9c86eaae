package main

import (
	"math"
	"strings"
)

// dietKind is the template bucket a decoded diet label belongs to. It is
// derived once at the decode boundary; nothing downstream looks at label text.
type dietKind string

const (
	dietGain     dietKind = "gain"
	dietLoss     dietKind = "loss"
	dietBalanced dietKind = "balanced"
)

// mealSlot is one meal of the day and its food items, in serving order.
type mealSlot struct {
	Name  string   `json:"meal"`
	Items []string `json:"items"`
}

// dietPlan keeps slots in the fixed Breakfast → Dinner order.
type dietPlan []mealSlot

// dayPlan is one weekday of the rotating weekly plan.
type dayPlan struct {
	Day     string `json:"day"`
	Summary string `json:"plan"`
}

// weeklyPlan always holds Monday through Sunday, in that order.
type weeklyPlan []dayPlan

// macros is the suggested daily macronutrient intake in grams.
type macros struct {
	ProteinG float64 `json:"protein_g"`
	CarbsG   float64 `json:"carbs_g"`
	FatG     float64 `json:"fat_g"`
}

// recommendation is everything derived from a predicted diet category.
type recommendation struct {
	DietType   string           `json:"diet_type"`
	DietKind   dietKind         `json:"diet_kind"`
	Calories   int              `json:"calories"`
	DailyPlan  dietPlan         `json:"daily_plan"`
	WeeklyPlan weeklyPlan       `json:"weekly_plan"`
	Macros     macros           `json:"macros"`
	Advice     diseaseGuideline `json:"advice"`
}

/* ─── Templates ──────────────────────────────────────────────────────── */

var mealTemplates = map[dietKind]dietPlan{
	dietGain: {
		{Name: "Breakfast", Items: []string{"Eggs 3 / Paneer 120g", "Banana", "Milk 300ml"}},
		{Name: "Mid-Morning", Items: []string{"Fruit bowl", "Peanut chikki"}},
		{Name: "Lunch", Items: []string{"Rice 2 cups", "Dal", "Chicken/Paneer 150g", "Veggies"}},
		{Name: "Evening", Items: []string{"Boiled peanuts", "Smoothie"}},
		{Name: "Dinner", Items: []string{"Chapati 3", "Egg curry / Paneer", "Milk"}},
	},
	dietLoss: {
		{Name: "Breakfast", Items: []string{"Oats", "Boiled egg", "Green tea"}},
		{Name: "Mid-Morning", Items: []string{"Apple", "Coconut water"}},
		{Name: "Lunch", Items: []string{"Brown rice", "Vegetables", "Grilled protein"}},
		{Name: "Evening", Items: []string{"Roasted chana"}},
		{Name: "Dinner", Items: []string{"Vegetable soup", "Salad"}},
	},
	dietBalanced: {
		{Name: "Breakfast", Items: []string{"Idli/Dosa", "Sambar", "Fruit"}},
		{Name: "Mid-Morning", Items: []string{"Buttermilk", "Nuts"}},
		{Name: "Lunch", Items: []string{"Rice", "Dal", "Veg curry", "Curd"}},
		{Name: "Evening", Items: []string{"Fruit salad", "Tea"}},
		{Name: "Dinner", Items: []string{"Chapati", "Veg curry", "Milk"}},
	},
}

var weekTemplate = weeklyPlan{
	{Day: "Monday", Summary: "Idli, Rice, Veg curry"},
	{Day: "Tuesday", Summary: "Oats, Chapati, Dal"},
	{Day: "Wednesday", Summary: "Dosa, Rice, Sambar"},
	{Day: "Thursday", Summary: "Upma, Brown rice"},
	{Day: "Friday", Summary: "Poha, Paneer"},
	{Day: "Saturday", Summary: "Smoothie, Fish"},
	{Day: "Sunday", Summary: "Light meals"},
}

// macroRule gives protein per kg of body weight plus fixed carb/fat grams.
type macroRule struct {
	proteinPerKG float64
	carbsG       float64
	fatG         float64
}

var macroRules = map[dietKind]macroRule{
	dietGain:     {proteinPerKG: 2.0, carbsG: 300, fatG: 70},
	dietLoss:     {proteinPerKG: 1.2, carbsG: 180, fatG: 50},
	dietBalanced: {proteinPerKG: 1.5, carbsG: 250, fatG: 60},
}

/* ─── Derivation ─────────────────────────────────────────────────────── */

func dietPlanFor(kind dietKind, g diseaseGuideline) dietPlan {
	template, ok := mealTemplates[kind]
	if !ok {
		template = mealTemplates[dietBalanced]
	}
	return filterPlan(template, g)
}

// filterPlan copies template, dropping every item the guideline avoids.
// Slots are never dropped, even when emptied, and item order is kept.
func filterPlan(template dietPlan, g diseaseGuideline) dietPlan {
	plan := make(dietPlan, 0, len(template))
	for _, slot := range template {
		items := make([]string, 0, len(slot.Items))
		for _, item := range slot.Items {
			if !g.avoids(item) {
				items = append(items, item)
			}
		}
		plan = append(plan, mealSlot{Name: slot.Name, Items: items})
	}
	return plan
}

// weeklyPlanFor annotates the shared weekly template with the guideline's
// avoid terms (when there are any) and prefer terms.
func weeklyPlanFor(g diseaseGuideline) weeklyPlan {
	avoid := strings.Join(g.Avoid, ", ")
	prefer := strings.Join(g.Prefer, ", ")
	plan := make(weeklyPlan, 0, len(weekTemplate))
	for _, d := range weekTemplate {
		summary := d.Summary
		if avoid != "" {
			summary += " | Avoid: " + avoid
		}
		summary += " | Prefer: " + prefer
		plan = append(plan, dayPlan{Day: d.Day, Summary: summary})
	}
	return plan
}

func macrosFor(kind dietKind, weightKG float64) macros {
	rule, ok := macroRules[kind]
	if !ok {
		rule = macroRules[dietBalanced]
	}
	return macros{
		ProteinG: math.Round(weightKG*rule.proteinPerKG*10) / 10,
		CarbsG:   rule.carbsG,
		FatG:     rule.fatG,
	}
}

// derivePlan is a pure function of the category and the profile.
func derivePlan(category dietCategory, p userProfile) recommendation {
	g := guidelineFor(p.Disease)
	return recommendation{
		DietType:   category.Label,
		DietKind:   category.Kind,
		Calories:   calculateCalories(p.WeightKG, p.HeightCM, p.Age, p.Gender),
		DailyPlan:  dietPlanFor(category.Kind, g),
		WeeklyPlan: weeklyPlanFor(g),
		Macros:     macrosFor(category.Kind, p.WeightKG),
		Advice:     g,
	}
}
