package main

import (
	"slices"
	"strings"
)

// diseaseNone is the fallback entry for healthy users and unknown diseases.
const diseaseNone = "None"

// diseaseGuideline is the dietary advice attached to one disease category.
type diseaseGuideline struct {
	Avoid  []string `json:"avoid"`
	Prefer []string `json:"prefer"`
	Tip    string   `json:"tip"`
}

// diseaseGuidelines is read-only for the life of the process; guidelineFor
// hands out copies.
var diseaseGuidelines = map[string]diseaseGuideline{
	"Diabetes": {
		Avoid:  []string{"Sugar", "White rice", "Sweets"},
		Prefer: []string{"Whole grains", "Vegetables", "Low-GI fruits"},
		Tip:    "Eat small frequent meals and monitor blood sugar.",
	},
	"Hypertension": {
		Avoid:  []string{"Salt", "Pickles", "Fried food"},
		Prefer: []string{"Fruits", "Vegetables", "Low-sodium food"},
		Tip:    "Reduce salt intake and manage stress.",
	},
	"Heart Disease": {
		Avoid:  []string{"Red meat", "Butter", "Fast food"},
		Prefer: []string{"Oats", "Fish", "Nuts", "Olive oil"},
		Tip:    "Follow a low-fat, high-fiber diet.",
	},
	diseaseNone: {
		Avoid:  []string{},
		Prefer: []string{"Balanced meals"},
		Tip:    "Maintain active lifestyle.",
	},
}

// guidelineFor looks the disease up by exact name, falling back to None.
func guidelineFor(disease string) diseaseGuideline {
	g, ok := diseaseGuidelines[disease]
	if !ok {
		g = diseaseGuidelines[diseaseNone]
	}
	return diseaseGuideline{
		Avoid:  slices.Clone(g.Avoid),
		Prefer: slices.Clone(g.Prefer),
		Tip:    g.Tip,
	}
}

// avoids reports whether item mentions any avoid term, ignoring case.
func (g diseaseGuideline) avoids(item string) bool {
	lower := strings.ToLower(item)
	for _, term := range g.Avoid {
		if strings.Contains(lower, strings.ToLower(term)) {
			return true
		}
	}
	return false
}
