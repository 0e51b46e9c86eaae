package main

import (
	"context"
	"errors"
	"math"
	"slices"
	"testing"
)

// fixedRegressor returns a canned score and records the features it saw.
type fixedRegressor struct {
	raw  float64
	err  error
	seen []float64
}

func (f *fixedRegressor) Predict(features []float64) (float64, error) {
	f.seen = slices.Clone(features)
	return f.raw, f.err
}

// newTestPredictor wires est behind the standard gender/disease vocabularies.
func newTestPredictor(t *testing.T, est regressor, targets ...string) *dietPredictor {
	t.Helper()
	if len(targets) == 0 {
		targets = []string{"Balanced", "Weight Gain", "Weight Loss"}
	}
	mustEncoder := func(name string, classes []string) *labelEncoder {
		e, err := newLabelEncoder(name, classes)
		if err != nil {
			t.Fatalf("newLabelEncoder(%s): %v", name, err)
		}
		return e
	}
	return &dietPredictor{
		estimator: est,
		gender:    mustEncoder("gender", []string{"Female", "Male"}),
		disease:   mustEncoder("disease", []string{"Diabetes", "Heart Disease", "Hypertension", "None"}),
		target:    mustEncoder("diet type", targets),
	}
}

func sampleProfile() userProfile {
	return userProfile{Age: 30, Gender: "Male", WeightKG: 70, HeightCM: 170, Disease: "None"}
}

/* ─── Feature encoding ───────────────────────────────────────────────── */

// TestPredict_FeatureOrder verifies the model sees
// [age, height, weight, bmi, gender, disease] with encoded categories.
func TestPredict_FeatureOrder(t *testing.T) {
	est := &fixedRegressor{raw: 0}
	p := newTestPredictor(t, est)
	if _, err := p.Predict(context.Background(), sampleProfile(), 24.2); err != nil {
		t.Fatalf("Predict: %v", err)
	}
	want := []float64{30, 170, 70, 24.2, 1, 3}
	if !slices.Equal(est.seen, want) {
		t.Errorf("features = %v, want %v", est.seen, want)
	}
}

// TestPredict_UnknownCategory verifies unseen labels are rejected, not mapped to 0.
func TestPredict_UnknownCategory(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(p *userProfile)
	}{
		{"unknown gender", func(p *userProfile) { p.Gender = "Robot" }},
		{"unknown disease", func(p *userProfile) { p.Disease = "Gout" }},
		{"wrong case", func(p *userProfile) { p.Disease = "diabetes" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			est := &fixedRegressor{}
			p := newTestPredictor(t, est)
			profile := sampleProfile()
			tc.mutate(&profile)
			_, err := p.Predict(context.Background(), profile, 24.2)
			if !errors.Is(err, errUnknownCategory) {
				t.Fatalf("expected errUnknownCategory, got %v", err)
			}
			if est.seen != nil {
				t.Error("model should not be called for an unknown category")
			}
		})
	}
}

/* ─── Model failures ─────────────────────────────────────────────────── */

func TestPredict_ModelErrorIsPredictionFailure(t *testing.T) {
	p := newTestPredictor(t, &fixedRegressor{err: errors.New("boom")})
	_, err := p.Predict(context.Background(), sampleProfile(), 24.2)
	if !errors.Is(err, errPrediction) {
		t.Fatalf("expected errPrediction, got %v", err)
	}
}

func TestPredict_NonFiniteIsPredictionFailure(t *testing.T) {
	for _, raw := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		p := newTestPredictor(t, &fixedRegressor{raw: raw})
		_, err := p.Predict(context.Background(), sampleProfile(), 24.2)
		if !errors.Is(err, errPrediction) {
			t.Errorf("raw %v: expected errPrediction, got %v", raw, err)
		}
	}
}

func TestPredict_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	p := newTestPredictor(t, &fixedRegressor{})
	if _, err := p.Predict(ctx, sampleProfile(), 24.2); !errors.Is(err, errPrediction) {
		t.Fatalf("expected errPrediction, got %v", err)
	}
}

/* ─── Rounding and clamping ──────────────────────────────────────────── */

// TestPredict_Clamping verifies out-of-range scores decode to the first or
// last category and never fail.
func TestPredict_Clamping(t *testing.T) {
	cases := []struct {
		raw   float64
		index int
		label string
	}{
		{-7.3, 0, "Balanced"},
		{-0.4, 0, "Balanced"},
		{0.6, 1, "Weight Gain"},
		{1.49, 1, "Weight Gain"},
		{2.2, 2, "Weight Loss"},
		{42, 2, "Weight Loss"},
		{1e300, 2, "Weight Loss"},
	}
	for _, tc := range cases {
		p := newTestPredictor(t, &fixedRegressor{raw: tc.raw})
		got, err := p.Predict(context.Background(), sampleProfile(), 24.2)
		if err != nil {
			t.Fatalf("raw %v: unexpected error %v", tc.raw, err)
		}
		if got.Index != tc.index || got.Label != tc.label {
			t.Errorf("raw %v: got %d/%q, want %d/%q", tc.raw, got.Index, got.Label, tc.index, tc.label)
		}
	}
}

// TestClampIndex_HalfToEven verifies ties round to the even index.
func TestClampIndex_HalfToEven(t *testing.T) {
	cases := map[float64]int{0.5: 0, 1.5: 2, 2.5: 2, -0.5: 0}
	for raw, want := range cases {
		if got := clampIndex(raw, 5); got != want {
			t.Errorf("clampIndex(%v, 5) = %d, want %d", raw, got, want)
		}
	}
}

func TestClassifyDietLabel(t *testing.T) {
	cases := map[string]dietKind{
		"Weight Gain":       dietGain,
		"Weight Loss":       dietLoss,
		"Balanced":          dietBalanced,
		"Gain then Loss":    dietGain,
		"weight loss":       dietBalanced, // matching is case-sensitive
		"":                  dietBalanced,
		"Low Carb / Loss 2": dietLoss,
	}
	for label, want := range cases {
		if got := classifyDietLabel(label); got != want {
			t.Errorf("classifyDietLabel(%q) = %q, want %q", label, got, want)
		}
	}
}

/* ─── End to end ─────────────────────────────────────────────────────── */

// TestPredictAndDerive_LossScenario: a raw score of 0.6 rounds to index 1,
// which decodes to a Loss label, and the plan uses the Loss macro bucket.
func TestPredictAndDerive_LossScenario(t *testing.T) {
	p := newTestPredictor(t, &fixedRegressor{raw: 0.6}, "Balanced", "Weight Loss", "Weight Gain")
	profile := sampleProfile()

	cat, err := p.Predict(context.Background(), profile, profile.bmi())
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}
	if cat.Index != 1 || cat.Kind != dietLoss {
		t.Fatalf("category = %+v, want index 1 / loss", cat)
	}

	rec := derivePlan(cat, profile)
	if rec.Calories != 2426 {
		t.Errorf("calories = %d, want 2426", rec.Calories)
	}
	if want := (macros{ProteinG: 84, CarbsG: 180, FatG: 50}); rec.Macros != want {
		t.Errorf("macros = %+v, want %+v", rec.Macros, want)
	}
	if rec.DailyPlan[0].Items[0] != "Oats" {
		t.Errorf("expected the loss template, got breakfast %v", rec.DailyPlan[0].Items)
	}
}
