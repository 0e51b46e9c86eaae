package main

import (
	"context"
	"fmt"
	"math"
	"strings"
)

// dietCategory is a decoded model prediction.
type dietCategory struct {
	Index int
	Label string
	Kind  dietKind
}

// dietPredictor is loaded once at startup and only read afterwards, so it is
// shared across requests without locking.
type dietPredictor struct {
	estimator regressor
	gender    *labelEncoder
	disease   *labelEncoder
	target    *labelEncoder
}

// featureVector encodes the profile in featureColumns order. Unseen gender or
// disease labels are rejected rather than mapped to index 0.
func (p *dietPredictor) featureVector(profile userProfile, bmi float64) ([]float64, error) {
	g, err := p.gender.Transform(profile.Gender)
	if err != nil {
		return nil, err
	}
	d, err := p.disease.Transform(profile.Disease)
	if err != nil {
		return nil, err
	}
	return []float64{
		float64(profile.Age),
		profile.HeightCM,
		profile.WeightKG,
		bmi,
		float64(g),
		float64(d),
	}, nil
}

// Predict runs the model and decodes its raw score into a category.
func (p *dietPredictor) Predict(ctx context.Context, profile userProfile, bmi float64) (dietCategory, error) {
	x, err := p.featureVector(profile, bmi)
	if err != nil {
		return dietCategory{}, err
	}
	if err := ctx.Err(); err != nil {
		return dietCategory{}, fmt.Errorf("%w: %v", errPrediction, err)
	}
	raw, err := p.estimator.Predict(x)
	if err != nil {
		return dietCategory{}, fmt.Errorf("%w: %v", errPrediction, err)
	}
	if !isFinite(raw) {
		return dietCategory{}, fmt.Errorf("%w: model returned %v", errPrediction, raw)
	}
	return p.decode(raw)
}

// decode rounds half to even, clamps the index into the
// target vocabulary and tags the label with its template bucket. Out-of-range
// scores become the nearest category instead of an error.
func (p *dietPredictor) decode(raw float64) (dietCategory, error) {
	idx := clampIndex(raw, p.target.Len())
	label, err := p.target.InverseTransform(idx)
	if err != nil {
		return dietCategory{}, fmt.Errorf("%w: %v", errPrediction, err)
	}
	return dietCategory{Index: idx, Label: label, Kind: classifyDietLabel(label)}, nil
}

func clampIndex(raw float64, n int) int {
	r := math.RoundToEven(raw)
	if r < 0 {
		return 0
	}
	if r > float64(n-1) {
		return n - 1
	}
	return int(r)
}

// classifyDietLabel buckets a label: "Gain" wins over "Loss", anything else is
// balanced, including malformed labels.
func classifyDietLabel(label string) dietKind {
	switch {
	case strings.Contains(label, "Gain"):
		return dietGain
	case strings.Contains(label, "Loss"):
		return dietLoss
	default:
		return dietBalanced
	}
}
