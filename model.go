package main

import (
	"fmt"
	"math"
	"os"
	"slices"
	"strings"

	"gonum.org/v1/gonum/mat"
	"gopkg.in/yaml.v3"
)

// featureColumns is the column order the model was trained with. Changing it
// silently corrupts predictions; the model cannot detect swapped features.
var featureColumns = []string{"age", "height_cm", "weight_kg", "bmi", "gender", "disease"}

// regressor is the trained estimator: one feature row in, one raw score out.
type regressor interface {
	Predict(features []float64) (float64, error)
}

/* ─── Artifact format ────────────────────────────────────────────────── */

// modelArtifact is the on-disk model bundle (YAML or JSON).
type modelArtifact struct {
	Estimator estimatorDef `yaml:"estimator"`
	Encoders  struct {
		Gender  []string `yaml:"gender"`
		Disease []string `yaml:"disease"`
		Target  []string `yaml:"target"`
	} `yaml:"encoders"`
}

type estimatorDef struct {
	Type         string    `yaml:"type"` // "linear" or "forest"
	Intercept    float64   `yaml:"intercept"`
	Coefficients []float64 `yaml:"coefficients"`
	Trees        []treeDef `yaml:"trees"`
}

type treeDef struct {
	Nodes []treeNode `yaml:"nodes"`
}

// treeNode follows the scikit-learn layout: a node with left < 0 is a leaf
// and carries Value; otherwise rows with x[Feature] <= Threshold go left.
type treeNode struct {
	Feature   int     `yaml:"feature"`
	Threshold float64 `yaml:"threshold"`
	Left      int     `yaml:"left"`
	Right     int     `yaml:"right"`
	Value     float64 `yaml:"value"`
}

/* ─── Label encoders ─────────────────────────────────────────────────── */

// labelEncoder maps a closed vocabulary to indexes and back.
type labelEncoder struct {
	name    string
	classes []string
	index   map[string]int
}

func newLabelEncoder(name string, classes []string) (*labelEncoder, error) {
	if len(classes) == 0 {
		return nil, fmt.Errorf("%s encoder has no classes", name)
	}
	index := make(map[string]int, len(classes))
	for i, c := range classes {
		if strings.TrimSpace(c) == "" {
			return nil, fmt.Errorf("%s encoder has a blank class at %d", name, i)
		}
		if _, dup := index[c]; dup {
			return nil, fmt.Errorf("%s encoder has duplicate class %q", name, c)
		}
		index[c] = i
	}
	return &labelEncoder{name: name, classes: slices.Clone(classes), index: index}, nil
}

func (e *labelEncoder) Transform(label string) (int, error) {
	i, ok := e.index[label]
	if !ok {
		return 0, fmt.Errorf("%w: %s %q is not one of %s", errUnknownCategory, e.name, label, strings.Join(e.classes, ", "))
	}
	return i, nil
}

func (e *labelEncoder) InverseTransform(i int) (string, error) {
	if i < 0 || i >= len(e.classes) {
		return "", fmt.Errorf("%s index %d out of range [0, %d)", e.name, i, len(e.classes))
	}
	return e.classes[i], nil
}

func (e *labelEncoder) Classes() []string { return slices.Clone(e.classes) }

func (e *labelEncoder) Len() int { return len(e.classes) }

/* ─── Estimators ─────────────────────────────────────────────────────── */

// linearModel is an ordinary least-squares fit: intercept + coef·x.
type linearModel struct {
	intercept float64
	coef      *mat.VecDense
}

func (m *linearModel) Predict(features []float64) (float64, error) {
	if len(features) != m.coef.Len() {
		return 0, fmt.Errorf("linear model expects %d features, got %d", m.coef.Len(), len(features))
	}
	x := mat.NewVecDense(len(features), slices.Clone(features))
	return m.intercept + mat.Dot(x, m.coef), nil
}

// forestModel averages a set of regression trees.
type forestModel struct {
	trees [][]treeNode
}

func (m *forestModel) Predict(features []float64) (float64, error) {
	if len(features) != len(featureColumns) {
		return 0, fmt.Errorf("forest expects %d features, got %d", len(featureColumns), len(features))
	}
	var sum float64
	for _, nodes := range m.trees {
		sum += evalTree(nodes, features)
	}
	return sum / float64(len(m.trees)), nil
}

// evalTree walks a validated tree. Children always have higher indexes than
// their parent, so the walk terminates.
func evalTree(nodes []treeNode, x []float64) float64 {
	i := 0
	for {
		n := nodes[i]
		if n.Left < 0 {
			return n.Value
		}
		if x[n.Feature] <= n.Threshold {
			i = n.Left
		} else {
			i = n.Right
		}
	}
}

func validateTree(nodes []treeNode) error {
	if len(nodes) == 0 {
		return fmt.Errorf("tree has no nodes")
	}
	for i, n := range nodes {
		if n.Left < 0 {
			continue
		}
		if n.Feature < 0 || n.Feature >= len(featureColumns) {
			return fmt.Errorf("node %d: feature %d out of range", i, n.Feature)
		}
		if n.Left <= i || n.Right <= i || n.Left >= len(nodes) || n.Right >= len(nodes) {
			return fmt.Errorf("node %d: children (%d, %d) must point forward inside the tree", i, n.Left, n.Right)
		}
	}
	return nil
}

func buildEstimator(def estimatorDef) (regressor, error) {
	switch strings.ToLower(strings.TrimSpace(def.Type)) {
	case "linear":
		if len(def.Coefficients) != len(featureColumns) {
			return nil, fmt.Errorf("linear estimator needs %d coefficients, got %d", len(featureColumns), len(def.Coefficients))
		}
		return &linearModel{
			intercept: def.Intercept,
			coef:      mat.NewVecDense(len(def.Coefficients), slices.Clone(def.Coefficients)),
		}, nil
	case "forest":
		if len(def.Trees) == 0 {
			return nil, fmt.Errorf("forest estimator has no trees")
		}
		trees := make([][]treeNode, 0, len(def.Trees))
		for i, t := range def.Trees {
			if err := validateTree(t.Nodes); err != nil {
				return nil, fmt.Errorf("tree %d: %v", i, err)
			}
			trees = append(trees, slices.Clone(t.Nodes))
		}
		return &forestModel{trees: trees}, nil
	default:
		return nil, fmt.Errorf("unsupported estimator type %q", def.Type)
	}
}

/* ─── Loading ────────────────────────────────────────────────────────── */

// loadDietPredictor reads the model bundle from disk. Any failure wraps
// errModelLoad and is fatal at startup.
func loadDietPredictor(path string) (*dietPredictor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errModelLoad, err)
	}
	return parseDietPredictor(data)
}

func parseDietPredictor(data []byte) (*dietPredictor, error) {
	var art modelArtifact
	if err := yaml.Unmarshal(data, &art); err != nil {
		return nil, fmt.Errorf("%w: decode artifact: %v", errModelLoad, err)
	}
	est, err := buildEstimator(art.Estimator)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errModelLoad, err)
	}
	gender, err := newLabelEncoder("gender", art.Encoders.Gender)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errModelLoad, err)
	}
	disease, err := newLabelEncoder("disease", art.Encoders.Disease)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errModelLoad, err)
	}
	target, err := newLabelEncoder("diet type", art.Encoders.Target)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errModelLoad, err)
	}
	return &dietPredictor{estimator: est, gender: gender, disease: disease, target: target}, nil
}

// isFinite is false for NaN and ±Inf.
func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
