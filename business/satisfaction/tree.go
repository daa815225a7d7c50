package satisfaction

import (
	"fmt"
	"math"
	"sort"
)

// Sample is one training row: a feature vector and a binary label.
type Sample struct {
	Features []float64
	Label    int
}

// Config bounds the tree. Seed only affects the train/test split helper;
// tree construction itself is fully deterministic.
type Config struct {
	MaxDepth int
	Seed     int64
}

// Model is a depth-bounded CART classifier with entropy splitting.
// predict-proba returns the positive-class fraction of the reached leaf.
type Model struct {
	root         *node
	classes      []int
	featureCount int
}

type node struct {
	leaf      bool
	feature   int
	threshold float64
	left      *node
	right     *node
	positives int
	total     int
}

// Fit builds the tree. Feature and threshold candidates are scanned in a
// fixed order so identical input always yields an identical tree.
func Fit(samples []Sample, cfg Config) (*Model, error) {
	if len(samples) == 0 {
		return nil, fmt.Errorf("no training samples")
	}
	if cfg.MaxDepth <= 0 {
		return nil, fmt.Errorf("max depth must be positive")
	}

	featureCount := len(samples[0].Features)
	seen := map[int]bool{}
	for _, s := range samples {
		if len(s.Features) != featureCount {
			return nil, fmt.Errorf("inconsistent feature count: %d != %d", len(s.Features), featureCount)
		}
		seen[s.Label] = true
	}

	classes := make([]int, 0, len(seen))
	for c := range seen {
		classes = append(classes, c)
	}
	sort.Ints(classes)

	return &Model{
		root:         grow(samples, 0, cfg.MaxDepth),
		classes:      classes,
		featureCount: featureCount,
	}, nil
}

// SingleClass reports whether training observed only one label class.
func (m *Model) SingleClass() bool {
	return len(m.classes) < 2
}

// PredictProba returns the probability of the positive (satisfied) class.
// A single-class model always answers 1.0; that is the documented degenerate
// rule, not an error.
func (m *Model) PredictProba(features []float64) (float64, error) {
	if len(features) != m.featureCount {
		return 0, fmt.Errorf("expected %d features, got %d", m.featureCount, len(features))
	}

	if m.SingleClass() {
		return 1.0, nil
	}

	n := m.root
	for !n.leaf {
		if features[n.feature] <= n.threshold {
			n = n.left
		} else {
			n = n.right
		}
	}

	if n.total == 0 {
		return 0, nil
	}

	return float64(n.positives) / float64(n.total), nil
}

// PredictLabel thresholds the probability at 0.5.
func (m *Model) PredictLabel(features []float64) (int, error) {
	p, err := m.PredictProba(features)
	if err != nil {
		return 0, err
	}
	if p >= 0.5 {
		return 1, nil
	}
	return 0, nil
}

func grow(samples []Sample, depth, maxDepth int) *node {
	positives := 0
	for _, s := range samples {
		if s.Label == 1 {
			positives++
		}
	}

	n := &node{positives: positives, total: len(samples)}

	pure := positives == 0 || positives == len(samples)
	if depth >= maxDepth || pure || len(samples) < 2 {
		n.leaf = true
		return n
	}

	feature, threshold, gain := bestSplit(samples)
	if gain <= 0 {
		n.leaf = true
		return n
	}

	var left, right []Sample
	for _, s := range samples {
		if s.Features[feature] <= threshold {
			left = append(left, s)
		} else {
			right = append(right, s)
		}
	}
	if len(left) == 0 || len(right) == 0 {
		n.leaf = true
		return n
	}

	n.feature = feature
	n.threshold = threshold
	n.left = grow(left, depth+1, maxDepth)
	n.right = grow(right, depth+1, maxDepth)

	return n
}

// bestSplit scans every feature and every midpoint between adjacent distinct
// values, keeping the first split with maximum information gain.
func bestSplit(samples []Sample) (int, float64, float64) {
	parent := entropy(samples)

	bestFeature := -1
	bestThreshold := 0.0
	bestGain := 0.0

	featureCount := len(samples[0].Features)
	for f := 0; f < featureCount; f++ {
		values := make([]float64, 0, len(samples))
		for _, s := range samples {
			values = append(values, s.Features[f])
		}
		sort.Float64s(values)

		for i := 1; i < len(values); i++ {
			if values[i] == values[i-1] {
				continue
			}
			threshold := (values[i] + values[i-1]) / 2

			var left, right []Sample
			for _, s := range samples {
				if s.Features[f] <= threshold {
					left = append(left, s)
				} else {
					right = append(right, s)
				}
			}

			pLeft := float64(len(left)) / float64(len(samples))
			gain := parent - pLeft*entropy(left) - (1-pLeft)*entropy(right)
			if gain > bestGain {
				bestFeature = f
				bestThreshold = threshold
				bestGain = gain
			}
		}
	}

	return bestFeature, bestThreshold, bestGain
}

func entropy(samples []Sample) float64 {
	if len(samples) == 0 {
		return 0
	}

	positives := 0
	for _, s := range samples {
		if s.Label == 1 {
			positives++
		}
	}

	p := float64(positives) / float64(len(samples))
	if p == 0 || p == 1 {
		return 0
	}

	return -p*math.Log2(p) - (1-p)*math.Log2(1-p)
}
