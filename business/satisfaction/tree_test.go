package satisfaction

import (
	"testing"
)

func TestFitSeparableData(t *testing.T) {
	// price below 20000 satisfied, above not
	samples := []Sample{
		{Features: []float64{10000}, Label: 1},
		{Features: []float64{12000}, Label: 1},
		{Features: []float64{15000}, Label: 1},
		{Features: []float64{30000}, Label: 0},
		{Features: []float64{35000}, Label: 0},
		{Features: []float64{40000}, Label: 0},
	}

	model, err := Fit(samples, Config{MaxDepth: 4, Seed: 42})
	if err != nil {
		t.Fatalf("Fit: %v", err)
	}
	if model.SingleClass() {
		t.Fatal("expected two classes")
	}

	pLow, err := model.PredictProba([]float64{11000})
	if err != nil {
		t.Fatalf("PredictProba: %v", err)
	}
	if pLow != 1.0 {
		t.Errorf("cheap venue proba = %v, want 1.0", pLow)
	}

	pHigh, err := model.PredictProba([]float64{38000})
	if err != nil {
		t.Fatalf("PredictProba: %v", err)
	}
	if pHigh != 0.0 {
		t.Errorf("expensive venue proba = %v, want 0.0", pHigh)
	}

	label, err := model.PredictLabel([]float64{11000})
	if err != nil {
		t.Fatalf("PredictLabel: %v", err)
	}
	if label != 1 {
		t.Errorf("cheap venue label = %d, want 1", label)
	}
}

func TestFitSingleClassAlwaysOne(t *testing.T) {
	samples := []Sample{
		{Features: []float64{10000, 0}, Label: 1},
		{Features: []float64{30000, 1}, Label: 1},
		{Features: []float64{50000, 0}, Label: 1},
	}

	model, err := Fit(samples, Config{MaxDepth: 4, Seed: 42})
	if err != nil {
		t.Fatalf("Fit: %v", err)
	}
	if !model.SingleClass() {
		t.Fatal("expected single-class model")
	}

	for _, features := range [][]float64{{1, 0}, {99999, 1}, {30000, 0}} {
		p, err := model.PredictProba(features)
		if err != nil {
			t.Fatalf("PredictProba(%v): %v", features, err)
		}
		if p != 1.0 {
			t.Errorf("PredictProba(%v) = %v, want exactly 1.0", features, p)
		}
	}
}

func TestFitDeterministic(t *testing.T) {
	samples := []Sample{
		{Features: []float64{10000, 0, 30}, Label: 1},
		{Features: []float64{12000, 1, 28}, Label: 0},
		{Features: []float64{25000, 0, 31}, Label: 1},
		{Features: []float64{40000, 1, 26}, Label: 0},
		{Features: []float64{18000, 0, 33}, Label: 1},
		{Features: []float64{33000, 1, 29}, Label: 0},
	}

	a, err := Fit(samples, Config{MaxDepth: 5, Seed: 42})
	if err != nil {
		t.Fatalf("Fit: %v", err)
	}
	b, err := Fit(samples, Config{MaxDepth: 5, Seed: 42})
	if err != nil {
		t.Fatalf("Fit: %v", err)
	}

	probe := [][]float64{
		{10000, 0, 30}, {20000, 1, 27}, {35000, 0, 32}, {5000, 1, 25},
	}
	for _, features := range probe {
		pa, _ := a.PredictProba(features)
		pb, _ := b.PredictProba(features)
		if pa != pb {
			t.Errorf("divergent predictions for %v: %v vs %v", features, pa, pb)
		}
	}
}

func TestFitInputErrors(t *testing.T) {
	if _, err := Fit(nil, Config{MaxDepth: 4}); err == nil {
		t.Error("expected error on empty training set")
	}

	samples := []Sample{{Features: []float64{1}, Label: 0}}
	if _, err := Fit(samples, Config{MaxDepth: 0}); err == nil {
		t.Error("expected error on zero max depth")
	}

	ragged := []Sample{
		{Features: []float64{1, 2}, Label: 0},
		{Features: []float64{1}, Label: 1},
	}
	if _, err := Fit(ragged, Config{MaxDepth: 4}); err == nil {
		t.Error("expected error on ragged features")
	}
}

func TestPredictFeatureCountMismatch(t *testing.T) {
	samples := []Sample{
		{Features: []float64{1, 2}, Label: 0},
		{Features: []float64{3, 4}, Label: 1},
	}
	model, err := Fit(samples, Config{MaxDepth: 2})
	if err != nil {
		t.Fatalf("Fit: %v", err)
	}

	if _, err := model.PredictProba([]float64{1}); err == nil {
		t.Error("expected error on short feature vector")
	}
}

func TestSplitTrainTestDeterministic(t *testing.T) {
	samples := make([]Sample, 20)
	for i := range samples {
		samples[i] = Sample{Features: []float64{float64(i)}, Label: i % 2}
	}

	train1, test1 := SplitTrainTest(samples, 0.2, 42)
	train2, test2 := SplitTrainTest(samples, 0.2, 42)

	if len(test1) != 4 || len(train1) != 16 {
		t.Fatalf("split sizes = %d/%d, want 16/4", len(train1), len(test1))
	}
	for i := range test1 {
		if test1[i].Features[0] != test2[i].Features[0] {
			t.Errorf("test row %d differs between identical seeds", i)
		}
	}
	for i := range train1 {
		if train1[i].Features[0] != train2[i].Features[0] {
			t.Errorf("train row %d differs between identical seeds", i)
		}
	}
}

func TestAccuracyOnSeparableData(t *testing.T) {
	samples := []Sample{
		{Features: []float64{1}, Label: 0},
		{Features: []float64{2}, Label: 0},
		{Features: []float64{8}, Label: 1},
		{Features: []float64{9}, Label: 1},
	}
	model, err := Fit(samples, Config{MaxDepth: 3})
	if err != nil {
		t.Fatalf("Fit: %v", err)
	}

	if acc := Accuracy(model, samples); acc != 1.0 {
		t.Errorf("training accuracy = %v, want 1.0", acc)
	}
	if acc := Accuracy(model, nil); acc != 0 {
		t.Errorf("accuracy on empty set = %v, want 0", acc)
	}
}
