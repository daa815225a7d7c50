package satisfaction

import "math/rand"

// SplitTrainTest shuffles with the configured seed and holds out testFrac of
// the samples. The same seed always produces the same split.
func SplitTrainTest(samples []Sample, testFrac float64, seed int64) (train, test []Sample) {
	r := rand.New(rand.NewSource(seed))
	perm := r.Perm(len(samples))

	testSize := int(float64(len(samples)) * testFrac)
	if testSize < 1 && len(samples) > 1 && testFrac > 0 {
		testSize = 1
	}

	test = make([]Sample, 0, testSize)
	train = make([]Sample, 0, len(samples)-testSize)
	for i, idx := range perm {
		if i < testSize {
			test = append(test, samples[idx])
		} else {
			train = append(train, samples[idx])
		}
	}

	return train, test
}

// Accuracy is the fraction of samples whose predicted label matches.
// Diagnostic only; the pipeline never gates on it.
func Accuracy(m *Model, samples []Sample) float64 {
	if len(samples) == 0 {
		return 0
	}

	correct := 0
	for _, s := range samples {
		label, err := m.PredictLabel(s.Features)
		if err != nil {
			continue
		}
		if label == s.Label {
			correct++
		}
	}

	return float64(correct) / float64(len(samples))
}
