package nlp

import "github.com/ogrenci-destek/destekai/internal/textindex"

// Optimizer bounds. Training stops early once an epoch passes with no
// margin violations.
const (
	regC      = 1.0
	maxEpochs = 100
)

// linearModel is a set of one-vs-rest linear separators over the fitted
// vector space. Classes are in sorted label order. With exactly two classes
// a single separator is trained whose positive side is Classes[1]. The last
// weight of each separator is its bias term.
type linearModel struct {
	Classes []string
	Weights [][]float64
}

// trainLinear fits one-vs-rest max-margin separators with deterministic
// subgradient descent on the hinge loss. Class-imbalance compensation
// weights every sample by n/(k*n_class). Samples are visited in a fixed
// order, so training is deterministic for a fixed seed table.
func trainLinear(vectors []textindex.SparseVector, labels []int, classes []string, dim int) *linearModel {
	n := len(vectors)
	k := len(classes)

	counts := make([]int, k)
	for _, l := range labels {
		counts[l]++
	}
	classWeight := make([]float64, k)
	for c := range classWeight {
		if counts[c] > 0 {
			classWeight[c] = float64(n) / (float64(k) * float64(counts[c]))
		}
	}

	separators := k
	if k == 2 {
		separators = 1
	}

	model := &linearModel{Classes: classes, Weights: make([][]float64, separators)}
	for s := 0; s < separators; s++ {
		positive := s
		if k == 2 {
			positive = 1
		}
		model.Weights[s] = trainSeparator(vectors, labels, classWeight, positive, dim)
	}
	return model
}

// trainSeparator runs Pegasos-style descent for one binary separator. The
// bias is carried as an extra always-on feature at index dim.
func trainSeparator(vectors []textindex.SparseVector, labels []int, classWeight []float64, positive, dim int) []float64 {
	w := make([]float64, dim+1)
	lambda := 1 / (regC * float64(len(vectors)))

	t := 0
	for epoch := 0; epoch < maxEpochs; epoch++ {
		violations := 0
		for i, x := range vectors {
			t++
			eta := 1 / (lambda * float64(t))

			y := -1.0
			if labels[i] == positive {
				y = 1.0
			}
			sw := classWeight[labels[i]]

			margin := y * decision(w, x, dim)

			shrink := 1 - eta*lambda
			for j := range w {
				w[j] *= shrink
			}
			if margin < 1 {
				violations++
				step := eta * y * sw
				for _, tw := range x {
					w[tw.Index] += step * tw.Weight
				}
				w[dim] += step
			}
		}
		if violations == 0 {
			break
		}
	}
	return w
}

// decisionScores returns the raw margin of every separator for x.
func (m *linearModel) decisionScores(x textindex.SparseVector, dim int) []float64 {
	scores := make([]float64, len(m.Weights))
	for s, w := range m.Weights {
		scores[s] = decision(w, x, dim)
	}
	return scores
}

func decision(w []float64, x textindex.SparseVector, dim int) float64 {
	f := w[dim]
	for _, tw := range x {
		f += w[tw.Index] * tw.Weight
	}
	return f
}
