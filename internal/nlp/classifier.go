// Package nlp classifies student questions into support categories and
// serves the per-category FAQ templates.
package nlp

import (
	"math"
	"sort"
	"sync"

	"github.com/ogrenci-destek/destekai/internal/textindex"
)

// classifierVocabulary caps the classifier's TF-IDF vocabulary.
const classifierVocabulary = 5000

// confidenceScale is the sigmoid scale factor applied to the gap between
// the two highest margins. Tuned together with the routing thresholds; do
// not change one without the other.
const confidenceScale = 2.0

// Classifier predicts a (category, confidence) pair for arbitrary input
// text. It trains deterministically from the fixed seed table, lazily on
// first Predict or explicitly at startup; retraining replaces the model
// atomically so concurrent readers are safe.
type Classifier struct {
	mu    sync.RWMutex
	state *classifierState
}

// classifierState is one immutable trained artifact.
type classifierState struct {
	vectorizer *textindex.Vectorizer
	model      *linearModel
}

func NewClassifier() *Classifier {
	return &Classifier{}
}

// Train fits the TF-IDF transform and the one-vs-rest separators over the
// seed table. Training is idempotent: the seed table is fixed, the
// optimizer deterministic.
func (c *Classifier) Train() {
	var texts, labels []string
	for _, cat := range seedCategories {
		for _, example := range cat.Examples {
			texts = append(texts, example)
			labels = append(labels, cat.Name)
		}
	}

	// Class indices follow sorted label order, independent of table order.
	classes := make([]string, 0, len(seedCategories))
	seen := make(map[string]struct{})
	for _, l := range labels {
		if _, ok := seen[l]; ok {
			continue
		}
		seen[l] = struct{}{}
		classes = append(classes, l)
	}
	sort.Strings(classes)

	classIndex := make(map[string]int, len(classes))
	for i, name := range classes {
		classIndex[name] = i
	}

	vectorizer := textindex.NewVectorizer(textindex.VectorizerConfig{
		MaxFeatures: classifierVocabulary,
		Bigrams:     true,
		SublinearTF: true,
	})
	vectorizer.Fit(texts)

	vectors := make([]textindex.SparseVector, len(texts))
	labelIdx := make([]int, len(texts))
	for i, text := range texts {
		vectors[i] = vectorizer.Transform(text)
		labelIdx[i] = classIndex[labels[i]]
	}

	model := trainLinear(vectors, labelIdx, classes, vectorizer.Dimension())

	c.mu.Lock()
	c.state = &classifierState{vectorizer: vectorizer, model: model}
	c.mu.Unlock()
}

// Predict returns the category and a confidence in [0,1] for text. The
// confidence reflects the separation between the best and second-best
// margin, not a calibrated probability: a decisive gap approaches 1, a
// near-tie stays around 0.5 regardless of absolute scores. Empty input is
// tolerated; it scores near the bias terms and comes back low-confidence.
func (c *Classifier) Predict(text string) (string, float64) {
	state := c.ensureTrained()

	vec := state.vectorizer.Transform(text)
	scores := state.model.decisionScores(vec, state.vectorizer.Dimension())

	var (
		category   string
		confidence float64
	)
	if len(scores) == 1 {
		// Two categories: one signed margin decides the side.
		confidence = sigmoid(math.Abs(scores[0]))
		if scores[0] > 0 {
			category = state.model.Classes[1]
		} else {
			category = state.model.Classes[0]
		}
	} else {
		best := 0
		for i, s := range scores {
			if s > scores[best] {
				best = i
			}
		}
		category = state.model.Classes[best]

		sorted := append([]float64(nil), scores...)
		sort.Sort(sort.Reverse(sort.Float64Slice(sorted)))
		confidence = sigmoid(confidenceScale * (sorted[0] - sorted[1]))
	}

	return category, round4(confidence)
}

// FAQAnswer returns the fixed template for a category; unknown categories
// map to the catch-all template.
func (c *Classifier) FAQAnswer(category string) string {
	if answer, ok := faqTemplates[category]; ok {
		return answer
	}
	return faqTemplates[fallbackCategory]
}

// Categories returns the category names in declaration order.
func (c *Classifier) Categories() []string {
	names := make([]string, len(seedCategories))
	for i, cat := range seedCategories {
		names[i] = cat.Name
	}
	return names
}

func (c *Classifier) ensureTrained() *classifierState {
	c.mu.RLock()
	state := c.state
	c.mu.RUnlock()
	if state != nil {
		return state
	}

	c.Train()

	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}

func round4(f float64) float64 {
	return math.Round(f*10000) / 10000
}
