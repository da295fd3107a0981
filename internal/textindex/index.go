package textindex

import (
	"math"
	"sort"
	"strings"
	"sync"

	"github.com/ogrenci-destek/destekai/internal/domain"
)

// maxVocabulary caps the knowledge index vocabulary.
const maxVocabulary = 10000

// Index is the knowledge index: a fitted vectorizer, one L2-normalized
// weight vector per chunk, and the backing chunk list. It is built once at
// startup (or loaded from cache) and read concurrently afterwards; rebuilds
// swap the whole state atomically so readers never observe a partial index.
type Index struct {
	mu    sync.RWMutex
	state *indexState
}

// indexState is the immutable artifact produced by one build. The three
// parts are persisted together so they can only ever be loaded as a
// matched set.
type indexState struct {
	Vectorizer *Vectorizer
	Matrix     []SparseVector
	Chunks     []domain.Chunk
}

// NewIndex returns an empty, not-ready index.
func NewIndex() *Index {
	return &Index{}
}

// Ready reports whether a successful build or cache load has happened.
func (ix *Index) Ready() bool {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return ix.state != nil
}

// Size returns the number of indexed chunks.
func (ix *Index) Size() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	if ix.state == nil {
		return 0
	}
	return len(ix.state.Chunks)
}

// Build fits the vector space over the given chunks and swaps it in. An
// empty chunk list leaves the index not-ready without error; the caller is
// expected to degrade to "knowledge layer unavailable".
func (ix *Index) Build(chunks []domain.Chunk) {
	if len(chunks) == 0 {
		return
	}

	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Text
	}

	vectorizer := NewVectorizer(VectorizerConfig{
		MaxFeatures: maxVocabulary,
		Bigrams:     true,
		SublinearTF: true,
		StopWords:   TurkishStopWords,
	})
	vectorizer.Fit(texts)

	matrix := make([]SparseVector, len(texts))
	for i, text := range texts {
		matrix[i] = vectorizer.Transform(text)
	}

	ix.swap(&indexState{Vectorizer: vectorizer, Matrix: matrix, Chunks: chunks})
}

// Invalidate marks the index not-ready until the next build.
func (ix *Index) Invalidate() {
	ix.swap(nil)
}

// Retrieve returns the topK chunks most similar to the query, descending by
// score with ties broken by sequence index. Results with no lexical overlap
// (score <= 0) are dropped. A not-ready index or blank query yields an
// empty result, never an error.
func (ix *Index) Retrieve(query string, topK int) []domain.RetrievalResult {
	ix.mu.RLock()
	state := ix.state
	ix.mu.RUnlock()

	if state == nil || topK <= 0 {
		return nil
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}

	queryVec := state.Vectorizer.Transform(query)

	scores := make([]float64, len(state.Matrix))
	for i, row := range state.Matrix {
		scores[i] = row.Dot(queryVec)
	}

	order := make([]int, len(scores))
	for i := range order {
		order[i] = i
	}
	// Stable sort on a sequence-ordered slice: equal scores keep the chunk
	// that was fit first.
	sort.SliceStable(order, func(a, b int) bool {
		return scores[order[a]] > scores[order[b]]
	})

	if topK > len(order) {
		topK = len(order)
	}

	results := make([]domain.RetrievalResult, 0, topK)
	for _, i := range order[:topK] {
		if scores[i] <= 0 {
			continue
		}
		chunk := state.Chunks[i]
		results = append(results, domain.RetrievalResult{
			ChunkText:   chunk.Text,
			Score:       round4(scores[i]),
			Source:      chunk.Source,
			SlideNumber: chunk.SlideNumber,
		})
	}
	return results
}

func (ix *Index) swap(state *indexState) {
	ix.mu.Lock()
	ix.state = state
	ix.mu.Unlock()
}

func (ix *Index) snapshot() *indexState {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return ix.state
}

func round4(f float64) float64 {
	return math.Round(f*10000) / 10000
}
