package domain

// Source labels for knowledge chunks. The slide deck and the FAQ document
// feed one shared index; the label decides the attribution line of a
// grounded reply.
const (
	SourceSlides = "slides"
	SourceFAQ    = "faq"
)

// Chunk is a bounded, source-tagged unit of indexed knowledge text.
// Chunks are created once during an index build and immutable afterwards.
type Chunk struct {
	// Text is normalized: horizontal whitespace collapsed, trimmed.
	Text string
	// Source is one of the Source* labels above.
	Source string
	// SequenceIndex is unique across the whole corpus and assigned in
	// creation order; retrieval ties are broken by it.
	SequenceIndex int
	// SlideNumber is set only for chunks derived from a paginated source.
	SlideNumber *int
}

// RetrievalResult is one ranked hit from the knowledge index.
type RetrievalResult struct {
	ChunkText   string
	Score       float64 // cosine similarity, rounded to 4 decimals
	Source      string
	SlideNumber *int
}
