package service

import (
	"context"
	"errors"
	"log"
	"strconv"

	"github.com/ogrenci-destek/destekai/internal/chunker"
	"github.com/ogrenci-destek/destekai/internal/domain"
	"github.com/ogrenci-destek/destekai/internal/extract"
	"github.com/ogrenci-destek/destekai/internal/telemetry"
	"github.com/ogrenci-destek/destekai/internal/textindex"
)

// DocumentStore reads and writes source documents in object storage.
// Optional: without one the service reads the configured local paths and
// uploads are rejected.
type DocumentStore interface {
	FetchDocument(ctx context.Context, key string) ([]byte, error)
	PutDocument(ctx context.Context, key string, content []byte, contentType string) error
}

// Document kinds accepted for replacement uploads.
const (
	DocumentKindSlides = "slides"
	DocumentKindFAQ    = "faq"
)

const (
	pptxContentType = "application/vnd.openxmlformats-officedocument.presentationml.presentation"
	docxContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

// KnowledgeService owns the knowledge index lifecycle: extraction,
// chunking, building, cache persistence, and queries. Missing sources and
// corrupt caches degrade (the index stays not-ready or rebuilds); they
// never fail Build.
type KnowledgeService struct {
	index      *textindex.Index
	chunkCfg   chunker.Config
	slidesPath string
	faqPath    string
	cacheDir   string
	store      DocumentStore
}

func NewKnowledgeService(index *textindex.Index, chunkCfg chunker.Config, slidesPath, faqPath, cacheDir string) *KnowledgeService {
	return &KnowledgeService{
		index:      index,
		chunkCfg:   chunkCfg,
		slidesPath: slidesPath,
		faqPath:    faqPath,
		cacheDir:   cacheDir,
	}
}

// WithDocumentStore makes the service fetch documents from object storage
// instead of the local filesystem.
func (s *KnowledgeService) WithDocumentStore(store DocumentStore) *KnowledgeService {
	s.store = store
	return s
}

// Build makes the index ready: from the cache when one exists, otherwise
// from the source documents. force skips the cache. An empty corpus (all
// sources missing) leaves the index not-ready; the chat layer then answers
// without the knowledge lookup.
func (s *KnowledgeService) Build(ctx context.Context, force bool) error {
	ctx, span := telemetry.StartSpan(ctx, "knowledge.build", telemetry.SpanAttributes{Operation: "build"})
	defer span.End()

	if err := s.chunkCfg.Validate(); err != nil {
		return err
	}

	if !force {
		ok, err := s.index.LoadCache(s.cacheDir)
		if err != nil {
			// Corrupt artifact: treat as a miss and rebuild over it.
			log.Printf("knowledge: discarding index cache: %v", err)
		}
		if ok {
			log.Printf("knowledge: index loaded from cache (%d chunks)", s.index.Size())
			return nil
		}
	}

	chunks, err := s.extractChunks(ctx)
	if err != nil {
		return err
	}
	if len(chunks) == 0 {
		log.Printf("knowledge: no source documents available, index stays offline")
		s.index.Invalidate()
		return nil
	}

	s.index.Build(chunks)
	log.Printf("knowledge: index built (%d chunks)", len(chunks))

	if err := s.index.SaveCache(s.cacheDir); err != nil {
		log.Printf("knowledge: index cache not written: %v", err)
	}
	return nil
}

// Refresh drops the cache artifact and the in-memory state, then rebuilds
// from the source documents.
func (s *KnowledgeService) Refresh(ctx context.Context) error {
	if err := textindex.ClearCache(s.cacheDir); err != nil {
		return err
	}
	s.index.Invalidate()
	return s.Build(ctx, true)
}

// UploadDocument stores a replacement source document after checking that
// it actually parses. The index is not rebuilt here; Refresh picks the new
// content up.
func (s *KnowledgeService) UploadDocument(ctx context.Context, kind string, content []byte) error {
	ctx, span := telemetry.StartSpan(ctx, "knowledge.upload", telemetry.SpanAttributes{Operation: "upload", Source: kind})
	defer span.End()

	if s.store == nil {
		return domain.ErrNoDocumentStore
	}

	var key, contentType string
	switch kind {
	case DocumentKindSlides:
		if _, err := extract.ExtractSlides(content); err != nil {
			return domain.NewDomainErrorWithCause(domain.ErrCodeValidation, "not a readable slide deck", err)
		}
		key, contentType = s.slidesPath, pptxContentType
	case DocumentKindFAQ:
		if _, err := extract.ExtractQA(content); err != nil {
			return domain.NewDomainErrorWithCause(domain.ErrCodeValidation, "not a readable FAQ document", err)
		}
		key, contentType = s.faqPath, docxContentType
	default:
		return domain.NewDomainError(domain.ErrCodeValidation, "document kind must be slides or faq")
	}

	return s.store.PutDocument(ctx, key, content, contentType)
}

// Search queries the index directly, bypassing the routing thresholds.
func (s *KnowledgeService) Search(query string, topK int) []domain.RetrievalResult {
	return s.index.Retrieve(query, topK)
}

// Ready reports whether the index can serve queries.
func (s *KnowledgeService) Ready() bool {
	return s.index.Ready()
}

// Size returns the number of indexed chunks.
func (s *KnowledgeService) Size() int {
	return s.index.Size()
}

// extractChunks extracts and chunks both sources. Slide chunks come first
// and FAQ chunks continue the sequence numbering, so retrieval ties always
// resolve the same way across rebuilds.
func (s *KnowledgeService) extractChunks(ctx context.Context) ([]domain.Chunk, error) {
	var chunks []domain.Chunk

	slides, err := s.loadSlides(ctx)
	switch {
	case isSourceUnavailable(err):
		log.Printf("knowledge: slide deck unavailable, skipping: %v", err)
	case err != nil:
		return nil, err
	default:
		units := make([]chunker.Unit, 0, len(slides))
		for _, slide := range slides {
			text := chunker.Normalize(slide.Text)
			if text == "" {
				continue
			}
			number := slide.Number
			units = append(units, chunker.Unit{
				Text:        strconv.Itoa(number) + "\n" + text,
				SlideNumber: &number,
			})
		}
		slideChunks, err := chunker.Split(units, s.chunkCfg, domain.SourceSlides, 0)
		if err != nil {
			return nil, err
		}
		chunks = append(chunks, slideChunks...)
	}

	pairs, err := s.loadQA(ctx)
	switch {
	case isSourceUnavailable(err):
		log.Printf("knowledge: FAQ document unavailable, skipping: %v", err)
	case err != nil:
		return nil, err
	default:
		chunks = append(chunks, chunker.FoldQA(pairs, len(chunks))...)
	}

	return chunks, nil
}

func (s *KnowledgeService) loadSlides(ctx context.Context) ([]extract.Slide, error) {
	if s.store != nil {
		content, err := s.store.FetchDocument(ctx, s.slidesPath)
		if err != nil {
			return nil, err
		}
		return extract.ExtractSlides(content)
	}
	return extract.LoadSlides(s.slidesPath)
}

func (s *KnowledgeService) loadQA(ctx context.Context) ([]chunker.QAPair, error) {
	if s.store != nil {
		content, err := s.store.FetchDocument(ctx, s.faqPath)
		if err != nil {
			return nil, err
		}
		return extract.ExtractQA(content)
	}
	return extract.LoadQA(s.faqPath)
}

func isSourceUnavailable(err error) bool {
	if err == nil {
		return false
	}
	var derr *domain.DomainError
	return errors.As(err, &derr) && derr.Code == domain.ErrCodeSourceUnavailable
}
