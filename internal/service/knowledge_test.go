package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ogrenci-destek/destekai/internal/chunker"
	"github.com/ogrenci-destek/destekai/internal/domain"
	"github.com/ogrenci-destek/destekai/internal/testutil"
	"github.com/ogrenci-destek/destekai/internal/textindex"
)

type knowledgeFixture struct {
	svc      *KnowledgeService
	index    *textindex.Index
	cacheDir string
}

// newKnowledgeFixture writes a small slide deck and FAQ document into a
// temp dir and points a fresh service at them.
func newKnowledgeFixture(t *testing.T) *knowledgeFixture {
	t.Helper()
	dir := t.TempDir()

	slidesPath := filepath.Join(dir, "sunum.pptx")
	faqPath := filepath.Join(dir, "sss.docx")
	cacheDir := filepath.Join(dir, "cache")
	require.NoError(t, os.MkdirAll(cacheDir, 0o755))

	slides := testutil.BuildPPTX(t, map[int]string{
		2: "Devam zorunluluğu: öğrencinin toplam eğitim süresinin en az %90'ına katılması zorunludur.",
		5: "Puantaj formu her ayın 1-7'si arasında işletme yetkilisi onayıyla teslim edilir.",
	})
	require.NoError(t, os.WriteFile(slidesPath, slides, 0o644))

	faq := testutil.BuildDOCX(t, []string{
		"Soru: Ara rapor ne zaman teslim edilir? Cevap: Eğitim süresinin ortasında, genellikle 6-8. haftada.",
	})
	require.NoError(t, os.WriteFile(faqPath, faq, 0o644))

	index := textindex.NewIndex()
	return &knowledgeFixture{
		svc:      NewKnowledgeService(index, chunker.DefaultConfig(), slidesPath, faqPath, cacheDir),
		index:    index,
		cacheDir: cacheDir,
	}
}

func TestKnowledgeBuildFromSources(t *testing.T) {
	f := newKnowledgeFixture(t)

	require.NoError(t, f.svc.Build(context.Background(), false))
	assert.True(t, f.svc.Ready())
	assert.Equal(t, 3, f.svc.Size())

	results := f.svc.Search("puantaj formu işletme yetkilisi", 3)
	require.NotEmpty(t, results)
	assert.Contains(t, results[0].ChunkText, "Puantaj formu")

	// Slide chunks carry their slide number; FAQ chunks continue the
	// sequence after them.
	require.NotNil(t, results[0].SlideNumber)
	assert.Equal(t, 5, *results[0].SlideNumber)

	faqResults := f.svc.Search("ara rapor ne zaman", 3)
	require.NotEmpty(t, faqResults)
	assert.Equal(t, domain.SourceFAQ, faqResults[0].Source)

	// A cache artifact was written for the next start.
	_, err := os.Stat(textindex.CachePath(f.cacheDir))
	assert.NoError(t, err)
}

func TestKnowledgeBuildUsesCache(t *testing.T) {
	f := newKnowledgeFixture(t)
	require.NoError(t, f.svc.Build(context.Background(), false))

	// Remove the sources: a cached build must not touch them.
	require.NoError(t, os.Remove(f.svc.slidesPath))
	require.NoError(t, os.Remove(f.svc.faqPath))

	restored := textindex.NewIndex()
	svc := NewKnowledgeService(restored, chunker.DefaultConfig(), f.svc.slidesPath, f.svc.faqPath, f.cacheDir)
	require.NoError(t, svc.Build(context.Background(), false))
	assert.True(t, svc.Ready())
	assert.Equal(t, 3, svc.Size())
}

func TestKnowledgeBuildForceSkipsCache(t *testing.T) {
	f := newKnowledgeFixture(t)
	require.NoError(t, f.svc.Build(context.Background(), false))

	// With both sources gone a forced rebuild has an empty corpus.
	require.NoError(t, os.Remove(f.svc.slidesPath))
	require.NoError(t, os.Remove(f.svc.faqPath))

	require.NoError(t, f.svc.Build(context.Background(), true))
	assert.False(t, f.svc.Ready())
}

func TestKnowledgeBuildCorruptCacheRebuilds(t *testing.T) {
	f := newKnowledgeFixture(t)
	require.NoError(t, os.WriteFile(textindex.CachePath(f.cacheDir), []byte("bozuk"), 0o644))

	require.NoError(t, f.svc.Build(context.Background(), false))
	assert.True(t, f.svc.Ready())
	assert.Equal(t, 3, f.svc.Size())
}

func TestKnowledgeBuildMissingSlidesStillIndexesFAQ(t *testing.T) {
	f := newKnowledgeFixture(t)
	require.NoError(t, os.Remove(f.svc.slidesPath))

	require.NoError(t, f.svc.Build(context.Background(), false))
	assert.True(t, f.svc.Ready())
	assert.Equal(t, 1, f.svc.Size())

	results := f.svc.Search("ara rapor", 3)
	require.NotEmpty(t, results)
	assert.Equal(t, domain.SourceFAQ, results[0].Source)
	assert.Nil(t, results[0].SlideNumber)
}

func TestKnowledgeBuildAllSourcesMissingStaysOffline(t *testing.T) {
	f := newKnowledgeFixture(t)
	require.NoError(t, os.Remove(f.svc.slidesPath))
	require.NoError(t, os.Remove(f.svc.faqPath))

	require.NoError(t, f.svc.Build(context.Background(), false))
	assert.False(t, f.svc.Ready())
	assert.Nil(t, f.svc.Search("puantaj", 3))
}

func TestKnowledgeRefreshPicksUpNewContent(t *testing.T) {
	f := newKnowledgeFixture(t)
	require.NoError(t, f.svc.Build(context.Background(), false))
	require.Equal(t, 3, f.svc.Size())

	// Replace the FAQ with a two-pair document and refresh.
	faq := testutil.BuildDOCX(t, []string{
		"Soru: Ara rapor ne zaman teslim edilir? Cevap: Eğitim süresinin ortasında.",
		"Soru: Uygulama raporu zorunlu mu? Cevap: Evet, eğitim sonunda teslim edilir.",
	})
	require.NoError(t, os.WriteFile(f.svc.faqPath, faq, 0o644))

	require.NoError(t, f.svc.Refresh(context.Background()))
	assert.True(t, f.svc.Ready())
	assert.Equal(t, 4, f.svc.Size())
}

func TestKnowledgeBuildInvalidChunkConfig(t *testing.T) {
	f := newKnowledgeFixture(t)
	svc := NewKnowledgeService(f.index, chunker.Config{Size: 10, Overlap: 20}, f.svc.slidesPath, f.svc.faqPath, f.cacheDir)

	err := svc.Build(context.Background(), false)
	assert.ErrorIs(t, err, domain.ErrInvalidChunkConfig)
}

type MockDocumentStore struct {
	mock.Mock
}

func (m *MockDocumentStore) FetchDocument(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockDocumentStore) PutDocument(ctx context.Context, key string, content []byte, contentType string) error {
	args := m.Called(ctx, key, content, contentType)
	return args.Error(0)
}

func TestKnowledgeBuildFromDocumentStore(t *testing.T) {
	f := newKnowledgeFixture(t)

	// Local files are ignored once a store is configured; keys are the
	// configured paths.
	store := new(MockDocumentStore)
	store.On("FetchDocument", mock.Anything, f.svc.slidesPath).Return(testutil.BuildPPTX(t, map[int]string{
		1: "Uygulama raporu eğitim sonunda hazırlanır ve danışman onayına sunulur.",
	}), nil)
	store.On("FetchDocument", mock.Anything, f.svc.faqPath).Return(nil,
		domain.NewDomainError(domain.ErrCodeSourceUnavailable, "object missing"))

	svc := f.svc.WithDocumentStore(store)
	require.NoError(t, svc.Build(context.Background(), true))

	assert.True(t, svc.Ready())
	assert.Equal(t, 1, svc.Size())
	store.AssertExpectations(t)
}

func TestKnowledgeUploadDocument(t *testing.T) {
	f := newKnowledgeFixture(t)
	faq := testutil.BuildDOCX(t, []string{
		"Soru: Yeni belge yüklendi mi? Cevap: Evet, nesne deposuna yazıldı.",
	})

	store := new(MockDocumentStore)
	store.On("PutDocument", mock.Anything, f.svc.faqPath, faq,
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document").Return(nil)

	svc := f.svc.WithDocumentStore(store)
	require.NoError(t, svc.UploadDocument(context.Background(), DocumentKindFAQ, faq))
	store.AssertExpectations(t)
}

func TestKnowledgeUploadDocumentRejectsUnreadableContent(t *testing.T) {
	f := newKnowledgeFixture(t)
	store := new(MockDocumentStore)
	svc := f.svc.WithDocumentStore(store)

	err := svc.UploadDocument(context.Background(), DocumentKindSlides, []byte("zip değil"))
	require.Error(t, err)

	var derr *domain.DomainError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, domain.ErrCodeValidation, derr.Code)
	store.AssertNotCalled(t, "PutDocument", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestKnowledgeUploadDocumentUnknownKind(t *testing.T) {
	f := newKnowledgeFixture(t)
	store := new(MockDocumentStore)
	svc := f.svc.WithDocumentStore(store)

	err := svc.UploadDocument(context.Background(), "pdf", []byte("belge"))
	require.Error(t, err)

	var derr *domain.DomainError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, domain.ErrCodeValidation, derr.Code)
}

func TestKnowledgeUploadDocumentWithoutStore(t *testing.T) {
	f := newKnowledgeFixture(t)

	err := f.svc.UploadDocument(context.Background(), DocumentKindFAQ, []byte("belge"))
	assert.ErrorIs(t, err, domain.ErrNoDocumentStore)
}
