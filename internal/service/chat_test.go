package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ogrenci-destek/destekai/internal/domain"
)

const (
	testConfidenceThreshold = 0.65
	testKnowledgeThreshold  = 0.22
)

type chatFixture struct {
	sessions   *MockSessionRepository
	messages   *MockMessageRepository
	tickets    *MockTicketRepository
	knowledge  *MockKnowledgeSearcher
	classifier *MockIntentClassifier
	svc        *ChatService
}

func newChatFixture() *chatFixture {
	f := &chatFixture{
		sessions:   new(MockSessionRepository),
		messages:   new(MockMessageRepository),
		tickets:    new(MockTicketRepository),
		knowledge:  new(MockKnowledgeSearcher),
		classifier: new(MockIntentClassifier),
	}
	f.svc = NewChatService(f.sessions, f.messages, f.tickets, f.knowledge, f.classifier, testConfidenceThreshold, testKnowledgeThreshold)
	return f
}

func (f *chatFixture) expectExistingSession(id string) {
	f.sessions.On("GetByID", mock.Anything, id).Return(&domain.UserSession{ID: id}, nil)
}

func TestHandleMessageKeywordOverride(t *testing.T) {
	f := newChatFixture()
	f.expectExistingSession("s-1")
	f.classifier.On("Predict", "Bu staj mı acaba?").Return("Diğer", 0.3)
	f.messages.On("Create", mock.Anything, mock.Anything).Return(nil)

	decision, err := f.svc.HandleMessage(context.Background(), "s-1", "Bu staj mı acaba? ")
	require.NoError(t, err)

	assert.Equal(t, domain.BelgeCategory, decision.Category)
	assert.Equal(t, keywordConfidence, decision.Confidence)
	assert.Contains(t, decision.ReplyText, "staj DEĞİLDİR")
	assert.Empty(t, decision.TicketRef)

	// Keyword matching is case-insensitive and bypasses the other layers.
	f.knowledge.AssertNotCalled(t, "Ready")
	f.tickets.AssertNotCalled(t, "Create")
}

func TestHandleMessageGroundedReply(t *testing.T) {
	f := newChatFixture()
	f.expectExistingSession("s-1")
	f.classifier.On("Predict", mock.Anything).Return("Akademik", 0.4)
	f.messages.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.knowledge.On("Ready").Return(true)

	chunk := strings.Repeat("İşletmede geçirilen her gün puantaj formuna işlenir ve onaylanır. ", 3)
	f.knowledge.On("Search", "harç dekontu nereye yüklenir", retrievalTopK).Return([]domain.RetrievalResult{
		{ChunkText: chunk, Score: 0.41, Source: domain.SourceFAQ},
	})

	decision, err := f.svc.HandleMessage(context.Background(), "s-1", "harç dekontu nereye yüklenir")
	require.NoError(t, err)

	assert.Equal(t, domain.BelgeCategory, decision.Category)
	assert.Equal(t, 0.41, decision.Confidence)
	assert.Contains(t, decision.ReplyText, "puantaj formuna işlenir")
	assert.Contains(t, decision.ReplyText, attributionFAQ)
	f.tickets.AssertNotCalled(t, "Create")
}

func TestHandleMessageWeakRetrievalFallsThrough(t *testing.T) {
	f := newChatFixture()
	f.expectExistingSession("s-1")
	f.classifier.On("Predict", mock.Anything).Return("Teknik", 0.88)
	f.classifier.On("FAQAnswer", "Teknik").Return("Teknik sorunlar için destek@uni.edu adresine yazabilirsin.")
	f.messages.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.knowledge.On("Ready").Return(true)
	f.knowledge.On("Search", mock.Anything, retrievalTopK).Return([]domain.RetrievalResult{
		{ChunkText: "alakasız içerik", Score: 0.05, Source: domain.SourceSlides},
	})

	decision, err := f.svc.HandleMessage(context.Background(), "s-1", "sisteme giremiyorum")
	require.NoError(t, err)

	// Score below the knowledge threshold: confident classifier answers.
	assert.Equal(t, "Teknik", decision.Category)
	assert.Equal(t, 0.88, decision.Confidence)
	assert.Contains(t, decision.ReplyText, "destek@uni.edu")
}

func TestHandleMessageIndexOfflineUsesClassifier(t *testing.T) {
	f := newChatFixture()
	f.expectExistingSession("s-1")
	f.classifier.On("Predict", mock.Anything).Return("Ödeme", 0.71)
	f.classifier.On("FAQAnswer", "Ödeme").Return("Ödeme işlemleri için öğrenci işleri ile görüşebilirsin.")
	f.messages.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.knowledge.On("Ready").Return(false)

	decision, err := f.svc.HandleMessage(context.Background(), "s-1", "taksit ödemesi gecikti")
	require.NoError(t, err)

	assert.Equal(t, "Ödeme", decision.Category)
	f.knowledge.AssertNotCalled(t, "Search")
}

func TestHandleMessageEscalatesToTicket(t *testing.T) {
	f := newChatFixture()
	f.expectExistingSession("s-1")
	f.classifier.On("Predict", mock.Anything).Return("Diğer", 0.31)
	f.messages.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.knowledge.On("Ready").Return(false)
	f.tickets.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.Ticket).ID = 7
	}).Return(nil)

	decision, err := f.svc.HandleMessage(context.Background(), "s-1", "kimlik kartım kayboldu ne yapmalıyım")
	require.NoError(t, err)

	assert.Equal(t, "TCK-7", decision.TicketRef)
	assert.Equal(t, "Talebini aldım ✅\nTakip numaran: TCK-7\nEn kısa sürede dönüş yapılacak.", decision.ReplyText)
	assert.Equal(t, "Diğer", decision.Category)
	assert.Equal(t, 0.31, decision.Confidence)

	f.tickets.AssertCalled(t, "Create", mock.Anything, mock.MatchedBy(func(tk *domain.Ticket) bool {
		return tk.SessionID == "s-1" &&
			tk.OriginalText == "kimlik kartım kayboldu ne yapmalıyım" &&
			tk.PredictedCategory == "Diğer" &&
			tk.Status == domain.TicketStatusOpen &&
			tk.Confidence != nil && *tk.Confidence == 0.31
	}))
}

func TestHandleMessagePersistsBothSides(t *testing.T) {
	f := newChatFixture()
	f.expectExistingSession("s-1")
	f.classifier.On("Predict", "formu ne zaman teslim etmeliyim bilmiyorum").Return("Akademik", 0.5)
	f.knowledge.On("Ready").Return(false)
	f.tickets.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.Ticket).ID = 1
	}).Return(nil)

	var stored []*domain.Message
	f.messages.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		stored = append(stored, args.Get(1).(*domain.Message))
	}).Return(nil)

	// "puantaj" alone would hit the keyword layer; phrase it past it.
	decision, err := f.svc.HandleMessage(context.Background(), "s-1", "formu ne zaman teslim etmeliyim bilmiyorum")
	require.NoError(t, err)
	require.Len(t, stored, 2)

	user, bot := stored[0], stored[1]
	assert.Equal(t, domain.RoleUser, user.Role)
	assert.Equal(t, "formu ne zaman teslim etmeliyim bilmiyorum", user.Text)
	assert.Equal(t, "Akademik", user.Category)
	require.NotNil(t, user.Confidence)
	assert.Equal(t, 0.5, *user.Confidence)

	assert.Equal(t, domain.RoleBot, bot.Role)
	assert.Equal(t, decision.ReplyText, bot.Text)
	assert.Equal(t, decision.Category, bot.Category)
	require.NotNil(t, bot.Confidence)
	assert.Equal(t, decision.Confidence, *bot.Confidence)
}

func TestHandleMessageEmptyText(t *testing.T) {
	f := newChatFixture()

	_, err := f.svc.HandleMessage(context.Background(), "s-1", "   \n\t ")
	assert.ErrorIs(t, err, domain.ErrEmptyMessage)
	f.sessions.AssertNotCalled(t, "GetByID")
	f.messages.AssertNotCalled(t, "Create")
}

func TestHandleMessageCreatesSessionOnFirstContact(t *testing.T) {
	f := newChatFixture()
	f.sessions.On("GetByID", mock.Anything, "yeni-oturum").Return(nil, domain.ErrSessionNotFound)
	f.sessions.On("Create", mock.Anything, mock.MatchedBy(func(s *domain.UserSession) bool {
		return s.ID == "yeni-oturum" && !s.CreatedAt.IsZero()
	})).Return(nil)
	f.classifier.On("Predict", mock.Anything).Return("Diğer", 0.2)
	f.messages.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.knowledge.On("Ready").Return(false)
	f.tickets.On("Create", mock.Anything, mock.Anything).Return(nil)

	_, err := f.svc.HandleMessage(context.Background(), "yeni-oturum", "merhaba")
	require.NoError(t, err)
	f.sessions.AssertExpectations(t)
}

func TestHandleMessageSessionLookupError(t *testing.T) {
	f := newChatFixture()
	dbErr := errors.New("connection reset")
	f.sessions.On("GetByID", mock.Anything, "s-1").Return(nil, dbErr)

	_, err := f.svc.HandleMessage(context.Background(), "s-1", "merhaba")
	assert.ErrorIs(t, err, dbErr)
	f.messages.AssertNotCalled(t, "Create")
}

func TestHistory(t *testing.T) {
	f := newChatFixture()
	msgs := []*domain.Message{{ID: 3, SessionID: "s-1", Role: domain.RoleUser, Text: "merhaba"}}
	f.messages.On("ListBySession", mock.Anything, "s-1", int64(2)).Return(msgs, nil)

	got, err := f.svc.History(context.Background(), "s-1", 2)
	require.NoError(t, err)
	assert.Equal(t, msgs, got)
}

func TestCategories(t *testing.T) {
	f := newChatFixture()
	cats := []string{"Akademik", "Teknik"}
	f.classifier.On("Categories").Return(cats)

	assert.Equal(t, cats, f.svc.Categories())
}

func TestDetectTopic(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		topic string
	}{
		{"staj question", "bu staj mı sayılıyor", "staj"},
		{"attendance ascii", "devamsizlik siniri kac gun", "devamsızlık"},
		{"timesheet", "puantaj formunu unuttum", "puantaj"},
		{"interim report", "ara rapor teslimi", "ara_rapor"},
		{"final report", "uygulama raporu şartları", "uygulama_raporu"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			topic := detectTopic(tt.text)
			require.NotNil(t, topic)
			assert.Equal(t, tt.topic, topic.Topic)
		})
	}

	assert.Nil(t, detectTopic("yemekhane menüsü nedir"))
}
