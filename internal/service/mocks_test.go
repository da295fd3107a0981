package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/ogrenci-destek/destekai/internal/domain"
	"github.com/ogrenci-destek/destekai/internal/pagination"
)

type MockSessionRepository struct {
	mock.Mock
}

func (m *MockSessionRepository) GetByID(ctx context.Context, id string) (*domain.UserSession, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserSession), args.Error(1)
}

func (m *MockSessionRepository) Create(ctx context.Context, session *domain.UserSession) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

type MockMessageRepository struct {
	mock.Mock
}

func (m *MockMessageRepository) Create(ctx context.Context, msg *domain.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func (m *MockMessageRepository) ListBySession(ctx context.Context, sessionID string, afterID int64) ([]*domain.Message, error) {
	args := m.Called(ctx, sessionID, afterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Message), args.Error(1)
}

type MockTicketRepository struct {
	mock.Mock
}

func (m *MockTicketRepository) Create(ctx context.Context, ticket *domain.Ticket) error {
	args := m.Called(ctx, ticket)
	return args.Error(0)
}

type MockTicketAdminRepository struct {
	mock.Mock
}

func (m *MockTicketAdminRepository) GetByID(ctx context.Context, id int64) (*domain.Ticket, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Ticket), args.Error(1)
}

func (m *MockTicketAdminRepository) ListWithCursor(ctx context.Context, status domain.TicketStatus, cursor *pagination.Cursor, limit int) (*TicketPageResult, error) {
	args := m.Called(ctx, status, cursor, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*TicketPageResult), args.Error(1)
}

func (m *MockTicketAdminRepository) Update(ctx context.Context, ticket *domain.Ticket) error {
	args := m.Called(ctx, ticket)
	return args.Error(0)
}

func (m *MockTicketAdminRepository) Stats(ctx context.Context) (*TicketStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*TicketStats), args.Error(1)
}

type MockKnowledgeSearcher struct {
	mock.Mock
}

func (m *MockKnowledgeSearcher) Ready() bool {
	args := m.Called()
	return args.Bool(0)
}

func (m *MockKnowledgeSearcher) Search(query string, topK int) []domain.RetrievalResult {
	args := m.Called(query, topK)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]domain.RetrievalResult)
}

type MockIntentClassifier struct {
	mock.Mock
}

func (m *MockIntentClassifier) Predict(text string) (string, float64) {
	args := m.Called(text)
	return args.String(0), args.Get(1).(float64)
}

func (m *MockIntentClassifier) FAQAnswer(category string) string {
	args := m.Called(category)
	return args.String(0)
}

func (m *MockIntentClassifier) Categories() []string {
	args := m.Called()
	return args.Get(0).([]string)
}
