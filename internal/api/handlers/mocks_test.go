package handlers

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/ogrenci-destek/destekai/internal/domain"
	"github.com/ogrenci-destek/destekai/internal/pagination"
	"github.com/ogrenci-destek/destekai/internal/service"
)

type MockChatService struct {
	mock.Mock
}

func (m *MockChatService) HandleMessage(ctx context.Context, sessionID, text string) (*domain.RoutingDecision, error) {
	args := m.Called(ctx, sessionID, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RoutingDecision), args.Error(1)
}

func (m *MockChatService) History(ctx context.Context, sessionID string, afterID int64) ([]*domain.Message, error) {
	args := m.Called(ctx, sessionID, afterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Message), args.Error(1)
}

func (m *MockChatService) Categories() []string {
	args := m.Called()
	return args.Get(0).([]string)
}

type MockTicketService struct {
	mock.Mock
}

func (m *MockTicketService) List(ctx context.Context, status domain.TicketStatus, cursor *pagination.Cursor, limit int) (*service.TicketPageResult, error) {
	args := m.Called(ctx, status, cursor, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.TicketPageResult), args.Error(1)
}

func (m *MockTicketService) Update(ctx context.Context, id int64, upd service.TicketUpdate) (*domain.Ticket, error) {
	args := m.Called(ctx, id, upd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Ticket), args.Error(1)
}

func (m *MockTicketService) Stats(ctx context.Context) (*service.TicketStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.TicketStats), args.Error(1)
}

type MockKnowledgeService struct {
	mock.Mock
}

func (m *MockKnowledgeService) Search(query string, topK int) []domain.RetrievalResult {
	args := m.Called(query, topK)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]domain.RetrievalResult)
}

func (m *MockKnowledgeService) Refresh(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockKnowledgeService) UploadDocument(ctx context.Context, kind string, content []byte) error {
	args := m.Called(ctx, kind, content)
	return args.Error(0)
}

func (m *MockKnowledgeService) Ready() bool {
	args := m.Called()
	return args.Bool(0)
}

func (m *MockKnowledgeService) Size() int {
	args := m.Called()
	return args.Int(0)
}
