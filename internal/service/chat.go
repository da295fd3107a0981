// Package service wires the decision layers together: keyword overrides,
// knowledge retrieval, intent classification, and ticket escalation.
package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/ogrenci-destek/destekai/internal/domain"
	"github.com/ogrenci-destek/destekai/internal/telemetry"
)

// retrievalTopK is how many chunks the router considers per message.
const retrievalTopK = 3

// SessionRepositoryInterface defines session persistence.
type SessionRepositoryInterface interface {
	GetByID(ctx context.Context, id string) (*domain.UserSession, error)
	Create(ctx context.Context, session *domain.UserSession) error
}

// MessageRepositoryInterface defines message persistence.
type MessageRepositoryInterface interface {
	Create(ctx context.Context, msg *domain.Message) error
	ListBySession(ctx context.Context, sessionID string, afterID int64) ([]*domain.Message, error)
}

// TicketRepositoryInterface defines the ticket operations the router needs.
type TicketRepositoryInterface interface {
	Create(ctx context.Context, ticket *domain.Ticket) error
}

// KnowledgeSearcher is the read side of the knowledge index.
type KnowledgeSearcher interface {
	Ready() bool
	Search(query string, topK int) []domain.RetrievalResult
}

// IntentClassifier is the trained category model.
type IntentClassifier interface {
	Predict(text string) (category string, confidence float64)
	FAQAnswer(category string) string
	Categories() []string
}

// ChatService routes incoming student messages to a reply: keyword
// override first, then knowledge lookup, then classifier FAQ, then ticket
// escalation. Every message gets some reply; classifier or index trouble
// degrades to escalation rather than surfacing to the student.
type ChatService struct {
	sessions   SessionRepositoryInterface
	messages   MessageRepositoryInterface
	tickets    TicketRepositoryInterface
	knowledge  KnowledgeSearcher
	classifier IntentClassifier

	confidenceThreshold float64
	knowledgeThreshold  float64
}

func NewChatService(
	sessions SessionRepositoryInterface,
	messages MessageRepositoryInterface,
	tickets TicketRepositoryInterface,
	knowledge KnowledgeSearcher,
	classifier IntentClassifier,
	confidenceThreshold float64,
	knowledgeThreshold float64,
) *ChatService {
	return &ChatService{
		sessions:            sessions,
		messages:            messages,
		tickets:             tickets,
		knowledge:           knowledge,
		classifier:          classifier,
		confidenceThreshold: confidenceThreshold,
		knowledgeThreshold:  knowledgeThreshold,
	}
}

// HandleMessage routes one message and records both sides of the exchange.
func (s *ChatService) HandleMessage(ctx context.Context, sessionID, text string) (*domain.RoutingDecision, error) {
	ctx, span := telemetry.StartSpan(ctx, "chat.handle_message", telemetry.SpanAttributes{
		SessionID: sessionID,
		Operation: "route",
	})
	defer span.End()

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, domain.ErrEmptyMessage
	}

	if err := s.ensureSession(ctx, sessionID); err != nil {
		return nil, err
	}

	// Every user message is stored with its classifier prediction, also
	// when another decision layer ends up producing the reply.
	category, confidence := s.classifier.Predict(text)
	userConfidence := confidence
	if err := s.messages.Create(ctx, &domain.Message{
		SessionID:  sessionID,
		Role:       domain.RoleUser,
		Text:       text,
		Category:   category,
		Confidence: &userConfidence,
	}); err != nil {
		return nil, err
	}

	decision, err := s.route(ctx, sessionID, text, category, confidence)
	if err != nil {
		return nil, err
	}

	botConfidence := decision.Confidence
	if err := s.messages.Create(ctx, &domain.Message{
		SessionID:  sessionID,
		Role:       domain.RoleBot,
		Text:       decision.ReplyText,
		Category:   decision.Category,
		Confidence: &botConfidence,
	}); err != nil {
		return nil, err
	}

	return decision, nil
}

func (s *ChatService) route(ctx context.Context, sessionID, text, category string, confidence float64) (*domain.RoutingDecision, error) {
	if topic := detectTopic(text); topic != nil {
		log.Printf("keyword override matched: %s", topic.Topic)
		return &domain.RoutingDecision{
			ReplyText:  topic.Answer,
			Category:   domain.BelgeCategory,
			Confidence: keywordConfidence,
		}, nil
	}

	if s.knowledge.Ready() {
		results := s.knowledge.Search(text, retrievalTopK)
		if len(results) > 0 && results[0].Score >= s.knowledgeThreshold {
			log.Printf("grounded reply (score=%.4f, source=%s)", results[0].Score, results[0].Source)
			return &domain.RoutingDecision{
				ReplyText:  buildGroundedReply(results),
				Category:   domain.BelgeCategory,
				Confidence: results[0].Score,
			}, nil
		}
	}

	return s.classifierFallback(ctx, sessionID, text, category, confidence)
}

// classifierFallback answers from the FAQ template when the prediction is
// confident enough, otherwise escalates to a ticket.
func (s *ChatService) classifierFallback(ctx context.Context, sessionID, text, category string, confidence float64) (*domain.RoutingDecision, error) {
	if confidence >= s.confidenceThreshold {
		return &domain.RoutingDecision{
			ReplyText:  s.classifier.FAQAnswer(category),
			Category:   category,
			Confidence: confidence,
		}, nil
	}

	ticketConfidence := confidence
	ticket := &domain.Ticket{
		SessionID:         sessionID,
		OriginalText:      text,
		PredictedCategory: category,
		Confidence:        &ticketConfidence,
		Status:            domain.TicketStatusOpen,
	}
	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, err
	}

	ref := ticket.Reference()
	reply := fmt.Sprintf("Talebini aldım ✅\nTakip numaran: %s\nEn kısa sürede dönüş yapılacak.", ref)
	return &domain.RoutingDecision{
		ReplyText:  reply,
		Category:   category,
		Confidence: confidence,
		TicketRef:  ref,
	}, nil
}

// History returns a session's messages in ascending id order, optionally
// only those after afterID (polling).
func (s *ChatService) History(ctx context.Context, sessionID string, afterID int64) ([]*domain.Message, error) {
	return s.messages.ListBySession(ctx, sessionID, afterID)
}

// Categories returns the classifier's category names in declared order.
func (s *ChatService) Categories() []string {
	return s.classifier.Categories()
}

func (s *ChatService) ensureSession(ctx context.Context, sessionID string) error {
	_, err := s.sessions.GetByID(ctx, sessionID)
	if err == nil {
		return nil
	}
	if err != domain.ErrSessionNotFound {
		return err
	}
	return s.sessions.Create(ctx, &domain.UserSession{
		ID:        sessionID,
		CreatedAt: time.Now().UTC(),
	})
}
