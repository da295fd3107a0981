package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ogrenci-destek/destekai/internal/domain"
)

type MessageRepository struct {
	db dbtx
}

func NewMessageRepository(pool *pgxpool.Pool) *MessageRepository {
	return &MessageRepository{db: pool}
}

func NewMessageRepositoryWithTx(tx pgx.Tx) *MessageRepository {
	return &MessageRepository{db: tx}
}

// Create inserts a message and fills its generated id and timestamp.
func (r *MessageRepository) Create(ctx context.Context, msg *domain.Message) error {
	return r.db.QueryRow(ctx,
		`INSERT INTO messages (session_id, role, text, category, confidence)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at`,
		msg.SessionID, msg.Role, msg.Text, nullableString(msg.Category), msg.Confidence,
	).Scan(&msg.ID, &msg.CreatedAt)
}

// ListBySession returns a session's messages in ascending id order. With
// afterID > 0 only messages newer than that id are returned, which is what
// the chat UI polls with.
func (r *MessageRepository) ListBySession(ctx context.Context, sessionID string, afterID int64) ([]*domain.Message, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, session_id, role, text, category, confidence, created_at
		 FROM messages
		 WHERE session_id = $1 AND id > $2
		 ORDER BY id ASC`,
		sessionID, afterID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []*domain.Message
	for rows.Next() {
		var m domain.Message
		var category *string
		if err := rows.Scan(&m.ID, &m.SessionID, &m.Role, &m.Text, &category, &m.Confidence, &m.CreatedAt); err != nil {
			return nil, err
		}
		if category != nil {
			m.Category = *category
		}
		messages = append(messages, &m)
	}
	return messages, rows.Err()
}
