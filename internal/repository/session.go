package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ogrenci-destek/destekai/internal/domain"
)

type SessionRepository struct {
	db dbtx
}

func NewSessionRepository(pool *pgxpool.Pool) *SessionRepository {
	return &SessionRepository{db: pool}
}

func NewSessionRepositoryWithTx(tx pgx.Tx) *SessionRepository {
	return &SessionRepository{db: tx}
}

func (r *SessionRepository) GetByID(ctx context.Context, id string) (*domain.UserSession, error) {
	var s domain.UserSession
	err := r.db.QueryRow(ctx,
		`SELECT id, created_at FROM user_sessions WHERE id = $1`,
		id,
	).Scan(&s.ID, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, err
	}
	return &s, nil
}

// Create inserts a session. Concurrent first messages of the same session
// may race here, so an existing row is not an error.
func (r *SessionRepository) Create(ctx context.Context, session *domain.UserSession) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO user_sessions (id, created_at) VALUES ($1, $2)
		 ON CONFLICT (id) DO NOTHING`,
		session.ID, session.CreatedAt,
	)
	return err
}
