package repository

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ogrenci-destek/destekai/internal/domain"
	"github.com/ogrenci-destek/destekai/internal/pagination"
	"github.com/ogrenci-destek/destekai/internal/service"
)

// unknownCategory labels tickets without a stored prediction in the stats.
const unknownCategory = "Bilinmiyor"

type TicketRepository struct {
	db dbtx
}

func NewTicketRepository(pool *pgxpool.Pool) *TicketRepository {
	return &TicketRepository{db: pool}
}

func NewTicketRepositoryWithTx(tx pgx.Tx) *TicketRepository {
	return &TicketRepository{db: tx}
}

// Create inserts a ticket and fills its generated id and timestamps.
func (r *TicketRepository) Create(ctx context.Context, t *domain.Ticket) error {
	return r.db.QueryRow(ctx,
		`INSERT INTO tickets (session_id, original_text, predicted_category, confidence, status, admin_note)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at, updated_at`,
		t.SessionID, t.OriginalText, nullableString(t.PredictedCategory), t.Confidence, t.Status, nullableString(t.AdminNote),
	).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
}

func (r *TicketRepository) GetByID(ctx context.Context, id int64) (*domain.Ticket, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, session_id, original_text, predicted_category, confidence, status, admin_note, created_at, updated_at
		 FROM tickets WHERE id = $1`,
		id,
	)
	t, err := scanTicket(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTicketNotFound
		}
		return nil, err
	}
	return t, nil
}

// ListWithCursor returns one page of tickets, newest first. An empty status
// means no filter.
func (r *TicketRepository) ListWithCursor(ctx context.Context, status domain.TicketStatus, cursor *pagination.Cursor, limit int) (*service.TicketPageResult, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `SELECT id, session_id, original_text, predicted_category, confidence, status, admin_note, created_at, updated_at
		 FROM tickets`
	var conds []string
	var args []any

	if status != "" {
		args = append(args, status)
		conds = append(conds, "status = $1")
	}
	if cursor != nil {
		args = append(args, cursor.Timestamp, cursor.LastID)
		if len(conds) == 0 {
			conds = append(conds, "(created_at, id) < ($1, $2)")
		} else {
			conds = append(conds, "(created_at, id) < ($2, $3)")
		}
	}
	if len(conds) > 0 {
		query += " WHERE " + conds[0]
		for _, c := range conds[1:] {
			query += " AND " + c
		}
	}
	args = append(args, limit+1)
	query += " ORDER BY created_at DESC, id DESC LIMIT $" + strconv.Itoa(len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items, err := scanTicketRows(rows)
	if err != nil {
		return nil, err
	}

	hasMore := len(items) > limit
	if hasMore {
		items = items[:limit]
	}

	var nextCursor string
	if hasMore && len(items) > 0 {
		last := items[len(items)-1]
		nextCursor = pagination.EncodeCursor(last.ID, last.CreatedAt)
	}

	return &service.TicketPageResult{
		Items:      items,
		NextCursor: nextCursor,
		HasMore:    hasMore,
	}, nil
}

func (r *TicketRepository) Update(ctx context.Context, t *domain.Ticket) error {
	t.UpdatedAt = time.Now().UTC()
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE tickets SET status = $1, admin_note = $2, updated_at = $3 WHERE id = $4`,
		t.Status, nullableString(t.AdminNote), t.UpdatedAt, t.ID,
	)
	if err != nil {
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return domain.ErrTicketNotFound
	}
	return nil
}

// Stats aggregates the ticket backlog. Every known status appears in the
// result even with a zero count.
func (r *TicketRepository) Stats(ctx context.Context) (*service.TicketStats, error) {
	stats := &service.TicketStats{
		ByStatus: map[domain.TicketStatus]int{
			domain.TicketStatusOpen:       0,
			domain.TicketStatusInProgress: 0,
			domain.TicketStatusResolved:   0,
		},
		ByCategory: map[string]int{},
	}

	rows, err := r.db.Query(ctx, `SELECT status, COUNT(*) FROM tickets GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var status domain.TicketStatus
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		stats.ByStatus[status] = count
		stats.Total += count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = r.db.Query(ctx,
		`SELECT COALESCE(predicted_category, $1), COUNT(*) FROM tickets GROUP BY 1`,
		unknownCategory,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var category string
		var count int
		if err := rows.Scan(&category, &count); err != nil {
			return nil, err
		}
		stats.ByCategory[category] = count
	}
	return stats, rows.Err()
}

func scanTicket(row pgx.Row) (*domain.Ticket, error) {
	var t domain.Ticket
	var category, note *string
	if err := row.Scan(&t.ID, &t.SessionID, &t.OriginalText, &category, &t.Confidence, &t.Status, &note, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}
	if category != nil {
		t.PredictedCategory = *category
	}
	if note != nil {
		t.AdminNote = *note
	}
	return &t, nil
}

func scanTicketRows(rows pgx.Rows) ([]*domain.Ticket, error) {
	var results []*domain.Ticket
	for rows.Next() {
		t, err := scanTicket(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, t)
	}
	return results, rows.Err()
}
