//go:build integration

package repository

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ogrenci-destek/destekai/internal/domain"
	"github.com/ogrenci-destek/destekai/internal/pagination"
	"github.com/ogrenci-destek/destekai/internal/testutil"
)

func createTicket(ctx context.Context, t *testing.T, repo *TicketRepository, sessionID, category string) *domain.Ticket {
	t.Helper()
	conf := 0.4
	ticket := &domain.Ticket{
		SessionID:         sessionID,
		OriginalText:      "yanıtlanamayan soru",
		PredictedCategory: category,
		Confidence:        &conf,
		Status:            domain.TicketStatusOpen,
	}
	require.NoError(t, repo.Create(ctx, ticket))
	return ticket
}

func TestTicketRepository_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	pc := testutil.NewPostgresContainer(ctx, t)
	defer pc.Terminate(ctx)

	pool := testutil.NewTestPool(ctx, t, pc, "../../migrations")
	defer pool.Close()

	createSession(ctx, t, NewSessionRepository(pool), "s-1")
	repo := NewTicketRepository(pool)

	ticket := createTicket(ctx, t, repo, "s-1", "Teknik")
	assert.NotZero(t, ticket.ID)
	assert.False(t, ticket.CreatedAt.IsZero())
	assert.Equal(t, fmt.Sprintf("TCK-%d", ticket.ID), ticket.Reference())

	retrieved, err := repo.GetByID(ctx, ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, "Teknik", retrieved.PredictedCategory)
	assert.Equal(t, domain.TicketStatusOpen, retrieved.Status)
	assert.Empty(t, retrieved.AdminNote)
	require.NotNil(t, retrieved.Confidence)
	assert.Equal(t, 0.4, *retrieved.Confidence)
}

func TestTicketRepository_GetByID_NotFound(t *testing.T) {
	ctx := context.Background()
	pc := testutil.NewPostgresContainer(ctx, t)
	defer pc.Terminate(ctx)

	pool := testutil.NewTestPool(ctx, t, pc, "../../migrations")
	defer pool.Close()

	repo := NewTicketRepository(pool)

	_, err := repo.GetByID(ctx, 12345)
	assert.ErrorIs(t, err, domain.ErrTicketNotFound)
}

func TestTicketRepository_Update(t *testing.T) {
	ctx := context.Background()
	pc := testutil.NewPostgresContainer(ctx, t)
	defer pc.Terminate(ctx)

	pool := testutil.NewTestPool(ctx, t, pc, "../../migrations")
	defer pool.Close()

	createSession(ctx, t, NewSessionRepository(pool), "s-1")
	repo := NewTicketRepository(pool)

	ticket := createTicket(ctx, t, repo, "s-1", "Diğer")
	ticket.Status = domain.TicketStatusResolved
	ticket.AdminNote = "Öğrenci işlerine yönlendirildi"
	require.NoError(t, repo.Update(ctx, ticket))

	retrieved, err := repo.GetByID(ctx, ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TicketStatusResolved, retrieved.Status)
	assert.Equal(t, "Öğrenci işlerine yönlendirildi", retrieved.AdminNote)
	assert.True(t, retrieved.UpdatedAt.After(retrieved.CreatedAt))
}

func TestTicketRepository_Update_NotFound(t *testing.T) {
	ctx := context.Background()
	pc := testutil.NewPostgresContainer(ctx, t)
	defer pc.Terminate(ctx)

	pool := testutil.NewTestPool(ctx, t, pc, "../../migrations")
	defer pool.Close()

	repo := NewTicketRepository(pool)

	err := repo.Update(ctx, &domain.Ticket{ID: 999, Status: domain.TicketStatusResolved})
	assert.ErrorIs(t, err, domain.ErrTicketNotFound)
}

func TestTicketRepository_ListWithCursor(t *testing.T) {
	ctx := context.Background()
	pc := testutil.NewPostgresContainer(ctx, t)
	defer pc.Terminate(ctx)

	pool := testutil.NewTestPool(ctx, t, pc, "../../migrations")
	defer pool.Close()

	createSession(ctx, t, NewSessionRepository(pool), "s-1")
	repo := NewTicketRepository(pool)

	var created []*domain.Ticket
	for i := 0; i < 5; i++ {
		created = append(created, createTicket(ctx, t, repo, "s-1", "Diğer"))
	}

	// First page, newest first.
	page, err := repo.ListWithCursor(ctx, "", nil, 2)
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.True(t, page.HasMore)
	assert.NotEmpty(t, page.NextCursor)
	assert.Equal(t, created[4].ID, page.Items[0].ID)
	assert.Equal(t, created[3].ID, page.Items[1].ID)

	// Second page continues where the first left off.
	cursor, err := pagination.DecodeCursor(page.NextCursor)
	require.NoError(t, err)
	page, err = repo.ListWithCursor(ctx, "", cursor, 2)
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.Equal(t, created[2].ID, page.Items[0].ID)
	assert.Equal(t, created[1].ID, page.Items[1].ID)
	assert.True(t, page.HasMore)

	// Last page.
	cursor, err = pagination.DecodeCursor(page.NextCursor)
	require.NoError(t, err)
	page, err = repo.ListWithCursor(ctx, "", cursor, 2)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, created[0].ID, page.Items[0].ID)
	assert.False(t, page.HasMore)
	assert.Empty(t, page.NextCursor)
}

func TestTicketRepository_ListWithStatusFilter(t *testing.T) {
	ctx := context.Background()
	pc := testutil.NewPostgresContainer(ctx, t)
	defer pc.Terminate(ctx)

	pool := testutil.NewTestPool(ctx, t, pc, "../../migrations")
	defer pool.Close()

	createSession(ctx, t, NewSessionRepository(pool), "s-1")
	repo := NewTicketRepository(pool)

	open := createTicket(ctx, t, repo, "s-1", "Teknik")
	resolved := createTicket(ctx, t, repo, "s-1", "Teknik")
	resolved.Status = domain.TicketStatusResolved
	require.NoError(t, repo.Update(ctx, resolved))

	page, err := repo.ListWithCursor(ctx, domain.TicketStatusOpen, nil, 10)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, open.ID, page.Items[0].ID)
	assert.False(t, page.HasMore)
}

func TestTicketRepository_Stats(t *testing.T) {
	ctx := context.Background()
	pc := testutil.NewPostgresContainer(ctx, t)
	defer pc.Terminate(ctx)

	pool := testutil.NewTestPool(ctx, t, pc, "../../migrations")
	defer pool.Close()

	createSession(ctx, t, NewSessionRepository(pool), "s-1")
	repo := NewTicketRepository(pool)

	// Empty backlog still reports every status.
	stats, err := repo.Stats(ctx)
	require.NoError(t, err)
	assert.Zero(t, stats.Total)
	assert.Len(t, stats.ByStatus, 3)

	createTicket(ctx, t, repo, "s-1", "Teknik")
	createTicket(ctx, t, repo, "s-1", "Teknik")
	inProgress := createTicket(ctx, t, repo, "s-1", "Ödeme")
	inProgress.Status = domain.TicketStatusInProgress
	require.NoError(t, repo.Update(ctx, inProgress))

	// A ticket without a stored prediction lands in the fallback bucket.
	require.NoError(t, repo.Create(ctx, &domain.Ticket{
		SessionID:    "s-1",
		OriginalText: "kategorisiz talep",
		Status:       domain.TicketStatusOpen,
	}))

	stats, err = repo.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, stats.Total)
	assert.Equal(t, 3, stats.ByStatus[domain.TicketStatusOpen])
	assert.Equal(t, 1, stats.ByStatus[domain.TicketStatusInProgress])
	assert.Equal(t, 0, stats.ByStatus[domain.TicketStatusResolved])
	assert.Equal(t, 2, stats.ByCategory["Teknik"])
	assert.Equal(t, 1, stats.ByCategory["Ödeme"])
	assert.Equal(t, 1, stats.ByCategory[unknownCategory])
}
