package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/myfans/settlement/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPurchaseRepository_CreateAndFind(t *testing.T) {
	database := setupTestDB(t)
	defer cleanupTestDB(t, database)
	truncateTables(t, database)

	repo := NewPurchaseRepository(database)
	now := time.Now().UTC().Truncate(time.Second)

	p := &models.Purchase{
		ID:          uuid.New(),
		Buyer:       testFan,
		ContentID:   42,
		PurchasedAt: now,
		ExpiresAt:   now.Add(time.Hour),
	}
	require.NoError(t, repo.Create(context.Background(), p))

	found, err := repo.FindByID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), found.ContentID)
	assert.Equal(t, testFan, found.Buyer)
	assert.True(t, p.ExpiresAt.Equal(found.ExpiresAt))
}

func TestPurchaseRepository_FindActive(t *testing.T) {
	database := setupTestDB(t)
	defer cleanupTestDB(t, database)
	truncateTables(t, database)

	repo := NewPurchaseRepository(database)
	now := time.Now().UTC().Truncate(time.Second)

	purchases := []*models.Purchase{
		{ID: uuid.New(), Buyer: testFan, ContentID: 1, PurchasedAt: now.Add(-2 * time.Hour), ExpiresAt: now.Add(-time.Hour)},
		{ID: uuid.New(), Buyer: testFan, ContentID: 1, PurchasedAt: now, ExpiresAt: now.Add(time.Hour)},
		{ID: uuid.New(), Buyer: testFan, ContentID: 1, PurchasedAt: now, ExpiresAt: now.Add(2 * time.Hour)},
		{ID: uuid.New(), Buyer: testCreator, ContentID: 1, PurchasedAt: now, ExpiresAt: now.Add(time.Hour)},
		{ID: uuid.New(), Buyer: testFan, ContentID: 2, PurchasedAt: now, ExpiresAt: now.Add(time.Hour)},
	}
	for _, p := range purchases {
		require.NoError(t, repo.Create(context.Background(), p))
	}

	active, err := repo.FindActive(context.Background(), testFan, 1, now)
	require.NoError(t, err)
	require.Len(t, active, 2)
	assert.Equal(t, purchases[2].ID, active[0].ID, "latest expiry first")
	assert.Equal(t, purchases[1].ID, active[1].ID)

	atExpiry, err := repo.FindActive(context.Background(), testFan, 1, now.Add(2*time.Hour))
	require.NoError(t, err)
	assert.Empty(t, atExpiry)
}
