package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/myfans/settlement/internal/apperror"
	"github.com/myfans/settlement/internal/events"
	eventmocks "github.com/myfans/settlement/internal/events/mocks"
	"github.com/myfans/settlement/internal/models"
	"github.com/myfans/settlement/internal/repository/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestAccessService(t *testing.T) (*AccessService, *mocks.MockPurchaseRepository, *eventmocks.MockPublisher, *clockwork.FakeClock) {
	t.Helper()

	purchases := mocks.NewMockPurchaseRepository(t)
	publisher := eventmocks.NewMockPublisher(t)
	clock := clockwork.NewFakeClockAt(testNow)

	return &AccessService{
		purchases: purchases,
		publisher: publisher,
		clock:     clock,
		logger:    discardLogger(),
	}, purchases, publisher, clock
}

func testPurchase() *models.Purchase {
	return &models.Purchase{
		ID:          uuid.New(),
		Buyer:       testFan,
		ContentID:   42,
		PurchasedAt: testNow,
		ExpiresAt:   testNow.Add(time.Hour),
	}
}

func TestAccessService_Purchase(t *testing.T) {
	t.Run("records an expiring purchase", func(t *testing.T) {
		svc, purchases, _, _ := newTestAccessService(t)
		ctx := context.Background()

		purchases.On("Create", ctx, mock.AnythingOfType("*models.Purchase")).Return(nil)

		p, err := svc.Purchase(ctx, testFan, 42, time.Hour)

		require.NoError(t, err)
		assert.Equal(t, testFan, p.Buyer)
		assert.Equal(t, uint64(42), p.ContentID)
		assert.Equal(t, testNow, p.PurchasedAt)
		assert.Equal(t, testNow.Add(time.Hour), p.ExpiresAt)
	})

	t.Run("invalid input", func(t *testing.T) {
		tests := []struct {
			name      string
			buyer     string
			contentID uint64
			duration  time.Duration
		}{
			{"bad buyer", "nope", 42, time.Hour},
			{"zero content", testFan, 0, time.Hour},
			{"content beyond int64", testFan, 1 << 63, time.Hour},
			{"zero duration", testFan, 42, 0},
			{"negative duration", testFan, 42, -time.Minute},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				svc, _, _, _ := newTestAccessService(t)

				_, err := svc.Purchase(context.Background(), tt.buyer, tt.contentID, tt.duration)

				assertKind(t, err, apperror.KindValidation)
			})
		}
	})
}

func TestAccessService_Unlock(t *testing.T) {
	t.Run("boundaries", func(t *testing.T) {
		tests := []struct {
			name    string
			elapsed time.Duration
			wantErr error
		}{
			{"just before expiry", 3590 * time.Second, nil},
			{"at expiry", 3600 * time.Second, ErrPurchaseExpired},
			{"after expiry", 3601 * time.Second, ErrPurchaseExpired},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				svc, purchases, publisher, clock := newTestAccessService(t)
				ctx := context.Background()
				p := testPurchase()

				purchases.On("FindByID", ctx, p.ID).Return(p, nil)
				if tt.wantErr == nil {
					publisher.On("Publish", ctx, mock.AnythingOfType("events.Event")).Return(nil).Once()
				}
				clock.Advance(tt.elapsed)

				unlocked, err := svc.Unlock(ctx, p.ID, 42, testFan)

				if tt.wantErr != nil {
					assert.ErrorIs(t, err, tt.wantErr)
					assert.Nil(t, unlocked)
					publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
					return
				}
				require.NoError(t, err)
				assert.Equal(t, p.ID, unlocked.PurchaseID)
				assert.Equal(t, testFan, unlocked.Buyer)
				assert.Equal(t, uint64(42), unlocked.ContentID)
			})
		}
	})

	t.Run("publishes exactly one event", func(t *testing.T) {
		svc, purchases, publisher, _ := newTestAccessService(t)
		ctx := context.Background()
		p := testPurchase()

		purchases.On("FindByID", ctx, p.ID).Return(p, nil)
		publisher.On("Publish", ctx, mock.MatchedBy(func(e events.Event) bool {
			payload, ok := e.Payload.(events.ContentUnlocked)
			return ok && e.Type == events.TypeContentUnlocked && payload.PurchaseID == p.ID && payload.ContentID == 42
		})).Return(nil).Once()

		_, err := svc.Unlock(ctx, p.ID, 42, testFan)

		require.NoError(t, err)
		publisher.AssertNumberOfCalls(t, "Publish", 1)
	})

	t.Run("publish failure does not deny access", func(t *testing.T) {
		svc, purchases, publisher, _ := newTestAccessService(t)
		ctx := context.Background()
		p := testPurchase()

		purchases.On("FindByID", ctx, p.ID).Return(p, nil)
		publisher.On("Publish", ctx, mock.Anything).Return(errors.New("broker down")).Once()

		unlocked, err := svc.Unlock(ctx, p.ID, 42, testFan)

		require.NoError(t, err)
		assert.NotNil(t, unlocked)
	})

	t.Run("denials", func(t *testing.T) {
		tests := []struct {
			name      string
			contentID uint64
			caller    string
			elapsed   time.Duration
			wantErr   error
		}{
			{"different content", 999, testFan, 0, ErrInvalidContentID},
			{"zero content", 0, testFan, 0, ErrInvalidContentID},
			{"wrong content wins over wrong caller after expiry", 999, testOther, 2 * time.Hour, ErrInvalidContentID},
			{"not the buyer", 42, testOther, 0, ErrNotBuyer},
			{"buyer check runs before expiry", 42, testOther, 2 * time.Hour, ErrNotBuyer},
			{"expired", 42, testFan, 2 * time.Hour, ErrPurchaseExpired},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				svc, purchases, publisher, clock := newTestAccessService(t)
				ctx := context.Background()
				p := testPurchase()

				purchases.On("FindByID", ctx, p.ID).Return(p, nil)
				clock.Advance(tt.elapsed)

				_, err := svc.Unlock(ctx, p.ID, tt.contentID, tt.caller)

				assert.ErrorIs(t, err, tt.wantErr)
				publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
			})
		}
	})

	t.Run("unknown purchase", func(t *testing.T) {
		svc, purchases, _, _ := newTestAccessService(t)
		ctx := context.Background()
		id := uuid.New()

		purchases.On("FindByID", ctx, id).Return(nil, models.ErrNotFound)

		_, err := svc.Unlock(ctx, id, 42, testFan)

		assert.ErrorIs(t, err, ErrPurchaseNotFound)
	})

	t.Run("storage failure", func(t *testing.T) {
		svc, purchases, _, _ := newTestAccessService(t)
		ctx := context.Background()
		id := uuid.New()

		purchases.On("FindByID", ctx, id).Return(nil, errors.New("connection reset"))

		_, err := svc.Unlock(ctx, id, 42, testFan)

		assertKind(t, err, apperror.KindInternal)
	})
}

func TestAccessService_HasAccess(t *testing.T) {
	svc, purchases, _, _ := newTestAccessService(t)
	ctx := context.Background()

	purchases.On("FindActive", ctx, testFan, uint64(42), testNow).Return([]models.Purchase{*testPurchase()}, nil)
	purchases.On("FindActive", ctx, testFan, uint64(43), testNow).Return([]models.Purchase{}, nil)

	ok, err := svc.HasAccess(ctx, testFan, 42)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.HasAccess(ctx, testFan, 43)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAccessService_HasAccessBatch(t *testing.T) {
	t.Run("deduplicates ids", func(t *testing.T) {
		svc, purchases, _, _ := newTestAccessService(t)
		ctx := context.Background()

		purchases.On("FindActive", ctx, testFan, uint64(42), testNow).Return([]models.Purchase{*testPurchase()}, nil).Once()
		purchases.On("FindActive", ctx, testFan, uint64(43), testNow).Return(nil, nil).Once()

		got, err := svc.HasAccessBatch(ctx, testFan, []uint64{42, 43, 42})

		require.NoError(t, err)
		assert.Equal(t, map[uint64]bool{42: true, 43: false}, got)
	})

	t.Run("too many ids", func(t *testing.T) {
		svc, _, _, _ := newTestAccessService(t)

		ids := make([]uint64, maxBatchSize+1)
		for i := range ids {
			ids[i] = uint64(i + 1)
		}

		_, err := svc.HasAccessBatch(context.Background(), testFan, ids)

		assertKind(t, err, apperror.KindValidation)
	})
}
