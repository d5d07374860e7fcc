package service

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/myfans/settlement/internal/db"
	"github.com/myfans/settlement/internal/events"
	"github.com/myfans/settlement/internal/models"
	"github.com/myfans/settlement/internal/repository"
)

// AccessService grants time-bound unlock rights to content
type AccessService struct {
	purchases repository.PurchaseRepository
	publisher events.Publisher
	clock     clockwork.Clock
	logger    *slog.Logger
}

// NewAccessService creates a new AccessService
func NewAccessService(database *db.DB, publisher events.Publisher, clock clockwork.Clock, logger *slog.Logger) *AccessService {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &AccessService{
		purchases: repository.NewPurchaseRepository(database),
		publisher: publisher,
		clock:     clock,
		logger:    logger,
	}
}

// Purchase records that buyer may unlock contentID for duration from now
func (s *AccessService) Purchase(ctx context.Context, buyer string, contentID uint64, duration time.Duration) (*models.Purchase, error) {
	if err := ValidateAddress(buyer); err != nil {
		return nil, validationError(err.Error(), map[string]any{"field": "buyer"})
	}
	if contentID == 0 || contentID > math.MaxInt64 {
		return nil, validationError("content ID must be between 1 and 9223372036854775807", map[string]any{"field": "contentId"})
	}
	if duration <= 0 {
		return nil, validationError("duration must be positive", map[string]any{"field": "duration"})
	}

	now := s.clock.Now().UTC()
	purchase := &models.Purchase{
		ID:          uuid.New(),
		Buyer:       buyer,
		ContentID:   contentID,
		PurchasedAt: now,
		ExpiresAt:   now.Add(duration),
	}

	if err := s.purchases.Create(ctx, purchase); err != nil {
		return nil, internalError(err, "create purchase")
	}

	purchasesCreated.Inc()
	s.logger.Info("purchase recorded",
		"purchase_id", purchase.ID,
		"content_id", contentID,
		"expires_at", purchase.ExpiresAt,
	)

	return purchase, nil
}

// Unlock checks that caller may open contentID under purchaseID. Checks run
// in a fixed order: existence, content match, buyer, expiry. Exactly one
// content.unlocked event is published per successful unlock.
func (s *AccessService) Unlock(ctx context.Context, purchaseID uuid.UUID, contentID uint64, caller string) (*events.ContentUnlocked, error) {
	purchase, err := s.purchases.FindByID(ctx, purchaseID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			unlockAttempts.WithLabelValues(ErrCodePurchaseNotFound).Inc()
			return nil, ErrPurchaseNotFound
		}
		return nil, internalError(err, "find purchase")
	}

	if denial := checkUnlock(purchase, contentID, caller, s.clock.Now()); denial != nil {
		unlockAttempts.WithLabelValues(denial.Code).Inc()
		s.logger.Info("unlock denied",
			"purchase_id", purchaseID,
			"content_id", contentID,
			"reason", denial.Code,
		)
		return nil, denial
	}

	unlocked := &events.ContentUnlocked{
		PurchaseID: purchase.ID,
		Buyer:      purchase.Buyer,
		ContentID:  purchase.ContentID,
	}

	if err := s.publisher.Publish(ctx, events.New(events.TypeContentUnlocked, *unlocked, s.clock.Now())); err != nil {
		s.logger.Error("failed to publish content unlock",
			"purchase_id", purchase.ID,
			"error", err,
		)
	}

	unlockAttempts.WithLabelValues("unlocked").Inc()
	return unlocked, nil
}

func checkUnlock(p *models.Purchase, contentID uint64, caller string, now time.Time) *AccessError {
	switch {
	case contentID != p.ContentID:
		return ErrInvalidContentID
	case caller != p.Buyer:
		return ErrNotBuyer
	case !p.ActiveAt(now):
		return ErrPurchaseExpired
	default:
		return nil
	}
}

// HasAccess reports whether buyer holds an unexpired purchase of contentID
func (s *AccessService) HasAccess(ctx context.Context, buyer string, contentID uint64) (bool, error) {
	active, err := s.purchases.FindActive(ctx, buyer, contentID, s.clock.Now())
	if err != nil {
		return false, internalError(err, "find active purchases")
	}
	return len(active) > 0, nil
}

// HasAccessBatch answers HasAccess for several content items
func (s *AccessService) HasAccessBatch(ctx context.Context, buyer string, contentIDs []uint64) (map[uint64]bool, error) {
	if len(contentIDs) > maxBatchSize {
		return nil, validationError("too many content IDs", map[string]any{"max": maxBatchSize})
	}

	result := make(map[uint64]bool, len(contentIDs))
	for _, id := range contentIDs {
		if _, seen := result[id]; seen {
			continue
		}
		ok, err := s.HasAccess(ctx, buyer, id)
		if err != nil {
			return nil, err
		}
		result[id] = ok
	}
	return result, nil
}

const maxBatchSize = 100
