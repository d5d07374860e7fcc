package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/myfans/settlement/internal/models"
)

// PurchaseRepository defines the interface for access grant data access
type PurchaseRepository interface {
	Create(ctx context.Context, purchase *models.Purchase) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Purchase, error)
	// FindActive returns the buyer's purchases of contentID that have not
	// expired at now, latest expiry first.
	FindActive(ctx context.Context, buyer string, contentID uint64, now time.Time) ([]models.Purchase, error)
}

type purchaseRepository struct {
	db DBTX
}

// NewPurchaseRepository creates a new PurchaseRepository
func NewPurchaseRepository(db DBTX) PurchaseRepository {
	return &purchaseRepository{db: db}
}

// Create inserts a purchase
func (r *purchaseRepository) Create(ctx context.Context, p *models.Purchase) error {
	query := `
		INSERT INTO purchases (id, buyer, content_id, purchased_at, expires_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	if _, err := r.db.ExecContext(ctx, query, p.ID, p.Buyer, int64(p.ContentID), p.PurchasedAt, p.ExpiresAt); err != nil {
		return fmt.Errorf("failed to create purchase: %w", err)
	}
	return nil
}

// FindByID retrieves a purchase by its UUID
func (r *purchaseRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Purchase, error) {
	query := `
		SELECT id, buyer, content_id, purchased_at, expires_at
		FROM purchases
		WHERE id = $1
	`

	var p models.Purchase
	if err := sqlx.GetContext(ctx, r.db, &p, query, id); err != nil {
		return nil, notFoundOr(err, "failed to find purchase %s", id)
	}
	return &p, nil
}

// FindActive lists unexpired purchases of one content item by one buyer
func (r *purchaseRepository) FindActive(ctx context.Context, buyer string, contentID uint64, now time.Time) ([]models.Purchase, error) {
	query := `
		SELECT id, buyer, content_id, purchased_at, expires_at
		FROM purchases
		WHERE buyer = $1 AND content_id = $2 AND expires_at > $3
		ORDER BY expires_at DESC
	`

	var purchases []models.Purchase
	if err := sqlx.SelectContext(ctx, r.db, &purchases, query, buyer, int64(contentID), now); err != nil {
		return nil, fmt.Errorf("failed to list active purchases: %w", err)
	}
	return purchases, nil
}
