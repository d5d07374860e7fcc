package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/myfans/settlement/internal/models"
)

// CheckoutRepository defines the interface for checkout session data access
type CheckoutRepository interface {
	Create(ctx context.Context, session *models.CheckoutSession) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.CheckoutSession, error)
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.CheckoutSession, error)
	// Resolve moves a pending session to a terminal status. It returns
	// models.ErrConflict when the stored status is no longer pending and
	// models.ErrDuplicate when the tx hash already confirmed another session.
	Resolve(ctx context.Context, session *models.CheckoutSession) error
}

type checkoutRepository struct {
	db DBTX
}

// NewCheckoutRepository creates a new CheckoutRepository
func NewCheckoutRepository(db DBTX) CheckoutRepository {
	return &checkoutRepository{db: db}
}

const checkoutColumns = `
	id, fan_address, creator_address, plan_id, asset_code, asset_issuer,
	amount, fee, network_fee, total, status, expires_at, tx_hash, error, rejected_by_user,
	created_at, updated_at`

// Create inserts a new checkout session
func (r *checkoutRepository) Create(ctx context.Context, s *models.CheckoutSession) error {
	query := `
		INSERT INTO checkout_sessions (` + checkoutColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
	`

	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}

	_, err := r.db.ExecContext(ctx, query,
		s.ID, s.FanAddress, s.CreatorAddress, s.PlanID, s.AssetCode, s.AssetIssuer,
		s.Amount, s.Fee, s.NetworkFee, s.Total, s.Status, s.ExpiresAt, s.TxHash, s.Error, s.RejectedByUser,
		s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create checkout session: %w", err)
	}

	return nil
}

// FindByID retrieves a checkout session by its UUID
func (r *checkoutRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.CheckoutSession, error) {
	query := `SELECT ` + checkoutColumns + ` FROM checkout_sessions WHERE id = $1`

	var s models.CheckoutSession
	if err := sqlx.GetContext(ctx, r.db, &s, query, id); err != nil {
		return nil, notFoundOr(err, "failed to find checkout session %s", id)
	}
	return &s, nil
}

// FindByIDForUpdate retrieves a checkout session and locks its row
func (r *checkoutRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.CheckoutSession, error) {
	query := `SELECT ` + checkoutColumns + ` FROM checkout_sessions WHERE id = $1 FOR UPDATE`

	var s models.CheckoutSession
	if err := sqlx.GetContext(ctx, r.db, &s, query, id); err != nil {
		return nil, notFoundOr(err, "failed to lock checkout session %s", id)
	}
	return &s, nil
}

// Resolve writes the terminal status of a session guarded on status = 'pending'
func (r *checkoutRepository) Resolve(ctx context.Context, s *models.CheckoutSession) error {
	if !s.Status.IsTerminal() {
		return fmt.Errorf("cannot resolve checkout session %s to %s", s.ID, s.Status)
	}

	query := `
		UPDATE checkout_sessions
		SET status = $2,
		    tx_hash = $3,
		    error = $4,
		    rejected_by_user = $5,
		    updated_at = $6
		WHERE id = $1 AND status = 'pending'
	`

	if s.UpdatedAt.IsZero() {
		s.UpdatedAt = time.Now().UTC()
	}

	result, err := r.db.ExecContext(ctx, query, s.ID, s.Status, s.TxHash, s.Error, s.RejectedByUser, s.UpdatedAt)
	if isUniqueViolation(err) {
		return fmt.Errorf("transaction hash already recorded for another checkout: %w", models.ErrDuplicate)
	}
	if err != nil {
		return fmt.Errorf("failed to update checkout session: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("checkout session %s is not pending: %w", s.ID, models.ErrConflict)
	}

	return nil
}
