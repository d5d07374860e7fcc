package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/myfans/settlement/internal/models"
)

// PlanRepository defines the interface for subscription plan lookups
type PlanRepository interface {
	Create(ctx context.Context, plan *models.Plan) error
	FindByID(ctx context.Context, id int64) (*models.Plan, error)
}

type planRepository struct {
	db DBTX
}

// NewPlanRepository creates a new PlanRepository
func NewPlanRepository(db DBTX) PlanRepository {
	return &planRepository{db: db}
}

// Create inserts a plan and sets its generated ID
func (r *planRepository) Create(ctx context.Context, p *models.Plan) error {
	query := `
		INSERT INTO plans (creator_address, creator_name, name, description,
		                   asset_code, asset_issuer, amount, interval_days)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`

	row := r.db.QueryRowxContext(ctx, query,
		p.CreatorAddress, p.CreatorName, p.Name, p.Description,
		p.AssetCode, p.AssetIssuer, p.Amount, p.IntervalDays,
	)
	if err := row.Scan(&p.ID); err != nil {
		return fmt.Errorf("failed to create plan: %w", err)
	}
	return nil
}

// FindByID retrieves a plan by its ID
func (r *planRepository) FindByID(ctx context.Context, id int64) (*models.Plan, error) {
	query := `
		SELECT id, creator_address, creator_name, name, description,
		       asset_code, asset_issuer, amount, interval_days
		FROM plans
		WHERE id = $1
	`

	var p models.Plan
	if err := sqlx.GetContext(ctx, r.db, &p, query, id); err != nil {
		return nil, notFoundOr(err, "failed to find plan %d", id)
	}
	return &p, nil
}
