package repository

import (
	"context"
	"log"
	"testing"
	"time"

	"github.com/myfans/settlement/internal/config"
	"github.com/myfans/settlement/internal/db"
	"github.com/myfans/settlement/internal/models"
	"github.com/shopspring/decimal"
)

func setupTestDB(t *testing.T) *db.DB {
	t.Helper()

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	logger := cfg.Logger.NewLogger()

	connectCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	database, err := db.Connect(connectCtx, &cfg.Database, logger)
	if err != nil {
		t.Skipf("test database unavailable: %v", err)
	}

	if err := database.Migrate(context.Background()); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return database
}

func cleanupTestDB(t *testing.T, database *db.DB) {
	t.Helper()
	if err := database.Close(); err != nil {
		log.Printf("failed to close test database: %v", err)
	}
}

func truncateTables(t *testing.T, database *db.DB) {
	t.Helper()

	if err := database.Reset(context.Background()); err != nil {
		t.Fatalf("failed to truncate tables: %v", err)
	}
}

const (
	testFan     = "GBBD47IF6LWK7P7MDEVSCWR7DPUWV3NY3DTQEVFL4NAT4AQH3ZLLFLA5"
	testCreator = "GA5ZSEJYB37JRC5AVCIA5MOP4RHTM335X2KGX3IHOJAPP5RE34K4KZVN"
)

func seedPlan(t *testing.T, database *db.DB) *models.Plan {
	t.Helper()

	plan := &models.Plan{
		CreatorAddress: testCreator,
		CreatorName:    "Ada",
		Name:           "Monthly",
		AssetCode:      models.NativeAssetCode,
		Amount:         decimal.RequireFromString("10"),
		IntervalDays:   30,
	}
	if err := NewPlanRepository(database).Create(context.Background(), plan); err != nil {
		t.Fatalf("failed to seed plan: %v", err)
	}
	return plan
}
