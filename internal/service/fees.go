package service

import (
	"github.com/myfans/settlement/internal/config"
	"github.com/myfans/settlement/internal/pricing"
	"github.com/shopspring/decimal"
)

// FeeService exposes the withdrawal fee schedule
type FeeService struct {
	schedule pricing.FeeSchedule
	example  decimal.Decimal
}

// NewFeeService creates a FeeService from configuration
func NewFeeService(cfg config.WithdrawalConfig) *FeeService {
	return &FeeService{
		schedule: pricing.FeeSchedule{
			ProtocolFeeBps:     cfg.ProtocolFeeBps,
			WithdrawalFixedFee: cfg.FixedFee,
			WithdrawalFeeRate:  cfg.FeeRate,
			Precision:          cfg.Precision,
		},
		example: cfg.ExampleAmount,
	}
}

// Transparency describes the schedule with the configured worked example
func (s *FeeService) Transparency() (*pricing.FeeTransparency, error) {
	t, err := s.schedule.Transparency(s.example)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Quote computes what a creator receives for withdrawing earnings
func (s *FeeService) Quote(earnings decimal.Decimal) (*pricing.WithdrawalResult, error) {
	r, err := s.schedule.Quote(earnings)
	if err != nil {
		return nil, err
	}
	return &r, nil
}
