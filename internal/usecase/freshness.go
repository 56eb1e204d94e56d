package usecase

import (
	"time"

	"FinVault/internal/domain/models"
	"FinVault/pkg/util"
)

// FreshnessValidator accepts only records dated on the run's target date.
// A rejected record is never stored, under its own date or any other.
type FreshnessValidator struct{}

func (FreshnessValidator) Validate(candidate models.PriceRecord, targetDate time.Time) error {
	if util.SameDay(candidate.Date, targetDate) {
		return nil
	}
	return &models.StalenessError{
		Key:      candidate.InstrumentKey,
		Expected: util.Day(targetDate),
		Actual:   util.Day(candidate.Date),
	}
}
