package services

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"csms_backend/database"
	"csms_backend/models"
)

// ConversionBonusPoints is the fixed bonus awarded when a prospect is
// converted, regardless of its category.
const ConversionBonusPoints = 2

// AwardPoints appends a ledger entry for the salesperson and updates
// the running accumulation, all inside one transaction. See
// awardPointsTx for the locking rules.
func AwardPoints(salespersonID uint, prospectID *uint, points int, kind models.LedgerEntryKind, description string) (*models.PointsLedgerEntry, error) {
	if !kind.Valid() {
		return nil, NewValidationError("kind", "must be one of daily, bonus, penalty")
	}

	var entry *models.PointsLedgerEntry
	err := database.GetDB().Transaction(func(tx *gorm.DB) error {
		var txErr error
		entry, txErr = awardPointsTx(tx, salespersonID, prospectID, points, kind, description)
		return txErr
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// awardPointsTx inserts a ledger entry dated today, carrying the
// salesperson's new running total. The caller supplies the transaction
// so prospect creation and conversion can award inside their own unit
// of work.
//
// The salesperson's latest ledger row is read under a row lock on
// MySQL, so two concurrent awards for the same salesperson serialize
// and neither running total is lost. SQLite rejects FOR UPDATE and
// serializes writers on its own, so the clause is skipped there.
func awardPointsTx(tx *gorm.DB, salespersonID uint, prospectID *uint, points int, kind models.LedgerEntryKind, description string) (*models.PointsLedgerEntry, error) {
	latest := tx.Where("salesperson_id = ?", salespersonID).
		Order("entry_date DESC, id DESC")
	if tx.Dialector.Name() == "mysql" {
		latest = latest.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	previous := 0
	var last models.PointsLedgerEntry
	if err := latest.First(&last).Error; err != nil {
		if err != gorm.ErrRecordNotFound {
			return nil, err
		}
	} else {
		previous = last.AccumulatedPoints
	}

	now := time.Now()
	entry := models.PointsLedgerEntry{
		SalespersonID:     salespersonID,
		ProspectID:        prospectID,
		PointsEarned:      points,
		AccumulatedPoints: previous + points,
		EntryDate:         startOfDay(now),
		Kind:              kind,
		Description:       description,
	}
	if err := tx.Create(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

// TotalPoints sums points_earned for a salesperson, optionally bounded
// by an inclusive date range. A nil bound leaves that side open.
func TotalPoints(salespersonID uint, from, to *time.Time) (int, error) {
	query := database.GetDB().Model(&models.PointsLedgerEntry{}).
		Where("salesperson_id = ?", salespersonID)
	if from != nil {
		query = query.Where("entry_date >= ?", *from)
	}
	if to != nil {
		query = query.Where("entry_date <= ?", *to)
	}

	var total int
	if err := query.Select("COALESCE(SUM(points_earned), 0)").Scan(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

// CurrentAccumulation returns the running total carried by the
// salesperson's latest ledger entry, or 0 when the ledger is empty.
func CurrentAccumulation(salespersonID uint) (int, error) {
	var last models.PointsLedgerEntry
	err := database.GetDB().Where("salesperson_id = ?", salespersonID).
		Order("entry_date DESC, id DESC").
		First(&last).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return 0, nil
		}
		return 0, err
	}
	return last.AccumulatedPoints, nil
}

// startOfDay truncates t to midnight in its own location.
func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// endOfDay returns the last instant of t's day.
func endOfDay(t time.Time) time.Time {
	return startOfDay(t).AddDate(0, 0, 1).Add(-time.Second)
}

// startOfMonth truncates t to the first day of its month.
func startOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// endOfMonth returns the last instant of t's month.
func endOfMonth(t time.Time) time.Time {
	return startOfMonth(t).AddDate(0, 1, 0).Add(-time.Second)
}
