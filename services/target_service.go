package services

import (
	"time"

	"gorm.io/gorm"

	"csms_backend/database"
	"csms_backend/models"
)

// ResolveCurrentTarget returns the sales target effective for the
// salesperson on the given date, or nil when no window matches.
//
// Matching rule: effective_from <= date, effective_to null or >= date,
// active only. When windows overlap, the row with the latest
// effective_from wins.
func ResolveCurrentTarget(salespersonID uint, date time.Time) (*models.SalesTarget, error) {
	day := startOfDay(date)

	var target models.SalesTarget
	err := database.GetDB().
		Where("salesperson_id = ? AND is_active = ?", salespersonID, true).
		Where("effective_from <= ?", endOfDay(date)).
		Where("effective_to IS NULL OR effective_to >= ?", day).
		Order("effective_from DESC").
		First(&target).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &target, nil
}

// ProgressWindow is one window of target progress.
type ProgressWindow struct {
	Target  int     `json:"target"`
	Earned  int     `json:"earned"`
	Percent float64 `json:"percent"`
}

// ProgressReport is the daily and monthly target progress for a
// salesperson on a given date.
type ProgressReport struct {
	Date      string         `json:"date"`
	HasTarget bool           `json:"has_target"`
	Daily     ProgressWindow `json:"daily"`
	Monthly   ProgressWindow `json:"monthly"`
}

// TargetProgress computes points earned in the day and month of the
// given date against the currently effective target. Without an active
// target both percentages are 0; there is no division by a zero quota.
func TargetProgress(salespersonID uint, date time.Time) (*ProgressReport, error) {
	report := &ProgressReport{Date: startOfDay(date).Format("2006-01-02")}

	dayFrom, dayTo := startOfDay(date), endOfDay(date)
	earnedToday, err := TotalPoints(salespersonID, &dayFrom, &dayTo)
	if err != nil {
		return nil, err
	}
	monthFrom, monthTo := startOfMonth(date), endOfMonth(date)
	earnedThisMonth, err := TotalPoints(salespersonID, &monthFrom, &monthTo)
	if err != nil {
		return nil, err
	}
	report.Daily.Earned = earnedToday
	report.Monthly.Earned = earnedThisMonth

	target, err := ResolveCurrentTarget(salespersonID, date)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return report, nil
	}

	report.HasTarget = true
	report.Daily.Target = target.DailyTarget
	report.Monthly.Target = target.MonthlyTarget
	if target.DailyTarget > 0 {
		report.Daily.Percent = float64(earnedToday) / float64(target.DailyTarget) * 100
	}
	if target.MonthlyTarget > 0 {
		report.Monthly.Percent = float64(earnedThisMonth) / float64(target.MonthlyTarget) * 100
	}
	return report, nil
}

// TargetInput is the admin payload for creating a sales target.
type TargetInput struct {
	SalespersonID uint       `json:"salesperson_id" validate:"required"`
	DailyTarget   int        `json:"daily_target" validate:"gte=0"`
	MonthlyTarget int        `json:"monthly_target" validate:"gte=0"`
	EffectiveFrom time.Time  `json:"effective_from" validate:"required"`
	EffectiveTo   *time.Time `json:"effective_to"`
}
