package services

import (
	"time"

	"csms_backend/database"
	"csms_backend/models"
)

// dashboardListLimit caps the recent/pending lists on the dashboard.
const dashboardListLimit = 5

// DashboardSummary is the fixed-size stat block for one salesperson.
type DashboardSummary struct {
	TodayProspects          int64             `json:"today_prospects"`
	TodayPoints             int               `json:"today_points"`
	TodayFollowUpsCompleted int64             `json:"today_follow_ups_completed"`
	MonthProspects          int64             `json:"month_prospects"`
	MonthPoints             int               `json:"month_points"`
	MonthFollowUpsCompleted int64             `json:"month_follow_ups_completed"`
	MonthConverted          int64             `json:"month_converted"`
	AccumulatedPoints       int               `json:"accumulated_points"`
	RecentProspects         []models.Prospect `json:"recent_prospects"`
	PendingFollowUps        []models.FollowUp `json:"pending_follow_ups"`
}

// DashboardFor composes the read-only summary a salesperson sees after
// login: today's and this month's prospect counts, points earned,
// completed follow-ups, monthly conversions, the five most recent
// prospects, the five next pending follow-ups and the running points
// accumulation. Pure query composition, no mutation.
func DashboardFor(salespersonID uint, now time.Time) (*DashboardSummary, error) {
	db := database.GetDB()
	summary := &DashboardSummary{}

	dayFrom, dayTo := startOfDay(now), endOfDay(now)
	monthFrom, monthTo := startOfMonth(now), endOfMonth(now)

	err := db.Model(&models.Prospect{}).
		Where("salesperson_id = ? AND created_at BETWEEN ? AND ?", salespersonID, dayFrom, dayTo).
		Count(&summary.TodayProspects).Error
	if err != nil {
		return nil, err
	}
	err = db.Model(&models.Prospect{}).
		Where("salesperson_id = ? AND created_at BETWEEN ? AND ?", salespersonID, monthFrom, monthTo).
		Count(&summary.MonthProspects).Error
	if err != nil {
		return nil, err
	}
	err = db.Model(&models.Prospect{}).
		Where("salesperson_id = ? AND status = ? AND converted_at BETWEEN ? AND ?",
			salespersonID, models.ProspectStatusConverted, monthFrom, monthTo).
		Count(&summary.MonthConverted).Error
	if err != nil {
		return nil, err
	}

	if summary.TodayPoints, err = TotalPoints(salespersonID, &dayFrom, &dayTo); err != nil {
		return nil, err
	}
	if summary.MonthPoints, err = TotalPoints(salespersonID, &monthFrom, &monthTo); err != nil {
		return nil, err
	}

	err = db.Model(&models.FollowUp{}).
		Where("salesperson_id = ? AND status = ? AND completed_at BETWEEN ? AND ?",
			salespersonID, models.FollowUpStatusCompleted, dayFrom, dayTo).
		Count(&summary.TodayFollowUpsCompleted).Error
	if err != nil {
		return nil, err
	}
	err = db.Model(&models.FollowUp{}).
		Where("salesperson_id = ? AND status = ? AND completed_at BETWEEN ? AND ?",
			salespersonID, models.FollowUpStatusCompleted, monthFrom, monthTo).
		Count(&summary.MonthFollowUpsCompleted).Error
	if err != nil {
		return nil, err
	}

	if summary.AccumulatedPoints, err = CurrentAccumulation(salespersonID); err != nil {
		return nil, err
	}

	err = db.Preload("Category").
		Where("salesperson_id = ?", salespersonID).
		Order("created_at DESC").
		Limit(dashboardListLimit).
		Find(&summary.RecentProspects).Error
	if err != nil {
		return nil, err
	}

	err = db.Preload("Prospect").
		Where("salesperson_id = ? AND status = ?", salespersonID, models.FollowUpStatusPending).
		Order("scheduled_date ASC").
		Limit(dashboardListLimit).
		Find(&summary.PendingFollowUps).Error
	if err != nil {
		return nil, err
	}

	return summary, nil
}
