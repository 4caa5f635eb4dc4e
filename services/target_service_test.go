package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"csms_backend/models"
)

func seedTarget(t *testing.T, db *gorm.DB, salespersonID uint, daily, monthly int, from time.Time, to *time.Time, active bool) models.SalesTarget {
	t.Helper()

	target := models.SalesTarget{
		SalespersonID: salespersonID,
		DailyTarget:   daily,
		MonthlyTarget: monthly,
		EffectiveFrom: from,
		EffectiveTo:   to,
		IsActive:      active,
	}
	if err := db.Create(&target).Error; err != nil {
		t.Fatalf("failed to seed target: %v", err)
	}
	return target
}

func TestResolveCurrentTarget(t *testing.T) {
	db := setupTestDB(t)

	now := time.Now()
	monthAgo := now.AddDate(0, -1, 0)
	weekAgo := now.AddDate(0, 0, -7)

	// no target at all
	target, err := ResolveCurrentTarget(ownerID, now)
	require.NoError(t, err)
	assert.Nil(t, target)

	// open-ended window matches
	old := seedTarget(t, db, ownerID, 5, 100, monthAgo, nil, true)
	target, err = ResolveCurrentTarget(ownerID, now)
	require.NoError(t, err)
	require.NotNil(t, target)
	assert.Equal(t, old.ID, target.ID)

	// overlapping window: the later effective_from wins
	recent := seedTarget(t, db, ownerID, 8, 160, weekAgo, nil, true)
	target, err = ResolveCurrentTarget(ownerID, now)
	require.NoError(t, err)
	require.NotNil(t, target)
	assert.Equal(t, recent.ID, target.ID)

	// inactive rows are never current
	seedTarget(t, db, ownerID, 99, 999, now.AddDate(0, 0, -1), nil, false)
	target, err = ResolveCurrentTarget(ownerID, now)
	require.NoError(t, err)
	require.NotNil(t, target)
	assert.Equal(t, recent.ID, target.ID)

	// a window that already closed does not match
	closedEnd := now.AddDate(0, 0, -2)
	seedTarget(t, db, strangerID, 5, 100, monthAgo, &closedEnd, true)
	target, err = ResolveCurrentTarget(strangerID, now)
	require.NoError(t, err)
	assert.Nil(t, target)

	// a window starting in the future does not match
	seedTarget(t, db, 3, 5, 100, now.AddDate(0, 0, 3), nil, true)
	target, err = ResolveCurrentTarget(3, now)
	require.NoError(t, err)
	assert.Nil(t, target)
}

func TestTargetProgressWithoutTarget(t *testing.T) {
	setupTestDB(t)

	_, err := AwardPoints(ownerID, nil, 5, models.LedgerEntryDaily, "work")
	require.NoError(t, err)

	// no active target: earned is reported, percentages stay at zero
	report, err := TargetProgress(ownerID, time.Now())
	require.NoError(t, err)
	assert.False(t, report.HasTarget)
	assert.Equal(t, 5, report.Daily.Earned)
	assert.Equal(t, 5, report.Monthly.Earned)
	assert.Zero(t, report.Daily.Percent)
	assert.Zero(t, report.Monthly.Percent)
}

func TestTargetProgress(t *testing.T) {
	db := setupTestDB(t)

	now := time.Now()
	seedTarget(t, db, ownerID, 10, 100, now.AddDate(0, 0, -10), nil, true)

	_, err := AwardPoints(ownerID, nil, 5, models.LedgerEntryDaily, "morning visits")
	require.NoError(t, err)
	_, err = AwardPoints(ownerID, nil, 2, models.LedgerEntryBonus, "conversion")
	require.NoError(t, err)

	report, err := TargetProgress(ownerID, now)
	require.NoError(t, err)
	assert.True(t, report.HasTarget)
	assert.Equal(t, 10, report.Daily.Target)
	assert.Equal(t, 100, report.Monthly.Target)
	assert.Equal(t, 7, report.Daily.Earned)
	assert.InDelta(t, 70.0, report.Daily.Percent, 0.001)
	assert.Equal(t, 7, report.Monthly.Earned)
	assert.InDelta(t, 7.0, report.Monthly.Percent, 0.001)
}

func TestTargetProgressZeroQuota(t *testing.T) {
	db := setupTestDB(t)

	now := time.Now()
	seedTarget(t, db, ownerID, 0, 0, now.AddDate(0, 0, -1), nil, true)

	_, err := AwardPoints(ownerID, nil, 3, models.LedgerEntryDaily, "work")
	require.NoError(t, err)

	// a zero quota must not divide
	report, err := TargetProgress(ownerID, now)
	require.NoError(t, err)
	assert.True(t, report.HasTarget)
	assert.Zero(t, report.Daily.Percent)
	assert.Zero(t, report.Monthly.Percent)
}
