package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"csms_backend/models"
)

func TestAwardPointsKeepsRunningTotal(t *testing.T) {
	db := setupTestDB(t)

	awards := []struct {
		points int
		kind   models.LedgerEntryKind
	}{
		{3, models.LedgerEntryDaily},
		{2, models.LedgerEntryBonus},
		{-1, models.LedgerEntryPenalty},
		{5, models.LedgerEntryDaily},
	}

	running := 0
	for _, award := range awards {
		entry, err := AwardPoints(ownerID, nil, award.points, award.kind, "test award")
		require.NoError(t, err)

		running += award.points
		assert.Equal(t, running, entry.AccumulatedPoints)
	}

	// accumulation always equals the plain sum after sequential awards
	total, err := TotalPoints(ownerID, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 9, total)

	accumulation, err := CurrentAccumulation(ownerID)
	require.NoError(t, err)
	assert.Equal(t, total, accumulation)

	var count int64
	require.NoError(t, db.Model(&models.PointsLedgerEntry{}).Count(&count).Error)
	assert.EqualValues(t, len(awards), count)
}

func TestAwardPointsIsolatesSalespeople(t *testing.T) {
	setupTestDB(t)

	_, err := AwardPoints(ownerID, nil, 10, models.LedgerEntryDaily, "owner award")
	require.NoError(t, err)
	_, err = AwardPoints(strangerID, nil, 4, models.LedgerEntryDaily, "stranger award")
	require.NoError(t, err)

	accumulation, err := CurrentAccumulation(ownerID)
	require.NoError(t, err)
	assert.Equal(t, 10, accumulation)

	accumulation, err = CurrentAccumulation(strangerID)
	require.NoError(t, err)
	assert.Equal(t, 4, accumulation)
}

func TestAwardPointsRejectsUnknownKind(t *testing.T) {
	setupTestDB(t)

	var validationErr *ValidationError
	_, err := AwardPoints(ownerID, nil, 1, models.LedgerEntryKind("mystery"), "bad kind")
	require.ErrorAs(t, err, &validationErr)
}

func TestTotalPointsDateRange(t *testing.T) {
	db := setupTestDB(t)

	today := startOfDay(time.Now())
	yesterday := today.AddDate(0, 0, -1)
	lastWeek := today.AddDate(0, 0, -7)

	entries := []models.PointsLedgerEntry{
		{SalespersonID: ownerID, PointsEarned: 5, AccumulatedPoints: 5, EntryDate: lastWeek, Kind: models.LedgerEntryDaily},
		{SalespersonID: ownerID, PointsEarned: 3, AccumulatedPoints: 8, EntryDate: yesterday, Kind: models.LedgerEntryDaily},
		{SalespersonID: ownerID, PointsEarned: 2, AccumulatedPoints: 10, EntryDate: today, Kind: models.LedgerEntryBonus},
	}
	for i := range entries {
		require.NoError(t, db.Create(&entries[i]).Error)
	}

	total, err := TotalPoints(ownerID, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 10, total)

	// bounds are inclusive on both sides
	total, err = TotalPoints(ownerID, &yesterday, &today)
	require.NoError(t, err)
	assert.Equal(t, 5, total)

	total, err = TotalPoints(ownerID, nil, &yesterday)
	require.NoError(t, err)
	assert.Equal(t, 8, total)

	total, err = TotalPoints(ownerID, &today, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, total)
}

func TestCurrentAccumulationEmptyLedger(t *testing.T) {
	setupTestDB(t)

	accumulation, err := CurrentAccumulation(ownerID)
	require.NoError(t, err)
	assert.Zero(t, accumulation)
}
