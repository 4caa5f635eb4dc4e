package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"csms_backend/models"
)

func TestDashboardFor(t *testing.T) {
	db := setupTestDB(t)
	category := seedCategory(t, db, "Retail", 2, true)

	// seven prospects today, so the recent list must be capped at five
	var prospects []*models.Prospect
	for i := 0; i < 7; i++ {
		prospect, err := CreateProspect(ownerID, ProspectInput{
			CategoryID:   category.ID,
			CustomerName: fmt.Sprintf("Customer %d", i),
		})
		require.NoError(t, err)
		prospects = append(prospects, prospect)
	}

	// one conversion this month
	_, err := ConvertProspect(prospects[0].ID, ownerID)
	require.NoError(t, err)

	// two follow-ups: one completed today, one left pending
	done, err := CreateFollowUp(ownerID, FollowUpInput{
		ProspectID:    prospects[1].ID,
		ScheduledDate: time.Now(),
	})
	require.NoError(t, err)
	_, err = CompleteFollowUp(done.ID, ownerID)
	require.NoError(t, err)

	_, err = CreateFollowUp(ownerID, FollowUpInput{
		ProspectID:    prospects[2].ID,
		ScheduledDate: time.Now().AddDate(0, 0, 1),
	})
	require.NoError(t, err)

	// someone else's activity must not bleed into the summary
	_, err = CreateProspect(strangerID, ProspectInput{
		CategoryID:   category.ID,
		CustomerName: "Someone Else",
	})
	require.NoError(t, err)

	summary, err := DashboardFor(ownerID, time.Now())
	require.NoError(t, err)

	assert.EqualValues(t, 7, summary.TodayProspects)
	assert.EqualValues(t, 7, summary.MonthProspects)
	assert.EqualValues(t, 1, summary.MonthConverted)

	// 7 creations x 2 points + 1 conversion bonus
	expectedPoints := 7*2 + ConversionBonusPoints
	assert.Equal(t, expectedPoints, summary.TodayPoints)
	assert.Equal(t, expectedPoints, summary.MonthPoints)
	assert.Equal(t, expectedPoints, summary.AccumulatedPoints)

	assert.EqualValues(t, 1, summary.TodayFollowUpsCompleted)
	assert.EqualValues(t, 1, summary.MonthFollowUpsCompleted)

	assert.Len(t, summary.RecentProspects, 5)
	require.Len(t, summary.PendingFollowUps, 1)
	assert.Equal(t, prospects[2].ID, summary.PendingFollowUps[0].ProspectID)
}

func TestDashboardForEmptySalesperson(t *testing.T) {
	setupTestDB(t)

	summary, err := DashboardFor(ownerID, time.Now())
	require.NoError(t, err)

	assert.Zero(t, summary.TodayProspects)
	assert.Zero(t, summary.MonthPoints)
	assert.Zero(t, summary.AccumulatedPoints)
	assert.Empty(t, summary.RecentProspects)
	assert.Empty(t, summary.PendingFollowUps)
}
