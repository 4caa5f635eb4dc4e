package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"csms_backend/models"
)

const (
	ownerID    uint = 1
	strangerID uint = 2
)

func TestCreateProspectAwardsCategoryPoints(t *testing.T) {
	db := setupTestDB(t)
	category := seedCategory(t, db, "Customer Rumahan", 1, true)

	prospect, err := CreateProspect(ownerID, ProspectInput{
		CategoryID:    category.ID,
		CustomerName:  "Budi Santoso",
		CustomerEmail: "budi@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, models.ProspectStatusNew, prospect.Status)
	assert.Nil(t, prospect.ConvertedAt)
	assert.NotEmpty(t, prospect.Code)

	var entries []models.PointsLedgerEntry
	require.NoError(t, db.Where("salesperson_id = ?", ownerID).Find(&entries).Error)
	require.Len(t, entries, 1)
	assert.Equal(t, 1, entries[0].PointsEarned)
	assert.Equal(t, models.LedgerEntryDaily, entries[0].Kind)
	assert.Equal(t, prospect.ID, *entries[0].ProspectID)
	assert.Equal(t, 1, entries[0].AccumulatedPoints)
}

func TestCreateProspectValidation(t *testing.T) {
	db := setupTestDB(t)
	category := seedCategory(t, db, "Retail", 3, true)

	var validationErr *ValidationError

	// missing customer name
	_, err := CreateProspect(ownerID, ProspectInput{CategoryID: category.ID})
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Fields, "customer_name")

	// malformed email
	_, err = CreateProspect(ownerID, ProspectInput{
		CategoryID:    category.ID,
		CustomerName:  "Budi",
		CustomerEmail: "not-an-email",
	})
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Fields, "customer_email")

	// latitude out of range
	_, err = CreateProspect(ownerID, ProspectInput{
		CategoryID:   category.ID,
		CustomerName: "Budi",
		Latitude:     floatPtr(123.0),
		Longitude:    floatPtr(10.0),
	})
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Fields, "latitude")

	// latitude without longitude
	_, err = CreateProspect(ownerID, ProspectInput{
		CategoryID:   category.ID,
		CustomerName: "Budi",
		Latitude:     floatPtr(1.0),
	})
	require.ErrorAs(t, err, &validationErr)

	// no ledger entries were written by any failed attempt
	var count int64
	require.NoError(t, db.Model(&models.PointsLedgerEntry{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCreateProspectCategoryChecks(t *testing.T) {
	db := setupTestDB(t)
	inactive := seedCategory(t, db, "Dormant", 5, false)

	var notFoundErr *NotFoundError
	_, err := CreateProspect(ownerID, ProspectInput{CategoryID: 999, CustomerName: "Budi"})
	require.ErrorAs(t, err, &notFoundErr)

	var validationErr *ValidationError
	_, err = CreateProspect(ownerID, ProspectInput{CategoryID: inactive.ID, CustomerName: "Budi"})
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Fields, "category_id")
}

func TestConvertProspect(t *testing.T) {
	db := setupTestDB(t)
	category := seedCategory(t, db, "Customer Rumahan", 1, true)

	prospect, err := CreateProspect(ownerID, ProspectInput{
		CategoryID:   category.ID,
		CustomerName: "Budi",
	})
	require.NoError(t, err)

	converted, err := ConvertProspect(prospect.ID, ownerID)
	require.NoError(t, err)
	assert.Equal(t, models.ProspectStatusConverted, converted.Status)
	require.NotNil(t, converted.ConvertedAt)

	var bonus models.PointsLedgerEntry
	require.NoError(t, db.Where("salesperson_id = ? AND kind = ?", ownerID, models.LedgerEntryBonus).First(&bonus).Error)
	assert.Equal(t, ConversionBonusPoints, bonus.PointsEarned)

	// worked example: 1 base point + 2 bonus points
	accumulation, err := CurrentAccumulation(ownerID)
	require.NoError(t, err)
	assert.Equal(t, 3, accumulation)

	total, err := TotalPoints(ownerID, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, accumulation, total)
}

func TestConvertProspectIsSingleShot(t *testing.T) {
	db := setupTestDB(t)
	category := seedCategory(t, db, "Retail", 1, true)

	prospect, err := CreateProspect(ownerID, ProspectInput{CategoryID: category.ID, CustomerName: "Budi"})
	require.NoError(t, err)

	_, err = ConvertProspect(prospect.ID, ownerID)
	require.NoError(t, err)

	var validationErr *ValidationError
	_, err = ConvertProspect(prospect.ID, ownerID)
	require.ErrorAs(t, err, &validationErr)

	// the bonus was only awarded once
	var bonusCount int64
	require.NoError(t, db.Model(&models.PointsLedgerEntry{}).
		Where("salesperson_id = ? AND kind = ?", ownerID, models.LedgerEntryBonus).
		Count(&bonusCount).Error)
	assert.EqualValues(t, 1, bonusCount)
}

func TestUpdateProspectStatus(t *testing.T) {
	db := setupTestDB(t)
	category := seedCategory(t, db, "Retail", 1, true)

	prospect, err := CreateProspect(ownerID, ProspectInput{CategoryID: category.ID, CustomerName: "Budi"})
	require.NoError(t, err)

	updated, err := UpdateProspectStatus(prospect.ID, ownerID, models.ProspectStatusContacted)
	require.NoError(t, err)
	assert.Equal(t, models.ProspectStatusContacted, updated.Status)

	var validationErr *ValidationError

	// the generic status update never performs a conversion
	_, err = UpdateProspectStatus(prospect.ID, ownerID, models.ProspectStatusConverted)
	require.ErrorAs(t, err, &validationErr)

	// illegal backwards transition
	_, err = UpdateProspectStatus(prospect.ID, ownerID, models.ProspectStatusNew)
	require.ErrorAs(t, err, &validationErr)

	// unknown status string
	_, err = UpdateProspectStatus(prospect.ID, ownerID, models.ProspectStatus("bogus"))
	require.ErrorAs(t, err, &validationErr)

	// rejection is terminal
	_, err = UpdateProspectStatus(prospect.ID, ownerID, models.ProspectStatusRejected)
	require.NoError(t, err)
	_, err = UpdateProspectStatus(prospect.ID, ownerID, models.ProspectStatusContacted)
	require.ErrorAs(t, err, &validationErr)
}

func TestOwnershipIsEnforcedOnEveryMutation(t *testing.T) {
	db := setupTestDB(t)
	category := seedCategory(t, db, "Retail", 1, true)

	prospect, err := CreateProspect(ownerID, ProspectInput{CategoryID: category.ID, CustomerName: "Budi"})
	require.NoError(t, err)

	followUp, err := CreateFollowUp(ownerID, FollowUpInput{
		ProspectID:    prospect.ID,
		ScheduledDate: prospect.CreatedAt,
	})
	require.NoError(t, err)

	var authErr *AuthorizationError

	_, err = UpdateProspectStatus(prospect.ID, strangerID, models.ProspectStatusContacted)
	require.ErrorAs(t, err, &authErr)

	_, err = ConvertProspect(prospect.ID, strangerID)
	require.ErrorAs(t, err, &authErr)

	err = DeleteProspect(prospect.ID, strangerID)
	require.ErrorAs(t, err, &authErr)

	_, err = GetProspect(prospect.ID, strangerID)
	require.ErrorAs(t, err, &authErr)

	_, err = CompleteFollowUp(followUp.ID, strangerID)
	require.ErrorAs(t, err, &authErr)

	_, err = CreateFollowUp(strangerID, FollowUpInput{
		ProspectID:    prospect.ID,
		ScheduledDate: prospect.CreatedAt,
	})
	require.ErrorAs(t, err, &authErr)

	// nothing changed
	current, err := GetProspect(prospect.ID, ownerID)
	require.NoError(t, err)
	assert.Equal(t, models.ProspectStatusNew, current.Status)
}

func TestDeleteProspectKeepsLedger(t *testing.T) {
	db := setupTestDB(t)
	category := seedCategory(t, db, "Retail", 4, true)

	prospect, err := CreateProspect(ownerID, ProspectInput{CategoryID: category.ID, CustomerName: "Budi"})
	require.NoError(t, err)

	require.NoError(t, DeleteProspect(prospect.ID, ownerID))

	var notFoundErr *NotFoundError
	_, err = GetProspect(prospect.ID, ownerID)
	require.ErrorAs(t, err, &notFoundErr)

	// earned points are sunk, not reversed
	total, err := TotalPoints(ownerID, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 4, total)
}

func TestFindNearbyProspects(t *testing.T) {
	db := setupTestDB(t)
	category := seedCategory(t, db, "Retail", 1, true)

	// Jakarta city center
	center := ProspectInput{
		CategoryID:   category.ID,
		CustomerName: "Near",
		Latitude:     floatPtr(-6.2000),
		Longitude:    floatPtr(106.8167),
	}
	// Bandung, ~120 km away
	far := ProspectInput{
		CategoryID:   category.ID,
		CustomerName: "Far",
		Latitude:     floatPtr(-6.9147),
		Longitude:    floatPtr(107.6098),
	}
	// no coordinates at all
	unknown := ProspectInput{
		CategoryID:   category.ID,
		CustomerName: "Unknown",
	}

	for _, input := range []ProspectInput{center, far, unknown} {
		_, err := CreateProspect(ownerID, input)
		require.NoError(t, err)
	}
	// another salesperson's prospect at the same spot must not leak
	_, err := CreateProspect(strangerID, ProspectInput{
		CategoryID:   category.ID,
		CustomerName: "Other",
		Latitude:     floatPtr(-6.2001),
		Longitude:    floatPtr(106.8168),
	})
	require.NoError(t, err)

	nearby, err := FindNearbyProspects(ownerID, NearbyQuery{
		Latitude:  -6.2000,
		Longitude: 106.8167,
		RadiusKm:  floatPtr(10.0),
	})
	require.NoError(t, err)
	require.Len(t, nearby, 1)
	assert.Equal(t, "Near", nearby[0].CustomerName)
	require.NotNil(t, nearby[0].Category, "category must be joined")

	// widening the radius picks up Bandung
	nearby, err = FindNearbyProspects(ownerID, NearbyQuery{
		Latitude:  -6.2000,
		Longitude: 106.8167,
		RadiusKm:  floatPtr(200.0),
	})
	require.NoError(t, err)
	assert.Len(t, nearby, 2)

	var validationErr *ValidationError
	_, err = FindNearbyProspects(ownerID, NearbyQuery{Latitude: 95, Longitude: 10})
	require.ErrorAs(t, err, &validationErr)
}
