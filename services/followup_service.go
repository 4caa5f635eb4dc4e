package services

import (
	"time"

	"gorm.io/gorm"

	"csms_backend/database"
	"csms_backend/models"
	"csms_backend/utils"
)

// FollowUpInput is the creation payload for a scheduled follow-up.
type FollowUpInput struct {
	ProspectID    uint      `json:"prospect_id" validate:"required"`
	ScheduledDate time.Time `json:"scheduled_date" validate:"required"`
	Notes         string    `json:"notes"`
}

// CreateFollowUp schedules a follow-up against one of the requester's
// own prospects.
func CreateFollowUp(salespersonID uint, input FollowUpInput) (*models.FollowUp, error) {
	if fields := utils.ValidateStruct(input); len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	var prospect models.Prospect
	if err := database.GetDB().First(&prospect, input.ProspectID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, &NotFoundError{Resource: "prospect"}
		}
		return nil, err
	}
	if err := authorizeOwner(prospect.SalespersonID, salespersonID); err != nil {
		return nil, err
	}

	followUp := models.FollowUp{
		SalespersonID: salespersonID,
		ProspectID:    prospect.ID,
		ScheduledDate: input.ScheduledDate,
		Notes:         input.Notes,
		Status:        models.FollowUpStatusPending,
	}
	if err := database.GetDB().Create(&followUp).Error; err != nil {
		return nil, err
	}
	return &followUp, nil
}

// CompleteFollowUp marks a pending follow-up as done. Completing an
// already completed follow-up is rejected so the dashboard counts stay
// honest.
func CompleteFollowUp(followUpID, requesterID uint) (*models.FollowUp, error) {
	var followUp models.FollowUp
	if err := database.GetDB().First(&followUp, followUpID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, &NotFoundError{Resource: "follow-up"}
		}
		return nil, err
	}
	if err := authorizeOwner(followUp.SalespersonID, requesterID); err != nil {
		return nil, err
	}
	if followUp.Status == models.FollowUpStatusCompleted {
		return nil, NewValidationError("status", "follow-up is already completed")
	}

	now := time.Now()
	followUp.Status = models.FollowUpStatusCompleted
	followUp.CompletedAt = &now
	if err := database.GetDB().Save(&followUp).Error; err != nil {
		return nil, err
	}
	return &followUp, nil
}

// ListPendingFollowUps returns the salesperson's open follow-ups,
// soonest first.
func ListPendingFollowUps(salespersonID uint) ([]models.FollowUp, error) {
	var followUps []models.FollowUp
	err := database.GetDB().Preload("Prospect").
		Where("salesperson_id = ? AND status = ?", salespersonID, models.FollowUpStatusPending).
		Order("scheduled_date ASC").
		Find(&followUps).Error
	if err != nil {
		return nil, err
	}
	return followUps, nil
}
