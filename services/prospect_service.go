package services

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"csms_backend/database"
	"csms_backend/models"
	"csms_backend/utils"
)

// ProspectInput is the creation payload supplied by the web layer.
type ProspectInput struct {
	CategoryID     uint     `json:"category_id" validate:"required"`
	CustomerName   string   `json:"customer_name" validate:"required,max=100"`
	CustomerEmail  string   `json:"customer_email" validate:"omitempty,email,max=100"`
	CustomerNumber string   `json:"customer_number" validate:"omitempty,max=30"`
	Address        string   `json:"address" validate:"omitempty,max=255"`
	Latitude       *float64 `json:"latitude" validate:"omitempty,gte=-90,lte=90"`
	Longitude      *float64 `json:"longitude" validate:"omitempty,gte=-180,lte=180"`
	Notes          string   `json:"notes"`
}

// CreateProspect registers a new lead for the salesperson and awards
// the category's base points in the same transaction, so no reader can
// observe a prospect whose ledger entry is missing.
func CreateProspect(salespersonID uint, input ProspectInput) (*models.Prospect, error) {
	if fields := utils.ValidateStruct(input); len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}
	// Coordinates travel as a pair.
	if (input.Latitude == nil) != (input.Longitude == nil) {
		return nil, NewValidationError("longitude", "latitude and longitude must be provided together")
	}

	var category models.ProspectCategory
	if err := database.GetDB().First(&category, input.CategoryID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, &NotFoundError{Resource: "prospect category"}
		}
		return nil, err
	}
	if !category.IsActive {
		return nil, NewValidationError("category_id", "category is no longer active")
	}

	prospect := models.Prospect{
		Code:           utils.GenerateProspectCode(),
		SalespersonID:  salespersonID,
		CategoryID:     category.ID,
		CustomerName:   input.CustomerName,
		CustomerEmail:  input.CustomerEmail,
		CustomerNumber: input.CustomerNumber,
		Address:        input.Address,
		Latitude:       input.Latitude,
		Longitude:      input.Longitude,
		Status:         models.ProspectStatusNew,
		Notes:          input.Notes,
	}

	err := database.GetDB().Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&prospect).Error; err != nil {
			return err
		}
		description := fmt.Sprintf("Base points for new prospect %s (%s)", prospect.Code, category.Name)
		_, err := awardPointsTx(tx, salespersonID, &prospect.ID, category.Points, models.LedgerEntryDaily, description)
		return err
	})
	if err != nil {
		return nil, err
	}

	prospect.Category = &category
	return &prospect, nil
}

// GetProspect loads a prospect with its category. Reads are
// ownership-checked like mutations; the error is the same opaque
// forbidden either way.
func GetProspect(prospectID, requesterID uint) (*models.Prospect, error) {
	var prospect models.Prospect
	err := database.GetDB().Preload("Category").First(&prospect, prospectID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, &NotFoundError{Resource: "prospect"}
		}
		return nil, err
	}
	if err := authorizeOwner(prospect.SalespersonID, requesterID); err != nil {
		return nil, err
	}
	return &prospect, nil
}

// UpdateProspectStatus moves a prospect along the lifecycle. Converted
// is deliberately rejected here: the convert operation is the only
// path that sets converted_at and awards the bonus, so the two can
// never diverge from the ledger.
func UpdateProspectStatus(prospectID, requesterID uint, newStatus models.ProspectStatus) (*models.Prospect, error) {
	if !newStatus.Valid() {
		return nil, NewValidationError("status", "unknown status")
	}
	if newStatus == models.ProspectStatusConverted {
		return nil, NewValidationError("status", "conversion must go through the convert operation")
	}

	var prospect models.Prospect
	if err := database.GetDB().First(&prospect, prospectID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, &NotFoundError{Resource: "prospect"}
		}
		return nil, err
	}
	if err := authorizeOwner(prospect.SalespersonID, requesterID); err != nil {
		return nil, err
	}
	if !models.CanTransition(prospect.Status, newStatus) {
		return nil, NewValidationError("status", fmt.Sprintf("cannot move from %s to %s", prospect.Status, newStatus))
	}

	prospect.Status = newStatus
	if err := database.GetDB().Save(&prospect).Error; err != nil {
		return nil, err
	}
	return &prospect, nil
}

// ConvertProspect marks a prospect as a paying customer and awards the
// fixed conversion bonus. The status precondition makes the operation
// single-shot: converting twice neither double-awards nor moves
// converted_at.
func ConvertProspect(prospectID, requesterID uint) (*models.Prospect, error) {
	var prospect models.Prospect
	if err := database.GetDB().First(&prospect, prospectID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, &NotFoundError{Resource: "prospect"}
		}
		return nil, err
	}
	if err := authorizeOwner(prospect.SalespersonID, requesterID); err != nil {
		return nil, err
	}
	if prospect.Status == models.ProspectStatusConverted {
		return nil, NewValidationError("status", "prospect is already converted")
	}
	if !models.CanTransition(prospect.Status, models.ProspectStatusConverted) {
		return nil, NewValidationError("status", fmt.Sprintf("cannot convert a %s prospect", prospect.Status))
	}

	now := time.Now()
	err := database.GetDB().Transaction(func(tx *gorm.DB) error {
		prospect.Status = models.ProspectStatusConverted
		prospect.ConvertedAt = &now
		if err := tx.Save(&prospect).Error; err != nil {
			return err
		}
		description := fmt.Sprintf("Conversion bonus for prospect %s", prospect.Code)
		_, err := awardPointsTx(tx, prospect.SalespersonID, &prospect.ID, ConversionBonusPoints, models.LedgerEntryBonus, description)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &prospect, nil
}

// DeleteProspect removes a prospect and its follow-ups. Ledger entries
// are append-only and stay: points already earned are sunk.
func DeleteProspect(prospectID, requesterID uint) error {
	var prospect models.Prospect
	if err := database.GetDB().First(&prospect, prospectID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return &NotFoundError{Resource: "prospect"}
		}
		return err
	}
	if err := authorizeOwner(prospect.SalespersonID, requesterID); err != nil {
		return err
	}

	return database.GetDB().Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("prospect_id = ?", prospect.ID).Delete(&models.FollowUp{}).Error; err != nil {
			return err
		}
		return tx.Delete(&prospect).Error
	})
}

// NearbyQuery is the payload for a proximity search around a point.
type NearbyQuery struct {
	Latitude  float64  `json:"latitude" query:"latitude" validate:"gte=-90,lte=90"`
	Longitude float64  `json:"longitude" query:"longitude" validate:"gte=-180,lte=180"`
	RadiusKm  *float64 `json:"radius_km" query:"radius_km" validate:"omitempty,gt=0"`
}

const defaultNearbyRadiusKm = 5.0

// FindNearbyProspects returns the salesperson's prospects with
// coordinates within the radius, categories joined. Distance is
// great-circle per HaversineKm; the scan is O(n) over the owner's
// geocoded prospects, which is fine at per-salesperson scale.
func FindNearbyProspects(salespersonID uint, query NearbyQuery) ([]models.Prospect, error) {
	if fields := utils.ValidateStruct(query); len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}
	radius := defaultNearbyRadiusKm
	if query.RadiusKm != nil {
		radius = *query.RadiusKm
	}

	var candidates []models.Prospect
	err := database.GetDB().Preload("Category").
		Where("salesperson_id = ?", salespersonID).
		Where("latitude IS NOT NULL AND longitude IS NOT NULL").
		Find(&candidates).Error
	if err != nil {
		return nil, err
	}

	nearby := make([]models.Prospect, 0, len(candidates))
	for _, prospect := range candidates {
		distance := HaversineKm(query.Latitude, query.Longitude, *prospect.Latitude, *prospect.Longitude)
		if distance <= radius {
			nearby = append(nearby, prospect)
		}
	}
	return nearby, nil
}
