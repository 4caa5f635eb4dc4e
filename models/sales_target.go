package models

import (
	"time"
)

// SalesTarget is a daily/monthly points quota for a salesperson,
// effective over a date window. EffectiveTo nil means open-ended.
//
// The schema only guards uniqueness of (salesperson_id, effective_from),
// so overlapping active windows are possible; readers resolve ambiguity
// by taking the row with the latest effective_from.
type SalesTarget struct {
	ID            uint       `json:"id" gorm:"primaryKey"`
	SalespersonID uint       `json:"salesperson_id" gorm:"uniqueIndex:idx_target_sales_effective"`
	DailyTarget   int        `json:"daily_target"`
	MonthlyTarget int        `json:"monthly_target"`
	EffectiveFrom time.Time  `json:"effective_from" gorm:"uniqueIndex:idx_target_sales_effective"`
	EffectiveTo   *time.Time `json:"effective_to"`
	IsActive      bool       `json:"is_active" gorm:"default:true"`
	CreatedAt     time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt     time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName returns the table name.
func (SalesTarget) TableName() string {
	return "sales_targets"
}
