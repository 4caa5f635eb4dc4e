package models

import (
	"time"
)

// ProspectStatus is the lifecycle state of a sales lead.
type ProspectStatus string

const (
	ProspectStatusNew       ProspectStatus = "new"
	ProspectStatusContacted ProspectStatus = "contacted"
	ProspectStatusQualified ProspectStatus = "qualified"
	ProspectStatusConverted ProspectStatus = "converted"
	ProspectStatusRejected  ProspectStatus = "rejected"
)

// prospectTransitions is the single source of truth for legal status
// changes. converted and rejected are terminal.
var prospectTransitions = map[ProspectStatus][]ProspectStatus{
	ProspectStatusNew:       {ProspectStatusContacted, ProspectStatusQualified, ProspectStatusConverted, ProspectStatusRejected},
	ProspectStatusContacted: {ProspectStatusQualified, ProspectStatusConverted, ProspectStatusRejected},
	ProspectStatusQualified: {ProspectStatusConverted, ProspectStatusRejected},
	ProspectStatusConverted: {},
	ProspectStatusRejected:  {},
}

// Valid reports whether s is a known prospect status.
func (s ProspectStatus) Valid() bool {
	_, ok := prospectTransitions[s]
	return ok
}

// CanTransition reports whether a prospect may move from one status to
// another.
func CanTransition(from, to ProspectStatus) bool {
	for _, next := range prospectTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Prospect is a sales lead owned by exactly one salesperson. Only the
// owner may mutate it. ConvertedAt is set if and only if the status is
// converted.
type Prospect struct {
	ID             uint              `json:"id" gorm:"primaryKey"`
	Code           string            `json:"code" gorm:"size:50;uniqueIndex"` // generated reference code
	SalespersonID  uint              `json:"salesperson_id" gorm:"index:idx_prospect_owner"`
	CategoryID     uint              `json:"category_id" gorm:"index"`
	CustomerName   string            `json:"customer_name" gorm:"size:100"`
	CustomerEmail  string            `json:"customer_email" gorm:"size:100"`
	CustomerNumber string            `json:"customer_number" gorm:"size:30"`
	Address        string            `json:"address" gorm:"size:255"`
	Latitude       *float64          `json:"latitude"`
	Longitude      *float64          `json:"longitude"`
	Status         ProspectStatus    `json:"status" gorm:"size:20;default:new;index:idx_prospect_owner"`
	Notes          string            `json:"notes" gorm:"type:text"`
	ConvertedAt    *time.Time        `json:"converted_at"`
	Category       *ProspectCategory `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	CreatedAt      time.Time         `json:"created_at" gorm:"autoCreateTime;index"`
	UpdatedAt      time.Time         `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName returns the table name.
func (Prospect) TableName() string {
	return "prospects"
}

// HasCoordinates reports whether both latitude and longitude are set.
func (p *Prospect) HasCoordinates() bool {
	return p.Latitude != nil && p.Longitude != nil
}

// ProspectQuery holds list filters and pagination parameters.
type ProspectQuery struct {
	Status     string `json:"status" query:"status"`
	CategoryID uint   `json:"category_id" query:"category_id"`
	Keyword    string `json:"keyword" query:"keyword"` // matches customer name
	Page       int    `json:"page" query:"page"`
	PageSize   int    `json:"page_size" query:"page_size"`
}

// ProspectCategory classifies prospects and fixes the base points a
// salesperson earns for registering one. The point value is read at
// award time; later edits never rewrite past ledger entries.
type ProspectCategory struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"size:100;uniqueIndex"`
	Description string    `json:"description" gorm:"type:text"`
	Points      int       `json:"points" gorm:"default:0"` // base points awarded on prospect creation
	IsActive    bool      `json:"is_active" gorm:"default:true"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName returns the table name.
func (ProspectCategory) TableName() string {
	return "prospect_categories"
}
