package models

import (
	"time"
)

// LedgerEntryKind classifies a points ledger entry.
type LedgerEntryKind string

const (
	LedgerEntryDaily   LedgerEntryKind = "daily"   // base points for day-to-day prospect work
	LedgerEntryBonus   LedgerEntryKind = "bonus"   // conversion or campaign bonus
	LedgerEntryPenalty LedgerEntryKind = "penalty" // negative adjustment
)

// Valid reports whether k is a known ledger entry kind.
func (k LedgerEntryKind) Valid() bool {
	switch k {
	case LedgerEntryDaily, LedgerEntryBonus, LedgerEntryPenalty:
		return true
	}
	return false
}

// PointsLedgerEntry is one point-earning (or penalty) event for a
// salesperson. The ledger is append-only: rows are never updated or
// deleted, even when the originating prospect is removed.
//
// AccumulatedPoints carries the salesperson's running total as of this
// entry. It is written once, inside the award transaction, so the
// latest row answers the current accumulation in O(1).
type PointsLedgerEntry struct {
	ID                uint            `json:"id" gorm:"primaryKey"`
	SalespersonID     uint            `json:"salesperson_id" gorm:"index:idx_ledger_sales_date"`
	ProspectID        *uint           `json:"prospect_id" gorm:"index"` // nil for manual adjustments
	PointsEarned      int             `json:"points_earned"`            // signed, penalties are negative
	AccumulatedPoints int             `json:"accumulated_points"`
	EntryDate         time.Time       `json:"entry_date" gorm:"index:idx_ledger_sales_date"`
	Kind              LedgerEntryKind `json:"kind" gorm:"size:20"`
	Description       string          `json:"description" gorm:"size:255"`
	CreatedAt         time.Time       `json:"created_at" gorm:"autoCreateTime"`
}

// TableName returns the table name.
func (PointsLedgerEntry) TableName() string {
	return "points_ledger_entries"
}

// LedgerQuery holds list filters and pagination parameters.
type LedgerQuery struct {
	Kind     string `json:"kind" query:"kind"`
	From     string `json:"from" query:"from"` // inclusive, YYYY-MM-DD
	To       string `json:"to" query:"to"`     // inclusive, YYYY-MM-DD
	Page     int    `json:"page" query:"page"`
	PageSize int    `json:"page_size" query:"page_size"`
}
