package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Salesperson roles. Admins manage accounts, categories and targets;
// regular salespeople only work their own prospects.
const (
	RoleAdmin = "admin"
	RoleSales = "sales"
)

// Salesperson is an authenticated account that owns prospects, earns
// points and is measured against sales targets.
type Salesperson struct {
	ID          uint       `json:"id" gorm:"primaryKey"`
	Username    string     `json:"username" gorm:"size:50;uniqueIndex"`
	Password    string     `json:"-" gorm:"size:100"` // bcrypt hash, never serialized
	Name        string     `json:"name" gorm:"size:50"`
	Phone       string     `json:"phone" gorm:"size:20"`
	Email       string     `json:"email" gorm:"size:100"`
	Role        string     `json:"role" gorm:"size:20;default:sales"`
	Status      string     `json:"status" gorm:"size:20;default:active"` // active, inactive, suspended
	LastLoginAt *time.Time `json:"last_login_at"`
	CreatedAt   time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName returns the table name.
func (Salesperson) TableName() string {
	return "salespersons"
}

// SetPassword hashes and stores the given plaintext password.
func (s *Salesperson) SetPassword(plainPassword string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(plainPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	s.Password = string(hashedPassword)
	return nil
}

// CheckPassword verifies a plaintext password against the stored hash.
func (s *Salesperson) CheckPassword(plainPassword string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(s.Password), []byte(plainPassword))
	return err == nil
}

// SalespersonQuery holds list filters and pagination parameters.
type SalespersonQuery struct {
	Username string `json:"username" query:"username"`
	Name     string `json:"name" query:"name"`
	Role     string `json:"role" query:"role"`
	Status   string `json:"status" query:"status"`
	Page     int    `json:"page" query:"page"`
	PageSize int    `json:"page_size" query:"page_size"`
}

// SalespersonToken stores an issued JWT session token. Multiple devices
// may hold tokens for the same account; logout deletes a single row.
type SalespersonToken struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	SalespersonID uint      `json:"salesperson_id" gorm:"index"`
	Token         string    `json:"token" gorm:"size:500;index"`
	UserAgent     string    `json:"user_agent" gorm:"size:255"`
	IP            string    `json:"ip" gorm:"size:50"`
	ExpiredAt     time.Time `json:"expired_at" gorm:"index"`
	CreatedAt     time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt     time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName returns the table name.
func (SalespersonToken) TableName() string {
	return "salesperson_tokens"
}
