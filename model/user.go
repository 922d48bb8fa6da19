package model

import (
	"time"

	"gorm.io/gorm"
)

// AccountState tells whether an account still misses required profile data.
type AccountState string

const (
	AccountStateMissingPhone AccountState = "missing_phone"
	AccountStateComplete     AccountState = "complete"
)

type User struct {
	ID uint64 `gorm:"primaryKey" json:"id"`

	Email string `gorm:"column:email;type:varchar(255);not null;unique" json:"email"`

	Password string `gorm:"column:pass_word;type:varchar(255);not null" json:"-"`

	// Phone is empty until the capture step persists it.
	Phone string `gorm:"column:phone;type:varchar(32);not null;default:''" json:"phone,omitempty"`

	IsActive bool `gorm:"column:is_active;not null;default:false" json:"is_active"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName returns the database table name.
func (User) TableName() string {
	return "user_db"
}

// AccountState derives the completion state from the stored record.
func (u *User) AccountState() AccountState {
	if u.Phone == "" {
		return AccountStateMissingPhone
	}
	return AccountStateComplete
}
