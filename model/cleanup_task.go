package model

import "time"

// CleanupTask records a blob left behind by a failed metadata insert,
// pending a compensating delete.
type CleanupTask struct {
	ID uint64 `gorm:"primaryKey" json:"id"`

	Bucket     string `gorm:"column:bucket;size:64;not null" json:"bucket"`
	ObjectName string `gorm:"column:object_name;size:512;not null" json:"object_name"`
	OwnerEmail string `gorm:"column:owner_email;size:255;not null;index" json:"owner_email"`

	// pending / running / retrying / completed / failed
	Status   string `gorm:"column:status;size:16;not null;default:'pending';index" json:"status"`
	Attempts int    `gorm:"column:attempts;not null;default:0" json:"attempts"`
	ErrorMsg string `gorm:"column:error_msg;size:1024;not null;default:''" json:"error_msg,omitempty"`

	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	CompletedAt *time.Time `gorm:"column:completed_at" json:"completed_at,omitempty"`
}

// TableName returns the database table name.
func (CleanupTask) TableName() string {
	return "cleanup_task"
}
