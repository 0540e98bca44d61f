package models

import "time"

// Role values for User.Role. A single tagged role replaces per-role boolean
// flags; examinee-role users additionally carry an Examinee profile row.
const (
	RoleTeacher  = "teacher"
	RoleExaminee = "examinee"
)

type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Username     string    `json:"username" gorm:"size:150;uniqueIndex;not null"`
	Email        string    `json:"email" gorm:"size:255"`
	PasswordHash string    `json:"-" gorm:"not null"`
	Role         string    `json:"role" gorm:"size:20;not null"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Relationships
	Examinee *Examinee `json:"examinee,omitempty" gorm:"foreignKey:UserID"`
}
