package models

import "time"

// TakenQuiz records one completed quiz attempt. Rows are written exactly
// once by the progression engine and never updated or deleted.
type TakenQuiz struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	ExamineeID  uint      `json:"examinee_id" gorm:"not null;uniqueIndex:idx_examinee_quiz"`
	QuizID      uint      `json:"quiz_id" gorm:"not null;uniqueIndex:idx_examinee_quiz"`
	Score       float64   `json:"score" gorm:"not null"`
	CompletedAt time.Time `json:"completed_at" gorm:"autoCreateTime"`

	// Relationships
	Examinee Examinee `json:"-" gorm:"foreignKey:ExamineeID;constraint:OnDelete:CASCADE"`
	Quiz     Quiz     `json:"quiz,omitempty" gorm:"foreignKey:QuizID;constraint:OnDelete:CASCADE"`
}
