package models

import "time"

// ExamineeAnswer is one row of the append-only answer ledger. The composite
// unique index on (examinee_id, question_id) makes a concurrent duplicate
// submission fail at the storage layer instead of double-counting.
type ExamineeAnswer struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	ExamineeID uint      `json:"examinee_id" gorm:"not null;uniqueIndex:idx_examinee_question"`
	QuestionID uint      `json:"question_id" gorm:"not null;uniqueIndex:idx_examinee_question"`
	AnswerID   uint      `json:"answer_id" gorm:"not null"`
	CreatedAt  time.Time `json:"created_at"`

	// Relationships
	Examinee Examinee `json:"-" gorm:"foreignKey:ExamineeID;constraint:OnDelete:CASCADE"`
	Answer   Answer   `json:"-" gorm:"foreignKey:AnswerID;constraint:OnDelete:CASCADE"`
}
