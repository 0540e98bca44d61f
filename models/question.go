package models

type Question struct {
	ID     uint   `json:"id" gorm:"primaryKey"`
	QuizID uint   `json:"quiz_id" gorm:"not null;index"`
	Text   string `json:"text" gorm:"size:255;not null"`

	// Relationships
	Quiz    Quiz     `json:"-" gorm:"foreignKey:QuizID;constraint:OnDelete:CASCADE"`
	Answers []Answer `json:"answers,omitempty" gorm:"foreignKey:QuestionID"`
}
