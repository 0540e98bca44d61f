package models

// Gender values for Examinee.Gender.
const (
	GenderUnspecified = "UNSPECIFIED"
	GenderMale        = "MALE"
	GenderFemale      = "FEMALE"
)

// Examinee is the quiz-taking profile attached one-to-one to an
// examinee-role User. It shares the user's primary key.
type Examinee struct {
	UserID  uint   `json:"user_id" gorm:"primaryKey"`
	Gender  string `json:"gender" gorm:"size:20;not null;default:'UNSPECIFIED'"`
	AboutMe string `json:"about_me" gorm:"size:500"`

	// Relationships
	User         User             `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	TakenQuizzes []TakenQuiz      `json:"taken_quizzes,omitempty" gorm:"foreignKey:ExamineeID"`
	QuizAnswers  []ExamineeAnswer `json:"-" gorm:"foreignKey:ExamineeID"`
}
