package services

import (
	"testing"

	"quizdesk/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an in-memory sqlite database with the full schema. Each
// test gets its own database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to access sql.DB: %v", err)
	}
	// a second connection would see an empty :memory: database
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&models.User{},
		&models.Examinee{},
		&models.Quiz{},
		&models.Question{},
		&models.Answer{},
		&models.ExamineeAnswer{},
		&models.TakenQuiz{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// seedExaminee creates an examinee-role user with its profile and returns
// the examinee id.
func seedExaminee(t *testing.T, db *gorm.DB, username string) uint {
	t.Helper()

	user := models.User{
		Username:     username,
		PasswordHash: "x",
		Role:         models.RoleExaminee,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	profile := models.Examinee{UserID: user.ID, Gender: models.GenderUnspecified}
	if err := db.Create(&profile).Error; err != nil {
		t.Fatalf("failed to create examinee: %v", err)
	}
	return user.ID
}

// seedQuiz creates a quiz whose questions map question text to answer
// specs; each answer is (text, isCorrect).
type answerSpec struct {
	text    string
	correct bool
}

func seedQuiz(t *testing.T, db *gorm.DB, name string, questions map[string][]answerSpec) *models.Quiz {
	t.Helper()

	quiz := models.Quiz{Name: name}
	if err := db.Create(&quiz).Error; err != nil {
		t.Fatalf("failed to create quiz: %v", err)
	}
	for text, answers := range questions {
		question := models.Question{QuizID: quiz.ID, Text: text}
		if err := db.Create(&question).Error; err != nil {
			t.Fatalf("failed to create question: %v", err)
		}
		for _, spec := range answers {
			answer := models.Answer{QuestionID: question.ID, Text: spec.text, IsCorrect: spec.correct}
			if err := db.Create(&answer).Error; err != nil {
				t.Fatalf("failed to create answer: %v", err)
			}
		}
	}
	return &quiz
}

// findAnswer returns the answer with the given text under the question with
// the given text.
func findAnswer(t *testing.T, db *gorm.DB, quizID uint, questionText, answerText string) (uint, uint) {
	t.Helper()

	var question models.Question
	if err := db.Where("quiz_id = ? AND text = ?", quizID, questionText).First(&question).Error; err != nil {
		t.Fatalf("question %q not found: %v", questionText, err)
	}
	var answer models.Answer
	if err := db.Where("question_id = ? AND text = ?", question.ID, answerText).First(&answer).Error; err != nil {
		t.Fatalf("answer %q not found: %v", answerText, err)
	}
	return question.ID, answer.ID
}
