package services

import (
	"errors"

	"quizdesk/models"

	"gorm.io/gorm"
)

type QuizService struct {
	db *gorm.DB
}

func NewQuizService(db *gorm.DB) *QuizService {
	return &QuizService{db: db}
}

// ErrNoCorrectAnswer rejects a question draft whose answers contain no
// correct one; matching the authoring form message.
var ErrNoCorrectAnswer = errors.New("mark at least one answer as correct")

var ErrQuizNotFound = errors.New("quiz not found")

// QuizDraft is the whole-aggregate authoring payload. It is validated as a
// unit before anything is persisted.
type QuizDraft struct {
	Name      string          `json:"name" binding:"required"`
	Questions []QuestionDraft `json:"questions" binding:"required,min=1,dive"`
}

type QuestionDraft struct {
	Text    string        `json:"text" binding:"required"`
	Answers []AnswerDraft `json:"answers" binding:"required,min=1,dive"`
}

type AnswerDraft struct {
	Text      string `json:"text" binding:"required"`
	IsCorrect bool   `json:"is_correct"`
}

func validateDraft(draft *QuizDraft) error {
	for _, q := range draft.Questions {
		hasCorrect := false
		for _, a := range q.Answers {
			if a.IsCorrect {
				hasCorrect = true
				break
			}
		}
		if !hasCorrect {
			return ErrNoCorrectAnswer
		}
	}
	return nil
}

// CreateQuiz validates the draft and persists the quiz with its questions
// and answers in one transaction.
func (s *QuizService) CreateQuiz(draft *QuizDraft) (*models.Quiz, error) {
	if err := validateDraft(draft); err != nil {
		return nil, err
	}

	quiz := models.Quiz{Name: draft.Name}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&quiz).Error; err != nil {
			return err
		}
		return createQuestions(tx, quiz.ID, draft.Questions)
	})
	if err != nil {
		return nil, err
	}

	return s.GetQuiz(quiz.ID)
}

// UpdateQuiz replaces the quiz aggregate with the draft. Existing questions
// and answers are swapped out wholesale, same as a re-submit of the nested
// authoring form.
func (s *QuizService) UpdateQuiz(quizID uint, draft *QuizDraft) (*models.Quiz, error) {
	if err := validateDraft(draft); err != nil {
		return nil, err
	}

	quiz, err := s.GetQuiz(quizID)
	if err != nil {
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(quiz).Update("name", draft.Name).Error; err != nil {
			return err
		}

		var questionIDs []uint
		if err := tx.Model(&models.Question{}).
			Where("quiz_id = ?", quizID).
			Pluck("id", &questionIDs).Error; err != nil {
			return err
		}
		if len(questionIDs) > 0 {
			if err := tx.Where("question_id IN ?", questionIDs).Delete(&models.Answer{}).Error; err != nil {
				return err
			}
			if err := tx.Where("quiz_id = ?", quizID).Delete(&models.Question{}).Error; err != nil {
				return err
			}
		}

		return createQuestions(tx, quizID, draft.Questions)
	})
	if err != nil {
		return nil, err
	}

	return s.GetQuiz(quizID)
}

func createQuestions(tx *gorm.DB, quizID uint, drafts []QuestionDraft) error {
	for _, qd := range drafts {
		question := models.Question{QuizID: quizID, Text: qd.Text}
		if err := tx.Create(&question).Error; err != nil {
			return err
		}
		for _, ad := range qd.Answers {
			answer := models.Answer{
				QuestionID: question.ID,
				Text:       ad.Text,
				IsCorrect:  ad.IsCorrect,
			}
			if err := tx.Create(&answer).Error; err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *QuizService) GetQuiz(quizID uint) (*models.Quiz, error) {
	var quiz models.Quiz
	err := s.db.
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("questions.text ASC")
		}).
		Preload("Questions.Answers", func(db *gorm.DB) *gorm.DB {
			return db.Order("answers.text ASC")
		}).
		First(&quiz, quizID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuizNotFound
		}
		return nil, err
	}
	return &quiz, nil
}

func (s *QuizService) ListQuizzes() ([]models.Quiz, error) {
	var quizzes []models.Quiz
	err := s.db.Order("name ASC").Find(&quizzes).Error
	return quizzes, err
}

func (s *QuizService) DeleteQuiz(quizID uint) error {
	quiz, err := s.GetQuiz(quizID)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		var questionIDs []uint
		if err := tx.Model(&models.Question{}).
			Where("quiz_id = ?", quizID).
			Pluck("id", &questionIDs).Error; err != nil {
			return err
		}
		if len(questionIDs) > 0 {
			if err := tx.Where("question_id IN ?", questionIDs).Delete(&models.Answer{}).Error; err != nil {
				return err
			}
			if err := tx.Where("quiz_id = ?", quizID).Delete(&models.Question{}).Error; err != nil {
				return err
			}
		}
		return tx.Delete(quiz).Error
	})
}

// AvailableQuizzes lists quizzes the examinee can still take: not yet in
// their TakenQuiz set and holding at least one question. Empty quizzes are
// filtered here so the taking flow never sees one.
func (s *QuizService) AvailableQuizzes(examineeID uint) ([]models.Quiz, error) {
	taken := s.db.Model(&models.TakenQuiz{}).
		Select("quiz_id").
		Where("examinee_id = ?", examineeID)

	var quizzes []models.Quiz
	err := s.db.
		Where("id NOT IN (?)", taken).
		Where("EXISTS (SELECT 1 FROM questions WHERE questions.quiz_id = quizzes.id)").
		Order("name ASC").
		Find(&quizzes).Error
	return quizzes, err
}

// TakenQuizzes lists the examinee's completed attempts, ordered by quiz name.
func (s *QuizService) TakenQuizzes(examineeID uint) ([]models.TakenQuiz, error) {
	var taken []models.TakenQuiz
	err := s.db.
		Preload("Quiz").
		Joins("JOIN quizzes ON quizzes.id = taken_quizzes.quiz_id").
		Where("taken_quizzes.examinee_id = ?", examineeID).
		Order("quizzes.name ASC").
		Find(&taken).Error
	return taken, err
}
