package services

import (
	"errors"
	"math"
	"time"

	"quizdesk/models"

	"gorm.io/gorm"
)

// ProgressionService drives a single examinee through a single quiz: it
// selects the next unanswered question, records answers in the append-only
// ledger, and writes the final score exactly once.
type ProgressionService struct {
	db *gorm.DB
}

func NewProgressionService(db *gorm.DB) *ProgressionService {
	return &ProgressionService{db: db}
}

var (
	ErrQuizCompleted       = errors.New("quiz already completed")
	ErrDuplicateSubmission = errors.New("question already answered")
	ErrAnswerMismatch      = errors.New("answer does not belong to question")
	ErrQuestionMismatch    = errors.New("question does not belong to quiz")
	ErrEmptyQuiz           = errors.New("quiz has no questions")
)

type OutcomeStatus string

const (
	OutcomeContinue  OutcomeStatus = "continue"
	OutcomeCompleted OutcomeStatus = "completed"
)

// Outcome is the engine's answer to a submission. Continue carries the next
// question and the progress shown with it; Completed carries the final score.
type Outcome struct {
	Status       OutcomeStatus `json:"status"`
	NextQuestion *TakeQuestion `json:"next_question,omitempty"`
	Progress     int           `json:"progress"`
	Score        float64       `json:"score"`
}

type TakeQuestion struct {
	ID      uint         `json:"id"`
	Text    string       `json:"text"`
	Answers []TakeAnswer `json:"answers"`
}

type TakeAnswer struct {
	ID   uint   `json:"id"`
	Text string `json:"text"`
	// IsCorrect is intentionally not exposed while a quiz is being taken
}

// UnansweredQuestions returns the quiz's questions the examinee has not
// answered yet, ordered by text with id as the tie-break. The result is
// recomputed from the ledger on every call.
func (s *ProgressionService) UnansweredQuestions(examineeID, quizID uint) ([]models.Question, error) {
	return unansweredQuestions(s.db, examineeID, quizID)
}

func unansweredQuestions(tx *gorm.DB, examineeID, quizID uint) ([]models.Question, error) {
	answered := tx.Model(&models.ExamineeAnswer{}).
		Select("question_id").
		Where("examinee_id = ?", examineeID)

	var questions []models.Question
	err := tx.
		Where("quiz_id = ? AND id NOT IN (?)", quizID, answered).
		Order("text ASC").
		Order("id ASC").
		Preload("Answers", func(db *gorm.DB) *gorm.DB {
			return db.Order("answers.text ASC")
		}).
		Find(&questions).Error
	return questions, err
}

// NextQuestion returns the first unanswered question, or nil when the
// examinee has answered every question of the quiz.
func (s *ProgressionService) NextQuestion(examineeID, quizID uint) (*TakeQuestion, error) {
	questions, err := unansweredQuestions(s.db, examineeID, quizID)
	if err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		return nil, nil
	}
	return takeQuestion(&questions[0]), nil
}

// ProgressPercent reports how far through the quiz the examinee is, counting
// the question currently on screen as in progress.
func (s *ProgressionService) ProgressPercent(examineeID, quizID uint) (int, error) {
	var total int64
	if err := s.db.Model(&models.Question{}).Where("quiz_id = ?", quizID).Count(&total).Error; err != nil {
		return 0, err
	}
	if total == 0 {
		return 0, ErrEmptyQuiz
	}
	questions, err := unansweredQuestions(s.db, examineeID, quizID)
	if err != nil {
		return 0, err
	}
	return progressPercent(len(questions), int(total)), nil
}

func progressPercent(unanswered, total int) int {
	return 100 - int(math.Round(float64(unanswered-1)/float64(total)*100))
}

// HasCompleted reports whether a TakenQuiz row already exists for the pair.
func (s *ProgressionService) HasCompleted(examineeID, quizID uint) (bool, error) {
	var count int64
	err := s.db.Model(&models.TakenQuiz{}).
		Where("examinee_id = ? AND quiz_id = ?", examineeID, quizID).
		Count(&count).Error
	return count > 0, err
}

// SubmitAnswer records one answer and evaluates the attempt. The ledger
// insert and, on the final question, the TakenQuiz insert happen in the same
// transaction, so a completed attempt can never be left without a score.
func (s *ProgressionService) SubmitAnswer(examineeID, quizID, questionID, answerID uint) (*Outcome, error) {
	var outcome Outcome

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var taken int64
		if err := tx.Model(&models.TakenQuiz{}).
			Where("examinee_id = ? AND quiz_id = ?", examineeID, quizID).
			Count(&taken).Error; err != nil {
			return err
		}
		if taken > 0 {
			return ErrQuizCompleted
		}

		var question models.Question
		if err := tx.Where("id = ? AND quiz_id = ?", questionID, quizID).First(&question).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrQuestionMismatch
			}
			return err
		}

		var answer models.Answer
		if err := tx.Where("id = ? AND question_id = ?", answerID, questionID).First(&answer).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrAnswerMismatch
			}
			return err
		}

		var already int64
		if err := tx.Model(&models.ExamineeAnswer{}).
			Where("examinee_id = ? AND question_id = ?", examineeID, questionID).
			Count(&already).Error; err != nil {
			return err
		}
		if already > 0 {
			return ErrDuplicateSubmission
		}

		var total int64
		if err := tx.Model(&models.Question{}).Where("quiz_id = ?", quizID).Count(&total).Error; err != nil {
			return err
		}
		if total == 0 {
			return ErrEmptyQuiz
		}

		record := models.ExamineeAnswer{
			ExamineeID: examineeID,
			QuestionID: questionID,
			AnswerID:   answerID,
		}
		if err := tx.Create(&record).Error; err != nil {
			// the unique index catches the race two tabs can produce
			return ErrDuplicateSubmission
		}

		remaining, err := unansweredQuestions(tx, examineeID, quizID)
		if err != nil {
			return err
		}

		if len(remaining) > 0 {
			outcome = Outcome{
				Status:       OutcomeContinue,
				NextQuestion: takeQuestion(&remaining[0]),
				Progress:     progressPercent(len(remaining), int(total)),
			}
			return nil
		}

		var correct int64
		if err := tx.Model(&models.ExamineeAnswer{}).
			Joins("JOIN answers ON answers.id = examinee_answers.answer_id").
			Joins("JOIN questions ON questions.id = examinee_answers.question_id").
			Where("examinee_answers.examinee_id = ? AND questions.quiz_id = ? AND answers.is_correct = ?",
				examineeID, quizID, true).
			Count(&correct).Error; err != nil {
			return err
		}

		score := math.Round(float64(correct)/float64(total)*100*100) / 100

		result := models.TakenQuiz{
			ExamineeID:  examineeID,
			QuizID:      quizID,
			Score:       score,
			CompletedAt: time.Now(),
		}
		if err := tx.Create(&result).Error; err != nil {
			return err
		}

		outcome = Outcome{
			Status:   OutcomeCompleted,
			Progress: 100,
			Score:    score,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &outcome, nil
}

func takeQuestion(q *models.Question) *TakeQuestion {
	tq := &TakeQuestion{
		ID:      q.ID,
		Text:    q.Text,
		Answers: make([]TakeAnswer, len(q.Answers)),
	}
	for i, a := range q.Answers {
		tq.Answers[i] = TakeAnswer{ID: a.ID, Text: a.Text}
	}
	return tq
}
