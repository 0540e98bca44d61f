package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"quizdesk/services"

	"github.com/gin-gonic/gin"
)

// TakeHandler maps the quiz-taking flow onto the progression engine. The
// examinee id equals the authenticated user id (shared primary key).
type TakeHandler struct {
	progression *services.ProgressionService
	quizService *services.QuizService
}

func NewTakeHandler(progression *services.ProgressionService, quizService *services.QuizService) *TakeHandler {
	return &TakeHandler{progression: progression, quizService: quizService}
}

type SubmitAnswerRequest struct {
	QuestionID uint `json:"question_id" binding:"required"`
	AnswerID   uint `json:"answer_id" binding:"required"`
}

func (h *TakeHandler) AvailableQuizzes(c *gin.Context) {
	examineeID := c.GetUint("user_id")

	quizzes, err := h.quizService.AvailableQuizzes(examineeID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, quizzes)
}

func (h *TakeHandler) TakenQuizzes(c *gin.Context) {
	examineeID := c.GetUint("user_id")

	taken, err := h.quizService.TakenQuizzes(examineeID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, taken)
}

// CurrentQuestion returns the next unanswered question together with the
// progress value shown next to it.
func (h *TakeHandler) CurrentQuestion(c *gin.Context) {
	examineeID := c.GetUint("user_id")

	quizID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid quiz ID"})
		return
	}

	quiz, err := h.quizService.GetQuiz(uint(quizID))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "quiz not found"})
		return
	}

	// empty quizzes are filtered out of the listings; reaching one here is a
	// precondition violation, not a user error
	if len(quiz.Questions) == 0 {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "quiz has no questions"})
		return
	}

	completed, err := h.progression.HasCompleted(examineeID, quiz.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if completed {
		c.JSON(http.StatusConflict, gin.H{"error": "quiz already completed"})
		return
	}

	question, err := h.progression.NextQuestion(examineeID, quiz.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if question == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "quiz already completed"})
		return
	}

	progress, err := h.progression.ProgressPercent(examineeID, quiz.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"quiz":     gin.H{"id": quiz.ID, "name": quiz.Name},
		"question": question,
		"progress": progress,
	})
}

func (h *TakeHandler) SubmitAnswer(c *gin.Context) {
	examineeID := c.GetUint("user_id")

	quizID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid quiz ID"})
		return
	}

	var req SubmitAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	outcome, err := h.progression.SubmitAnswer(examineeID, uint(quizID), req.QuestionID, req.AnswerID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrQuizCompleted):
			c.JSON(http.StatusConflict, gin.H{"error": "quiz already completed"})
		case errors.Is(err, services.ErrDuplicateSubmission):
			c.JSON(http.StatusConflict, gin.H{"error": "question already answered"})
		case errors.Is(err, services.ErrQuestionMismatch), errors.Is(err, services.ErrAnswerMismatch):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	if outcome.Status == services.OutcomeCompleted {
		quiz, qerr := h.quizService.GetQuiz(uint(quizID))
		name := ""
		if qerr == nil {
			name = quiz.Name
		}
		c.JSON(http.StatusOK, gin.H{
			"outcome": outcome,
			"message": completionMessage(name, outcome.Score),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"outcome": outcome})
}

func completionMessage(quizName string, score float64) string {
	if score < 50.0 {
		return fmt.Sprintf("Better luck next time! Your score for the quiz %s was %v.", quizName, score)
	}
	return fmt.Sprintf("Congratulations! You completed the quiz %s with success! You scored %v points.", quizName, score)
}
