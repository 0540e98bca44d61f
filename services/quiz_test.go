package services

import (
	"errors"
	"testing"

	"quizdesk/models"
)

func draftCapitals() *QuizDraft {
	return &QuizDraft{
		Name: "Capitals",
		Questions: []QuestionDraft{
			{
				Text: "Capital of France?",
				Answers: []AnswerDraft{
					{Text: "Paris", IsCorrect: true},
					{Text: "Lyon"},
				},
			},
			{
				Text: "Capital of Italy?",
				Answers: []AnswerDraft{
					{Text: "Rome", IsCorrect: true},
					{Text: "Milan"},
				},
			},
		},
	}
}

func TestCreateQuizPersistsAggregate(t *testing.T) {
	db := newTestDB(t)
	svc := NewQuizService(db)

	quiz, err := svc.CreateQuiz(draftCapitals())
	if err != nil {
		t.Fatalf("CreateQuiz: %v", err)
	}

	if quiz.Name != "Capitals" {
		t.Errorf("unexpected name %q", quiz.Name)
	}
	if len(quiz.Questions) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(quiz.Questions))
	}
	for _, q := range quiz.Questions {
		if len(q.Answers) != 2 {
			t.Errorf("question %q: expected 2 answers, got %d", q.Text, len(q.Answers))
		}
	}
}

func TestCreateQuizRejectsNoCorrectAnswer(t *testing.T) {
	db := newTestDB(t)
	svc := NewQuizService(db)

	draft := &QuizDraft{
		Name: "Broken",
		Questions: []QuestionDraft{
			{
				Text: "Unanswerable?",
				Answers: []AnswerDraft{
					{Text: "a"},
					{Text: "b"},
					{Text: "c"},
				},
			},
		},
	}

	_, err := svc.CreateQuiz(draft)
	if !errors.Is(err, ErrNoCorrectAnswer) {
		t.Fatalf("expected ErrNoCorrectAnswer, got %v", err)
	}

	// the whole aggregate is rejected before anything is persisted
	var quizzes, questions, answers int64
	db.Model(&models.Quiz{}).Count(&quizzes)
	db.Model(&models.Question{}).Count(&questions)
	db.Model(&models.Answer{}).Count(&answers)
	if quizzes != 0 || questions != 0 || answers != 0 {
		t.Fatalf("rejected draft persisted rows: %d/%d/%d", quizzes, questions, answers)
	}
}

func TestUpdateQuizReplacesQuestions(t *testing.T) {
	db := newTestDB(t)
	svc := NewQuizService(db)

	quiz, err := svc.CreateQuiz(draftCapitals())
	if err != nil {
		t.Fatalf("CreateQuiz: %v", err)
	}

	updated, err := svc.UpdateQuiz(quiz.ID, &QuizDraft{
		Name: "Capitals v2",
		Questions: []QuestionDraft{
			{
				Text: "Capital of Spain?",
				Answers: []AnswerDraft{
					{Text: "Madrid", IsCorrect: true},
					{Text: "Barcelona"},
				},
			},
		},
	})
	if err != nil {
		t.Fatalf("UpdateQuiz: %v", err)
	}

	if updated.Name != "Capitals v2" {
		t.Errorf("name not updated: %q", updated.Name)
	}
	if len(updated.Questions) != 1 || updated.Questions[0].Text != "Capital of Spain?" {
		t.Fatalf("questions not replaced: %+v", updated.Questions)
	}

	var answers int64
	db.Model(&models.Answer{}).Count(&answers)
	if answers != 2 {
		t.Errorf("old answers not removed, %d rows remain", answers)
	}
}

func TestDeleteQuizRemovesChildren(t *testing.T) {
	db := newTestDB(t)
	svc := NewQuizService(db)

	quiz, err := svc.CreateQuiz(draftCapitals())
	if err != nil {
		t.Fatalf("CreateQuiz: %v", err)
	}

	if err := svc.DeleteQuiz(quiz.ID); err != nil {
		t.Fatalf("DeleteQuiz: %v", err)
	}

	var quizzes, questions, answers int64
	db.Model(&models.Quiz{}).Count(&quizzes)
	db.Model(&models.Question{}).Count(&questions)
	db.Model(&models.Answer{}).Count(&answers)
	if quizzes != 0 || questions != 0 || answers != 0 {
		t.Fatalf("cascade delete left rows: %d/%d/%d", quizzes, questions, answers)
	}
}

func TestAvailableQuizzesExcludesEmptyAndTaken(t *testing.T) {
	db := newTestDB(t)
	svc := NewQuizService(db)
	progression := NewProgressionService(db)

	examineeID := seedExaminee(t, db, "alice")

	seedQuiz(t, db, "Empty", nil)
	open := seedQuiz(t, db, "Open", map[string][]answerSpec{
		"open?": {{"yes", true}},
	})
	done := seedQuiz(t, db, "Done", map[string][]answerSpec{
		"done?": {{"yes", true}},
	})

	questionID, answerID := findAnswer(t, db, done.ID, "done?", "yes")
	if _, err := progression.SubmitAnswer(examineeID, done.ID, questionID, answerID); err != nil {
		t.Fatalf("SubmitAnswer: %v", err)
	}

	available, err := svc.AvailableQuizzes(examineeID)
	if err != nil {
		t.Fatalf("AvailableQuizzes: %v", err)
	}

	if len(available) != 1 || available[0].ID != open.ID {
		t.Fatalf("expected only %q to be available, got %+v", "Open", available)
	}
}

func TestTakenQuizzesOrderedByQuizName(t *testing.T) {
	db := newTestDB(t)
	svc := NewQuizService(db)
	progression := NewProgressionService(db)

	examineeID := seedExaminee(t, db, "alice")

	for _, name := range []string{"Zoology", "Algebra"} {
		quiz := seedQuiz(t, db, name, map[string][]answerSpec{
			"q?": {{"yes", true}},
		})
		questionID, answerID := findAnswer(t, db, quiz.ID, "q?", "yes")
		if _, err := progression.SubmitAnswer(examineeID, quiz.ID, questionID, answerID); err != nil {
			t.Fatalf("SubmitAnswer %q: %v", name, err)
		}
	}

	taken, err := svc.TakenQuizzes(examineeID)
	if err != nil {
		t.Fatalf("TakenQuizzes: %v", err)
	}
	if len(taken) != 2 {
		t.Fatalf("expected 2 taken quizzes, got %d", len(taken))
	}
	if taken[0].Quiz.Name != "Algebra" || taken[1].Quiz.Name != "Zoology" {
		t.Fatalf("taken quizzes not ordered by name: %q, %q", taken[0].Quiz.Name, taken[1].Quiz.Name)
	}
}
