package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"quizzy/internal/database"
	"quizzy/internal/models"
	"quizzy/internal/repository"
	"quizzy/internal/validation"
)

var (
	ErrTeacherNotFound  = errors.New("selected teacher does not exist")
	ErrQuestionNotFound = errors.New("question not found")
)

// QuestionService handles asking, answering and listing questions
type QuestionService struct {
	conn         *database.Conn
	questionRepo *repository.QuestionRepository
}

// NewQuestionService creates a question service bound to a request's connection
func NewQuestionService(conn *database.Conn) *QuestionService {
	return &QuestionService{
		conn:         conn,
		questionRepo: repository.NewQuestionRepository(conn),
	}
}

// Ask records a question from asker to the user identified by teacherID.
// The teacher lookup and the insert share a transaction, so no row is
// written when the teacher does not exist.
func (s *QuestionService) Ask(ctx context.Context, asker *models.User, teacherID int64, text string) (*models.Question, error) {
	text = strings.TrimSpace(text)
	if err := validation.ValidateText("question", text); err != nil {
		return nil, err
	}

	tx, err := s.conn.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	teacher, err := repository.NewUserRepository(tx).GetUserByID(ctx, teacherID)
	if err != nil {
		return nil, fmt.Errorf("failed to get teacher: %w", err)
	}
	if teacher == nil {
		return nil, ErrTeacherNotFound
	}

	question, err := repository.NewQuestionRepository(tx).CreateQuestion(ctx, text, asker, teacher)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit question: %w", err)
	}

	return question, nil
}

// GetQuestion returns the question with the given ID
func (s *QuestionService) GetQuestion(ctx context.Context, id int64) (*models.Question, error) {
	q, err := s.questionRepo.GetQuestionByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get question: %w", err)
	}
	if q == nil {
		return nil, ErrQuestionNotFound
	}
	return q, nil
}

// Answer stores a non-empty answer for the question. Answering an answered
// question overwrites the earlier answer.
func (s *QuestionService) Answer(ctx context.Context, id int64, answer string) error {
	answer = strings.TrimSpace(answer)
	if err := validation.ValidateText("answer", answer); err != nil {
		return err
	}

	found, err := s.questionRepo.SetAnswer(ctx, id, answer)
	if err != nil {
		return fmt.Errorf("failed to answer question: %w", err)
	}
	if !found {
		return ErrQuestionNotFound
	}
	return nil
}

// List returns the current user's questions for the given view
func (s *QuestionService) List(ctx context.Context, user *models.User, view models.QuestionView) ([]models.Question, error) {
	questions, err := s.questionRepo.ListQuestions(ctx, user.ID, view)
	if err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}
	return questions, nil
}
