package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"quizzy/internal/database"
	"quizzy/internal/models"
)

const questionColumns = "id, question_text, asked_by_id, teacher_id, teacher_name, asked_by_name, answer_text, created_at"

// QuestionRepository handles database operations for questions
type QuestionRepository struct {
	db database.DBTX
}

// NewQuestionRepository creates a new question repository
func NewQuestionRepository(db database.DBTX) *QuestionRepository {
	return &QuestionRepository{db: db}
}

// CreateQuestion inserts an unanswered question, copying both names
func (r *QuestionRepository) CreateQuestion(ctx context.Context, text string, asker, teacher *models.User) (*models.Question, error) {
	query := `
		INSERT INTO questions (question_text, asked_by_id, teacher_id, teacher_name, asked_by_name)
		VALUES (?, ?, ?, ?, ?)
	`
	id, err := r.db.ExecReturningID(ctx, query, text, asker.ID, teacher.ID, teacher.Name, asker.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to create question: %w", err)
	}

	return &models.Question{
		ID:           id,
		QuestionText: text,
		AskedByID:    asker.ID,
		TeacherID:    teacher.ID,
		TeacherName:  teacher.Name,
		AskedByName:  asker.Name,
		CreatedAt:    time.Now(),
	}, nil
}

// GetQuestionByID retrieves a question by ID
func (r *QuestionRepository) GetQuestionByID(ctx context.Context, id int64) (*models.Question, error) {
	query := "SELECT " + questionColumns + " FROM questions WHERE id = ?"
	q := &models.Question{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&q.ID,
		&q.QuestionText,
		&q.AskedByID,
		&q.TeacherID,
		&q.TeacherName,
		&q.AskedByName,
		&q.AnswerText,
		&q.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get question: %w", err)
	}

	return q, nil
}

// SetAnswer stores the answer text for a question. It reports whether a row matched.
func (r *QuestionRepository) SetAnswer(ctx context.Context, id int64, answer string) (bool, error) {
	result, err := r.db.ExecContext(ctx, "UPDATE questions SET answer_text = ? WHERE id = ?", answer, id)
	if err != nil {
		return false, fmt.Errorf("failed to answer question: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read answer result: %w", err)
	}
	if rows > 0 {
		return true, nil
	}

	// An unchanged row reports 0 under MySQL
	q, err := r.GetQuestionByID(ctx, id)
	if err != nil {
		return false, err
	}
	return q != nil, nil
}

// ListQuestions returns the questions for userID selected by view, newest first
func (r *QuestionRepository) ListQuestions(ctx context.Context, userID int64, view models.QuestionView) ([]models.Question, error) {
	owner := "asked_by_id"
	if view.ByTeacher() {
		owner = "teacher_id"
	}
	answered := "answer_text IS NULL"
	if view.Answered() {
		answered = "answer_text IS NOT NULL"
	}

	query := "SELECT " + questionColumns + " FROM questions WHERE " + owner + " = ? AND " + answered + " ORDER BY id DESC"
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query questions: %w", err)
	}
	defer rows.Close()

	var questions []models.Question
	for rows.Next() {
		var q models.Question
		if err := rows.Scan(
			&q.ID,
			&q.QuestionText,
			&q.AskedByID,
			&q.TeacherID,
			&q.TeacherName,
			&q.AskedByName,
			&q.AnswerText,
			&q.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan question: %w", err)
		}
		questions = append(questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate questions: %w", err)
	}

	return questions, nil
}
