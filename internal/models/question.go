package models

import (
	"database/sql"
	"time"
)

// Question is asked by one user of another user (the teacher). The names of
// both are copied in when the question is created.
type Question struct {
	ID           int64
	QuestionText string
	AskedByID    int64
	TeacherID    int64
	TeacherName  string
	AskedByName  string
	AnswerText   sql.NullString
	CreatedAt    time.Time
}

// IsPending reports whether the question still has no answer
func (q *Question) IsPending() bool {
	return !q.AnswerText.Valid
}

// Answer returns the answer text, or "" while pending
func (q *Question) Answer() string {
	return q.AnswerText.String
}

// QuestionView selects which questions a listing shows
type QuestionView int

const (
	// ViewUnanswered lists pending questions addressed to the current teacher
	ViewUnanswered QuestionView = iota
	// ViewTeacherAnswered lists questions the current teacher has answered
	ViewTeacherAnswered
	// ViewAnswered lists answered questions the current user asked
	ViewAnswered
	// ViewPending lists the current user's questions still waiting for an answer
	ViewPending
)

// ByTeacher reports whether the view filters on teacher_id rather than asked_by_id
func (v QuestionView) ByTeacher() bool {
	return v == ViewUnanswered || v == ViewTeacherAnswered
}

// Answered reports whether the view lists answered questions
func (v QuestionView) Answered() bool {
	return v == ViewTeacherAnswered || v == ViewAnswered
}

// Title returns the page heading for the view
func (v QuestionView) Title() string {
	switch v {
	case ViewUnanswered:
		return "Unanswered Questions"
	case ViewTeacherAnswered:
		return "Questions You Answered"
	case ViewAnswered:
		return "Answered Questions"
	case ViewPending:
		return "Pending Questions"
	default:
		return "Questions"
	}
}
