package models

import (
	"database/sql"
	"testing"
)

func TestQuestionIsPending(t *testing.T) {
	tests := []struct {
		name   string
		answer sql.NullString
		want   bool
	}{
		{
			name:   "no answer",
			answer: sql.NullString{},
			want:   true,
		},
		{
			name:   "answered",
			answer: sql.NullString{String: "42", Valid: true},
			want:   false,
		},
		{
			name:   "empty but set answer",
			answer: sql.NullString{String: "", Valid: true},
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := Question{ID: 1, QuestionText: "Why?", AnswerText: tt.answer}
			if got := q.IsPending(); got != tt.want {
				t.Errorf("Question.IsPending() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestQuestionViewFilters(t *testing.T) {
	tests := []struct {
		view      QuestionView
		byTeacher bool
		answered  bool
	}{
		{view: ViewUnanswered, byTeacher: true, answered: false},
		{view: ViewTeacherAnswered, byTeacher: true, answered: true},
		{view: ViewAnswered, byTeacher: false, answered: true},
		{view: ViewPending, byTeacher: false, answered: false},
	}

	for _, tt := range tests {
		t.Run(tt.view.Title(), func(t *testing.T) {
			if got := tt.view.ByTeacher(); got != tt.byTeacher {
				t.Errorf("ByTeacher() = %v, want %v", got, tt.byTeacher)
			}
			if got := tt.view.Answered(); got != tt.answered {
				t.Errorf("Answered() = %v, want %v", got, tt.answered)
			}
		})
	}
}

func TestUserRole(t *testing.T) {
	tests := []struct {
		name string
		user User
		want string
	}{
		{name: "student", user: User{}, want: "Student"},
		{name: "teacher", user: User{Teacher: true}, want: "Teacher"},
		{name: "admin", user: User{Admin: true}, want: "Admin"},
		{name: "both", user: User{Admin: true, Teacher: true}, want: "Admin, Teacher"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.user.Role(); got != tt.want {
				t.Errorf("User.Role() = %q, want %q", got, tt.want)
			}
		})
	}
}
