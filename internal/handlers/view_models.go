package handlers

import (
	"quizzy/internal/models"
)

type HomeViewData struct {
	Title   string
	User    *models.User
	Success string
}

type LoginViewData struct {
	Title string
	User  *models.User
	Error string
	Name  string
}

type RegisterViewData struct {
	Title string
	User  *models.User
	Error string
	Name  string
}

type AllUsersViewData struct {
	Title     string
	User      *models.User
	Users     []models.User
	CSRFToken string
}

type PromoteViewData struct {
	Title     string
	User      *models.User
	Target    *models.User
	CSRFToken string
}

type ProfileViewData struct {
	Title   string
	User    *models.User
	Profile *models.User
}

type AskViewData struct {
	Title     string
	User      *models.User
	Teachers  []models.User
	Question  string
	TeacherID int64
	Error     string
	CSRFToken string
}

type AnswerViewData struct {
	Title     string
	User      *models.User
	Question  *models.Question
	Error     string
	CSRFToken string
}

type QuestionsViewData struct {
	Title     string
	User      *models.User
	View      models.QuestionView
	Questions []models.Question
}
