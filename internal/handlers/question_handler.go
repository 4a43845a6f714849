package handlers

import (
	"errors"
	"html/template"
	"log"
	"net/http"
	"strconv"

	"quizzy/internal/database"
	"quizzy/internal/models"
	"quizzy/internal/service"
	"quizzy/internal/validation"
)

// QuestionHandler handles asking, answering and listing questions
type QuestionHandler struct {
	middleware *Middleware
	templates  *template.Template
}

// NewQuestionHandler creates a new question handler
func NewQuestionHandler(middleware *Middleware, templates *template.Template) *QuestionHandler {
	return &QuestionHandler{
		middleware: middleware,
		templates:  templates,
	}
}

// ShowAsk renders the ask form with the available teachers
func (h *QuestionHandler) ShowAsk(w http.ResponseWriter, r *http.Request) {
	conn, ok := acquire(w, r)
	if !ok {
		return
	}
	h.renderAsk(w, r, conn, AskViewData{})
}

// Ask records a question for the selected teacher
func (h *QuestionHandler) Ask(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	text := r.FormValue("question")
	teacherID, _ := strconv.ParseInt(r.FormValue("teacher"), 10, 64)

	conn, ok := acquire(w, r)
	if !ok {
		return
	}

	question, err := service.NewQuestionService(conn).Ask(r.Context(), user, teacherID, text)
	if err != nil {
		var validationErr validation.ValidationError
		form := AskViewData{Question: text, TeacherID: teacherID}
		switch {
		case errors.As(err, &validationErr):
			form.Error = validationErr.Message
			h.renderAsk(w, r, conn, form)
		case errors.Is(err, service.ErrTeacherNotFound):
			form.Error = err.Error()
			h.renderAsk(w, r, conn, form)
		default:
			respondStorageError(w, r, "Error asking question", err)
		}
		return
	}

	log.Printf("User %s asked question %d of %s", user.Name, question.ID, question.TeacherName)
	http.Redirect(w, r, "/pendingquestions", http.StatusSeeOther)
}

func (h *QuestionHandler) renderAsk(w http.ResponseWriter, r *http.Request, conn *database.Conn, data AskViewData) {
	teachers, err := service.NewUserService(conn).ListTeachers(r.Context())
	if err != nil {
		respondStorageError(w, r, "Error listing teachers", err)
		return
	}

	user := GetUserFromContext(r.Context())
	data.Title = "Ask a Question - Quizzy"
	data.User = user
	data.Teachers = teachers
	data.CSRFToken = h.middleware.CSRFToken(r)
	render(w, h.templates, "ask.tmpl", data)
}

// ShowAnswer renders the answer form for a question
func (h *QuestionHandler) ShowAnswer(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	conn, ok := acquire(w, r)
	if !ok {
		return
	}

	h.renderAnswer(w, r, service.NewQuestionService(conn), id, "")
}

// Answer stores the answer and returns to the teacher's unanswered list
func (h *QuestionHandler) Answer(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	id, ok := pathID(w, r)
	if !ok {
		return
	}

	conn, ok := acquire(w, r)
	if !ok {
		return
	}

	questions := service.NewQuestionService(conn)
	err := questions.Answer(r.Context(), id, r.FormValue("answer"))
	if err != nil {
		var validationErr validation.ValidationError
		switch {
		case errors.As(err, &validationErr):
			h.renderAnswer(w, r, questions, id, validationErr.Message)
		case errors.Is(err, service.ErrQuestionNotFound):
			http.NotFound(w, r)
		default:
			respondStorageError(w, r, "Error answering question", err)
		}
		return
	}

	log.Printf("User %s answered question %d", user.Name, id)
	http.Redirect(w, r, "/unansweredquestions", http.StatusSeeOther)
}

func (h *QuestionHandler) renderAnswer(w http.ResponseWriter, r *http.Request, questions *service.QuestionService, id int64, errMsg string) {
	question, err := questions.GetQuestion(r.Context(), id)
	if errors.Is(err, service.ErrQuestionNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		respondStorageError(w, r, "Error loading question", err)
		return
	}

	user := GetUserFromContext(r.Context())
	render(w, h.templates, "answer.tmpl", AnswerViewData{
		Title:     "Answer Question - Quizzy",
		User:      user,
		Question:  question,
		Error:     errMsg,
		CSRFToken: h.middleware.CSRFToken(r),
	})
}

// Unanswered lists questions waiting for the current user to answer
func (h *QuestionHandler) Unanswered(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, models.ViewUnanswered)
}

// TeacherAnswered lists questions the current user has answered
func (h *QuestionHandler) TeacherAnswered(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, models.ViewTeacherAnswered)
}

// Answered lists the current user's questions that have been answered
func (h *QuestionHandler) Answered(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, models.ViewAnswered)
}

// Pending lists the current user's questions still waiting for an answer
func (h *QuestionHandler) Pending(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, models.ViewPending)
}

func (h *QuestionHandler) list(w http.ResponseWriter, r *http.Request, view models.QuestionView) {
	user := GetUserFromContext(r.Context())

	conn, ok := acquire(w, r)
	if !ok {
		return
	}

	questions, err := service.NewQuestionService(conn).List(r.Context(), user, view)
	if err != nil {
		respondStorageError(w, r, "Error listing questions", err)
		return
	}

	render(w, h.templates, "questions.tmpl", QuestionsViewData{
		Title:     view.Title() + " - Quizzy",
		User:      user,
		View:      view,
		Questions: questions,
	})
}
