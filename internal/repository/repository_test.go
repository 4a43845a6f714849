package repository_test

import (
	"errors"
	"testing"

	"quizzy/internal/models"
	"quizzy/internal/repository"
	"quizzy/internal/testutil"
)

func TestUserRepositoryCreateAndGet(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, conn := testutil.Conn(t, db)
	repo := repository.NewUserRepository(conn)

	created, err := repo.CreateUser(ctx, "alice", "hash")
	if err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}
	if created.ID == 0 {
		t.Error("CreateUser() should assign an ID")
	}

	byName, err := repo.GetUserByName(ctx, "alice")
	if err != nil {
		t.Fatalf("GetUserByName() error = %v", err)
	}
	if byName == nil || byName.ID != created.ID {
		t.Fatalf("GetUserByName() = %+v, want ID %d", byName, created.ID)
	}
	if byName.Teacher || byName.Admin {
		t.Error("new users should be neither teacher nor admin")
	}

	byID, err := repo.GetUserByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetUserByID() error = %v", err)
	}
	if byID == nil || byID.Name != "alice" {
		t.Errorf("GetUserByID() = %+v, want alice", byID)
	}

	missing, err := repo.GetUserByName(ctx, "nobody")
	if err != nil || missing != nil {
		t.Errorf("GetUserByName(missing) = %+v, %v; want nil, nil", missing, err)
	}
}

func TestUserRepositoryDuplicateName(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, conn := testutil.Conn(t, db)
	repo := repository.NewUserRepository(conn)

	if _, err := repo.CreateUser(ctx, "alice", "hash"); err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}
	_, err := repo.CreateUser(ctx, "alice", "other")
	if !errors.Is(err, repository.ErrDuplicateName) {
		t.Errorf("CreateUser(duplicate) error = %v, want ErrDuplicateName", err)
	}
}

func TestUserRepositorySetTeacherTargetsOneRow(t *testing.T) {
	db := testutil.SetupTestDB(t)
	aliceID := testutil.CreateTestUser(t, db, "alice", false)
	bobID := testutil.CreateTestUser(t, db, "bob", false)
	ctx, conn := testutil.Conn(t, db)
	repo := repository.NewUserRepository(conn)

	found, err := repo.SetTeacher(ctx, bobID, true)
	if err != nil || !found {
		t.Fatalf("SetTeacher() = %v, %v; want true, nil", found, err)
	}

	bob, _ := repo.GetUserByID(ctx, bobID)
	alice, _ := repo.GetUserByID(ctx, aliceID)
	if !bob.Teacher {
		t.Error("bob should be a teacher")
	}
	if alice.Teacher {
		t.Error("alice should be unchanged")
	}

	teachers, err := repo.GetTeachers(ctx)
	if err != nil {
		t.Fatalf("GetTeachers() error = %v", err)
	}
	if len(teachers) != 1 || teachers[0].ID != bobID {
		t.Errorf("GetTeachers() = %+v, want only bob", teachers)
	}

	found, err = repo.SetTeacher(ctx, 9999, true)
	if err != nil || found {
		t.Errorf("SetTeacher(missing) = %v, %v; want false, nil", found, err)
	}

	found, err = repo.SetAdmin(ctx, aliceID, true)
	if err != nil || !found {
		t.Errorf("SetAdmin() = %v, %v; want true, nil", found, err)
	}
}

func TestUserRepositoryGetAllUsers(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.CreateTestUser(t, db, "charlie", false)
	testutil.CreateTestUser(t, db, "alice", true)
	ctx, conn := testutil.Conn(t, db)

	users, err := repository.NewUserRepository(conn).GetAllUsers(ctx)
	if err != nil {
		t.Fatalf("GetAllUsers() error = %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("GetAllUsers() returned %d users, want 2", len(users))
	}
	if users[0].Name != "alice" || users[1].Name != "charlie" {
		t.Errorf("GetAllUsers() order = %s, %s; want alice, charlie", users[0].Name, users[1].Name)
	}
}

func TestQuestionRepositoryLifecycle(t *testing.T) {
	db := testutil.SetupTestDB(t)
	studentID := testutil.CreateTestUser(t, db, "student", false)
	teacherID := testutil.CreateTestUser(t, db, "teacher", true)
	ctx, conn := testutil.Conn(t, db)
	users := repository.NewUserRepository(conn)
	questions := repository.NewQuestionRepository(conn)

	student, _ := users.GetUserByID(ctx, studentID)
	teacher, _ := users.GetUserByID(ctx, teacherID)

	first, err := questions.CreateQuestion(ctx, "What is 2+2?", student, teacher)
	if err != nil {
		t.Fatalf("CreateQuestion() error = %v", err)
	}
	second, err := questions.CreateQuestion(ctx, "What is 3+3?", student, teacher)
	if err != nil {
		t.Fatalf("CreateQuestion() error = %v", err)
	}

	stored, err := questions.GetQuestionByID(ctx, first.ID)
	if err != nil {
		t.Fatalf("GetQuestionByID() error = %v", err)
	}
	if stored.TeacherName != "teacher" || stored.AskedByName != "student" {
		t.Errorf("names not copied: %+v", stored)
	}
	if !stored.IsPending() {
		t.Error("new question should be pending")
	}

	found, err := questions.SetAnswer(ctx, first.ID, "4")
	if err != nil || !found {
		t.Fatalf("SetAnswer() = %v, %v; want true, nil", found, err)
	}

	unanswered, err := questions.ListQuestions(ctx, teacherID, models.ViewUnanswered)
	if err != nil {
		t.Fatalf("ListQuestions() error = %v", err)
	}
	if len(unanswered) != 1 || unanswered[0].ID != second.ID {
		t.Errorf("unanswered for teacher = %+v, want only question %d", unanswered, second.ID)
	}

	answered, _ := questions.ListQuestions(ctx, studentID, models.ViewAnswered)
	if len(answered) != 1 || answered[0].Answer() != "4" {
		t.Errorf("answered for student = %+v, want question %d with answer 4", answered, first.ID)
	}

	teacherAnswered, _ := questions.ListQuestions(ctx, teacherID, models.ViewTeacherAnswered)
	if len(teacherAnswered) != 1 || teacherAnswered[0].ID != first.ID {
		t.Errorf("teacher answered = %+v, want question %d", teacherAnswered, first.ID)
	}

	pending, _ := questions.ListQuestions(ctx, studentID, models.ViewPending)
	if len(pending) != 1 || pending[0].ID != second.ID {
		t.Errorf("pending for student = %+v, want question %d", pending, second.ID)
	}

	// The teacher asked nothing; the student teaches nothing
	if qs, _ := questions.ListQuestions(ctx, teacherID, models.ViewPending); len(qs) != 0 {
		t.Errorf("teacher pending = %d questions, want 0", len(qs))
	}
	if qs, _ := questions.ListQuestions(ctx, studentID, models.ViewUnanswered); len(qs) != 0 {
		t.Errorf("student unanswered = %d questions, want 0", len(qs))
	}

	found, err = questions.SetAnswer(ctx, 9999, "nope")
	if err != nil || found {
		t.Errorf("SetAnswer(missing) = %v, %v; want false, nil", found, err)
	}
}
