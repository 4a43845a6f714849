package service_test

import (
	"errors"
	"testing"

	"quizzy/internal/service"
	"quizzy/internal/testutil"
	"quizzy/internal/validation"
)

func TestRegister(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, conn := testutil.Conn(t, db)
	auth := service.NewAuthService(conn)

	user, err := auth.Register(ctx, "alice", "password123")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if user.Teacher || user.Admin {
		t.Error("registered user should be neither teacher nor admin")
	}
	if user.PasswordHash == "password123" {
		t.Error("password stored in clear")
	}

	tests := []struct {
		name      string
		username  string
		password  string
		wantErr   error
		wantField string
	}{
		{
			name:     "taken name with valid password",
			username: "alice",
			password: "other1234",
			wantErr:  service.ErrUsernameTaken,
		},
		{
			name:     "taken name with short password",
			username: "alice",
			password: "short",
			wantErr:  service.ErrUsernameTaken,
		},
		{
			name:     "taken name with surrounding spaces",
			username: "  alice ",
			password: "other1234",
			wantErr:  service.ErrUsernameTaken,
		},
		{
			name:      "empty name",
			username:  "",
			password:  "password123",
			wantField: "name",
		},
		{
			name:      "short password",
			username:  "bob",
			password:  "1234567",
			wantField: "password",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := auth.Register(ctx, tt.username, tt.password)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Register() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			var vErr validation.ValidationError
			if !errors.As(err, &vErr) || vErr.Field != tt.wantField {
				t.Errorf("Register() error = %v, want validation error on %s", err, tt.wantField)
			}
		})
	}
}

func TestLogin(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, conn := testutil.Conn(t, db)
	auth := service.NewAuthService(conn)

	if _, err := auth.Register(ctx, "alice", "password123"); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	user, err := auth.Login(ctx, "alice", "password123")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if user.Name != "alice" {
		t.Errorf("Login() user = %q, want alice", user.Name)
	}

	if _, err := auth.Login(ctx, "alice", "wrong1234"); !errors.Is(err, service.ErrInvalidCredentials) {
		t.Errorf("Login(wrong password) error = %v, want ErrInvalidCredentials", err)
	}
	if _, err := auth.Login(ctx, "mallory", "password123"); !errors.Is(err, service.ErrInvalidCredentials) {
		t.Errorf("Login(unknown user) error = %v, want ErrInvalidCredentials", err)
	}

	var vErr validation.ValidationError
	if _, err := auth.Login(ctx, "alice", "short"); !errors.As(err, &vErr) {
		t.Errorf("Login(short password) error = %v, want validation error", err)
	}
}

func TestCurrentIdentity(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.CreateTestUser(t, db, "alice", false)
	ctx, conn := testutil.Conn(t, db)
	auth := service.NewAuthService(conn)

	user, err := auth.CurrentIdentity(ctx, "alice")
	if err != nil || user == nil || user.Name != "alice" {
		t.Errorf("CurrentIdentity(alice) = %+v, %v", user, err)
	}

	user, err = auth.CurrentIdentity(ctx, "")
	if err != nil || user != nil {
		t.Errorf("CurrentIdentity(empty) = %+v, %v; want nil, nil", user, err)
	}

	user, err = auth.CurrentIdentity(ctx, "ghost")
	if err != nil || user != nil {
		t.Errorf("CurrentIdentity(stale) = %+v, %v; want nil, nil", user, err)
	}
}
