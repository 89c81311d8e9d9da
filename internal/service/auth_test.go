package service

import (
	"errors"
	"testing"

	"github.com/atinyakov/taskmaster/internal/models"
)

func seededAuth(t *testing.T) (*AuthService, *memDirectory, *memTasks) {
	t.Helper()
	dir := newMemDirectory()
	tasks := newMemTasks()
	svc := NewAuthService(dir, tasks)
	if _, err := svc.Signup("Alice", "a@b.com", "x", "First pet?", "Rex"); err != nil {
		t.Fatalf("seed signup failed: %v", err)
	}
	return svc, dir, tasks
}

func TestSignupThenLogin(t *testing.T) {
	svc, _, _ := seededAuth(t)

	profile, err := svc.Login("a@b.com", "x")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if profile.Name != "Alice" || profile.Email != "a@b.com" {
		t.Errorf("Login = %+v; want name Alice, email a@b.com", profile)
	}
	if profile.Bio != "" || profile.DOB != "" {
		t.Errorf("signup should leave bio and dob empty, got %+v", profile)
	}
}

func TestLogin_Errors(t *testing.T) {
	svc, _, _ := seededAuth(t)

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{"unknown account", "nobody@b.com", "x", ErrAccountNotFound},
		{"wrong password", "a@b.com", "y", ErrIncorrectPassword},
		{"password is case-sensitive", "a@b.com", "X", ErrIncorrectPassword},
		{"email is case-sensitive", "A@b.com", "x", ErrAccountNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Login(tt.email, tt.password); !errors.Is(err, tt.wantErr) {
				t.Errorf("Login error = %v; want %v", err, tt.wantErr)
			}
		})
	}
}

func TestSignup_DuplicateLeavesEntryUntouched(t *testing.T) {
	svc, dir, _ := seededAuth(t)

	_, err := svc.Signup("Mallory", "a@b.com", "stolen", "Q", "A")
	if !errors.Is(err, ErrAccountExists) {
		t.Fatalf("Signup error = %v; want %v", err, ErrAccountExists)
	}
	if err.Error() != "Account already exists with this email." {
		t.Errorf("unexpected error text %q", err.Error())
	}

	stored := dir.Get("a@b.com")
	if stored.Name != "Alice" || stored.Password != "x" {
		t.Errorf("existing entry was modified: %+v", stored)
	}
}

func TestSecurityQuestion(t *testing.T) {
	svc, dir, _ := seededAuth(t)

	q, err := svc.SecurityQuestion("a@b.com")
	if err != nil {
		t.Fatalf("SecurityQuestion returned error: %v", err)
	}
	if q != "First pet?" {
		t.Errorf("question = %q; want %q", q, "First pet?")
	}

	// Account without a recorded question gets the fixed fallback.
	p := *dir.Get("a@b.com")
	p.SecurityQuestion = ""
	if err := dir.Upsert(p); err != nil {
		t.Fatal(err)
	}
	q, err = svc.SecurityQuestion("a@b.com")
	if err != nil {
		t.Fatalf("SecurityQuestion returned error: %v", err)
	}
	if q != "What is your pet's name?" {
		t.Errorf("fallback question = %q", q)
	}

	if _, err := svc.SecurityQuestion("nobody@b.com"); !errors.Is(err, ErrNoSuchAccount) {
		t.Errorf("error = %v; want %v", err, ErrNoSuchAccount)
	}
}

func TestResetPassword(t *testing.T) {
	svc, dir, _ := seededAuth(t)

	// Answer comparison is case-insensitive.
	if err := svc.ResetPassword("a@b.com", "REX", "new-secret"); err != nil {
		t.Fatalf("ResetPassword returned error: %v", err)
	}

	stored := dir.Get("a@b.com")
	if stored.Password != "new-secret" {
		t.Errorf("password = %q; want %q", stored.Password, "new-secret")
	}
	// Only the password field changes.
	if stored.Name != "Alice" || stored.SecurityQuestion != "First pet?" || stored.SecurityAnswer != "Rex" {
		t.Errorf("reset modified fields other than password: %+v", stored)
	}

	if _, err := svc.Login("a@b.com", "new-secret"); err != nil {
		t.Errorf("login with new password failed: %v", err)
	}
}

func TestResetPassword_Errors(t *testing.T) {
	svc, dir, _ := seededAuth(t)

	if err := svc.ResetPassword("nobody@b.com", "Rex", "p"); !errors.Is(err, ErrResetAccountNotFound) {
		t.Errorf("error = %v; want %v", err, ErrResetAccountNotFound)
	}

	if err := svc.ResetPassword("a@b.com", "Fido", "p"); !errors.Is(err, ErrIncorrectAnswer) {
		t.Errorf("error = %v; want %v", err, ErrIncorrectAnswer)
	}
	// A rejected reset leaves the stored password untouched.
	if got := dir.Get("a@b.com").Password; got != "x" {
		t.Errorf("password after rejected reset = %q; want %q", got, "x")
	}
}

func TestDeleteAccount(t *testing.T) {
	svc, dir, tasks := seededAuth(t)
	if err := tasks.Save("a@b.com", []models.Task{{ID: "t1", Title: "Buy milk"}}); err != nil {
		t.Fatal(err)
	}

	if err := svc.DeleteAccount("a@b.com"); err != nil {
		t.Fatalf("DeleteAccount returned error: %v", err)
	}
	if dir.Get("a@b.com") != nil {
		t.Error("directory entry still present after deletion")
	}
	if _, ok := tasks.lists["a@b.com"]; ok {
		t.Error("task store key still present after deletion")
	}

	if _, err := svc.Login("a@b.com", "x"); !errors.Is(err, ErrAccountNotFound) {
		t.Errorf("login after deletion = %v; want %v", err, ErrAccountNotFound)
	}
}
