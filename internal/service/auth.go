// Package service provides the business logic for authentication, the active
// session and task management, delegating persistence to repository
// interfaces.
package service

import (
	"errors"
	"strings"

	"github.com/atinyakov/taskmaster/internal/models"
)

// Auth flow errors. The messages are shown to the user verbatim, so callers
// can render err.Error() directly while still branching with errors.Is.
var (
	ErrAccountNotFound      = errors.New("Account does not exist. Please Sign Up.")
	ErrIncorrectPassword    = errors.New("Incorrect password.")
	ErrAccountExists        = errors.New("Account already exists with this email.")
	ErrNoSuchAccount        = errors.New("Account does not exist.")
	ErrResetAccountNotFound = errors.New("Error finding account.")
	ErrIncorrectAnswer      = errors.New("Incorrect answer.")
)

// fallbackQuestion is returned when an account was created without a
// security question.
const fallbackQuestion = "What is your pet's name?"

// AccountDirectory defines the persistence operations required by the
// authentication service.
type AccountDirectory interface {
	// Get returns the profile stored under email, or nil if absent.
	Get(email string) *models.Profile
	// Upsert inserts or overwrites the profile at its email key.
	Upsert(profile models.Profile) error
	// Remove deletes the entry for email.
	Remove(email string) error
}

// TaskRemover removes an account's task list; needed for account deletion.
type TaskRemover interface {
	Remove(email string) error
}

// AuthService implements login, signup, password reset and account deletion
// over the account directory.
type AuthService struct {
	directory AccountDirectory
	tasks     TaskRemover
}

// NewAuthService constructs an AuthService using the provided directory and
// task remover.
func NewAuthService(directory AccountDirectory, tasks TaskRemover) *AuthService {
	return &AuthService{directory: directory, tasks: tasks}
}

// Login verifies the credentials against the directory and returns the stored
// profile. The password comparison is an exact string match.
func (s *AuthService) Login(email, password string) (*models.Profile, error) {
	profile := s.directory.Get(email)
	if profile == nil {
		return nil, ErrAccountNotFound
	}
	if profile.Password != password {
		return nil, ErrIncorrectPassword
	}
	return profile, nil
}

// Signup creates a new profile with empty bio and date of birth. It fails if
// an account already exists under the email, leaving the existing entry
// untouched.
func (s *AuthService) Signup(name, email, password, question, answer string) (*models.Profile, error) {
	if existing := s.directory.Get(email); existing != nil {
		return nil, ErrAccountExists
	}
	profile := models.Profile{
		Name:             name,
		Email:            email,
		Password:         password,
		SecurityQuestion: question,
		SecurityAnswer:   answer,
	}
	if err := s.directory.Upsert(profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// SecurityQuestion returns the account's stored security question, or a
// fixed fallback question when none was recorded.
func (s *AuthService) SecurityQuestion(email string) (string, error) {
	profile := s.directory.Get(email)
	if profile == nil {
		return "", ErrNoSuchAccount
	}
	if profile.SecurityQuestion == "" {
		return fallbackQuestion, nil
	}
	return profile.SecurityQuestion, nil
}

// ResetPassword overwrites the account's password after a case-insensitive
// match of the security answer. No other profile field is modified.
func (s *AuthService) ResetPassword(email, answer, newPassword string) error {
	profile := s.directory.Get(email)
	if profile == nil {
		return ErrResetAccountNotFound
	}
	if !strings.EqualFold(profile.SecurityAnswer, answer) {
		return ErrIncorrectAnswer
	}
	profile.Password = newPassword
	return s.directory.Upsert(*profile)
}

// DeleteAccount removes the account's task list and its directory entry.
// A subsequent login with the same credentials fails with ErrAccountNotFound.
func (s *AuthService) DeleteAccount(email string) error {
	if err := s.tasks.Remove(email); err != nil {
		return err
	}
	return s.directory.Remove(email)
}
