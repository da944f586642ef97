package service

import (
	"context"
	"errors"
	"strings"

	"github.com/Mieeelll/Taskflow-To-Do-App/internal/auth"
	dom "github.com/Mieeelll/Taskflow-To-Do-App/internal/domain"
	"github.com/Mieeelll/Taskflow-To-Do-App/internal/repo"
	"github.com/Mieeelll/Taskflow-To-Do-App/internal/utils"

	"github.com/jackc/pgx/v5"
)

var (
	ErrInvalidCredentials = errors.New("Invalid email or password")
	ErrDuplicateUser      = errors.New("Email or username already exists")
)

// UserService handles registration and login.
type UserService struct {
	repo  repo.UserRepo
	creds *auth.Credentials
}

func NewUserService(r repo.UserRepo, creds *auth.Credentials) *UserService {
	return &UserService{repo: r, creds: creds}
}

// Register creates a new user. Email is stored lowercased; duplicate email
// or username (case-insensitive) is ErrDuplicateUser.
func (s *UserService) Register(ctx context.Context, username, email, password string) (dom.User, error) {
	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))

	exists, err := s.repo.ExistsByEmailOrUsername(ctx, email, username)
	if err != nil {
		return dom.User{}, err
	}
	if exists {
		return dom.User{}, ErrDuplicateUser
	}

	hash, err := s.creds.HashPassword(password)
	if err != nil {
		return dom.User{}, err
	}
	u, err := s.repo.Create(ctx, username, email, hash)
	if err != nil {
		// Backstop for the race between the existence check and the insert.
		if utils.IsPGUniqueViolation(err) {
			return dom.User{}, ErrDuplicateUser
		}
		return dom.User{}, err
	}
	return u, nil
}

// Login checks the credentials and returns the user with a signed token.
func (s *UserService) Login(ctx context.Context, email, password string) (dom.User, string, error) {
	u, err := s.repo.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.User{}, "", ErrInvalidCredentials
		}
		return dom.User{}, "", err
	}
	if !s.creds.VerifyPassword(password, u.PasswordHash) {
		return dom.User{}, "", ErrInvalidCredentials
	}
	token, err := s.creds.IssueToken(u.ID.String())
	if err != nil {
		return dom.User{}, "", err
	}
	return u, token, nil
}
