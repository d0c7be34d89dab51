// Package services contains server-side business logic: registration and
// login, topics and responses.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/forohub/internal/common"
	"github.com/dmitrijs2005/forohub/internal/server/models"
	"github.com/dmitrijs2005/forohub/internal/server/repositories/repomanager"
	"golang.org/x/crypto/bcrypt"
)

const (
	minPasswordLen = 6
	maxPasswordLen = 72 // bcrypt ignores anything past 72 bytes
	maxUserNameLen = 100
)

// bcryptCost is lowered in tests.
var bcryptCost = bcrypt.DefaultCost

// TokenIssuer signs access tokens for a user.
type TokenIssuer interface {
	Issue(user *models.User) (string, error)
}

// UserService handles registration, login and password changes.
type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	tokens      TokenIssuer
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager, tokens TokenIssuer) *UserService {
	return &UserService{db: db, repomanager: m, tokens: tokens}
}

// Register creates a user with role USER. A taken username yields
// common.ErrorAlreadyExists.
func (s *UserService) Register(ctx context.Context, userName string, password []byte) (*models.User, error) {
	userName = strings.TrimSpace(userName)
	if userName == "" || len(userName) > maxUserNameLen {
		return nil, validationError("username must be 1-100 characters")
	}

	hash, err := hashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{UserName: userName, PasswordHash: hash, Role: models.RoleUser}

	u, err := s.repomanager.Users(s.db).Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, err
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}
	return u, nil
}

// Login checks the password and returns a freshly issued token.
// Unknown users and wrong passwords both yield common.ErrorUnauthorized.
func (s *UserService) Login(ctx context.Context, userName string, password []byte) (string, error) {
	user, err := s.repomanager.Users(s.db).GetUserByLogin(ctx, strings.TrimSpace(userName))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrorUnauthorized
		}
		return "", fmt.Errorf("%w: %w", common.ErrorInternal, err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), password) != nil {
		return "", common.ErrorUnauthorized
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return "", err
	}
	return token, nil
}

// ChangePassword replaces the password of userID after checking the old
// one. Tokens issued before the change stop verifying.
func (s *UserService) ChangePassword(ctx context.Context, userID int64, oldPassword, newPassword []byte) error {
	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return err
		}
		return fmt.Errorf("error loading user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), oldPassword) != nil {
		return common.ErrorUnauthorized
	}

	hash, err := hashPassword(newPassword)
	if err != nil {
		return err
	}

	if err := repo.UpdatePasswordHash(ctx, userID, hash); err != nil {
		return fmt.Errorf("error updating password: %w", err)
	}
	return nil
}

// GetByUserName loads the full identity behind an authenticated subject.
func (s *UserService) GetByUserName(ctx context.Context, userName string) (*models.User, error) {
	return s.repomanager.Users(s.db).GetUserByLogin(ctx, userName)
}

func hashPassword(password []byte) (string, error) {
	if len(password) < minPasswordLen || len(password) > maxPasswordLen {
		return "", validationError("password must be 6-72 bytes")
	}
	hash, err := bcrypt.GenerateFromPassword(password, bcryptCost)
	if err != nil {
		return "", fmt.Errorf("error hashing password: %w", err)
	}
	return string(hash), nil
}
