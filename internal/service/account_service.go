package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/stemsi/gamesurvey-backend/internal/model"
	"github.com/stemsi/gamesurvey-backend/internal/repository"
)

// MaxPasswordBytes is the longest password bcrypt accepts.
const MaxPasswordBytes = 72

var (
	// ErrUsernameTaken is returned when registering an existing username.
	ErrUsernameTaken = errors.New("username already exists")
	// ErrPasswordTooLong is returned for passwords bcrypt cannot hash.
	ErrPasswordTooLong = errors.New("password exceeds 72 bytes")
)

// AccountService handles registration, credential checks and account lookup.
type AccountService struct {
	accounts AccountStore
	auth     *AuthService
	log      zerolog.Logger
}

// NewAccountService creates a new AccountService.
func NewAccountService(accounts AccountStore, auth *AuthService, log zerolog.Logger) *AccountService {
	return &AccountService{
		accounts: accounts,
		auth:     auth,
		log:      log.With().Str("component", "account_service").Logger(),
	}
}

// Register creates an account. The very first account becomes both admin and
// super-admin; there is no other way to obtain super-admin.
func (s *AccountService) Register(ctx context.Context, username, password string) (*model.Account, error) {
	if len(password) > MaxPasswordBytes {
		return nil, ErrPasswordTooLong
	}

	_, err := s.accounts.GetByUsername(ctx, username)
	if err == nil {
		return nil, ErrUsernameTaken
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("check username: %w", err)
	}

	hash, err := s.auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	count, err := s.accounts.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count accounts: %w", err)
	}

	account := &model.Account{Username: username, PasswordHash: hash}
	if count == 0 {
		account.IsAdmin = true
		account.IsSuperAdmin = true
	}

	if err := s.accounts.Create(ctx, account); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("create account: %w", err)
	}

	if account.IsSuperAdmin {
		s.log.Info().Int("account_id", account.ID).Str("username", account.Username).
			Msg("First account registered, granted admin and super-admin")
	}

	return account, nil
}

// Authenticate verifies credentials. Unknown usernames and wrong passwords
// both yield ErrInvalidCredentials.
func (s *AccountService) Authenticate(ctx context.Context, username, password string) (*model.Account, error) {
	account, err := s.accounts.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("get account: %w", err)
	}

	if err := s.auth.CheckPassword(account.PasswordHash, password); err != nil {
		return nil, ErrInvalidCredentials
	}
	return account, nil
}

// GetByID retrieves an account by ID.
func (s *AccountService) GetByID(ctx context.Context, id int) (*model.Account, error) {
	return s.accounts.GetByID(ctx, id)
}
