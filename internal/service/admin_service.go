package service

import (
	"context"
	"fmt"

	"github.com/stemsi/gamesurvey-backend/internal/model"
)

// AdminPanelData is everything the admin panel lists.
type AdminPanelData struct {
	Accounts []model.Account `json:"accounts"`
	Results  []model.Result  `json:"results"`
}

// AdminService builds the admin panel view.
type AdminService struct {
	accounts AccountStore
	results  ResultStore
}

// NewAdminService creates a new AdminService.
func NewAdminService(accounts AccountStore, results ResultStore) *AdminService {
	return &AdminService{accounts: accounts, results: results}
}

// Panel lists all accounts and all results, newest results first.
func (s *AdminService) Panel(ctx context.Context) (*AdminPanelData, error) {
	accounts, err := s.accounts.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}

	results, err := s.results.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list results: %w", err)
	}

	return &AdminPanelData{Accounts: accounts, Results: results}, nil
}
