package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/stemsi/gamesurvey-backend/internal/model"
	"github.com/stemsi/gamesurvey-backend/internal/repository"
)

// RoleAction is the requested change to another account's admin flag.
type RoleAction string

const (
	RoleActionPromote RoleAction = "promote"
	RoleActionDemote  RoleAction = "demote"
)

// RoleChangeOutcome describes what ChangeRole did. Only Promoted and Demoted
// write anything.
type RoleChangeOutcome int

const (
	RoleChangeDenied RoleChangeOutcome = iota
	RoleChangeTargetMissing
	RoleChangeSelf
	RoleChangeIgnored
	RoleChangePromoted
	RoleChangeDemoted
)

// RoleChangeResult is returned by ChangeRole.
type RoleChangeResult struct {
	Outcome RoleChangeOutcome
	Target  *model.Account
}

// CanViewAdminPanel reports whether the account may open the admin panel.
func CanViewAdminPanel(a *model.Account) bool {
	return a != nil && a.IsAdmin
}

// CanChangeRoles reports whether the account may promote or demote others.
// It looks only at the super-admin flag, independently of IsAdmin.
func CanChangeRoles(a *model.Account) bool {
	return a != nil && a.IsSuperAdmin
}

// RoleService applies the role-change rules.
type RoleService struct {
	accounts AccountStore
	log      zerolog.Logger
}

// NewRoleService creates a new RoleService.
func NewRoleService(accounts AccountStore, log zerolog.Logger) *RoleService {
	return &RoleService{
		accounts: accounts,
		log:      log.With().Str("component", "role_service").Logger(),
	}
}

// ChangeRole sets or clears the target's admin flag on behalf of actor.
//
// Rules, in order: the actor must be a super-admin; the target must exist;
// nobody may change their own role; only promote and demote do anything,
// other actions are ignored. Denials are outcomes, not errors. The error is
// reserved for storage failures.
func (s *RoleService) ChangeRole(ctx context.Context, actor *model.Account, targetID int, action string) (*RoleChangeResult, error) {
	if !CanChangeRoles(actor) {
		return &RoleChangeResult{Outcome: RoleChangeDenied}, nil
	}

	target, err := s.accounts.GetByID(ctx, targetID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return &RoleChangeResult{Outcome: RoleChangeTargetMissing}, nil
		}
		return nil, fmt.Errorf("get target account: %w", err)
	}

	if target.ID == actor.ID {
		return &RoleChangeResult{Outcome: RoleChangeSelf, Target: target}, nil
	}

	var outcome RoleChangeOutcome
	switch RoleAction(action) {
	case RoleActionPromote:
		target.IsAdmin = true
		outcome = RoleChangePromoted
	case RoleActionDemote:
		target.IsAdmin = false
		outcome = RoleChangeDemoted
	default:
		return &RoleChangeResult{Outcome: RoleChangeIgnored, Target: target}, nil
	}

	if err := s.accounts.SetAdmin(ctx, target.ID, target.IsAdmin); err != nil {
		return nil, fmt.Errorf("set admin flag: %w", err)
	}

	s.log.Info().
		Int("actor_id", actor.ID).
		Int("target_id", target.ID).
		Str("action", action).
		Msg("Account role changed")

	return &RoleChangeResult{Outcome: outcome, Target: target}, nil
}
