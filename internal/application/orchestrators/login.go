package orchestrators

import (
	"context"
	"errors"
	"log/slog"

	"advisory/internal/domain/account"
	"advisory/internal/domain/authz"
)

// AccountStoreForLogin defines the store interface needed by Login.
type AccountStoreForLogin interface {
	GetByEmail(ctx context.Context, email string) (account.Account, error)
	Save(ctx context.Context, a account.Account) error
}

// RoleResolverForLogin resolves the effective role for a signed-in email.
type RoleResolverForLogin interface {
	Resolve(ctx context.Context, email string) (authz.Role, error)
}

// LoginInput carries input for the login orchestrator.
type LoginInput struct {
	Email    string
	Password string
}

// LoginResult carries the result of a successful login.
type LoginResult struct {
	AccountID string
	Email     string
	Role      authz.Role
	Landing   string
}

// LoginDeps holds dependencies for Login.
type LoginDeps struct {
	AccountStore AccountStoreForLogin
	Resolver     RoleResolverForLogin
}

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountLocked      = errors.New("account is locked due to too many failed attempts")
	ErrRoleUnavailable    = errors.New("could not determine role, try again")
)

// ExecuteLogin validates credentials and resolves the effective role for
// session creation. The role is never taken from the stored account: it is
// derived from the admin email and the roster on every login, so roster edits
// take effect on the next sign-in.
// PRE: Valid email and password provided
// POST: Returns account info and effective role on success, records failed
// login on failure
// INVARIANT: Account must not be locked; a failed role lookup denies login
func ExecuteLogin(ctx context.Context, input LoginInput, deps LoginDeps) (LoginResult, error) {
	if input.Email == "" || input.Password == "" {
		return LoginResult{}, ErrInvalidCredentials
	}

	acct, err := deps.AccountStore.GetByEmail(ctx, input.Email)
	if err != nil {
		slog.Info("auth_event", "event", "login_failed", "email", input.Email, "reason", "not_found")
		return LoginResult{}, ErrInvalidCredentials
	}

	if acct.IsLocked() {
		slog.Info("auth_event", "event", "login_blocked", "email", input.Email, "reason", "locked")
		return LoginResult{}, ErrAccountLocked
	}

	if err := acct.CheckPassword(input.Password); err != nil {
		acct.RecordFailedLogin()
		_ = deps.AccountStore.Save(ctx, acct)
		slog.Info("auth_event", "event", "login_failed", "email", input.Email, "reason", "wrong_password", "failed_logins", acct.FailedLogins)
		return LoginResult{}, ErrInvalidCredentials
	}

	role, err := deps.Resolver.Resolve(ctx, acct.Email)
	if err != nil {
		slog.Error("auth_event", "event", "role_lookup_failed", "email", input.Email, "error", err)
		return LoginResult{}, ErrRoleUnavailable
	}

	// Successful login, reset failed attempts
	acct.ResetFailedLogins()
	_ = deps.AccountStore.Save(ctx, acct)

	slog.Info("auth_event", "event", "login_success", "email", input.Email, "role", string(role))

	return LoginResult{
		AccountID: acct.ID,
		Email:     acct.Email,
		Role:      role,
		Landing:   authz.Landing(role),
	}, nil
}
