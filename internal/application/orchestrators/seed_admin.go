package orchestrators

import (
	"context"
	"log/slog"
	"time"

	"advisory/internal/domain/account"
)

// SeedAdminInput carries the configured admin credentials.
type SeedAdminInput struct {
	Email    string
	Password string
}

// SeedAdminDeps holds dependencies for SeedAdmin.
type SeedAdminDeps struct {
	AccountStore AccountStoreForRegister
	GenerateID   func() string
	Now          func() time.Time
}

// ExecuteSeedAdmin ensures the configured admin account exists. Admin status
// itself comes from the configured email at role resolution, but the admin
// still needs credentials to sign in with.
// PRE: Email and password are configured
// POST: An account exists for the admin email; existing accounts untouched
func ExecuteSeedAdmin(ctx context.Context, input SeedAdminInput, deps SeedAdminDeps) error {
	if input.Email == "" || input.Password == "" {
		return nil
	}

	if _, err := deps.AccountStore.GetByEmail(ctx, input.Email); err == nil {
		return nil
	}

	acct := account.Account{
		ID:        deps.GenerateID(),
		Email:     input.Email,
		Role:      account.RoleAdmin,
		CreatedAt: deps.Now(),
	}
	if err := acct.SetPassword(input.Password); err != nil {
		return err
	}
	if err := deps.AccountStore.Save(ctx, acct); err != nil {
		return err
	}

	slog.Info("auth_event", "event", "admin_seeded", "email", input.Email)
	return nil
}
